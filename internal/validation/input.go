package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMinutes reads a manual time entry by its leading integer, so "45m"
// and "45.5" are 45. Input without one reads as 0. Zero and negative values
// are ignored by the engine.
func ParseMinutes(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ValidateText rejects blank input for todos and usernames.
func ValidateText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	return nil
}
