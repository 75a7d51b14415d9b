package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

// ConflictType represents the kind of problem found in persisted state
type ConflictType string

const (
	ConflictMalformedValue     ConflictType = "malformed_value"
	ConflictNegativeValue      ConflictType = "negative_value"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictDuplicateShadow    ConflictType = "duplicate_shadow"
	ConflictRosterOverCapacity ConflictType = "roster_over_capacity"
	ConflictQuestOutOfRange    ConflictType = "quest_out_of_range"
	ConflictLevelMismatch      ConflictType = "level_mismatch"
)

// Conflict is one problem in the persisted state. Every conflict is
// recoverable: the engine falls back to the key's default on load.
type Conflict struct {
	Type        ConflictType
	Key         string
	Description string
	Items       []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Key, conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, key, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Key: key, Description: fmt.Sprintf(format, args...)})
}

// Getter is the read half of a key/value store.
type Getter interface {
	Get(key string) (string, bool, error)
}

// Validator checks that every persisted key decodes the way the engine expects
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateState reads every known key from kv. Missing keys are not conflicts.
func (v *Validator) ValidateState(kv Getter) (ValidationResult, error) {
	var result ValidationResult
	values := make(map[string]string, len(constants.AllKeys))
	for _, key := range constants.AllKeys {
		raw, ok, err := kv.Get(key)
		if err != nil {
			return result, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if ok {
			values[key] = raw
		}
	}

	for _, key := range []string{constants.KeyAriseCount, constants.KeyShadowSlots, constants.KeyCurrency, constants.KeyLevel, constants.KeyXP} {
		if raw, ok := values[key]; ok {
			checkNumber(&result, key, raw)
		}
	}

	for _, key := range []string{constants.KeyDailyTimers, constants.KeyTotalTimers, constants.KeyCreditedTimers} {
		if raw, ok := values[key]; ok {
			checkCounters(&result, key, raw)
		}
	}

	if raw, ok := values[constants.KeyLastResetDate]; ok && !validResetDate(raw) {
		result.add(ConflictInvalidDate, constants.KeyLastResetDate, "%q is neither YYYY-MM-DD nor an RFC 3339 timestamp", raw)
	}

	checkProgress(&result, values)
	checkRoster(&result, values)
	checkQuests(&result, values)

	checkJSON(&result, constants.KeyHeatmap, values, &[]models.HeatmapDay{})
	checkJSON(&result, constants.KeyTodos, values, &[]models.Todo{})
	checkJSON(&result, constants.KeyActiveTimer, values, &models.TimerSession{})
	if raw, ok := values[constants.KeyPlayerAccepted]; ok {
		if _, err := strconv.ParseBool(strings.TrimSpace(raw)); err != nil {
			result.add(ConflictMalformedValue, constants.KeyPlayerAccepted, "%q is not a boolean", raw)
		}
	}

	sort.SliceStable(result.Conflicts, func(i, j int) bool { return result.Conflicts[i].Key < result.Conflicts[j].Key })
	return result, nil
}

func checkNumber(result *ValidationResult, key, raw string) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		result.add(ConflictMalformedValue, key, "%q is not a number", raw)
		return
	}
	if f < 0 {
		result.add(ConflictNegativeValue, key, "value %v is negative", f)
	}
}

func checkCounters(result *ValidationResult, key, raw string) {
	var c models.Counters
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		result.add(ConflictMalformedValue, key, "counters do not decode: %v", err)
		return
	}
	for _, a := range models.Activities {
		if c.Get(a) < 0 {
			result.add(ConflictNegativeValue, key, "%s counter is negative (%d)", a, c.Get(a))
		}
	}
}

func checkJSON(result *ValidationResult, key string, values map[string]string, into any) bool {
	raw, ok := values[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		result.add(ConflictMalformedValue, key, "value does not decode: %v", err)
		return false
	}
	return true
}

func validResetDate(raw string) bool {
	raw = strings.TrimSpace(raw)
	if _, err := time.Parse(constants.DateFormat, raw); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, raw)
	return err == nil
}

// checkProgress flags a stored level that disagrees with the stored XP.
func checkProgress(result *ValidationResult, values map[string]string) {
	rawXP, okXP := values[constants.KeyXP]
	rawLevel, okLevel := values[constants.KeyLevel]
	if !okXP || !okLevel {
		return
	}
	xp, err1 := strconv.ParseFloat(strings.TrimSpace(rawXP), 64)
	level, err2 := strconv.Atoi(strings.TrimSpace(rawLevel))
	if err1 != nil || err2 != nil || xp < 0 {
		return
	}
	if want := int(xp/constants.LevelXPQuantum) + 1; want != level {
		result.add(ConflictLevelMismatch, constants.KeyLevel, "stored level %d does not match %v XP (level %d)", level, xp, want)
	}
}

func checkRoster(result *ValidationResult, values map[string]string) {
	var roster []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	if !checkJSON(result, constants.KeyShadows, values, &roster) {
		return
	}

	seen := map[string]bool{}
	for _, s := range roster {
		id := s.Key
		if id == "" {
			id = strings.ToLower(s.Name)
		}
		if seen[id] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateShadow,
				Key:         constants.KeyShadows,
				Description: fmt.Sprintf("shadow %q appears more than once", id),
				Items:       []string{id},
			})
		}
		seen[id] = true
	}

	slots := constants.DefaultShadowSlots
	if raw, ok := values[constants.KeyShadowSlots]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			slots = n
		}
	}
	if len(seen) > slots {
		result.add(ConflictRosterOverCapacity, constants.KeyShadows, "%d shadows but only %d slots", len(seen), slots)
	}
}

func checkQuests(result *ValidationResult, values map[string]string) {
	var dq models.DailyQuests
	if !checkJSON(result, constants.KeyDailyQuests, values, &dq) {
		return
	}
	if dq.Date != "" {
		if _, err := time.Parse(constants.DateFormat, dq.Date); err != nil {
			result.add(ConflictInvalidDate, constants.KeyDailyQuests, "quest date %q is not YYYY-MM-DD", dq.Date)
		}
	}
	for _, q := range dq.Quests {
		if q.Progress < 0 || q.Progress > q.Target {
			result.add(ConflictQuestOutOfRange, constants.KeyDailyQuests, "quest %d progress %d outside 0..%d", q.ID, q.Progress, q.Target)
		}
	}
}

// AutoFix deletes keys whose conflicts the engine cannot repair on its own.
// A deleted key loads as its default. Conflicts the engine already
// normalizes on load (duplicates, clamped quest progress, level mismatch)
// are left alone.
func AutoFix(conflicts []Conflict, deleteFunc func(key string) error) []FixAction {
	var actions []FixAction
	done := map[string]bool{}
	for _, c := range conflicts {
		switch c.Type {
		case ConflictMalformedValue, ConflictNegativeValue, ConflictInvalidDate:
		default:
			continue
		}
		if done[c.Key] {
			continue
		}
		done[c.Key] = true
		if err := deleteFunc(c.Key); err != nil {
			actions = append(actions, FixAction{Action: fmt.Sprintf("Failed to reset %s: %v", c.Key, err), SourceConflict: c})
			continue
		}
		actions = append(actions, FixAction{Action: fmt.Sprintf("Reset %s to its default", c.Key), SourceConflict: c})
	}
	return actions
}
