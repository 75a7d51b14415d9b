package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/validation"
)

func newTextForm(title, placeholder string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(value).
				Validate(func(s string) error {
					return validation.ValidateText(strings.ToLower(title), s)
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// newAvatarForm accepts a blank reference, which clears the picture.
func newAvatarForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile picture").
				Description("Image path or URL. Leave blank to clear.").
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}

func newQuestForm(quests []models.Quest, v *formValues) *huh.Form {
	options := make([]huh.Option[int], 0, len(quests))
	for _, q := range quests {
		if q.Completed {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", q.Title, progressLabel(q)), q.ID))
	}
	if len(options) > 0 {
		v.QuestID = options[0].Value
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Daily gate").
				Options(options...).
				Value(&v.QuestID),
			huh.NewInput().
				Title("Amount").
				Description("Seconds for the study gate").
				Value(&v.Amount).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil {
						return fmt.Errorf("amount must be a whole number")
					}
					if n <= 0 {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newManualTimeForm(v *formValues) *huh.Form {
	options := make([]huh.Option[models.ActivityType], len(models.Activities))
	for i, a := range models.Activities {
		options[i] = huh.NewOption(a.Label(), a)
	}
	v.Activity = models.ActivityStudy

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.ActivityType]().
				Title("Activity").
				Options(options...).
				Value(&v.Activity),
			huh.NewInput().
				Title("Minutes").
				Placeholder("45").
				Value(&v.Amount),
		),
	).WithTheme(huh.ThemeDracula())
}

func newReleaseForm(name string, v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Release %s?", name)).
				Description("The slot is freed. There is no refund.").
				Affirmative("Release").
				Negative("Keep").
				Value(&v.Confirm),
		),
	).WithTheme(huh.ThemeDracula())
}
