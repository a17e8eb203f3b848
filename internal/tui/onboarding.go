package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

// OnboardingForm holds the questionnaire answers while the form runs.
type OnboardingForm struct {
	IndexEventDate  string
	EventType       string
	HasCardiacRehab bool
	SmokingStatus   string
	SaveProfile     bool
}

// Data converts the answers into the cached onboarding payload.
func (f *OnboardingForm) Data(now time.Time) models.OnboardingData {
	return models.OnboardingData{
		IndexEventDate:  f.IndexEventDate,
		EventType:       f.EventType,
		HasCardiacRehab: f.HasCardiacRehab,
		SmokingStatus:   f.SmokingStatus,
		CompletedAt:     now,
	}
}

// ValidateIndexDate accepts a YYYY-MM-DD date that is not after today.
func ValidateIndexDate(today time.Time) func(string) error {
	return func(s string) error {
		d, err := time.ParseInLocation(constants.DateFormat, s, today.Location())
		if err != nil {
			return fmt.Errorf("use the YYYY-MM-DD format")
		}
		if d.After(today) {
			return fmt.Errorf("the event date cannot be in the future")
		}
		return nil
	}
}

func NewOnboardingForm(f *OnboardingForm, today time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("When was your cardiac event?").
				Description("Date of the heart attack, procedure or hospital discharge (YYYY-MM-DD)").
				Placeholder(today.Format(constants.DateFormat)).
				Value(&f.IndexEventDate).
				Validate(ValidateIndexDate(today)),
			huh.NewSelect[string]().
				Title("What kind of event was it?").
				Options(
					huh.NewOption("Heart attack", "myocardial_infarction"),
					huh.NewOption("Stent or angioplasty", "pci"),
					huh.NewOption("Bypass surgery", "cabg"),
					huh.NewOption("Heart failure admission", "heart_failure"),
					huh.NewOption("Other", "other"),
				).
				Value(&f.EventType),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you enrolled in cardiac rehab?").
				Value(&f.HasCardiacRehab),
			huh.NewSelect[string]().
				Title("Smoking status").
				Options(
					huh.NewOption("Never smoked", "never"),
					huh.NewOption("Quit", "former"),
					huh.NewOption("Currently smoking", "current"),
				).
				Value(&f.SmokingStatus),
			huh.NewConfirm().
				Title("Save this as your profile?").
				Description("The answers are always cached on this device").
				Value(&f.SaveProfile),
		),
	).WithTheme(huh.ThemeDracula())
}
