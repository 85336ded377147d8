package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitFormModel struct {
	Name   string
	Kind   models.Kind
	Target string
}

type LogFormModel struct {
	HabitID   int64
	HabitName string
	Unit      string
	Date      string
	Amount    string
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// NewHabitForm creates the add habit form
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	options := make([]huh.Option[models.Kind], 0, len(models.Kinds()))
	for _, k := range models.Kinds() {
		options = append(options, huh.NewOption(k.Label(), k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Kind]().
				Title("Kind").
				Options(options...).
				Value(&fm.Kind),
			huh.NewInput().
				Title("Daily target").
				Description("Minutes for exercise and study, hours for sleep").
				Value(&fm.Target).
				Validate(validateAmount),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewLogForm creates the check-in form for one habit
func NewLogForm(fm *LogFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Check in: "+fm.HabitName),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := utils.ParseDay(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title(fmt.Sprintf("Amount (%s)", fm.Unit)).
				Value(&fm.Amount).
				Validate(validateAmount),
		),
	).WithTheme(huh.ThemeDracula())
}
