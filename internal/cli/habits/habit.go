package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its logs."`
}

type HabitAddCmd struct {
	Name   string  `arg:"" help:"Habit name."`
	Kind   string  `help:"Habit kind: exercise, study or sleep." default:"exercise" short:"k"`
	Target float64 `help:"Daily target (minutes, or hours for sleep)." default:"30" short:"t"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseKind(c.Kind)
	if err != nil {
		return apperrors.Validation("kind", err.Error())
	}

	id, err := ctx.Store.AddHabit(c.Name, kind, c.Target)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit #%d: %s (%s, target %g %s/day)\n", id, c.Name, kind, c.Target, kind.Unit())
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.Println("No habits found. Add one with 'habitual habit add'.")
		return nil
	}

	for _, h := range habits {
		ctx.Printf("  #%-4d %-24s %-8s target %g %s/day\n", h.ID, h.Name, h.Kind, h.TargetPerDay, h.Kind.Unit())
	}
	return nil
}

type HabitDeleteCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, found, err := ctx.Store.GetHabit(c.ID)
	if err != nil {
		return err
	}
	if !found {
		ctx.Printf("No habit with id %d, nothing to delete.\n", c.ID)
		return nil
	}

	if err := ctx.BackupBeforeDelete(); err != nil {
		return fmt.Errorf("refusing to delete without a backup: %w", err)
	}
	if err := ctx.Store.DeleteHabit(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit #%d: %s\n", habit.ID, habit.Name)
	return nil
}
