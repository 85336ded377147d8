package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/utils"
)

type LogCmd struct {
	Add  LogAddCmd  `cmd:"" help:"Record an amount for a habit."`
	List LogListCmd `cmd:"" help:"List a habit's log entries."`
}

type LogAddCmd struct {
	HabitID int64   `arg:"" help:"Habit id."`
	Date    string  `help:"Day in YYYY-MM-DD format (default today)." short:"d"`
	Amount  float64 `help:"Amount in the habit's unit." required:"" short:"a"`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	day, err := utils.NormalizeDay(c.Date, ctx.Today)
	if err != nil {
		return err
	}

	habit, found, err := ctx.Store.GetHabit(c.HabitID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.Reference(c.HabitID)
	}

	if err := ctx.Store.AddLog(c.HabitID, day, c.Amount); err != nil {
		return err
	}

	ctx.Printf("Logged %g %s for %s on %s\n", c.Amount, habit.Kind.Unit(), habit.Name, day)
	return nil
}

type LogListCmd struct {
	HabitID int64 `arg:"" help:"Habit id."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	habit, found, err := ctx.Store.GetHabit(c.HabitID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.Reference(c.HabitID)
	}

	logs, err := ctx.Store.GetLogs(c.HabitID)
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	if len(logs) == 0 {
		ctx.Printf("No logs for %s yet.\n", habit.Name)
		return nil
	}

	ctx.Printf("%s (%s):\n", habit.Name, habit.Kind.Unit())
	for _, l := range logs {
		ctx.Printf("  %s  %g\n", l.Day, l.Amount)
	}
	return nil
}
