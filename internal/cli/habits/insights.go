package habits

import (
	"github.com/julianstephens/habitual/internal/analyzer"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/tui/components/chart"
)

type InsightsCmd struct {
	HabitID int64 `arg:"" help:"Habit id."`
	Chart   bool  `help:"Render a bar chart of recent daily totals."`
	Days    int   `help:"Number of days shown in the chart." default:"14"`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > 366 {
		return apperrors.Validation("days", "must be between 1 and 366")
	}

	habit, found, err := ctx.Store.GetHabit(c.HabitID)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.Reference(c.HabitID)
	}
	logs, err := ctx.Store.GetLogs(habit.ID)
	if err != nil {
		return err
	}

	today := ctx.Today()
	insight, err := analyzer.Analyze(habit, logs, today)
	if err != nil {
		return err
	}

	ctx.Printf("%s (%s)\n", habit.Name, habit.Kind.Label())
	ctx.Printf("Target:  %g %s/day\n", habit.TargetPerDay, habit.Kind.Unit())
	ctx.Printf("Streak:  %d day(s)\n", insight.Streak)
	ctx.Printf("Today:   %g %s\n", analyzer.DailyTotals(logs)[today.Format(constants.DateFormat)], habit.Kind.Unit())
	ctx.Println(insight.Message)

	if c.Chart {
		series := analyzer.Recent(habit.TargetPerDay, logs, today, c.Days)
		ctx.Println()
		ctx.Println(chart.Render(series, habit.TargetPerDay, habit.Kind.Unit(), chart.DefaultWidth))
	}
	return nil
}
