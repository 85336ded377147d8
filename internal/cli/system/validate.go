package system

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when problems are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}

	ctx.Println("Validating habits and logs...")
	ctx.Println()
	ctx.Println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("validation found %d problem(s)", len(result.Conflicts))
	}
	return nil
}

func validateStore(ctx *cli.Context) (validation.ValidationResult, error) {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load habits: %w", err)
	}
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load logs: %w", err)
	}
	return validation.NewWithClock(ctx.Today).Validate(habits, logs), nil
}
