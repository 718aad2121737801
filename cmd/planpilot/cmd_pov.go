package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// povCmd shows or edits the session point of view.
var povCmd = &cobra.Command{
	Use:   "pov [dimension=value ...]",
	Short: "Show or set the session point of view",
	Long: `Without arguments, prints the session's current point of view.
With dimension=value arguments, updates those dimensions.

Examples:
  planpilot pov
  planpilot pov entity=E600 years=FY26
  planpilot pov -s budget-review scenario=Forecast`,
	RunE: runPOV,
}

func runPOV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) > 0 {
		changes := make(map[string]string, len(args))
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok || key == "" {
				return fmt.Errorf("invalid assignment %q, expected dimension=value", arg)
			}
			changes[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
		a.mem.SetPOV(sessionID, changes)
	}

	printPOV(a, sessionID)
	return nil
}
