package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planpilot/internal/rl"
)

// queryCmd runs one query through the full pipeline and exits.
var queryCmd = &cobra.Command{
	Use:   "query <natural language question>",
	Short: "Run a single planning query through the reasoning pipeline",
	Long: `Runs one natural-language query end to end and prints the results.

Examples:
  planpilot query "show me total revenue for Chicago"
  planpilot query "compare actual vs forecast for FY25"
  planpilot query -s budget-review "copy data from forecast to budget"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	resp := a.orch.Process(ctx, query, sessionID)
	fmt.Print(renderResponse(resp))

	outcome := rl.OutcomeFailure
	switch {
	case resp.Success:
		outcome = rl.OutcomeSuccess
	case len(resp.Results) > 0:
		outcome = rl.OutcomePartial
	}
	a.orch.FinalizeSession(ctx, sessionID, outcome)
	return nil
}
