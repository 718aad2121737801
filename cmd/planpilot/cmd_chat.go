package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"planpilot/internal/rl"
)

// chatCmd starts the interactive REPL over the orchestrator.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive planning assistant session",
	Long: `Starts an interactive session. Each line is processed through the
full reasoning pipeline and the conversation's point of view carries
across queries.

Commands inside the session:
  /pov     show the current point of view
  /quit    end the session`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println(titleStyle.Render("planpilot") + dimStyle.Render("  session: "+sessionID))
	fmt.Println(dimStyle.Render("Ask about your planning data. /quit to exit."))

	anyFailure := false
	processed := 0
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(bulletStyle.Render("> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit", line == "exit", line == "quit":
			goto done
		case line == "/pov":
			printPOV(a, sessionID)
			continue
		}

		resp := a.orch.Process(ctx, line, sessionID)
		fmt.Print(renderResponse(resp))
		processed++
		if !resp.Success {
			anyFailure = true
		}

		select {
		case <-ctx.Done():
			goto done
		default:
		}
	}

done:
	outcome := rl.OutcomeSuccess
	switch {
	case processed == 0:
		return nil
	case anyFailure:
		outcome = rl.OutcomePartial
	}
	a.orch.FinalizeSession(ctx, sessionID, outcome)
	fmt.Println(dimStyle.Render("Session saved."))
	return nil
}

func printPOV(a *app, session string) {
	pov := a.mem.GetPOV(session)
	fmt.Println(labelStyle.Render("Point of view"))
	for _, kv := range [][2]string{
		{"years", pov.Years}, {"period", pov.Period}, {"scenario", pov.Scenario},
		{"version", pov.Version}, {"currency", pov.Currency}, {"entity", pov.Entity},
		{"cost_center", pov.CostCenter}, {"future1", pov.Future1},
		{"region", pov.Region}, {"account", pov.Account},
	} {
		value := kv[1]
		if value == "" {
			value = dimStyle.Render("(unset)")
		}
		fmt.Printf("  %-12s %s\n", kv[0], value)
	}
}
