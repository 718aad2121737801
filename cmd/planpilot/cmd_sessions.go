package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"planpilot/internal/memory"
)

// sessionsCmd lists sessions with live context in the store.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions with remembered context",
	RunE:  runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	if !cfg.Memory.EnablePersistence {
		fmt.Println("Persistence is disabled; no sessions are stored.")
		return nil
	}

	store, err := memory.NewStore(cfg.Memory.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open memory store: %w", err)
	}
	defer store.Close()

	sessions, err := store.Sessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	fmt.Println(labelStyle.Render("Sessions"))
	for _, id := range sessions {
		n, err := store.HistoryCount(id)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s\n", id, dimStyle.Render(fmt.Sprintf("(%d queries)", n)))
	}
	return nil
}
