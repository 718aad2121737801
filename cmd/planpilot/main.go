package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"planpilot/internal/config"
	"planpilot/internal/logging"
)

var (
	// Global flags
	configPath string
	sessionID  string
	verbose    bool
	mockMode   bool

	cfg *config.Config
)

// rootCmd is the base command; running it without a subcommand starts the
// interactive chat.
var rootCmd = &cobra.Command{
	Use:   "planpilot",
	Short: "planpilot - agentic assistant for Oracle EPM Cloud Planning",
	Long: `planpilot turns natural-language planning questions into multi-step
tool plans: it classifies the intent, enriches parameters from the
conversation's point of view, executes the plan wave by wave, and
synthesizes the results.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if mockMode {
			cfg.Planning.MockMode = true
		}

		logCfg := cfg.Logging
		if verbose {
			logCfg.Level = "debug"
		}
		if err := logging.Initialize(logCfg); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "planpilot.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "default", "Session ID for conversation memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&mockMode, "mock", false, "Force mock mode (no planning connection)")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(povCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
