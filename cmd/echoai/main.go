// Command echoai is the terminal client for the ECHO AI digital memory
// backend: register, log in, store memories, train replicas, and talk to
// AI companions from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"echoai/cmd/echoai/chat"
	"echoai/internal/config"
	"echoai/internal/dispatch"
	"echoai/internal/logging"
	"echoai/internal/session"
)

var (
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
	appCtx *app
)

var rootCmd = &cobra.Command{
	Use:   "echoai",
	Short: "Terminal client for ECHO AI",
	Long:  "echoai talks to an ECHO AI backend: capture memories, train digital replicas, and chat with AI companions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		logCfg := cfg.Logging
		if verbose {
			logCfg.Level = "debug"
		}
		logger, err = logging.New(logCfg)
		if err != nil {
			return err
		}

		appCtx, err = buildApp(cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

// runChat verifies the session and starts the interactive TUI.
func runChat(ctx context.Context) error {
	if err := appCtx.sessions.Startup(ctx); err != nil {
		return err
	}
	if appCtx.sessions.Status() != session.Authenticated {
		fmt.Println("You are not logged in. Run `echoai login` first.")
		return nil
	}

	dispatcher := dispatch.New(appCtx.client, cfg.Chat.DefaultService, appCtx.feed, logger, dispatch.Options{
		PreferredProvider: cfg.Chat.PreferredProvider,
		SmartFallback:     cfg.Chat.SmartFallback,
	})

	model := chat.New(appCtx.client, dispatcher, appCtx.sessions, appCtx.feed, logger, chat.Options{
		Markdown: cfg.UI.Markdown,
		DarkMode: cfg.UI.DarkMode,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(memoriesCmd)
	rootCmd.AddCommand(replicasCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
