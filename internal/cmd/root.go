package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/log"
	"github.com/driveterm/drive/internal/tui"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "Custom drive data directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().String("api-url", "", "Override the backend API URL for this run")

	rootCmd.Flags().BoolP("help", "h", false, "Help")

	// Links from the verification and reset emails.
	rootCmd.Flags().String("email", "", "Email to prefill on the first page")
	rootCmd.Flags().String("token", "", "Token from a verification or reset email")
	rootCmd.Flags().Bool("reset", false, "Open the reset password page with --email and --token")
}

var rootCmd = &cobra.Command{
	Use:   "drive",
	Short: "Terminal client for your cloud drive",
	Long: heredoc.Doc(`
		drive is a terminal front-end for a cloud file-storage service.
		Run it without arguments for the full screen interface, or use the
		subcommands to list, upload, download and organize files from scripts.
	`),
	Example: heredoc.Doc(`
		# Open the interactive interface
		drive

		# Run with debug logging in a specific directory
		drive -d -c /path/to/project

		# Finish signing up with the link from the verification email
		drive --email ada@example.com --token 3f2a...

		# Choose a new password with the link from the reset email
		drive --reset --email ada@example.com --token 9c1b...

		# Talk to another backend for this run
		drive --api-url https://drive.example.com/api

		# Print version
		drive -v
	`),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log.Setup(cfg.LogFile(), cfg.Options.Debug)

		app, err := setupApp(cmd, cfg)
		if err != nil {
			return err
		}
		defer app.Shutdown()
		defer log.RecoverPanic(cfg.Options.DataDirectory, "tui", app.Shutdown)

		if err := tui.Run(cmd.Context(), app, startOptions(cmd)); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

// startOptions maps the link flags to the first page. A token with an email
// opens email verification unless --reset asks for the reset page.
func startOptions(cmd *cobra.Command) tui.Options {
	email, _ := cmd.Flags().GetString("email")
	token, _ := cmd.Flags().GetString("token")
	reset, _ := cmd.Flags().GetBool("reset")

	opts := tui.Options{Email: email, Token: token}
	switch {
	case reset:
		opts.StartPage = page.ResetPassword
	case token != "":
		opts.StartPage = page.VerifyEmail
	}
	return opts
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(notifySignals()...),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the working directory and loads the configuration
// for it, applying the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Init(cwd, dataDir, debug)
	if err != nil {
		return nil, err
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.API.URL = apiURL
	}
	return cfg, nil
}

// setupApp creates the app for cfg, restoring the saved session.
func setupApp(cmd *cobra.Command, cfg *config.Config) (*app.App, error) {
	appInstance, err := app.New(cmd.Context(), cfg)
	if err != nil {
		slog.Error("Failed to create app instance", "error", err)
		return nil, err
	}
	return appInstance, nil
}

// withApp runs fn for a non-interactive command. Logs go to stderr so
// stdout stays clean for piping.
func withApp(cmd *cobra.Command, fn func(app *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.SetupConsole(cmd.ErrOrStderr(), cfg.Options.Debug)

	app, err := setupApp(cmd, cfg)
	if err != nil {
		return err
	}
	defer app.Shutdown()
	return fn(app)
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
