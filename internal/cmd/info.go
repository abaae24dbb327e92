package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/session"
	"github.com/driveterm/drive/internal/tui/components/core"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration information",
	Long:  `Display information about the current configuration including the config files in use, the backend, the log path, and the saved session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		t := styles.CurrentTheme()
		const maxWidth = 80

		sections := []string{
			core.Title("Configuration Information", maxWidth),
			"",
			renderConfigSection(t, cfg),
			"",
			renderBackendSection(t, cfg, maxWidth),
			"",
			renderSessionSection(t, cfg, maxWidth),
		}

		fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, sections...))
		return nil
	},
}

func detail(t *styles.Theme, label, value string) string {
	return fmt.Sprintf("%s %s", t.S().Subtle.Render(label+":"), t.S().Text.Render(value))
}

// renderConfigSection renders the configuration details section with styling
func renderConfigSection(t *styles.Theme, cfg *config.Config) string {
	configFiles := "No configuration file found (using defaults)"
	if paths := config.ConfigPaths(cfg.WorkingDir()); len(paths) > 0 {
		configFiles = strings.Join(paths, ", ")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		detail(t, "Configuration Files", configFiles),
		detail(t, "Log Path", cfg.LogFile()),
		detail(t, "Working Directory", cfg.WorkingDir()),
		detail(t, "Data Directory", cfg.Options.DataDirectory),
		detail(t, "Download Directory", cfg.Options.DownloadDir),
		detail(t, "Theme", cfg.Options.Theme),
		detail(t, "Layout", cfg.Options.Layout),
	)
}

func renderBackendSection(t *styles.Theme, cfg *config.Config, maxWidth int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		core.Section("Backend", maxWidth),
		"",
		"  "+detail(t, "URL", cfg.API.URL),
		"  "+detail(t, "Timeout", cfg.API.RequestTimeout().String()),
		"  "+detail(t, "Retries", strconv.FormatUint(cfg.API.RetryCount(), 10)),
	)
}

// renderSessionSection reads the saved session from disk without contacting
// the backend.
func renderSessionSection(t *styles.Theme, cfg *config.Config, maxWidth int) string {
	title := core.Section("Session", maxWidth)
	if cfg.Options.DisableSessionPersistence {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", t.S().Muted.Render("  Session persistence is disabled"))
	}

	store := session.NewStore(cfg.SessionFile())
	saved, err := store.Load()
	switch {
	case errors.Is(err, session.ErrNoSession):
		return lipgloss.JoinVertical(lipgloss.Left, title, "", t.S().Muted.Render("  Not logged in"))
	case err != nil:
		return lipgloss.JoinVertical(lipgloss.Left, title, "", t.S().Error.Render("  "+err.Error()))
	}

	status := t.S().Success.Render("active")
	if session.Expired(saved.Token, time.Now()) {
		status = t.S().Warning.Render("expired")
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("  %s %s %s",
			t.S().Text.Render("•"),
			t.S().Title.Render(fmt.Sprintf("%s <%s>:", saved.User.FullName(), saved.User.Email)),
			status),
		"    " + detail(t, "File", store.Path()),
	}
	if exp, ok := session.ExpiresAt(saved.Token); ok {
		lines = append(lines, "    "+detail(t, "Expires", drive.FormatRelative(exp)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
