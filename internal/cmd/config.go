package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/driveterm/drive/internal/config"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd, schemaCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change the global configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a value from the global config file",
	Example: heredoc.Doc(`
		drive config get options.theme
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, ok, err := config.GetConfigField(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not set in %s", args[0], config.GlobalConfig())
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Write a value to the global config file",
	Example: heredoc.Doc(`
		drive config set api.url https://drive.example.com/api
		drive config set options.layout list
		drive config set keymaps.upload ctrl+u
	`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]
		if err := validateField(key, raw); err != nil {
			return err
		}
		if err := config.SetConfigField(key, parseValue(raw)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, config.GlobalConfig())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the global config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GlobalConfig())
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Print the JSON schema of the config file",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := jsonschema.Reflector{
			DoNotReference: true,
		}
		schema := reflector.Reflect(&config.Config{})
		schema.Title = "drive configuration"

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}
		return nil
	},
}

var enumFields = map[string][]string{
	"options.theme":  {config.ThemeDark, config.ThemeLight},
	"options.layout": {config.LayoutGrid, config.LayoutList},
}

func validateField(key, value string) error {
	allowed, ok := enumFields[key]
	if !ok || slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid value %q for %s, want one of %v", value, key, allowed)
}

// parseValue keeps booleans and numbers typed in the JSON file.
func parseValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
