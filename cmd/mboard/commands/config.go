package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"mboard/internal/infrastructure/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage mboard configuration settings.

Configuration is stored in YAML format at:
  ~/.config/mboard/config.yml

Set MBOARD_CONFIG or pass --config to use another file.

Examples:
  # Show current configuration
  mboard config show

  # Edit config in editor
  mboard config edit

  # Show config file location
  mboard config path

  # Reset config to defaults
  mboard config reset --force`,
	Annotations: noBackend(),
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration settings.

Text output is YAML; use --output json for JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatter.Structured() {
			return formatter.Print(cfg)
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// configEditCmd opens the config file in an editor
var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit config in editor",
	Long: `Open the configuration file in your default editor.

The editor is determined by the EDITOR environment variable (default: vi).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := loader.GetConfigPath()

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		printer.Info("Opening config file: %s", path)
		printer.Subtle("Editor: %s", editor)

		editorCmd := exec.CommandContext(getContext(cmd), editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr

		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			printer.Warning("Config no longer loads: %v", err)
			return nil
		}
		printer.Success("Config file edited")
		printer.Info("Restart mboard and mboardd for changes to take effect")
		return nil
	},
}

// configPathCmd shows the config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), loader.GetConfigPath())
		return nil
	},
}

// configResetCmd resets the config to defaults
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset config to defaults",
	Long: `Reset the configuration to default values.

WARNING: This overwrites your current configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			printer.Warning("About to reset %s to defaults", loader.GetConfigPath())
			return fmt.Errorf("refusing to reset config without --force")
		}

		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		if err := loader.Save(config.Default(homeDir)); err != nil {
			return err
		}
		printer.Success("Config reset: %s", loader.GetConfigPath())
		return nil
	},
}

func init() {
	configResetCmd.Flags().Bool("force", false, "Reset without confirmation")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}
