package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"iv-go/internal/app"
	"iv-go/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an IVApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Rotate", "Delete").
func newApp(operation string, paths []string) (*app.IVApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewIVApp(cfg, operation, paths)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "iv",
	Short: "Image transformation tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Create config with defaults
		cfg := config.NewConfig(defaults["base_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Printf("Trash:    %s\n", cfg.Trash.Root)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Read config
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// Display config
		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Autosave:  %t\n", cfg.Images.Autosave)
		fmt.Printf("Trash:     %s (%s)\n", cfg.Trash.Root, cfg.Trash.Type)
		return nil
	},
}

// rotate command
var rotateCmd = &cobra.Command{
	Use:   "rotate PATH...",
	Short: "Rotate images clockwise in quarter turns",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetString("amount")

		a, err := newApp("Rotate", args)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Rotate(amount)
		return nil
	},
}

// flip command
var flipCmd = &cobra.Command{
	Use:   "flip PATH...",
	Short: "Mirror images horizontally or vertically",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vertical, _ := cmd.Flags().GetBool("vertical")

		a, err := newApp("Flip", args)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Flip(!vertical)
		return nil
	},
}

// delete command
var deleteCmd = &cobra.Command{
	Use:   "delete PATH...",
	Short: "Move images to trash",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if !force && !confirm(fmt.Sprintf("Move %d file(s) to trash?", len(args))) {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp("Delete", args)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Delete()
		return nil
	},
}

// undelete command
var undeleteCmd = &cobra.Command{
	Use:   "undelete BASENAME...",
	Short: "Restore images from trash by base name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Undelete", nil)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, basename := range args {
			a.Undelete(basename)
		}
		return nil
	},
}

// autorotate command
var autorotateCmd = &cobra.Command{
	Use:   "autorotate PATH...",
	Short: "Rotate images according to their EXIF orientation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Autorotate", args)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Autorotate()
		return nil
	},
}

// write command
var writeCmd = &cobra.Command{
	Use:   "write PATH...",
	Short: "Write pending changes to disk",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Write", args)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Write(false)
		return nil
	},
}

// trash command
var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Manage trash",
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trashed images, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("TrashList", nil)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.TrashList()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("Trash is empty.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %-20s  %s\n",
				e.DeletedAt.Format("2006-01-02 15:04:05"),
				e.Basename,
				e.OriginalPath,
			)
		}
		return nil
	},
}

// confirm asks the user to approve the prompt on an interactive terminal.
// Non-interactive input (pipes, scripts) counts as approval; scripted use
// passes --force anyway.
func confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}

	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// trash subcommands
	trashCmd.AddCommand(trashListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(rotateCmd)
	rotateCmd.Flags().StringP("amount", "n", "1", "Quarter turns clockwise, may be negative")
	rootCmd.AddCommand(flipCmd)
	flipCmd.Flags().BoolP("vertical", "v", false, "Mirror vertically instead of horizontally")
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(undeleteCmd)
	rootCmd.AddCommand(autorotateCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(trashCmd)
}
