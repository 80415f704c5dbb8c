package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuidock configuration",
		Long:  `Manage the tuidock configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tuidock configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuidock configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running tuidock picks up
the change without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var force bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuidock configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(force)
		},
	}
	configResetCmd.Flags().BoolVarP(&force, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect tuidock keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)
	return keybindsCmd
}

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor picks $EDITOR, then $VISUAL, then the first common editor found.
func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// LoadFrom writes the defaults when the file does not exist yet.
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadFrom(configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	// $EDITOR may carry arguments, e.g. "code --wait".
	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], configPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// confirm asks a yes/no question on stdin. Without a terminal it answers no.
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Printf("%s (yes/no): ", question)
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "yes" || response == "y"
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(force bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		if !confirm("Are you sure you want to reset to defaults?") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(configPath, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: tuidock config edit")
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// newTable returns a table in the style every listing uses.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// keybindSections lists actions in the order the help overlay shows them.
func keybindSections(cfg *config.UserConfig) []struct {
	Title   string
	Actions map[string][]string
} {
	return []struct {
		Title   string
		Actions map[string][]string
	}{
		{"Tabs", cfg.Keybindings.Tabs},
		{"Layout", cfg.Keybindings.Layout},
		{"System", cfg.Keybindings.System},
	}
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		userConfig = config.DefaultConfig()
	}

	printKeybindingsTable(userConfig, config.NewKeybindRegistry(userConfig))
	return nil
}

// printKeybindingsTable prints keybindings in a pretty table format
func printKeybindingsTable(cfg *config.UserConfig, registry *config.KeybindRegistry) {
	out := stdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("tuidock Keybindings"))
	fmt.Fprintln(out)

	for _, section := range keybindSections(cfg) {
		actions := make([]string, 0, len(section.Actions))
		for action := range section.Actions {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		rows := [][]string{}
		for _, action := range actions {
			keys := registry.GetKeysForDisplay(action)
			if keys == "" {
				continue // Skip unbound actions
			}
			rows = append(rows, []string{keys, formatActionName(action)})
		}

		if len(rows) == 0 {
			continue
		}

		fmt.Fprintln(out, sectionStyle.Render(section.Title))
		fmt.Fprintln(out, newTable("Keys", "Action").Rows(rows...).Render())
		fmt.Fprintln(out)
	}

	note := dimStyle.Italic(true).
		Render("Note: dragging tabs with the mouse is not configurable. Press ? inside tuidock for the gestures.")
	fmt.Fprintln(out, note)
	fmt.Fprintln(out)
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	out := stdout()
	customizations := findCustomizations(userConfig, config.DefaultConfig())

	if len(customizations) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'tuidock keybinds list' to see all keybindings.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Custom Keybindings"))
	fmt.Fprintln(out)

	rows := [][]string{}
	for _, custom := range customizations {
		rows = append(rows, []string{
			custom.Action,
			custom.DefaultKeys,
			custom.CustomKeys,
		})
	}

	fmt.Fprintln(out, newTable("Action", "Default", "Custom").Rows(rows...).Render())
	fmt.Fprintln(out)

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations)))
	fmt.Fprintln(out, note)
	fmt.Fprintln(out)
	return nil
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults
func findCustomizations(userCfg, defaultCfg *config.UserConfig) []Customization {
	var customizations []Customization

	compareSections := func(userSection, defaultSection map[string][]string) {
		actions := make([]string, 0, len(defaultSection))
		for action := range defaultSection {
			actions = append(actions, action)
		}
		slices.Sort(actions)

		for _, action := range actions {
			userKeys, exists := userSection[action]
			if !exists {
				continue // Using default
			}
			defaultKeys := defaultSection[action]
			if !slices.Equal(userKeys, defaultKeys) {
				customizations = append(customizations, Customization{
					Action:      formatActionName(action),
					DefaultKeys: strings.Join(defaultKeys, ", "),
					CustomKeys:  strings.Join(userKeys, ", "),
				})
			}
		}
	}

	compareSections(userCfg.Keybindings.Tabs, defaultCfg.Keybindings.Tabs)
	compareSections(userCfg.Keybindings.Layout, defaultCfg.Keybindings.Layout)
	compareSections(userCfg.Keybindings.System, defaultCfg.Keybindings.System)

	return customizations
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	if desc, ok := config.ActionDescriptions[action]; ok {
		return desc
	}
	return strings.ReplaceAll(action, "_", " ")
}
