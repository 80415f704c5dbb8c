package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/tree"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
)

// stdout downsamples colours to what the terminal supports and strips them
// when the output is piped.
func stdout() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

func newLayoutCmd() *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect saved layouts",
		Long: `Inspect and manage saved layouts

Layouts are written when tuidock exits (unless autosave is off) and when
you press the save_layout key. Commands take an optional layout name and
default to the configured one.`,
	}

	layoutPathCmd := &cobra.Command{
		Use:   "path [name]",
		Short: "Print the layout file path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, name, err := resolveLayout(args)
			if err != nil {
				return err
			}
			fmt.Println(store.Path(name))
			return nil
		},
	}

	layoutListCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved layouts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := resolveLayout(nil)
			if err != nil {
				return err
			}
			return listLayouts(stdout(), store)
		},
	}

	var asJSON bool
	layoutShowCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a saved layout",
		Long: `Show a saved layout as a tree of areas, splitters, stacks and tabs

With --json the layout is printed as JSON instead, for scripts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, name, err := resolveLayout(args)
			if err != nil {
				return err
			}
			l, ok, err := store.Load(name)
			if err != nil {
				return fmt.Errorf("load layout %q: %w", name, err)
			}
			if !ok {
				return fmt.Errorf("no saved layout named %q", name)
			}
			if asJSON {
				data, err := l.EncodeJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(os.Stdout, string(data))
				return err
			}
			_, err = fmt.Fprintln(stdout(), renderLayoutTree(l))
			return err
		},
	}
	layoutShowCmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")

	var force bool
	layoutResetCmd := &cobra.Command{
		Use:   "reset [name]",
		Short: "Delete a saved layout",
		Long: `Delete a saved layout

The next start falls back to the default arrangement.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, name, err := resolveLayout(args)
			if err != nil {
				return err
			}
			if _, err := os.Stat(store.Path(name)); err != nil {
				fmt.Printf("No saved layout named %q.\n", name)
				return nil
			}
			if !force && !confirm(fmt.Sprintf("Delete layout %q?", name)) {
				fmt.Println("Reset cancelled.")
				return nil
			}
			if err := store.Delete(name); err != nil {
				return fmt.Errorf("delete layout %q: %w", name, err)
			}
			fmt.Printf("Layout %q deleted\n", name)
			return nil
		},
	}
	layoutResetCmd.Flags().BoolVarP(&force, "yes", "y", false, "Do not ask for confirmation")

	layoutCmd.AddCommand(layoutPathCmd, layoutListCmd, layoutShowCmd, layoutResetCmd)
	return layoutCmd
}

// resolveLayout opens the default store and picks the layout name from the
// arguments, the --layout flag or the config, in that order.
func resolveLayout(args []string) (*layout.Store, string, error) {
	dir, err := layout.DefaultDir()
	if err != nil {
		return nil, "", err
	}
	logger := cliLogger()
	if !debugMode {
		logger.SetLevel(log.WarnLevel)
	}
	store, err := layout.NewStore(dir, logger)
	if err != nil {
		return nil, "", err
	}

	switch {
	case len(args) > 0:
		return store, args[0], nil
	case layoutName != "":
		return store, layoutName, nil
	}
	cfg, err := config.LoadUserConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return store, cfg.Layout.Name, nil
}

func listLayouts(out io.Writer, store *layout.Store) error {
	names, err := store.List()
	if err != nil {
		return fmt.Errorf("list layouts: %w", err)
	}
	if len(names) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No saved layouts in "+store.Dir()))
		return nil
	}
	slices.Sort(names)

	rows := [][]string{}
	for _, name := range names {
		l, _, err := store.Load(name)
		if err != nil {
			rows = append(rows, []string{name, "-", "-", "unreadable: " + err.Error()})
			continue
		}
		floating, tabs := 0, 0
		for _, a := range l.Areas {
			if !a.Primary {
				floating++
			}
			tabs += len(a.TabIDs())
		}
		rows = append(rows, []string{name, strconv.Itoa(tabs), strconv.Itoa(floating), ""})
	}

	fmt.Fprintln(out, newTable("Name", "Tabs", "Floating", "Note").Rows(rows...).Render())
	return nil
}

var (
	treeRootStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	treeEnumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1)
	treeFrontStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// renderLayoutTree draws a layout as a tree, one branch per area.
func renderLayoutTree(l *layout.Layout) string {
	root := tree.Root(fmt.Sprintf("%s (v%d)", l.Name, l.Version)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle).
		RootStyle(treeRootStyle)
	for _, a := range l.Areas {
		root.Child(layoutBranch(a))
	}
	return root.String()
}

func layoutBranch(n *layout.Node) any {
	switch n.Kind {
	case layout.KindArea:
		t := tree.Root(areaLabel(n))
		for _, c := range n.Children {
			t.Child(layoutBranch(c))
		}
		return t

	case layout.KindSplitter:
		t := tree.Root(fmt.Sprintf("splitter %s ×%.2f", n.Orientation, n.SizeCoefficient))
		for _, c := range n.Children {
			t.Child(layoutBranch(c))
		}
		return t

	case layout.KindStack:
		t := tree.Root(fmt.Sprintf("stack ×%.2f", n.SizeCoefficient))
		for _, tab := range n.Tabs {
			switch {
			case tab.State == layout.TabClosed:
				t.Child(dimStyle.Render(tab.ID + " (closed)"))
			case tab.ID == n.Foreground:
				t.Child(treeFrontStyle.Render(tab.ID + " ●"))
			default:
				t.Child(tab.ID)
			}
		}
		return t
	}
	return string(n.Kind)
}

func areaLabel(n *layout.Node) string {
	if n.Primary {
		return fmt.Sprintf("main area %s", n.Orientation)
	}
	label := fmt.Sprintf("floating area %s", n.Orientation)
	if n.WindowPosition != nil {
		label += fmt.Sprintf(" at %.0f,%.0f", n.WindowPosition.X, n.WindowPosition.Y)
	}
	if n.WindowSize != nil {
		label += fmt.Sprintf(" %.0f×%.0f", n.WindowSize.W, n.WindowSize.H)
	}
	if n.IsMaximized {
		label += " (maximized)"
	}
	return label
}
