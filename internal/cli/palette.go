package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/preview"
	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

// paletteCommand creates the palette management command.
func (c *CLI) paletteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Manage the named color palette",
	}

	cmd.AddCommand(c.paletteListCommand())
	cmd.AddCommand(c.paletteAddCommand())
	cmd.AddCommand(c.paletteRemoveCommand())
	cmd.AddCommand(c.paletteResetCommand())
	cmd.AddCommand(c.palettePathCommand())

	return cmd
}

func (c *CLI) paletteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the palette",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, store palette.Store) error {
				fmt.Fprintln(cmd.OutOrStdout(), paletteTable(store.Load(ctx)))
				return nil
			})
		},
	}
}

func (c *CLI) paletteAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME R,G,B",
		Short: "Add a color, or change the RGB of an existing name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, store palette.Store) error {
				entries, replaced, err := addEntry(store.Load(ctx), args[0], args[1])
				if err != nil {
					return err
				}
				if err := store.Save(ctx, entries); err != nil {
					return err
				}
				verb := "Added"
				if replaced {
					verb = "Updated"
				}
				printSuccess("%s %s %s", verb, StyleHighlight.Render(strings.TrimSpace(args[0])), swatch(args[1]))
				return nil
			})
		},
	}
}

func (c *CLI) paletteRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [NAME]",
		Aliases: []string{"rm"},
		Short:   "Remove a color (pick interactively without NAME)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, store palette.Store) error {
				entries := store.Load(ctx)

				name := ""
				if len(args) == 1 {
					name = args[0]
				} else {
					picked, err := pickEntry(entries)
					if err != nil {
						return err
					}
					if picked == nil {
						printInfo("Nothing removed")
						return nil
					}
					name = picked.Name
				}

				rest, ok := removeEntry(entries, name)
				if !ok {
					return perrors.New(perrors.ErrCodeNotFound, "no palette color named %q", name)
				}
				if err := store.Save(ctx, rest); err != nil {
					return err
				}
				printSuccess("Removed %s", StyleHighlight.Render(name))
				if len(rest) == 0 {
					printWarning("Palette is empty; defaults are restored on next load")
				}
				return nil
			})
		},
	}
}

func (c *CLI) paletteResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the palette with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, store palette.Store) error {
				if err := store.Save(ctx, palette.Defaults()); err != nil {
					return err
				}
				printSuccess("Palette reset to %d default colors", len(palette.Defaults()))
				return nil
			})
		},
	}
}

func (c *CLI) palettePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the palette is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), palette.Location(c.cfg.Palette))
			return nil
		},
	}
}

// withStore opens the palette store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(context.Context, palette.Store) error) error {
	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store)
}

// =============================================================================
// Palette Editing
// =============================================================================

// addEntry appends name, or updates its RGB when the name already exists.
func addEntry(entries []palette.Entry, name, rgb string) ([]palette.Entry, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, perrors.New(perrors.ErrCodeInvalidInput, "color name must not be empty")
	}
	norm, ok := palette.NormalizeRGB(rgb)
	if !ok {
		return nil, false, perrors.New(perrors.ErrCodeInvalidColor, "invalid rgb %q (want R,G,B with values 0-255)", rgb)
	}

	out := slices.Clone(entries)
	for i := range out {
		if out[i].Name == name {
			out[i].RGB = norm
			return out, true, nil
		}
	}
	return append(out, palette.Entry{Name: name, RGB: norm}), false, nil
}

// removeEntry drops every entry called name.
func removeEntry(entries []palette.Entry, name string) ([]palette.Entry, bool) {
	name = strings.TrimSpace(name)
	out := slices.DeleteFunc(slices.Clone(entries), func(e palette.Entry) bool {
		return e.Name == name
	})
	return out, len(out) != len(entries)
}

// pickEntry runs the interactive palette picker.
func pickEntry(entries []palette.Entry) (*palette.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	final, err := tea.NewProgram(NewPaletteListModel(entries)).Run()
	if err != nil {
		return nil, fmt.Errorf("palette picker: %w", err)
	}
	return final.(PaletteListModel).Selected, nil
}

// =============================================================================
// Rendering
// =============================================================================

// swatch renders a small block in the given color, or a dim placeholder.
func swatch(rgb string) string {
	norm, _ := palette.NormalizeRGB(rgb)
	hex, ok := preview.HexColor(norm)
	if !ok {
		return StyleDim.Render("····")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
}

// paletteTable renders entries with their swatch and the TikZ color name
// the composer derives from each palette name.
func paletteTable(entries []palette.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		ident := tikz.Identifier(e.Name)
		if ident == "" {
			ident = StyleDim.Render("(per element)")
		}
		rows[i] = []string{swatch(e.RGB), e.Name, e.RGB, ident}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "RGB", "TikZ").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return lipgloss.NewStyle()
			}
		}).
		Render()
}
