package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rain/internal/config"
	"github.com/vovakirdan/tui-rain/internal/glyph"
	"github.com/vovakirdan/tui-rain/internal/palette"
	"github.com/vovakirdan/tui-rain/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes, character sets, presets and renderers",
	Long:  `Shows every named value accepted by --color, --charset, --preset and --renderer.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	writeList(cmd.OutOrStdout())
}

func writeList(w io.Writer) {
	themes := palette.Themes()
	rows := make([][2]string, 0, len(themes))
	for _, t := range themes {
		desc := t.Base.Hex() + " " + t.Mode.String()
		if t.Notes != "" {
			desc += " (" + t.Notes + ")"
		}
		rows = append(rows, [2]string{t.Name, desc})
	}
	writeTable(w, "Themes", rows)

	rows = rows[:0]
	for _, name := range glyph.Names() {
		set, _ := glyph.Builtin(name)
		rows = append(rows, [2]string{name, sample(set, 24)})
	}
	writeTable(w, "Character sets", rows)

	rows = rows[:0]
	for _, p := range config.Presets() {
		rows = append(rows, [2]string{string(p), p.Describe()})
	}
	writeTable(w, "Presets", rows)

	rows = rows[:0]
	for _, b := range registry.List() {
		rows = append(rows, [2]string{b.ID, b.Title})
	}
	writeTable(w, "Renderers", rows)
}

func writeTable(w io.Writer, title string, rows [][2]string) {
	fmt.Fprintf(w, "%s:\n", title)

	// Calculate column width
	maxLen := 0
	for _, r := range rows {
		if len(r[0]) > maxLen {
			maxLen = len(r[0])
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-*s  %s\n", maxLen, r[0], r[1])
	}
	fmt.Fprintln(w)
}

// sample returns up to n glyphs of a set, followed by an ellipsis if truncated.
func sample(set []rune, n int) string {
	if len(set) <= n {
		return string(set)
	}
	return string(set[:n]) + "…"
}
