// rain draws falling columns of glyphs in the terminal until interrupted.
//
// Usage:
//
//	rain                      - Run the animation
//	rain list                 - List themes, character sets, presets and renderers
//
// Every flag defaults to the matching RAIN_* environment variable:
//
//	--color <name|#hex>   - Theme or base color (RAIN_COLOR, default: green)
//	--charset <name>      - Built-in character set (RAIN_CHARSET)
//	--fps <rate>          - Frames per second (RAIN_FPS, default: 25)
//	--renderer <id>       - Terminal backend (RAIN_RENDERER, default: tui)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rain/internal/config"

	// Import backends to register them
	_ "github.com/vovakirdan/tui-rain/internal/platform/ansi"
	_ "github.com/vovakirdan/tui-rain/internal/platform/tcellterm"
	_ "github.com/vovakirdan/tui-rain/internal/platform/tui"
)

var (
	opts    config.Options
	envErr  error
	logFile string
	debug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rain",
	Short: "Digital rain in your terminal",
	Long: `Columns of glyphs fall down the terminal, each led by a bright head
and trailed by a fading tail. Press q, Esc or Ctrl+C to stop.

Examples:
  rain
  rain --color blue --charset katakana
  rain --color '#ff8800' --mode saturation
  rain --preset storm --renderer tcell
  RAIN_FPS=40 rain --sync`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return envErr
	},
	RunE: runRain,
}

func init() {
	opts, envErr = config.FromEnv()
	if envErr != nil {
		opts = config.DefaultOptions()
	}

	f := rootCmd.Flags()
	f.StringVarP(&opts.Color, "color", "c", opts.Color, "Theme name or #rrggbb base color")
	f.StringVarP(&opts.Mode, "mode", "m", opts.Mode, "Trail coloring: lightness, saturation, rainbow (default: theme's)")
	f.StringVar(&opts.Charset, "charset", opts.Charset, "Built-in character set")
	f.StringVar(&opts.Chars, "chars", opts.Chars, "Custom characters, overrides --charset")
	f.StringVarP(&opts.Preset, "preset", "p", opts.Preset, "Density and speed preset: drizzle, normal, storm, sync (explicit flags win)")
	f.IntVarP(&opts.FPS, "fps", "f", opts.FPS, "Frames per second")
	f.Float64VarP(&opts.Density, config.OptDensity, "d", opts.Density, "Chance per tick that an empty column starts a drop (0-1)")
	f.Float64Var(&opts.MinSpeed, config.OptMinSpeed, opts.MinSpeed, "Slowest drop in rows per tick (0-1]")
	f.Float64Var(&opts.MaxSpeed, config.OptMaxSpeed, opts.MaxSpeed, "Fastest drop in rows per tick (0-1]")
	f.IntVar(&opts.MinLength, "min-length", opts.MinLength, "Shortest trail")
	f.IntVar(&opts.MaxLength, "max-length", opts.MaxLength, "Longest trail (0 = terminal height - 4)")
	f.Float64Var(&opts.Flicker, "flicker", opts.Flicker, "Chance per glyph per tick of changing (0-1)")
	f.BoolVarP(&opts.Sync, "sync", "s", opts.Sync, "All drops fall at the max speed")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "RNG seed (0 = random based on time)")
	f.StringVarP(&opts.Renderer, "renderer", "r", opts.Renderer, "Terminal backend (see 'rain list')")

	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (default: discarded)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
}
