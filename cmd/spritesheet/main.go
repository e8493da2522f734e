// Command spritesheet packs the images of a directory into one grid image.
//
// Usage:
//
//	spritesheet [auto] [flags]
//	spritesheet identify [flags]
//
// With "auto" the number of images per row is floor(sqrt(n)); otherwise it
// comes from --rows or is asked for on stdin. Only images sharing the most
// common resolution are used. The result is written as spritesheet.png.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/setanarut/spritesheet"
	"github.com/setanarut/spritesheet/internal/config"
	"github.com/setanarut/spritesheet/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.DefaultConfig()
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spritesheet [auto]",
	Short: "Pack same-sized images from a directory into a spritesheet",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		l, err := logging.NewLogger(&cfg)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		logger = l
		return nil
	},
	RunE:          runBuild,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfg.SourceDir, "dir", "d", cfg.SourceDir, "Directory to read images from")
	pf.StringSliceVar(&cfg.Formats, "format", cfg.Formats, "Recognized file extensions (exact case)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	pf.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	pf.DurationVar(&cfg.ExitDelay, "exit-delay", cfg.ExitDelay, "Pause after printing an error")

	f := rootCmd.Flags()
	f.StringVarP(&cfg.OutputDir, "out", "o", "", "Directory to write the sheet to (default: --dir)")
	f.StringVar(&cfg.OutputName, "name", cfg.OutputName, "Output file name")
	f.IntVarP(&cfg.Rows, "rows", "r", 0, "Images per row; skips the prompt")
	f.IntVar(&cfg.PaletteSize, "palette", 0, "Log an N-color palette of the sheet")
	f.StringVar(&cfg.PaletteMethod, "palette-method", cfg.PaletteMethod, "Palette method: dominantcolor | kmeans")
	f.StringVar(&cfg.PaletteFile, "palette-file", "", "Write the palette swatch to this PNG")
}

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		logger.Close()
	}
	if err != nil {
		fmt.Println(spritesheet.Message(err))
		time.Sleep(cfg.ExitDelay)
		os.Exit(1)
	}
}
