// Package config holds runtime settings for the spritesheet command:
// defaults and validation. Flags are bound in cmd/spritesheet.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/setanarut/spritesheet/utils"
)

// AutoArg is the positional argument that selects the automatic row count.
const AutoArg = "auto"

// Config holds all runtime settings. Populate with [DefaultConfig], then let
// flag parsing overwrite fields.
type Config struct {
	// Paths. Empty SourceDir means the working directory; empty OutputDir
	// means SourceDir.
	SourceDir  string
	OutputDir  string
	OutputName string // Default: "spritesheet.png".

	// Layout.
	AutoRows bool // Set by the "auto" positional argument.
	Rows     int  // Manual row count; 0 prompts on stdin.

	// Formats are the recognized extensions, exact case.
	Formats []string // Default: png, jpeg, bmp.

	// Palette report (off when PaletteSize is 0).
	PaletteSize   int
	PaletteMethod string // Default: "dominantcolor".
	PaletteFile   string // Optional swatch PNG path.

	// Display and logging.
	Verbose   bool
	LogFile   string
	ExitDelay time.Duration // Pause after a failure message. Default: 3s.
}

func DefaultConfig() Config {
	return Config{
		SourceDir:     ".",
		OutputName:    utils.SheetName,
		Formats:       append([]string(nil), utils.DefaultFormats...),
		PaletteMethod: utils.PaletteMethodDominantColor.String(),
		ExitDelay:     3 * time.Second,
	}
}

// ApplyArgs interprets the optional positional argument. Only the literal
// "auto" selects automatic rows; anything else keeps manual mode.
func (c *Config) ApplyArgs(args []string) {
	c.AutoRows = len(args) > 0 && args[0] == AutoArg
}

// Destination returns the directory the sheet is written to.
func (c *Config) Destination() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	if c.SourceDir != "" {
		return c.SourceDir
	}
	return "."
}

// Validate checks field values and fills in an empty SourceDir.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if len(c.Formats) == 0 {
		return errors.New("at least one image format is required")
	}
	for _, f := range c.Formats {
		if !utils.Supported(f) {
			return fmt.Errorf("unsupported format %q (use png, jpeg or bmp)", f)
		}
	}
	if c.Rows < 0 {
		return fmt.Errorf("rows must not be negative (got %d)", c.Rows)
	}
	if c.PaletteSize < 0 {
		return fmt.Errorf("palette size must not be negative (got %d)", c.PaletteSize)
	}
	if _, err := utils.ParsePaletteMethod(c.PaletteMethod); err != nil {
		return err
	}
	if c.ExitDelay < 0 {
		return errors.New("exit delay must not be negative")
	}
	if c.OutputName == "" || filepath.Base(c.OutputName) != c.OutputName {
		return fmt.Errorf("output name %q must be a plain file name", c.OutputName)
	}
	if !strings.HasSuffix(c.OutputName, ".png") {
		return fmt.Errorf("output name %q must end in .png", c.OutputName)
	}
	return nil
}
