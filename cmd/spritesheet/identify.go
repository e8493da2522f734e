package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/setanarut/spritesheet"
	"github.com/setanarut/spritesheet/utils"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "List discovered images and their resolution groups",
	Args:  cobra.NoArgs,
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	return identify(cmd.OutOrStdout(), cfg.SourceDir, cfg.Formats)
}

func identify(w io.Writer, dir string, formats []string) error {
	files, err := utils.FindImages(dir, formats, "")
	if err != nil {
		return err
	}
	images, err := utils.CollectImages(files)
	if err != nil {
		return err
	}

	for i, f := range files {
		fmt.Fprintf(w, "%-32s %-5s %s\n", filepath.Base(f.Path), f.Format, spritesheet.KeyOf(images[i]))
	}
	fmt.Fprintln(w)

	groups := spritesheet.GroupByResolution(images)
	for _, g := range groups {
		fmt.Fprintf(w, "Resolution %-12s %d image(s)\n", g.Key.String(), g.Count)
	}
	dominant, ok := spritesheet.DominantGroup(groups)
	if !ok {
		return spritesheet.ErrFilterImages
	}
	rows := spritesheet.AutoRowCount(dominant.Count)
	lines := (dominant.Count + rows - 1) / rows
	fmt.Fprintf(w, "Dominant:   %s (%d of %d)\n", dominant.Key, dominant.Count, len(images))
	fmt.Fprintf(w, "Auto grid:  %d per row, %d row(s), %dx%d pixels\n",
		rows, lines, rows*dominant.Key.Width, lines*dominant.Key.Height)
	return nil
}
