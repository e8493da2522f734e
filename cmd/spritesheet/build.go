package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/setanarut/spritesheet"
	"github.com/setanarut/spritesheet/internal/config"
	"github.com/setanarut/spritesheet/utils"
	"github.com/spf13/cobra"
)

func runBuild(cmd *cobra.Command, args []string) error {
	cfg.ApplyArgs(args)
	_, err := buildSheet(&cfg, logger.Logger, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// buildSheet runs collect -> filter -> row count -> compose -> write and
// returns the written path.
func buildSheet(cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer) (string, error) {
	dst := cfg.Destination()
	skip := ""
	if sameDir(cfg.SourceDir, dst) {
		skip = cfg.OutputName
	}

	files, err := utils.FindImages(cfg.SourceDir, cfg.Formats, skip)
	if err != nil {
		return "", err
	}
	log.Debug("found images", "dir", cfg.SourceDir, "count", len(files))

	images, err := utils.CollectImages(files)
	if err != nil {
		return "", err
	}

	sb := spritesheet.NewSheetBuilder(images)
	sb.Logger = log
	if err := sb.Filter(); err != nil {
		return "", err
	}

	opt := spritesheet.DefaultOptions()
	switch {
	case cfg.AutoRows:
		opt = spritesheet.OptionsFromCount(len(sb.Filtered))
	case cfg.Rows > 0:
		opt.RowCount = cfg.Rows
	default:
		rows, err := promptRowCount(in, out, len(sb.Filtered))
		if err != nil {
			return "", err
		}
		opt.RowCount = rows
	}

	if err := sb.Build(opt); err != nil {
		return "", err
	}
	logSummary(log, sb.Summary())

	path, err := utils.SaveSheet(sb.Sheet.Image, dst, cfg.OutputName)
	if err != nil {
		return "", err
	}
	b := sb.Sheet.Image.Bounds()
	log.Info("wrote spritesheet", "path", path, "width", b.Dx(), "height", b.Dy(),
		"images", sb.Sheet.Count, "rowCount", sb.Sheet.RowCount)

	if cfg.PaletteSize > 0 {
		reportPalette(cfg, log, sb.Sheet)
	}
	return path, nil
}

// promptRowCount asks for the number of images per row on out and reads
// one line from in.
func promptRowCount(in io.Reader, out io.Writer, count int) (int, error) {
	fmt.Fprintf(out, "Image count: %d\n", count)
	fmt.Fprint(out, "Enter row count: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
		return 0, fmt.Errorf("read row count: %w", spritesheet.ErrParse)
	}
	return spritesheet.ParseRowCount(line)
}

func logSummary(log *slog.Logger, sum spritesheet.Summary) {
	for _, g := range sum.Groups {
		log.Debug("resolution group", "resolution", g.Key.String(), "count", g.Count, "first", g.First)
	}
	log.Debug("sheet summary", "total", sum.Total, "dropped", sum.Dropped,
		"fill", fmt.Sprintf("%.2f", sum.FillRatio))
	for _, c := range sum.Cells {
		log.Debug("cell", "index", c.Index, "luminance", fmt.Sprintf("%.3f", c.Luminance),
			"stddev", fmt.Sprintf("%.3f", c.StdDev), "opacity", fmt.Sprintf("%.3f", c.Opacity))
	}
	for _, i := range sum.Blank {
		log.Warn("image is fully transparent", "cell", i)
	}
}

// reportPalette logs the sheet palette. Failures are warnings; the sheet is
// already written.
func reportPalette(cfg *config.Config, log *slog.Logger, sheet *spritesheet.Sheet) {
	method, err := utils.ParsePaletteMethod(cfg.PaletteMethod)
	if err != nil {
		log.Warn("palette skipped", "err", err)
		return
	}
	palette, err := utils.ExtractPalette(sheet.Image, cfg.PaletteSize, method)
	if err != nil {
		log.Warn("palette skipped", "err", err)
		return
	}
	utils.SortPaletteByBrightness(palette)
	log.Info("palette", "method", method.String(), "colors", strings.Join(utils.HexPalette(palette), " "))
	if cfg.PaletteFile == "" {
		return
	}
	if err := utils.SavePalette(palette, 64, cfg.PaletteFile); err != nil {
		log.Warn("palette swatch not written", "path", cfg.PaletteFile, "err", err)
	}
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
