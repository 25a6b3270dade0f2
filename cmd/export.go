package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sandro63/musicdb/internal/formatter"
	"github.com/sandro63/musicdb/internal/repositories"
	"github.com/sandro63/musicdb/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export writes the album catalogue as CSV or Markdown.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	outputPath := cmd.String("output")

	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	albums, err := repositories.NewAlbumRepository(db).List()
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	var data []byte
	switch format {
	case "csv":
		if data, err = formatter.ExportToCSV(albums); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
	case "markdown", "md":
		counts, err := repositories.CountAll(db)
		if err != nil {
			return fmt.Errorf("failed to count catalogue rows: %w", err)
		}
		if data, err = formatter.ExportToMarkdown(counts, albums); err != nil {
			return fmt.Errorf("failed to export Markdown: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown format %q (want csv or markdown)", shared.ErrInvalidFlag, format)
	}

	if outputPath == "" {
		return r.writePlain("%s", data)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	r.logger.Info("catalogue exported", "format", format, "path", outputPath)
	return nil
}
