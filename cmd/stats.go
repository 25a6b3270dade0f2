package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandro63/musicdb/internal/repositories"
	"github.com/urfave/cli/v3"
)

var (
	statsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1)
	statsLabelStyle = lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("#626262"))
	statsCountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// Stats prints row counts for every catalogue table.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := repositories.CountAll(db)
	if err != nil {
		return fmt.Errorf("failed to count catalogue rows: %w", err)
	}

	r.writePlain("%s\n", statsTitleStyle.Render("Music Catalogue"))
	for _, row := range []struct {
		label string
		count int
	}{
		{"Artists", counts.Artists},
		{"Albums", counts.Albums},
		{"Songs", counts.Songs},
		{"Genres", counts.Genres},
		{"Album/Song links", counts.AlbumSongs},
		{"Song/Genre links", counts.SongGenres},
		{"Album/Genre links", counts.AlbumGenres},
	} {
		r.writePlain("%s %s\n", statsLabelStyle.Render(row.label), statsCountStyle.Render(fmt.Sprintf("%d", row.count)))
	}

	return nil
}
