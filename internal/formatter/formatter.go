// package formatter provides functions to export catalogue data to various formats (CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sandro63/musicdb/internal/models"
	"github.com/sandro63/musicdb/internal/repositories"
)

// ExportToCSV converts the album list to CSV with columns: ID, Title, Artist, Year
func ExportToCSV(albums []models.AlbumRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Year"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		year := ""
		if album.ReleaseYear != nil {
			year = strconv.Itoa(*album.ReleaseYear)
		}
		record := []string{
			strconv.FormatInt(album.ID, 10),
			album.Title,
			album.ArtistName,
			year,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a catalogue summary followed by the album table
func ExportToMarkdown(counts repositories.Counts, albums []models.AlbumRow) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Music Catalogue\n\n")
	buf.WriteString(fmt.Sprintf("%d artists, %d albums, %d songs, %d genres\n\n",
		counts.Artists, counts.Albums, counts.Songs, counts.Genres))

	buf.WriteString("| Title | Artist | Year |\n")
	buf.WriteString("|-------|--------|------|\n")
	for _, album := range albums {
		year := ""
		if album.ReleaseYear != nil {
			year = strconv.Itoa(*album.ReleaseYear)
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", album.Title, album.ArtistName, year))
	}

	return buf.Bytes(), nil
}
