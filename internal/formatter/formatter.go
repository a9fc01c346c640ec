// package formatter renders playlist entries in the CLI output formats (plain text, CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/desertthunder/spotimcp/internal/models"
	"github.com/desertthunder/spotimcp/internal/shared"
)

// Format is an output format for playlist entries.
type Format string

const (
	Text     Format = "text"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{Text, CSV, Markdown, JSON}

// ParseFormat resolves a format name; "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, CSV, Markdown, JSON:
		return f, nil
	case "", "txt":
		return Text, nil
	case "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, csv, markdown or json)", shared.ErrInvalidFlag, s)
	}
}

// ExportToText renders one "artist: <a>, track: <t>" line per entry, the same lines the playlist tool returns.
func ExportToText(entries []models.PlaylistEntry) ([]byte, error) {
	var buf bytes.Buffer
	for _, entry := range entries {
		buf.WriteString(entry.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ExportToCSV converts entries to CSV with columns: Artist, Track
func ExportToCSV(entries []models.PlaylistEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Artist", "Track"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write([]string{entry.Artist, entry.Track}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders entries as a numbered table under a heading naming the playlist.
func ExportToMarkdown(playlistID string, entries []models.PlaylistEntry) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Playlist " + playlistID)
	md.PlainText("")
	md.PlainText(fmt.Sprintf("**Entries**: %d", len(entries)))

	if len(entries) > 0 {
		rows := make([][]string, 0, len(entries))
		for i, entry := range entries {
			rows = append(rows, []string{strconv.Itoa(i + 1), escapeCell(entry.Artist), escapeCell(entry.Track)})
		}
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"#", "Artist", "Track"},
			Rows:   rows,
		})
	}

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to build markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// ExportToJSON renders entries as an indented JSON array.
func ExportToJSON(entries []models.PlaylistEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.PlaylistEntry{}
	}
	return shared.MarshalJSON(entries, true)
}

// Export renders entries in format.
func Export(format Format, playlistID string, entries []models.PlaylistEntry) ([]byte, error) {
	switch format {
	case Text, "":
		return ExportToText(entries)
	case CSV:
		return ExportToCSV(entries)
	case Markdown:
		return ExportToMarkdown(playlistID, entries)
	case JSON:
		return ExportToJSON(entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// Write renders entries in format to w.
func Write(w io.Writer, format Format, playlistID string, entries []models.PlaylistEntry) error {
	data, err := Export(format, playlistID, entries)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	return nil
}
