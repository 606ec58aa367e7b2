package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lepinkainen/bookdice/internal/config"
)

// ListCmd represents the history subcommand
type ListCmd struct {
	Limit int `short:"n" help:"Number of picks to show" default:"20"`

	out io.Writer
}

func (l *ListCmd) Run() error {
	dbPath := config.HistoryDBFile
	slog.Debug("Listing history", "database", dbPath, "limit", l.Limit)

	store, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), l.Limit)
	if err != nil {
		return err
	}

	out := l.out
	if out == nil {
		out = os.Stdout
	}
	return WriteTable(out, entries)
}

// WriteTable prints entries as an aligned table
func WriteTable(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No books picked yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PICKED\tSUBJECT\tTITLE\tAUTHOR/S\tISBN")
	for _, e := range entries {
		isbn := e.ISBN
		if isbn == "" {
			isbn = "unknown"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.PickedAt.Local().Format("2006-01-02 15:04"),
			e.Subject,
			e.Title,
			strings.Join(e.Authors, ", "),
			isbn,
		)
	}
	return tw.Flush()
}
