// Package export renders a picked book for the non-interactive pick command.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lepinkainen/bookdice/internal/book"
	"gopkg.in/yaml.v3"
)

// Format is an output format for Write.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write renders record, picked for subject, to w.
func Write(w io.Writer, format Format, subject string, record book.Record) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = buildJSON(subject, record)
	case FormatMarkdown:
		out, err = buildMarkdown(subject, record)
	case FormatText, "":
		out = buildText(record)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

func buildText(record book.Record) []byte {
	var buf bytes.Buffer

	title := record.Title
	if title == "" {
		title = "Untitled"
	}
	buf.WriteString(title + "\n")
	buf.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")

	for _, f := range Fields(record) {
		fmt.Fprintf(&buf, "%s: %s\n", f.Label, f.Value)
	}
	if record.InfoLink != "" {
		fmt.Fprintf(&buf, "\nLearn more on Google Books: %s\n", record.InfoLink)
	}
	if desc := record.PlainDescription(); desc != "" {
		buf.WriteString("\n" + desc + "\n")
	}

	return buf.Bytes()
}

// Field is one labelled row of the book details.
type Field struct {
	Label string
	Value string
}

// Fields lists the detail rows shown for a book, in display order.
func Fields(record book.Record) []Field {
	return []Field{
		{Label: "Author/s", Value: record.AuthorList()},
		{Label: "Publisher", Value: record.Publisher},
		{Label: "Publication date", Value: record.PublicationDate},
		{Label: "ISBN", Value: record.ISBNOrUnknown()},
		{Label: "Categories", Value: record.CategoryList()},
	}
}

type jsonDocument struct {
	Subject string      `json:"subject"`
	Book    book.Record `json:"book"`
}

func buildJSON(subject string, record book.Record) ([]byte, error) {
	out, err := json.MarshalIndent(jsonDocument{Subject: subject, Book: record}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal book: %w", err)
	}
	return append(out, '\n'), nil
}

// frontmatter fields are written in declaration order.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors,omitempty,flow"`
	Publisher   string   `yaml:"publisher,omitempty"`
	Published   string   `yaml:"published,omitempty"`
	ISBN        string   `yaml:"isbn,omitempty"`
	Categories  []string `yaml:"categories,omitempty,flow"`
	Subject     string   `yaml:"subject"`
	GoogleBooks string   `yaml:"google_books,omitempty"`
	Cover       string   `yaml:"cover,omitempty"`
	Tags        []string `yaml:"tags,flow"`
}

func buildMarkdown(subject string, record book.Record) ([]byte, error) {
	fm := frontmatter{
		Title:       record.Title,
		Authors:     record.Authors,
		Publisher:   record.Publisher,
		Published:   record.PublicationDate,
		Categories:  record.Categories,
		Subject:     subject,
		GoogleBooks: record.InfoLink,
		Cover:       record.CoverURL(),
		Tags:        []string{"bookdice"},
	}
	if record.ISBN != nil {
		fm.ISBN = *record.ISBN
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	buf.WriteString("---\n\n")

	title := record.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(&buf, "# %s\n", title)
	if desc := record.PlainDescription(); desc != "" {
		buf.WriteString("\n" + desc + "\n")
	}
	if record.InfoLink != "" {
		fmt.Fprintf(&buf, "\n[Learn more on Google Books](%s)\n", record.InfoLink)
	}

	return buf.Bytes(), nil
}
