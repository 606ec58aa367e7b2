package book

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// PlainDescription returns the description with the HTML markup Google Books
// embeds (<p>, <br>, <b>, <i>) converted to plain text.
func (r Record) PlainDescription() string {
	if !strings.ContainsAny(r.Description, "<&") {
		return strings.TrimSpace(r.Description)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Description))
	if err != nil {
		return strings.TrimSpace(r.Description)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}
