package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrParse marks markup that could not be turned into a document.
var ErrParse = errors.New("extract: parse failure")

// StripComments removes comment delimiters so tables that sports-reference
// ships inside <!-- --> become part of the document.
func StripComments(html string) string {
	clean := strings.ReplaceAll(html, "<!--", "")
	return strings.ReplaceAll(clean, "-->", "")
}

// Parse parses a full page or a bare row fragment. Row and cell fragments are
// wrapped in a table so the HTML5 parser keeps them.
func Parse(html string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(wrapFragment(html)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc.Selection, nil
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(html string) *goquery.Selection {
	s, err := Parse(html)
	if err != nil {
		panic(err)
	}
	return s
}

func wrapFragment(html string) string {
	h := strings.ToLower(strings.TrimSpace(html))
	switch {
	case strings.HasPrefix(h, "<tr"),
		strings.HasPrefix(h, "<thead"),
		strings.HasPrefix(h, "<tbody"),
		strings.HasPrefix(h, "<tfoot"):
		return "<table>" + html + "</table>"
	case strings.HasPrefix(h, "<td"), strings.HasPrefix(h, "<th"):
		return "<table><tr>" + html + "</tr></table>"
	}
	return html
}

// StatsTable returns the body rows, or the footer rows when footer is set, of
// the first table matched by selector.
func StatsTable(doc *goquery.Selection, selector string, footer bool) *goquery.Selection {
	table := doc.Find(selector).First()
	if footer {
		return table.Find("tfoot tr")
	}
	return table.Find("tbody tr")
}

// IsHeaderRow reports the repeated column-header rows embedded in long tables.
func IsHeaderRow(tr *goquery.Selection) bool {
	cls := tr.AttrOr("class", "")
	return strings.Contains(cls, "thead") || strings.Contains(cls, "over_header")
}

// DumpTables logs every table id and its row count at debug level.
func DumpTables(doc *goquery.Selection) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		slog.Debug("table",
			"n", i,
			"id", t.AttrOr("id", ""),
			"body_rows", t.Find("tbody tr").Length(),
			"foot_rows", t.Find("tfoot tr").Length())
	})
}
