package aggregate

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ByText keys rows on the trimmed text of the first cell matching selector.
func ByText(selector string) IdentifierFunc {
	return func(tr *goquery.Selection) (string, bool) {
		v := strings.TrimSpace(tr.Find(selector).First().Text())
		return v, v != ""
	}
}

// ByAttr keys rows on an attribute of the first cell matching selector.
func ByAttr(selector, attr string) IdentifierFunc {
	return func(tr *goquery.Selection) (string, bool) {
		v, ok := tr.Find(selector).First().Attr(attr)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
}

// ByLink keys rows on the last path segment of the first link inside
// selector, without its extension: "/players/j/jamesle01.html" -> "jamesle01".
func ByLink(selector string) IdentifierFunc {
	return func(tr *goquery.Selection) (string, bool) {
		id := LinkID(tr.Find(selector).First())
		return id, id != ""
	}
}

// LinkID returns the id encoded in the href of the first link in cell.
func LinkID(cell *goquery.Selection) string {
	href, ok := cell.Find("a").First().Attr("href")
	if !ok {
		href, ok = cell.Attr("href")
	}
	if !ok || href == "" {
		return ""
	}
	last := path.Base(strings.TrimRight(href, "/"))
	return strings.TrimSuffix(last, path.Ext(last))
}
