// Package extract pulls raw field values out of sports-reference HTML using
// per-entity selector schemes.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Scheme maps a field name to the CSS selector that locates it.
type Scheme map[string]string

// Schemes is an ordered list of schemes tried one after another.
type Schemes []Scheme

type options struct {
	index     int
	secondary int
	strip     bool
	attr      string
}

// Option tunes a single extraction.
type Option func(*options)

// Index selects the i-th match instead of the first.
func Index(i int) Option { return func(o *options) { o.index = i } }

// Secondary is the match used when Index is out of range. Pages sometimes
// drop one of several duplicated elements, shifting the rest down.
func Secondary(i int) Option { return func(o *options) { o.secondary = i } }

// Strip trims separators from every match and discards empty matches before
// indexing.
func Strip() Option { return func(o *options) { o.strip = true } }

// Attr returns the named attribute of the match instead of its text.
func Attr(name string) Option { return func(o *options) { o.attr = name } }

func buildOptions(opts []Option) options {
	o := options{secondary: -1}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

const stripCutset = " \t\r\n\u00a0\u2009,;|"

// Field extracts field from frag using the selector registered in s.
// The boolean is false when the field is not in the scheme, nothing matched,
// or the requested index does not exist.
func Field(s Scheme, frag *goquery.Selection, field string, opts ...Option) (string, bool) {
	sel, ok := s[field]
	if !ok || sel == "" || frag == nil {
		return "", false
	}
	return pick(frag.Find(sel), buildOptions(opts))
}

// FieldIn tries each scheme in order and returns the first value found.
func FieldIn(schemes Schemes, frag *goquery.Selection, field string, opts ...Option) (string, bool) {
	for _, s := range schemes {
		if v, ok := Field(s, frag, field, opts...); ok {
			return v, true
		}
	}
	return "", false
}

// Select applies a bare selector with the same options as Field.
func Select(frag *goquery.Selection, selector string, opts ...Option) (string, bool) {
	if frag == nil || selector == "" {
		return "", false
	}
	return pick(frag.Find(selector), buildOptions(opts))
}

func pick(matches *goquery.Selection, o options) (string, bool) {
	if matches.Length() == 0 {
		return "", false
	}
	items := make([]string, 0, matches.Length())
	matches.Each(func(_ int, m *goquery.Selection) {
		var v string
		if o.attr != "" {
			a, ok := m.Attr(o.attr)
			if !ok {
				if !o.strip {
					items = append(items, "")
				}
				return
			}
			v = a
		} else {
			v = m.Text()
		}
		if o.strip {
			v = strings.Trim(v, stripCutset)
			if v == "" {
				return
			}
		} else {
			v = strings.TrimSpace(v)
		}
		items = append(items, v)
	})
	if o.index >= 0 && o.index < len(items) {
		return items[o.index], true
	}
	if o.secondary >= 0 && o.secondary < len(items) {
		return items[o.secondary], true
	}
	return "", false
}
