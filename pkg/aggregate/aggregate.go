// Package aggregate folds the rows of one or more stats tables into a single
// HTML fragment per entity.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/pkg/extract"
)

// IdentifierFunc derives the entity key of a row. Rows without one are skipped.
type IdentifierFunc func(row *goquery.Selection) (string, bool)

// Aggregator accumulates row fragments per identifier, keeping the order in
// which identifiers were first seen.
type Aggregator struct {
	order []string
	frags map[string]*strings.Builder
	rank  map[string]int
}

func New() *Aggregator {
	return &Aggregator{
		frags: map[string]*strings.Builder{},
		rank:  map[string]int{},
	}
}

// Add folds the rows of one table. Rank is the 1-based position among the
// identified rows of the table where an identifier first appears.
func (a *Aggregator) Add(rows *goquery.Selection, id IdentifierFunc) error {
	pos := 0
	var err error
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if extract.IsHeaderRow(tr) {
			return true
		}
		key, ok := id(tr)
		if !ok || key == "" {
			return true
		}
		pos++
		html, e := goquery.OuterHtml(tr)
		if e != nil {
			err = fmt.Errorf("aggregate: render row for %q: %w", key, e)
			return false
		}
		a.AddFragment(key, html, pos)
		return true
	})
	return err
}

// AddFragment appends html to key's fragment.
func (a *Aggregator) AddFragment(key, html string, rank int) {
	b, ok := a.frags[key]
	if !ok {
		b = &strings.Builder{}
		a.frags[key] = b
		a.order = append(a.order, key)
		a.rank[key] = rank
	}
	b.WriteString(html)
}

// IDs returns identifiers in first-seen order.
func (a *Aggregator) IDs() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Aggregator) Len() int { return len(a.order) }

// Fragment returns the concatenated rows for key.
func (a *Aggregator) Fragment(key string) (string, bool) {
	b, ok := a.frags[key]
	if !ok {
		return "", false
	}
	return b.String(), true
}

// Rank returns the rank recorded for key, or 0.
func (a *Aggregator) Rank(key string) int { return a.rank[key] }

// Map returns every fragment keyed by identifier.
func (a *Aggregator) Map() map[string]string {
	out := make(map[string]string, len(a.order))
	for _, k := range a.order {
		out[k] = a.frags[k].String()
	}
	return out
}

// Aggregate folds a single row set into a map of fragments.
func Aggregate(rows *goquery.Selection, id IdentifierFunc) (map[string]string, error) {
	a := New()
	if err := a.Add(rows, id); err != nil {
		return nil, err
	}
	return a.Map(), nil
}
