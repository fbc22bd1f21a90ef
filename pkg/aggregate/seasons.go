package aggregate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/pkg/extract"
)

// Career is the bucket that holds the footer (career total) rows.
const Career = "Career"

// Seasons buckets one entity's rows by season label.
type Seasons struct {
	order      []string
	frags      map[string]*strings.Builder
	mostRecent string
}

func NewSeasons() *Seasons {
	return &Seasons{frags: map[string]*strings.Builder{}}
}

// Add folds one stats table. Body rows go to the bucket named by season;
// only the first footer row is kept, under Career.
func (s *Seasons) Add(body, foot *goquery.Selection, season IdentifierFunc) error {
	var err error
	body.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if extract.IsHeaderRow(tr) {
			return true
		}
		label, ok := season(tr)
		if !ok || label == "" {
			return true
		}
		if err = s.append(label, tr); err != nil {
			return false
		}
		s.mostRecent = label
		return true
	})
	if err != nil {
		return err
	}
	if foot != nil && foot.Length() > 0 {
		return s.append(Career, foot.First())
	}
	return nil
}

func (s *Seasons) append(label string, tr *goquery.Selection) error {
	html, err := goquery.OuterHtml(tr)
	if err != nil {
		return fmt.Errorf("aggregate: render %s row: %w", label, err)
	}
	b, ok := s.frags[label]
	if !ok {
		b = &strings.Builder{}
		s.frags[label] = b
		s.order = append(s.order, label)
	}
	b.WriteString(html)
	return nil
}

// MostRecent is the last season label seen in body rows.
func (s *Seasons) MostRecent() string { return s.mostRecent }

// Season returns the fragment for label. An empty label or "career" in any
// case selects Career.
func (s *Seasons) Season(label string) (string, bool) {
	if label == "" || strings.EqualFold(label, Career) {
		label = Career
	}
	b, ok := s.frags[label]
	if !ok {
		return "", false
	}
	return b.String(), true
}

// Keys returns season labels in first-seen order.
func (s *Seasons) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
