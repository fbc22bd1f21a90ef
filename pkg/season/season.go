// Package season works out which season year a league page refers to.
package season

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type league struct {
	start int  // month the season starts
	wrap  bool // season is named after the calendar year it ends in
}

var leagues = map[string]league{
	"mlb":   {start: 4},
	"nba":   {start: 10, wrap: true},
	"ncaab": {start: 11, wrap: true},
	"ncaaf": {start: 8},
	"nfl":   {start: 9},
	"nhl":   {start: 10, wrap: true},
}

// YearFor returns the season year in progress, or about to start, at now.
// Wrapping leagues roll over one month before their start month.
func YearFor(name string, now time.Time) (int, error) {
	l, ok := leagues[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("season: unknown league %q", name)
	}
	month, year := int(now.Month()), now.Year()
	switch {
	case l.wrap && month >= l.start-1:
		return year + 1, nil
	case !l.wrap && l.start == 1 && month == 12:
		return year + 1, nil
	case !l.wrap && month < l.start-1:
		return year - 1, nil
	}
	return year, nil
}

// Checker reports whether a URL is live.
type Checker interface {
	Exists(ctx context.Context, url string) bool
}

// Resolve returns YearFor, stepping back one year when the page for that
// season, built from urlFormat, has not been published yet.
func Resolve(ctx context.Context, c Checker, name, urlFormat string, now time.Time) (int, error) {
	year, err := YearFor(name, now)
	if err != nil {
		return 0, err
	}
	if c != nil && !c.Exists(ctx, fmt.Sprintf(urlFormat, year)) {
		slog.Debug("season page not published, using previous year", "league", name, "year", year)
		year--
	}
	return year, nil
}
