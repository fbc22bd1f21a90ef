package fb

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/internal/quirk"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

const (
	Home    = "Home"
	Away    = "Away"
	Neutral = "Neutral"

	Win  = "Win"
	Draw = "Draw"
	Loss = "Loss"
)

var scheduleTables = "table#matchlogs_all"

var scheduleScheme = extract.Scheme{
	"competition":            `th[data-stat="comp"]`,
	"matchweek":              `td[data-stat="round"]`,
	"day":                    `td[data-stat="dayofweek"]`,
	"date":                   `td[data-stat="date"]`,
	"time":                   `td[data-stat="time"]`,
	"venue":                  `td[data-stat="venue"]`,
	"result":                 `td[data-stat="result"]`,
	"goals_for":              `td[data-stat="goals_for"]`,
	"goals_against":          `td[data-stat="goals_against"]`,
	"opponent":               `td[data-stat="opponent"]`,
	"opponent_link":          `td[data-stat="opponent"] a`,
	"expected_goals":         `td[data-stat="xg"]`,
	"expected_goals_against": `td[data-stat="xga"]`,
	"attendance":             `td[data-stat="attendance"]`,
	"captain":                `td[data-stat="captain"]`,
	"captain_link":           `td[data-stat="captain"] a`,
	"formation":              `td[data-stat="formation"]`,
	"referee":                `td[data-stat="referee"]`,
	"match_report":           `td[data-stat="match_report"] a`,
	"notes":                  `td[data-stat="notes"]`,
}

var hrefAttr = []extract.Option{extract.Attr("href")}

var matchTable = record.Table{
	{Name: "competition"},
	{Name: "matchweek"},
	{Name: "day"},
	{Name: "date"},
	{Name: "time"},
	{Name: "venue", Quirk: venue},
	{Name: "result", Quirk: result},
	{Name: "goals_for", Kind: record.Int, Quirk: goals},
	{Name: "goals_against", Kind: record.Int, Quirk: goals},
	{Name: "shootout_scored", Key: "goals_for", Kind: record.Int, Quirk: shootout},
	{Name: "shootout_against", Key: "goals_against", Kind: record.Int, Quirk: shootout},
	{Name: "opponent"},
	{Name: "opponent_id", Key: "opponent_link", Options: hrefAttr, Quirk: quirk.LinkSegment("/squads/")},
	{Name: "expected_goals", Kind: record.Float},
	{Name: "expected_goals_against", Kind: record.Float},
	{Name: "attendance", Kind: record.Int},
	{Name: "captain"},
	{Name: "captain_id", Key: "captain_link", Options: hrefAttr, Quirk: quirk.LinkSegment("/players/")},
	{Name: "formation"},
	{Name: "referee"},
	{Name: "match_report", Options: hrefAttr, Quirk: quirk.LinkSegment("/matches/")},
	{Name: "notes"},
}

func venue(raw string, _ bool) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HOME":
		return Home, true
	case "AWAY":
		return Away, true
	case "NEUTRAL":
		return Neutral, true
	}
	return "", false
}

func result(raw string, _ bool) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "W":
		return Win, true
	case "D":
		return Draw, true
	case "L":
		return Loss, true
	}
	return "", false
}

var rePenalties = regexp.MustCompile(`\((\d+)\)`)

// goals drops the shootout tally from scores such as "1 (4)".
func goals(raw string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	if strings.Contains(raw, "(") && strings.Contains(raw, ")") {
		raw, _, _ = strings.Cut(raw, " ")
	}
	return raw, true
}

// shootout keeps only the shootout tally of "1 (4)"; matches without one
// have no value.
func shootout(raw string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	m := rePenalties.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Match is one row of a squad's match log.
type Match struct {
	*record.Record
}

// Datetime combines the date and kickoff time. A missing or malformed time
// is midnight; ok is false without a valid date.
func (m Match) Datetime() (time.Time, bool) {
	day, err := time.Parse("2006-01-02", m.String("date"))
	if err != nil {
		return time.Time{}, false
	}
	clock, _, _ := strings.Cut(m.String("time"), " ")
	if t, err := time.Parse("15:04", clock); err == nil {
		day = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	return day, true
}

// Schedule is a squad's matches across all competitions in date order.
type Schedule []Match

// On returns the match played on the same calendar day as day.
func (s Schedule) On(day time.Time) (Match, bool) {
	y, mo, d := day.Date()
	for _, m := range s {
		t, ok := m.Datetime()
		if !ok {
			continue
		}
		if ty, tm, td := t.Date(); ty == y && tm == mo && td == d {
			return m, true
		}
	}
	return Match{}, false
}

// Report returns the match whose report link carries id.
func (s Schedule) Report(id string) (Match, bool) {
	for _, m := range s {
		if r, ok := m.Raw("match_report"); ok && r == id {
			return m, true
		}
	}
	return Match{}, false
}

// FetchSchedule loads the match log from the squad page of team.
func FetchSchedule(ctx context.Context, f fetch.Fetcher, team string) (Schedule, error) {
	id, err := SquadID(team)
	if err != nil {
		return nil, err
	}
	doc, err := f.Page(ctx, fmt.Sprintf(SquadURL, id))
	if err != nil {
		return nil, fmt.Errorf("fb schedule %s: %w", id, err)
	}
	return ParseSchedule(doc)
}

// ParseSchedule reads every match row. Rows are independent, so no folding
// happens here. A page without a match log yields an empty schedule.
func ParseSchedule(doc *goquery.Selection) (Schedule, error) {
	rows := extract.StatsTable(doc, scheduleTables, false)
	if rows.Length() == 0 {
		slog.Debug("fb schedule: no match log", "table", scheduleTables)
		return Schedule{}, nil
	}
	out := make(Schedule, 0, rows.Length())
	rows.Each(func(_ int, tr *goquery.Selection) {
		if extract.IsHeaderRow(tr) {
			return
		}
		out = append(out, Match{Record: record.Build(matchTable, extract.Schemes{scheduleScheme}, tr)})
	})
	slog.Debug("fb schedule parsed", "matches", len(out))
	return out, nil
}
