package nfl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

const (
	RosterURL = site + "/teams/%s/%d_roster.htm"
	SnapsURL  = site + "/teams/%s/%d-snap-counts.htm"
)

const playerCell = `th[data-stat="player"], td[data-stat="player"]`

var rosterTables = "table#roster"
var snapTables = "table#snap_counts, table#snap_counts_d, table#snap_counts_defense"

var rosterScheme = extract.Scheme{
	"name":                `th[data-stat="player"] a, td[data-stat="player"] a`,
	"position":            `td[data-stat="pos"]`,
	"age":                 `td[data-stat="age"]`,
	"games":               `td[data-stat="g"]`,
	"games_started":       `td[data-stat="gs"]`,
	"weight":              `td[data-stat="weight"]`,
	"height":              `td[data-stat="height"]`,
	"college":             `td[data-stat="college_id"]`,
	"birth_date":          `td[data-stat="birth_date_mod"]`,
	"experience":          `td[data-stat="experience"]`,
	"approximate_value":   `td[data-stat="av"]`,
	"offense_snaps":       `td[data-stat="offense"]`,
	"offense_snap_pct":    `td[data-stat="off_pct"]`,
	"defense_snaps":       `td[data-stat="defense"]`,
	"defense_snap_pct":    `td[data-stat="def_pct"]`,
	"special_teams_snaps": `td[data-stat="special_teams"]`,
	"special_teams_pct":   `td[data-stat="st_pct"]`,
}

var rosterTable = record.Table{
	{Name: "name", Quirk: cleanName},
	{Name: "team", Skip: true},
	{Name: "position"},
	{Name: "age", Kind: record.Int},
	{Name: "games", Kind: record.Int},
	{Name: "games_started", Kind: record.Int},
	{Name: "weight", Kind: record.Int},
	{Name: "height"},
	{Name: "college"},
	{Name: "birth_date"},
	{Name: "experience"},
	{Name: "approximate_value", Kind: record.Int},
	{Name: "offense_snaps", Kind: record.Int, ZeroDefault: true},
	{Name: "offense_snap_pct", Kind: record.Float},
	{Name: "defense_snaps", Kind: record.Int, ZeroDefault: true},
	{Name: "defense_snap_pct", Kind: record.Float},
	{Name: "special_teams_snaps", Kind: record.Int, ZeroDefault: true},
	{Name: "special_teams_pct", Kind: record.Float},
}

var wsRe = regexp.MustCompile(`\s+`)

// cleanName drops the Pro Bowl (*) and All-Pro (+) markers.
func cleanName(raw string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	s := strings.Trim(strings.TrimSpace(raw), "*+")
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " "), true
}

// Player is one roster entry with snap counts merged in.
type Player struct {
	ID string
	*record.Record
}

// Roster fetches team's roster and, when published, its snap counts for the
// season. A missing snap-count page leaves the snap fields empty.
func Roster(ctx context.Context, f fetch.Fetcher, team Team, season int) ([]Player, error) {
	roster, err := f.Page(ctx, fmt.Sprintf(RosterURL, team.Path, season))
	if err != nil {
		return nil, fmt.Errorf("nfl roster %s %d: %w", team.Abbr, season, err)
	}
	snaps, err := f.Page(ctx, fmt.Sprintf(SnapsURL, team.Path, season))
	if err != nil {
		if !errors.Is(err, fetch.ErrNotFound) {
			return nil, fmt.Errorf("nfl snap counts %s %d: %w", team.Abbr, season, err)
		}
		slog.Debug("nfl snap counts missing", "team", team.Abbr, "season", season)
		snaps = nil
	}
	return ParseRoster(team, roster, snaps)
}

// ParseRoster merges roster rows and snap-count rows by player id. Players
// who only appear in the snap table are kept.
func ParseRoster(team Team, roster, snaps *goquery.Selection) ([]Player, error) {
	agg := aggregate.New()
	id := aggregate.ByLink(playerCell)
	extract.DumpTables(roster)
	if err := agg.Add(extract.StatsTable(roster, rosterTables, false), id); err != nil {
		return nil, fmt.Errorf("nfl roster %s: %w", team.Abbr, err)
	}
	if snaps != nil {
		if err := agg.Add(extract.StatsTable(snaps, snapTables, false), id); err != nil {
			return nil, fmt.Errorf("nfl snap counts %s: %w", team.Abbr, err)
		}
	}
	out := make([]Player, 0, agg.Len())
	for _, pid := range agg.IDs() {
		frag, _ := agg.Fragment(pid)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nfl player %s: %w", pid, err)
		}
		r := record.Build(rosterTable, extract.Schemes{rosterScheme}, sel)
		r.Set("team", team.Abbr)
		out = append(out, Player{ID: pid, Record: r})
	}
	slog.Debug("nfl roster parsed", "team", team.Abbr, "players", len(out))
	return out, nil
}
