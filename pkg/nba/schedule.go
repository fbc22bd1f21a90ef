package nba

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/internal/quirk"
	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

// ScheduleURL is a team's game log, formatted with its abbreviation and the
// season end year.
const ScheduleURL = site + "/teams/%s/%d/gamelog/"

const (
	Win  = "Win"
	Loss = "Loss"
)

// Regular season then playoffs; playoff game numbers restart at 1.
const (
	regularTable = "table#tgl_basic"
	playoffTable = "table#tgl_basic_playoffs"
)

var gameScheme = extract.Scheme{
	"game":          `td[data-stat="game_season"]`,
	"date":          `td[data-stat="date_game"]`,
	"boxscore":      `td[data-stat="date_game"] a`,
	"location":      `td[data-stat="game_location"]`,
	"opponent_link": `td[data-stat="opp_id"] a`,
	"result":        `td[data-stat="game_result"]`,
	"points_scored": `td[data-stat="pts"]`,
	// opp_pts is registered by the opp_ counting cells
}

var gameTable = func() record.Table {
	head := record.Table{
		{Name: "game", Kind: record.Int},
		{Name: "date"},
		{Name: "boxscore", Options: []extract.Option{extract.Attr("href")}, Quirk: quirk.LinkSegment("/boxscores/")},
		{Name: "playoffs", Skip: true},
		{Name: "location", Quirk: venue},
		{Name: "opponent_abbr", Key: "opponent_link", Options: []extract.Option{extract.Attr("href")}, Quirk: quirk.Abbreviation},
		{Name: "result", Quirk: result},
		{Name: "points_scored", Kind: record.Int},
	}
	cell := `td[data-stat="%s"]`
	box := concat(shooting, []stat{
		{"free_throws", "ft", record.Int},
		{"free_throw_attempts", "fta", record.Int},
		{"free_throw_percentage", "ft_pct", record.Float},
		{"offensive_rebounds", "orb", record.Int},
		{"total_rebounds", "trb", record.Int},
		{"assists", "ast", record.Int},
		{"steals", "stl", record.Int},
		{"blocks", "blk", record.Int},
		{"turnovers", "tov", record.Int},
		{"personal_fouls", "pf", record.Int},
	})
	opp := cells(gameScheme, cell, "opp_", append(box, stat{"points", "pts", record.Int}))
	for i := range opp {
		if opp[i].Name == "opp_points" {
			opp[i].Name = "points_allowed"
		}
	}
	return join(head, cells(gameScheme, cell, "", box), opp)
}()

func venue(raw string, _ bool) (string, bool) {
	if strings.TrimSpace(raw) == "@" {
		return Away, true
	}
	return Home, true
}

func result(raw string, ok bool) (string, bool) {
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	if strings.EqualFold(strings.TrimSpace(raw), "l") {
		return Loss, true
	}
	return Win, true
}

func gameID(tr *goquery.Selection) (string, bool) {
	return quirk.LinkSegment("/boxscores/")(extract.Field(gameScheme, tr, "boxscore", extract.Attr("href")))
}

// Game is one played game of a team's log. Its boxscore id is what
// FetchBoxscore takes.
type Game struct {
	*record.Record
	Year int
}

func (g Game) Boxscore() string { return g.String("boxscore") }
func (g Game) Result() string   { return g.String("result") }
func (g Game) Playoffs() bool   { return g.String("playoffs") == "true" }

// Datetime parses the game date; the zero time is returned when it is missing.
func (g Game) Datetime() time.Time {
	t, err := time.Parse("2006-01-02", g.String("date"))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Schedule is a team's season, regular season first.
type Schedule []Game

// On returns the game played on the same calendar day as day.
func (s Schedule) On(day time.Time) (Game, bool) {
	y, m, d := day.Date()
	for _, g := range s {
		gy, gm, gd := g.Datetime().Date()
		if gy == y && gm == m && gd == d {
			return g, true
		}
	}
	return Game{}, false
}

// FetchSchedule loads the game log of team abbr, such as "GSW".
func FetchSchedule(ctx context.Context, f fetch.Fetcher, abbr string, year int) (Schedule, error) {
	abbr = strings.ToUpper(abbr)
	doc, err := f.Page(ctx, fmt.Sprintf(ScheduleURL, abbr, year))
	if err != nil {
		return nil, fmt.Errorf("nba schedule %s %d: %w", abbr, year, err)
	}
	return ParseSchedule(doc, year)
}

// ParseSchedule reads the regular season and playoff game logs, keyed by
// boxscore id.
func ParseSchedule(doc *goquery.Selection, year int) (Schedule, error) {
	agg := aggregate.New()
	if err := agg.Add(extract.StatsTable(doc, regularTable, false), gameID); err != nil {
		return nil, fmt.Errorf("nba schedule %d: %w", year, err)
	}
	regular := agg.Len()
	if err := agg.Add(extract.StatsTable(doc, playoffTable, false), gameID); err != nil {
		return nil, fmt.Errorf("nba playoffs %d: %w", year, err)
	}
	games := make(Schedule, 0, agg.Len())
	for i, id := range agg.IDs() {
		frag, _ := agg.Fragment(id)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nba game %s: %w", id, err)
		}
		r := record.Build(gameTable, extract.Schemes{gameScheme}, sel)
		r.Set("playoffs", strconv.FormatBool(i >= regular))
		games = append(games, Game{Record: r, Year: year})
	}
	slog.Debug("nba schedule parsed", "year", year, "games", len(games), "playoffs", len(games)-regular)
	return games, nil
}
