package nhl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/internal/quirk"
	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

// ScheduleURL is formatted with a team abbreviation and season end year.
const ScheduleURL = site + "/teams/%s/%d_games.html"

const (
	Home = "Home"
	Away = "Away"

	Win          = "Win"
	Loss         = "Loss"
	OvertimeLoss = "OTL"

	// Shootout is the overtime value of a game settled by a shootout.
	Shootout = -1
)

const dateLayout = "2006-01-02"

var scheduleTables = "table#tm_gamelog_rs, table#games"

var scheduleScheme = extract.Scheme{
	"game":                            `th[data-stat="games"]`,
	"date":                            `td[data-stat="date_game"]`,
	"time":                            `td[data-stat="time_game"]`,
	"location":                        `td[data-stat="game_location"]`,
	"opponent":                        `td[data-stat="opp_name"]`,
	"opponent_link":                   `td[data-stat="opp_name"] a`,
	"boxscore":                        `td[data-stat="date_game"] a`,
	"goals_scored":                    `td[data-stat="goals"]`,
	"goals_allowed":                   `td[data-stat="opp_goals"]`,
	"result":                          `td[data-stat="game_outcome"]`,
	"overtime":                        `td[data-stat="overtimes"]`,
	"wins":                            `td[data-stat="wins"]`,
	"losses":                          `td[data-stat="losses"]`,
	"overtime_losses":                 `td[data-stat="losses_ot"]`,
	"streak":                          `td[data-stat="game_streak"]`,
	"shots_on_goal":                   `td[data-stat="shots"]`,
	"penalties_in_minutes":            `td[data-stat="pen_min"]`,
	"power_play_goals":                `td[data-stat="goals_pp"]`,
	"power_play_opportunities":        `td[data-stat="chances_pp"]`,
	"short_handed_goals":              `td[data-stat="goals_sh"]`,
	"opp_shots_on_goal":               `td[data-stat="opp_shots"]`,
	"opp_penalties_in_minutes":        `td[data-stat="opp_pen_min"]`,
	"opp_power_play_goals":            `td[data-stat="opp_goals_pp"]`,
	"opp_power_play_opportunities":    `td[data-stat="opp_chances_pp"]`,
	"opp_short_handed_goals":          `td[data-stat="opp_goals_sh"]`,
	"corsi_for":                       `td[data-stat="corsi_for"]`,
	"corsi_against":                   `td[data-stat="corsi_against"]`,
	"corsi_for_percentage":            `td[data-stat="corsi_pct"]`,
	"fenwick_for":                     `td[data-stat="fenwick_for"]`,
	"fenwick_against":                 `td[data-stat="fenwick_against"]`,
	"fenwick_for_percentage":          `td[data-stat="fenwick_pct"]`,
	"faceoff_wins":                    `td[data-stat="faceoff_wins"]`,
	"faceoff_losses":                  `td[data-stat="faceoff_losses"]`,
	"faceoff_win_percentage":          `td[data-stat="faceoff_percentage"]`,
	"offensive_zone_start_percentage": `td[data-stat="zs_offense_pct"]`,
	"pdo":                             `td[data-stat="pdo"]`,
	"attendance":                      `td[data-stat="attendance"]`,
	"length_of_game":                  `td[data-stat="game_duration"]`,
}

var gameTable = record.Table{
	{Name: "game", Kind: record.Int},
	{Name: "date"},
	{Name: "time"},
	{Name: "boxscore", Options: []extract.Option{extract.Attr("href")}, Quirk: quirk.LinkSegment("/boxscores/")},
	{Name: "location", Quirk: venue},
	{Name: "opponent_abbr", Key: "opponent_link", Options: []extract.Option{extract.Attr("href")}, Quirk: quirk.Abbreviation},
	{Name: "opponent_name", Key: "opponent"},
	{Name: "goals_scored", Kind: record.Int},
	{Name: "goals_allowed", Kind: record.Int},
	{Name: "result"},
	{Name: "overtime", Kind: record.Int, Quirk: overtimes},
	{Name: "wins", Kind: record.Int},
	{Name: "losses", Kind: record.Int},
	{Name: "overtime_losses", Kind: record.Int},
	{Name: "streak"},
	{Name: "shots_on_goal", Kind: record.Int},
	{Name: "penalties_in_minutes", Kind: record.Int},
	{Name: "power_play_goals", Kind: record.Int},
	{Name: "power_play_opportunities", Kind: record.Int},
	{Name: "short_handed_goals", Kind: record.Int},
	{Name: "opp_shots_on_goal", Kind: record.Int},
	{Name: "opp_penalties_in_minutes", Kind: record.Int},
	{Name: "opp_power_play_goals", Kind: record.Int},
	{Name: "opp_power_play_opportunities", Kind: record.Int},
	{Name: "opp_short_handed_goals", Kind: record.Int},
	{Name: "corsi_for", Kind: record.Int},
	{Name: "corsi_against", Kind: record.Int},
	{Name: "corsi_for_percentage", Kind: record.Float},
	{Name: "fenwick_for", Kind: record.Int},
	{Name: "fenwick_against", Kind: record.Int},
	{Name: "fenwick_for_percentage", Kind: record.Float},
	{Name: "faceoff_wins", Kind: record.Int},
	{Name: "faceoff_losses", Kind: record.Int},
	{Name: "faceoff_win_percentage", Kind: record.Float},
	{Name: "offensive_zone_start_percentage", Kind: record.Float},
	{Name: "pdo", Kind: record.Float},
	{Name: "attendance", Kind: record.Int},
	{Name: "length_of_game"},
}

// venue maps the "@" marker to Away; a blank or missing cell is a home game.
func venue(raw string, _ bool) (string, bool) {
	if strings.TrimSpace(raw) == "@" {
		return Away, true
	}
	return Home, true
}

var reDigits = regexp.MustCompile(`\d+`)

// overtimes reads "OT" as 1, "2OT" as 2, "SO" as Shootout and blank as 0.
func overtimes(raw string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	switch v := strings.ToLower(strings.TrimSpace(raw)); {
	case v == "":
		return "0", true
	case v == "ot":
		return "1", true
	case v == "so":
		return fmt.Sprint(Shootout), true
	}
	if n := reDigits.FindString(raw); n != "" {
		return n, true
	}
	return "0", true
}

// Game is one row of a team's game log.
type Game struct {
	*record.Record
	Year int
}

// Result is Win, Loss or OvertimeLoss.
func (g Game) Result() string { return g.String("result") }

// Datetime parses the game date; the zero time is returned when it is missing.
func (g Game) Datetime() time.Time {
	t, err := time.Parse(dateLayout, g.String("date"))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Schedule is a team's regular season in game order.
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

// FetchSchedule loads the game log of team abbr, such as "NYR".
func FetchSchedule(ctx context.Context, f fetch.Fetcher, abbr string, year int) (Schedule, error) {
	abbr = strings.ToUpper(abbr)
	doc, err := f.Page(ctx, fmt.Sprintf(ScheduleURL, abbr, year))
	if err != nil {
		return nil, fmt.Errorf("nhl schedule %s %d: %w", abbr, year, err)
	}
	return ParseSchedule(doc, year)
}

// ParseSchedule reads the regular-season game log. Results are normalized:
// a loss with any overtime becomes OvertimeLoss.
func ParseSchedule(doc *goquery.Selection, year int) (Schedule, error) {
	agg := aggregate.New()
	if err := agg.Add(extract.StatsTable(doc, scheduleTables, false), aggregate.ByText(scheduleScheme["game"])); err != nil {
		return nil, fmt.Errorf("nhl schedule %d: %w", year, err)
	}
	games := make(Schedule, 0, agg.Len())
	for _, id := range agg.IDs() {
		frag, _ := agg.Fragment(id)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nhl game %s: %w", id, err)
		}
		r := record.Build(gameTable, extract.Schemes{scheduleScheme}, sel)
		if res, ok := r.Raw("result"); ok && res != "" {
			r.Set("result", outcome(res, r.Int("overtime")))
		}
		games = append(games, Game{Record: r, Year: year})
	}
	slog.Debug("nhl schedule parsed", "year", year, "games", len(games))
	return games, nil
}

func outcome(raw string, overtime *int) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "w":
		return Win
	case "l":
		if overtime != nil && *overtime != 0 {
			return OvertimeLoss
		}
	}
	return Loss
}
