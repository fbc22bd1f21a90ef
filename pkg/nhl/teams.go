// Package nhl reads standings and team schedules from hockey-reference.
package nhl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/internal/quirk"
	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

const (
	site = "https://www.hockey-reference.com"
	// LeagueURL is formatted with the season end year.
	LeagueURL = site + "/leagues/NHL_%d.html"
)

var teamScheme = extract.Scheme{
	"name":                             `td[data-stat="team_name"] a`,
	"average_age":                      `td[data-stat="average_age"]`,
	"games_played":                     `td[data-stat="games"]`,
	"wins":                             `td[data-stat="wins"]`,
	"losses":                           `td[data-stat="losses"]`,
	"overtime_losses":                  `td[data-stat="losses_ot"]`,
	"points":                           `td[data-stat="points"]`,
	"points_percentage":                `td[data-stat="points_pct"]`,
	"goals_for":                        `td[data-stat="goals"]`,
	"goals_against":                    `td[data-stat="opp_goals"]`,
	"simple_rating_system":             `td[data-stat="srs"]`,
	"strength_of_schedule":             `td[data-stat="sos"]`,
	"total_goals_per_game":             `td[data-stat="total_goals_per_game"]`,
	"power_play_goals":                 `td[data-stat="goals_pp"]`,
	"power_play_opportunities":         `td[data-stat="chances_pp"]`,
	"power_play_percentage":            `td[data-stat="power_play_pct"]`,
	"power_play_goals_against":         `td[data-stat="opp_goals_pp"]`,
	"power_play_opportunities_against": `td[data-stat="opp_chances_pp"]`,
	"penalty_killing_percentage":       `td[data-stat="pen_kill_pct"]`,
	"short_handed_goals":               `td[data-stat="goals_sh"]`,
	"short_handed_goals_against":       `td[data-stat="opp_goals_sh"]`,
	"shots_on_goal":                    `td[data-stat="shots"]`,
	"shooting_percentage":              `td[data-stat="shot_pct"]`,
	"shots_against":                    `td[data-stat="shots_against"]`,
	"save_percentage":                  `td[data-stat="save_pct"]`,
	"pdo_at_even_strength":             `td[data-stat="pdo"]`,
}

var teamTable = record.Table{
	{Name: "rank", Kind: record.Int, Skip: true},
	{Name: "abbreviation", Key: "name", Options: []extract.Option{extract.Attr("href")}, Quirk: quirk.Abbreviation},
	{Name: "name"},
	{Name: "average_age", Kind: record.Float},
	{Name: "games_played", Kind: record.Int},
	{Name: "wins", Kind: record.Int},
	{Name: "losses", Kind: record.Int},
	{Name: "overtime_losses", Kind: record.Int},
	{Name: "points", Kind: record.Int},
	{Name: "points_percentage", Kind: record.Float},
	{Name: "goals_for", Kind: record.Int},
	{Name: "goals_against", Kind: record.Int},
	{Name: "simple_rating_system", Kind: record.Float},
	{Name: "strength_of_schedule", Kind: record.Float},
	{Name: "total_goals_per_game", Kind: record.Float},
	{Name: "power_play_goals", Kind: record.Int},
	{Name: "power_play_opportunities", Kind: record.Int},
	{Name: "power_play_percentage", Kind: record.Float},
	{Name: "power_play_goals_against", Kind: record.Int},
	{Name: "power_play_opportunities_against", Kind: record.Int},
	{Name: "penalty_killing_percentage", Kind: record.Float},
	{Name: "short_handed_goals", Kind: record.Int},
	{Name: "short_handed_goals_against", Kind: record.Int},
	{Name: "shots_on_goal", Kind: record.Int},
	{Name: "shooting_percentage", Kind: record.Float},
	{Name: "shots_against", Kind: record.Int},
	{Name: "save_percentage", Kind: record.Float},
	{Name: "pdo_at_even_strength", Kind: record.Float},
}

// Team is one club's season line from the league stats table.
type Team struct {
	*record.Record
	Year int
}

func (t Team) Abbreviation() string { return t.String("abbreviation") }

func teamID(tr *goquery.Selection) (string, bool) {
	return quirk.Abbreviation(extract.Field(teamScheme, tr, "name", extract.Attr("href")))
}

// Teams fetches the league page for the season ending in year.
func Teams(ctx context.Context, f fetch.Fetcher, year int) ([]Team, error) {
	doc, err := f.Page(ctx, fmt.Sprintf(LeagueURL, year))
	if err != nil {
		return nil, fmt.Errorf("nhl teams %d: %w", year, err)
	}
	return ParseTeams(doc, year)
}

// ParseTeams reads the team stats table of a league page.
func ParseTeams(doc *goquery.Selection, year int) ([]Team, error) {
	agg := aggregate.New()
	if err := agg.Add(extract.StatsTable(doc, "table#stats", false), teamID); err != nil {
		return nil, fmt.Errorf("nhl teams %d: %w", year, err)
	}
	teams := make([]Team, 0, agg.Len())
	for _, id := range agg.IDs() {
		frag, _ := agg.Fragment(id)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nhl team %s: %w", id, err)
		}
		r := record.Build(teamTable, extract.Schemes{teamScheme}, sel)
		r.Set("rank", strconv.Itoa(agg.Rank(id)))
		teams = append(teams, Team{Record: r, Year: year})
	}
	slog.Debug("nhl teams parsed", "year", year, "teams", len(teams))
	return teams, nil
}
