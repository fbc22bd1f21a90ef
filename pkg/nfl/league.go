package nfl

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

// SeasonURL is the league summary page of one season.
const SeasonURL = site + "/years/%d/"

// Team offense first so rank follows it, then the conference standings.
var seasonTables = []string{
	"table#team_stats",
	"table#AFC",
	"table#NFC",
}

var seasonScheme = extract.Scheme{
	"link":                           `th[data-stat="team"] a, td[data-stat="team"] a`,
	"games_played":                   `td[data-stat="g"]`,
	"wins":                           `td[data-stat="wins"]`,
	"losses":                         `td[data-stat="losses"]`,
	"ties":                           `td[data-stat="ties"]`,
	"win_percentage":                 `td[data-stat="win_loss_perc"]`,
	"points_for":                     `td[data-stat="points"]`,
	"points_against":                 `td[data-stat="points_opp"]`,
	"points_difference":              `td[data-stat="points_diff"]`,
	"margin_of_victory":              `td[data-stat="mov"]`,
	"strength_of_schedule":           `td[data-stat="sos_total"]`,
	"simple_rating_system":           `td[data-stat="srs_total"]`,
	"offensive_simple_rating_system": `td[data-stat="srs_offense"]`,
	"defensive_simple_rating_system": `td[data-stat="srs_defense"]`,
	"yards":                          `td[data-stat="total_yards"]`,
	"plays":                          `td[data-stat="plays_offense"]`,
	"yards_per_play":                 `td[data-stat="yds_per_play_offense"]`,
	"turnovers":                      `td[data-stat="turnovers"]`,
	"fumbles":                        `td[data-stat="fumbles_lost"]`,
	"first_downs":                    `td[data-stat="first_down"]`,
	"pass_completions":               `td[data-stat="pass_cmp"]`,
	"pass_attempts":                  `td[data-stat="pass_att"]`,
	"pass_yards":                     `td[data-stat="pass_yds"]`,
	"pass_touchdowns":                `td[data-stat="pass_td"]`,
	"interceptions":                  `td[data-stat="pass_int"]`,
	"pass_net_yards_per_attempt":     `td[data-stat="pass_net_yds_per_att"]`,
	"pass_first_downs":               `td[data-stat="pass_fd"]`,
	"rush_attempts":                  `td[data-stat="rush_att"]`,
	"rush_yards":                     `td[data-stat="rush_yds"]`,
	"rush_touchdowns":                `td[data-stat="rush_td"]`,
	"rush_yards_per_attempt":         `td[data-stat="rush_yds_per_att"]`,
	"rush_first_downs":               `td[data-stat="rush_fd"]`,
	"penalties":                      `td[data-stat="penalties"]`,
	"yards_from_penalties":           `td[data-stat="penalties_yds"]`,
	"first_downs_from_penalties":     `td[data-stat="pen_fd"]`,
	"percent_drives_with_points":     `td[data-stat="score_pct"]`,
	"percent_drives_with_turnovers":  `td[data-stat="turnover_pct"]`,
	"points_contributed_by_offense":  `td[data-stat="exp_pts_tot"]`,
}

var seasonTable = record.Table{
	{Name: "abbreviation", Skip: true},
	{Name: "rank", Kind: record.Int, Skip: true},
	{Name: "name", Key: "link", Quirk: cleanName},
	{Name: "games_played", Kind: record.Int},
	{Name: "wins", Kind: record.Int},
	{Name: "losses", Kind: record.Int},
	{Name: "ties", Kind: record.Int},
	{Name: "win_percentage", Kind: record.Float},
	{Name: "points_for", Kind: record.Int},
	{Name: "points_against", Kind: record.Int},
	{Name: "points_difference", Kind: record.Int},
	{Name: "margin_of_victory", Kind: record.Float},
	{Name: "strength_of_schedule", Kind: record.Float},
	{Name: "simple_rating_system", Kind: record.Float},
	{Name: "offensive_simple_rating_system", Kind: record.Float},
	{Name: "defensive_simple_rating_system", Kind: record.Float},
	{Name: "yards", Kind: record.Int},
	{Name: "plays", Kind: record.Int},
	{Name: "yards_per_play", Kind: record.Float},
	{Name: "turnovers", Kind: record.Int},
	{Name: "fumbles", Kind: record.Int},
	{Name: "first_downs", Kind: record.Int},
	{Name: "pass_completions", Kind: record.Int},
	{Name: "pass_attempts", Kind: record.Int},
	{Name: "pass_yards", Kind: record.Int},
	{Name: "pass_touchdowns", Kind: record.Int},
	{Name: "interceptions", Kind: record.Int},
	{Name: "pass_net_yards_per_attempt", Kind: record.Float},
	{Name: "pass_first_downs", Kind: record.Int},
	{Name: "rush_attempts", Kind: record.Int},
	{Name: "rush_yards", Kind: record.Int},
	{Name: "rush_touchdowns", Kind: record.Int},
	{Name: "rush_yards_per_attempt", Kind: record.Float},
	{Name: "rush_first_downs", Kind: record.Int},
	{Name: "penalties", Kind: record.Int},
	{Name: "yards_from_penalties", Kind: record.Int},
	{Name: "first_downs_from_penalties", Kind: record.Int},
	{Name: "percent_drives_with_points", Kind: record.Float},
	{Name: "percent_drives_with_turnovers", Kind: record.Float},
	{Name: "points_contributed_by_offense", Kind: record.Float},
}

// seasonTeamID keys a row on the franchise abbreviation. Links carry the URL
// path ("/teams/crd/2023.htm"), which is mapped back through AllTeams.
func seasonTeamID(tr *goquery.Selection) (string, bool) {
	path, ok := quirk.Abbreviation(extract.Field(seasonScheme, tr, "link", extract.Attr("href")))
	if !ok {
		return "", false
	}
	if t, found := Lookup(path); found {
		return t.Abbr, true
	}
	return path, true
}

// SeasonTeam is one franchise's standings and offense for a season.
type SeasonTeam struct {
	*record.Record
	Year int
}

func (t SeasonTeam) Abbreviation() string { return t.String("abbreviation") }

// Teams fetches every team of the season.
func Teams(ctx context.Context, f fetch.Fetcher, year int) ([]SeasonTeam, error) {
	doc, err := f.Page(ctx, fmt.Sprintf(SeasonURL, year))
	if err != nil {
		return nil, fmt.Errorf("nfl teams %d: %w", year, err)
	}
	return ParseTeams(doc, year)
}

// ParseTeams merges team offense and both conference standings by team.
// Division header rows carry no team link and are skipped.
func ParseTeams(doc *goquery.Selection, year int) ([]SeasonTeam, error) {
	agg := aggregate.New()
	for _, sel := range seasonTables {
		if err := agg.Add(extract.StatsTable(doc, sel, false), seasonTeamID); err != nil {
			return nil, fmt.Errorf("nfl teams %d: %w", year, err)
		}
	}
	teams := make([]SeasonTeam, 0, agg.Len())
	for _, id := range agg.IDs() {
		frag, _ := agg.Fragment(id)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nfl team %s: %w", id, err)
		}
		r := record.Build(seasonTable, extract.Schemes{seasonScheme}, sel)
		r.Set("abbreviation", id)
		r.Set("rank", strconv.Itoa(agg.Rank(id)))
		teams = append(teams, SeasonTeam{Record: r, Year: year})
	}
	slog.Debug("nfl teams parsed", "year", year, "teams", len(teams))
	return teams, nil
}
