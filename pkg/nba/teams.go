package nba

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

// LeagueURL is the season summary page, formatted with the season end year.
const LeagueURL = site + "/leagues/NBA_%d.html"

// Team and opponent totals, in fold order.
var teamTables = []string{
	"table#totals-team, table#team-stats-base",
	"table#totals-opponent, table#opponent-stats-base",
}

var teamScheme = extract.Scheme{
	"name":         `td[data-stat="team"] a, td[data-stat="team_name"] a`,
	"abbreviation": `td[data-stat="team"] a, td[data-stat="team_name"] a`,
}

var teamTable = func() record.Table {
	head := record.Table{
		{Name: "rank", Kind: record.Int, Skip: true},
		{Name: "abbreviation", Options: []extract.Option{extract.Attr("href")}, Quirk: quirk.Abbreviation},
		{Name: "name"},
	}
	cell := `td[data-stat="%s"]`
	return join(head,
		cells(teamScheme, cell, "", []stat{{"games_played", "g", record.Int}, {"minutes_played", "mp", record.Int}}),
		cells(teamScheme, cell, "", concat(shooting, twoPoint, counting)),
		cells(teamScheme, cell, "opp_", concat(shooting, twoPoint, counting)),
	)
}()

// Team is one franchise's season totals and opponent totals.
type Team struct {
	*record.Record
	Year int
}

func (t Team) Abbreviation() string { return t.String("abbreviation") }

// Rank is the team's position in the totals table.
func (t Team) Rank() int {
	if n := t.Int("rank"); n != nil {
		return *n
	}
	return 0
}

func teamID(tr *goquery.Selection) (string, bool) {
	return quirk.Abbreviation(extract.Field(teamScheme, tr, "abbreviation", extract.Attr("href")))
}

// Teams fetches every team for the season ending in year.
func Teams(ctx context.Context, f fetch.Fetcher, year int) ([]Team, error) {
	doc, err := f.Page(ctx, fmt.Sprintf(LeagueURL, year))
	if err != nil {
		return nil, fmt.Errorf("nba teams %d: %w", year, err)
	}
	return ParseTeams(doc, year)
}

// ParseTeams merges the team and opponent totals rows of a league page.
func ParseTeams(doc *goquery.Selection, year int) ([]Team, error) {
	agg := aggregate.New()
	for _, sel := range teamTables {
		if err := agg.Add(extract.StatsTable(doc, sel, false), teamID); err != nil {
			return nil, fmt.Errorf("nba teams %d: %w", year, err)
		}
	}
	teams := make([]Team, 0, agg.Len())
	for _, id := range agg.IDs() {
		frag, _ := agg.Fragment(id)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nba team %s: %w", id, err)
		}
		r := record.Build(teamTable, extract.Schemes{teamScheme}, sel)
		r.Set("rank", strconv.Itoa(agg.Rank(id)))
		teams = append(teams, Team{Record: r, Year: year})
	}
	slog.Debug("nba teams parsed", "year", year, "teams", len(teams))
	return teams, nil
}
