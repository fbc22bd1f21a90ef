package nba

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

// PlayerURL is formatted with the first letter of the id and the id.
const PlayerURL = site + "/players/%s/%s.html"

// Season tables in fold order. Totals come first so count stats resolve to
// season totals rather than per-game averages.
var playerTables = []string{
	"table#totals, table#totals_stats",
	"table#per_game, table#per_game_stats",
	"table#per_minute, table#per_minute_stats",
	"table#per_poss, table#per_poss_stats",
	"table#advanced",
}

var seasonLabel = aggregate.ByText(`th[data-stat="season"], th[data-stat="year_id"]`)

var playerScheme = extract.Scheme{
	"season":            `th[data-stat="season"]`,
	"team_abbreviation": `td[data-stat="team_id"]`,
	"league":            `td[data-stat="lg_id"]`,
	"position":          `td[data-stat="pos"]`,
	"age":               `td[data-stat="age"]`,
}

// Pages redesigned in 2024 renamed a handful of columns.
var playerSchemeRenamed = extract.Scheme{
	"season":            `th[data-stat="year_id"]`,
	"team_abbreviation": `td[data-stat="team_name_abbr"]`,
	"league":            `td[data-stat="comp_name_abbr"]`,
}

var playerSchemes = extract.Schemes{playerScheme, playerSchemeRenamed}

var seasonTable = func() record.Table {
	head := record.Table{
		{Name: "season"},
		{Name: "team_abbreviation"},
		{Name: "league"},
		{Name: "position"},
		{Name: "age", Kind: record.Int},
	}
	cell := `td[data-stat="%s"]`
	return join(head,
		cells(playerScheme, cell, "", []stat{
			{"games_played", "g", record.Int},
			{"games_started", "gs", record.Int},
			{"minutes_played", "mp", record.Int},
		}),
		cells(playerScheme, cell, "", concat(shooting, twoPoint, counting, rates)),
		cells(playerScheme, cell, "", []stat{
			{"player_efficiency_rating", "per", record.Float},
			{"offensive_win_shares", "ows", record.Float},
			{"defensive_win_shares", "dws", record.Float},
			{"win_shares", "ws", record.Float},
			{"win_shares_per_48_minutes", "ws_per_48", record.Float},
			{"offensive_box_plus_minus", "obpm", record.Float},
			{"defensive_box_plus_minus", "dbpm", record.Float},
			{"box_plus_minus", "bpm", record.Float},
			{"value_over_replacement_player", "vorp", record.Float},
		}),
	)
}()

var infoScheme = extract.Scheme{
	"name":       `#meta h1`,
	"height":     `#meta span[itemprop="height"]`,
	"weight":     `#meta span[itemprop="weight"]`,
	"birth_date": `#meta span[itemprop="birthDate"]`,
}

var infoTable = record.Table{
	{Name: "name"},
	{Name: "height"},
	{Name: "weight", Quirk: pounds},
	{Name: "birth_date", Options: []extract.Option{extract.Attr("data-birth")}},
}

// pounds drops the unit from "250lb".
func pounds(raw string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(raw, "lb")), true
}

// Salary is one season of a contract. Amount is nil when the cell is blank
// or carries an option note instead of a figure.
type Salary struct {
	Season string
	Amount *int
}

// Player is a player's career broken down by season.
type Player struct {
	ID       string
	Info     *record.Record
	Contract []Salary

	seasons *aggregate.Seasons
	records map[string]*record.Record
}

// Season returns the stats for label. An empty label or "Career" returns
// career totals.
func (p *Player) Season(label string) (*record.Record, bool) {
	if label == "" || strings.EqualFold(label, aggregate.Career) {
		label = aggregate.Career
	}
	r, ok := p.records[label]
	return r, ok
}

// Seasons lists the seasons played, oldest first, followed by Career.
func (p *Player) Seasons() []string { return p.seasons.Keys() }

// MostRecent is the latest season label on the page.
func (p *Player) MostRecent() string { return p.seasons.MostRecent() }

// TeamAbbreviation is the team of the most recent season.
func (p *Player) TeamAbbreviation() string {
	r, ok := p.Season(p.MostRecent())
	if !ok {
		return ""
	}
	return r.String("team_abbreviation")
}

// Name is the display name from the page header.
func (p *Player) Name() string { return p.Info.String("name") }

// FetchPlayer loads a player page by id, such as "jamesle01".
func FetchPlayer(ctx context.Context, f fetch.Fetcher, id string) (*Player, error) {
	if id == "" {
		return nil, fmt.Errorf("nba player: empty id")
	}
	doc, err := f.Page(ctx, fmt.Sprintf(PlayerURL, id[:1], id))
	if err != nil {
		return nil, fmt.Errorf("nba player %s: %w", id, err)
	}
	return ParsePlayer(doc, id)
}

// ParsePlayer buckets every regular-season table by season.
func ParsePlayer(doc *goquery.Selection, id string) (*Player, error) {
	seasons := aggregate.NewSeasons()
	for _, sel := range playerTables {
		body := extract.StatsTable(doc, sel, false)
		foot := extract.StatsTable(doc, sel, true)
		if err := seasons.Add(body, foot, seasonLabel); err != nil {
			return nil, fmt.Errorf("nba player %s: %w", id, err)
		}
	}
	p := &Player{
		ID:       id,
		Info:     record.Build(infoTable, extract.Schemes{infoScheme}, doc),
		Contract: parseContract(doc),
		seasons:  seasons,
		records:  map[string]*record.Record{},
	}
	for _, label := range seasons.Keys() {
		frag, _ := seasons.Season(label)
		sel, err := extract.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("nba player %s season %s: %w", id, label, err)
		}
		r := record.Build(seasonTable, playerSchemes, sel)
		r.Set("season", label)
		p.records[label] = r
	}
	slog.Debug("nba player parsed", "id", id, "seasons", len(p.records), "most_recent", p.MostRecent())
	return p, nil
}

// parseContract reads the first contracts_* table: header cells are seasons
// after the team column, the first body row holds the amounts.
func parseContract(doc *goquery.Selection) []Salary {
	table := doc.Find(`table[id^="contracts_"]`).First()
	if table.Length() == 0 {
		return nil
	}
	var labels []string
	table.Find("thead tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return
		}
		labels = append(labels, strings.TrimSpace(th.Text()))
	})
	var out []Salary
	table.Find("tbody tr").First().Find("th, td").Each(func(i int, td *goquery.Selection) {
		if i == 0 || i > len(labels) {
			return
		}
		out = append(out, Salary{Season: labels[i-1], Amount: extract.Int(td.Text(), true)})
	})
	return out
}
