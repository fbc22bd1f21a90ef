package nba

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/internal/quirk"
	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

// BoxscoreURL is formatted with a game id such as "201710310LAL".
const BoxscoreURL = site + "/boxscores/%s.html"

const (
	Home = "Home"
	Away = "Away"
)

var (
	basicFoot       = `table[id$="-game-basic"] tfoot td[data-stat="%[1]s"], table[id^="box_"][id$="_basic"] tfoot td[data-stat="%[1]s"]`
	advancedFoot    = `table[id$="-game-advanced"] tfoot td[data-stat="%[1]s"], table[id^="box_"][id$="_advanced"] tfoot td[data-stat="%[1]s"]`
	playerTablesSel = `table[id$="-game-basic"], table[id$="-game-advanced"], table[id^="box_"]`
)

var boxBasic = concat(
	[]stat{{"minutes_played", "mp", record.Int}},
	shooting,
	counting,
)

var boxscoreScheme = extract.Scheme{
	"date":      `div.scorebox_meta div`,
	"location":  `div.scorebox_meta div`,
	"team_name": `div.scorebox strong a`,
	"record":    `div.scorebox > div:not(.scorebox_meta) > div:nth-child(3)`,
	"pace":      `td[data-stat="pace"]`,
}

var boxscoreTable = func() record.Table {
	side := func(prefix string, opts ...extract.Option) record.Table {
		t := record.Table{
			{Name: prefix + "name", Key: "team_name", Options: opts},
			{Name: prefix + "abbreviation", Key: "team_name", Options: append([]extract.Option{extract.Attr("href")}, opts...), Quirk: quirk.Abbreviation},
			{Name: prefix + "wins", Key: "record", Kind: record.Int, Options: opts, Quirk: recordPart(0)},
			{Name: prefix + "losses", Key: "record", Kind: record.Int, Options: opts, Quirk: recordPart(1)},
		}
		for _, d := range cells(boxscoreScheme, basicFoot, "", boxBasic, opts...) {
			d.Name = prefix + d.Name
			t = append(t, d)
		}
		for _, d := range cells(boxscoreScheme, advancedFoot, "", rates, opts...) {
			d.Name = prefix + d.Name
			t = append(t, d)
		}
		for _, d := range cells(boxscoreScheme, advancedFoot, "", []stat{
			{"offensive_rating", "off_rtg", record.Float},
			{"defensive_rating", "def_rtg", record.Float},
		}, opts...) {
			d.Name = prefix + d.Name
			t = append(t, d)
		}
		return t
	}
	head := record.Table{
		{Name: "date"},
		{Name: "location", Options: []extract.Option{extract.Index(1)}},
		// Older pages list pace once instead of on both four-factor rows.
		{Name: "pace", Kind: record.Float, Options: []extract.Option{extract.Index(1), extract.Secondary(0)}},
		{Name: "winner", Skip: true},
	}
	return join(head, side("away_", extract.Index(0)), side("home_", extract.Index(1)))
}()

var reDigits = regexp.MustCompile(`\d+`)

// recordPart extracts wins (0) or losses (1) from a record such as "41-27".
// A record carrying the "76ers" name has that 76 skipped; any other shape
// reads as zero.
func recordPart(i int) record.Quirk {
	return func(raw string, ok bool) (string, bool) {
		if !ok {
			return "", false
		}
		nums := reDigits.FindAllString(raw, -1)
		if strings.Contains(raw, "76ers") && len(nums) > 0 {
			nums = nums[1:]
		}
		if len(nums) != 2 {
			return "0", true
		}
		return nums[i], true
	}
}

var boxPlayerScheme = extract.Scheme{
	"name": `th[data-stat="player"] a, th a`,
}

var boxPlayerTable = func() record.Table {
	cell := `td[data-stat="%s"]`
	return join(
		record.Table{{Name: "name"}},
		cells(boxPlayerScheme, cell, "", []stat{{"minutes_played", "mp", record.String}}),
		cells(boxPlayerScheme, cell, "", concat(shooting, counting, rates)),
		cells(boxPlayerScheme, cell, "", []stat{
			{"plus_minus", "plus_minus", record.Int},
			{"offensive_rating", "off_rtg", record.Int},
			{"defensive_rating", "def_rtg", record.Int},
			{"box_plus_minus", "bpm", record.Float},
		}),
	)
}()

// BoxscorePlayer is one player's line merged across basic and advanced tables.
type BoxscorePlayer struct {
	ID string
	*record.Record
}

// Boxscore is a single game.
type Boxscore struct {
	URI string
	*record.Record
	// Summary holds points per period for "away" and "home", excluding the
	// final total. Unreadable periods are nil.
	Summary     map[string][]*int
	AwayPlayers []BoxscorePlayer
	HomePlayers []BoxscorePlayer
}

// Winner is Home or Away, or "" before the game has a score.
func (b *Boxscore) Winner() string { return b.String("winner") }

func (b *Boxscore) side(winning bool) string {
	w := b.Winner()
	if w == "" {
		return ""
	}
	if (w == Home) == winning {
		return "home_"
	}
	return "away_"
}

func (b *Boxscore) WinningName() string { return b.sideString(true, "name") }
func (b *Boxscore) WinningAbbr() string { return b.sideString(true, "abbreviation") }
func (b *Boxscore) LosingName() string  { return b.sideString(false, "name") }
func (b *Boxscore) LosingAbbr() string  { return b.sideString(false, "abbreviation") }

func (b *Boxscore) sideString(winning bool, field string) string {
	p := b.side(winning)
	if p == "" {
		return ""
	}
	return b.String(p + field)
}

// FetchBoxscore loads a game by uri, such as "201710310LAL".
func FetchBoxscore(ctx context.Context, f fetch.Fetcher, uri string) (*Boxscore, error) {
	doc, err := f.Page(ctx, fmt.Sprintf(BoxscoreURL, uri))
	if err != nil {
		return nil, fmt.Errorf("nba boxscore %s: %w", uri, err)
	}
	return ParseBoxscore(doc, uri)
}

// ParseBoxscore reads team totals, the line score and every player.
func ParseBoxscore(doc *goquery.Selection, uri string) (*Boxscore, error) {
	b := &Boxscore{
		URI:     uri,
		Record:  record.Build(boxscoreTable, extract.Schemes{boxscoreScheme}, doc),
		Summary: parseSummary(doc),
	}
	away, home := b.Int("away_points"), b.Int("home_points")
	if away != nil && home != nil {
		if *home > *away {
			b.Set("winner", Home)
		} else {
			b.Set("winner", Away)
		}
	}
	var err error
	b.AwayPlayers, b.HomePlayers, err = parseBoxPlayers(doc)
	if err != nil {
		return nil, fmt.Errorf("nba boxscore %s: %w", uri, err)
	}
	slog.Debug("nba boxscore parsed", "uri", uri, "winner", b.Winner(),
		"away_players", len(b.AwayPlayers), "home_players", len(b.HomePlayers))
	return b, nil
}

func parseSummary(doc *goquery.Selection) map[string][]*int {
	summary := map[string][]*int{"away": {}, "home": {}}
	sides := []string{"away", "home"}
	rows := doc.Find("table#line_score tbody tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return !extract.IsHeaderRow(tr) && tr.Find("td").Length() > 0
	})
	rows.Each(func(i int, tr *goquery.Selection) {
		if i > 1 {
			return
		}
		tds := tr.Find("td")
		tds.Slice(0, tds.Length()-1).Each(func(_ int, td *goquery.Selection) {
			summary[sides[i]] = append(summary[sides[i]], extract.Int(td.Text(), true))
		})
	})
	return summary
}

// parseBoxPlayers splits game-level tables in half: the first half belongs
// to the away team.
func parseBoxPlayers(doc *goquery.Selection) (away, home []BoxscorePlayer, err error) {
	tables := doc.Find(playerTablesSel)
	half := tables.Length() / 2
	aggs := [2]*aggregate.Aggregator{aggregate.New(), aggregate.New()}
	id := aggregate.ByAttr("th", "data-append-csv")
	tables.EachWithBreak(func(i int, t *goquery.Selection) bool {
		side := 1
		if i < half {
			side = 0
		}
		err = aggs[side].Add(t.Find("tbody tr"), id)
		return err == nil
	})
	if err != nil {
		return nil, nil, err
	}
	out := [2][]BoxscorePlayer{}
	for side, agg := range aggs {
		for _, pid := range agg.IDs() {
			frag, _ := agg.Fragment(pid)
			sel, perr := extract.Parse(frag)
			if perr != nil {
				return nil, nil, fmt.Errorf("player %s: %w", pid, perr)
			}
			out[side] = append(out[side], BoxscorePlayer{
				ID:     pid,
				Record: record.Build(boxPlayerTable, extract.Schemes{boxPlayerScheme}, sel),
			})
		}
	}
	return out[0], out[1], nil
}

// Points formats a side's score for display.
func (b *Boxscore) Points(side string) string {
	n := b.Int(strings.ToLower(side) + "_points")
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
