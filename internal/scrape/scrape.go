// Package scrape dispatches a sport and page kind to the matching parser and
// flattens the result into exportable items.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tyler180/sportsref/internal/store"
	"github.com/tyler180/sportsref/pkg/fb"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/nba"
	"github.com/tyler180/sportsref/pkg/nfl"
	"github.com/tyler180/sportsref/pkg/nhl"
	"github.com/tyler180/sportsref/pkg/record"
	"github.com/tyler180/sportsref/pkg/season"
)

const (
	Teams    = "teams"
	Roster   = "roster"
	Player   = "player"
	Boxscore = "boxscore"
	Schedule = "schedule"
)

// ErrUnsupported is returned for a sport and kind pair with no parser.
var ErrUnsupported = errors.New("scrape: unsupported sport/kind")

// ErrMissingArg is returned when the kind needs a team or id that was not given.
var ErrMissingArg = errors.New("scrape: missing argument")

// Request names one page to scrape.
type Request struct {
	Sport string `json:"sport"`
	Kind  string `json:"kind"`
	Year  int    `json:"year"`
	Team  string `json:"team"`
	ID    string `json:"id"`

	// Teams narrows an all-teams scrape to one chunk. It is not part of
	// the partition, so every chunk of a season lands in the same one.
	Teams []string `json:"teams,omitempty"`
}

// Result is a flat view of one scrape: a column table and one item per entity.
type Result struct {
	Name    string
	Columns record.Table
	Items   []store.Item
}

// Partition is the DynamoDB partition key of the result.
func (r Request) Partition() string {
	key := store.Partition(r.Sport, r.Year, r.Kind)
	if r.Team != "" {
		key += "#" + strings.ToUpper(r.Team)
	}
	if r.ID != "" {
		key += "#" + r.ID
	}
	return key
}

type runner func(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error)

var runners = map[string]map[string]runner{
	"nba": {Teams: nbaTeams, Player: nbaPlayer, Boxscore: nbaBoxscore, Schedule: nbaSchedule},
	"nhl": {Teams: nhlTeams, Schedule: nhlSchedule},
	"nfl": {Teams: nflTeams, Roster: nflRoster},
	"fb":  {Roster: fbRoster, Schedule: fbSchedule},
}

// Supported lists "sport kind" pairs in sorted order.
func Supported() []string {
	var out []string
	for sport, kinds := range runners {
		for kind := range kinds {
			out = append(out, sport+" "+kind)
		}
	}
	sort.Strings(out)
	return out
}

// leaguePages are checked to decide whether the current season has started.
var leaguePages = map[string]string{
	"nba": nba.LeagueURL,
	"nhl": nhl.LeagueURL,
}

// ResolveYear picks the season for sport when none was given. Sports with a
// league page are checked through c when it is non-nil; fb has no season in
// its URLs and resolves to 0.
func ResolveYear(ctx context.Context, c season.Checker, sport string, now time.Time) (int, error) {
	sport = strings.ToLower(sport)
	if sport == "fb" {
		return 0, nil
	}
	if page, ok := leaguePages[sport]; ok && c != nil {
		return season.Resolve(ctx, c, sport, page, now)
	}
	return season.YearFor(sport, now)
}

// Run scrapes req through f.
func Run(ctx context.Context, f fetch.Fetcher, req Request) (Result, error) {
	req.Sport = strings.ToLower(strings.TrimSpace(req.Sport))
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	run, ok := runners[req.Sport][req.Kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s %s", ErrUnsupported, req.Sport, req.Kind)
	}
	ids, recs, err := run(ctx, f, req)
	if err != nil {
		return Result{}, err
	}
	res := Result{Name: req.Sport + "_" + req.Kind, Items: make([]store.Item, len(recs))}
	for i, r := range recs {
		if res.Columns == nil {
			res.Columns = r.Table()
		}
		res.Items[i] = store.Item{ID: ids[i], Row: r.Row()}
	}
	slog.Debug("scrape done", "sport", req.Sport, "kind", req.Kind, "items", len(res.Items))
	return res, nil
}

func nbaTeams(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	teams, err := nba.Teams(ctx, f, req.Year)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(teams))
	recs := make([]*record.Record, len(teams))
	for i, t := range teams {
		ids[i], recs[i] = t.Abbreviation(), t.Record
	}
	return ids, recs, nil
}

func nbaPlayer(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	if req.ID == "" {
		return nil, nil, fmt.Errorf("%w: nba player needs an id", ErrMissingArg)
	}
	p, err := nba.FetchPlayer(ctx, f, req.ID)
	if err != nil {
		return nil, nil, err
	}
	var ids []string
	var recs []*record.Record
	for _, label := range p.Seasons() {
		r, _ := p.Season(label)
		ids = append(ids, label)
		recs = append(recs, r)
	}
	return ids, recs, nil
}

func nbaBoxscore(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	if req.ID == "" {
		return nil, nil, fmt.Errorf("%w: nba boxscore needs an id", ErrMissingArg)
	}
	b, err := nba.FetchBoxscore(ctx, f, req.ID)
	if err != nil {
		return nil, nil, err
	}
	return []string{b.URI}, []*record.Record{b.Record}, nil
}

// nbaSchedule keys games by boxscore id, which the boxscore kind takes.
func nbaSchedule(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	if req.Team == "" {
		return nil, nil, fmt.Errorf("%w: nba schedule needs a team", ErrMissingArg)
	}
	games, err := nba.FetchSchedule(ctx, f, req.Team, req.Year)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(games))
	recs := make([]*record.Record, len(games))
	for i, g := range games {
		ids[i], recs[i] = g.Boxscore(), g.Record
	}
	return ids, recs, nil
}

func nhlTeams(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	teams, err := nhl.Teams(ctx, f, req.Year)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(teams))
	recs := make([]*record.Record, len(teams))
	for i, t := range teams {
		ids[i], recs[i] = t.Abbreviation(), t.Record
	}
	return ids, recs, nil
}

func nhlSchedule(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	if req.Team == "" {
		return nil, nil, fmt.Errorf("%w: nhl schedule needs a team", ErrMissingArg)
	}
	games, err := nhl.FetchSchedule(ctx, f, req.Team, req.Year)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(games))
	recs := make([]*record.Record, len(games))
	for i, g := range games {
		ids[i], recs[i] = g.String("game"), g.Record
	}
	return ids, recs, nil
}

func nflTeams(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	teams, err := nfl.Teams(ctx, f, req.Year)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(teams))
	recs := make([]*record.Record, len(teams))
	for i, t := range teams {
		ids[i], recs[i] = t.Abbreviation(), t.Record
	}
	return ids, recs, nil
}

// nflRoster scrapes req.Teams when set, else req.Team (one team or a
// comma-separated list), else every team.
func nflRoster(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	list := req.Team
	if len(req.Teams) > 0 {
		list = strings.Join(req.Teams, ",")
	}
	teams := nfl.Subset(nfl.AllTeams(), list, 0, 1)
	if len(teams) == 0 {
		return nil, nil, fmt.Errorf("%w: unknown nfl team %q", ErrMissingArg, list)
	}
	var ids []string
	var recs []*record.Record
	for _, t := range teams {
		players, err := nfl.Roster(ctx, f, t, req.Year)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range players {
			ids = append(ids, p.ID+"#"+t.Abbr)
			recs = append(recs, p.Record)
		}
	}
	return ids, recs, nil
}

func fbRoster(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	if req.Team == "" {
		return nil, nil, fmt.Errorf("%w: fb roster needs a squad", ErrMissingArg)
	}
	r, err := fb.FetchRoster(ctx, f, req.Team)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(r.Players))
	recs := make([]*record.Record, len(r.Players))
	for i, p := range r.Players {
		ids[i], recs[i] = p.ID, p.Record
	}
	return ids, recs, nil
}

// fbSchedule keys matches by report id; unplayed matches fall back to their
// position in the log.
func fbSchedule(ctx context.Context, f fetch.Fetcher, req Request) ([]string, []*record.Record, error) {
	if req.Team == "" {
		return nil, nil, fmt.Errorf("%w: fb schedule needs a squad", ErrMissingArg)
	}
	s, err := fb.FetchSchedule(ctx, f, req.Team)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(s))
	recs := make([]*record.Record, len(s))
	for i, m := range s {
		id, ok := m.Raw("match_report")
		if !ok {
			id = "match-" + strconv.Itoa(i+1)
		}
		ids[i], recs[i] = id, m.Record
	}
	return ids, recs, nil
}
