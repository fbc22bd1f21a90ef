package fb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/sportsref/internal/quirk"
	"github.com/tyler180/sportsref/pkg/aggregate"
	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/record"
)

// ErrNoPlayer is returned by Roster.Player when nothing matches.
var ErrNoPlayer = errors.New("fb: no player with that name or id")

// statsTables are folded in this order; the first table carrying a field
// wins, so standard stats take precedence over the shooting table's copies.
var statsTables = []string{
	"stats_standard_",
	"stats_keeper_",
	"stats_keeper_adv_",
	"stats_shooting_",
	"stats_passing_",
	"stats_playing_time_",
	"stats_misc_",
}

const defaultSuffix = "ks_combined"

var playerLink = `th[data-stat="player"] a`

var rosterScheme = extract.Scheme{
	"name":                         `th[data-stat="player"]`,
	"nationality":                  `td[data-stat="nationality"] a`,
	"position":                     `td[data-stat="position"]`,
	"age":                          `td[data-stat="age"]`,
	"matches_played":               `td[data-stat="games"]`,
	"starts":                       `td[data-stat="games_starts"]`,
	"minutes":                      `td[data-stat="minutes"]`,
	"goals":                        `td[data-stat="goals"]`,
	"assists":                      `td[data-stat="assists"]`,
	"penalty_kicks":                `td[data-stat="pens_made"]`,
	"penalty_kick_attempts":        `td[data-stat="pens_att"]`,
	"yellow_cards":                 `td[data-stat="cards_yellow"]`,
	"red_cards":                    `td[data-stat="cards_red"]`,
	"goals_per_90":                 `td[data-stat="goals_per90"]`,
	"assists_per_90":               `td[data-stat="assists_per90"]`,
	"expected_goals":               `td[data-stat="xg"]`,
	"expected_goals_non_penalty":   `td[data-stat="npxg"]`,
	"expected_assists":             `td[data-stat="xg_assist"]`,
	"goals_against":                `td[data-stat="gk_goals_against"]`,
	"goals_against_per_90":         `td[data-stat="gk_goals_against_per90"]`,
	"shots_on_target_against":      `td[data-stat="gk_shots_on_target_against"]`,
	"saves":                        `td[data-stat="gk_saves"]`,
	"save_percentage":              `td[data-stat="gk_save_pct"]`,
	"wins":                         `td[data-stat="gk_wins"]`,
	"draws":                        `td[data-stat="gk_ties"]`,
	"losses":                       `td[data-stat="gk_losses"]`,
	"clean_sheets":                 `td[data-stat="gk_clean_sheets"]`,
	"clean_sheet_percentage":       `td[data-stat="gk_clean_sheets_pct"]`,
	"post_shot_expected_goals":     `td[data-stat="gk_psxg"]`,
	"shots":                        `td[data-stat="shots"]`,
	"shots_on_target":              `td[data-stat="shots_on_target"]`,
	"shots_on_target_percentage":   `td[data-stat="shots_on_target_pct"]`,
	"goals_per_shot":               `td[data-stat="goals_per_shot"]`,
	"passes_completed":             `td[data-stat="passes_completed"]`,
	"passes_attempted":             `td[data-stat="passes"]`,
	"pass_completion":              `td[data-stat="passes_pct"]`,
	"key_passes":                   `td[data-stat="assisted_shots"]`,
	"final_third_passes":           `td[data-stat="passes_into_final_third"]`,
	"penalty_area_passes":          `td[data-stat="passes_into_penalty_area"]`,
	"minutes_per_match":            `td[data-stat="minutes_per_game"]`,
	"minutes_played_percentage":    `td[data-stat="minutes_pct"]`,
	"nineties_played":              `td[data-stat="minutes_90s"]`,
	"subs":                         `td[data-stat="games_subs"]`,
	"unused_sub":                   `td[data-stat="unused_subs"]`,
	"points_per_match":             `td[data-stat="points_per_game"]`,
	"goal_difference_on_pitch":     `td[data-stat="plus_minus"]`,
	"expected_goal_difference":     `td[data-stat="xg_plus_minus"]`,
	"soft_reds":                    `td[data-stat="cards_yellow_red"]`,
	"fouls_committed":              `td[data-stat="fouls"]`,
	"fouls_drawn":                  `td[data-stat="fouled"]`,
	"offsides":                     `td[data-stat="offsides"]`,
	"crosses":                      `td[data-stat="crosses"]`,
	"tackles_won":                  `td[data-stat="tackles_won"]`,
	"interceptions":                `td[data-stat="interceptions"]`,
	"penalty_kicks_won":            `td[data-stat="pens_won"]`,
	"penalty_kicks_conceded":       `td[data-stat="pens_conceded"]`,
	"own_goals":                    `td[data-stat="own_goals"]`,
	"expected_goals_per_90":        `td[data-stat="xg_per90"]`,
	"expected_assists_per_90":      `td[data-stat="xg_assist_per90"]`,
	"goals_and_assists_per_90":     `td[data-stat="goals_assists_per90"]`,
	"goals_non_penalty_per_90":     `td[data-stat="goals_pens_per90"]`,
	"shots_per_90":                 `td[data-stat="shots_per90"]`,
	"average_keeper_pass_length":   `td[data-stat="gk_avg_pass_length"]`,
	"launch_completion_percentage": `td[data-stat="gk_pct_passes_launched"]`,
}

var playerTable = record.Table{
	{Name: "name"},
	{Name: "nationality", Options: []extract.Option{extract.Attr("href")}, Quirk: nationality},
	{Name: "position"},
	{Name: "age"},
	{Name: "matches_played", Kind: record.Int},
	{Name: "starts", Kind: record.Int},
	{Name: "minutes", Kind: record.Int},
	{Name: "goals", Kind: record.Int},
	{Name: "assists", Kind: record.Int},
	{Name: "penalty_kicks", Kind: record.Int},
	{Name: "penalty_kick_attempts", Kind: record.Int},
	{Name: "yellow_cards", Kind: record.Int},
	{Name: "red_cards", Kind: record.Int},
	{Name: "goals_per_90", Kind: record.Float},
	{Name: "assists_per_90", Kind: record.Float},
	{Name: "goals_and_assists_per_90", Kind: record.Float},
	{Name: "goals_non_penalty_per_90", Kind: record.Float},
	{Name: "expected_goals", Kind: record.Float},
	{Name: "expected_goals_non_penalty", Kind: record.Float},
	{Name: "expected_assists", Kind: record.Float},
	{Name: "expected_goals_per_90", Kind: record.Float},
	{Name: "expected_assists_per_90", Kind: record.Float},
	{Name: "own_goals", Kind: record.Int},
	{Name: "goals_against", Kind: record.Int},
	{Name: "goals_against_per_90", Kind: record.Float},
	{Name: "shots_on_target_against", Kind: record.Int},
	{Name: "saves", Kind: record.Int},
	{Name: "save_percentage", Kind: record.Float},
	{Name: "wins", Kind: record.Int},
	{Name: "draws", Kind: record.Int},
	{Name: "losses", Kind: record.Int},
	{Name: "clean_sheets", Kind: record.Int},
	{Name: "clean_sheet_percentage", Kind: record.Float},
	{Name: "post_shot_expected_goals", Kind: record.Float},
	{Name: "average_keeper_pass_length", Kind: record.Float},
	{Name: "launch_completion_percentage", Kind: record.Float},
	{Name: "shots", Kind: record.Int},
	{Name: "shots_on_target", Kind: record.Int},
	{Name: "shots_on_target_percentage", Kind: record.Float},
	{Name: "shots_per_90", Kind: record.Float},
	{Name: "goals_per_shot", Kind: record.Float},
	{Name: "passes_completed", Kind: record.Int},
	{Name: "passes_attempted", Kind: record.Int},
	{Name: "pass_completion", Kind: record.Float},
	{Name: "key_passes", Kind: record.Int},
	{Name: "final_third_passes", Kind: record.Int},
	{Name: "penalty_area_passes", Kind: record.Int},
	{Name: "minutes_per_match", Kind: record.Int},
	{Name: "minutes_played_percentage", Kind: record.Float},
	{Name: "nineties_played", Kind: record.Float},
	{Name: "subs", Kind: record.Int},
	{Name: "unused_sub", Kind: record.Int},
	{Name: "points_per_match", Kind: record.Float},
	{Name: "goal_difference_on_pitch", Kind: record.Int},
	{Name: "expected_goal_difference", Kind: record.Float},
	{Name: "soft_reds", Kind: record.Int},
	{Name: "fouls_committed", Kind: record.Int},
	{Name: "fouls_drawn", Kind: record.Int},
	{Name: "offsides", Kind: record.Int},
	{Name: "crosses", Kind: record.Int},
	{Name: "tackles_won", Kind: record.Int},
	{Name: "interceptions", Kind: record.Int},
	{Name: "penalty_kicks_won", Kind: record.Int},
	{Name: "penalty_kicks_conceded", Kind: record.Int},
}

// nationality reads "/en/country/ENG/England-Football" as "England".
func nationality(href string, ok bool) (string, bool) {
	if !ok || href == "" {
		return "", false
	}
	country := strings.ReplaceAll(path.Base(href), "-Football", "")
	return country, country != ""
}

var playerID = quirk.LinkSegment("/players/")

func rowPlayerID(tr *goquery.Selection) (string, bool) {
	href, ok := tr.Find(playerLink).First().Attr("href")
	return playerID(href, ok)
}

// Player is one squad member with every stats table merged in.
type Player struct {
	ID string
	*record.Record
}

func (p Player) Name() string { return p.String("name") }

// Roster is a squad's players in the order of the standard stats table.
type Roster struct {
	SquadID string
	Players []Player
}

// Player finds a player by id or by the name listed on the site, ignoring case.
func (r Roster) Player(key string) (Player, error) {
	key = strings.TrimSpace(key)
	for _, p := range r.Players {
		if strings.EqualFold(key, p.ID) || strings.EqualFold(key, strings.TrimSpace(p.Name())) {
			return p, nil
		}
	}
	return Player{}, fmt.Errorf("%w: %q", ErrNoPlayer, key)
}

// FetchRoster loads the squad page of team, a squad id or club name.
func FetchRoster(ctx context.Context, f fetch.Fetcher, team string) (Roster, error) {
	id, err := SquadID(team)
	if err != nil {
		return Roster{}, err
	}
	doc, err := f.Page(ctx, fmt.Sprintf(SquadURL, id))
	if err != nil {
		return Roster{}, fmt.Errorf("fb roster %s: %w", id, err)
	}
	return ParseRoster(doc, id)
}

// ParseRoster folds every player stats table on a squad page. Each table is
// looked up with the "ks_combined" suffix first and the squad's league id
// second.
func ParseRoster(doc *goquery.Selection, squadID string) (Roster, error) {
	agg := aggregate.New()
	suffix := leagueIDs[squadID]
	for _, prefix := range statsTables {
		rows := extract.StatsTable(doc, "table#"+prefix+defaultSuffix, false)
		if rows.Length() == 0 && suffix != "" {
			rows = extract.StatsTable(doc, "table#"+prefix+suffix, false)
		}
		if err := agg.Add(rows, rowPlayerID); err != nil {
			return Roster{}, fmt.Errorf("fb roster %s: %w", squadID, err)
		}
	}
	out := Roster{SquadID: squadID, Players: make([]Player, 0, agg.Len())}
	for _, pid := range agg.IDs() {
		frag, _ := agg.Fragment(pid)
		sel, err := extract.Parse(frag)
		if err != nil {
			return Roster{}, fmt.Errorf("fb player %s: %w", pid, err)
		}
		out.Players = append(out.Players, Player{ID: pid, Record: record.Build(playerTable, extract.Schemes{rosterScheme}, sel)})
	}
	slog.Debug("fb roster parsed", "squad", squadID, "players", len(out.Players))
	return out, nil
}
