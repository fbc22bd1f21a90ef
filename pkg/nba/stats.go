// Package nba reads team, player and boxscore pages from basketball-reference.
package nba

import (
	"fmt"

	"github.com/tyler180/sportsref/pkg/extract"
	"github.com/tyler180/sportsref/pkg/record"
)

const site = "https://www.basketball-reference.com"

type stat struct {
	name string
	key  string
	kind record.Kind
}

var shooting = []stat{
	{"field_goals", "fg", record.Int},
	{"field_goal_attempts", "fga", record.Int},
	{"field_goal_percentage", "fg_pct", record.Float},
	{"three_point_field_goals", "fg3", record.Int},
	{"three_point_field_goal_attempts", "fg3a", record.Int},
	{"three_point_field_goal_percentage", "fg3_pct", record.Float},
}

var twoPoint = []stat{
	{"two_point_field_goals", "fg2", record.Int},
	{"two_point_field_goal_attempts", "fg2a", record.Int},
	{"two_point_field_goal_percentage", "fg2_pct", record.Float},
}

var counting = []stat{
	{"free_throws", "ft", record.Int},
	{"free_throw_attempts", "fta", record.Int},
	{"free_throw_percentage", "ft_pct", record.Float},
	{"offensive_rebounds", "orb", record.Int},
	{"defensive_rebounds", "drb", record.Int},
	{"total_rebounds", "trb", record.Int},
	{"assists", "ast", record.Int},
	{"steals", "stl", record.Int},
	{"blocks", "blk", record.Int},
	{"turnovers", "tov", record.Int},
	{"personal_fouls", "pf", record.Int},
	{"points", "pts", record.Int},
}

var rates = []stat{
	{"true_shooting_percentage", "ts_pct", record.Float},
	{"effective_field_goal_percentage", "efg_pct", record.Float},
	{"three_point_attempt_rate", "fg3a_per_fga_pct", record.Float},
	{"free_throw_attempt_rate", "fta_per_fga_pct", record.Float},
	{"offensive_rebound_percentage", "orb_pct", record.Float},
	{"defensive_rebound_percentage", "drb_pct", record.Float},
	{"total_rebound_percentage", "trb_pct", record.Float},
	{"assist_percentage", "ast_pct", record.Float},
	{"steal_percentage", "stl_pct", record.Float},
	{"block_percentage", "blk_pct", record.Float},
	{"turnover_percentage", "tov_pct", record.Float},
	{"usage_percentage", "usg_pct", record.Float},
}

func concat(groups ...[]stat) []stat {
	var out []stat
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// cells registers td[data-stat] selectors for stats in s and returns their
// descriptors. prefix is applied to both the attribute name and data-stat.
func cells(s extract.Scheme, scope, prefix string, stats []stat, opts ...extract.Option) record.Table {
	t := make(record.Table, 0, len(stats))
	for _, st := range stats {
		key := prefix + st.key
		s[key] = fmt.Sprintf(scope, key)
		t = append(t, record.Descriptor{Name: prefix + st.name, Key: key, Kind: st.kind, Options: opts})
	}
	return t
}

func join(tables ...record.Table) record.Table {
	var out record.Table
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}
