// Package nfl reads season standings, team rosters and snap counts from
// pro-football-reference.
package nfl

import (
	"log/slog"
	"strings"
)

const site = "https://www.pro-football-reference.com"

// Team maps a display abbreviation to the URL path pro-football-reference
// uses, which is often a historical franchise code.
type Team struct {
	Abbr string // e.g. "SEA"
	Path string // e.g. "sea", as in /teams/{Path}/...
	Name string
}

// AllTeams returns the 32 franchises in canonical order.
func AllTeams() []Team {
	return []Team{
		{Abbr: "ARI", Path: "crd", Name: "Arizona Cardinals"},
		{Abbr: "ATL", Path: "atl", Name: "Atlanta Falcons"},
		{Abbr: "BAL", Path: "rav", Name: "Baltimore Ravens"},
		{Abbr: "BUF", Path: "buf", Name: "Buffalo Bills"},
		{Abbr: "CAR", Path: "car", Name: "Carolina Panthers"},
		{Abbr: "CHI", Path: "chi", Name: "Chicago Bears"},
		{Abbr: "CIN", Path: "cin", Name: "Cincinnati Bengals"},
		{Abbr: "CLE", Path: "cle", Name: "Cleveland Browns"},
		{Abbr: "DAL", Path: "dal", Name: "Dallas Cowboys"},
		{Abbr: "DEN", Path: "den", Name: "Denver Broncos"},
		{Abbr: "DET", Path: "det", Name: "Detroit Lions"},
		{Abbr: "GNB", Path: "gnb", Name: "Green Bay Packers"},
		{Abbr: "HOU", Path: "htx", Name: "Houston Texans"},
		{Abbr: "IND", Path: "clt", Name: "Indianapolis Colts"},
		{Abbr: "JAX", Path: "jax", Name: "Jacksonville Jaguars"},
		{Abbr: "KAN", Path: "kan", Name: "Kansas City Chiefs"},
		{Abbr: "LVR", Path: "rai", Name: "Las Vegas Raiders"},
		{Abbr: "LAC", Path: "sdg", Name: "Los Angeles Chargers"},
		{Abbr: "LAR", Path: "ram", Name: "Los Angeles Rams"},
		{Abbr: "MIA", Path: "mia", Name: "Miami Dolphins"},
		{Abbr: "MIN", Path: "min", Name: "Minnesota Vikings"},
		{Abbr: "NWE", Path: "nwe", Name: "New England Patriots"},
		{Abbr: "NOR", Path: "nor", Name: "New Orleans Saints"},
		{Abbr: "NYG", Path: "nyg", Name: "New York Giants"},
		{Abbr: "NYJ", Path: "nyj", Name: "New York Jets"},
		{Abbr: "PHI", Path: "phi", Name: "Philadelphia Eagles"},
		{Abbr: "PIT", Path: "pit", Name: "Pittsburgh Steelers"},
		{Abbr: "SFO", Path: "sfo", Name: "San Francisco 49ers"},
		{Abbr: "SEA", Path: "sea", Name: "Seattle Seahawks"},
		{Abbr: "TAM", Path: "tam", Name: "Tampa Bay Buccaneers"},
		{Abbr: "TEN", Path: "oti", Name: "Tennessee Titans"},
		{Abbr: "WAS", Path: "was", Name: "Washington Commanders"},
	}
}

// Lookup finds a team by abbreviation or URL path, case-insensitively.
func Lookup(code string) (Team, bool) {
	code = strings.TrimSpace(code)
	for _, t := range AllTeams() {
		if strings.EqualFold(t.Abbr, code) || strings.EqualFold(t.Path, code) {
			return t, true
		}
	}
	return Team{}, false
}

// Abbrs returns every abbreviation in canonical order.
func Abbrs() []string {
	ts := AllTeams()
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Abbr)
	}
	return out
}

// Subset narrows all to an explicit comma-separated list of abbreviations or
// paths when list is set, otherwise to chunk index of total equal chunks.
// A listed subset keeps the order of all and holds each team once.
func Subset(all []Team, list string, index, total int) []Team {
	if list = strings.TrimSpace(list); list != "" {
		want := make(map[string]struct{})
		for _, tok := range strings.Split(list, ",") {
			if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
				want[tok] = struct{}{}
			}
		}
		sub := make([]Team, 0, len(want))
		for _, t := range all {
			_, byAbbr := want[strings.ToLower(t.Abbr)]
			_, byPath := want[strings.ToLower(t.Path)]
			if byAbbr || byPath {
				sub = append(sub, t)
			}
		}
		slog.Debug("team subset from list", "list", list, "teams", len(sub))
		return sub
	}
	if total <= 1 {
		return all
	}
	index = max(0, min(index, total-1))
	size := (len(all) + total - 1) / total
	start := index * size
	if start >= len(all) {
		return nil
	}
	end := min(start+size, len(all))
	slog.Debug("team subset chunk", "index", index, "total", total, "teams", end-start)
	return all[start:end]
}
