// Package fb reads club rosters and match logs from fbref.com.
package fb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

const site = "https://fbref.com"

// SquadURL is formatted with an 8 character squad id.
const SquadURL = site + "/en/squads/%s"

// ErrUnknownSquad is returned when a name matches no known squad.
var ErrUnknownSquad = errors.New("fb: unknown squad")

// squadIDs is keyed by the cleaned, lowercase club name.
var squadIDs = map[string]string{
	"arsenal":             "18bb7c10",
	"aston villa":         "8602292d",
	"atlético madrid":     "db3b9613",
	"barcelona":           "206d90db",
	"bayern munich":       "054efa67",
	"chelsea":             "cff3d9bb",
	"everton":             "d3fd31cc",
	"juventus":            "e0652b02",
	"la galaxy":           "d8b46897",
	"leicester city":      "a2d435b3",
	"liverpool":           "822bd0ba",
	"manchester city":     "b8fd03ef",
	"manchester united":   "19538871",
	"newcastle united":    "b2b47a98",
	"paris saint-germain": "e2d8892c",
	"real madrid":         "53a2f082",
	"tottenham hotspur":   "361ca564",
}

// leagueIDs maps squads whose stats tables carry a competition suffix
// instead of "ks_combined".
var leagueIDs = map[string]string{
	"d8b46897": "22",
}

// Suggestion is a near match for a squad name.
type Suggestion struct {
	Name  string
	ID    string
	Score float64
}

// squadName drops the FC and CF tags, lowercases and trims.
func squadName(name string) string {
	for _, tag := range []string{" FC", " CF", "FC ", "CF "} {
		name = strings.ReplaceAll(name, tag, "")
	}
	return strings.TrimSpace(strings.ToLower(name))
}

// LookupSquad returns the id of name. Without an exact match it returns the
// five closest squads by Jaro-Winkler similarity, best first.
func LookupSquad(name string) (string, []Suggestion, bool) {
	clean := squadName(name)
	if id, ok := squadIDs[clean]; ok {
		return id, nil, true
	}
	out := make([]Suggestion, 0, len(squadIDs))
	for n, id := range squadIDs {
		out = append(out, Suggestion{Name: title(n), ID: id, Score: matchr.JaroWinkler(clean, n, false)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return "", out[:min(5, len(out))], false
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SquadID accepts either a known squad id or a club name.
func SquadID(team string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(team))
	for _, id := range squadIDs {
		if id == lower {
			return id, nil
		}
	}
	id, near, ok := LookupSquad(team)
	if ok {
		return id, nil
	}
	names := make([]string, len(near))
	for i, s := range near {
		names[i] = s.Name
	}
	return "", fmt.Errorf("%w: %q (closest: %s)", ErrUnknownSquad, team, strings.Join(names, ", "))
}
