// Package quirk holds raw-value rewrites shared by several sites.
package quirk

import (
	"regexp"
	"strings"
)

var (
	reSeasonPage = regexp.MustCompile(`/[0-9]+\..*htm.*`)
	reSchools    = regexp.MustCompile(`/.*/schools/`)
)

// Abbreviation turns a team link such as "/teams/BOS/2018.html" into "BOS".
func Abbreviation(href string, ok bool) (string, bool) {
	if !ok || href == "" {
		return "", false
	}
	abbr := reSeasonPage.ReplaceAllString(href, "")
	abbr = reSchools.ReplaceAllString(abbr, "")
	abbr = strings.Replace(abbr, "/teams/", "", 1)
	abbr = strings.Trim(abbr, "/")
	if i := strings.IndexByte(abbr, '/'); i >= 0 {
		abbr = abbr[:i]
	}
	if abbr == "" {
		return "", false
	}
	return strings.ToUpper(abbr), true
}

// LinkSegment returns a quirk keeping the path segment after marker, such as
// "/en/matches/abc123/Foo" with marker "/matches/" -> "abc123".
func LinkSegment(marker string) func(string, bool) (string, bool) {
	return func(href string, ok bool) (string, bool) {
		if !ok {
			return "", false
		}
		i := strings.Index(href, marker)
		if i < 0 {
			return "", false
		}
		rest := href[i+len(marker):]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[:j]
		}
		rest = strings.TrimSuffix(rest, ".html")
		rest = strings.TrimSuffix(rest, ".htm")
		return rest, rest != ""
	}
}
