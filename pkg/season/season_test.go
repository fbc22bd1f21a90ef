package season

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month) time.Time { return time.Date(y, m, 15, 12, 0, 0, 0, time.UTC) }

func TestYearFor(t *testing.T) {
	cases := []struct {
		league string
		now    time.Time
		want   int
	}{
		{"nba", date(2018, time.January), 2018},
		{"nba", date(2018, time.September), 2019},
		{"nba", date(2018, time.December), 2019},
		{"NHL", date(2018, time.August), 2018},
		{"ncaab", date(2018, time.October), 2019},
		{"nfl", date(2018, time.January), 2017},
		{"nfl", date(2018, time.August), 2018},
		{"nfl", date(2018, time.November), 2018},
		{"mlb", date(2018, time.February), 2017},
		{"mlb", date(2018, time.March), 2018},
		{"ncaaf", date(2018, time.July), 2018},
	}
	for _, c := range cases {
		got, err := YearFor(c.league, c.now)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s %s", c.league, c.now.Month())
	}
}

func TestYearForUnknownLeague(t *testing.T) {
	_, err := YearFor("cricket", date(2018, time.May))
	assert.Error(t, err)
}

type checker map[string]bool

func (c checker) Exists(_ context.Context, url string) bool { return c[url] }

func TestResolve(t *testing.T) {
	const format = "https://www.basketball-reference.com/leagues/NBA_%d.html"
	now := date(2018, time.September)

	year, err := Resolve(context.Background(), checker{}, "nba", format, now)
	require.NoError(t, err)
	assert.Equal(t, 2018, year)

	live := checker{"https://www.basketball-reference.com/leagues/NBA_2019.html": true}
	year, err = Resolve(context.Background(), live, "nba", format, now)
	require.NoError(t, err)
	assert.Equal(t, 2019, year)
}
