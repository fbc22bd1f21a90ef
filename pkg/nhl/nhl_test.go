package nhl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/sportsref/pkg/fetch"
)

func TestTeams(t *testing.T) {
	teams, err := Teams(context.Background(), fetch.File("testdata/NHL_2018.html"), 2018)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	tbl := teams[0]
	assert.Equal(t, "TBL", tbl.Abbreviation())
	assert.Equal(t, "Tampa Bay Lightning", tbl.String("name"))
	assert.Equal(t, 1, *tbl.Int("rank"))
	assert.Equal(t, 54, *tbl.Int("wins"))
	assert.Equal(t, 5, *tbl.Int("overtime_losses"))
	assert.InDelta(t, 0.689, *tbl.Float("points_percentage"), 1e-9)
	assert.InDelta(t, -0.07, *tbl.Float("strength_of_schedule"), 1e-9)
	assert.Nil(t, tbl.Int("shots_on_goal"))

	bos := teams[1]
	assert.Equal(t, "BOS", bos.Abbreviation())
	assert.Equal(t, 2803, *bos.Int("shots_on_goal"))
	assert.Nil(t, bos.Float("save_percentage"))
}

func TestSchedule(t *testing.T) {
	f := fetch.Static{}
	_, err := FetchSchedule(context.Background(), f, "nyr", 2018)
	require.ErrorIs(t, err, fetch.ErrNotFound)

	games, err := FetchSchedule(context.Background(), fetch.File("testdata/NYR_2018_games.html"), "nyr", 2018)
	require.NoError(t, err)
	require.Len(t, games, 5)

	first := games[0]
	assert.Equal(t, 1, *first.Int("game"))
	assert.Equal(t, "201710050NYR", first.String("boxscore"))
	assert.Equal(t, Home, first.String("location"))
	assert.Equal(t, "COL", first.String("opponent_abbr"))
	assert.Equal(t, "Colorado Avalanche", first.String("opponent_name"))
	assert.Equal(t, 0, *first.Int("overtime"))
	assert.Equal(t, Loss, first.Result())
	assert.Equal(t, 18006, *first.Int("attendance"))
	assert.Equal(t, "L 1", first.String("streak"))
	assert.Equal(t, time.Date(2017, 10, 5, 0, 0, 0, 0, time.UTC), first.Datetime())

	assert.Equal(t, Away, games[1].String("location"))

	so := games[2]
	assert.Equal(t, Shootout, *so.Int("overtime"))
	assert.Equal(t, OvertimeLoss, so.Result())

	dbl := games[3]
	assert.Equal(t, 2, *dbl.Int("overtime"))
	assert.Equal(t, Win, dbl.Result())

	future := games[4]
	assert.Nil(t, future.Int("goals_scored"))
	assert.Equal(t, "", future.Result())
	_, ok := future.Raw("boxscore")
	assert.False(t, ok)

	g, ok := games.On(time.Date(2017, 10, 9, 19, 0, 0, 0, time.Local))
	require.True(t, ok)
	assert.Equal(t, "MTL", g.String("opponent_abbr"))
	_, ok = games.On(time.Date(2017, 12, 25, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestOvertimes(t *testing.T) {
	cases := map[string]string{"": "0", "OT": "1", "so": "-1", "3OT": "3", "x": "0"}
	for in, want := range cases {
		got, ok := overtimes(in, true)
		assert.True(t, ok)
		assert.Equal(t, want, got, in)
	}
	_, ok := overtimes("", false)
	assert.False(t, ok)
}
