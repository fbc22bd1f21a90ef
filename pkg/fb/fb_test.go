package fb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/sportsref/pkg/fetch"
)

const squadPage = "testdata/tottenham.html"

func TestLookupSquad(t *testing.T) {
	id, near, ok := LookupSquad("Tottenham Hotspur FC")
	require.True(t, ok)
	assert.Equal(t, "361ca564", id)
	assert.Empty(t, near)

	_, near, ok = LookupSquad("tottenham")
	require.False(t, ok)
	require.Len(t, near, 5)
	assert.Equal(t, "Tottenham Hotspur", near[0].Name)
	assert.Equal(t, "361ca564", near[0].ID)
}

func TestSquadID(t *testing.T) {
	id, err := SquadID("361CA564")
	require.NoError(t, err)
	assert.Equal(t, "361ca564", id)

	id, err = SquadID("  manchester united ")
	require.NoError(t, err)
	assert.Equal(t, "19538871", id)

	_, err = SquadID("Nowhere Rovers")
	assert.True(t, errors.Is(err, ErrUnknownSquad))
}

func TestRoster(t *testing.T) {
	r, err := FetchRoster(context.Background(), fetch.File(squadPage), "Tottenham Hotspur")
	require.NoError(t, err)
	assert.Equal(t, "361ca564", r.SquadID)
	require.Len(t, r.Players, 3)

	kane := r.Players[0]
	assert.Equal(t, "21a66f6a", kane.ID)
	assert.Equal(t, "Harry Kane", kane.Name())
	assert.Equal(t, "England", kane.String("nationality"))
	assert.Equal(t, "FW", kane.String("position"))
	assert.Equal(t, 2589, *kane.Int("minutes"))
	// standard stats come first, so the shooting table's goals cell loses
	assert.Equal(t, 18, *kane.Int("goals"))
	assert.Equal(t, 84, *kane.Int("shots"))
	assert.InDelta(t, 44.0, *kane.Float("shots_on_target_percentage"), 1e-9)
	assert.Nil(t, kane.Int("saves"))

	lloris, err := r.Player("8F62B6EE")
	require.NoError(t, err)
	assert.Equal(t, "France", lloris.String("nationality"))
	assert.Equal(t, 57, *lloris.Int("saves"))
	assert.InDelta(t, 70.9, *lloris.Float("save_percentage"), 1e-9)
	assert.Equal(t, 5, *lloris.Int("draws"))

	celso, err := r.Player("giovani lo celso")
	require.NoError(t, err)
	assert.Equal(t, "3eb22ec9", celso.ID)
	assert.Equal(t, 22, *celso.Int("fouls_committed"))
	assert.Nil(t, celso.Int("matches_played"))

	_, err = r.Player("Son Heung-min")
	assert.True(t, errors.Is(err, ErrNoPlayer))
}

func TestSchedule(t *testing.T) {
	s, err := FetchSchedule(context.Background(), fetch.File(squadPage), "361ca564")
	require.NoError(t, err)
	require.Len(t, s, 3)

	opener := s[0]
	assert.Equal(t, "Premier League", opener.String("competition"))
	assert.Equal(t, Home, opener.String("venue"))
	assert.Equal(t, Win, opener.String("result"))
	assert.Equal(t, 3, *opener.Int("goals_for"))
	assert.Nil(t, opener.Int("shootout_scored"))
	assert.Equal(t, 60407, *opener.Int("attendance"))
	assert.InDelta(t, 2.1, *opener.Float("expected_goals"), 1e-9)
	assert.Equal(t, "8602292d", opener.String("opponent_id"))
	assert.Equal(t, "8f62b6ee", opener.String("captain_id"))
	assert.Equal(t, "e2ecab2f", opener.String("match_report"))
	at, ok := opener.Datetime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 8, 10, 17, 30, 0, 0, time.UTC), at)

	cup := s[1]
	assert.Equal(t, Away, cup.String("venue"))
	assert.Equal(t, Draw, cup.String("result"))
	assert.Equal(t, 2, *cup.Int("goals_for"))
	assert.Equal(t, 2, *cup.Int("goals_against"))
	assert.Equal(t, 4, *cup.Int("shootout_scored"))
	assert.Equal(t, 5, *cup.Int("shootout_against"))
	assert.Nil(t, cup.Float("expected_goals"))

	future := s[2]
	assert.Equal(t, Neutral, future.String("venue"))
	_, ok = future.Raw("result")
	assert.False(t, ok)
	assert.Nil(t, future.Int("goals_for"))
	_, ok = future.Raw("match_report")
	assert.False(t, ok)
	at, ok = future.Datetime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 7, 26, 0, 0, 0, 0, time.UTC), at)

	m, ok := s.On(time.Date(2019, 9, 24, 20, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "Colchester United", m.String("opponent"))

	m, ok = s.Report("e2ecab2f")
	require.True(t, ok)
	assert.Equal(t, "Aston Villa", m.String("opponent"))
	_, ok = s.Report("nope")
	assert.False(t, ok)
}

func TestScheduleWithoutMatchLog(t *testing.T) {
	f := fetch.Static{fmt.Sprintf(SquadURL, "361ca564"): `<html><body><table id="stats_standard_ks_combined"></table></body></html>`}
	s, err := FetchSchedule(context.Background(), f, "361ca564")
	require.NoError(t, err)
	assert.Empty(t, s)
	_, ok := s.Report("e2ecab2f")
	assert.False(t, ok)
}

func TestGoalsQuirks(t *testing.T) {
	for _, tc := range []struct {
		raw, goals, shootout string
		hasShootout          bool
	}{
		{"1", "1", "", false},
		{"1 (3)", "1", "3", true},
		{"", "", "", false},
	} {
		g, _ := goals(tc.raw, true)
		assert.Equal(t, tc.goals, g, tc.raw)
		s, ok := shootout(tc.raw, true)
		assert.Equal(t, tc.hasShootout, ok, tc.raw)
		assert.Equal(t, tc.shootout, s, tc.raw)
	}
}
