package nba

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/sportsref/pkg/fetch"
)

func intp(n int) *int { return &n }

func TestTeams(t *testing.T) {
	teams, err := Teams(context.Background(), fetch.File("testdata/NBA_2018.html"), 2018)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	gsw := teams[0]
	assert.Equal(t, "GSW", gsw.Abbreviation())
	assert.Equal(t, "Golden State Warriors", gsw.String("name"))
	assert.Equal(t, 1, gsw.Rank())
	assert.Equal(t, 2018, gsw.Year)
	assert.Equal(t, 82, *gsw.Int("games_played"))
	assert.Equal(t, 9317, *gsw.Int("points"))
	assert.Equal(t, 8814, *gsw.Int("opp_points"))
	assert.InDelta(t, 0.467, *gsw.Float("opp_field_goal_percentage"), 1e-9)
	assert.Nil(t, gsw.Int("two_point_field_goals"))

	phi := teams[1]
	assert.Equal(t, "PHI", phi.Abbreviation())
	assert.Equal(t, 2, phi.Rank())
	assert.Equal(t, 8550, *phi.Int("opp_points"))

	row := phi.Row()
	assert.Equal(t, 2, row["rank"])
	assert.Equal(t, "Philadelphia 76ers", row["name"])
	assert.Nil(t, row["steals"])
}

func TestTeamsNotFound(t *testing.T) {
	_, err := Teams(context.Background(), fetch.Static{}, 1900)
	assert.True(t, errors.Is(err, fetch.ErrNotFound))
}

func TestPlayer(t *testing.T) {
	p, err := FetchPlayer(context.Background(), fetch.File("testdata/jamesle01.html"), "jamesle01")
	require.NoError(t, err)

	assert.Equal(t, "LeBron James", p.Name())
	assert.Equal(t, "6-9", p.Info.String("height"))
	assert.Equal(t, "250", p.Info.String("weight"))
	assert.Equal(t, "1984-12-30", p.Info.String("birth_date"))

	assert.Equal(t, []string{"2016-17", "2017-18", "Career"}, p.Seasons())
	assert.Equal(t, "2017-18", p.MostRecent())
	assert.Equal(t, "CLE", p.TeamAbbreviation())

	s, ok := p.Season("2017-18")
	require.True(t, ok)
	assert.Equal(t, "2017-18", s.String("season"))
	assert.Equal(t, 33, *s.Int("age"))
	assert.Equal(t, "PF", s.String("position"))
	assert.Equal(t, 82, *s.Int("games_started"))
	assert.Equal(t, 3026, *s.Int("minutes_played"))
	assert.Equal(t, 2251, *s.Int("points"))
	assert.InDelta(t, 0.542, *s.Float("field_goal_percentage"), 1e-9)
	assert.InDelta(t, 28.6, *s.Float("player_efficiency_rating"), 1e-9)
	assert.InDelta(t, 31.6, *s.Float("usage_percentage"), 1e-9)

	career, ok := p.Season("")
	require.True(t, ok)
	assert.Equal(t, 1143, *career.Int("games_played"))
	assert.Equal(t, 31038, *career.Int("points"))
	assert.Equal(t, "Career", career.String("season"))

	_, ok = p.Season("1999-00")
	assert.False(t, ok)

	want := []Salary{
		{Season: "2018-19", Amount: intp(35654150)},
		{Season: "2019-20", Amount: intp(37436858)},
		{Season: "2020-21"},
	}
	if diff := cmp.Diff(want, p.Contract); diff != "" {
		t.Fatalf("contract mismatch (-want +got):\n%s", diff)
	}
}

func TestBoxscore(t *testing.T) {
	b, err := FetchBoxscore(context.Background(), fetch.File("testdata/201710170CLE.html"), "201710170CLE")
	require.NoError(t, err)

	assert.Equal(t, "8:00 PM, October 17, 2017", b.String("date"))
	assert.Equal(t, "Quicken Loans Arena, Cleveland, Ohio", b.String("location"))
	assert.Equal(t, "Boston Celtics", b.String("away_name"))
	assert.Equal(t, "CLE", b.String("home_abbreviation"))
	assert.Equal(t, 99, *b.Int("away_points"))
	assert.Equal(t, 102, *b.Int("home_points"))
	assert.Equal(t, 240, *b.Int("away_minutes_played"))
	assert.InDelta(t, 0.470, *b.Float("home_field_goal_percentage"), 1e-9)
	assert.InDelta(t, 0.557, *b.Float("home_true_shooting_percentage"), 1e-9)
	assert.InDelta(t, 102.7, *b.Float("home_offensive_rating"), 1e-9)
	assert.InDelta(t, 99.3, *b.Float("pace"), 1e-9)
	assert.Equal(t, 0, *b.Int("away_wins"))
	assert.Equal(t, 1, *b.Int("away_losses"))
	assert.Equal(t, 1, *b.Int("home_wins"))

	assert.Equal(t, Home, b.Winner())
	assert.Equal(t, "Cleveland Cavaliers", b.WinningName())
	assert.Equal(t, "CLE", b.WinningAbbr())
	assert.Equal(t, "Boston Celtics", b.LosingName())
	assert.Equal(t, "BOS", b.LosingAbbr())
	assert.Equal(t, "102", b.Points(Home))

	wantSummary := map[string][]*int{
		"away": {intp(19), intp(27), intp(28), intp(25)},
		"home": {intp(29), intp(25), intp(23), intp(25)},
	}
	if diff := cmp.Diff(wantSummary, b.Summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, b.AwayPlayers, 2)
	require.Len(t, b.HomePlayers, 1)
	kyrie := b.AwayPlayers[0]
	assert.Equal(t, "irvinky01", kyrie.ID)
	assert.Equal(t, "Kyrie Irving", kyrie.String("name"))
	assert.Equal(t, "39:12", kyrie.String("minutes_played"))
	assert.Equal(t, 22, *kyrie.Int("points"))
	assert.Equal(t, -4, *kyrie.Int("plus_minus"))
	assert.InDelta(t, 0.563, *kyrie.Float("true_shooting_percentage"), 1e-9)
	assert.Equal(t, 2, *b.AwayPlayers[1].Int("plus_minus"))
	assert.Equal(t, "jamesle01", b.HomePlayers[0].ID)
}

func TestSchedule(t *testing.T) {
	html, err := os.ReadFile("testdata/CLE_2018_gamelog.html")
	require.NoError(t, err)
	f := fetch.Static{fmt.Sprintf(ScheduleURL, "CLE", 2018): string(html)}

	games, err := FetchSchedule(context.Background(), f, "cle", 2018)
	require.NoError(t, err)
	require.Len(t, games, 3)

	opener := games[0]
	assert.Equal(t, "201710170CLE", opener.Boxscore())
	assert.Equal(t, 1, *opener.Int("game"))
	assert.Equal(t, Home, opener.String("location"))
	assert.Equal(t, "BOS", opener.String("opponent_abbr"))
	assert.Equal(t, Win, opener.Result())
	assert.Equal(t, 102, *opener.Int("points_scored"))
	assert.Equal(t, 99, *opener.Int("points_allowed"))
	assert.InDelta(t, 0.434, *opener.Float("opp_field_goal_percentage"), 1e-9)
	assert.False(t, opener.Playoffs())
	assert.Equal(t, time.Date(2017, 10, 17, 0, 0, 0, 0, time.UTC), opener.Datetime())

	road := games[1]
	assert.Equal(t, Away, road.String("location"))
	assert.Equal(t, Loss, road.Result())

	playoff := games[2]
	assert.Equal(t, "201804150CLE", playoff.Boxscore())
	assert.True(t, playoff.Playoffs())
	assert.Equal(t, 1, *playoff.Int("game"))
	assert.Nil(t, playoff.Int("free_throw_attempts"))
	assert.Nil(t, playoff.Int("steals"))

	g, ok := games.On(time.Date(2017, 10, 18, 20, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "MIL", g.String("opponent_abbr"))

	row := opener.Row()
	assert.Equal(t, "false", row["playoffs"])
	assert.Equal(t, 41, row["total_rebounds"])

	_, err = FetchSchedule(context.Background(), fetch.Static{}, "CLE", 1900)
	assert.True(t, errors.Is(err, fetch.ErrNotFound))
}

func TestScheduleLeadsToBoxscore(t *testing.T) {
	games, err := FetchSchedule(context.Background(), fetch.File("testdata/CLE_2018_gamelog.html"), "CLE", 2018)
	require.NoError(t, err)
	b, err := FetchBoxscore(context.Background(), fetch.File("testdata/201710170CLE.html"), games[0].Boxscore())
	require.NoError(t, err)
	assert.Equal(t, games[0].String("points_scored"), b.Points(Home))
}

func TestRecordPart(t *testing.T) {
	wins, losses := recordPart(0), recordPart(1)
	cases := []struct {
		raw    string
		wins   string
		losses string
	}{
		{"41-27", "41", "27"},
		{"Philadelphia 76ers 52-30", "52", "30"},
		{"Golden State Warriors 1", "0", "0"},
	}
	for _, c := range cases {
		w, ok := wins(c.raw, true)
		require.True(t, ok)
		assert.Equal(t, c.wins, w, c.raw)
		l, _ := losses(c.raw, true)
		assert.Equal(t, c.losses, l, c.raw)
	}
	_, ok := wins("", false)
	assert.False(t, ok)
}
