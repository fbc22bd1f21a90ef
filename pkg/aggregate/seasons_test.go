package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/sportsref/pkg/extract"
)

const perGame = `<table id="per_game"><tbody>
<tr><th data-stat="season">2016-17</th><td data-stat="pts">20.1</td></tr>
<tr class="thead"><th data-stat="season">Season</th></tr>
<tr><th data-stat="season">2017-18</th><td data-stat="team_id">CLE</td><td data-stat="pts">27.5</td></tr>
<tr><th data-stat="season">2017-18</th><td data-stat="team_id">TOT</td><td data-stat="pts">27.4</td></tr>
</tbody><tfoot>
<tr><th data-stat="season">Career</th><td data-stat="pts">27.1</td></tr>
<tr><th data-stat="season">2 seasons</th><td data-stat="pts">26.9</td></tr>
</tfoot></table>`

func TestSeasonsBuckets(t *testing.T) {
	doc := extract.MustParse(perGame)
	s := NewSeasons()
	require.NoError(t, s.Add(
		extract.StatsTable(doc, "table#per_game", false),
		extract.StatsTable(doc, "table#per_game", true),
		ByText(`th[data-stat="season"]`),
	))

	assert.Equal(t, []string{"2016-17", "2017-18", Career}, s.Keys())
	assert.Equal(t, "2017-18", s.MostRecent())

	frag, ok := s.Season("2017-18")
	require.True(t, ok)
	v, ok := extract.Field(extract.Scheme{"team": `td[data-stat="team_id"]`}, extract.MustParse(frag), "team", extract.Index(1))
	require.True(t, ok)
	assert.Equal(t, "TOT", v)

	career, ok := s.Season("")
	require.True(t, ok)
	pts := extract.Float(extract.Field(extract.Scheme{"pts": `td[data-stat="pts"]`}, extract.MustParse(career), "pts"))
	require.NotNil(t, pts)
	assert.InDelta(t, 27.1, *pts, 1e-9)

	_, ok = s.Season("career")
	assert.True(t, ok)
	_, ok = s.Season("1999-00")
	assert.False(t, ok)
}

func TestSeasonsFoldAcrossTables(t *testing.T) {
	totals := extract.MustParse(`<table id="totals"><tbody>
<tr><th data-stat="season">2016-17</th><td data-stat="pts">1500</td></tr>
</tbody></table>`)
	pg := extract.MustParse(perGame)

	s := NewSeasons()
	id := ByText(`th[data-stat="season"]`)
	require.NoError(t, s.Add(extract.StatsTable(pg, "table#per_game", false), extract.StatsTable(pg, "table#per_game", true), id))
	require.NoError(t, s.Add(extract.StatsTable(totals, "table#totals", false), extract.StatsTable(totals, "table#totals", true), id))

	assert.Equal(t, "2016-17", s.MostRecent(), "most recent tracks the last row processed")
	frag, _ := s.Season("2016-17")
	v, ok := extract.Field(extract.Scheme{"pts": `td[data-stat="pts"]`}, extract.MustParse(frag), "pts", extract.Index(1))
	require.True(t, ok)
	assert.Equal(t, "1500", v)
}
