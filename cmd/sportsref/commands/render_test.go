package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/sportsref/internal/scrape"
	"github.com/tyler180/sportsref/internal/store"
	"github.com/tyler180/sportsref/pkg/record"
)

var result = scrape.Result{
	Name: "nba_teams",
	Columns: record.Table{
		{Name: "name"},
		{Name: "points", Kind: record.Int},
		{Name: "pace", Kind: record.Float},
	},
	Items: []store.Item{
		{ID: "GSW", Row: map[string]any{"name": "Golden State Warriors", "points": 9317, "pace": 99.6}},
		{ID: "PHI", Row: map[string]any{"name": "Philadelphia 76ers", "points": 8985, "pace": nil}},
	},
}

func TestHeader(t *testing.T) {
	if d := cmp.Diff([]string{"id", "name", "points", "pace"}, header(result, nil)); d != "" {
		t.Fatalf("header (-want +got):\n%s", d)
	}
	assert.Equal(t, []string{"id", "points"}, header(result, []string{"points", "nope"}))

	dumped := scrape.Result{Items: []store.Item{
		{ID: "a", Row: map[string]any{"z": 1.0, "b": "x"}},
		{ID: "b", Row: map[string]any{"c": nil}},
	}}
	assert.Equal(t, []string{"id", "b", "c", "z"}, header(dumped, nil))
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "table", result, nil))
	out := buf.String()
	// go-pretty upper-cases headers by default
	assert.Contains(t, strings.ToLower(out), "nba_teams")
	assert.Contains(t, out, "Golden State Warriors")
	assert.Contains(t, out, "99.6")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Greater(t, len(lines), 4)
}

func TestRenderSingleIsVertical(t *testing.T) {
	var buf bytes.Buffer
	one := result
	one.Items = result.Items[:1]
	require.NoError(t, render(&buf, "table", one, nil))
	assert.Contains(t, strings.ToLower(buf.String()), "field")
	assert.Contains(t, buf.String(), "9317")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "json", result, []string{"pace"}))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := []map[string]any{
		{"id": "GSW", "pace": 99.6},
		{"id": "PHI", "pace": nil},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("json (-want +got):\n%s", d)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	assert.Error(t, render(&bytes.Buffer{}, "xml", result, nil))
}
