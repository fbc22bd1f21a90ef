package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/nfl"
)

type fakeDDB struct {
	written []map[string]types.AttributeValue
}

func (f *fakeDDB) BatchWriteItem(_ context.Context, in *ddb.BatchWriteItemInput, _ ...func(*ddb.Options)) (*ddb.BatchWriteItemOutput, error) {
	for _, reqs := range in.RequestItems {
		for _, r := range reqs {
			f.written = append(f.written, r.PutRequest.Item)
		}
	}
	return &ddb.BatchWriteItemOutput{}, nil
}

func (f *fakeDDB) Query(context.Context, *ddb.QueryInput, ...func(*ddb.Options)) (*ddb.QueryOutput, error) {
	return nil, errors.New("not implemented")
}

func fixedNow() time.Time { return time.Date(2017, 11, 5, 0, 0, 0, 0, time.UTC) }

func intp(n int) *int { return &n }

func TestHandleNBATeams(t *testing.T) {
	t.Setenv("SPORT", "")
	t.Setenv("YEAR", "")
	fd := &fakeDDB{}
	h := &handler{ddb: fd, fetch: fetch.File("../../pkg/nba/testdata/NBA_2018.html"), table: "sportsref", now: fixedNow}

	res, err := h.Handle(context.Background(), Event{Sport: "nba"})
	require.NoError(t, err)
	assert.Equal(t, Response{OK: true, Table: "sportsref", Partition: "nba#2018#teams", Items: 2}, res)
	require.Len(t, fd.written, 2)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "GSW"}, fd.written[0]["ID"])
}

func TestHandleYearFromEnv(t *testing.T) {
	t.Setenv("SPORT", "nhl")
	t.Setenv("YEAR", "2018")
	h := &handler{ddb: &fakeDDB{}, fetch: fetch.File("../../pkg/nhl/testdata/NHL_2018.html"), table: "t", now: fixedNow}

	res, err := h.Handle(context.Background(), Event{})
	require.NoError(t, err)
	assert.Equal(t, "nhl#2018#teams", res.Partition)
	assert.Positive(t, res.Items)
}

func TestHandleNFLChunk(t *testing.T) {
	t.Setenv("TEAM_LIST", "")
	roster, err := os.ReadFile("../../pkg/nfl/testdata/sea_2023_roster.htm")
	require.NoError(t, err)
	first := nfl.AllTeams()[0]
	fd := &fakeDDB{}
	h := &handler{
		ddb:   fd,
		fetch: fetch.Static{fmt.Sprintf(nfl.RosterURL, first.Path, 2023): string(roster)},
		table: "t",
		now:   fixedNow,
	}

	res, err := h.Handle(context.Background(), Event{
		Sport: "nfl", Kind: "roster", Year: intp(2023),
		TeamChunkIndex: intp(0), TeamChunkTotal: intp(32),
	})
	require.NoError(t, err)
	assert.Equal(t, "nfl#2023#roster", res.Partition)
	assert.Equal(t, 2, res.Items)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "nfl#2023#roster"}, fd.written[0]["Partition"])
}

func TestNFLChunksShareAPartition(t *testing.T) {
	t.Setenv("TEAM_LIST", "")
	t.Setenv("TEAM_CHUNK_INDEX", "")
	t.Setenv("TEAM_CHUNK_TOTAL", "")
	h := &handler{now: fixedNow}
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		req, err := h.request(ctx, Event{
			Sport: "nfl", Kind: "roster", Year: intp(2023),
			TeamChunkIndex: intp(i), TeamChunkTotal: intp(4),
		})
		require.NoError(t, err)
		assert.Empty(t, req.Team)
		assert.Len(t, req.Teams, 8)
		seen[req.Partition()] = true
	}
	assert.Equal(t, map[string]bool{"nfl#2023#roster": true}, seen)

	// the CLI writes an all-teams roster to the same partition
	req, err := h.request(ctx, Event{Sport: "nfl", Kind: "roster", Year: intp(2023)})
	require.NoError(t, err)
	assert.Len(t, req.Teams, 32)
	assert.Equal(t, "nfl#2023#roster", req.Partition())
}

func TestHandleScrapeError(t *testing.T) {
	h := &handler{ddb: &fakeDDB{}, fetch: fetch.Static{}, table: "t", now: fixedNow}
	_, err := h.Handle(context.Background(), Event{Sport: "nba", Year: intp(1900)})
	assert.True(t, errors.Is(err, fetch.ErrNotFound))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty(" ", "b", "c"))
	assert.Equal(t, "", firstNonEmpty())
}
