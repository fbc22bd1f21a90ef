package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tyler180/sportsref/internal/env"
	"github.com/tyler180/sportsref/internal/scrape"
	"github.com/tyler180/sportsref/internal/store"
	"github.com/tyler180/sportsref/pkg/fetch"
	"github.com/tyler180/sportsref/pkg/nfl"
	"github.com/tyler180/sportsref/pkg/season"
)

// Event selects what to export. Unset fields fall back to SPORT, KIND and
// YEAR in the environment, then to the current season.
type Event struct {
	Sport string `json:"sport"`
	Kind  string `json:"kind"`
	Year  *int   `json:"year"`
	Team  string `json:"team"`
	ID    string `json:"id"`

	// nfl rosters without a team are split into chunks so one invocation
	// stays inside the Lambda timeout
	TeamChunkIndex *int `json:"team_chunk_index"`
	TeamChunkTotal *int `json:"team_chunk_total"`
}

type Response struct {
	OK        bool   `json:"ok"`
	Table     string `json:"table"`
	Partition string `json:"partition"`
	Items     int    `json:"items"`
}

type handler struct {
	ddb     store.DynamoDBAPI
	fetch   fetch.Fetcher
	checker season.Checker
	table   string
	now     func() time.Time
}

func (h *handler) request(ctx context.Context, e Event) (scrape.Request, error) {
	req := scrape.Request{
		Sport: strings.ToLower(firstNonEmpty(e.Sport, env.Get("SPORT", "nba"))),
		Kind:  strings.ToLower(firstNonEmpty(e.Kind, env.Get("KIND", scrape.Teams))),
		Year:  env.PickInt(e.Year, env.Int("YEAR", 0)),
		Team:  e.Team,
		ID:    e.ID,
	}
	if req.Year == 0 {
		y, err := scrape.ResolveYear(ctx, h.checker, req.Sport, h.now())
		if err != nil {
			return req, err
		}
		req.Year = y
	}
	if req.Sport == "nfl" && req.Kind == scrape.Roster && req.Team == "" {
		total := env.PickInt(e.TeamChunkTotal, env.Int("TEAM_CHUNK_TOTAL", 1))
		index := env.PickInt(e.TeamChunkIndex, env.Int("TEAM_CHUNK_INDEX", 0))
		teams := nfl.Subset(nfl.AllTeams(), env.Get("TEAM_LIST", ""), index, total)
		if len(teams) == 0 {
			return req, fmt.Errorf("no nfl teams in chunk %d/%d", index, total)
		}
		for _, t := range teams {
			req.Teams = append(req.Teams, t.Abbr)
		}
	}
	return req, nil
}

func (h *handler) Handle(ctx context.Context, e Event) (Response, error) {
	req, err := h.request(ctx, e)
	if err != nil {
		return Response{}, err
	}
	slog.Info("export start", "sport", req.Sport, "kind", req.Kind, "year", req.Year, "team", req.Team, "id", req.ID)

	res, err := scrape.Run(ctx, h.fetch, req)
	if err != nil {
		return Response{}, fmt.Errorf("scrape %s %s %d: %w", req.Sport, req.Kind, req.Year, err)
	}
	partition := req.Partition()
	if err := store.PutRecords(ctx, h.ddb, h.table, partition, res.Items); err != nil {
		return Response{}, err
	}
	slog.Info("export done", "table", h.table, "partition", partition, "items", len(res.Items))
	return Response{OK: true, Table: h.table, Partition: partition, Items: len(res.Items)}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
