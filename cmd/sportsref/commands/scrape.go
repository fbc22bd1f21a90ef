package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/tyler180/sportsref/internal/scrape"
	"github.com/tyler180/sportsref/internal/store"
	"github.com/tyler180/sportsref/pkg/season"
)

type kindDef struct {
	kind  string
	use   string
	short string
	sport string // default --sport
	needs string // "id", "team" or ""
}

var kinds = []kindDef{
	{scrape.Teams, "teams", "League table of every team for a season.", "nba", ""},
	{scrape.Roster, "roster", "Players of one team (nfl: all teams when --team is empty).", "nfl", ""},
	{scrape.Player, "player <id>", "Season-by-season stats of one player, e.g. jamesle01.", "nba", "id"},
	{scrape.Boxscore, "boxscore <id>", "Team totals of one game, e.g. 201710170CLE.", "nba", "id"},
	{scrape.Schedule, "schedule", "Game log of one team.", "nhl", "team"},
}

func init() {
	for _, k := range kinds {
		rootCmd.AddCommand(newKindCmd(k))
	}
}

func newKindCmd(k kindDef) *cobra.Command {
	var sport, team string
	var year int
	cmd := &cobra.Command{
		Use:   k.use,
		Short: k.short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := scrape.Request{Sport: sport, Kind: k.kind, Year: year, Team: team}
			if len(args) == 1 {
				req.ID = args[0]
			}
			if k.needs == "id" && req.ID == "" {
				return fmt.Errorf("%s needs an id argument", k.kind)
			}
			if k.needs == "team" && req.Team == "" {
				return fmt.Errorf("%s needs --team", k.kind)
			}
			return run(cmd, req)
		},
	}
	cmd.Flags().StringVar(&sport, "sport", k.sport, "nba, nhl, nfl or fb")
	cmd.Flags().IntVar(&year, "year", 0, "season year; the current season when 0")
	cmd.Flags().StringVar(&team, "team", "", "team abbreviation, or squad id/name for fb")
	return cmd
}

func run(cmd *cobra.Command, req scrape.Request) error {
	ctx := cmd.Context()
	f, client := fetcher()
	if req.Year == 0 {
		var chk season.Checker
		if client != nil {
			chk = client
		}
		y, err := scrape.ResolveYear(ctx, chk, req.Sport, time.Now())
		if err != nil {
			return err
		}
		req.Year = y
		slog.Debug("season resolved", "sport", req.Sport, "year", y)
	}

	res, err := scrape.Run(ctx, f, req)
	if err != nil {
		return err
	}
	if err := export(ctx, req, res); err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, res, columns)
}

func export(ctx context.Context, req scrape.Request, res scrape.Result) error {
	if sqlite != "" {
		db, err := store.OpenSQLite(sqlite)
		if err != nil {
			return err
		}
		defer db.Close()
		name := strings.ReplaceAll(res.Name, "-", "_")
		if err := db.WriteRecords(ctx, name, res.Columns, res.Items); err != nil {
			return err
		}
		slog.Info("sqlite export", "path", sqlite, "table", name, "rows", len(res.Items))
	}
	if ddbTable != "" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		if err := store.PutRecords(ctx, dynamodb.NewFromConfig(cfg), ddbTable, req.Partition(), res.Items); err != nil {
			return err
		}
		slog.Info("dynamodb export", "table", ddbTable, "partition", req.Partition(), "items", len(res.Items))
	}
	return nil
}
