package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tyler180/sportsref/internal/logging"
	"github.com/tyler180/sportsref/pkg/fetch"
)

var (
	debug    bool
	file     string
	timeout  time.Duration
	referer  string
	format   string
	columns  []string
	sqlite   string
	ddbTable string
)

var rootCmd = &cobra.Command{
	Use:   "sportsref",
	Short: "sportsref scrapes sports-reference pages into tables, JSON, SQLite or DynamoDB.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(cmd.ErrOrStderr(), debug)
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.BoolVar(&debug, "debug", false, "enable debug logging (also DEBUG=1)")
	f.StringVar(&file, "file", "", "parse this saved HTML page instead of fetching")
	f.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout")
	f.StringVar(&referer, "referer", "", "Referer header sent with every request")
	f.StringVar(&format, "format", "table", "output format: table or json")
	f.StringSliceVar(&columns, "columns", nil, "only print these columns")
	f.StringVar(&sqlite, "sqlite", "", "also write the rows to this SQLite database")
	f.StringVar(&ddbTable, "dynamodb-table", "", "also write the rows to this DynamoDB table")
}

// client is nil when pages come from --file, so nothing touches the network.
func fetcher() (fetch.Fetcher, *fetch.Client) {
	if file != "" {
		return fetch.File(file), nil
	}
	c := fetch.New(fetch.Options{Timeout: timeout, Referer: referer})
	return c, c
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
