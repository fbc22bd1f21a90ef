package commands

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/tyler180/sportsref/internal/scrape"
	"github.com/tyler180/sportsref/internal/store"
)

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(supportedCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump <table> <partition>",
	Short: "Prints the items previously exported to a DynamoDB partition, e.g. nba#2018#teams.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		items, err := store.LoadRecords(ctx, dynamodb.NewFromConfig(cfg), args[0], args[1])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), format, scrape.Result{Name: args[1], Items: items}, columns)
	},
}

var supportedCmd = &cobra.Command{
	Use:   "supported",
	Short: "Lists the sport and kind pairs that can be scraped.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range scrape.Supported() {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
	},
}
