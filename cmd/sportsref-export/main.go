package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/tyler180/sportsref/internal/env"
	"github.com/tyler180/sportsref/internal/logging"
	"github.com/tyler180/sportsref/pkg/fetch"
)

func main() {
	logging.JSON(nil)

	table, err := env.Require("TABLE_NAME")
	if err != nil {
		slog.Error("startup", "err", err)
		os.Exit(1)
	}
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		slog.Error("aws config", "err", err)
		os.Exit(1)
	}
	client := fetch.New(fetch.Options{
		Timeout: time.Duration(env.Int("TIMEOUT_SECONDS", 30)) * time.Second,
		Referer: env.Get("REFERER", ""),
	})
	h := &handler{
		ddb:     dynamodb.NewFromConfig(cfg),
		fetch:   client,
		checker: client,
		table:   table,
		now:     time.Now,
	}
	lambda.Start(h.Handle)
}
