package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"guildledger"
	"guildledger/discord"
	"guildledger/ledger"
	"guildledger/ledger/storage"
	"guildledger/request"
)

// Params is a button interaction forwarded by the gateway: the button's
// custom_id plus the channel it was clicked in.
type Params struct {
	CustomID  string `json:"custom_id"`
	ChannelID string `json:"channel_id"`
}

type Results struct {
	Handled bool `json:"handled"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var botConfig guildledger.BotConfig
		if err := envdecode.Decode(&botConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		var ledgerConfig guildledger.LedgerConfig
		if err := envdecode.Decode(&ledgerConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		store, err := newSheetStore(ctx, ledgerConfig)
		if err != nil {
			slog.Error("SETUP: Failed to create sheet store", "backend", ledgerConfig.Backend, "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: Sheet store initialized", "backend", ledgerConfig.Backend)

		inventory := ledger.NewInventory(store, ledgerConfig.InventorySheetID, ledgerConfig.InventoryRange)
		requests := ledger.NewRequests(store, ledgerConfig.RequestsSheetID, ledgerConfig.RequestsRange)

		tracerProvider, meterProvider, otelShutdown, err := guildledger.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		transport := discord.NewClient(botConfig.Token, http.DefaultClient)

		controller := request.NewController(
			request.NewRegistry(),
			inventory,
			requests,
			transport,
			botConfig.RequestsChannelID,
			guildledger.NewStdoutActionLogger(),
		)

		tracer := tracerProvider.Tracer(guildledger.TracerNameLambda)
		meter := meterProvider.Meter(guildledger.TracerNameLambda)
		lifecycle := request.NewInstrumentedLifecycle(controller, tracer, meter)

		op, requestID, found := strings.Cut(params.CustomID, ":")
		if !found {
			return Results{}, fmt.Errorf("malformed custom_id %q", params.CustomID)
		}

		switch op {
		case "request_complete":
			if err := lifecycle.Settle(ctx, params.ChannelID, requestID); err != nil {
				slog.Error("RESULT: Settle failed", "request_id", requestID, "error", err)
				return Results{}, err
			}
		case "request_update":
			if err := lifecycle.Refresh(ctx, params.ChannelID, requestID); err != nil {
				slog.Error("RESULT: Refresh failed", "request_id", requestID, "error", err)
				return Results{}, err
			}
		default:
			return Results{}, fmt.Errorf("unknown interaction %q", op)
		}

		return Results{Handled: true}, nil
	}

	lambda.Start(fn)
}

func newSheetStore(ctx context.Context, cfg guildledger.LedgerConfig) (storage.SheetStore, error) {
	switch cfg.Backend {
	case "sheets":
		return storage.NewGoogleSheetStore(ctx, cfg.CredentialsPath)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("LEDGER_S3_BUCKET must be set for the s3 backend")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return storage.NewS3SheetStore(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil
	case "file":
		return storage.NewFileSheetStore(cfg.FileDir), nil
	}
	return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
}
