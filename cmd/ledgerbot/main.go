package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"guildledger"
	"guildledger/commands"
	"guildledger/discord"
	"guildledger/ledger"
	"guildledger/ledger/storage"
	"guildledger/request"
)

// Runs one lifecycle command against the configured sheets, e.g.:
//
//	ledgerbot request_start product="Thumper"
//	ledgerbot request_bulk_add resources="50 x Iron Ore"
//	ledgerbot settle request_id=<uuid>
func main() {
	ctx := context.Background()

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
		return
	}
	slog.Info("SETUP: Sheet store initialized", "backend", ledgerConfig.Backend)

	inventory := ledger.NewInventory(store, ledgerConfig.InventorySheetID, ledgerConfig.InventoryRange)
	requests := ledger.NewRequests(store, ledgerConfig.RequestsSheetID, ledgerConfig.RequestsRange)

	actions, cleanup, err := newActionLogger()
	if err != nil {
		slog.Error("SETUP: Failed to create action logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush action log", "error", err)
		}
	}()

	tracerProvider, meterProvider, otelShutdown, err := guildledger.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
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
		actions,
	)

	tracer := tracerProvider.Tracer(guildledger.TracerNameLedgerBot)
	meter := meterProvider.Meter(guildledger.TracerNameLedgerBot)
	lifecycle := request.NewInstrumentedLifecycle(controller, tracer, meter)

	registry := commands.NewRegistry(lifecycle, inventory, transport)

	name := argOr(1, "request_update")
	options := parseOptions(os.Args[2:])

	ctx, span := tracer.Start(ctx, guildledger.TracerNameLedgerBot, trace.WithAttributes(
		attribute.String("command", name),
	))
	defer span.End()

	userID := envOr("LEDGER_USER_ID", "cli")
	channelID := envOr("LEDGER_CHANNEL_ID", botConfig.RequestsChannelID)

	if err := dispatch(ctx, registry, lifecycle, name, userID, channelID, options); err != nil {
		slog.Error("RESULT: Command failed", "command", name, "error", err)
		return
	}
	slog.Info("RESULT: Command completed", "command", name)
}

// dispatch routes registry commands by name, plus the two button-equivalent
// operations that have no slash command.
func dispatch(ctx context.Context, registry commands.Registry, lifecycle guildledger.Lifecycle, name, userID, channelID string, options map[string]any) error {
	switch name {
	case "settle":
		requestID, ok := options["request_id"].(string)
		if !ok {
			return fmt.Errorf("settle requires request_id=<id>")
		}
		return lifecycle.Settle(ctx, channelID, requestID)
	case "refresh":
		requestID, ok := options["request_id"].(string)
		if !ok {
			return fmt.Errorf("refresh requires request_id=<id>")
		}
		return lifecycle.Refresh(ctx, channelID, requestID)
	}

	cmd, err := registry.GetCommand(name)
	if err != nil {
		return err
	}
	return cmd.Run(ctx, commands.Invocation{
		UserID:    userID,
		ChannelID: channelID,
		Options:   options,
	})
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

func newActionLogger() (guildledger.ActionLogger, func() error, error) {
	path := guildledger.NewActionLogFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	logger := guildledger.NewFileActionLogger(f)
	cleanup := func() error {
		if err := logger.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return logger, cleanup, nil
}

// parseOptions turns trailing key=value args into an options map.
func parseOptions(args []string) map[string]any {
	options := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			continue
		}
		options[key] = value
	}
	return options
}

func argOr(i int, fallback string) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
