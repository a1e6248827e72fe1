package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/gorm"

	"github.com/sakelabeler/sakelabeler/internal/blob"
	blobminio "github.com/sakelabeler/sakelabeler/internal/blob/minio"
	"github.com/sakelabeler/sakelabeler/internal/client/api"
	"github.com/sakelabeler/sakelabeler/internal/client/auth"
	"github.com/sakelabeler/sakelabeler/internal/client/cli"
	"github.com/sakelabeler/sakelabeler/internal/client/iocli"
	"github.com/sakelabeler/sakelabeler/internal/client/selector"
	"github.com/sakelabeler/sakelabeler/internal/config"
	"github.com/sakelabeler/sakelabeler/internal/geo"
	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
	"github.com/sakelabeler/sakelabeler/internal/storage/boltdb"
	"github.com/sakelabeler/sakelabeler/internal/storage/remote"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	dbPath := flag.String("db", "", "Path to local database (overrides SAKELABELER_DB_PATH)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	io := iocli.NewStdio()
	ctx := context.Background()

	localStore, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := localStore.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.AuthURL, cfg.AuthAPIKey)
	authService := auth.NewService(apiClient, localStore)

	openRemote := newRemoteOpener(cfg, authService)
	sel := selector.New(localStore, func(ctx context.Context, ownerID string) (storage.RecordStore, error) {
		return openRemote(ctx, ownerID)
	}, func(ctx context.Context) ([]models.Share, error) {
		store, err := openRemote(ctx, "")
		if err != nil {
			return nil, err
		}
		return store.SharesReceived(ctx)
	}, authService, localStore)

	c := cli.New(io, authService, sel, localStore, openRemote, geo.NewClient())

	args := flag.Args()
	if len(args) == 0 {
		c.PrintUsage()
		os.Exit(1)
	}

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRemoteOpener lazily connects the backend database and object storage,
// sharing one connection across all stores opened by a command.
func newRemoteOpener(cfg *config.Config, authService *auth.Service) cli.RemoteOpener {
	var (
		once  sync.Once
		db    *gorm.DB
		blobs blob.Store
		err   error
	)

	return func(ctx context.Context, ownerID string) (*remote.Store, error) {
		if !cfg.RemoteConfigured() {
			return nil, errors.New("remote backend is not configured. Set SAKELABELER_AUTH_URL, SAKELABELER_AUTH_API_KEY, SAKELABELER_DATABASE_DSN and SAKELABELER_S3_ENDPOINT")
		}

		once.Do(func() {
			db, err = remote.Open(ctx, cfg.DatabaseDSN)
			if err != nil {
				return
			}
			blobs, err = blobminio.New(ctx, blobminio.Config{
				Endpoint:  cfg.S3Endpoint,
				AccessKey: cfg.S3AccessKey,
				SecretKey: cfg.S3SecretKey,
				Bucket:    cfg.S3Bucket,
				UseSSL:    cfg.S3UseSSL,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to backend: %w", err)
		}

		store := remote.New(db, blobs, authService)
		if ownerID != "" {
			store = store.ForOwner(ownerID)
		}
		return store, nil
	}
}

func printVersion() {
	fmt.Printf("sakelabeler\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
