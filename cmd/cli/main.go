package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/samber/oops"

	"github.com/dmitrijs2005/medreminder/internal/buildinfo"
	"github.com/dmitrijs2005/medreminder/internal/client/cli"
	"github.com/dmitrijs2005/medreminder/internal/client/client"
	"github.com/dmitrijs2005/medreminder/internal/client/config"
	"github.com/dmitrijs2005/medreminder/internal/client/credentials"
	"github.com/dmitrijs2005/medreminder/internal/client/mediastore"
	"github.com/dmitrijs2005/medreminder/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/medreminder/internal/client/services"
	"github.com/dmitrijs2005/medreminder/internal/client/storage"
	"github.com/dmitrijs2005/medreminder/internal/logging"
)

const appName = "medreminder"

func main() {
	figure.NewFigure(appName, "cybermedium", true).Print()
	fmt.Println()
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return oops.In("cli").Wrapf(err, "initialising the logger")
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	store := credentials.NewStore(repo, logger)

	httpClient, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, store, logger)
	if err != nil {
		return oops.In("cli").With("base_url", cfg.APIBaseURL).Wrapf(err, "creating the API client")
	}

	media, err := openMediaStore(cfg)
	if err != nil {
		return err
	}

	reminders := services.NewReminderService(httpClient)
	files := services.NewFileService(httpClient)

	app := cli.NewApp(cli.Services{
		Auth:          services.NewAuthService(httpClient, store, logger),
		Reminders:     reminders,
		Pharmacies:    services.NewPharmacyService(httpClient),
		Files:         files,
		Prescriptions: services.NewPrescriptionService(reminders, files, store, media, logger),
		Tokens:        store,
	}, logger, os.Stdin, os.Stdout)

	return app.Run(ctx)
}

// openRepository picks Valkey when an address is configured and the local
// SQLite file otherwise.
func openRepository(ctx context.Context, cfg *config.Config) (keyvalue.Repository, func(), error) {
	if cfg.ValkeyAddr != "" {
		vc, err := keyvalue.NewValkeyClient(cfg.ValkeyAddr)
		if err != nil {
			return nil, nil, oops.In("cli").With("addr", cfg.ValkeyAddr).Wrapf(err, "connecting to valkey")
		}
		return keyvalue.NewValkeyRepository(vc, cfg.ValkeyPrefix), vc.Close, nil
	}

	db, err := storage.OpenSQLite(ctx, cfg.StoreDSN)
	if err != nil {
		return nil, nil, oops.In("cli").With("dsn", cfg.StoreDSN).Wrapf(err, "opening the session store")
	}
	return keyvalue.NewSQLiteRepository(db), closeDB(db), nil
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

// openMediaStore returns a nil Uploader when no bucket is configured; the
// interface must stay untyped nil for the prescription service to notice.
func openMediaStore(cfg *config.Config) (mediastore.Uploader, error) {
	mc := cfg.MediaConfig()
	if !mc.Enabled() {
		return nil, nil
	}

	u, err := mediastore.NewS3Uploader(mc, &http.Client{Timeout: cfg.RequestTimeout})
	if err != nil {
		return nil, oops.In("cli").With("bucket", mc.Bucket).Wrapf(err, "configuring the media store")
	}
	return u, nil
}
