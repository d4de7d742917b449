// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daybreak-app/daybreak-store/internal/achieve"
	"github.com/daybreak-app/daybreak-store/internal/config"
	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/service"
	"github.com/daybreak-app/daybreak-store/internal/store"
	"github.com/daybreak-app/daybreak-store/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Command flags share the default flag set with the config package;
	// config.GetConfig runs the single flag.Parse.
	var showStatus, runExport, runReset, confirmReset bool
	flag.BoolVar(&showStatus, "status", false, "Print days clean, streaks and unlocked achievements")
	flag.BoolVar(&runExport, "export", false, "Write a decrypted JSON export")
	flag.BoolVar(&runReset, "reset", false, "Delete all user data (requires -yes)")
	flag.BoolVar(&confirmReset, "yes", false, "Confirm the reset")

	log := logger.NewFileLogger("daybreak")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	dek, err := crypto.LoadOrCreateDEK(
		crypto.NewKeyChain(),
		crypto.NewFileKeyStore(cfg.App.KeyFile),
		cfg.App.Passphrase,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error unlocking key material")
	}

	codec, err := crypto.NewFieldCodec(dek, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating field codec")
	}

	db, err := store.Open(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening database")
	}
	defer db.Close()

	storages := store.NewStorages(db, codec, log)
	engine := achieve.NewEngine(log)
	if err = storages.Achievements.EnsureStates(ctx, engine.Definitions()); err != nil {
		log.Fatal().Err(err).Msg("error seeding achievement states")
	}

	services := service.NewServices(storages, engine, log)

	switch {
	case runReset:
		if !confirmReset {
			fmt.Println("refusing to reset without -yes")
			os.Exit(1)
		}
		if err = services.Reset.Reset(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset failed")
		}
		fmt.Println("all data deleted")

	case runExport:
		if err = writeExport(ctx, services.Export, cfg.Storage.Export.Dir); err != nil {
			log.Fatal().Err(err).Msg("export failed")
		}

	case showStatus:
		fallthrough
	default:
		if err = printStatus(ctx, services.Progress, engine); err != nil {
			log.Fatal().Err(err).Msg("status failed")
		}
	}
}

func printStatus(ctx context.Context, progress service.ProgressService, engine *achieve.Engine) error {
	result, err := progress.Evaluate(ctx)
	if err != nil {
		return err
	}

	pctx, err := progress.BuildContext(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Days clean: %d\n", pctx.DaysClean)
	fmt.Println("Streaks:")
	for _, stream := range models.Streams {
		fmt.Printf("  %-15s %d\n", stream, pctx.StreakFor(stream))
	}
	if result.Newest != nil {
		for _, def := range engine.Definitions() {
			if def.ID == result.Newest.ID {
				fmt.Printf("New achievement: %s\n", def.Title)
			}
		}
	}

	return nil
}

func writeExport(ctx context.Context, export service.ExportService, dir string) error {
	doc, err := export.ExportAll(ctx)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding export: %w", err)
	}

	name := fmt.Sprintf("daybreak-export-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err = os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("error writing export file: %w", err)
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
