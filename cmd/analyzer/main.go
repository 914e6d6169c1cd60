package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"booking_insights/internal/adapters/charts"
	"booking_insights/internal/adapters/csvfile"
	"booking_insights/internal/adapters/observability"
	"booking_insights/internal/app"
	"booking_insights/internal/shared"
	"booking_insights/internal/storage/sqlsource"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	reg := observability.InitRegistry()

	log.Info().
		Str("source", cfg.Source).
		Str("policy", string(cfg.UnmappedPolicy)).
		Str("charts", cfg.ChartDir).
		Msg("analyzer starting")

	// 2) data source
	var src app.Source
	switch cfg.Source {
	case "csv":
		src = csvfile.New(cfg.CSVPath, cfg.CSVDelimiter)
	case "mysql", "sqlite":
		dsn := cfg.MySQLDSN
		if cfg.Source == "sqlite" {
			dsn = cfg.SQLitePath
		}
		db, err := sqlsource.Open(ctx, cfg.Source, dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("db open failed")
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)
		log.Info().Msg("db ping ok")

		if src, err = sqlsource.New(db, cfg.Source, cfg.Table); err != nil {
			log.Fatal().Err(err).Msg("sql source")
		}
	}

	// 3) presenter
	if err := charts.SetFont(cfg.ChartFont); err != nil {
		log.Fatal().Err(err).Msg("chart font")
	}
	pres, err := charts.New(cfg.ChartDir, cfg.ChartFormat, cfg.ChartWidthIn, cfg.ChartHeightIn)
	if err != nil {
		log.Fatal().Err(err).Msg("chart renderer")
	}

	svc := app.NewAnalysisService(src, pres, cfg.UnmappedPolicy, os.Stdout)
	_, runErr := svc.Run(ctx)
	if runErr == nil {
		observability.MarkSuccess(time.Now())
	}

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, reg); err != nil {
			log.Error().Err(err).Msg("metrics not written")
		}
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("analysis failed")
	}
	log.Info().Msg("analysis completed")
}
