package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/yismin/EV-charging-tunisia/internal/adapters/directory"
	"github.com/yismin/EV-charging-tunisia/internal/adapters/repositories"
	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/platform/db"
)

// Options control what the tool loads into the charger directory.
type Options struct {
	Database   string `short:"d" long:"database" env:"DATABASE_URL" default:"data/tunicharge.db" description:"SQLite file path or postgres:// URL"`
	Seed       string `short:"s" long:"seed" env:"SEED_PATH" default:"data/seeds/chargers.json" description:"Charger seed file"`
	Fetch      bool   `short:"f" long:"fetch" description:"Fetch the directory from Open Charge Map instead of the seed file"`
	Country    string `short:"c" long:"country" default:"TN" description:"ISO country code for the fetch"`
	MaxResults int    `short:"n" long:"max-results" default:"500" description:"Maximum number of stations to fetch"`
}

func main() {
	// .env is read before flag parsing so env-tagged options see it.
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	conn, err := db.Open(opts.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	log.Info().Msg("initializing schema")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if opts.Fetch {
		if err := fetchDirectory(ctx, conn, opts); err != nil {
			log.Fatal().Err(err).Str("country", opts.Country).Msg("directory fetch failed")
		}
	} else {
		log.Info().Str("path", opts.Seed).Msg("seeding chargers")
		if err := repositories.SeedFromJSON(ctx, conn, opts.Seed); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}
	log.Info().Msg("directory ready")
}

func fetchDirectory(ctx context.Context, conn *sql.DB, opts Options) error {
	client := directory.NewOCMClient(os.Getenv("OCM_API_KEY"))
	chargers, err := client.FetchCountry(ctx, opts.Country, opts.MaxResults)
	if err != nil {
		return err
	}
	log.Info().Int("count", len(chargers)).Str("country", opts.Country).Msg("fetched stations")

	records := make([]*domain.Charger, len(chargers))
	for i := range chargers {
		records[i] = &chargers[i]
	}
	return repositories.NewSQLChargerRepository(conn).UpsertChargers(ctx, records)
}
