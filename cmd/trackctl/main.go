package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"daytrack/internal/logger"
)

var CLI struct {
	DatabaseURL string `help:"Database DSN." env:"DATABASE_URL" required:""`
	Driver      string `help:"Database driver." env:"DB_DRIVER" enum:"pgx,sqlite" default:"pgx"`
	Debug       bool   `help:"Log at debug level."`

	Migrate   MigrateCmd   `cmd:"" help:"Apply database migrations."`
	Stats     StatsCmd     `cmd:"" help:"Print stats for one habit."`
	Dashboard DashboardCmd `cmd:"" help:"Print the dashboard for a user."`
}

func main() {
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name("trackctl"),
		kong.Description("Operator tooling for the habit and journal tracker"),
		kong.UsageOnError(),
	)

	log := logger.Must(logger.Options{Development: CLI.Debug})
	defer log.Sync()

	app := &Context{DatabaseURL: CLI.DatabaseURL, Driver: CLI.Driver, Log: log, Out: os.Stdout}
	if err := kctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
