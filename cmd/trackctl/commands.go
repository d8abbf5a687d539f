package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"daytrack/internal/analytics"
	"daytrack/internal/db"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

// Context is shared by every command.
type Context struct {
	DatabaseURL string
	Driver      string
	Log         *zap.Logger
	Out         io.Writer
}

func (c *Context) open() (*sqlx.DB, error) {
	conn, err := db.Open(c.Driver, c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.Driver, err)
	}
	return conn, nil
}

func (c *Context) print(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(c *Context) error {
	conn, err := c.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	start := time.Now()
	if err := db.RunMigrations(context.Background(), conn); err != nil {
		return err
	}
	c.Log.Info("migrations applied", zap.String("driver", c.Driver), zap.Duration("took", time.Since(start)))
	return nil
}

type StatsCmd struct {
	Owner int    `help:"User id." required:""`
	Habit string `help:"Habit id." required:""`
	Days  int    `help:"Lookback window in days." default:"30"`
	Today string `help:"Reference day (YYYY-MM-DD); defaults to the current UTC day."`
}

func (cmd *StatsCmd) Run(c *Context) error {
	if cmd.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	conn, err := c.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	svc := services.NewAnalyticsService(store.New(conn))
	ref, err := svc.Reference(cmd.Today)
	if err != nil {
		return err
	}
	report, err := svc.HabitStats(context.Background(), cmd.Owner, cmd.Habit, ref, cmd.Days)
	if err != nil {
		return err
	}
	return c.print(report)
}

type DashboardCmd struct {
	Owner int    `help:"User id." required:""`
	Today string `help:"Reference day (YYYY-MM-DD); defaults to the current UTC day."`
}

func (cmd *DashboardCmd) Run(c *Context) error {
	conn, err := c.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	svc := services.NewAnalyticsService(store.New(conn))
	ref, err := svc.Reference(cmd.Today)
	if err != nil {
		return err
	}
	d, err := svc.Dashboard(context.Background(), cmd.Owner, ref)
	if err != nil {
		return err
	}
	c.Log.Debug("dashboard composed",
		zap.Int("owner", cmd.Owner),
		zap.String("reference", ref.Today.String()),
		zap.Int("habits", len(d.Habits)),
		zap.Int("window_days", analytics.HabitWindowDays))
	return c.print(d)
}
