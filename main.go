package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"

	_ "time/tzdata" // maintenance windows are converted between japanese and us time zones

	"github.com/honkbot/honkbot/bot"
	"github.com/honkbot/honkbot/config"
	"github.com/honkbot/honkbot/internal/maintenance"
	"github.com/honkbot/honkbot/internal/rival"
	"github.com/honkbot/honkbot/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/jxsl13/cli-config-boilerplate/cliconfig"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd(ctx).Execute()
	if err != nil {
		os.Exit(1)
	}
}

// honkbot holds everything the root command builds before connecting to discord.
type honkbot struct {
	ctx       context.Context
	cfg       *config.Config
	evaluator *maintenance.Evaluator
	db        *sqlx.DB
}

func newRootCmd(ctx context.Context) *cobra.Command {
	h := &honkbot{
		ctx: ctx,
		cfg: config.New(),
	}

	cmd := &cobra.Command{
		Use:          "honkbot",
		Short:        "discord bot for rhythm game communities: e-amusement maintenance times, rival codes and more",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         h.run,
		PostRunE:     h.close,
	}

	parseConfig := cliconfig.RegisterFlags(h.cfg, true, cmd)
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		err := parseConfig()
		if err != nil {
			return err
		}
		return h.setup()
	}
	return cmd
}

// setup expects a validated configuration.
// The maintenance schedule is checked before the database file is touched.
func (h *honkbot) setup() (err error) {
	h.evaluator, err = newEvaluator(h.cfg)
	if err != nil {
		return err
	}

	h.db, err = openDB(h.ctx, h.cfg.DSN)
	return err
}

func (h *honkbot) run(cmd *cobra.Command, args []string) error {
	b, err := bot.New(h.ctx, h.cfg, h.db, h.evaluator)
	if err != nil {
		return err
	}
	defer b.Close()

	log.Println("starting bot")
	return b.Connect(h.ctx)
}

func (h *honkbot) close(cmd *cobra.Command, args []string) error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

func newEvaluator(cfg *config.Config) (*maintenance.Evaluator, error) {
	for _, name := range []string{maintenance.WindowNormal, maintenance.WindowExtended, maintenance.WindowUS} {
		_, err := cfg.Schedule.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("invalid maintenance schedule: %w", err)
		}
	}

	ev, err := maintenance.NewEvaluator(maintenance.Config{
		Schedule:           cfg.Schedule,
		Report:             cfg.ReportLocation,
		SkipFridaySaturday: cfg.MaintenanceSkipFriSat,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule: %w", err)
	}
	return ev, nil
}

// openDB opens the rival code database and migrates it to the latest schema.
func openDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sql.Open(rival.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer, rival commands and backups share one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	_, err = migrations.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return sqlx.NewDb(db, rival.DriverName), nil
}
