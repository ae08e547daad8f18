package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Indemos/Terminal-sub004/config"
	"github.com/Indemos/Terminal-sub004/internal/logger"
	"github.com/Indemos/Terminal-sub004/journal"
	"github.com/Indemos/Terminal-sub004/market"
	"github.com/Indemos/Terminal-sub004/sim"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a historical dataset through the simulation gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			return runReplay(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "terminal.yaml", "Path to config file")
	return cmd
}

func runReplay(ctx context.Context, cfg *config.Config) error {
	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	log, err := logger.New(level)
	if err != nil {
		return err
	}
	defer log.Sync()

	jnl, err := buildJournal(cfg)
	if err != nil {
		return err
	}
	defer jnl.Close()

	g := sim.New(sim.Settings{
		Account: cfg.BuildAccount(),
		Source:  cfg.Replay.Source,
		Speed:   cfg.Replay.Speed,
		Bucket:  cfg.Bucket(),
		Journal: jnl,
		Log:     log,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if resp := g.Connect(ctx); !resp.Ok() {
		return fmt.Errorf("connect: %s", resp.Errors.Error())
	}
	defer g.Disconnect(context.Background())

	for name := range cfg.BuildAccount().Instruments {
		if resp := g.Subscribe(ctx, name); !resp.Ok() {
			return fmt.Errorf("subscribe %s: %s", name, resp.Errors.Error())
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.Done():
	}

	return printSummary(ctx, g)
}

func buildJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.FillsFile, cfg.Journal.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	}
	return journal.Nop{}, nil
}

func printSummary(ctx context.Context, g *sim.Gateway) error {
	acct, err := g.GetAccount(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("account %s (%s)\n", acct.Descriptor, acct.Currency)
	fmt.Printf("  balance:     %12.2f\n", acct.Balance)
	fmt.Printf("  performance: %12.2f\n", acct.Performance)

	positions, err := g.GetPositions(ctx, market.Criteria{})
	if err != nil {
		return err
	}
	fmt.Printf("  open positions: %d\n", len(positions))
	for _, p := range positions {
		fmt.Printf("    %-10s %-5s amount=%g entry=%.4f pnl=%.2f\n",
			p.Order.Name(), p.Order.Side, p.Order.Operation.Amount,
			p.Order.Operation.AvgPrice, p.GainLoss)
	}

	transactions, err := g.GetTransactions(ctx, market.Criteria{})
	if err != nil {
		return err
	}
	fmt.Printf("  transactions: %d\n", len(transactions))

	return nil
}
