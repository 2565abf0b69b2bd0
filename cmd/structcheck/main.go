package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"structcheck/cmd/structcheck/ui"
	"structcheck/internal/config"
	"structcheck/internal/content"
	"structcheck/internal/flow"
	"structcheck/internal/logging"
	"structcheck/internal/store"
)

var (
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "structcheck",
	Short: "Structure Checker - owner-type assessment and 7-day tracker",
	Long: `structcheck is a terminal self-assessment for small-business owners.

A short questionnaire classifies you into one of five owner types, then a
7-day tracker collects one reflection per day and grades your engagement.
Everything is stored locally; run it again any time to pick up where you
left off.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(dataDir)
		if err != nil {
			return err
		}
		// The interactive UI owns the terminal, so logs go to a file
		// under the data directory. Subcommands log to stderr.
		if cmd.CalledAs() == "structcheck" {
			if err := logging.Init(cfg.DataDir, verbose || cfg.Logging.DebugMode); err != nil {
				return err
			}
		} else if err := logging.InitConsole(verbose || cfg.Logging.DebugMode); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// openStore opens the database without touching the session. Subcommands
// use this so inspecting the visitor log never counts as a visit.
func openStore() (*store.Store, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DatabasePath())
}

// bootstrap wires the persistence and content layers and resumes the
// session. The caller owns closing the store.
func bootstrap() (*config.Config, *store.Store, *content.Provider, *flow.Orchestrator, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var provider *content.Provider
	if cfg.ContentPath != "" {
		provider, err = content.NewProviderFromFile(cfg.ContentPath)
	} else {
		provider, err = content.NewProvider()
	}
	if err != nil {
		st.Close()
		return nil, nil, nil, nil, err
	}

	orch := flow.New(st, provider, flow.Options{AdvanceDelay: cfg.UI.AdvanceDelay()})
	if _, err := orch.Startup(); err != nil {
		st.Close()
		return nil, nil, nil, nil, err
	}
	return cfg, st, provider, orch, nil
}

func runInteractive() error {
	cfg, st, provider, orch, err := bootstrap()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := ui.NewApp(orch, provider, st, cfg.UI)
	program := tea.NewProgram(app, tea.WithAltScreen())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := provider.Watch(ctx, func() {
			program.Send(ui.CatalogReloaded())
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		_, err := program.Run()
		cancel()
		return err
	})
	return g.Wait()
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.structcheck)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(adminCmd, statsCmd, activityCmd, exportCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
