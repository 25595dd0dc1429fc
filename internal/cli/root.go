// Package cli wires the cobra commands and launches the interactive
// console.
package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minibank/minibank/internal/api"
	"github.com/minibank/minibank/internal/app/teller"
	"github.com/minibank/minibank/internal/daemon"
	"github.com/minibank/minibank/internal/infra/authguard"
	"github.com/minibank/minibank/internal/infra/directory"
	"github.com/minibank/minibank/internal/infra/journal"
	"github.com/minibank/minibank/internal/infra/ledger"
	"github.com/minibank/minibank/internal/infra/loanbook"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.minibank/config.toml)")
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "minibank",
	Short: "Console banking simulator",
	Long: `minibank is a single-user console banking simulator: account creation
with linking, login with lockout protection, deposits and withdrawals,
and loan issuance and repayment. All state is in-memory and lives only
for the process.`,
	RunE: runConsole,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("minibank " + api.Version)
	},
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}

	dir := directory.New()
	guard := authguard.New(authguard.Config{
		MaxAttempts: cfg.Auth.MaxAttempts,
		Cooldown:    time.Duration(cfg.Auth.LockoutSeconds) * time.Second,
	}, dir)

	var jnl *journal.Journal
	if cfg.Journal.Enabled {
		jnl, err = journal.Open(nil)
		if err != nil {
			return err
		}
		defer jnl.Close()
	}

	svc := teller.New(dir, guard, ledger.New(), loanbook.New(nil), jnl)

	if cfg.Ops.Enabled {
		srv := api.NewServer(svc)
		if cfg.Ops.Metrics {
			srv.EnableMetrics()
		}
		go func() {
			log.Printf("[ops] listening on %s", cfg.Ops.ListenAddr())
			if err := http.ListenAndServe(cfg.Ops.ListenAddr(), srv.Handler()); err != nil {
				log.Printf("[ops] listener stopped: %v", err)
			}
		}()
	}

	console := NewConsole(svc, cfg, os.Stdin, os.Stdout)
	console.Run()
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
