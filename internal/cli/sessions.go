package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-shop/internal/config"
	"github.com/diewo77/go-shop/internal/db"
	"github.com/diewo77/go-shop/internal/session"
)

var nowFunc = time.Now

func newSessionsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Maintain the storefront session store",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired sessions from the SQL session store",
		Long: `Connects with the storefront's DATABASE_* settings and removes expired
session rows. Redis sessions expire on their own and need no pruning.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Session.Store != config.SessionStoreGorm {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "nothing to prune for %s sessions\n", cfg.Session.Store)
				return err
			}
			conn, err := db.Connect(cfg.Database, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return err
			}
			if sqlDB, err := conn.DB(); err == nil {
				defer sqlDB.Close()
			}
			n, err := session.NewGormStore(conn).DeleteExpired(cmd.Context(), nowFunc())
			if err != nil {
				return err
			}
			if o.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]int64{"deleted": n})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d expired session(s) deleted\n", n)
			return err
		},
	})
	return cmd
}
