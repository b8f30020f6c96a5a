package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply module schemas to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			app, err := newApp(pool)
			if err != nil {
				return err
			}
			if err := app.Migrations().Apply(cmd.Context()); err != nil {
				return err
			}
			return writeJSON(map[string]string{"status": "ok"})
		},
	}
}
