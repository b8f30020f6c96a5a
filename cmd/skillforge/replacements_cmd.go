package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/modules/analytics/services"
)

func newReplacementsCmd() *cobra.Command {
	var (
		workspace string
		employee  string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "replacements",
		Short: "Rank succession candidates for an employee",
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
			ctx, err := workspaceContext(cmd.Context(), pool, workspace)
			if err != nil {
				return err
			}
			employeeID, err := parseUUIDFlag("employee", employee)
			if err != nil {
				return err
			}

			svc := app.Service(services.SuccessionService{}).(*services.SuccessionService)
			start := time.Now()
			candidates, err := svc.FindReplacements(ctx, employeeID, limit)
			if err != nil {
				return err
			}
			return writeJSON(commandOutput{
				Command:    "replacements",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     candidates,
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().StringVar(&employee, "employee", "", "Employee UUID (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum candidates to return")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
