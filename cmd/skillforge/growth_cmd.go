package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/modules/analytics/services"
)

func newGrowthCmd() *cobra.Command {
	var (
		workspace string
		employee  string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Suggest growth paths for an employee",
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

			svc := app.Service(services.GrowthService{}).(*services.GrowthService)
			start := time.Now()
			suggestions, err := svc.SuggestGrowthPaths(ctx, employeeID, limit)
			if err != nil {
				return err
			}
			return writeJSON(commandOutput{
				Command:    "growth",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     suggestions,
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().StringVar(&employee, "employee", "", "Employee UUID (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum suggestions to return")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
