package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/modules/analytics/services"
	"github.com/skillforge/skillforge/pkg/configuration"
)

type commandOutput struct {
	Command    string `json:"command"`
	DurationMS int64  `json:"duration_ms"`
	Result     any    `json:"result"`
}

func newRiskOverviewCmd() *cobra.Command {
	var (
		workspace string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "risk-overview",
		Short: "Rank the workspace's skill concentration risks",
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

			svc := app.Service(services.SkillMapService{}).(*services.SkillMapService)
			start := time.Now()
			risks, err := svc.WorkspaceRiskOverview(ctx, limit)
			if err != nil {
				return err
			}
			return writeJSON(commandOutput{
				Command:    "risk-overview",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     risks,
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().IntVar(&limit, "limit", configuration.Use().Analytics.RiskOverviewLimit, "Maximum risks to return")
	_ = cmd.MarkFlagRequired("workspace")
	return cmd
}
