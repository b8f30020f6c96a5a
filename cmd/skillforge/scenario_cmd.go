package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/modules/analytics/services"
)

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Draft and manage move scenarios",
	}
	cmd.AddCommand(newScenarioGenerateCmd())
	cmd.AddCommand(newScenarioStatusCmd())
	return cmd
}

func newScenarioGenerateCmd() *cobra.Command {
	var (
		workspace string
		team      string
		title     string
		createdBy string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a staffing plan for a team from its role coverage",
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
			teamID, err := parseUUIDFlag("team", team)
			if err != nil {
				return err
			}

			svc := app.Service(services.ScenarioService{}).(*services.ScenarioService)
			start := time.Now()
			result, err := svc.GenerateMoveScenario(ctx, teamID, title, createdBy)
			if err != nil {
				return err
			}
			type actionRow struct {
				Type     string `json:"type"`
				Priority int    `json:"priority"`
				Note     string `json:"note"`
			}
			actions := make([]actionRow, 0, len(result.Actions()))
			for _, a := range result.Actions() {
				actions = append(actions, actionRow{Type: string(a.Type), Priority: a.Priority, Note: a.Note})
			}
			return writeJSON(commandOutput{
				Command:    "scenario generate",
				DurationMS: time.Since(start).Milliseconds(),
				Result: map[string]any{
					"id":      result.ID().String(),
					"title":   result.Title(),
					"status":  string(result.Status()),
					"actions": actions,
				},
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().StringVar(&team, "team", "", "Team UUID (required)")
	cmd.Flags().StringVar(&title, "title", "", "Scenario title")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Author name recorded on the scenario")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newScenarioStatusCmd() *cobra.Command {
	var (
		workspace  string
		scenarioID string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Move a scenario along its lifecycle",
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
			id, err := parseUUIDFlag("scenario", scenarioID)
			if err != nil {
				return err
			}

			svc := app.Service(services.ScenarioService{}).(*services.ScenarioService)
			updated, err := svc.UpdateStatus(ctx, id, scenario.Status(status))
			if err != nil {
				return err
			}
			return writeJSON(map[string]string{
				"id":     updated.ID().String(),
				"status": string(updated.Status()),
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().StringVar(&scenarioID, "scenario", "", "Scenario UUID (required)")
	cmd.Flags().StringVar(&status, "to", "", "Target status (review, approved, archived)")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("scenario")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
