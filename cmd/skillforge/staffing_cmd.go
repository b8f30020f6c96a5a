package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/services"
)

func newStaffingCmd() *cobra.Command {
	var (
		workspace    string
		requirements []string
	)

	cmd := &cobra.Command{
		Use:   "staffing",
		Short: "Rank employees against a staffing requirement list",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseRequirements(requirements)
			if err != nil {
				return err
			}

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

			svc := app.Service(services.StaffingService{}).(*services.StaffingService)
			start := time.Now()
			result, err := svc.MatchStaffing(ctx, parsed)
			if err != nil {
				return err
			}
			return writeJSON(commandOutput{
				Command:    "staffing",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     result,
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().StringSliceVar(&requirements, "require", nil, "Requirement as skillUUID[:minLevel[:weight]], repeatable")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("require")
	return cmd
}

func parseRequirements(raw []string) ([]analysis.StaffingRequirement, error) {
	out := make([]analysis.StaffingRequirement, 0, len(raw))
	for _, entry := range raw {
		parts := strings.Split(entry, ":")
		skillID, err := uuid.Parse(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid --require %q: %w", entry, err)
		}
		req := analysis.StaffingRequirement{SkillID: skillID}
		if len(parts) > 1 {
			req.MinLevel, err = strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid --require %q: %w", entry, err)
			}
		}
		if len(parts) > 2 {
			req.Weight, err = strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid --require %q: %w", entry, err)
			}
		}
		out = append(out, req)
	}
	return out, nil
}
