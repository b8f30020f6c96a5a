package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/modules/analytics/services"
)

func newRiskCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk-cases",
		Short: "Manage durable risk cases",
	}
	cmd.AddCommand(newRiskCasesListCmd())
	cmd.AddCommand(newRiskCasesStatusCmd())
	return cmd
}

func newRiskCasesListCmd() *cobra.Command {
	var (
		workspace  string
		statuses   []string
		severities []string
		owner      string
		q          string
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List risk cases with filters",
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

			params := &riskcase.FindParams{Owner: owner, Q: q, Limit: limit, Offset: offset}
			for _, st := range statuses {
				params.Statuses = append(params.Statuses, riskcase.Status(st))
			}
			for _, sev := range severities {
				params.Severities = append(params.Severities, riskcase.Severity(sev))
			}

			svc := app.Service(services.RiskCaseService{}).(*services.RiskCaseService)
			start := time.Now()
			result, err := svc.List(ctx, params)
			if err != nil {
				return err
			}
			type caseRow struct {
				ID       string `json:"id"`
				Employee string `json:"employeeId"`
				Category string `json:"category"`
				Severity string `json:"severity"`
				Status   string `json:"status"`
				Title    string `json:"title"`
				Owner    string `json:"owner,omitempty"`
			}
			rows := make([]caseRow, 0, len(result.Cases))
			for _, c := range result.Cases {
				rows = append(rows, caseRow{
					ID:       c.ID().String(),
					Employee: c.EmployeeID().String(),
					Category: string(c.Category()),
					Severity: string(c.Severity()),
					Status:   string(c.Status()),
					Title:    c.Title(),
					Owner:    c.Owner(),
				})
			}
			return writeJSON(commandOutput{
				Command:    "risk-cases list",
				DurationMS: time.Since(start).Milliseconds(),
				Result: map[string]any{
					"cases":     rows,
					"total":     result.Total,
					"highCount": result.HighCount,
				},
			})
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace UUID (required)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (open, monitoring, resolved)")
	cmd.Flags().StringSliceVar(&severities, "severity", nil, "Filter by severity (low, medium, high)")
	cmd.Flags().StringVar(&owner, "owner", "", "Filter by exact owner")
	cmd.Flags().StringVar(&q, "q", "", "Fuzzy match against title, reason and owner")
	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	_ = cmd.MarkFlagRequired("workspace")
	return cmd
}

func newRiskCasesStatusCmd() *cobra.Command {
	var (
		workspace string
		caseID    string
		status    string
		note      string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Move a risk case through its workflow",
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
			id, err := parseUUIDFlag("case", caseID)
			if err != nil {
				return err
			}

			svc := app.Service(services.RiskCaseService{}).(*services.RiskCaseService)
			updated, err := svc.UpdateStatus(ctx, id, riskcase.Status(status), note)
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
	cmd.Flags().StringVar(&caseID, "case", "", "Risk case UUID (required)")
	cmd.Flags().StringVar(&status, "to", "", "Target status (monitoring or resolved)")
	cmd.Flags().StringVar(&note, "note", "", "Resolution note, required when resolving")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("case")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
