package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skillforge",
		Short: "Skill graph analytics for workspaces",
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newRiskOverviewCmd())
	cmd.AddCommand(newRiskCasesCmd())
	cmd.AddCommand(newReplacementsCmd())
	cmd.AddCommand(newGrowthCmd())
	cmd.AddCommand(newStaffingCmd())
	cmd.AddCommand(newScenarioCmd())
	return cmd
}

func execute() {
	_ = newRootCmd().Execute()
}
