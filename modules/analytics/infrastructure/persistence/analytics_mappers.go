package persistence

import (
	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/modules/analytics/infrastructure/persistence/models"
)

func toDomainRiskCase(row models.RiskCase) riskcase.RiskCase {
	return riskcase.Hydrate(
		row.ID,
		row.WorkspaceID,
		row.EmployeeID,
		riskcase.Category(row.Category),
		riskcase.Severity(row.Severity),
		riskcase.Source(row.Source),
		riskcase.Status(row.Status),
		row.Title,
		row.Reason,
		row.Recommendation,
		row.Owner,
		row.ResolutionNote,
		row.ResolvedAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainScenario(row models.MoveScenario, actionRows []models.MoveScenarioAction) scenario.MoveScenario {
	actions := make([]scenario.Action, 0, len(actionRows))
	for _, a := range actionRows {
		actions = append(actions, toDomainAction(a))
	}
	return scenario.Hydrate(
		row.ID,
		row.WorkspaceID,
		row.TeamID,
		row.Title,
		row.Description,
		scenario.Status(row.Status),
		row.CreatedBy,
		actions,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainAction(row models.MoveScenarioAction) scenario.Action {
	return scenario.Action{
		ID:             row.ID,
		Type:           scenario.ActionType(row.ActionType),
		TeamID:         row.TeamID,
		FromEmployeeID: row.FromEmployeeID,
		ToEmployeeID:   row.ToEmployeeID,
		JobRoleID:      row.JobRoleID,
		SkillID:        row.SkillID,
		Priority:       row.Priority,
		Note:           row.Note,
	}
}
