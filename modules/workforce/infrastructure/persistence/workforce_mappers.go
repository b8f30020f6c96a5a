package persistence

import (
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/jobrole"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
	"github.com/skillforge/skillforge/modules/workforce/infrastructure/persistence/models"
)

func toDomainEmployee(row models.Employee) (employee.Employee, error) {
	seniority, err := employee.ParseSeniority(row.Seniority)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.Hydrate(
		row.ID,
		row.WorkspaceID,
		row.Name,
		row.Position,
		seniority,
		row.TeamID,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func toDomainSkill(row models.Skill) skill.Skill {
	return skill.Hydrate(row.ID, row.WorkspaceID, row.Name, skill.Category(row.Category), row.CreatedAt)
}

func toDomainAssignment(row models.SkillAssignment) skill.Assignment {
	return skill.HydrateAssignment(row.EmployeeID, row.SkillID, row.Level, row.UpdatedAt)
}

func toDomainJobRole(row models.JobRole, reqRows []models.JobRoleRequirement) (jobrole.JobRole, error) {
	seniority, err := employee.ParseSeniority(row.Seniority)
	if err != nil {
		return jobrole.JobRole{}, err
	}
	requirements := make([]jobrole.Requirement, 0, len(reqRows))
	for _, r := range reqRows {
		req, err := jobrole.NewRequirement(r.SkillID, r.RequiredLevel, r.Weight)
		if err != nil {
			return jobrole.JobRole{}, err
		}
		requirements = append(requirements, req)
	}
	return jobrole.Hydrate(
		row.ID,
		row.WorkspaceID,
		row.Title,
		seniority,
		row.TeamID,
		requirements,
		row.CreatedAt,
	), nil
}
