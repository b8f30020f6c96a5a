package snapshot

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

// Employee is the employee slice of the graph view.
type Employee struct {
	ID        uuid.UUID
	Name      string
	Position  string
	Seniority employee.Seniority
	TeamID    *uuid.UUID
}

// Skill is the reference-data slice of the graph view.
type Skill struct {
	ID       uuid.UUID
	Name     string
	Category skill.Category
}

// Assignment is a denormalized edge of the skill graph: skill name and
// category are carried along so analytics never has to join back.
type Assignment struct {
	EmployeeID uuid.UUID
	SkillID    uuid.UUID
	SkillName  string
	Category   skill.Category
	Level      int
}

// Loader produces one consistent view of a workspace. Implementations read
// all slices inside a single transaction; an unknown or empty workspace
// yields an empty snapshot, never an error.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Snapshot is an immutable in-memory view of a workspace's employees,
// skills, assignments and artifact evidence. All analytics computations run
// against a snapshot and never mutate it.
type Snapshot struct {
	workspaceID    uuid.UUID
	employees      []Employee
	skills         []Skill
	assignments    []Assignment
	artifacts      map[uuid.UUID]int
	skillArtifacts map[uuid.UUID]int

	employeeByID map[uuid.UUID]Employee
	skillByID    map[uuid.UUID]Skill
	byEmployee   map[uuid.UUID][]Assignment
	bySkill      map[uuid.UUID][]Assignment
}

// New builds a snapshot and its lookup indexes. Assignments referencing an
// employee or skill absent from the same snapshot are dropped, keeping the
// view internally consistent.
func New(
	workspaceID uuid.UUID,
	employees []Employee,
	skills []Skill,
	assignments []Assignment,
	artifactsByEmployee map[uuid.UUID]int,
	artifactsBySkill map[uuid.UUID]int,
) *Snapshot {
	s := &Snapshot{
		workspaceID:    workspaceID,
		employees:      employees,
		skills:         skills,
		artifacts:      artifactsByEmployee,
		skillArtifacts: artifactsBySkill,
		employeeByID:   make(map[uuid.UUID]Employee, len(employees)),
		skillByID:      make(map[uuid.UUID]Skill, len(skills)),
		byEmployee:     make(map[uuid.UUID][]Assignment),
		bySkill:        make(map[uuid.UUID][]Assignment),
	}
	if s.artifacts == nil {
		s.artifacts = map[uuid.UUID]int{}
	}
	if s.skillArtifacts == nil {
		s.skillArtifacts = map[uuid.UUID]int{}
	}
	for _, e := range employees {
		s.employeeByID[e.ID] = e
	}
	for _, sk := range skills {
		s.skillByID[sk.ID] = sk
	}
	for _, a := range assignments {
		if _, ok := s.employeeByID[a.EmployeeID]; !ok {
			continue
		}
		if _, ok := s.skillByID[a.SkillID]; !ok {
			continue
		}
		s.assignments = append(s.assignments, a)
		s.byEmployee[a.EmployeeID] = append(s.byEmployee[a.EmployeeID], a)
		s.bySkill[a.SkillID] = append(s.bySkill[a.SkillID], a)
	}
	return s
}

// Empty returns the documented fallback view for an unknown workspace.
func Empty(workspaceID uuid.UUID) *Snapshot {
	return New(workspaceID, nil, nil, nil, nil, nil)
}

func (s *Snapshot) WorkspaceID() uuid.UUID   { return s.workspaceID }
func (s *Snapshot) Employees() []Employee    { return s.employees }
func (s *Snapshot) Skills() []Skill          { return s.skills }
func (s *Snapshot) Assignments() []Assignment { return s.assignments }
func (s *Snapshot) TotalEmployees() int      { return len(s.employees) }
func (s *Snapshot) IsEmpty() bool            { return len(s.employees) == 0 && len(s.skills) == 0 }

func (s *Snapshot) Employee(id uuid.UUID) (Employee, bool) {
	e, ok := s.employeeByID[id]
	return e, ok
}

func (s *Snapshot) Skill(id uuid.UUID) (Skill, bool) {
	sk, ok := s.skillByID[id]
	return sk, ok
}

func (s *Snapshot) HasSkill(id uuid.UUID) bool {
	_, ok := s.skillByID[id]
	return ok
}

// ByEmployee returns the employee's assignments in snapshot order.
func (s *Snapshot) ByEmployee(employeeID uuid.UUID) []Assignment {
	return s.byEmployee[employeeID]
}

// BySkill returns the assignments held against a skill; its length is the
// skill's bus factor.
func (s *Snapshot) BySkill(skillID uuid.UUID) []Assignment {
	return s.bySkill[skillID]
}

// LevelOf returns the employee's recorded level on a skill, 0 when absent.
func (s *Snapshot) LevelOf(employeeID, skillID uuid.UUID) int {
	for _, a := range s.byEmployee[employeeID] {
		if a.SkillID == skillID {
			return a.Level
		}
	}
	return 0
}

func (s *Snapshot) ArtifactCount(employeeID uuid.UUID) int {
	return s.artifacts[employeeID]
}

// SkillArtifactCount is the evidence linked directly to a skill; it feeds
// the overloaded-skill heuristic only.
func (s *Snapshot) SkillArtifactCount(skillID uuid.UUID) int {
	return s.skillArtifacts[skillID]
}

// MaxArtifactCount is the workspace-wide maximum, used to normalize the
// artifact evidence signal.
func (s *Snapshot) MaxArtifactCount() int {
	max := 0
	for _, c := range s.artifacts {
		if c > max {
			max = c
		}
	}
	return max
}
