package services_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillforge/skillforge/modules/analytics/domain/snapshot"
	"github.com/skillforge/skillforge/modules/workforce/domain/aggregates/employee"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

type stubLoader struct {
	snap *snapshot.Snapshot
	err  error
}

func (l *stubLoader) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.snap, nil
}

// recordingBus captures published events so tests can assert on the
// fire-and-forget boundary without wiring real handlers.
type recordingBus struct {
	published [][]interface{}
}

func (b *recordingBus) Publish(args ...interface{}) {
	b.published = append(b.published, args)
}

func (b *recordingBus) Subscribe(handler interface{})   {}
func (b *recordingBus) Unsubscribe(handler interface{}) {}
func (b *recordingBus) Clear()                          { b.published = nil }
func (b *recordingBus) SubscribersCount() int           { return 0 }

func (b *recordingBus) eventsOf(match func(interface{}) bool) []interface{} {
	var out []interface{}
	for _, args := range b.published {
		for _, arg := range args {
			if match(arg) {
				out = append(out, arg)
			}
		}
	}
	return out
}

// snapshotBuilder assembles test snapshots without repeating the wiring of
// ids and denormalized skill names.
type snapshotBuilder struct {
	workspaceID    uuid.UUID
	employees      []snapshot.Employee
	skills         []snapshot.Skill
	assignments    []snapshot.Assignment
	artifacts      map[uuid.UUID]int
	skillArtifacts map[uuid.UUID]int
}

func newSnapshotBuilder() *snapshotBuilder {
	return &snapshotBuilder{
		workspaceID:    uuid.New(),
		artifacts:      map[uuid.UUID]int{},
		skillArtifacts: map[uuid.UUID]int{},
	}
}

func (b *snapshotBuilder) addEmployee(name string, seniority employee.Seniority) uuid.UUID {
	id := uuid.New()
	b.employees = append(b.employees, snapshot.Employee{
		ID:        id,
		Name:      name,
		Position:  "Engineer",
		Seniority: seniority,
	})
	return id
}

func (b *snapshotBuilder) addTeamEmployee(name string, seniority employee.Seniority, teamID uuid.UUID) uuid.UUID {
	id := b.addEmployee(name, seniority)
	b.employees[len(b.employees)-1].TeamID = &teamID
	return id
}

func (b *snapshotBuilder) addSkill(name string) uuid.UUID {
	id := uuid.New()
	b.skills = append(b.skills, snapshot.Skill{ID: id, Name: name, Category: skill.CategoryHard})
	return id
}

func (b *snapshotBuilder) assign(employeeID, skillID uuid.UUID, level int) {
	var name string
	for _, s := range b.skills {
		if s.ID == skillID {
			name = s.Name
		}
	}
	b.assignments = append(b.assignments, snapshot.Assignment{
		EmployeeID: employeeID,
		SkillID:    skillID,
		SkillName:  name,
		Category:   skill.CategoryHard,
		Level:      level,
	})
}

func (b *snapshotBuilder) build() *snapshot.Snapshot {
	return snapshot.New(b.workspaceID, b.employees, b.skills, b.assignments, b.artifacts, b.skillArtifacts)
}
