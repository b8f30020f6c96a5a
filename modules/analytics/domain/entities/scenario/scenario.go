package scenario

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("move scenario not found")
	ErrInvalidTransition = errors.New("invalid scenario status transition")
	ErrInvalidActionType = errors.New("invalid move action type")
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusReview   Status = "review"
	StatusApproved Status = "approved"
	StatusArchived Status = "archived"
)

// The lifecycle only moves forward; there is no way back from archived.
var allowedTransitions = map[Status]map[Status]bool{
	StatusDraft:    {StatusReview: true, StatusArchived: true},
	StatusReview:   {StatusApproved: true, StatusArchived: true},
	StatusApproved: {StatusArchived: true},
	StatusArchived: {},
}

type ActionType string

const (
	ActionHire     ActionType = "hire"
	ActionDevelop  ActionType = "develop"
	ActionReassign ActionType = "reassign"
	ActionPromote  ActionType = "promote"
	ActionBackfill ActionType = "backfill"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionHire, ActionDevelop, ActionReassign, ActionPromote, ActionBackfill:
		return true
	}
	return false
}

// Action is one staffing move inside a scenario. Actions are append-only:
// a scenario never edits or removes recorded actions.
type Action struct {
	ID             uuid.UUID
	Type           ActionType
	TeamID         *uuid.UUID
	FromEmployeeID *uuid.UUID
	ToEmployeeID   *uuid.UUID
	JobRoleID      *uuid.UUID
	SkillID        *uuid.UUID
	Priority       int
	Note           string
}

func (a Action) Validate() error {
	if !a.Type.Valid() {
		return errors.Wrap(ErrInvalidActionType, string(a.Type))
	}
	return nil
}

// MoveScenario is a draftable, appendable plan of staffing actions for a
// team.
type MoveScenario struct {
	id          uuid.UUID
	workspaceID uuid.UUID
	teamID      uuid.UUID
	title       string
	description string
	status      Status
	createdBy   string
	actions     []Action
	createdAt   time.Time
	updatedAt   time.Time
}

func New(workspaceID, teamID uuid.UUID, title, description, createdBy string) MoveScenario {
	return MoveScenario{
		workspaceID: workspaceID,
		teamID:      teamID,
		title:       strings.TrimSpace(title),
		description: strings.TrimSpace(description),
		status:      StatusDraft,
		createdBy:   strings.TrimSpace(createdBy),
	}
}

func Hydrate(
	id uuid.UUID,
	workspaceID uuid.UUID,
	teamID uuid.UUID,
	title string,
	description string,
	status Status,
	createdBy string,
	actions []Action,
	createdAt time.Time,
	updatedAt time.Time,
) MoveScenario {
	return MoveScenario{
		id:          id,
		workspaceID: workspaceID,
		teamID:      teamID,
		title:       title,
		description: description,
		status:      status,
		createdBy:   createdBy,
		actions:     actions,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s MoveScenario) ID() uuid.UUID          { return s.id }
func (s MoveScenario) WorkspaceID() uuid.UUID { return s.workspaceID }
func (s MoveScenario) TeamID() uuid.UUID      { return s.teamID }
func (s MoveScenario) Title() string          { return s.title }
func (s MoveScenario) Description() string    { return s.description }
func (s MoveScenario) Status() Status         { return s.status }
func (s MoveScenario) CreatedBy() string      { return s.createdBy }
func (s MoveScenario) CreatedAt() time.Time   { return s.createdAt }
func (s MoveScenario) UpdatedAt() time.Time   { return s.updatedAt }

// Actions returns the ordered action list. Callers must not mutate the
// returned slice.
func (s MoveScenario) Actions() []Action { return s.actions }

// Append adds an action to the end of the plan. Prior actions are never
// touched.
func (s MoveScenario) Append(a Action) (MoveScenario, error) {
	if err := a.Validate(); err != nil {
		return s, err
	}
	actions := make([]Action, len(s.actions), len(s.actions)+1)
	copy(actions, s.actions)
	s.actions = append(actions, a)
	return s, nil
}

// TransitionTo validates the status change against the transition table.
// Status never changes implicitly; appending actions does not touch it.
func (s MoveScenario) TransitionTo(next Status) (MoveScenario, error) {
	if !allowedTransitions[s.status][next] {
		return s, errors.Wrapf(ErrInvalidTransition, "%s -> %s", s.status, next)
	}
	s.status = next
	return s, nil
}
