package riskcase

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound               = errors.New("risk case not found")
	ErrInvalidTransition      = errors.New("invalid risk case status transition")
	ErrCaseClosed             = errors.New("risk case is resolved and cannot change status")
	ErrResolutionNoteRequired = errors.New("resolving a risk case requires a resolution note")
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight orders severities for ranking: high=3, medium=2, low=1.
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

func (s Severity) Valid() bool {
	return s.Weight() > 0
}

type Source string

const (
	SourceManual Source = "manual"
	SourceEngine Source = "engine"
)

// Category is the stable identifier of the underlying risk signal. It is
// the dedup key for engine-created cases: re-detection of the same category
// for the same employee updates the open case instead of creating another.
// Titles are free text and deliberately not part of the key.
type Category string

type Status string

const (
	StatusOpen       Status = "open"
	StatusMonitoring Status = "monitoring"
	StatusResolved   Status = "resolved"
)

var allowedTransitions = map[Status]map[Status]bool{
	StatusOpen:       {StatusMonitoring: true, StatusResolved: true},
	StatusMonitoring: {StatusResolved: true},
	StatusResolved:   {},
}

// RiskCase is a durable record tracking a detected or manually flagged risk
// about a specific employee, with its own resolution workflow.
type RiskCase struct {
	id             uuid.UUID
	workspaceID    uuid.UUID
	employeeID     uuid.UUID
	category       Category
	severity       Severity
	source         Source
	status         Status
	title          string
	reason         string
	recommendation string
	owner          string
	resolutionNote string
	resolvedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func New(
	workspaceID uuid.UUID,
	employeeID uuid.UUID,
	category Category,
	severity Severity,
	source Source,
	title string,
	reason string,
	recommendation string,
	owner string,
) RiskCase {
	return RiskCase{
		workspaceID:    workspaceID,
		employeeID:     employeeID,
		category:       category,
		severity:       severity,
		source:         source,
		status:         StatusOpen,
		title:          strings.TrimSpace(title),
		reason:         strings.TrimSpace(reason),
		recommendation: strings.TrimSpace(recommendation),
		owner:          strings.TrimSpace(owner),
	}
}

func Hydrate(
	id uuid.UUID,
	workspaceID uuid.UUID,
	employeeID uuid.UUID,
	category Category,
	severity Severity,
	source Source,
	status Status,
	title string,
	reason string,
	recommendation string,
	owner string,
	resolutionNote string,
	resolvedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) RiskCase {
	return RiskCase{
		id:             id,
		workspaceID:    workspaceID,
		employeeID:     employeeID,
		category:       category,
		severity:       severity,
		source:         source,
		status:         status,
		title:          title,
		reason:         reason,
		recommendation: recommendation,
		owner:          owner,
		resolutionNote: resolutionNote,
		resolvedAt:     resolvedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (r RiskCase) ID() uuid.UUID          { return r.id }
func (r RiskCase) WorkspaceID() uuid.UUID { return r.workspaceID }
func (r RiskCase) EmployeeID() uuid.UUID  { return r.employeeID }
func (r RiskCase) Category() Category     { return r.category }
func (r RiskCase) Severity() Severity     { return r.severity }
func (r RiskCase) Source() Source         { return r.source }
func (r RiskCase) Status() Status         { return r.status }
func (r RiskCase) Title() string          { return r.title }
func (r RiskCase) Reason() string         { return r.reason }
func (r RiskCase) Recommendation() string { return r.recommendation }
func (r RiskCase) Owner() string          { return r.owner }
func (r RiskCase) ResolutionNote() string { return r.resolutionNote }
func (r RiskCase) ResolvedAt() *time.Time { return r.resolvedAt }
func (r RiskCase) CreatedAt() time.Time   { return r.createdAt }
func (r RiskCase) UpdatedAt() time.Time   { return r.updatedAt }
func (r RiskCase) Open() bool             { return r.status != StatusResolved }

// Refresh carries a re-detection of the same risk into the existing case:
// reason, severity and recommendation are overwritten, everything else is
// kept. Manual cases bypass automatic re-scoring.
func (r RiskCase) Refresh(severity Severity, reason, recommendation string) RiskCase {
	if r.source == SourceManual {
		return r
	}
	r.severity = severity
	r.reason = strings.TrimSpace(reason)
	r.recommendation = strings.TrimSpace(recommendation)
	return r
}

// Reassign hands ownership of the case to another owner.
func (r RiskCase) Reassign(owner string) RiskCase {
	r.owner = strings.TrimSpace(owner)
	return r
}

// TransitionTo validates the status change against the transition table and
// stamps resolvedAt exactly when entering the resolved state. Resolving
// requires a non-empty note.
func (r RiskCase) TransitionTo(next Status, note string, now time.Time) (RiskCase, error) {
	if r.status == StatusResolved {
		return r, ErrCaseClosed
	}
	if !allowedTransitions[r.status][next] {
		return r, errors.Wrapf(ErrInvalidTransition, "%s -> %s", r.status, next)
	}
	if next == StatusResolved {
		note = strings.TrimSpace(note)
		if note == "" {
			return r, ErrResolutionNoteRequired
		}
		r.resolutionNote = note
		resolvedAt := now
		r.resolvedAt = &resolvedAt
	}
	r.status = next
	return r, nil
}
