package riskcase

// CreatedEvent fires when a new case is stored, for either source.
// Refreshes of an existing open case do not fire it.
type CreatedEvent struct {
	Result RiskCase
}

// ResolvedEvent fires when a case transitions into the resolved state.
type ResolvedEvent struct {
	Result RiskCase
}
