package scenario

type CreatedEvent struct {
	Result MoveScenario
}
