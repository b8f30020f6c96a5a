package employee

type CreatedEvent struct {
	Result Employee
}
