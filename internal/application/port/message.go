package port

// MessageQueue surfaces user-visible messages.
type MessageQueue interface {
	PushError(msg string)
	PushInfo(msg string)
}
