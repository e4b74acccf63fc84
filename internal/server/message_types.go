package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeReset    MessageType = "reset"
	MessageTypeStep     MessageType = "step"
	MessageTypeStepBox  MessageType = "step_box"
	MessageTypeInfo     MessageType = "info"
	MessageTypeDescribe MessageType = "describe"
	// Dispersion asks for the landing distribution of a step without playing it.
	MessageTypeDispersion MessageType = "dispersion"

	// Server to client messages
	MessageTypeObservation MessageType = "observation"
	MessageTypeStepResult  MessageType = "step_result"
	MessageTypeCourseInfo  MessageType = "course_info"
	MessageTypeHole        MessageType = "hole"
	MessageTypeSpread      MessageType = "spread"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData.
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInvalidAction  = "invalid_action"
	ErrorCodeEpisodeDone    = "episode_done"
	ErrorCodeUnknownType    = "unknown_message_type"
	ErrorCodeInternal       = "internal_error"
)
