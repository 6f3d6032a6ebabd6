package protocol

import "fmt"

// UnknownPacketError names an (id, direction, state) triple with no
// slot in the active version's table. Unknown packets are never
// silently dropped: the remaining bytes of the frame would desync every
// following frame boundary.
type UnknownPacketError struct {
	ID        int32
	Direction Direction
	State     State
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("unknown packet 0x%02X (%s, %s)", e.ID, e.Direction, e.State)
}

// InvalidValueError reports a wire field outside its documented range,
// such as a forbidden handshake next-state.
type InvalidValueError struct {
	Field    string
	Expected string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: expected %s", e.Field, e.Expected)
}

// UnexpectedEventError reports an event that has no slot for the
// (state, direction) it was written under.
type UnexpectedEventError struct {
	Event     string
	Direction Direction
	State     State
}

func (e *UnexpectedEventError) Error() string {
	return fmt.Sprintf("event %s cannot be sent as (%s, %s)", e.Event, e.Direction, e.State)
}
