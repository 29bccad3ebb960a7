package wire

import "errors"

// Sentinel errors covering the TRANSPORT, FRAMING, and TIMEOUT taxonomy
// members from spec.md §7. Every wire primitive's failure is reported
// through one of these (or a wrapped stdlib net error for TRANSPORT), so
// callers can classify a failure with errors.Is without inspecting strings.
var (
	// ErrTimeout is returned when a deadline elapses before the
	// requested operation completed: accept, connect, send, or recv.
	ErrTimeout = errors.New("wire: operation timed out")

	// ErrFramingShortHeader is returned when a connection is closed (EOF)
	// before a full 5-byte header could be read.
	ErrFramingShortHeader = errors.New("wire: connection closed mid-header")

	// ErrFramingShortPayload is returned when a connection is closed
	// (EOF) before the declared payload length could be read in full.
	ErrFramingShortPayload = errors.New("wire: connection closed mid-payload")

	// ErrPayloadTooLarge is returned when a received header declares a
	// payload length exceeding the receiver's capacity. This is a
	// protocol error: the sender violated the capacity contract.
	ErrPayloadTooLarge = errors.New("wire: declared payload length exceeds receiver capacity")

	// ErrInvalidPacketType is returned by the lifecycle state machines when
	// a received packet's type is not one the current state accepts.
	// RecvPacket itself does not check the type byte.
	ErrInvalidPacketType = errors.New("wire: invalid packet type")
)
