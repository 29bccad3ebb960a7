// Package core holds the small value types shared by the manager, the
// worker, and the wire layer: packet types and the run configurations.
// Nothing in this package touches a socket or a goroutine.
package core

import "fmt"

// PacketType identifies the kind of a framed packet on the wire. The core
// never interprets a packet's payload; only its type.
type PacketType uint8

const (
	PacketHello    PacketType = 1
	PacketTask     PacketType = 2
	PacketResult   PacketType = 3
	PacketError    PacketType = 4
	PacketAbort    PacketType = 5
	PacketShutdown PacketType = 6
)

func (t PacketType) String() string {
	switch t {
	case PacketHello:
		return "HELLO"
	case PacketTask:
		return "TASK"
	case PacketResult:
		return "RESULT"
	case PacketError:
		return "ERROR"
	case PacketAbort:
		return "ABORT"
	case PacketShutdown:
		return "SHUTDOWN"
	default:
		return fmt.Sprintf("PacketType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the six wire-defined packet types.
func (t PacketType) Valid() bool {
	return t >= PacketHello && t <= PacketShutdown
}

// Packet is one on-wire unit: a type, and an opaque payload whose length is
// carried in the frame header, never in the payload itself.
type Packet struct {
	Type    PacketType
	Payload []byte
}
