package core

import "net"

// WorkerSlot is the manager's record of one admitted (or not-yet-admitted)
// worker. Slots are indexed 0..RequiredWorkers-1 in admission order; the
// index, not anything carried in a packet, is how the manager associates a
// connection with a worker.
type WorkerSlot struct {
	Conn  net.Conn
	Alive bool
}
