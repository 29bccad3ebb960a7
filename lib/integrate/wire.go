// Package integrate is the trapezoidal integrator example application: the
// manager- and worker-side Capabilities implementations, and the wire
// payload formats they speak. None of this package is core protocol —
// it is the thing the core's capability interfaces exist to let an
// application plug in.
//
// Wire layouts are ported byte-for-byte from
// original_source/examples/integral_app.c's hello_msg_t/task_msg_t/
// result_msg_t, with htonl/memcpy-of-a-double replaced by
// encoding/binary.BigEndian and math.Float64bits/Float64frombits.
package integrate

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	helloWireSize  = 4
	taskWireSize   = 4 + 8 + 8 + 8 + 4
	resultWireSize = 4 + 8
)

// Hello is the worker's HELLO payload: its available core count.
type Hello struct {
	Cores uint32
}

func EncodeHello(buf []byte, h Hello) int {
	binary.BigEndian.PutUint32(buf[0:4], h.Cores)
	return helloWireSize
}

func DecodeHello(payload []byte) (Hello, error) {
	if len(payload) != helloWireSize {
		return Hello{}, errors.New("integrate: malformed HELLO payload")
	}
	return Hello{Cores: binary.BigEndian.Uint32(payload[0:4])}, nil
}

// Task is one manager-assigned interval of the integration job.
type Task struct {
	ID      uint32
	A       float64
	B       float64
	N       int64
	Threads uint32
}

func EncodeTask(buf []byte, t Task) int {
	binary.BigEndian.PutUint32(buf[0:4], t.ID)
	binary.BigEndian.PutUint64(buf[4:12], math.Float64bits(t.A))
	binary.BigEndian.PutUint64(buf[12:20], math.Float64bits(t.B))
	binary.BigEndian.PutUint64(buf[20:28], uint64(t.N))
	binary.BigEndian.PutUint32(buf[28:32], t.Threads)
	return taskWireSize
}

func DecodeTask(payload []byte) (Task, error) {
	if len(payload) != taskWireSize {
		return Task{}, errors.New("integrate: malformed TASK payload")
	}
	return Task{
		ID:      binary.BigEndian.Uint32(payload[0:4]),
		A:       math.Float64frombits(binary.BigEndian.Uint64(payload[4:12])),
		B:       math.Float64frombits(binary.BigEndian.Uint64(payload[12:20])),
		N:       int64(binary.BigEndian.Uint64(payload[20:28])),
		Threads: binary.BigEndian.Uint32(payload[28:32]),
	}, nil
}

// Result is one worker's partial-integral reply.
type Result struct {
	ID    uint32
	Value float64
}

func EncodeResult(buf []byte, r Result) int {
	binary.BigEndian.PutUint32(buf[0:4], r.ID)
	binary.BigEndian.PutUint64(buf[4:12], math.Float64bits(r.Value))
	return resultWireSize
}

func DecodeResult(payload []byte) (Result, error) {
	if len(payload) != resultWireSize {
		return Result{}, errors.New("integrate: malformed RESULT payload")
	}
	return Result{
		ID:    binary.BigEndian.Uint32(payload[0:4]),
		Value: math.Float64frombits(binary.BigEndian.Uint64(payload[4:12])),
	}, nil
}
