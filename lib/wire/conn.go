package wire

import (
	"context"
	"errors"
	"net"
	"time"
)

// Listen binds and listens on host:port over IPv4 TCP, with SO_REUSEADDR
// and opportunistic SO_REUSEPORT applied via the Control hook, matching
// original_source/src/net.c's net_listen.
func Listen(host, port string) (net.Listener, error) {
	lc := net.ListenConfig{Control: controlReuseAddrPort}
	return lc.Listen(context.Background(), "tcp4", net.JoinHostPort(host, port))
}

// AcceptWithDeadline accepts one connection from l, or returns ErrTimeout
// if deadline elapses first. It enables TCP keep-alive on the accepted
// connection before returning it.
//
// l must be a *net.TCPListener (as returned by Listen); AcceptWithDeadline
// sets and clears the listener's deadline around the call, so concurrent
// callers must not share a listener.
func AcceptWithDeadline(l net.Listener, deadline time.Duration) (net.Conn, error) {
	type deadliner interface {
		SetDeadline(time.Time) error
	}
	if dl, ok := l.(deadliner); ok {
		if err := dl.SetDeadline(time.Now().Add(deadline)); err != nil {
			return nil, err
		}
		defer func() { _ = dl.SetDeadline(time.Time{}) }()
	}
	conn, err := l.Accept()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout
		}
		return nil, err
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetKeepAlive(true)
	}
	return conn, nil
}

// ConnectWithDeadline dials host:port over IPv4 TCP, failing with
// ErrTimeout if the connection is not established within deadline. It
// enables TCP keep-alive on the resulting connection.
func ConnectWithDeadline(host, port string, deadline time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp4", net.JoinHostPort(host, port))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout
		}
		return nil, err
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetKeepAlive(true)
	}
	return conn, nil
}
