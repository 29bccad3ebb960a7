package wire

import (
	"net"
	"testing"
	"time"

	"distr/lib/core"

	"github.com/stretchr/testify/require"
)

func loopbackPipe(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	return a, b
}

func TestSendRecvPacketRoundTrip(t *testing.T) {
	client, server := loopbackPipe(t)

	payload := []byte("hello world")
	done := make(chan error, 1)
	go func() {
		done <- SendPacket(client, core.PacketHello, payload, time.Second)
	}()

	typ, got, err := RecvPacket(server, time.Second, MaxPayloadSize)
	require.NoError(t, err)
	require.NoError(t, <-done)
	require.Equal(t, core.PacketHello, typ)
	require.Equal(t, payload, got)
}

func TestSendRecvPacketEmptyPayload(t *testing.T) {
	client, server := loopbackPipe(t)

	done := make(chan error, 1)
	go func() {
		done <- SendPacket(client, core.PacketShutdown, nil, time.Second)
	}()

	typ, got, err := RecvPacket(server, time.Second, MaxPayloadSize)
	require.NoError(t, err)
	require.NoError(t, <-done)
	require.Equal(t, core.PacketShutdown, typ)
	require.Empty(t, got)
}

func TestSendPacketRejectsOversizedPayload(t *testing.T) {
	client, _ := loopbackPipe(t)

	err := SendPacket(client, core.PacketTask, make([]byte, MaxPayloadSize+1), time.Second)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestRecvPacketRejectsOversizedDeclaredLength(t *testing.T) {
	client, server := loopbackPipe(t)

	done := make(chan error, 1)
	go func() {
		var header [HeaderSize]byte
		EncodeHeader(header[:], core.PacketTask, MaxPayloadSize+1)
		_ = client.SetWriteDeadline(time.Now().Add(time.Second))
		_, err := client.Write(header[:])
		done <- err
	}()

	_, _, err := RecvPacket(server, time.Second, MaxPayloadSize)
	require.NoError(t, <-done)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestRecvPacketShortHeaderOnClose(t *testing.T) {
	client, server := loopbackPipe(t)
	_ = client.Close()

	_, _, err := RecvPacket(server, time.Second, MaxPayloadSize)
	require.ErrorIs(t, err, ErrFramingShortHeader)
}

func TestRecvPacketTimesOut(t *testing.T) {
	_, server := loopbackPipe(t)

	_, _, err := RecvPacket(server, 10*time.Millisecond, MaxPayloadSize)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestEncodeDecodeHeader(t *testing.T) {
	var buf [HeaderSize]byte
	EncodeHeader(buf[:], core.PacketResult, 42)

	typ, length := DecodeHeader(buf[:])
	require.Equal(t, core.PacketResult, typ)
	require.Equal(t, uint32(42), length)
}
