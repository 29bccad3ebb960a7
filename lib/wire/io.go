package wire

import (
	"io"
	"net"
	"time"

	"distr/lib/core"
	"github.com/sagernet/sing/common/bufio"
)

// SendPacket frames and writes one packet to conn: a 5-byte header
// followed by payload, as a single logical message. The write deadline
// for the call is deadline from now, and it is cleared again on return;
// the read deadline is not touched.
//
// When conn's underlying file descriptor supports vectored writes,
// header and payload are written in one writev(2) syscall via
// sing/common/bufio's vectorised writer, grounded on SagerNet-smux's
// sendLoop (session.go), which frames its own header the same way.
func SendPacket(conn net.Conn, t core.PacketType, payload []byte, deadline time.Duration) error {
	if len(payload) > MaxPayloadSize {
		return ErrPayloadTooLarge
	}
	if err := conn.SetWriteDeadline(time.Now().Add(deadline)); err != nil {
		return err
	}
	defer func() { _ = conn.SetWriteDeadline(time.Time{}) }()

	var header [HeaderSize]byte
	EncodeHeader(header[:], t, len(payload))

	if vw, ok := bufio.CreateVectorisedWriter(conn); ok {
		vec := [][]byte{header[:], payload}
		_, err := bufio.WriteVectorised(vw, vec)
		return classifyIOErr(err)
	}

	if _, err := conn.Write(header[:]); err != nil {
		return classifyIOErr(err)
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := conn.Write(payload)
	return classifyIOErr(err)
}

// RecvPacket reads one framed packet from conn into a buffer of capacity
// maxPayload, failing with ErrPayloadTooLarge if the declared length
// exceeds that capacity (spec.md §3's "payload length on the wire ≤ a
// configured maximum" invariant), and ErrFramingShortHeader /
// ErrFramingShortPayload if the connection closes mid-frame.
func RecvPacket(conn net.Conn, deadline time.Duration, maxPayload int) (core.PacketType, []byte, error) {
	if err := conn.SetReadDeadline(time.Now().Add(deadline)); err != nil {
		return 0, nil, err
	}
	defer func() { _ = conn.SetReadDeadline(time.Time{}) }()

	var header [HeaderSize]byte
	if _, err := io.ReadFull(conn, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil, ErrFramingShortHeader
		}
		return 0, nil, classifyIOErr(err)
	}

	t, length := DecodeHeader(header[:])
	if int(length) > maxPayload {
		return 0, nil, ErrPayloadTooLarge
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(conn, payload); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, nil, ErrFramingShortPayload
			}
			return 0, nil, classifyIOErr(err)
		}
	}
	return t, payload, nil
}

func classifyIOErr(err error) error {
	if err == nil {
		return nil
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return ErrTimeout
	}
	return err
}
