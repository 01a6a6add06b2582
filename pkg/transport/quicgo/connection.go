package quicgo

import (
	"log"

	"github.com/quic-go/quic-go"

	"h3wire/pkg/control"
)

// Connection adapts one quic-go connection to control.Connection.
type Connection struct {
	conn   quic.Connection
	closed bool
}

// NewConnection wraps conn for use by a Session.
func NewConnection(conn quic.Connection) *Connection {
	return &Connection{conn: conn}
}

// Close maps a coordinator-level closure onto quic-go's
// CloseWithError. send_policy's SilentClose has no distinct transport
// behavior here: every closure this module issues is a control-plane
// protocol violation, and quic-go always emits a CONNECTION_CLOSE for
// those, so the parameter exists only for symmetry with spec.md's
// connection().close(code, detail, send_policy) surface.
func (c *Connection) Close(code control.ErrorCode, detail string, policy control.SendPolicy) {
	if c.closed {
		return
	}
	c.closed = true
	if err := c.conn.CloseWithError(quic.ApplicationErrorCode(code), detail); err != nil {
		log.Printf("failed to close connection: %v", err)
	}
}

// Connected reports whether Close has been called.
func (c *Connection) Connected() bool { return !c.closed }
