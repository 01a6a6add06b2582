// Package quicgo adapts github.com/quic-go/quic-go connections and
// streams to the Session/Stream contracts pkg/control consumes. It is a
// thin Read/Write/AcceptStream surface only: packetization, loss
// recovery, and the handshake stay inside quic-go, out of scope per
// spec.md section 1.
//
// Grounded on the teacher's pkg/quic/quicgo adapter (provider.go,
// conn.go, stream.go): stdlib log/fmt diagnostics, a quic.Config built
// inline, and a self-signed TLS certificate generated for local testing.
package quicgo

import (
	"crypto/tls"

	"h3wire/pkg/control"
)

// Config is the minimal surface needed to stand up a listener for the
// demo binary, mirroring the teacher's inline *quic.Config construction
// rather than a general-purpose option type.
type Config struct {
	Addr        string
	TLSConfig   *tls.Config
	Perspective control.Perspective
}
