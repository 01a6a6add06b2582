package quicgo

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"log"
	"math/big"

	"github.com/quic-go/quic-go"

	"h3wire/pkg/control"
)

// uniStreamTypeControl is the HTTP/3 control-stream unidirectional
// stream type (RFC 9114 section 6.2.1).
const uniStreamTypeControl = 0x00

// Listen accepts connections on cfg.Addr and, for each one, accepts its
// unidirectional streams and hands the control stream to a fresh
// control.Coordinator. It blocks until ctx is canceled or the listener
// fails.
func Listen(ctx context.Context, cfg Config) error {
	tlsConfig := cfg.TLSConfig
	if tlsConfig == nil {
		tlsConfig = generateTLSConfig()
	}

	listener, err := quic.ListenAddr(cfg.Addr, tlsConfig, &quic.Config{})
	if err != nil {
		return err
	}
	defer listener.Close()

	for {
		conn, err := listener.Accept(ctx)
		if err != nil {
			log.Printf("failed to accept connection: %v", err)
			return err
		}
		go handleConnection(ctx, conn, cfg.Perspective)
	}
}

func handleConnection(ctx context.Context, conn quic.Connection, perspective control.Perspective) {
	session := NewSession(NewConnection(conn), perspective)

	for {
		stream, err := conn.AcceptUniStream(ctx)
		if err != nil {
			log.Printf("failed to accept uni stream: %v", err)
			return
		}
		go handleUniStream(stream, session)
	}
}

func handleUniStream(stream quic.ReceiveStream, session *Session) {
	typeByte := make([]byte, 1)
	if _, err := stream.Read(typeByte); err != nil {
		log.Printf("failed to read stream type: %v", err)
		return
	}
	if typeByte[0] != uniStreamTypeControl {
		log.Printf("ignoring unidirectional stream of type %#x", typeByte[0])
		return
	}

	coordinator := control.NewCoordinator(session)
	cs := NewControlStream(stream)
	cs.Pump(func() { coordinator.OnDataAvailable(cs) })
	if cs.WasReset() {
		coordinator.OnStreamReset()
	}
}

// generateTLSConfig produces a throwaway self-signed certificate, for
// local testing only.
func generateTLSConfig() *tls.Config {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	template := x509.Certificate{SerialNumber: big.NewInt(1)}
	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		panic(err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	tlsCert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		panic(err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   []string{"h3"},
	}
}
