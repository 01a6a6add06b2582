package main

import (
	"context"
	"flag"
	"log"

	"h3wire/pkg/control"
	"h3wire/pkg/transport/quicgo"
)

func main() {
	addr := flag.String("addr", "localhost:4433", "address to listen on")
	flag.Parse()

	cfg := quicgo.Config{
		Addr:        *addr,
		Perspective: control.PerspectiveServer,
	}

	if err := quicgo.Listen(context.Background(), cfg); err != nil {
		log.Fatalf("h3control: %v", err)
	}
}
