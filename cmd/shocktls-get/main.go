// Command shocktls-get performs a TLS 1.3 handshake against a host:port and
// issues a single HTTP/1.1 GET request over the resulting connection,
// printing whatever application data comes back. It exists to exercise the
// full handshake end to end against a real server, the way a developer
// reaches for curl -v to sanity-check a new TLS stack.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/yourusername/shocktls/pkg/shocktls"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
)

func main() {
	host := flag.String("host", "www.google.com", "host to connect to")
	port := flag.Uint("port", 443, "TCP port to connect to")
	path := flag.String("path", "/", "HTTP request path")
	serverName := flag.String("servername", "", "TLS server_name override (defaults to host)")
	timeout := flag.Duration("timeout", 15*time.Second, "overall deadline for the connection")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := shocktls.NewConfig(*host, uint16(*port)).
		WithServerName(*serverName).
		WithLogger(log.New(os.Stderr, "shocktls: ", log.Ltime))

	conn, err := shocktls.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	conn.OnReceive = func(data []byte) {
		os.Stdout.Write(data)
	}

	request := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", *path, *host)
	conn.Outbox.Append([]byte(request))
	if err := conn.Send(); err != nil {
		log.Fatalf("send request: %v", err)
	}

	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()
	for conn.Ok() {
		select {
		case <-ctx.Done():
			log.Fatalf("timed out waiting for response")
		case <-ticker.C:
		}
	}

	if reason := closeReason(conn); reason != "" {
		log.Fatal(reason)
	}
}

// closeReason returns "" for a clean close_notify shutdown and a
// human-readable message for anything else.
func closeReason(conn *shocktls.Connection) string {
	frames := conn.Status.Frames()
	if len(frames) == 0 {
		return ""
	}
	last := frames[len(frames)-1]
	if last.Kind == status.RemoteAlert && strings.Contains(last.Msg, "close_notify") {
		return ""
	}
	return conn.ErrorMessage()
}
