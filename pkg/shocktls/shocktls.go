// Package shocktls implements a TLS 1.3 client: the ClientHello/ServerHello
// exchange, the RFC 8446 §7.1 key schedule, and encrypted application data,
// over TLS_CHACHA20_POLY1305_SHA256 and x25519 only. It does not validate
// the server's certificate chain; see DESIGN.md for the reasoning.
package shocktls

import (
	"context"
	"crypto/rand"
	"io"
	"log"
	"net"

	"github.com/yourusername/shocktls/pkg/shocktls/handshake"
	"github.com/yourusername/shocktls/pkg/shocktls/record"
	"github.com/yourusername/shocktls/pkg/shocktls/socket"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Config describes the endpoint to dial and handshake with. NewConfig plus
// its With* methods build one the same way the rest of this codebase's
// configuration structs are built.
type Config struct {
	// Host is a hostname or literal IP to connect to.
	Host string
	Port uint16

	// ServerName overrides the server_name extension value. If empty and
	// Host is not a literal IP, Host is sent as the SNI value; if Host is
	// a literal IP, no server_name extension is sent.
	ServerName string

	LocalIP   net.IP
	LocalPort uint16
	Tuning    socket.Tuning

	// Rand is the entropy source for the client key share and random
	// fields. Defaults to crypto/rand.Reader.
	Rand io.Reader

	// Logger, if set, receives a line per phase transition and per status
	// frame appended. Nil means silent.
	Logger *log.Logger
}

// NewConfig builds a Config for the given endpoint, ready to dial as-is or
// refine further with the With* methods. The socket tuning defaults to
// socket.DefaultTuning(), not the zero value, so NoDelay/KeepAlive/QuickAck
// are applied unless a caller explicitly chooses otherwise with WithTuning.
func NewConfig(host string, port uint16) Config {
	return Config{Host: host, Port: port, Tuning: socket.DefaultTuning()}
}

// WithServerName sets the server_name extension value, overriding Host.
func (c Config) WithServerName(name string) Config {
	c.ServerName = name
	return c
}

// WithLocalAddr binds the outgoing TCP connection to a specific local
// address and/or port.
func (c Config) WithLocalAddr(ip net.IP, port uint16) Config {
	c.LocalIP = ip
	c.LocalPort = port
	return c
}

// WithTuning overrides the default socket tuning.
func (c Config) WithTuning(t socket.Tuning) Config {
	c.Tuning = t
	return c
}

// WithRand overrides the entropy source used for the client key share and
// random fields. Only tests should need this.
func (c Config) WithRand(r io.Reader) Config {
	c.Rand = r
	return c
}

// WithLogger attaches a logger that receives a line per phase transition
// and per status frame appended.
func (c Config) WithLogger(l *log.Logger) Config {
	c.Logger = l
	return c
}

// Connection is one TLS 1.3 client connection. All of its mutable state is
// touched only from the socket.Conn read-dispatch goroutine (see
// socket.Conn's doc comment); Send and Close are meant to be called from
// that same goroutine, e.g. from inside OnReceive, not concurrently from
// another one.
type Connection struct {
	tcp    *socket.Conn
	Inbox  wire.Buffer
	Outbox wire.Buffer
	phase  handshake.Phase
	Status *status.List

	// OnReceive, if set, is invoked with each chunk of decrypted
	// application data as it arrives, in addition to it being appended to
	// Inbox.
	OnReceive func([]byte)

	cs     handshake.ConnState
	logger *log.Logger
}

// Connect resolves Config.Host, dials it, and sends the ClientHello. It
// returns once the TCP connection is established and the first flight is
// on the wire; the handshake itself completes asynchronously as the server
// responds, surfaced through Status and OnReceive.
func Connect(ctx context.Context, cfg Config) (*Connection, error) {
	st := &status.List{}

	ipAddr, err := net.DefaultResolver.LookupIPAddr(ctx, cfg.Host)
	if err != nil || len(ipAddr) == 0 {
		return nil, st.Add(status.Transport, "resolve %s: %v", cfg.Host, err)
	}

	serverName := cfg.ServerName
	if serverName == "" && net.ParseIP(cfg.Host) == nil {
		serverName = cfg.Host
	}

	entropy := cfg.Rand
	if entropy == nil {
		entropy = rand.Reader
	}

	tcp, err := socket.Connect(ctx, socket.Config{
		RemoteIP:   ipAddr[0].IP,
		RemotePort: cfg.Port,
		LocalIP:    cfg.LocalIP,
		LocalPort:  cfg.LocalPort,
		Tuning:     cfg.Tuning,
	})
	if err != nil {
		return nil, err
	}

	c := &Connection{
		tcp:    tcp,
		Inbox:  wire.NewBuffer(),
		Outbox: wire.NewBuffer(),
		Status: st,
		logger: cfg.Logger,
	}
	c.cs = handshake.ConnState{
		ServerName: serverName,
		Rand:       entropy,
		NetOut:     &tcp.Outbox,
		AppOut:     &c.Outbox,
		AppIn:      &c.Inbox,
		OnReceive: func(b []byte) {
			if c.OnReceive != nil {
				c.OnReceive(b)
			}
		},
	}

	phase1, errFrame := handshake.NewPhase1(entropy)
	if errFrame != nil {
		c.fail(errFrame)
		return c, errFrame
	}
	c.phase = phase1

	if errFrame := phase1.SendClientHello(&c.cs); errFrame != nil {
		c.fail(errFrame)
		return c, errFrame
	}
	c.logf("sent ClientHello to %s:%d", cfg.Host, cfg.Port)

	tcp.OnReadable = c.consumeRecords
	if err := tcp.Send(); err != nil {
		f := err.(*status.Frame)
		c.fail(f)
		return c, f
	}
	return c, nil
}

func (c *Connection) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// consumeRecords is invoked by the socket layer's read-dispatch goroutine
// once per inbound read. It parses as many complete records as are
// buffered, dispatching each to the current Phase in order, and flushes
// anything the phase queued in response before looking for the next
// record. A record is left unconsumed (and parsing stops) whenever fewer
// bytes are buffered than it needs, or the phase reports a terminal error.
func (c *Connection) consumeRecords() {
	for {
		if !c.Status.Ok() {
			return
		}

		buffered := c.tcp.Inbox.Bytes()
		hdr, ok, errFrame := record.ParseHeader(wire.View(buffered))
		if errFrame != nil {
			c.fail(errFrame)
			return
		}
		if !ok {
			return
		}

		total := record.HeaderSize + int(hdr.Length)
		if len(buffered) < total {
			return
		}
		contents := buffered[record.HeaderSize:total]

		next, errFrame := c.phase.ProcessRecord(&c.cs, hdr, contents)
		if errFrame != nil {
			c.fail(errFrame)
			return
		}
		if next != c.phase {
			c.logf("handshake phase %T -> %T", c.phase, next)
		}
		c.phase = next
		c.tcp.Inbox.Consume(total)

		if err := c.tcp.Send(); err != nil {
			c.fail(err.(*status.Frame))
			return
		}
	}
}

func (c *Connection) fail(f *status.Frame) {
	c.Status.Append(f)
	c.logf("connection failed: %s", f.Error())
	_ = c.tcp.Close()
}

// Send wraps everything queued in Outbox and writes it to the network. If
// the handshake has not completed, the data is held until it has (Phase1
// and Phase2 remember the request and flush it the moment Phase3 is
// reached), per the contiguous-flight ordering guarantee of the key
// schedule.
func (c *Connection) Send() error {
	if !c.Status.Ok() {
		return c.Status.Frames()[len(c.Status.Frames())-1]
	}
	if errFrame := c.phase.OnUserSend(&c.cs); errFrame != nil {
		c.fail(errFrame)
		return errFrame
	}
	if err := c.tcp.Send(); err != nil {
		f := err.(*status.Frame)
		c.fail(f)
		return f
	}
	return nil
}

// Close sends a best-effort close_notify alert, if the application traffic
// keys exist, and closes the TCP connection. socket.Conn.Close blocks until
// its read-dispatch goroutine has exited, so by the time it returns nothing
// can call consumeRecords and append to Inbox/Outbox anymore; only then are
// they released. Key material is not reused afterward; Connection must be
// discarded.
func (c *Connection) Close() error {
	if phase3, ok := c.phase.(*handshake.Phase3); ok {
		phase3.CloseNotify(&c.cs)
		_ = c.tcp.Send()
	}
	closeErr := c.tcp.Close()
	c.Inbox.Release()
	c.Outbox.Release()
	return closeErr
}

// Ok reports whether the connection is still usable, i.e. nothing in
// Status yet.
func (c *Connection) Ok() bool {
	return c.Status.Ok()
}

// ErrorMessage renders Status as a single string, or "" if Ok.
func (c *Connection) ErrorMessage() string {
	return c.Status.String()
}

// Established reports whether the handshake has completed and application
// data can be sent and received.
func (c *Connection) Established() bool {
	_, ok := c.phase.(*handshake.Phase3)
	return ok
}
