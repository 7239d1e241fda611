package socket

import (
	"context"
	"fmt"
	"net"

	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Config describes the endpoint to dial and the tuning to apply once
// connected.
type Config struct {
	RemoteIP   net.IP
	RemotePort uint16
	LocalIP    net.IP
	LocalPort  uint16
	Tuning     Tuning
}

// Conn wraps a dialed net.Conn with the byte buffers and single
// read-dispatch goroutine the TLS client's record driver runs on top of.
//
// This goroutine is the "single event-loop thread" the handshake state
// machine assumes: every call into OnReadable happens from it, so all
// mutation of the owning Connection's phase state is single-threaded
// without any lock above this boundary.
type Conn struct {
	tcp        net.Conn
	Inbox      wire.Buffer
	Outbox     wire.Buffer
	Status     *status.List
	OnReadable func()
	// done is closed by readLoop right before it returns, so Close can wait
	// for the goroutine to be finished touching Inbox before releasing it.
	done chan struct{}
}

// Connect dials cfg.RemoteIP:RemotePort, optionally binding to a local
// address, applies the socket tuning, and starts the read-dispatch
// goroutine. The returned Conn has no OnReadable set; the caller must set
// it before data can usefully be dispatched.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	st := &status.List{}

	dialer := &net.Dialer{}
	if cfg.LocalIP != nil || cfg.LocalPort != 0 {
		dialer.LocalAddr = &net.TCPAddr{IP: cfg.LocalIP, Port: int(cfg.LocalPort)}
	}

	remote := net.JoinHostPort(cfg.RemoteIP.String(), fmt.Sprintf("%d", cfg.RemotePort))
	tcp, err := dialer.DialContext(ctx, "tcp", remote)
	if err != nil {
		st.Add(status.Transport, "dial %s: %v", remote, err)
		return nil, st.Frames()[0]
	}

	apply(tcp, cfg.Tuning)

	c := &Conn{
		tcp:    tcp,
		Inbox:  wire.NewBuffer(),
		Outbox: wire.NewBuffer(),
		Status: st,
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Conn) readLoop() {
	defer close(c.done)
	buf := make([]byte, 16*1024)
	for {
		n, err := c.tcp.Read(buf)
		if n > 0 {
			c.Inbox.Append(buf[:n])
			if c.OnReadable != nil {
				c.OnReadable()
			}
		}
		if err != nil {
			if c.Status.Ok() {
				c.Status.Add(status.Transport, "read: %v", err)
			}
			return
		}
	}
}

// Send drains Outbox to the network, looping over net.Conn.Write to
// handle partial writes.
func (c *Conn) Send() error {
	for c.Outbox.Len() > 0 {
		n, err := c.tcp.Write(c.Outbox.Bytes())
		if err != nil {
			f := c.Status.Add(status.Transport, "write: %v", err)
			return f
		}
		c.Outbox.Consume(n)
	}
	return nil
}

// Close attempts a final best-effort Send to flush anything already
// buffered, and closes the underlying socket. It
// waits for readLoop to exit before releasing Inbox/Outbox: closing tcp
// unblocks a Read it may be parked in, and the wait guarantees readLoop has
// made its last Inbox.Append before the buffer goes back to the pool.
func (c *Conn) Close() error {
	_ = c.Send()
	closeErr := c.tcp.Close()
	<-c.done
	c.Inbox.Release()
	c.Outbox.Release()
	return closeErr
}
