package transport

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// Serial-to-ethernet bridges in front of a sign behave like a raw byte
// pipe, so the TCP backend mirrors the serial one: one deadline-bounded
// write or read per call.
const defaultTCPTimeout = 3 * time.Second

func init() {
	Register("tcp", openTCP)
}

type tcpTransport struct {
	conn    net.Conn
	timeout time.Duration
}

func openTCP(u *url.URL) (Transport, error) {
	if u.Host == "" {
		return nil, fmt.Errorf("tcp: device URL has no host")
	}
	timeout := defaultTCPTimeout
	if v := u.Query().Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("tcp: bad timeout %q: %w", v, err)
		}
		timeout = d
	}
	conn, err := net.DialTimeout("tcp", u.Host, timeout)
	if err != nil {
		return nil, fmt.Errorf("tcp: dial %s: %w", u.Host, err)
	}
	return &tcpTransport{conn: conn, timeout: timeout}, nil
}

func (t *tcpTransport) Write(p []byte) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return fmt.Errorf("tcp: set write deadline: %w", err)
	}
	if _, err := t.conn.Write(p); err != nil {
		return fmt.Errorf("tcp: write: %w", err)
	}
	return nil
}

func (t *tcpTransport) Read() ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, fmt.Errorf("tcp: set read deadline: %w", err)
	}
	return readResponse(t.conn)
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}
