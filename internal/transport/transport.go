// Package transport provides the byte-level connections a sign driver talks
// through, keyed by device URL scheme.
package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
)

// ErrNoResponse is returned by Read when the device sent nothing before the
// transport's read window closed.
var ErrNoResponse = errors.New("no response from sign")

// Transport is the narrow capability the driver needs: write one packet,
// read back one response. Implementations are not safe for concurrent use.
// The protocol has no request identifiers, so callers must finish one
// write/read cycle before starting the next.
type Transport interface {
	Write(p []byte) error
	Read() ([]byte, error)
	Close() error
}

// Factory opens a transport from its parsed device URL.
type Factory func(u *url.URL) (Transport, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register stores a factory for a URL scheme. Typically called from init in
// the file implementing the backend.
func Register(scheme string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[scheme] = f
}

// Open parses a device URL such as serial:///dev/ttyUSB0?baud=9600 or
// tcp://10.0.0.5:10001 and opens the matching transport.
func Open(device string) (Transport, error) {
	u, err := url.Parse(device)
	if err != nil {
		return nil, fmt.Errorf("parse device URL: %w", err)
	}
	regMu.RLock()
	f, ok := factories[u.Scheme]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no transport registered for scheme %q", u.Scheme)
	}
	return f(u)
}

const eot = 0x04

// readResponse accumulates reads until the EOT terminator appears or the
// reader stops producing data. A timeout or EOF after some data has arrived
// ends the response normally; with no data at all it is ErrNoResponse.
func readResponse(r io.Reader) ([]byte, error) {
	buf := make([]byte, 0, 256)
	chunk := make([]byte, 128)
	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if bytes.IndexByte(buf, eot) >= 0 {
			return buf, nil
		}
		if err != nil || n == 0 {
			if len(buf) > 0 {
				return buf, nil
			}
			if err == nil || errors.Is(err, io.EOF) {
				return nil, ErrNoResponse
			}
			return nil, err
		}
	}
}
