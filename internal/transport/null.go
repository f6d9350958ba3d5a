package transport

import "net/url"

func init() {
	Register("null", func(*url.URL) (Transport, error) { return nullTransport{}, nil })
}

// nullTransport accepts every write and never has data to read. Useful for
// exercising command plumbing without a sign attached.
type nullTransport struct{}

func (nullTransport) Write([]byte) error { return nil }

func (nullTransport) Read() ([]byte, error) { return nil, ErrNoResponse }

func (nullTransport) Close() error { return nil }
