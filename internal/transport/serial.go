package transport

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tarm/serial"
)

// Alpha signs ship configured for 4800 baud, 8 data bits, no parity.
const defaultBaud = 4800

const defaultReadTimeout = time.Second

func init() {
	Register("serial", openSerial)
}

type serialTransport struct {
	port *serial.Port
}

func openSerial(u *url.URL) (Transport, error) {
	// serial:///dev/ttyUSB0 puts the device in the path; serial://COM3
	// parses the name into the host.
	name := u.Host + u.Path
	if name == "" {
		return nil, fmt.Errorf("serial: device URL has no port name")
	}
	cfg := &serial.Config{Name: name, Baud: defaultBaud, ReadTimeout: defaultReadTimeout}
	if v := u.Query().Get("baud"); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("serial: bad baud rate %q: %w", v, err)
		}
		cfg.Baud = baud
	}
	if v := u.Query().Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("serial: bad read timeout %q: %w", v, err)
		}
		cfg.ReadTimeout = d
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", name, err)
	}
	return &serialTransport{port: port}, nil
}

func (t *serialTransport) Write(p []byte) error {
	n, err := t.port.Write(p)
	if err != nil {
		return fmt.Errorf("serial: write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("serial: short write (%d of %d bytes)", n, len(p))
	}
	return nil
}

func (t *serialTransport) Read() ([]byte, error) {
	return readResponse(t.port)
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}
