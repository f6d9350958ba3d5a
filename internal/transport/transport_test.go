package transport

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"testing"
)

func TestOpenUnknownScheme(t *testing.T) {
	if _, err := Open("gopher://sign"); err == nil {
		t.Fatal("expected error for unregistered scheme")
	}
}

func TestOpenRegisteredScheme(t *testing.T) {
	var gotPath string
	Register("fake", func(u *url.URL) (Transport, error) {
		gotPath = u.Host + u.Path
		return nullTransport{}, nil
	})
	tr, err := Open("fake://dev/sign0")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()
	if gotPath != "dev/sign0" {
		t.Fatalf("factory saw path %q", gotPath)
	}
}

func TestNullTransport(t *testing.T) {
	tr, err := Open("null://")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tr.Write([]byte("F$")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := tr.Read(); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("want ErrNoResponse, got %v", err)
	}
}

func TestReadResponseStopsAtEOT(t *testing.T) {
	r := bytes.NewReader([]byte("\x01000\x02E$\x03AB12\x04trailing"))
	resp, err := readResponse(r)
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if !bytes.Contains(resp, []byte{0x04}) {
		t.Fatalf("response missing terminator: %q", resp)
	}
}

func TestReadResponsePartialThenEOF(t *testing.T) {
	// Device stopped mid-stream: whatever arrived is handed back so the
	// decoder can report the structural problem.
	resp, err := readResponse(bytes.NewReader([]byte("\x01000\x02E$")))
	if err != nil {
		t.Fatalf("readResponse: %v", err)
	}
	if len(resp) == 0 {
		t.Fatal("expected partial data")
	}
}

func TestReadResponseNoData(t *testing.T) {
	if _, err := readResponse(bytes.NewReader(nil)); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("want ErrNoResponse, got %v", err)
	}
}

func TestReadResponsePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := readResponse(failingReader{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("want wrapped reader error, got %v", err)
	}
}

type failingReader struct {
	err error
}

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

var _ io.Reader = failingReader{}
