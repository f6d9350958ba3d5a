// Package testutil loads shared fixtures from the repository's testdata
// directory.
package testutil

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LoadResponse decodes a hex fixture into the raw bytes a sign would have
// sent. Whitespace in the fixture is ignored so dumps can be wrapped.
func LoadResponse(t *testing.T, rel string) []byte {
	t.Helper()
	text := strings.Join(strings.Fields(string(readTestdata(t, rel))), "")
	data, err := hex.DecodeString(text)
	if err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
	return data
}

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
