package parser

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func readAllUTF8(t *testing.T, input []byte) string {
	t.Helper()
	reader, err := NewUTF8Reader(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read from UTF-8 reader: %v", err)
	}
	return string(output)
}

// TestNewUTF8Reader_AlreadyUTF8 tests that UTF-8 Arabic content passes through unchanged
func TestNewUTF8Reader_AlreadyUTF8(t *testing.T) {
	t.Parallel()
	input := []byte(`<html><head><meta charset="utf-8"></head><body><h1 class="entry-title">فيلم الممر</h1></body></html>`)

	output := readAllUTF8(t, input)
	if output != string(input) {
		t.Errorf("Expected UTF-8 content to pass through unchanged, got %q", output)
	}
}

// TestNewUTF8Reader_Windows1256ToUTF8 tests conversion of legacy Arabic pages
func TestNewUTF8Reader_Windows1256ToUTF8(t *testing.T) {
	t.Parallel()
	// 0xC7 0xE1 is "ال" (alef, lam) in windows-1256
	input := []byte(`<html><head><meta charset="windows-1256"></head><body>` + string([]byte{0xC7, 0xE1}) + `</body></html>`)

	output := readAllUTF8(t, input)
	if !strings.Contains(output, "ال") {
		t.Errorf("Expected 'ال' in UTF-8 output, got: %q", output)
	}
}

// TestNewUTF8Reader_MetaHttpEquiv tests detection from meta http-equiv tag
func TestNewUTF8Reader_MetaHttpEquiv(t *testing.T) {
	t.Parallel()
	input := []byte(`<html><head><meta http-equiv="Content-Type" content="text/html; charset=ISO-8859-1"></head><body>Caf` + string([]byte{0xE9}) + `</body></html>`)

	output := readAllUTF8(t, input)
	if !strings.Contains(output, "Café") {
		t.Errorf("Expected 'Café' in UTF-8 output, got: %q", output)
	}
}

// TestNewUTF8Reader_NoCharsetDeclaration tests heuristic detection when no charset is declared
func TestNewUTF8Reader_NoCharsetDeclaration(t *testing.T) {
	t.Parallel()
	input := []byte("<html><body>Hello World</body></html>")

	output := readAllUTF8(t, input)
	if !strings.Contains(output, "Hello World") {
		t.Errorf("Expected 'Hello World' in output, got: %s", output)
	}
}
