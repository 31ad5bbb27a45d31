package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("first\nsec"))
	if err != nil || n != 9 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if out.String() != "> first\n" {
		t.Errorf("after partial write = %q", out.String())
	}

	if _, err := pw.Write([]byte("ond\nthird")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := pw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if want := "> first\n> second\n> third"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in        string
		wantLevel string
		wantJSON  bool
	}{
		{in: "", wantLevel: "warn"},
		{in: "DEBUG", wantLevel: "debug"},
		{in: "json", wantLevel: "info", wantJSON: true},
		{in: "json:trace", wantLevel: "trace", wantJSON: true},
	}
	for _, tc := range testCases {
		level, jsonFormat := ParseLevel(tc.in)
		if level != tc.wantLevel || jsonFormat != tc.wantJSON {
			t.Errorf("ParseLevel(%q) = %q,%v want %q,%v", tc.in, level, jsonFormat, tc.wantLevel, tc.wantJSON)
		}
	}
}

func TestNewLoggerTextHasPrefix(t *testing.T) {
	var out bytes.Buffer
	logger := NewLoggerWithFormat("svgicon-test", "info", false, &out)
	logger.Info("encoded", "bytes", 42)

	line := out.String()
	if !strings.HasPrefix(line, Prefix) {
		t.Errorf("line %q lacks prefix", line)
	}
	if !strings.Contains(line, "bytes=42") {
		t.Errorf("line %q lacks field", line)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var out bytes.Buffer
	logger := NewLoggerWithFormat("svgicon-test", "json:debug", false, &out)
	logger.Debug("encoded", "bytes", 42)

	var record map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &record); err != nil {
		t.Fatalf("output %q is not JSON: %v", out.String(), err)
	}
	if record["@message"] != "encoded" {
		t.Errorf("@message = %v", record["@message"])
	}
}
