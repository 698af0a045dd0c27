package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/internal/cpu"
)

func TestParseBands(t *testing.T) {
	got, err := parseBands([]string{"16:60", "60:250"})
	if err != nil {
		t.Fatal(err)
	}
	want := []field.Band{{Lo: 16, Hi: 60}, {Lo: 60, Hi: 250}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("parseBands=%v want=%v", got, want)
	}

	for _, bad := range []string{"16", "a:60", "16:b", "60:16", "0:10"} {
		if _, err := parseBands([]string{bad}); err == nil {
			t.Fatalf("parseBands(%q) succeeded", bad)
		}
	}
}

func TestPrintBands(t *testing.T) {
	var buf bytes.Buffer
	if err := printBands(&buf, field.Point{X: 5, Y: 5}, 1, []field.Band{{Lo: 60, Hi: 250}}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"60:250", "155", "190", "point (5, 5) m"} {
		if !strings.Contains(out, s) {
			t.Fatalf("output misses %q:\n%s", s, out)
		}
	}
}

func TestPrintBackends(t *testing.T) {
	var buf bytes.Buffer
	printBackends(&buf, cpu.Features{NumCPU: 8, Architecture: "amd64", HasSSE2: true})

	out := buf.String()
	for _, s := range []string{"serial", "parallel", "SSE2"} {
		if !strings.Contains(out, s) {
			t.Fatalf("output misses %q:\n%s", s, out)
		}
	}
}
