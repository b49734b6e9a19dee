package main

import (
	"testing"

	"fieldscope/internal/geometry"
)

func TestParsePointFlag(t *testing.T) {
	p, err := parsePointFlag("52.10, 5.20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (geometry.Point{Lat: 52.10, Lon: 5.20}) {
		t.Fatalf("unexpected point: %v", p)
	}

	for _, raw := range []string{"", "52.10", "a,b", "1,2,3"} {
		if _, err := parsePointFlag(raw); err == nil {
			t.Errorf("parsePointFlag(%q): expected error", raw)
		}
	}
}

func TestRootCommandWiring(t *testing.T) {
	want := map[string]bool{
		"login":    false,
		"register": false,
		"logout":   false,
		"whoami":   false,
		"fields":   false,
		"upload":   false,
		"stats":    false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
