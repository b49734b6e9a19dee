package ui

import (
	"strings"
	"testing"
)

func TestTableRendersHeadersAndRows(t *testing.T) {
	tbl := NewTable("Fields", "ID", "Name", "Crop")
	tbl.AddRow("1", "North Plot", "wheat")
	tbl.AddRow("2", "South Plot", "maize")

	out := tbl.View(NewStyles(LightTheme()))
	for _, want := range []string{"Fields", "North Plot", "maize", "Crop"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestEmptyTableRendersNothing(t *testing.T) {
	tbl := NewTable("Empty", "A", "B")
	if out := tbl.View(NewStyles(LightTheme())); out != "" {
		t.Errorf("expected empty render, got %q", out)
	}
}

func TestSortStressLevels(t *testing.T) {
	dist := map[string]int{"severe": 1, "healthy": 5, "zebra": 2, "moderate": 3}
	got := SortStressLevels(dist)
	want := []string{"healthy", "moderate", "severe", "zebra"}
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestStressBarsScaleToLargest(t *testing.T) {
	styles := NewStyles(LightTheme())
	out := StressBars(styles, map[string]int{"healthy": 10, "severe": 1}, 20)

	if !strings.Contains(out, "healthy") || !strings.Contains(out, "severe") {
		t.Fatalf("bars missing levels:\n%s", out)
	}
	// A non-zero count always gets at least one cell.
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "severe") && !strings.Contains(line, "█") {
			t.Errorf("severe bar should not be empty: %q", line)
		}
	}
}

func TestStressBarsEmptyDistribution(t *testing.T) {
	out := StressBars(NewStyles(LightTheme()), nil, 20)
	if !strings.Contains(out, "no analysis data") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Error("dark theme should be dark")
	}
	if ThemeByName("light").IsDark {
		t.Error("light theme should not be dark")
	}
}
