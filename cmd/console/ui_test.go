package main

import (
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input  string
		action string
		item   string
		ok     bool
	}{
		{"explore", "explore", "", true},
		{"  FIGHT ", "battle", "", true},
		{"run", "flee", "", true},
		{"use health potion", "use", "health potion", true},
		{"use", "", "", false},
		{"quest", "assign-quest", "", true},
		{"complete", "complete-quest", "", true},
		{"inv", "inventory", "", true},
		{"dance", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			action, item, ok := parseCommand(tt.input)
			if action != tt.action || item != tt.item || ok != tt.ok {
				t.Errorf("parseCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.input, action, item, ok, tt.action, tt.item, tt.ok)
			}
		})
	}
}

func TestLogBufferKeepsPlainText(t *testing.T) {
	b := &logBuffer{}
	b.Render("A wild Slime appears!", "Aria finds a Magic Stone!")
	b.system(errorStyle, "no quests to complete")

	want := "A wild Slime appears!\nAria finds a Magic Stone!\nno quests to complete"
	if got := b.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if n := strings.Count(b.wrapped(80), "\n"); n != 3 {
		t.Errorf("wrapped lines = %d, want 3", n)
	}
}

func TestMapRows(t *testing.T) {
	result := map[string]any{"rows": []any{"@.", ".."}}
	rows := mapRows(result)
	if len(rows) != 2 || rows[0] != "@." {
		t.Errorf("mapRows() = %v", rows)
	}
	if mapRows([]any{"x"}) != nil {
		t.Error("non-map result should yield nil")
	}
}
