package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"TOGGLE_TILE", ActionToggleTile},
		{"toggle_tile", ActionToggleTile},
		{"Toggle_Tile", ActionToggleTile},
		{"REVEAL_ALL", ActionRevealAll},
		{"EGGS_UPDATED", ActionEggsUpdated},
		{"VIEW_SETTLED", ActionViewSettled},
		{"TELEPORT", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionToggleTile, "TOGGLE_TILE"},
		{ActionEggDClick, "EGG_DCLICK"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_Destructive(t *testing.T) {
	destructive := []ActionType{ActionRevealAll, ActionHideAll, ActionShowAllEggs, ActionHideAllEggs}
	for _, a := range destructive {
		if !a.Destructive() {
			t.Errorf("%v should require confirmation", a)
		}
	}

	safe := []ActionType{ActionInit, ActionToggleTile, ActionConfirm, ActionEggsUpdated, ActionGotoTile}
	for _, a := range safe {
		if a.Destructive() {
			t.Errorf("%v should not require confirmation", a)
		}
	}
}
