package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pefman/citadel-calc/internal/game"
)

func TestNewWarning(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{&game.OrderViolation{Label: "Cleanup 1", Picked: "Griffin VII"}, WarnOrder},
		{fmt.Errorf("slot 3: %w", &game.PlacementError{Slot: 3, Troop: "Ariel"}), WarnPlacement},
		{game.ErrSelectionOrder, WarnSelection},
		{errors.New("unknown mode"), WarnInput},
	}
	for _, tt := range tests {
		w := NewWarning(tt.err)
		if w.Kind != tt.kind || w.Message != tt.err.Error() {
			t.Errorf("NewWarning(%v) = %+v, want kind %s", tt.err, w, tt.kind)
		}
	}
	if w := NewWarning(&game.OrderViolation{Picked: "x"}); w.Violation == nil || w.Violation.Picked != "x" {
		t.Errorf("violation not attached: %+v", w)
	}
}

func TestSlotCmdDecodesNumericBonus(t *testing.T) {
	var c SlotCmd
	if err := json.Unmarshal([]byte(`{"slot":3,"value":12.5}`), &c); err != nil {
		t.Fatal(err)
	}
	if c.Slot != 3 || c.Value.Value() != 12.5 {
		t.Errorf("SlotCmd = %+v", c)
	}
}

func TestValidateRequestFlattensInput(t *testing.T) {
	var r ValidateRequest
	body := `{"citadel":"25","mode":"WITH","slots":[{"troop":"Corax I"}],"slot":3,"troop":"Wyvern"}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatal(err)
	}
	if r.Citadel != "25" || r.Mode != "WITH" || len(r.Slots) != 1 || r.Slot != 3 || r.Troop != "Wyvern" {
		t.Errorf("ValidateRequest = %+v", r)
	}
}
