package models

import (
	"encoding/json"
	"errors"

	"github.com/pefman/citadel-calc/internal/catalog"
	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/session"
)

// ========================= Websocket envelope =========================

// WsMsg is a server to client frame.
type WsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ClientIn is a client to server frame; Data is decoded per Type.
type ClientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Server message types.
const (
	MsgHello   = "hello"
	MsgState   = "state"
	MsgResult  = "result"
	MsgWarning = "warning"
	MsgError   = "error"
)

// Client message types.
const (
	CmdMode        = "mode"
	CmdCitadel     = "citadel"
	CmdTroop       = "troop"
	CmdBonus       = "bonus"
	CmdFirstHealth = "first_health"
	CmdWallTroop   = "wall_troop"
	CmdWallBonus   = "wall_bonus"
	CmdReset       = "reset"
	CmdCalculate   = "calculate"
	CmdState       = "state"
)

// ModeCmd carries the mode for CmdMode.
type ModeCmd struct {
	Mode string `json:"mode"`
}

// CitadelCmd carries the level for CmdCitadel.
type CitadelCmd struct {
	Level string `json:"level"`
}

// SlotCmd is a troop pick (CmdTroop) or bonus edit (CmdBonus) for one slot.
type SlotCmd struct {
	Slot  int          `json:"slot"`
	Troop string       `json:"troop,omitempty"`
	Value game.Percent `json:"value,omitempty"`
}

// ValueCmd carries a bonus for CmdFirstHealth and CmdWallBonus.
type ValueCmd struct {
	Value game.Percent `json:"value"`
}

// WallCmd carries the troop for CmdWallTroop.
type WallCmd struct {
	Troop string `json:"troop"`
}

type Hello struct {
	Session string     `json:"session"`
	State   game.State `json:"state"`
}

// Warning kinds.
const (
	WarnOrder     = "order_violation"
	WarnSelection = "selection_order"
	WarnPlacement = "placement"
	WarnInput     = "input"
)

// Warning reports a rejected command without closing the session.
type Warning struct {
	Kind      string               `json:"kind"`
	Message   string               `json:"message"`
	Violation *game.OrderViolation `json:"violation,omitempty"`
	Placement *game.PlacementError `json:"placement,omitempty"`
}

// NewWarning classifies err into a Warning.
func NewWarning(err error) Warning {
	w := Warning{Kind: WarnInput, Message: err.Error()}
	var ov *game.OrderViolation
	var pe *game.PlacementError
	switch {
	case errors.As(err, &ov):
		w.Kind, w.Violation = WarnOrder, ov
	case errors.As(err, &pe):
		w.Kind, w.Placement = WarnPlacement, pe
	case errors.Is(err, game.ErrSelectionOrder):
		w.Kind = WarnSelection
	}
	return w
}

// ========================= HTTP bodies =========================

// ErrorBody is the JSON shape of every HTTP error.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type CitadelInfo struct {
	Level             string    `json:"level"`
	Label             string    `json:"label"`
	WallHP            float64   `json:"wall_hp"`
	FirstStrikeDamage float64   `json:"first_strike_damage"`
	NormalTargets     []float64 `json:"normal_targets"`
	M8M9Targets       []float64 `json:"m8m9_targets"`
}

// PoolsResponse lists the eligibility pools for one mode.
type PoolsResponse struct {
	Mode      catalog.Mode `json:"mode"`
	ModeLabel string       `json:"mode_label"`
	game.Pools
}

// CalculateResponse is the result of POST /api/calculate.
type CalculateResponse struct {
	Report   *game.Report     `json:"report"`
	Slots    []game.SlotState `json:"slots"`
	Text     string           `json:"text"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// ValidateRequest asks whether Troop may be placed at Slot of the given form.
type ValidateRequest struct {
	game.Input
	Slot  int    `json:"slot"`
	Troop string `json:"troop"`
}

type ValidateResponse struct {
	OK      bool     `json:"ok"`
	Warning *Warning `json:"warning,omitempty"`
}

type SessionsResponse struct {
	Sessions          []session.Info `json:"sessions"`
	CalculationsToday int            `json:"calculations_today"`
}
