package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pefman/citadel-calc/internal/catalog"
	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/models"
)

const maxBody = 1 << 20

func (s *server) handleCitadels(w http.ResponseWriter, r *http.Request) {
	levels := s.cat.CitadelLevels()
	out := make([]models.CitadelInfo, 0, len(levels))
	for _, lvl := range levels {
		c, _ := s.cat.Citadel(lvl)
		out = append(out, models.CitadelInfo{
			Level:             lvl,
			Label:             game.CitadelLabel(lvl),
			WallHP:            c.WallHP,
			FirstStrikeDamage: c.FirstStrikeDamage,
			NormalTargets:     c.NormalTargets,
			M8M9Targets:       c.M8M9Targets,
		})
	}
	writeJSON(w, out)
}

func (s *server) handleTroops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.cat.Troops())
}

func (s *server) handlePools(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("mode")
	mode, ok := catalog.ParseMode(raw)
	if !ok && raw != "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q, want WITH or WITHOUT", raw))
		return
	}
	rules := game.NewRules(s.cat, mode)
	writeJSON(w, models.PoolsResponse{Mode: mode, ModeLabel: mode.Label(), Pools: rules.Pools})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// loadForm replays in on a fresh loadout. A bad mode or citadel is answered
// here and reported as ok false; rejected picks come back as errs.
func (s *server) loadForm(w http.ResponseWriter, in game.Input) (l *game.Loadout, errs []error, ok bool) {
	if in.Mode != "" {
		if _, ok := catalog.ParseMode(in.Mode); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q, want WITH or WITHOUT", in.Mode))
			return nil, nil, false
		}
	}
	if in.Citadel != "" {
		if _, ok := s.cat.Citadel(in.Citadel); !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown citadel %q", in.Citadel))
			return nil, nil, false
		}
	}
	l = game.NewLoadout(s.cat, s.tuning)
	return l, l.Apply(in), true
}

func warnings(errs []error) []models.Warning {
	out := make([]models.Warning, 0, len(errs))
	for _, err := range errs {
		out = append(out, models.NewWarning(err))
	}
	return out
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in game.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	l, errs, ok := s.loadForm(w, in)
	if !ok {
		return
	}
	rep := l.Calculate()
	s.sessions.Calculated("")
	s.log.Debug("calculate",
		zap.String("citadel", rep.Citadel),
		zap.String("mode", string(rep.Mode)),
		zap.Int("warnings", len(errs)))
	writeJSON(w, models.CalculateResponse{
		Report:   rep,
		Slots:    l.State().Slots,
		Text:     rep.Text,
		Warnings: warnings(errs),
	})
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l, _, ok := s.loadForm(w, req.Input)
	if !ok {
		return
	}
	if err := l.Check(req.Slot, req.Troop); err != nil {
		warn := models.NewWarning(err)
		writeStatusJSON(w, http.StatusUnprocessableEntity, models.ValidateResponse{Warning: &warn})
		return
	}
	writeJSON(w, models.ValidateResponse{OK: true})
}

func (s *server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.SessionsResponse{
		Sessions:          s.sessions.List(),
		CalculationsToday: s.sessions.CalculationsToday(),
	})
}
