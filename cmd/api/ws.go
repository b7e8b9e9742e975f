package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pefman/citadel-calc/internal/catalog"
	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/models"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

const (
	wsReadLimit    = 64 << 10
	wsWriteTimeout = 10 * time.Second
)

// formSession is one websocket client editing its own loadout.
// Only the reader goroutine touches it.
type formSession struct {
	id      string
	conn    *websocket.Conn
	loadout *game.Loadout
	log     *zap.Logger
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws: upgrade failed", zap.Error(err))
		return
	}
	l := game.NewLoadout(s.cat, s.tuning)
	fs := &formSession{conn: conn, loadout: l}
	fs.id = s.sessions.Open(r.RemoteAddr, l.Citadel(), string(l.Mode()))
	fs.log = s.log.Named("ws").With(zap.String("session", fs.id))
	fs.log.Info("ws: open", zap.String("remote", r.RemoteAddr))

	defer func() {
		_ = conn.Close()
		s.sessions.Close(fs.id)
		fs.log.Info("ws: closed")
	}()

	conn.SetReadLimit(wsReadLimit)
	fs.send(models.WsMsg{Type: models.MsgHello, Data: models.Hello{Session: fs.id, State: l.State()}})
	for {
		var in models.ClientIn
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				fs.log.Warn("ws: read error", zap.Error(err))
			}
			return
		}
		fs.log.Debug("ws: recv", zap.String("type", in.Type))
		for _, m := range s.dispatch(fs.id, l, in) {
			if err := fs.send(m); err != nil {
				return
			}
		}
	}
}

func (fs *formSession) send(m models.WsMsg) error {
	_ = fs.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := fs.conn.WriteJSON(m); err != nil {
		fs.log.Warn("ws: write error", zap.Error(err))
		return err
	}
	return nil
}

func errorMsg(format string, args ...any) models.WsMsg {
	return models.WsMsg{Type: models.MsgError, Data: map[string]string{"message": fmt.Sprintf(format, args...)}}
}

// dispatch applies one client command to l and returns the replies in send order.
// A rejected command yields a warning followed by the current state.
func (s *server) dispatch(id string, l *game.Loadout, in models.ClientIn) []models.WsMsg {
	decode := func(v any) bool {
		if len(in.Data) == 0 {
			return true
		}
		return json.Unmarshal(in.Data, v) == nil
	}
	var err error
	switch in.Type {
	case models.CmdMode:
		var body models.ModeCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		mode, ok := catalog.ParseMode(body.Mode)
		if !ok {
			err = fmt.Errorf("unknown mode %q", body.Mode)
			break
		}
		l.SetMode(mode)
		s.sessions.Update(id, l.Citadel(), string(l.Mode()))
	case models.CmdCitadel:
		var body models.CitadelCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		err = l.SetCitadel(body.Level)
		s.sessions.Update(id, l.Citadel(), string(l.Mode()))
	case models.CmdTroop:
		var body models.SlotCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		err = l.SetTroop(body.Slot, body.Troop)
	case models.CmdBonus:
		var body models.SlotCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		err = l.SetBonus(body.Slot, string(body.Value))
	case models.CmdFirstHealth:
		var body models.ValueCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		l.SetFirstHealthBonus(string(body.Value))
	case models.CmdWallTroop:
		var body models.WallCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		err = l.SetWallTroop(body.Troop)
	case models.CmdWallBonus:
		var body models.ValueCmd
		if !decode(&body) {
			return []models.WsMsg{errorMsg("bad %s payload", in.Type)}
		}
		l.SetWallBonus(string(body.Value))
	case models.CmdReset:
		l.Reset()
	case models.CmdCalculate:
		rep := l.Calculate()
		s.sessions.Calculated(id)
		return []models.WsMsg{{Type: models.MsgResult, Data: rep}}
	case models.CmdState:
	default:
		return []models.WsMsg{errorMsg("unknown message type %q", in.Type)}
	}

	state := models.WsMsg{Type: models.MsgState, Data: l.State()}
	if err != nil {
		return []models.WsMsg{{Type: models.MsgWarning, Data: models.NewWarning(err)}, state}
	}
	return []models.WsMsg{state}
}
