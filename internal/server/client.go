package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sntrenter/AnimalWell-Helper/internal/engine"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// EGGS_UPDATED может привезти весь список яиц одной пачкой,
	// поэтому лимит заметно больше обычной команды
	maxMessageSize = 16384
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Session - посредник между WebSocket и MapService.
// Каждая вкладка браузера получает свою сессию и свой канал рассылки.
type Session struct {
	Map  *engine.MapService
	Conn *websocket.Conn
	Send chan api.ServerResponse
	ID   string
}

func NewSession(m *engine.MapService, conn *websocket.Conn) *Session {
	return &Session{
		Map:  m,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
		ID:   uuid.NewString(),
	}
}

// readPump читает команды от клиента
func (s *Session) readPump() {
	defer func() {
		s.Map.Hub.Unregister(s.ID)
		if err := s.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithField("session_id", s.ID).Info("Session closed")
	}()

	s.Conn.SetReadLimit(maxMessageSize)
	if err := s.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	s.Conn.SetPongHandler(func(string) error {
		if err := s.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// Подписка на рассылку. Личный канал хаба переливается в writePump.
	updates := s.Map.Hub.Register(s.ID)
	go func() {
		for msg := range updates {
			s.Send <- msg
		}
		close(s.Send)
	}()

	logger.Log.WithField("session_id", s.ID).Info("Session connected")

	// Цикл чтения команд. Первой вкладка присылает INIT со своим
	// location.search и получает полный снимок.
	for {
		var cmd api.ClientCommand
		if err := s.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		s.Map.ProcessCommand(s.ID, cmd)
	}
}

// writePump отправляет данные клиенту + Ping
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := s.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-s.Send:
			if err := s.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := s.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := s.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := s.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := s.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
