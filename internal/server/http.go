package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"github.com/go-chi/chi/v5"

	"github.com/sntrenter/AnimalWell-Helper/internal/engine"
	"github.com/sntrenter/AnimalWell-Helper/internal/version"
	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

type Server struct {
	Map  *engine.MapService
	Port string
}

func New(m *engine.MapService, port string) *Server {
	return &Server{
		Map:  m,
		Port: port,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	r := chi.NewRouter()
	r.Use(enableCORS)

	// Регистрируем роуты
	r.Get("/ws", s.handleWS)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	// REST-зеркало для скриптов и curl: то же состояние, что и по WS
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/share", s.handleShare)
	})

	debugHandler := NewDebugHandler(s.Map)
	debugHandler.RegisterRoutes(r)

	logger.Log.Infof("🗺️  Animal Well map server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Виджет живет на чужом origin (file:// или статический хостинг)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next.ServeHTTP(w, r)
	})
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	session := NewSession(s.Map, conn)

	// Запускаем пампы
	go session.writePump()
	go session.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// handleState отдает тот же полный снимок, что вкладка получает на INIT
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Map.Snapshot())
}

// handleShare отдает готовую ссылку на текущее место плюс маску тумана
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	snap := s.Map.Snapshot()
	writeJSON(w, map[string]string{
		"query": snap.Share,
		"mask":  snap.Mask,
	})
}
