package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sntrenter/AnimalWell-Helper/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервиса
type DebugHandler struct {
	Service *engine.MapService
}

func NewDebugHandler(s *engine.MapService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r chi.Router) {
	r.Route("/debug", func(r chi.Router) {
		r.Get("/grid", h.handleGrid)
		r.Get("/eggs", h.handleEggs)
		r.Get("/sessions", h.handleSessions)
	})
}

// /debug/grid - туман в обеих кодировках плюс счетчик открытого
func (h *DebugHandler) handleGrid(w http.ResponseWriter, r *http.Request) {
	snap := h.Service.Snapshot()

	count := 0
	for _, row := range snap.Revealed {
		for _, v := range row {
			count += v
		}
	}

	writeJSON(w, map[string]interface{}{
		"revealed": snap.Revealed,
		"mask":     snap.Mask,
		"count":    count,
	})
}

// /debug/eggs - все маркеры, включая скрытые туманом
func (h *DebugHandler) handleEggs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Snapshot().Eggs)
}

// /debug/sessions - подключенные вкладки
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"count": h.Service.Hub.SubscriberCount(),
		"ids":   h.Service.Hub.Sessions(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустой список), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
