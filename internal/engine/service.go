package engine

import (
	"errors"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers"
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers/actions"
	"github.com/sntrenter/AnimalWell-Helper/internal/infrastructure/storage"
	"github.com/sntrenter/AnimalWell-Helper/internal/network"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

// MapService владеет всем состоянием виджета: туманом, яйцами, иконками
// и вьюпортом. Все мутации идут через CommandChan и выполняются одной
// горутиной - это и есть вся модель конкурентности, остальному коду
// блокировки не нужны.
type MapService struct {
	Grid  *domain.Grid
	Eggs  *domain.EggRegistry
	Icons *domain.IconRegistry
	View  domain.Viewport

	Confirms *handlers.ConfirmBroker

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	store   *storage.StateStore
	saveKey string

	handlers map[domain.ActionType]handlers.HandlerFunc

	// snapshots обслуживает REST-ручки: запрос снимка проезжает через
	// основной цикл, чтобы чтение не гонялось с мутациями.
	snapshots chan chan *api.ServerResponse

	quit chan struct{}
	done chan struct{}
}

func NewService(cfg Config) *MapService {
	// 1. Чистая карта: все скрыто, кроме домашнего экрана
	grid := domain.NewGrid()

	// 2. Реестры. Иконка по умолчанию нужна всегда
	eggs := domain.NewEggRegistry()
	icons := domain.NewIconRegistry()
	icons.Ensure(domain.DefaultIcon)

	// 3. Поднимаем сохранение с диска (его отсутствие - не ошибка)
	store := storage.NewStateStore(cfg.DataDir)
	if rows := store.LoadGrid(cfg.SaveKey); rows != nil {
		grid.ApplyRows(rows)
		logger.Log.Infof("Save loaded: %d/%d screens revealed",
			grid.RevealedCount(), domain.GridWidth*domain.GridHeight)
	}

	s := &MapService{
		Grid:        grid,
		Eggs:        eggs,
		Icons:       icons,
		View:        domain.DefaultViewport(),
		Confirms:    handlers.NewConfirmBroker(),
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		store:       store,
		saveKey:     cfg.SaveKey,
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		snapshots:   make(chan chan *api.ServerResponse),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	s.registerHandlers()
	return s
}

func (s *MapService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithPayload(actions.HandleInit)
	s.handlers[domain.ActionToggleTile] = handlers.WithPayload(actions.HandleToggle)

	// Массовые действия не выполняются сразу - сначала вопрос пользователю
	s.handlers[domain.ActionRevealAll] = actions.RequestConfirm(domain.ActionRevealAll, "Reveal the entire map?")
	s.handlers[domain.ActionHideAll] = actions.RequestConfirm(domain.ActionHideAll, "Hide everything except the home screen?")
	s.handlers[domain.ActionShowAllEggs] = actions.RequestConfirm(domain.ActionShowAllEggs, "Show all egg markers?")
	s.handlers[domain.ActionHideAllEggs] = actions.RequestConfirm(domain.ActionHideAllEggs, "Hide all egg markers?")
	s.handlers[domain.ActionConfirm] = handlers.WithPayload(actions.HandleConfirm)
	s.handlers[domain.ActionCancel] = handlers.WithPayload(actions.HandleCancel)

	s.handlers[domain.ActionEggsUpdated] = handlers.WithPayload(actions.HandleEggsUpdated)
	s.handlers[domain.ActionEggDClick] = handlers.WithPayload(actions.HandleEggDClick)

	s.handlers[domain.ActionGotoQuadrant] = handlers.WithPayload(actions.HandleGotoQuadrant)
	s.handlers[domain.ActionGotoTile] = handlers.WithPayload(actions.HandleGotoTile)
	s.handlers[domain.ActionViewSettled] = handlers.WithPayload(actions.HandleViewSettled)
}

func (s *MapService) Start() {
	go s.runLoop()
}

// Stop останавливает цикл и дожидается финальной записи на диск.
func (s *MapService) Stop() {
	close(s.quit)
	<-s.done
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Здесь только разбор имени действия, вся работа - в цикле.
func (s *MapService) ProcessCommand(sessionID string, externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.Warnf("Unknown action %q from %s", externalCmd.Action, sessionID)
		s.Hub.SendTo(sessionID, api.ServerResponse{
			Type:  api.TypeError,
			Error: &api.ErrorView{Code: api.ErrCodeBadPayload, Message: "unknown action: " + externalCmd.Action},
		})
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:    actionType,
		SessionID: sessionID,
		Payload:   externalCmd.Payload,
	}
}

// Snapshot возвращает полный слепок состояния для REST-ручек.
func (s *MapService) Snapshot() *api.ServerResponse {
	reply := make(chan *api.ServerResponse, 1)
	select {
	case s.snapshots <- reply:
		return <-reply
	case <-s.done:
		// Цикл уже остановлен, конкурентов нет - читаем напрямую
		return handlers.BuildState(s.context(""))
	}
}

// --- MAP LOOP ---

func (s *MapService) runLoop() {
	logger.Log.Info("[LOOP] Map loop started")
	defer close(s.done)

	for {
		select {
		case cmd := <-s.CommandChan:
			s.execute(cmd)

		case reply := <-s.snapshots:
			reply <- handlers.BuildState(s.context(""))

		case <-s.quit:
			// Финальная запись: туман не должен потеряться на выходе
			s.persist()
			logger.Log.Info("[LOOP] Map loop stopped")
			return
		}
	}
}

// execute выполняет хендлер и развозит результат по адресатам
func (s *MapService) execute(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	result, err := handler(s.context(cmd.SessionID), cmd.Payload)
	if err != nil {
		logger.Log.WithError(err).Warnf("Action %s failed", cmd.Action)
		s.Hub.SendTo(cmd.SessionID, errorResponse(err))
		return
	}

	if result.Reply != nil {
		s.Hub.SendTo(cmd.SessionID, *result.Reply)
	}
	if result.Broadcast != nil {
		s.Hub.Broadcast(*result.Broadcast)
	}
	if result.Persist {
		s.persist()
	}
}

func (s *MapService) context(sessionID string) handlers.Context {
	return handlers.Context{
		Grid:      s.Grid,
		Eggs:      s.Eggs,
		Icons:     s.Icons,
		View:      &s.View,
		Confirms:  s.Confirms,
		SessionID: sessionID,
	}
}

func (s *MapService) persist() {
	if err := s.store.SaveGrid(s.saveKey, s.Grid.RevealedRows()); err != nil {
		logger.Log.WithError(err).Error("Failed to save map state")
	}
}

// errorResponse переводит доменные ошибки в коды протокола
func errorResponse(err error) api.ServerResponse {
	code := api.ErrCodeBadPayload
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = api.ErrCodeNotFound
	case errors.Is(err, domain.ErrOutOfRange):
		code = api.ErrCodeOutOfRange
	case errors.Is(err, domain.ErrOutOfBounds):
		code = api.ErrCodeOutOfBounds
	}

	return api.ServerResponse{
		Type:  api.TypeError,
		Error: &api.ErrorView{Code: code, Message: err.Error()},
	}
}
