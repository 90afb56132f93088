package actions

import (
	"fmt"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// RequestConfirm строит хендлер разрушительного действия: вместо выполнения
// он откладывает действие у брокера и спрашивает подтверждение. Само
// выполнение случится в HandleConfirm, отказ - в HandleCancel.
func RequestConfirm(action domain.ActionType, prompt string) handlers.HandlerFunc {
	return handlers.WithEmptyPayload(func(ctx handlers.Context) (handlers.Result, error) {
		pending := ctx.Confirms.Request(action, prompt)
		return handlers.Result{
			Reply: &api.ServerResponse{
				Type: api.TypeConfirm,
				Confirm: &api.ConfirmView{
					ID:     pending.ID,
					Action: pending.Action.String(),
					Prompt: pending.Prompt,
				},
			},
		}, nil
	})
}

// HandleConfirm выполняет отложенное действие по одноразовому токену.
// Протухший или чужой токен - ошибка: действие уже вытеснено или выполнено,
// молча делать вид, что все прошло, нельзя.
func HandleConfirm(ctx handlers.Context, p api.ConfirmPayload) (handlers.Result, error) {
	pending, ok := ctx.Confirms.Take(p.ID)
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("confirmation %q: %w", p.ID, domain.ErrNotFound)
	}

	persist := false
	switch pending.Action {
	case domain.ActionRevealAll:
		ctx.Grid.RevealAll()
		persist = true
	case domain.ActionHideAll:
		ctx.Grid.HideAll()
		persist = true
	case domain.ActionShowAllEggs:
		ctx.Eggs.SetAllVisible(true)
	case domain.ActionHideAllEggs:
		ctx.Eggs.SetAllVisible(false)
	default:
		return handlers.EmptyResult(), fmt.Errorf("pending action %s: %w", pending.Action, domain.ErrNotFound)
	}

	// Массовые действия трогают все: проще разослать полный снимок,
	// чем 256 дельт.
	return handlers.Result{
		Broadcast: handlers.BuildState(ctx),
		Persist:   persist,
	}, nil
}

// HandleCancel снимает отложенное действие. Отказ всегда успешен,
// даже если подтверждать уже нечего.
func HandleCancel(ctx handlers.Context, p api.CancelPayload) (handlers.Result, error) {
	ctx.Confirms.Cancel(p.ID)
	return handlers.EmptyResult(), nil
}
