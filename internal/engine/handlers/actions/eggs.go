package actions

import (
	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

// HandleEggsUpdated применяет пачку изменений от списка яиц.
// Запись с позицией размещает или перемещает яйцо, без позиции - обновляет
// флаги уже известного. Одна битая запись не валит пачку: ее пропускаем
// с предупреждением, остальные едут дальше.
func HandleEggsUpdated(ctx handlers.Context, p api.EggsPayload) (handlers.Result, error) {
	updated := make([]api.EggView, 0, len(p.Eggs))

	for _, upd := range p.Eggs {
		var egg *domain.Egg
		var err error

		if upd.Pos != nil {
			egg, err = ctx.Eggs.Place(
				upd.Code, upd.Icon,
				domain.PixelPos{X: upd.Pos.X, Y: upd.Pos.Y},
				upd.Found, upd.Visible,
			)
		} else {
			egg, err = ctx.Eggs.Update(upd.Code, upd.Found, upd.Visible)
		}
		if err != nil {
			logger.Log.WithError(err).Warnf("Egg %q skipped", upd.Code)
			continue
		}

		// Иконка могла появиться впервые - регистрируем обе вариации
		ctx.Icons.Ensure(egg.Icon)
		updated = append(updated, handlers.ToEggView(ctx, egg))
	}

	if len(updated) == 0 {
		return handlers.EmptyResult(), nil
	}

	return handlers.Result{
		Broadcast: &api.ServerResponse{
			Type: api.TypeEggs,
			Eggs: updated,
		},
	}, nil
}

// HandleEggDClick ретранслирует двойной клик по яйцу всем вкладкам.
// Сервер здесь только проверяет, что код известен: сама реакция
// (открыть список, подсветить строку) - дело клиента.
func HandleEggDClick(ctx handlers.Context, p api.EggPayload) (handlers.Result, error) {
	egg, err := ctx.Eggs.Get(p.Code)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	return handlers.Result{
		Broadcast: &api.ServerResponse{
			Type: api.TypeEggDClick,
			Eggs: []api.EggView{handlers.ToEggView(ctx, egg)},
		},
	}, nil
}
