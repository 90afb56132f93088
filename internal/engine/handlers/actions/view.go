package actions

import (
	"fmt"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// HandleGotoQuadrant наводит камеру отправителя на квадрант карты.
// Координаты приходят грубые (клики по мини-карте), поэтому прижимаем их
// к карте и целимся в центр накрытого экрана. Зум не трогаем.
func HandleGotoQuadrant(ctx handlers.Context, p api.QuadrantPayload) (handlers.Result, error) {
	x := clampF(p.QX, 0, domain.MapWidth-1)
	y := clampF(p.QY, 0, domain.MapHeight-1)

	tx := int(x) / domain.TileWidth
	ty := int(y) / domain.TileHeight

	return handlers.Result{
		Reply: &api.ServerResponse{
			Type: api.TypeView,
			View: &api.ViewportView{
				X:    float64(tx*domain.TileWidth) + domain.TileWidth/2,
				Y:    float64(ty*domain.TileHeight) + domain.TileHeight/2,
				Zoom: ctx.View.Zoom,
			},
		},
	}, nil
}

// HandleGotoTile наводит камеру на точные пиксели. Опционально открывает
// накрытый экран - так работает "показать, где лежит яйцо" из списка.
func HandleGotoTile(ctx handlers.Context, p api.GotoTilePayload) (handlers.Result, error) {
	tx, ty, err := domain.TileFor(domain.PixelPos{X: p.PX, Y: p.PY})
	if err != nil {
		return handlers.EmptyResult(), fmt.Errorf("goto (%d,%d): %w", p.PX, p.PY, err)
	}

	result := handlers.Result{
		Reply: &api.ServerResponse{
			Type: api.TypeView,
			View: &api.ViewportView{X: float64(p.PX), Y: float64(p.PY), Zoom: ctx.View.Zoom},
		},
	}

	if p.Reveal {
		tile, err := ctx.Grid.At(tx, ty)
		if err != nil {
			return handlers.EmptyResult(), err
		}
		if !tile.Revealed {
			on := true
			tile, err = ctx.Grid.Toggle(tx, ty, &on)
			if err != nil {
				return handlers.EmptyResult(), err
			}
			result.Broadcast = handlers.BuildTileDelta(ctx, tile)
			result.Persist = true
		}
	}

	return result, nil
}

// HandleViewSettled запоминает, где камера остановилась, и рассылает всем
// канонический share-query: вкладки подменяют им адресную строку, и ссылка
// на текущее место всегда готова к копированию. Событие приходит только
// когда панорамирование закончилось, не на каждый кадр.
func HandleViewSettled(ctx handlers.Context, p api.ViewPayload) (handlers.Result, error) {
	*ctx.View = domain.Viewport{X: p.X, Y: p.Y, Zoom: domain.ClampZoom(p.Zoom)}

	return handlers.Result{
		Broadcast: &api.ServerResponse{
			Type:  api.TypeView,
			View:  handlers.ToViewportView(*ctx.View),
			Share: ctx.View.QueryString(),
		},
	}, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
