package actions

import (
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// HandleToggle переключает туман на одном экране.
// Revealed в payload задает состояние явно, без него экран переворачивается.
func HandleToggle(ctx handlers.Context, p api.TogglePayload) (handlers.Result, error) {
	tile, err := ctx.Grid.Toggle(p.X, p.Y, p.Revealed)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	return handlers.Result{
		Broadcast: handlers.BuildTileDelta(ctx, tile),
		Persist:   true,
	}, nil
}
