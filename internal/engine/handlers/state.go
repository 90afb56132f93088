package handlers

import (
	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// BuildState собирает полный слепок виджета: метаданные сетки, открытые
// экраны в обоих кодировках, иконки, все яйца и текущий вьюпорт.
// Это ответ на INIT и содержимое REST-снимка.
func BuildState(ctx Context) *api.ServerResponse {
	return &api.ServerResponse{
		Type:     api.TypeState,
		Grid:     BuildGridMeta(),
		Revealed: ctx.Grid.RevealedRows(),
		Mask:     ctx.Grid.EncodeMask(),
		Icons:    ToIconViews(ctx.Icons),
		Eggs:     ToEggViews(ctx),
		View:     ToViewportView(*ctx.View),
		Share:    ctx.View.QueryString(),
	}
}

// BuildTileDelta собирает TILE-ответ: один экран плюс его яйца.
// Яйца едут вместе, потому что их эффективная видимость зависит от тумана.
func BuildTileDelta(ctx Context, tile *domain.Tile) *api.ServerResponse {
	view := api.TileView{X: tile.X, Y: tile.Y, Revealed: tile.Revealed}
	for _, egg := range ctx.Eggs.OnTile(tile.X, tile.Y) {
		view.Eggs = append(view.Eggs, ToEggView(ctx, egg))
	}
	return &api.ServerResponse{
		Type: api.TypeTile,
		Tile: &view,
	}
}

// BuildGridMeta возвращает константную геометрию карты.
func BuildGridMeta() *api.GridMeta {
	return &api.GridMeta{
		Width:      domain.GridWidth,
		Height:     domain.GridHeight,
		TileWidth:  domain.TileWidth,
		TileHeight: domain.TileHeight,
		HomeX:      domain.HomeTileX,
		HomeY:      domain.HomeTileY,
	}
}

// ToEggView конвертирует яйцо в DTO, досчитывая эффективную видимость.
func ToEggView(ctx Context, egg *domain.Egg) api.EggView {
	view := api.EggView{
		Code:    egg.Code,
		Icon:    egg.IconKey(),
		Found:   egg.Found,
		Visible: egg.Visible,
		Shown:   egg.ShownOn(ctx.Grid),
	}
	if egg.Placed {
		view.Pos = &api.PosView{X: egg.Pos.X, Y: egg.Pos.Y}
	}
	return view
}

// ToEggViews конвертирует весь реестр (в порядке регистрации).
func ToEggViews(ctx Context) []api.EggView {
	eggs := ctx.Eggs.All()
	views := make([]api.EggView, 0, len(eggs))
	for _, egg := range eggs {
		views = append(views, ToEggView(ctx, egg))
	}
	return views
}

// ToIconViews конвертирует реестр иконок.
func ToIconViews(icons *domain.IconRegistry) []api.IconView {
	all := icons.All()
	views := make([]api.IconView, 0, len(all))
	for _, ic := range all {
		views = append(views, api.IconView{
			Name:    ic.Name,
			URL:     ic.URL,
			Size:    ic.Size,
			Anchor:  ic.Anchor,
			IsFound: ic.IsFound,
		})
	}
	return views
}

// ToViewportView конвертирует вьюпорт.
func ToViewportView(v domain.Viewport) *api.ViewportView {
	return &api.ViewportView{X: v.X, Y: v.Y, Zoom: v.Zoom}
}
