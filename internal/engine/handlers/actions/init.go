package actions

import (
	"net/url"
	"strings"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/internal/engine/handlers"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

// HandleInit отдает новой вкладке полный снимок виджета.
// Payload может принести location.search страницы: если там есть осмысленные
// x/y/z, они становятся текущим вьюпортом (открыли ссылку на место - карта
// стартует с этого места).
func HandleInit(ctx handlers.Context, p api.InitPayload) (handlers.Result, error) {
	if p.Query != "" {
		// location.search приходит с ведущим "?", ParseQuery его не ждет
		values, err := url.ParseQuery(strings.TrimPrefix(p.Query, "?"))
		if err != nil {
			// Кривой query не повод ронять INIT: остаемся на текущем вьюпорте
			logger.Log.WithError(err).Debug("INIT query unparsable, keeping current viewport")
		} else if vp, ok := domain.ParseViewport(values); ok {
			*ctx.View = vp
		}
	}

	return handlers.Result{Reply: handlers.BuildState(ctx)}, nil
}
