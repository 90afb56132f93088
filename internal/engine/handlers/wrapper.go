package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// TypedHandlerFunc - "чистый" хендлер, работающий с уже разобранной структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер, которому payload не нужен вовсе (REVEAL_ALL, HIDE_ALL)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload превращает типизированный хендлер в стандартный HandlerFunc,
// забирая на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		var payload T

		// 1. Распаковка JSON. Отсутствующий payload - это нулевая структура:
		// INIT, например, приходит и вовсе без данных.
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				return Result{}, fmt.Errorf("invalid payload format: %w", err)
			}
		}

		// 2. Валидация, если структура T умеет себя проверять
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		// 3. Сама логика
		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных. Входящий JSON
// игнорируется целиком, даже если клиент что-то прислал.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}
