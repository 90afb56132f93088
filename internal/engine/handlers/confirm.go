package handlers

import (
	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/pkg/utils"
)

// PendingConfirm - разрушительное действие, отложенное до подтверждения.
type PendingConfirm struct {
	ID     string
	Action domain.ActionType
	Prompt string
}

// ConfirmBroker держит максимум одно отложенное действие.
// Новый запрос вытесняет старый: два открытых вопроса пользователю
// не нужны, актуален всегда последний. Живет на горутине сервиса,
// поэтому обходится без блокировок.
type ConfirmBroker struct {
	pending *PendingConfirm
}

func NewConfirmBroker() *ConfirmBroker {
	return &ConfirmBroker{}
}

// Request откладывает действие и выдает одноразовый токен.
func (b *ConfirmBroker) Request(action domain.ActionType, prompt string) PendingConfirm {
	b.pending = &PendingConfirm{
		ID:     utils.GenerateID(),
		Action: action,
		Prompt: prompt,
	}
	return *b.pending
}

// Take забирает отложенное действие по токену. Токен одноразовый:
// после Take повторное подтверждение уже не сработает.
func (b *ConfirmBroker) Take(id string) (PendingConfirm, bool) {
	if b.pending == nil || b.pending.ID != id {
		return PendingConfirm{}, false
	}
	p := *b.pending
	b.pending = nil
	return p, true
}

// Cancel снимает отложенное действие. Незнакомый или устаревший токен -
// не ошибка: отказ от уже вытесненного вопроса ничего не ломает.
func (b *ConfirmBroker) Cancel(id string) {
	if b.pending != nil && b.pending.ID == id {
		b.pending = nil
	}
}
