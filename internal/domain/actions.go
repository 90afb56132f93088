package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionToggleTile
	ActionRevealAll
	ActionHideAll
	ActionShowAllEggs
	ActionHideAllEggs
	ActionConfirm
	ActionCancel
	ActionEggsUpdated
	ActionEggDClick
	ActionGotoQuadrant
	ActionGotoTile
	ActionViewSettled
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":          ActionInit,
	"TOGGLE_TILE":   ActionToggleTile,
	"REVEAL_ALL":    ActionRevealAll,
	"HIDE_ALL":      ActionHideAll,
	"SHOW_ALL_EGGS": ActionShowAllEggs,
	"HIDE_ALL_EGGS": ActionHideAllEggs,
	"CONFIRM":       ActionConfirm,
	"CANCEL":        ActionCancel,
	"EGGS_UPDATED":  ActionEggsUpdated,
	"EGG_DCLICK":    ActionEggDClick,
	"GOTO_QUADRANT": ActionGotoQuadrant,
	"GOTO_TILE":     ActionGotoTile,
	"VIEW_SETTLED":  ActionViewSettled,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Нечувствительность к регистру - для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// Destructive сообщает, требует ли действие явного подтверждения
// пользователя перед выполнением.
func (a ActionType) Destructive() bool {
	switch a {
	case ActionRevealAll, ActionHideAll, ActionShowAllEggs, ActionHideAllEggs:
		return true
	}
	return false
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
