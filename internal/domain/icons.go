package domain

import "fmt"

// Icon - описание картинки маркера для клиента. Ядро не проверяет,
// что файл существует, оно только строит ссылку по конвенции.
type Icon struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Size    int    `json:"size"`   // квадрат, пикселей
	Anchor  int    `json:"anchor"` // смещение точки привязки от левого верхнего угла
	IsFound bool   `json:"isFound"`
}

// IconPath строит путь к ассету по имени: icons/<name>.png.
// Единственный параметр конвенции - имя (плюс суффикс found-варианта).
func IconPath(name string) string {
	return "icons/" + name + ".png"
}

// IconRegistry - кэш пар иконок (обычная + found) по имени.
// Реестр принадлежит виджету, а не пакету: глобального мутабельного
// состояния здесь нет, в тестах каждый создает свой.
// Вытеснения нет - набор имен в приложении маленький и фиксированный.
type IconRegistry struct {
	icons map[string]Icon
	names []string // имена без суффикса, в порядке первого Ensure
}

func NewIconRegistry() *IconRegistry {
	return &IconRegistry{icons: make(map[string]Icon)}
}

// Ensure идемпотентно создает обе иконки для имени: под ключом name
// обычную и под name+"-found" - найденный вариант. Возвращает базовую.
func (r *IconRegistry) Ensure(name string) Icon {
	if ic, ok := r.icons[name]; ok {
		return ic
	}
	base := Icon{
		Name:   name,
		URL:    IconPath(name),
		Size:   IconSizePx,
		Anchor: IconSizePx / 2,
	}
	r.icons[name] = base
	found := name + FoundSuffix
	r.icons[found] = Icon{
		Name:    found,
		URL:     IconPath(found),
		Size:    IconSizePx,
		Anchor:  IconSizePx / 2,
		IsFound: true,
	}
	r.names = append(r.names, name)
	return base
}

// Get возвращает иконку по точному ключу (включая "-found" варианты).
// Для имени, по которому Ensure не звали, - ErrNotFound.
func (r *IconRegistry) Get(key string) (Icon, error) {
	ic, ok := r.icons[key]
	if !ok {
		return Icon{}, fmt.Errorf("icon %q: %w", key, ErrNotFound)
	}
	return ic, nil
}

// All - все иконки в порядке регистрации имен, обычная перед found.
func (r *IconRegistry) All() []Icon {
	out := make([]Icon, 0, len(r.icons))
	for _, name := range r.names {
		out = append(out, r.icons[name], r.icons[name+FoundSuffix])
	}
	return out
}

// Len - количество ключей в кэше (по два на имя).
func (r *IconRegistry) Len() int {
	return len(r.icons)
}
