package value

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ItemProperties — свободный набор свойств из sell.data.properties ордера.
// Маркетплейс не гарантирует ни состав ключей, ни типы значений.
type ItemProperties map[string]any

// String возвращает строковое значение ключа. Отсутствующее, нестроковое
// или пустое значение заменяется на def.
func (p ItemProperties) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}

	return s
}

// Bool трактует значение ключа как флаг: bool как есть, строки — через
// strconv.ParseBool. Всё остальное — false.
func (p ItemProperties) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.ToLower(v))
		return err == nil && b
	default:
		return false
	}
}

// Int возвращает целое значение ключа или nil, если оно отсутствует либо
// не парсится.
func (p ItemProperties) Int(key string) *int {
	switch v := p[key].(type) {
	case float64:
		n := int(v)
		return &n
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil
		}
		n := int(i)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}
