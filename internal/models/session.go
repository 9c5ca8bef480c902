package models

// Session — серверное состояние одной браузерной сессии.
// Хранится в Redis в JSON-виде, время жизни равно времени жизни куки.
// Cart — упорядоченный список снимков товаров: дубликаты допустимы,
// количество не агрегируется.
type Session struct {
	UserUID string    `json:"user_uid"`
	Email   string    `json:"email"`
	Roles   []string  `json:"roles"`
	Cart    []Product `json:"cart,omitempty"`
}
