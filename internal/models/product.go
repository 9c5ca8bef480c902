// Package models содержит доменные структуры каталога товаров и учётных записей,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Product представляет товар каталога,
// используемый в бизнес-логике, хранилище и корзине сессии.
type Product struct {
	ID    string  `json:"id"`    // Уникальный идентификатор товара (uuid)
	Name  string  `json:"name"`  // Название товара
	Price float64 `json:"price"` // Цена товара
}

// DummyProduct используется для приёма данных товара из JSON-запроса,
// прежде чем конвертировать их в Product. Нулевая цена допустима.
type DummyProduct struct {
	Name  string  `json:"name" validate:"required"` // Название товара
	Price float64 `json:"price" validate:"gte=0"`   // Цена (>= 0)
}
