// Package repository реализует хранилище данных на основе PostgreSQL
// для каталога товаров и учётных записей. Предоставляет методы
// создания, чтения, обновления и удаления записей, а также
// работу с ролями и членством учётных записей в ролях.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrProductNotFound возвращается при чтении отсутствующего товара.
var ErrProductNotFound = errors.New("product not found")

// ErrAccountNotFound возвращается при операции над отсутствующей учётной записью.
var ErrAccountNotFound = errors.New("account not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с товарами и учётными записями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'products'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table products missing or query error: %w", err)
	}
	return nil
}
