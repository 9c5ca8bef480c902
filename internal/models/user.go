// Package models содержит доменную модель учётной записи системы,
// включающую данные профиля, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли, известные приложению. Список ролей в базе может быть шире,
// эти три участвуют в маршрутизации после входа и контроле доступа.
const (
	RoleUser       = "User"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// User представляет зарегистрированную учётную запись.
// Набор ролей хранится отдельно (таблица членства) и загружается по запросу.
type User struct {
	UID          string    // Уникальный идентификатор учётной записи
	Email        string    // Электронная почта, используется как логин
	FirstName    string    // Имя
	LastName     string    // Фамилия
	PasswordHash string    // Хэш пароля
	CreatedAt    time.Time // Дата создания записи
}

// AccountInfo — проекция учётной записи для списков управления,
// роли объединены в одну строку через ", ".
type AccountInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Roles     string `json:"roles"`
}
