package repository

import (
	"context"
	"fmt"
)

// GetUserRoles возвращает имена ролей учётной записи.
// Для отсутствующей записи возвращается пустой список.
func (s *Storage) GetUserRoles(ctx context.Context, userUID string) ([]string, error) {
	const op = "storage.GetUserRoles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT role_name
			  FROM user_roles
			  WHERE user_uid = $1
			  ORDER BY role_name`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var roles []string
	for rows.Next() {
		var role string
		if err = rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return roles, nil
}

// AddUserToRole добавляет учётную запись в роль.
func (s *Storage) AddUserToRole(ctx context.Context, userUID, role string) error {
	const op = "storage.AddUserToRole"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_roles (user_uid, role_name)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userUID, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceUserRoles транзакционно удаляет все текущие роли учётной записи
// и назначает единственную новую. Многоролевая запись схлопывается до одной роли.
func (s *Storage) ReplaceUserRoles(ctx context.Context, userUID, role string) error {
	const op = "storage.ReplaceUserRoles"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_uid = $1`, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_roles (user_uid, role_name) VALUES ($1, $2)`,
		userUID, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRoleNames возвращает имена всех ролей, известных хранилищу.
func (s *Storage) ListRoleNames(ctx context.Context) ([]string, error) {
	const op = "storage.ListRoleNames"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT name FROM roles ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}
