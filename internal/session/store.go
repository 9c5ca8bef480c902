// Package session реализует серверное хранилище cookie-сессий на основе Redis.
// В куке передаётся только непрозрачный идентификатор, само состояние сессии
// (учётная запись, роли, корзина) лежит в Redis в JSON-виде и исчезает
// по истечении TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/product-management/internal/config"
	"github.com/magabrotheeeer/product-management/internal/models"
)

// ErrSessionNotFound возвращается, когда сессия отсутствует или истекла.
var ErrSessionNotFound = errors.New("session not found")

// Store инкапсулирует соединение с Redis и время жизни сессий.
type Store struct {
	Db  *redis.Client
	TTL time.Duration
}

// InitServer создаёт подключение к Redis и проверяет его доступность.
func InitServer(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "session.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db, TTL: ttl}, nil
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.Db.Close()
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create сохраняет новую сессию и возвращает её идентификатор.
func (s *Store) Create(ctx context.Context, sess models.Session) (string, error) {
	const op = "session.Create"
	id := uuid.New().String()
	if err := s.write(ctx, id, sess); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Get возвращает сессию по идентификатору или ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	const op = "session.Get"
	val, err := s.Db.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var sess models.Session
	if err = json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// Save перезаписывает состояние сессии и продлевает её TTL.
// Чтение-изменение-запись не защищено блокировкой: конкурентные запросы
// одной сессии работают по принципу "последняя запись побеждает".
func (s *Store) Save(ctx context.Context, id string, sess models.Session) error {
	const op = "session.Save"
	if err := s.write(ctx, id, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Destroy удаляет сессию. Отсутствующая сессия ошибкой не считается.
func (s *Store) Destroy(ctx context.Context, id string) error {
	const op = "session.Destroy"
	if err := s.Db.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, id string, sess models.Session) error {
	jsonData, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Db.Set(ctx, sessionKey(id), jsonData, s.TTL).Err()
}
