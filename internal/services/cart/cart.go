// Package services содержит бизнес-логику корзины, живущей в сессии.
// Корзина — упорядоченный список снимков товаров под ключом сессии:
// дубликаты допустимы, количество не агрегируется, создаётся лениво
// при первом добавлении и исчезает вместе с сессией.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/product-management/internal/models"
)

// SessionStore описывает операции над серверным состоянием сессии.
type SessionStore interface {
	// Get возвращает сессию по идентификатору.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Save перезаписывает состояние сессии.
	Save(ctx context.Context, id string, sess models.Session) error
}

// ProductReader возвращает товар по ID для снимка в корзину.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// CartService реализует добавление и чтение корзины сессии.
// Чтение-изменение-запись без блокировок: конкурентные запросы одной сессии
// могут терять обновления, компенсация не предусмотрена.
type CartService struct {
	sessions SessionStore
	products ProductReader
	log      *slog.Logger
}

// NewCartService создает новый экземпляр CartService.
func NewCartService(sessions SessionStore, products ProductReader, log *slog.Logger) *CartService {
	return &CartService{
		sessions: sessions,
		products: products,
		log:      log,
	}
}

// Add добавляет снимок товара в корзину сессии и возвращает добавленный товар.
func (s *CartService) Add(ctx context.Context, sessionID, productID string) (*models.Product, error) {
	const op = "cart.Add"
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sess.Cart = append(sess.Cart, *product)
	if err = s.sessions.Save(ctx, sessionID, *sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// Items возвращает содержимое корзины, пустой список — если корзины ещё нет.
func (s *CartService) Items(ctx context.Context, sessionID string) ([]models.Product, error) {
	const op = "cart.Items"
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess.Cart == nil {
		return []models.Product{}, nil
	}
	return sess.Cart, nil
}
