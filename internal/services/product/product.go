// Package services содержит бизнес-логику для управления каталогом товаров.
// Слой намеренно тонкий: проверок сверх того, что обеспечивает хранилище, нет,
// операции не координируются транзакциями между собой.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-management/internal/models"
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	// CreateProduct добавляет новый товар и возвращает его ID.
	CreateProduct(ctx context.Context, product models.Product) (string, error)
	// UpdateProduct заменяет товар по ID, возвращает количество обновлённых строк.
	UpdateProduct(ctx context.Context, product models.Product) (int, error)
	// RemoveProduct удаляет товар по ID, возвращает количество удалённых строк.
	RemoveProduct(ctx context.Context, id string) (int, error)
	// GetProduct возвращает товар по ID.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	// ListProducts возвращает все товары каталога.
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

// ProductService реализует операции каталога поверх хранилища.
type ProductService struct {
	repo ProductRepository
	log  *slog.Logger
}

// NewProductService создает новый экземпляр ProductService.
func NewProductService(repo ProductRepository, log *slog.Logger) *ProductService {
	return &ProductService{
		repo: repo,
		log:  log,
	}
}

// Create добавляет товар в каталог и возвращает его ID.
func (s *ProductService) Create(ctx context.Context, req models.DummyProduct) (string, error) {
	const op = "product.Create"
	product := models.Product{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Price: req.Price,
	}
	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Update заменяет товар по ID. Отсутствующий ID даёт ноль обновлённых строк.
func (s *ProductService) Update(ctx context.Context, id string, req models.DummyProduct) (int, error) {
	const op = "product.Update"
	product := models.Product{
		ID:    id,
		Name:  req.Name,
		Price: req.Price,
	}
	count, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// Remove удаляет товар по ID. Операция идемпотентна:
// повторное удаление возвращает ноль строк без ошибки.
func (s *ProductService) Remove(ctx context.Context, id string) (int, error) {
	const op = "product.Remove"
	count, err := s.repo.RemoveProduct(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// Get возвращает товар по ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// List возвращает все товары каталога.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx)
}
