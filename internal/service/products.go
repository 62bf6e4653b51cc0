package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// ProductService provides product-related operations.
type ProductService interface {
	Save(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	GetByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, limit int) ([]model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductServiceImpl implements ProductService.
type ProductServiceImpl struct {
	productRepo repository.ProductRepositoryInterface
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepositoryInterface) ProductService {
	if productRepo == nil {
		return &ProductServiceImpl{}
	}
	return &ProductServiceImpl{
		productRepo: productRepo,
	}
}

func (s *ProductServiceImpl) Save(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.productRepo.Upsert(ctx, product)
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	if s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.productRepo.FindByID(ctx, id)
}

func (s *ProductServiceImpl) GetByName(ctx context.Context, name string) (*model.Product, error) {
	if s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.productRepo.FindByName(ctx, name)
}

func (s *ProductServiceImpl) List(ctx context.Context, limit int) ([]model.Product, error) {
	if s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.productRepo.List(ctx, limit)
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if s.productRepo == nil {
		return ErrRepositoryNotConfigured
	}
	return s.productRepo.Delete(ctx, id)
}
