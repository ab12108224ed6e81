package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/medidesk/internal/authz"
	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

// ProductService manages user/product links.
type ProductService interface {
	// ListActive returns the non-removed links of userID.
	ListActive(ctx context.Context, userID int64) ([]model.UserProduct, error)
	// Link attaches productID to userID.
	Link(ctx context.Context, userID, productID int64) (*model.UserProduct, error)
	// Unlink soft-deletes a link after checking it belongs to userID.
	Unlink(ctx context.Context, userID, userProductID int64) error
}

type ProductServiceImpl struct {
	products repository.UserProductRepository
	guard    *authz.Guard
}

// NewProductService constructs ProductService.
func NewProductService(products repository.UserProductRepository, guard *authz.Guard) *ProductServiceImpl {
	return &ProductServiceImpl{products: products, guard: guard}
}

func (s *ProductServiceImpl) ListActive(ctx context.Context, userID int64) ([]model.UserProduct, error) {
	return s.products.ListActive(ctx, userID)
}

func (s *ProductServiceImpl) Link(ctx context.Context, userID, productID int64) (*model.UserProduct, error) {
	if userID <= 0 || productID <= 0 {
		return nil, fmt.Errorf("%w: userId/productId", errs.ErrBadRequest)
	}
	return s.products.Link(ctx, userID, productID)
}

func (s *ProductServiceImpl) Unlink(ctx context.Context, userID, userProductID int64) error {
	if _, err := s.guard.UserProduct(ctx, userID, userProductID); err != nil {
		return err
	}
	return s.products.SoftDelete(ctx, userID, userProductID)
}

// NumberService manages user phone numbers.
type NumberService interface {
	// List returns the numbers of userID.
	List(ctx context.Context, userID int64) ([]model.UserNumber, error)
	// Add registers a number for userID.
	Add(ctx context.Context, userID int64, number, label string) (*model.UserNumber, error)
	// Delete removes a number after checking it belongs to userID.
	Delete(ctx context.Context, userID, numberID int64) error
}

type NumberServiceImpl struct {
	numbers repository.NumberRepository
	guard   *authz.Guard
}

// NewNumberService constructs NumberService.
func NewNumberService(numbers repository.NumberRepository, guard *authz.Guard) *NumberServiceImpl {
	return &NumberServiceImpl{numbers: numbers, guard: guard}
}

func (s *NumberServiceImpl) List(ctx context.Context, userID int64) ([]model.UserNumber, error) {
	return s.numbers.ListByUser(ctx, userID)
}

func (s *NumberServiceImpl) Add(ctx context.Context, userID int64, number, label string) (*model.UserNumber, error) {
	number = strings.TrimSpace(number)
	if userID <= 0 || number == "" {
		return nil, fmt.Errorf("%w: number", errs.ErrBadRequest)
	}
	n := &model.UserNumber{UserID: userID, Number: number, Label: strings.TrimSpace(label)}
	if err := s.numbers.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NumberServiceImpl) Delete(ctx context.Context, userID, numberID int64) error {
	if _, err := s.guard.UserNumber(ctx, userID, numberID); err != nil {
		return err
	}
	return s.numbers.Delete(ctx, userID, numberID)
}
