// Package authz verifies that scoped resources belong to the effective user
// before they are read or mutated.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository"
)

// Guard loads scoped resources and checks owner and removal marker.
type Guard struct {
	products repository.UserProductRepository
	numbers  repository.NumberRepository
}

// NewGuard constructs a Guard over the scoped repositories.
func NewGuard(products repository.UserProductRepository, numbers repository.NumberRepository) *Guard {
	return &Guard{products: products, numbers: numbers}
}

// Authorize returns the resource when it exists, is not soft-deleted and is
// owned by effectiveUserID. Every other outcome is errs.ErrNotFound, so callers
// cannot tell a foreign record from a missing one.
func (g *Guard) Authorize(ctx context.Context, effectiveUserID int64, typ model.ResourceType, id int64) (model.ScopedResource, error) {
	var (
		res model.ScopedResource
		err error
	)
	switch typ {
	case model.ResourceUserProduct:
		res, err = g.UserProduct(ctx, effectiveUserID, id)
	case model.ResourceUserNumber:
		res, err = g.UserNumber(ctx, effectiveUserID, id)
	default:
		return nil, fmt.Errorf("resource type %q: %w", typ, errs.ErrBadRequest)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UserProduct authorizes an active user-product link.
func (g *Guard) UserProduct(ctx context.Context, effectiveUserID, id int64) (*model.UserProduct, error) {
	p, err := g.products.Get(ctx, id)
	if err := check(p, err, effectiveUserID); err != nil {
		return nil, err
	}
	return p, nil
}

// UserNumber authorizes a phone number.
func (g *Guard) UserNumber(ctx context.Context, effectiveUserID, id int64) (*model.UserNumber, error) {
	n, err := g.numbers.Get(ctx, id)
	if err := check(n, err, effectiveUserID); err != nil {
		return nil, err
	}
	return n, nil
}

func check[T model.ScopedResource](res T, err error, effectiveUserID int64) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("authorize: %w", err)
	}
	if res.SoftDeleted() || res.OwnerID() != effectiveUserID {
		return errs.ErrNotFound
	}
	return nil
}
