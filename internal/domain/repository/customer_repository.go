package repository

import (
	"context"

	"github.com/kdadks/billing-api/internal/domain/entity"
)

// CustomerRepository is the read port for billing identities. Customers are
// managed elsewhere; the billing core only reads them.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}

// ProductRepository reads catalog entries used to pre-fill item fields.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}

// CountryRepository reads jurisdiction records.
type CountryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Country, error)
	List(ctx context.Context) ([]*entity.Country, error)
}
