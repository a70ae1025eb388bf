package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo reads billing identities.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, email, phone, address_line1, address_line2,
	city, state, postal_code, country_id, tax_id, created_at, updated_at`

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var nullable [9]*string
	err := row.Scan(
		&c.ID, &c.Name, &nullable[0], &nullable[1], &nullable[2], &nullable[3],
		&nullable[4], &nullable[5], &nullable[6], &nullable[7], &nullable[8],
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Email = deref(nullable[0])
	c.Phone = deref(nullable[1])
	c.AddressLine1 = deref(nullable[2])
	c.AddressLine2 = deref(nullable[3])
	c.City = deref(nullable[4])
	c.State = deref(nullable[5])
	c.PostalCode = deref(nullable[6])
	c.CountryID = deref(nullable[7])
	c.TaxID = deref(nullable[8])
	return &c, nil
}
