package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

var _ repository.CountryRepository = (*CountryRepo)(nil)

// CountryRepo reads jurisdiction records.
type CountryRepo struct {
	q Querier
}

// NewCountryRepository builds the adapter. Pass pool or tx (Querier).
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{q: q}
}

const countryColumns = `id, code, name, currency_code, currency_symbol, currency_name`

func (r *CountryRepo) GetByID(ctx context.Context, id string) (*entity.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE id = $1`
	c, err := scanCountry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get country: %w", err)
	}
	return c, nil
}

func (r *CountryRepo) List(ctx context.Context) ([]*entity.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var out []*entity.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCountry(row pgx.Row) (*entity.Country, error) {
	var c entity.Country
	var code, symbol, name *string
	err := row.Scan(&c.ID, &c.Code, &c.Name, &code, &symbol, &name)
	if err != nil {
		return nil, err
	}
	c.CurrencyCode = deref(code)
	c.CurrencySymbol = deref(symbol)
	c.CurrencyName = deref(name)
	return &c, nil
}
