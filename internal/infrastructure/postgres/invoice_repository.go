package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo persists invoices on PostgreSQL. Header and items are written
// inside one transaction so a failed item insert never leaves a header
// holding a reserved number.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository builds the adapter.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// withTx runs fn inside a transaction with rollback on error.
func (r *InvoiceRepo) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const invoiceColumns = `id, invoice_number, status, payment_status, invoice_date, due_date,
	customer_id, notes, terms_conditions, currency_code,
	subtotal, tax_amount, total_amount, is_deleted, created_at, updated_at`

// Create persists the header and its items atomically.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO invoices (` + invoiceColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
		_, err := tx.Exec(ctx, query,
			inv.ID, inv.InvoiceNumber, inv.Status, inv.PaymentStatus,
			inv.InvoiceDate, inv.DueDate, inv.CustomerID,
			nullIfEmpty(inv.Notes), nullIfEmpty(inv.TermsConditions), inv.CurrencyCode,
			inv.Subtotal, inv.TaxAmount, inv.TotalAmount,
			inv.IsDeleted, inv.CreatedAt, inv.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert invoice: %w", err)
		}
		return r.insertItems(ctx, tx, inv)
	})
}

// Update overwrites header fields and replaces the item set. The invoice
// number column is deliberately absent from the SET list.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE invoices
			SET customer_id = $2, invoice_date = $3, due_date = $4,
			    notes = $5, terms_conditions = $6, currency_code = $7,
			    subtotal = $8, tax_amount = $9, total_amount = $10,
			    updated_at = $11
			WHERE id = $1 AND is_deleted = false`
		tag, err := tx.Exec(ctx, query,
			inv.ID, inv.CustomerID, inv.InvoiceDate, inv.DueDate,
			nullIfEmpty(inv.Notes), nullIfEmpty(inv.TermsConditions), inv.CurrencyCode,
			inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("clear invoice items: %w", err)
		}
		return r.insertItems(ctx, tx, inv)
	})
}

func (r *InvoiceRepo) insertItems(ctx context.Context, tx pgx.Tx, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, item_name, description, quantity, unit,
			unit_price, tax_rate, product_id, hsn_code, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range inv.Items {
		_, err := tx.Exec(ctx, query,
			it.ID, inv.ID, it.ItemName, it.Description, it.Quantity,
			nullIfEmpty(it.Unit), it.UnitPrice, it.TaxRate,
			nullIfEmpty(it.ProductID), nullIfEmpty(it.HSNCode), it.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID returns one invoice with its items, or nil when absent.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByNumber is the exact-match uniqueness probe used by number reservation.
// It sees soft-deleted rows too: a cancelled invoice still owns its number.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	return r.getBy(ctx, "invoice_number = $1", number)
}

func (r *InvoiceRepo) getBy(ctx context.Context, where string, arg any) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where
	row := r.pool.QueryRow(ctx, query, arg)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID string) ([]entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, item_name, description, quantity, unit,
		       unit_price, tax_rate, product_id, hsn_code, sort_order
		FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		var unit, productID, hsn *string
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.ItemName, &it.Description, &it.Quantity, &unit,
			&it.UnitPrice, &it.TaxRate, &productID, &hsn, &it.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.Unit = deref(unit)
		it.ProductID = deref(productID)
		it.HSNCode = deref(hsn)
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns a page of invoices (headers only) plus the unpaged total.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter, page, pageSize int) ([]*entity.Invoice, int64, error) {
	where := "is_deleted = false"
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND invoice_number ILIKE $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM invoices WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
		SELECT `+invoiceColumns+`
		FROM invoices WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

// UpdateStatus sets the document status and, when paymentStatus is non-empty,
// the payment sub-state in the same statement.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status, paymentStatus string) error {
	query := `
		UPDATE invoices
		SET status = $2,
		    payment_status = COALESCE($3, payment_status),
		    updated_at = now()
		WHERE id = $1 AND is_deleted = false`
	tag, err := r.pool.Exec(ctx, query, id, status, nullIfEmpty(paymentStatus))
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete is soft: the row is flagged and cancelled, never removed. The
// invoice number stays claimed so reservation probes keep seeing it.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE invoices
		SET is_deleted = true, status = $2, updated_at = now()
		WHERE id = $1 AND is_deleted = false`
	tag, err := r.pool.Exec(ctx, query, id, entity.StatusCancelled)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var notes, terms *string
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Status, &inv.PaymentStatus,
		&inv.InvoiceDate, &inv.DueDate, &inv.CustomerID,
		&notes, &terms, &inv.CurrencyCode,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount,
		&inv.IsDeleted, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Notes = deref(notes)
	inv.TermsConditions = deref(terms)
	return &inv, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
