package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementazione di OrderRepository (usabile con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByWooID restituisce l'ordine con le sue righe, nil se assente.
func (r *OrderRepo) GetByWooID(wooID int64) (*entity.Order, error) {
	const query = `
		SELECT id, woo_id, customer_id, status, currency,
		       billing_first_name, billing_last_name, billing_company,
		       billing_address_1, billing_address_2, billing_city, billing_state,
		       billing_postcode, billing_country, billing_email,
		       fiscal_code, company_tax_code, invoice_id,
		       date_paid, date_completed, created_at, updated_at
		FROM orders WHERE woo_id = $1`
	var o entity.Order
	var fiscalCode, companyTaxCode *string
	err := r.q.QueryRow(context.Background(), query, wooID).Scan(
		&o.ID, &o.WooID, &o.CustomerID, &o.Status, &o.Currency,
		&o.Billing.FirstName, &o.Billing.LastName, &o.Billing.Company,
		&o.Billing.Address1, &o.Billing.Address2, &o.Billing.City, &o.Billing.State,
		&o.Billing.Postcode, &o.Billing.Country, &o.Billing.Email,
		&fiscalCode, &companyTaxCode, &o.InvoiceID,
		&o.DatePaid, &o.DateCompleted, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if fiscalCode != nil {
		o.FiscalCode = *fiscalCode
	}
	if companyTaxCode != nil {
		o.CompanyTaxCode = *companyTaxCode
	}

	items, err := r.itemsByOrderID(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) itemsByOrderID(orderID string) ([]entity.OrderItem, error) {
	const query = `
		SELECT id, sku, name, quantity, net_price, gross_price, tax_code
		FROM order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Quantity, &it.NetPrice, &it.GrossPrice, &it.TaxCode); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Upsert inserisce o aggiorna l'ordine per woo_id e sostituisce le righe.
// invoice_id non viene mai toccato: si scrive solo via SetInvoiceID.
func (r *OrderRepo) Upsert(order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	const query = `
		INSERT INTO orders (
			id, woo_id, customer_id, status, currency,
			billing_first_name, billing_last_name, billing_company,
			billing_address_1, billing_address_2, billing_city, billing_state,
			billing_postcode, billing_country, billing_email,
			fiscal_code, company_tax_code,
			date_paid, date_completed, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (woo_id) DO UPDATE SET
			customer_id        = EXCLUDED.customer_id,
			status             = EXCLUDED.status,
			currency           = EXCLUDED.currency,
			billing_first_name = EXCLUDED.billing_first_name,
			billing_last_name  = EXCLUDED.billing_last_name,
			billing_company    = EXCLUDED.billing_company,
			billing_address_1  = EXCLUDED.billing_address_1,
			billing_address_2  = EXCLUDED.billing_address_2,
			billing_city       = EXCLUDED.billing_city,
			billing_state      = EXCLUDED.billing_state,
			billing_postcode   = EXCLUDED.billing_postcode,
			billing_country    = EXCLUDED.billing_country,
			billing_email      = EXCLUDED.billing_email,
			fiscal_code        = EXCLUDED.fiscal_code,
			company_tax_code   = EXCLUDED.company_tax_code,
			date_paid          = EXCLUDED.date_paid,
			date_completed     = EXCLUDED.date_completed,
			updated_at         = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		order.ID, order.WooID, order.CustomerID, order.Status, order.Currency,
		order.Billing.FirstName, order.Billing.LastName, order.Billing.Company,
		order.Billing.Address1, order.Billing.Address2, order.Billing.City, order.Billing.State,
		order.Billing.Postcode, order.Billing.Country, order.Billing.Email,
		nullIfEmpty(order.FiscalCode), nullIfEmpty(order.CompanyTaxCode),
		order.DatePaid, order.DateCompleted, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	// Righe: delete + insert, il payload webhook è sempre lo stato completo.
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	const insertItem = `
		INSERT INTO order_items (id, order_id, position, sku, name, quantity, net_price, gross_price, tax_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	for i := range order.Items {
		it := &order.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		if _, err := r.q.Exec(context.Background(), insertItem,
			it.ID, order.ID, i, it.SKU, it.Name, it.Quantity, it.NetPrice, it.GrossPrice, it.TaxCode,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// SetInvoiceID scrive l'id fattura solo se non già presente.
// Il WHERE invoice_id IS NULL rende la scrittura idempotente anche con
// trigger concorrenti (webhook e azione manuale sullo stesso ordine).
func (r *OrderRepo) SetInvoiceID(wooID int64, invoiceID int64) (bool, error) {
	const query = `
		UPDATE orders SET invoice_id = $2, updated_at = $3
		WHERE woo_id = $1 AND invoice_id IS NULL`
	tag, err := r.q.Exec(context.Background(), query, wooID, invoiceID, time.Now())
	if err != nil {
		return false, fmt.Errorf("set invoice id: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
