package repository

import "github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"

// OrderRepository persistenza degli ordini sincronizzati dallo store.
type OrderRepository interface {
	// GetByWooID restituisce l'ordine per id WooCommerce, nil se assente.
	GetByWooID(wooID int64) (*entity.Order, error)

	// Upsert inserisce o aggiorna l'ordine e le sue righe. Non tocca mai
	// l'invoice_id già presente.
	Upsert(order *entity.Order) error

	// SetInvoiceID scrive l'id fattura solo se l'ordine non ne ha già uno.
	// Restituisce false se un id era già presente (scrittura persa di
	// proposito: l'invariante è al più una fattura per ordine).
	SetInvoiceID(wooID int64, invoiceID int64) (bool, error)
}

// WebhookEventRepository registro delle consegne webhook già elaborate.
type WebhookEventRepository interface {
	// MarkProcessed registra il delivery id; restituisce false se la consegna
	// era già stata elaborata (duplicato da sopprimere).
	MarkProcessed(deliveryID, topic string) (bool, error)
}
