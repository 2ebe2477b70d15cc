package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/repository"
)

var _ repository.WebhookEventRepository = (*WebhookEventRepo)(nil)

// WebhookEventRepo registro delle consegne webhook elaborate (dedup).
type WebhookEventRepo struct {
	q Querier
}

// NewWebhookEventRepository costruisce l'adapter.
func NewWebhookEventRepository(q Querier) *WebhookEventRepo {
	return &WebhookEventRepo{q: q}
}

// MarkProcessed registra il delivery id. WooCommerce riconsegna i webhook in
// caso di timeout: il vincolo unico su delivery_id fa da soppressore di
// duplicati senza lock applicativi.
func (r *WebhookEventRepo) MarkProcessed(deliveryID, topic string) (bool, error) {
	const query = `
		INSERT INTO webhook_events (id, delivery_id, topic, received_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		uuid.New().String(), deliveryID, topic, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert webhook event: %w", err)
	}
	return true, nil
}
