package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/ordersync"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/repository"
)

var _ ordersync.TxRunner = (*TxRunner)(nil)

// TxRunner esegue callback dentro una transazione PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner costruisce il runner con il pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrderSync apre una transazione, esegue fn con i repo legati alla tx e fa
// Commit o Rollback. Usato per registrare la consegna webhook e aggiornare
// l'ordine in modo atomico.
func (r *TxRunner) RunOrderSync(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	eventRepo repository.WebhookEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	eventRepo := NewWebhookEventRepository(tx)

	if err := fn(orderRepo, eventRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
