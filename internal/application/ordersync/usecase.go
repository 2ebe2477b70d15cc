package ordersync

import (
	"context"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/repository"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// TxRunner esegue una funzione dentro una transazione con i repo di sync.
type TxRunner interface {
	RunOrderSync(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		eventRepo repository.WebhookEventRepository,
	) error) error
}

// UseCase sincronizza lo stato degli ordini ricevuto via webhook.
type UseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(txRunner TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, log: log}
}

// Processa registra la consegna e aggiorna l'ordine in un'unica transazione.
// Restituisce true se la consegna è nuova, false se era un duplicato (in tal
// caso l'ordine non viene toccato).
func (uc *UseCase) Processa(ctx context.Context, deliveryID, topic string, order *entity.Order) (bool, error) {
	if order == nil || order.WooID == 0 {
		return false, domain.ErrInvalidInput
	}

	nuova := true
	err := uc.txRunner.RunOrderSync(ctx, func(
		orderRepo repository.OrderRepository,
		eventRepo repository.WebhookEventRepository,
	) error {
		if deliveryID != "" {
			ok, err := eventRepo.MarkProcessed(deliveryID, topic)
			if err != nil {
				return err
			}
			if !ok {
				nuova = false
				return nil
			}
		}
		return orderRepo.Upsert(order)
	})
	if err != nil {
		return false, err
	}
	if !nuova {
		uc.log.Debug().
			Str("delivery_id", deliveryID).
			Int64("woo_id", order.WooID).
			Msg("webhook duplicato soppresso")
	}
	return nuova, nil
}
