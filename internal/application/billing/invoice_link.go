package billing

import (
	"context"
	"fmt"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/fattureincloud"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/jwt"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// InvoiceLinkUseCase risolve il link condivisibile del documento con una
// cache read-through a breve scadenza.
type InvoiceLinkUseCase struct {
	genUC  *GenerateInvoiceUseCase
	client InvoiceClient
	cache  TransientStore
	cfg    config.FICConfig
	log    *logger.Logger
}

// NewInvoiceLinkUseCase costruisce il caso d'uso.
func NewInvoiceLinkUseCase(
	genUC *GenerateInvoiceUseCase,
	client InvoiceClient,
	cache TransientStore,
	cfg config.FICConfig,
	log *logger.Logger,
) *InvoiceLinkUseCase {
	return &InvoiceLinkUseCase{genUC: genUC, client: client, cache: cache, cfg: cfg, log: log}
}

// Richiedente identità di chi chiede il download.
type Richiedente struct {
	Role       string
	CustomerID int64
}

// PuoVedere applica la regola di accesso: il manager vede tutto, il cliente
// solo i propri ordini.
func (r Richiedente) PuoVedere(order *entity.Order) bool {
	if r.Role == jwt.RoleManager {
		return true
	}
	return r.Role == jwt.RoleCustomer && r.CustomerID != 0 && r.CustomerID == order.CustomerID
}

// Link restituisce l'URL del documento per l'ordine.
//
// Il controllo di autorizzazione precede qualunque chiamata remota. Se la
// fattura non esiste ancora il manager la genera al volo, il cliente riceve
// ErrInvoiceNotReady.
func (uc *InvoiceLinkUseCase) Link(ctx context.Context, wooID int64, who Richiedente) (*dto.InvoiceLinkResponse, error) {
	order, err := uc.genUC.Ordine(ctx, wooID)
	if err != nil {
		return nil, err
	}
	if !who.PuoVedere(order) {
		return nil, domain.ErrForbidden
	}

	var invoiceID int64
	switch {
	case order.InvoiceID != nil:
		invoiceID = *order.InvoiceID
	case who.Role == jwt.RoleManager:
		resp, err := uc.genUC.Genera(ctx, wooID)
		if err != nil {
			return nil, err
		}
		invoiceID = resp.InvoiceID
	default:
		return nil, domain.ErrInvoiceNotReady
	}

	link, err := uc.linkPerDocumento(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceLinkResponse{WooID: wooID, InvoiceID: invoiceID, Link: link}, nil
}

// linkPerDocumento è la cache read-through: hit entro il TTL, altrimenti
// chiamata dettagli e memorizzazione. Un errore del provider non viene
// memorizzato.
func (uc *InvoiceLinkUseCase) linkPerDocumento(ctx context.Context, invoiceID int64) (string, error) {
	key := chiaveLink(invoiceID)
	if v, ok := uc.cache.Get(key); ok {
		if link, ok := v.(string); ok && link != "" {
			return link, nil
		}
	}

	dettagli, err := uc.client.DettagliDocumento(ctx, fattureincloud.TipoFattura, invoiceID)
	if err != nil {
		uc.log.Error().Err(err).Int64("invoice_id", invoiceID).Msg("dettagli documento falliti")
		return "", domain.ErrProviderUnavailable
	}
	if dettagli.LinkDoc == "" {
		return "", domain.ErrProviderUnavailable
	}

	uc.cache.Set(key, dettagli.LinkDoc, uc.cfg.LinkTTL)
	return dettagli.LinkDoc, nil
}

func chiaveLink(invoiceID int64) string {
	return fmt.Sprintf("fattureincloud_link_%d", invoiceID)
}
