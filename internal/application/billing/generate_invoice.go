package billing

import (
	"context"
	"time"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/repository"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/fattureincloud"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// GenerateInvoiceUseCase crea su Fatture in Cloud la fattura di un ordine,
// al più una volta per ordine.
type GenerateInvoiceUseCase struct {
	orderRepo repository.OrderRepository
	fetcher   StoreOrderFetcher // opzionale: nil se lo store non è raggiungibile via REST
	client    InvoiceClient
	cfg       config.FICConfig
	log       *logger.Logger
}

// NewGenerateInvoiceUseCase costruisce il caso d'uso.
func NewGenerateInvoiceUseCase(
	orderRepo repository.OrderRepository,
	fetcher StoreOrderFetcher,
	client InvoiceClient,
	cfg config.FICConfig,
	log *logger.Logger,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		orderRepo: orderRepo,
		fetcher:   fetcher,
		client:    client,
		cfg:       cfg,
		log:       log,
	}
}

// Genera produce o restituisce l'id fattura dell'ordine.
//
// Idempotente: se l'ordine ha già un invoice_id lo restituisce senza alcuna
// chiamata remota. In caso di errore del provider l'ordine resta senza id e
// il prossimo trigger (click manuale o transizione di stato) riprova.
// Un fallimento restituisce sempre un errore esplicito, mai un id non
// valorizzato.
func (uc *GenerateInvoiceUseCase) Genera(ctx context.Context, wooID int64) (*dto.InvoiceResponse, error) {
	order, err := uc.caricaOrdine(ctx, wooID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if order.InvoiceID != nil {
		return &dto.InvoiceResponse{WooID: wooID, InvoiceID: *order.InvoiceID, Created: false}, nil
	}
	if len(order.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	doc := uc.costruisciDocumento(order)
	resp, err := uc.client.CreaDocumento(ctx, fattureincloud.TipoFattura, doc)
	if err != nil {
		uc.log.Error().Err(err).Int64("woo_id", wooID).Msg("creazione fattura fallita")
		return nil, domain.ErrProviderUnavailable
	}
	if !resp.Success {
		uc.log.Error().
			Int64("woo_id", wooID).
			Int("error_code", resp.ErrCode).
			Str("error", resp.Error).
			Msg("fattura rifiutata dal provider")
		return nil, domain.ErrProviderUnavailable
	}

	ok, err := uc.orderRepo.SetInvoiceID(wooID, resp.NewID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Un trigger concorrente ha vinto la corsa: vale l'id già scritto.
		// Il documento appena creato resta come duplicato sul provider,
		// visibile all'operatore nei log.
		uc.log.Warn().
			Int64("woo_id", wooID).
			Int64("invoice_id_scartato", resp.NewID).
			Msg("invoice_id già presente, creazione concorrente")
		vincente, err := uc.orderRepo.GetByWooID(wooID)
		if err != nil {
			return nil, err
		}
		if vincente == nil || vincente.InvoiceID == nil {
			return nil, domain.ErrProviderUnavailable
		}
		return &dto.InvoiceResponse{WooID: wooID, InvoiceID: *vincente.InvoiceID, Created: false}, nil
	}

	uc.log.Info().
		Int64("woo_id", wooID).
		Int64("invoice_id", resp.NewID).
		Msg("fattura creata")
	return &dto.InvoiceResponse{WooID: wooID, InvoiceID: resp.NewID, Created: true}, nil
}

// Ordine restituisce l'ordine locale (con eventuale fetch dallo store).
// Usato dal download per il controllo di proprietà prima di ogni chiamata
// remota.
func (uc *GenerateInvoiceUseCase) Ordine(ctx context.Context, wooID int64) (*entity.Order, error) {
	order, err := uc.caricaOrdine(ctx, wooID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (uc *GenerateInvoiceUseCase) caricaOrdine(ctx context.Context, wooID int64) (*entity.Order, error) {
	if wooID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByWooID(wooID)
	if err != nil {
		return nil, err
	}
	if order != nil || uc.fetcher == nil {
		return order, nil
	}

	// Ordine mai visto: trigger manuale arrivato prima del webhook.
	order, err = uc.fetcher.FetchOrder(ctx, wooID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("woo_id", wooID).Msg("fetch ordine dallo store fallito")
		return nil, domain.ErrProviderUnavailable
	}
	if order == nil {
		return nil, nil
	}
	if err := uc.orderRepo.Upsert(order); err != nil {
		return nil, err
	}
	// Rilettura: l'upsert non tocca un eventuale invoice_id già scritto.
	return uc.orderRepo.GetByWooID(wooID)
}

// costruisciDocumento mappa l'ordine nell'envelope del provider: una riga
// articolo per ogni line_item, un pagamento con importo "auto" e scadenza
// alla data di pagamento dell'ordine.
func (uc *GenerateInvoiceUseCase) costruisciDocumento(order *entity.Order) *fattureincloud.NuovoDocumento {
	dataPagamento := order.DataPagamento(time.Now()).Format(fattureincloud.FormatoData)

	pagamento := fattureincloud.Pagamento{
		DataScadenza: dataPagamento,
		Importo:      "auto",
		DataSaldo:    dataPagamento,
		Metodo:       uc.cfg.MetodoPagamento,
	}

	articoli := make([]fattureincloud.Articolo, 0, len(order.Items))
	for _, it := range order.Items {
		articoli = append(articoli, fattureincloud.Articolo{
			Codice:      it.SKU,
			Nome:        it.Name,
			Quantita:    it.Quantity,
			PrezzoNetto: it.NetPrice,
			PrezzoLordo: it.GrossPrice,
			CodIVA:      it.TaxCode,
		})
	}

	return &fattureincloud.NuovoDocumento{
		Nome:               order.Billing.IntestatarioFattura(),
		IndirizzoVia:       order.Billing.Address1,
		IndirizzoExtra:     order.Billing.Address2,
		IndirizzoCAP:       order.Billing.Postcode,
		IndirizzoCitta:     order.Billing.City,
		IndirizzoProvincia: order.Billing.State,
		PartitaIVA:         order.CompanyTaxCode,
		CodiceFiscale:      order.FiscalCode,
		Valuta:             order.Currency,
		PaeseISO:           order.Billing.Country,
		ListaArticoli:      articoli,
		ListaPagamenti:     []fattureincloud.Pagamento{pagamento},
		PrezziIvati:        uc.cfg.PrezziIvati,
	}
}
