package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/billing"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/fattureincloud"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/jwt"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake in memoria: repo ordini, client provider, cache.
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[int64]*entity.Order
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[int64]*entity.Order)}
	for _, o := range orders {
		r.orders[o.WooID] = o
	}
	return r
}

func (r *fakeOrderRepo) GetByWooID(wooID int64) (*entity.Order, error) {
	o, ok := r.orders[wooID]
	if !ok {
		return nil, nil
	}
	copia := *o
	return &copia, nil
}

func (r *fakeOrderRepo) Upsert(order *entity.Order) error {
	esistente, ok := r.orders[order.WooID]
	if ok {
		order.InvoiceID = esistente.InvoiceID // l'upsert non tocca l'invoice_id
	}
	copia := *order
	r.orders[order.WooID] = &copia
	return nil
}

func (r *fakeOrderRepo) SetInvoiceID(wooID int64, invoiceID int64) (bool, error) {
	o, ok := r.orders[wooID]
	if !ok || o.InvoiceID != nil {
		return false, nil
	}
	o.InvoiceID = &invoiceID
	return true, nil
}

type fakeClient struct {
	creaChiamate     int
	dettagliChiamate int
	nextID           int64
	fallisciCrea     bool
	rifiutaCrea      bool
	ultimoDoc        *fattureincloud.NuovoDocumento
	link             string
}

func (c *fakeClient) CreaDocumento(_ context.Context, _ string, doc *fattureincloud.NuovoDocumento) (*fattureincloud.RispostaNuovoDoc, error) {
	c.creaChiamate++
	c.ultimoDoc = doc
	if c.fallisciCrea {
		return nil, errors.New("timeout")
	}
	if c.rifiutaCrea {
		return &fattureincloud.RispostaNuovoDoc{Success: false, Error: "parametri non validi", ErrCode: 1100}, nil
	}
	c.nextID++
	return &fattureincloud.RispostaNuovoDoc{Success: true, NewID: c.nextID}, nil
}

func (c *fakeClient) DettagliDocumento(_ context.Context, _ string, id int64) (*fattureincloud.DettagliDocumento, error) {
	c.dettagliChiamate++
	if c.link == "" {
		return nil, errors.New("service unavailable")
	}
	return &fattureincloud.DettagliDocumento{ID: id, LinkDoc: c.link}, nil
}

func (c *fakeClient) ListaInfo(_ context.Context, _ []string) (*fattureincloud.ListaInfo, error) {
	return &fattureincloud.ListaInfo{Success: true}, nil
}

type fakeCache struct {
	valori map[string]any
}

func newFakeCache() *fakeCache { return &fakeCache{valori: make(map[string]any)} }

func (c *fakeCache) Get(key string) (any, bool) {
	v, ok := c.valori[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) {
	c.valori[key] = value
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func ordineDiProva(wooID, customerID int64) *entity.Order {
	paid := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	return &entity.Order{
		ID:         "ord-interno",
		WooID:      wooID,
		CustomerID: customerID,
		Status:     "completed",
		Currency:   "EUR",
		Billing: entity.Billing{
			FirstName: "Maria",
			LastName:  "Rossi",
			Address1:  "Via Appia 1",
			City:      "Roma",
			State:     "RM",
			Postcode:  "00100",
			Country:   "IT",
		},
		FiscalCode: "RSSMRA90E52H501O",
		DatePaid:   &paid,
		Items: []entity.OrderItem{
			{SKU: "TSHIRT-M", Name: "Maglietta", Quantity: 2, NetPrice: decimal.NewFromInt(40), GrossPrice: decimal.RequireFromString("48.8")},
		},
	}
}

func nuovoGenUC(repo *fakeOrderRepo, client *fakeClient) *billing.GenerateInvoiceUseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	cfg := config.FICConfig{PrezziIvati: true, MetodoPagamento: "Carta di credito", LinkTTL: 15 * time.Minute, InfoTTL: 48 * time.Hour}
	return billing.NewGenerateInvoiceUseCase(repo, nil, client, cfg, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generazione fattura
// ──────────────────────────────────────────────────────────────────────────────

func TestGenera_CreaDocumentoEPersisteID(t *testing.T) {
	repo := newFakeOrderRepo(ordineDiProva(42, 7))
	client := &fakeClient{}
	uc := nuovoGenUC(repo, client)

	out, err := uc.Genera(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, int64(1), out.InvoiceID)
	assert.Equal(t, 1, client.creaChiamate, "una sola chiamata remota")

	salvato, _ := repo.GetByWooID(42)
	require.NotNil(t, salvato.InvoiceID)
	assert.Equal(t, int64(1), *salvato.InvoiceID, "l'id deve essere persistito sull'ordine")
}

// Seconda chiamata: stesso id, nessuna nuova chiamata remota.
func TestGenera_Idempotente(t *testing.T) {
	repo := newFakeOrderRepo(ordineDiProva(42, 7))
	client := &fakeClient{}
	uc := nuovoGenUC(repo, client)

	prima, err := uc.Genera(context.Background(), 42)
	require.NoError(t, err)
	seconda, err := uc.Genera(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, prima.InvoiceID, seconda.InvoiceID)
	assert.False(t, seconda.Created)
	assert.Equal(t, 1, client.creaChiamate, "la seconda chiamata non deve toccare il provider")
}

// Errore del provider: errore esplicito, nessun id scritto, il tentativo
// successivo riparte da zero e riesce.
func TestGenera_ErroreProviderPoiRetry(t *testing.T) {
	repo := newFakeOrderRepo(ordineDiProva(42, 7))
	client := &fakeClient{fallisciCrea: true}
	uc := nuovoGenUC(repo, client)

	_, err := uc.Genera(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)

	salvato, _ := repo.GetByWooID(42)
	assert.Nil(t, salvato.InvoiceID, "nessun id dopo un fallimento")

	client.fallisciCrea = false
	out, err := uc.Genera(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, out.Created)
}

// Rifiuto applicativo (success=false): stesso trattamento del guasto di rete.
func TestGenera_RifiutoProvider(t *testing.T) {
	repo := newFakeOrderRepo(ordineDiProva(42, 7))
	client := &fakeClient{rifiutaCrea: true}
	uc := nuovoGenUC(repo, client)

	_, err := uc.Genera(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	salvato, _ := repo.GetByWooID(42)
	assert.Nil(t, salvato.InvoiceID)
}

func TestGenera_OrdineInesistente(t *testing.T) {
	uc := nuovoGenUC(newFakeOrderRepo(), &fakeClient{})
	_, err := uc.Genera(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Il documento inviato deve rispecchiare l'ordine: intestatario, righe,
// pagamento "auto" alla data di pagamento.
func TestGenera_MappaturaDocumento(t *testing.T) {
	ordine := ordineDiProva(42, 7)
	ordine.Billing.Company = "ACME Srl"
	ordine.CompanyTaxCode = "IT01234567891"
	repo := newFakeOrderRepo(ordine)
	client := &fakeClient{}
	uc := nuovoGenUC(repo, client)

	_, err := uc.Genera(context.Background(), 42)
	require.NoError(t, err)

	doc := client.ultimoDoc
	require.NotNil(t, doc)
	assert.Equal(t, "ACME Srl", doc.Nome, "con ragione sociale l'intestatario è l'azienda")
	assert.Equal(t, "IT01234567891", doc.PartitaIVA)
	assert.Equal(t, "RSSMRA90E52H501O", doc.CodiceFiscale)
	assert.Equal(t, "EUR", doc.Valuta)
	assert.Equal(t, "IT", doc.PaeseISO)
	assert.True(t, doc.PrezziIvati)

	require.Len(t, doc.ListaArticoli, 1)
	art := doc.ListaArticoli[0]
	assert.Equal(t, "TSHIRT-M", art.Codice)
	assert.Equal(t, 2, art.Quantita)
	assert.True(t, art.PrezzoNetto.Equal(decimal.NewFromInt(40)))
	assert.True(t, art.PrezzoLordo.Equal(decimal.RequireFromString("48.8")))

	require.Len(t, doc.ListaPagamenti, 1)
	pag := doc.ListaPagamenti[0]
	assert.Equal(t, "auto", pag.Importo)
	assert.Equal(t, "10/03/2024", pag.DataScadenza)
	assert.Equal(t, "10/03/2024", pag.DataSaldo)
	assert.Equal(t, "Carta di credito", pag.Metodo)
}

// Senza ragione sociale l'intestatario è nome e cognome.
func TestGenera_IntestatarioPersonaFisica(t *testing.T) {
	repo := newFakeOrderRepo(ordineDiProva(42, 7))
	client := &fakeClient{}
	uc := nuovoGenUC(repo, client)

	_, err := uc.Genera(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Maria Rossi", client.ultimoDoc.Nome)
}

// ──────────────────────────────────────────────────────────────────────────────
// Link documento: autorizzazione e cache read-through
// ──────────────────────────────────────────────────────────────────────────────

func nuovoLinkUC(repo *fakeOrderRepo, client *fakeClient, cache billing.TransientStore) *billing.InvoiceLinkUseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	cfg := config.FICConfig{LinkTTL: 15 * time.Minute, InfoTTL: 48 * time.Hour}
	return billing.NewInvoiceLinkUseCase(nuovoGenUC(repo, client), client, cache, cfg, log)
}

func ordineConFattura(wooID, customerID, invoiceID int64) *entity.Order {
	o := ordineDiProva(wooID, customerID)
	o.InvoiceID = &invoiceID
	return o
}

func TestLink_CacheReadThrough(t *testing.T) {
	repo := newFakeOrderRepo(ordineConFattura(42, 7, 555))
	client := &fakeClient{link: "https://fic.example/doc/555"}
	cache := newFakeCache()
	uc := nuovoLinkUC(repo, client, cache)
	manager := billing.Richiedente{Role: jwt.RoleManager}

	out, err := uc.Link(context.Background(), 42, manager)
	require.NoError(t, err)
	assert.Equal(t, "https://fic.example/doc/555", out.Link)
	assert.Equal(t, 1, client.dettagliChiamate)

	// secondo lookup entro il TTL: hit di cache, nessuna chiamata remota
	out2, err := uc.Link(context.Background(), 42, manager)
	require.NoError(t, err)
	assert.Equal(t, out.Link, out2.Link)
	assert.Equal(t, 1, client.dettagliChiamate, "il link deve arrivare dalla cache")
}

func TestLink_ScadenzaCacheRinnovaLaChiamata(t *testing.T) {
	repo := newFakeOrderRepo(ordineConFattura(42, 7, 555))
	client := &fakeClient{link: "https://fic.example/doc/555"}
	cache := newFakeCache()
	uc := nuovoLinkUC(repo, client, cache)
	manager := billing.Richiedente{Role: jwt.RoleManager}

	_, err := uc.Link(context.Background(), 42, manager)
	require.NoError(t, err)

	// scadenza simulata: svuotiamo la cache
	cache.valori = map[string]any{}

	_, err = uc.Link(context.Background(), 42, manager)
	require.NoError(t, err)
	assert.Equal(t, 2, client.dettagliChiamate, "dopo la scadenza serve una nuova chiamata")
}

// Errore del provider sui dettagli: nulla in cache, errore generico.
func TestLink_ErroreProviderNonCachato(t *testing.T) {
	repo := newFakeOrderRepo(ordineConFattura(42, 7, 555))
	client := &fakeClient{} // link vuoto -> dettagli falliscono
	cache := newFakeCache()
	uc := nuovoLinkUC(repo, client, cache)

	_, err := uc.Link(context.Background(), 42, billing.Richiedente{Role: jwt.RoleManager})
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Empty(t, cache.valori, "un errore non va memorizzato")
}

// Cliente che non possiede l'ordine: 403 prima di qualsiasi chiamata remota.
func TestLink_ClienteNonProprietario(t *testing.T) {
	repo := newFakeOrderRepo(ordineConFattura(42, 7, 555))
	client := &fakeClient{link: "https://fic.example/doc/555"}
	uc := nuovoLinkUC(repo, client, newFakeCache())

	_, err := uc.Link(context.Background(), 42, billing.Richiedente{Role: jwt.RoleCustomer, CustomerID: 99})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, client.dettagliChiamate, "nessuna chiamata remota per richieste non autorizzate")
	assert.Equal(t, 0, client.creaChiamate)
}

func TestLink_ClienteProprietario(t *testing.T) {
	repo := newFakeOrderRepo(ordineConFattura(42, 7, 555))
	client := &fakeClient{link: "https://fic.example/doc/555"}
	uc := nuovoLinkUC(repo, client, newFakeCache())

	out, err := uc.Link(context.Background(), 42, billing.Richiedente{Role: jwt.RoleCustomer, CustomerID: 7})
	require.NoError(t, err)
	assert.Equal(t, "https://fic.example/doc/555", out.Link)
}

// Fattura non ancora generata: il cliente riceve lo stato dedicato, il
// manager la genera al volo.
func TestLink_FatturaNonPronta(t *testing.T) {
	repo := newFakeOrderRepo(ordineDiProva(42, 7))
	client := &fakeClient{link: "https://fic.example/doc/1"}
	uc := nuovoLinkUC(repo, client, newFakeCache())

	_, err := uc.Link(context.Background(), 42, billing.Richiedente{Role: jwt.RoleCustomer, CustomerID: 7})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotReady)
	assert.Equal(t, 0, client.creaChiamate)

	out, err := uc.Link(context.Background(), 42, billing.Richiedente{Role: jwt.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, 1, client.creaChiamate, "il manager genera la fattura mancante al volo")
	assert.NotZero(t, out.InvoiceID)
}
