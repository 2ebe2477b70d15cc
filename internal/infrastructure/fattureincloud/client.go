package fattureincloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// BaseURLProduzione endpoint pubblico dell'API v1.
const BaseURLProduzione = "https://api.fattureincloud.it/v1"

// Client HTTP per l'API v1 di Fatture in Cloud. Le credenziali (api_uid,
// api_key) viaggiano nel corpo di ogni richiesta, come richiesto dal
// provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiUID     string
	apiKey     string
	log        *logger.Logger
}

// NewClient costruisce il client. baseURL vuoto usa l'endpoint di produzione.
func NewClient(apiUID, apiKey, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURLProduzione
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiUID:     apiUID,
		apiKey:     apiKey,
		log:        log,
	}
}

// CreaDocumento invia un documento a /<tipo>/nuovo e restituisce l'esito con
// l'id assegnato. Un success=false non è un errore di trasporto: viene
// restituito al chiamante che decide come trattarlo.
func (c *Client) CreaDocumento(ctx context.Context, tipo string, doc *NuovoDocumento) (*RispostaNuovoDoc, error) {
	doc.auth = auth{APIUID: c.apiUID, APIKey: c.apiKey}

	var out RispostaNuovoDoc
	if err := c.post(ctx, fmt.Sprintf("/%s/nuovo", tipo), doc, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		c.log.Warn().
			Str("tipo", tipo).
			Int("error_code", out.ErrCode).
			Str("error", out.Error).
			Msg("fattureincloud: creazione documento rifiutata")
	}
	return &out, nil
}

// DettagliDocumento recupera i dettagli del documento, incluso il link
// condivisibile del PDF.
func (c *Client) DettagliDocumento(ctx context.Context, tipo string, id int64) (*DettagliDocumento, error) {
	req := richiestaDettagli{
		auth: auth{APIUID: c.apiUID, APIKey: c.apiKey},
		ID:   id,
	}
	var out rispostaDettagli
	if err := c.post(ctx, fmt.Sprintf("/%s/dettagli", tipo), req, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.DettagliDocumento == nil {
		c.log.Warn().
			Int64("doc_id", id).
			Int("error_code", out.ErrCode).
			Str("error", out.Error).
			Msg("fattureincloud: dettagli documento non disponibili")
		return nil, fmt.Errorf("fattureincloud: dettagli documento %d: %s", id, out.Error)
	}
	return out.DettagliDocumento, nil
}

// ListaInfo recupera le liste di riferimento dell'account (lista_iva,
// lista_conti, lista_paesi).
func (c *Client) ListaInfo(ctx context.Context, campi []string) (*ListaInfo, error) {
	req := richiestaInfo{
		auth:  auth{APIUID: c.apiUID, APIKey: c.apiKey},
		Campi: campi,
	}
	var out ListaInfo
	if err := c.post(ctx, "/info/account", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("fattureincloud: info account: %s", out.Error)
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("fattureincloud: marshal richiesta: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("fattureincloud: nuova richiesta: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fattureincloud: POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("fattureincloud: lettura risposta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("fattureincloud: risposta HTTP non OK")
		return fmt.Errorf("fattureincloud: POST %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("fattureincloud: decodifica risposta %s: %w", path, err)
	}
	return nil
}
