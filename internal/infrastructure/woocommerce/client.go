package woocommerce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// Config del client REST verso lo store.
type Config struct {
	StoreURL       string // es. https://shop.example.com, senza slash finale
	ConsumerKey    string
	ConsumerSecret string
	CodIVADefault  int
}

// Client REST wc/v3 in sola lettura: serve a recuperare un ordine quando il
// trigger manuale arriva prima del webhook che lo avrebbe sincronizzato.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        *logger.Logger
}

// NewClient costruisce il client.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("woocommerce: StoreURL obbligatorio")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		log:        log,
	}, nil
}

// FetchOrder recupera l'ordine dallo store e lo converte nell'entità di
// dominio. Restituisce (nil, nil) se l'ordine non esiste.
func (c *Client) FetchOrder(ctx context.Context, wooID int64) (*entity.Order, error) {
	url := fmt.Sprintf("%s/wp-json/wc/v3/orders/%d", c.cfg.StoreURL, wooID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: nuova richiesta: %w", err)
	}
	// Lo store è raggiunto in HTTPS: le credenziali wc/v3 passano in basic auth.
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: GET ordine %d: %w", wooID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().
			Int64("woo_id", wooID).
			Int("status", resp.StatusCode).
			Msg("woocommerce: risposta non OK dallo store")
		return nil, fmt.Errorf("woocommerce: GET ordine %d: HTTP %d", wooID, resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("woocommerce: lettura risposta: %w", err)
	}
	return ParseOrder(payload, c.cfg.CodIVADefault)
}
