package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/billing"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/ordersync"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/infrastructure/woocommerce"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/config"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/logger"
)

// Header delle consegne webhook di WooCommerce.
const (
	HeaderWebhookSignature  = "X-WC-Webhook-Signature"
	HeaderWebhookTopic      = "X-WC-Webhook-Topic"
	HeaderWebhookDeliveryID = "X-WC-Webhook-Delivery-ID"
)

// WebhookHandler riceve le consegne webhook dello store, le autentica con la
// firma HMAC e sincronizza l'ordine. Quando lo stato dell'ordine è tra quelli
// di trigger avvia anche la generazione della fattura.
type WebhookHandler struct {
	syncUC *ordersync.UseCase
	genUC  *billing.GenerateInvoiceUseCase
	woo    config.WooConfig
	fic    config.FICConfig
	log    *logger.Logger
}

// NewWebhookHandler costruisce l'handler.
func NewWebhookHandler(syncUC *ordersync.UseCase, genUC *billing.GenerateInvoiceUseCase, woo config.WooConfig, fic config.FICConfig, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{syncUC: syncUC, genUC: genUC, woo: woo, fic: fic, log: log}
}

// Receive elabora una consegna webhook order.created / order.updated.
// POST /api/webhooks/woocommerce
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	body := c.Body()

	// La firma va verificata sul corpo grezzo, prima di qualsiasi parsing.
	if !h.firmaValida(body, c.Get(HeaderWebhookSignature)) {
		h.log.Warn().
			Str("topic", c.Get(HeaderWebhookTopic)).
			Msg("webhook con firma non valida")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma webhook non valida"})
	}

	// WooCommerce invia un ping senza payload alla creazione del webhook.
	if len(body) == 0 || string(body) == "{}" {
		return c.SendStatus(fiber.StatusOK)
	}

	order, err := woocommerce.ParseOrder(body, h.fic.CodIVADefault)
	if err != nil {
		h.log.Warn().Err(err).Msg("payload webhook non decodificabile")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "payload ordine non valido"})
	}

	deliveryID := c.Get(HeaderWebhookDeliveryID)
	topic := c.Get(HeaderWebhookTopic)
	processed, err := h.syncUC.Processa(c.Context(), deliveryID, topic, order)
	if err != nil {
		h.log.Error().Err(err).Int64("woo_id", order.WooID).Msg("sincronizzazione ordine fallita")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "sincronizzazione fallita"})
	}
	if !processed {
		// Consegna già vista: WooCommerce riprova le consegne non confermate.
		return c.SendStatus(fiber.StatusOK)
	}

	if h.fic.GeneraPerStato(order.Status) {
		if _, err := h.genUC.Genera(c.Context(), order.WooID); err != nil {
			// L'ordine resta senza fattura e il prossimo trigger riprova.
			// Rispondiamo comunque 200: la consegna è stata registrata.
			h.log.Error().Err(err).Int64("woo_id", order.WooID).Msg("generazione fattura da webhook fallita")
		}
	}
	return c.SendStatus(fiber.StatusOK)
}

// firmaValida confronta la firma HMAC-SHA256 (base64) del corpo grezzo con
// quella dichiarata nell'header.
func (h *WebhookHandler) firmaValida(body []byte, firma string) bool {
	if h.woo.WebhookSecret == "" || firma == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.woo.WebhookSecret))
	mac.Write(body)
	attesa := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(attesa), []byte(firma))
}
