package dto

// InvoiceResponse esito della generazione fattura per un ordine.
type InvoiceResponse struct {
	WooID     int64 `json:"order_id"`
	InvoiceID int64 `json:"invoice_id"`
	Created   bool  `json:"created"` // false se l'id era già presente (no-op idempotente)
}

// InvoiceLinkResponse link condivisibile del documento.
type InvoiceLinkResponse struct {
	WooID     int64  `json:"order_id"`
	InvoiceID int64  `json:"invoice_id"`
	Link      string `json:"link"`
}

// InfoResponse liste di riferimento dell'account Fatture in Cloud.
type InfoResponse struct {
	ListaIVA   any `json:"lista_iva,omitempty"`
	ListaConti any `json:"lista_conti,omitempty"`
	ListaPaesi any `json:"lista_paesi,omitempty"`
}
