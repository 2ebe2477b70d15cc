// Package woocommerce implementa il client REST (wc/v3) verso lo store e la
// decodifica dei payload ordine, sia da REST sia da webhook (stesso formato).
package woocommerce

// wooOrder è il payload ordine dell'API REST wc/v3 (subset utile).
type wooOrder struct {
	ID            int64      `json:"id"`
	CustomerID    int64      `json:"customer_id"`
	Status        string     `json:"status"`
	Currency      string     `json:"currency"`
	DatePaidGMT   string     `json:"date_paid_gmt"`
	DateCompleted string     `json:"date_completed_gmt"`
	Billing       wooBilling `json:"billing"`
	MetaData      []wooMeta  `json:"meta_data"`
	LineItems     []wooLine  `json:"line_items"`
}

type wooBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
}

type wooMeta struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type wooLine struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`     // netto di riga, stringa decimale
	SubtotalTax string `json:"subtotal_tax"` // IVA di riga
	TaxClass    string `json:"tax_class"`
}

// Meta key usate dal checkout per i dati fiscali italiani.
const (
	MetaFiscalCode     = "_billing_fiscal_code"
	MetaCompanyTaxCode = "_billing_company_tax_code"
)
