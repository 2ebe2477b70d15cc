package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order è la copia locale di un ordine WooCommerce, con i soli campi che
// servono alla fatturazione. Il ciclo di vita resta dello store: qui si
// leggono i dati di fatturazione e si scrive una sola volta l'id della
// fattura generata su Fatture in Cloud.
type Order struct {
	ID         string // uuid interno
	WooID      int64  // id ordine nello store
	CustomerID int64  // id cliente WooCommerce (0 = ospite)
	Status     string // stato WooCommerce senza prefisso "wc-"
	Currency   string

	Billing        Billing
	FiscalCode     string // meta _billing_fiscal_code
	CompanyTaxCode string // meta _billing_company_tax_code (partita IVA)

	// InvoiceID è l'id documento assegnato da Fatture in Cloud.
	// Nil finché la fattura non è stata creata; una volta valorizzato non
	// viene mai riscritto.
	InvoiceID *int64

	DatePaid      *time.Time
	DateCompleted *time.Time

	Items []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Billing campi di fatturazione dell'ordine.
type Billing struct {
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	State     string // provincia
	Postcode  string
	Country   string // ISO 3166-1 alpha-2
	Email     string
}

// IntestatarioFattura restituisce la ragione sociale se presente, altrimenti
// nome e cognome.
func (b Billing) IntestatarioFattura() string {
	if b.Company != "" {
		return b.Company
	}
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// OrderItem è una riga d'ordine vendibile (line_item WooCommerce).
type OrderItem struct {
	ID         string // uuid interno
	SKU        string
	Name       string
	Quantity   int
	NetPrice   decimal.Decimal // subtotal di riga, IVA esclusa
	GrossPrice decimal.Decimal // subtotal + subtotal_tax
	TaxCode    int             // cod_iva Fatture in Cloud
}

// DataPagamento restituisce la data utile per il pagamento della fattura:
// data di pagamento, altrimenti data di completamento, altrimenti fallback.
func (o *Order) DataPagamento(fallback time.Time) time.Time {
	if o.DatePaid != nil {
		return *o.DatePaid
	}
	if o.DateCompleted != nil {
		return *o.DateCompleted
	}
	return fallback
}
