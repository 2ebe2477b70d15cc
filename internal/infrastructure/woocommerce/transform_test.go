package woocommerce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payloadOrdine = `{
	"id": 1001,
	"customer_id": 7,
	"status": "completed",
	"currency": "EUR",
	"date_paid_gmt": "2024-03-10T09:30:00",
	"billing": {
		"first_name": "Maria", "last_name": "Rossi", "company": "ACME Srl",
		"address_1": "Via Appia 1", "city": "Roma", "state": "RM",
		"postcode": "00100", "country": "IT", "email": "maria@example.com"
	},
	"meta_data": [
		{"key": "_billing_fiscal_code", "value": "RSSMRA90E52H501O"},
		{"key": "_billing_company_tax_code", "value": "IT01234567891"},
		{"key": "_altro_plugin", "value": {"nested": true}}
	],
	"line_items": [
		{"id": 1, "name": "Maglietta", "sku": "TSHIRT-M", "quantity": 2, "subtotal": "40.00", "subtotal_tax": "8.80"},
		{"id": 2, "name": "Spedizione", "sku": "", "quantity": 1, "subtotal": "5.00", "subtotal_tax": ""}
	]
}`

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder([]byte(payloadOrdine), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(1001), o.WooID)
	assert.Equal(t, int64(7), o.CustomerID)
	assert.Equal(t, "completed", o.Status)
	assert.Equal(t, "RSSMRA90E52H501O", o.FiscalCode)
	assert.Equal(t, "IT01234567891", o.CompanyTaxCode)
	assert.Equal(t, "ACME Srl", o.Billing.Company)

	require.NotNil(t, o.DatePaid)
	assert.Equal(t, time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC), *o.DatePaid)

	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].NetPrice.Equal(decimal.RequireFromString("40.00")))
	assert.True(t, o.Items[0].GrossPrice.Equal(decimal.RequireFromString("48.80")), "lordo = netto + IVA")
	assert.Equal(t, 3, o.Items[0].TaxCode, "cod_iva di default sulle righe")
	// subtotal_tax vuoto trattato come zero
	assert.True(t, o.Items[1].GrossPrice.Equal(decimal.RequireFromString("5.00")))
}

func TestParseOrder_SenzaID(t *testing.T) {
	_, err := ParseOrder([]byte(`{"status": "completed"}`), 0)
	assert.Error(t, err)
}

func TestParseOrder_JSONNonValido(t *testing.T) {
	_, err := ParseOrder([]byte(`{`), 0)
	assert.Error(t, err)
}
