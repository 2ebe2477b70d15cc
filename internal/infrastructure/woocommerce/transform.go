package woocommerce

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/domain/entity"
)

// ParseOrder decodifica un payload ordine wc/v3 (REST o webhook) nell'entità
// di dominio. codIVADefault è il cod_iva applicato alle righe.
func ParseOrder(payload []byte, codIVADefault int) (*entity.Order, error) {
	var raw wooOrder
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("woocommerce: decodifica ordine: %w", err)
	}
	if raw.ID == 0 {
		return nil, fmt.Errorf("woocommerce: payload ordine senza id")
	}
	return toEntity(&raw, codIVADefault)
}

func toEntity(raw *wooOrder, codIVADefault int) (*entity.Order, error) {
	o := &entity.Order{
		WooID:      raw.ID,
		CustomerID: raw.CustomerID,
		Status:     raw.Status,
		Currency:   raw.Currency,
		Billing: entity.Billing{
			FirstName: raw.Billing.FirstName,
			LastName:  raw.Billing.LastName,
			Company:   raw.Billing.Company,
			Address1:  raw.Billing.Address1,
			Address2:  raw.Billing.Address2,
			City:      raw.Billing.City,
			State:     raw.Billing.State,
			Postcode:  raw.Billing.Postcode,
			Country:   raw.Billing.Country,
			Email:     raw.Billing.Email,
		},
	}

	for _, m := range raw.MetaData {
		v, ok := m.Value.(string)
		if !ok {
			continue
		}
		switch m.Key {
		case MetaFiscalCode:
			o.FiscalCode = v
		case MetaCompanyTaxCode:
			o.CompanyTaxCode = v
		}
	}

	if t := parseGMT(raw.DatePaidGMT); t != nil {
		o.DatePaid = t
	}
	if t := parseGMT(raw.DateCompleted); t != nil {
		o.DateCompleted = t
	}

	for _, li := range raw.LineItems {
		net, err := decimal.NewFromString(zeroIfEmpty(li.Subtotal))
		if err != nil {
			return nil, fmt.Errorf("woocommerce: subtotal riga %d: %w", li.ID, err)
		}
		tax, err := decimal.NewFromString(zeroIfEmpty(li.SubtotalTax))
		if err != nil {
			return nil, fmt.Errorf("woocommerce: subtotal_tax riga %d: %w", li.ID, err)
		}
		o.Items = append(o.Items, entity.OrderItem{
			SKU:        li.SKU,
			Name:       li.Name,
			Quantity:   li.Quantity,
			NetPrice:   net,
			GrossPrice: net.Add(tax),
			TaxCode:    codIVADefault,
		})
	}
	return o, nil
}

// parseGMT decodifica le date *_gmt del formato wc/v3 ("2017-03-21T16:14:00").
func parseGMT(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
