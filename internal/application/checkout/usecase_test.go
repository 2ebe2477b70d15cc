package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/checkout"
	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
)

// Codice fiscale valido usato nei casi di accettazione (vettore del package
// codicefiscale).
const cfValido = "RSSMRA90E52H501O"

func TestValidaCampi(t *testing.T) {
	uc := checkout.NewUseCase()

	casi := []struct {
		nome    string
		in      dto.ValidateFieldsRequest
		valido  bool
		erroriAttesi []string
	}{
		{
			nome:   "solo codice fiscale: accettato",
			in:     dto.ValidateFieldsRequest{FiscalCode: cfValido},
			valido: true,
		},
		{
			nome:   "azienda con partita IVA: accettato",
			in:     dto.ValidateFieldsRequest{Company: "ACME Srl", CompanyTaxCode: "IT01234567891"},
			valido: true,
		},
		{
			nome:   "partita IVA senza prefisso IT: accettato",
			in:     dto.ValidateFieldsRequest{Company: "ACME Srl", CompanyTaxCode: "01234567891"},
			valido: true,
		},
		{
			nome:         "azienda senza partita IVA: rifiutato",
			in:           dto.ValidateFieldsRequest{Company: "ACME Srl"},
			valido:       false,
			erroriAttesi: []string{"partita IVA"},
		},
		{
			nome:         "né azienda né codice fiscale: rifiutato",
			in:           dto.ValidateFieldsRequest{},
			valido:       false,
			erroriAttesi: []string{"codice fiscale"},
		},
		{
			nome:         "codice fiscale con checksum errato: rifiutato",
			in:           dto.ValidateFieldsRequest{FiscalCode: "RSSMRA90E52H501A"},
			valido:       false,
			erroriAttesi: []string{"codice fiscale non valido"},
		},
		{
			nome:         "partita IVA malformata: rifiutato",
			in:           dto.ValidateFieldsRequest{Company: "ACME Srl", CompanyTaxCode: "12AB"},
			valido:       false,
			erroriAttesi: []string{"partita IVA non valida"},
		},
	}

	for _, c := range casi {
		t.Run(c.nome, func(t *testing.T) {
			out := uc.ValidaCampi(c.in)
			assert.Equal(t, c.valido, out.Valid)
			if len(c.erroriAttesi) > 0 {
				assert.ElementsMatch(t, c.erroriAttesi, out.Errors)
			} else {
				assert.Empty(t, out.Errors)
			}
		})
	}
}

func TestCalcolaCodiceFiscale_ConNomeComune(t *testing.T) {
	uc := checkout.NewUseCase()
	out := uc.CalcolaCodiceFiscale(dto.FiscalCodeRequest{
		Nome: "Maria", Cognome: "Rossi", Sesso: "F",
		Giorno: 12, Mese: 5, Anno: 1990, Comune: "Roma",
	})
	require.Empty(t, out.Errors)
	assert.Equal(t, cfValido, out.CodiceFiscale)
}

func TestCalcolaCodiceFiscale_ConCodiceCatastale(t *testing.T) {
	uc := checkout.NewUseCase()
	out := uc.CalcolaCodiceFiscale(dto.FiscalCodeRequest{
		Nome: "Maria", Cognome: "Rossi", Sesso: "f",
		Giorno: 12, Mese: 5, Anno: 1990, Comune: "H501",
	})
	require.Empty(t, out.Errors)
	assert.Equal(t, cfValido, out.CodiceFiscale)
}

// Campi mancanti: la risposta elenca le etichette, il codice resta vuoto.
func TestCalcolaCodiceFiscale_CampiMancanti(t *testing.T) {
	uc := checkout.NewUseCase()
	out := uc.CalcolaCodiceFiscale(dto.FiscalCodeRequest{
		Nome: "Maria", Comune: "ComuneSconosciuto",
	})
	assert.Empty(t, out.CodiceFiscale)
	assert.ElementsMatch(t,
		[]string{"cognome", "sesso", "giorno di nascita", "mese di nascita", "anno di nascita", "comune di nascita"},
		out.Errors)
}
