package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/silverbackstudio/woocommerce-fattureincloud/internal/application/dto"
	"github.com/silverbackstudio/woocommerce-fattureincloud/pkg/codicefiscale"
)

// UseCase valida i campi fiscali extra del checkout e calcola il codice
// fiscale per il widget lato negozio.
type UseCase struct{}

// NewUseCase costruisce il caso d'uso.
func NewUseCase() *UseCase {
	return &UseCase{}
}

// partita IVA: 11 cifre, con prefisso IT opzionale.
var rePartitaIVA = regexp.MustCompile(`^(IT)?[0-9]{11}$`)

// ValidaCampi applica le regole di obbligo condizionale:
//   - con ragione sociale serve la partita IVA;
//   - senza ragione sociale serve il codice fiscale;
//   - i valori presenti devono essere ben formati.
//
// Gli errori sono etichette di campo, pronte per la lista inline del
// checkout; la submit va bloccata se Valid è false.
func (uc *UseCase) ValidaCampi(in dto.ValidateFieldsRequest) dto.ValidateFieldsResponse {
	company := strings.TrimSpace(in.Company)
	piva := strings.ToUpper(strings.TrimSpace(in.CompanyTaxCode))
	cf := strings.ToUpper(strings.TrimSpace(in.FiscalCode))

	var errs []string

	if company != "" && piva == "" {
		errs = append(errs, "partita IVA")
	}
	if company == "" && cf == "" && piva == "" {
		errs = append(errs, "codice fiscale")
	}
	if piva != "" && !rePartitaIVA.MatchString(piva) {
		errs = append(errs, "partita IVA non valida")
	}
	if cf != "" && !codicefiscale.Verifica(cf) {
		errs = append(errs, "codice fiscale non valido")
	}

	return dto.ValidateFieldsResponse{Valid: len(errs) == 0, Errors: errs}
}

// CalcolaCodiceFiscale calcola il codice dal form del widget. I campi
// mancanti tornano come lista di etichette, non come errore fatale: decide
// il chiamante se procedere.
func (uc *UseCase) CalcolaCodiceFiscale(in dto.FiscalCodeRequest) dto.FiscalCodeResponse {
	codiceCatastale := ""
	if c, ok := codicefiscale.CercaComune(in.Comune); ok {
		codiceCatastale = c
	}

	cf, err := codicefiscale.Calcola(codicefiscale.Dati{
		Nome:            in.Nome,
		Cognome:         in.Cognome,
		Sesso:           codicefiscale.Sesso(strings.ToUpper(strings.TrimSpace(in.Sesso))),
		Giorno:          in.Giorno,
		Mese:            in.Mese,
		Anno:            in.Anno,
		CodiceCatastale: codiceCatastale,
	})
	if err != nil {
		var mancanti *codicefiscale.ErroreCampiMancanti
		if errors.As(err, &mancanti) {
			return dto.FiscalCodeResponse{Errors: mancanti.Campi}
		}
		return dto.FiscalCodeResponse{Errors: []string{"dati non validi"}}
	}
	return dto.FiscalCodeResponse{CodiceFiscale: cf}
}
