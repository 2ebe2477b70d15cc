package dto

// ValidateFieldsRequest campi fiscali extra del checkout.
type ValidateFieldsRequest struct {
	Company        string `json:"company"`
	CompanyTaxCode string `json:"company_tax_code"`
	FiscalCode     string `json:"fiscal_code"`
}

// ValidateFieldsResponse esito della validazione. Errors elenca le etichette
// dei campi mancanti o malformati, pronte per la lista inline del checkout.
type ValidateFieldsResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// FiscalCodeRequest input del calcolo del codice fiscale.
type FiscalCodeRequest struct {
	Nome    string `json:"nome"`
	Cognome string `json:"cognome"`
	Sesso   string `json:"sesso"` // "M" | "F"
	Giorno  int    `json:"giorno"`
	Mese    int    `json:"mese"`
	Anno    int    `json:"anno"`
	// Comune accetta il nome di un capoluogo o direttamente il codice
	// catastale (Belfiore).
	Comune string `json:"comune"`
}

// FiscalCodeResponse codice calcolato, oppure la lista dei campi mancanti.
type FiscalCodeResponse struct {
	CodiceFiscale string   `json:"codice_fiscale,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}
