// Package fattureincloud implementa il client per l'API v1 di Fatture in
// Cloud (api.fattureincloud.it). I nomi dei campi JSON sono quelli imposti
// dal provider.
package fattureincloud

import "github.com/shopspring/decimal"

// Tipi di documento supportati dall'endpoint /doc.
const (
	TipoFattura = "fatture"
)

// auth credenziali iniettate dal client in ogni richiesta.
type auth struct {
	APIUID string `json:"api_uid"`
	APIKey string `json:"api_key"`
}

// Pagamento è una scadenza di pagamento del documento.
// Importo "auto" lascia al provider il calcolo dell'importo residuo.
type Pagamento struct {
	DataScadenza string `json:"data_scadenza"`     // gg/mm/aaaa
	Importo      string `json:"importo"`           // importo o "auto"
	Metodo       string `json:"metodo,omitempty"`  // es. "Carta di credito"
	DataSaldo    string `json:"data_saldo,omitempty"`
}

// Articolo è una riga del documento.
type Articolo struct {
	Codice      string          `json:"codice,omitempty"`
	Nome        string          `json:"nome"`
	Quantita    int             `json:"quantita"`
	PrezzoNetto decimal.Decimal `json:"prezzo_netto"`
	PrezzoLordo decimal.Decimal `json:"prezzo_lordo"`
	CodIVA      int             `json:"cod_iva"`
}

// NuovoDocumento è l'envelope di creazione documento (fatture/nuovo).
type NuovoDocumento struct {
	auth

	Nome               string `json:"nome"` // intestatario: ragione sociale o nome e cognome
	IndirizzoVia       string `json:"indirizzo_via,omitempty"`
	IndirizzoExtra     string `json:"indirizzo_extra,omitempty"`
	IndirizzoCAP       string `json:"indirizzo_cap,omitempty"`
	IndirizzoCitta     string `json:"indirizzo_citta,omitempty"`
	IndirizzoProvincia string `json:"indirizzo_provincia,omitempty"`
	PartitaIVA         string `json:"piva,omitempty"`
	CodiceFiscale      string `json:"cf,omitempty"`
	Valuta             string `json:"valuta,omitempty"`
	PaeseISO           string `json:"paese_iso,omitempty"`

	ListaArticoli  []Articolo  `json:"lista_articoli"`
	ListaPagamenti []Pagamento `json:"lista_pagamenti"`
	PrezziIvati    bool        `json:"prezzi_ivati"`
}

// RispostaNuovoDoc risposta di fatture/nuovo.
type RispostaNuovoDoc struct {
	Success bool   `json:"success"`
	NewID   int64  `json:"new_id,string"`
	Error   string `json:"error,omitempty"`
	ErrCode int    `json:"error_code,omitempty"`
}

// richiestaDettagli corpo di fatture/dettagli.
type richiestaDettagli struct {
	auth
	ID int64 `json:"id,string"`
}

// DettagliDocumento è il sottoinsieme utile della risposta di fatture/dettagli.
type DettagliDocumento struct {
	ID      int64  `json:"id,string"`
	Numero  string `json:"numero"`
	Data    string `json:"data"`
	LinkDoc string `json:"link_doc"` // URL condivisibile del PDF
}

// rispostaDettagli risposta completa di fatture/dettagli.
type rispostaDettagli struct {
	Success           bool               `json:"success"`
	DettagliDocumento *DettagliDocumento `json:"dettagli_documento"`
	Error             string             `json:"error,omitempty"`
	ErrCode           int                `json:"error_code,omitempty"`
}

// richiestaInfo corpo di info/account. Campi è la lista delle liste volute
// (es. "lista_iva", "lista_conti", "lista_paesi").
type richiestaInfo struct {
	auth
	Campi []string `json:"campi"`
}

// AliquotaIVA voce di lista_iva.
type AliquotaIVA struct {
	CodIVA      int             `json:"cod_iva"`
	Valore      decimal.Decimal `json:"valore_iva"`
	Descrizione string          `json:"descrizione_iva"`
}

// ListaInfo dati di riferimento dell'account.
type ListaInfo struct {
	Success    bool          `json:"success"`
	ListaIVA   []AliquotaIVA `json:"lista_iva,omitempty"`
	ListaConti []string      `json:"lista_conti,omitempty"` // wallet configurati
	ListaPaesi []string      `json:"lista_paesi,omitempty"`
	Error      string        `json:"error,omitempty"`
	ErrCode    int           `json:"error_code,omitempty"`
}

// FormatoData è il formato data richiesto dall'API v1 nei pagamenti.
const FormatoData = "02/01/2006"
