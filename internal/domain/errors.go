package domain

import "errors"

// Errori di dominio (senza dipendenze esterne).
var (
	ErrNotFound            = errors.New("risorsa non trovata")
	ErrInvalidInput        = errors.New("input non valido")
	ErrUnauthorized        = errors.New("non autorizzato")
	ErrForbidden           = errors.New("accesso negato")
	ErrInvoiceNotReady     = errors.New("fattura non ancora disponibile")
	ErrProviderUnavailable = errors.New("servizio di fatturazione non disponibile")
)
