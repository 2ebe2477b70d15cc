package codicefiscale

import "strings"

// Codici catastali (Belfiore) dei comuni capoluogo e dei centri più comuni.
// La tabella non è esaustiva: il widget di checkout accetta anche il codice
// catastale diretto per i comuni non presenti.
var codiciCatastali = map[string]string{
	"AGRIGENTO":       "A089",
	"ALESSANDRIA":     "A182",
	"ANCONA":          "A271",
	"AOSTA":           "A326",
	"AREZZO":          "A390",
	"ASCOLI PICENO":   "A462",
	"ASTI":            "A479",
	"AVELLINO":        "A509",
	"BARI":            "A662",
	"BERGAMO":         "A794",
	"BOLOGNA":         "A944",
	"BOLZANO":         "A952",
	"BRESCIA":         "B157",
	"BRINDISI":        "B180",
	"CAGLIARI":        "B354",
	"CAMPOBASSO":      "B519",
	"CASERTA":         "B963",
	"CATANIA":         "C351",
	"CATANZARO":       "C352",
	"COMO":            "C933",
	"COSENZA":         "D086",
	"CREMONA":         "D150",
	"FERRARA":         "D548",
	"FIRENZE":         "D612",
	"FOGGIA":          "D643",
	"GENOVA":          "D969",
	"GROSSETO":        "E202",
	"LA SPEZIA":       "E463",
	"LATINA":          "E472",
	"LECCE":           "E506",
	"LIVORNO":         "E625",
	"LUCCA":           "E715",
	"MESSINA":         "F158",
	"MILANO":          "F205",
	"MODENA":          "F257",
	"MONZA":           "F704",
	"NAPOLI":          "F839",
	"NOVARA":          "F952",
	"PADOVA":          "G224",
	"PALERMO":         "G273",
	"PARMA":           "G337",
	"PAVIA":           "G388",
	"PERUGIA":         "G478",
	"PESCARA":         "G482",
	"PIACENZA":        "G535",
	"PISA":            "G702",
	"PISTOIA":         "G713",
	"POTENZA":         "G942",
	"PRATO":           "G999",
	"RAVENNA":         "H199",
	"REGGIO CALABRIA": "H224",
	"REGGIO EMILIA":   "H223",
	"RIMINI":          "H294",
	"ROMA":            "H501",
	"SALERNO":         "H703",
	"SASSARI":         "I452",
	"SIENA":           "I726",
	"SIRACUSA":        "I754",
	"TARANTO":         "L049",
	"TERNI":           "L117",
	"TORINO":          "L219",
	"TRENTO":          "L378",
	"TREVISO":         "L407",
	"TRIESTE":         "L424",
	"UDINE":           "L483",
	"VARESE":          "L682",
	"VENEZIA":         "L736",
	"VERONA":          "L781",
	"VICENZA":         "L840",
	"VITERBO":         "M082",
}

// CercaComune risolve il nome di un comune nel suo codice catastale.
// Accetta anche un codice Belfiore già formato (lettera + tre cifre),
// che viene restituito normalizzato in maiuscolo.
func CercaComune(nome string) (string, bool) {
	chiave := strings.ToUpper(strings.TrimSpace(nome))
	if chiave == "" {
		return "", false
	}
	if sembraCodiceCatastale(chiave) {
		return chiave, true
	}
	codice, ok := codiciCatastali[chiave]
	return codice, ok
}

func sembraCodiceCatastale(s string) bool {
	if len(s) != 4 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
