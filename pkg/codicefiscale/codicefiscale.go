// Package codicefiscale calcola il codice fiscale italiano (16 caratteri)
// a partire da cognome, nome, sesso, data e comune di nascita.
// Algoritmo standard (D.M. 23/12/1976): estrazione consonanti/vocali, tabella
// mesi, giorno +40 per le donne, codice catastale e carattere di controllo
// su tabelle pari/dispari con resto modulo 26.
package codicefiscale

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sesso anagrafico ai fini del calcolo.
type Sesso string

const (
	SessoM Sesso = "M"
	SessoF Sesso = "F"
)

// Dati di input per il calcolo. CodiceCatastale è il codice Belfiore del
// comune (o stato estero) di nascita, es. "H501" per Roma.
type Dati struct {
	Nome            string
	Cognome         string
	Sesso           Sesso
	Giorno          int
	Mese            int
	Anno            int
	CodiceCatastale string
}

// ErroreCampiMancanti elenca i campi obbligatori assenti o fuori range.
// Il chiamante decide come presentarli (es. lista puntata nel checkout).
type ErroreCampiMancanti struct {
	Campi []string
}

func (e *ErroreCampiMancanti) Error() string {
	return "codicefiscale: campi mancanti o non validi: " + strings.Join(e.Campi, ", ")
}

// Lettere dei mesi (gennaio..dicembre).
const lettereMesi = "ABCDEHLMPRST"

// Valori delle posizioni dispari (1-based) per il carattere di controllo.
var valoriDispari = map[byte]int{
	'0': 1, '1': 0, '2': 5, '3': 7, '4': 9, '5': 13, '6': 15, '7': 17, '8': 19, '9': 21,
	'A': 1, 'B': 0, 'C': 5, 'D': 7, 'E': 9, 'F': 13, 'G': 15, 'H': 17, 'I': 19, 'J': 21,
	'K': 2, 'L': 4, 'M': 18, 'N': 20, 'O': 11, 'P': 3, 'Q': 6, 'R': 8, 'S': 12, 'T': 14,
	'U': 16, 'V': 10, 'W': 22, 'X': 25, 'Y': 24, 'Z': 23,
}

// valorePari: cifre 0-9 valgono 0-9, lettere A-Z valgono 0-25.
func valorePari(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return int(c - 'A')
}

// Calcola restituisce il codice fiscale di 16 caratteri, oppure un
// *ErroreCampiMancanti se l'input è incompleto. Deterministico, senza I/O.
func Calcola(d Dati) (string, error) {
	if err := valida(d); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(codiceCognome(d.Cognome))
	b.WriteString(codiceNome(d.Nome))
	b.WriteString(fmt.Sprintf("%02d", d.Anno%100))
	b.WriteByte(lettereMesi[d.Mese-1])

	giorno := d.Giorno
	if d.Sesso == SessoF {
		giorno += 40
	}
	b.WriteString(fmt.Sprintf("%02d", giorno))
	b.WriteString(strings.ToUpper(d.CodiceCatastale))

	parziale := b.String()
	return parziale + string(CarattereControllo(parziale)), nil
}

// Verifica controlla lunghezza, alfabeto e carattere di controllo di un
// codice fiscale già formato. Non valida l'omocodia.
func Verifica(codice string) bool {
	codice = strings.ToUpper(strings.TrimSpace(codice))
	if len(codice) != 16 {
		return false
	}
	for i := 0; i < 16; i++ {
		c := codice[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return CarattereControllo(codice[:15]) == codice[15]
}

// CarattereControllo calcola il carattere di controllo sui primi 15 caratteri:
// somma dei valori dispari/pari per posizione (1-based), resto modulo 26,
// mappato su A-Z.
func CarattereControllo(parziale string) byte {
	somma := 0
	for i := 0; i < len(parziale); i++ {
		c := parziale[i]
		if i%2 == 0 { // posizione dispari 1-based
			somma += valoriDispari[c]
		} else {
			somma += valorePari(c)
		}
	}
	return byte('A' + somma%26)
}

func valida(d Dati) error {
	var mancanti []string
	if normalizza(d.Nome) == "" {
		mancanti = append(mancanti, "nome")
	}
	if normalizza(d.Cognome) == "" {
		mancanti = append(mancanti, "cognome")
	}
	if d.Sesso != SessoM && d.Sesso != SessoF {
		mancanti = append(mancanti, "sesso")
	}
	if d.Giorno < 1 || d.Giorno > 31 {
		mancanti = append(mancanti, "giorno di nascita")
	}
	if d.Mese < 1 || d.Mese > 12 {
		mancanti = append(mancanti, "mese di nascita")
	}
	if d.Anno < 1000 || d.Anno > 9999 {
		mancanti = append(mancanti, "anno di nascita")
	}
	if len(d.CodiceCatastale) != 4 {
		mancanti = append(mancanti, "comune di nascita")
	}
	if len(mancanti) > 0 {
		return &ErroreCampiMancanti{Campi: mancanti}
	}
	return nil
}

// codiceCognome: consonanti poi vocali, tre caratteri, pad con X.
func codiceCognome(cognome string) string {
	cons, voc := separaLettere(cognome)
	return pad3(cons + voc)
}

// codiceNome: con almeno quattro consonanti si prendono la prima, la terza e
// la quarta; altrimenti come per il cognome.
func codiceNome(nome string) string {
	cons, voc := separaLettere(nome)
	if len(cons) >= 4 {
		return string([]byte{cons[0], cons[2], cons[3]})
	}
	return pad3(cons + voc)
}

func pad3(s string) string {
	for len(s) < 3 {
		s += "X"
	}
	return s[:3]
}

// separaLettere normalizza la stringa (maiuscole, senza diacritici né spazi)
// e la divide in consonanti e vocali mantenendo l'ordine.
func separaLettere(s string) (consonanti, vocali string) {
	for _, r := range normalizza(s) {
		switch r {
		case 'A', 'E', 'I', 'O', 'U':
			vocali += string(r)
		default:
			consonanti += string(r)
		}
	}
	return consonanti, vocali
}

// normalizza rimuove i diacritici (es. "Nicolò" -> "NICOLO") e tutto ciò che
// non è lettera A-Z.
func normalizza(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	decomposto, _, err := transform.String(t, s)
	if err != nil {
		decomposto = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(decomposto) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
