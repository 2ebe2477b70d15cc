package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ruoli riconosciuti dal middleware di autorizzazione.
const (
	RoleManager  = "manager"  // gestore del negozio: genera e scarica qualsiasi fattura
	RoleCustomer = "customer" // cliente: scarica solo le fatture dei propri ordini
)

// Claims include i claim standard JWT più i campi propri dell'applicazione.
// CustomerID è l'id cliente WooCommerce, usato per il controllo di proprietà dell'ordine.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	CustomerID int64  `json:"customer_id,omitempty"`
	Role       string `json:"role"` // "manager" | "customer"
}

// Generate genera un token JWT firmato che include userID, customerID e role.
func Generate(secret, userID string, customerID int64, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vuoto")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     userID,
		CustomerID: customerID,
		Role:       role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida il token e restituisce i claim dell'applicazione.
// Restituisce errore se il token è invalido, scaduto o con firma errata.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vuoto")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metodo di firma inatteso: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalidi")
	}
	return claims, nil
}
