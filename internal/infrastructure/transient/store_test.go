package transient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Il test interno pilota l'orologio dello store per verificare la scadenza
// senza sleep.
func TestStore_ScadenzaPilotata(t *testing.T) {
	s := NewStore()
	adesso := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return adesso }

	s.Set("link", "https://example.com/doc.pdf", 15*time.Minute)

	v, ok := s.Get("link")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/doc.pdf", v)

	// entro il TTL resta un hit
	adesso = adesso.Add(14 * time.Minute)
	_, ok = s.Get("link")
	assert.True(t, ok)

	// oltre il TTL diventa un miss e la voce viene rimossa
	adesso = adesso.Add(2 * time.Minute)
	_, ok = s.Get("link")
	assert.False(t, ok)
	_, ok = s.Get("link")
	assert.False(t, ok)
}

func TestStore_MissSuChiaveAssente(t *testing.T) {
	s := NewStore()
	_, ok := s.Get("inesistente")
	assert.False(t, ok)
}

func TestStore_SetSovrascrive(t *testing.T) {
	s := NewStore()
	s.Set("k", "v1", time.Hour)
	s.Set("k", "v2", time.Hour)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	s.Set("k", "v", time.Hour)
	s.Delete("k")
	_, ok := s.Get("k")
	assert.False(t, ok)
}
