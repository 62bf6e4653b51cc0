package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name     string
		key      string
		locale   string
		expected string
	}{
		{
			name:     "english message",
			key:      ErrKeySessionNotFound,
			locale:   "en",
			expected: "Costing session not found or expired",
		},
		{
			name:     "spanish message",
			key:      ErrKeySessionNotFound,
			locale:   "es",
			expected: "Sesión de costeo no encontrada o expirada",
		},
		{
			name:     "empty locale falls back to english",
			key:      ErrKeySessionNotFound,
			locale:   "",
			expected: "Costing session not found or expired",
		},
		{
			name:     "unknown locale falls back to english",
			key:      ErrKeySessionNotFound,
			locale:   "fr",
			expected: "Costing session not found or expired",
		},
		{
			name:     "unknown key returns the key itself",
			key:      "error.does_not_exist",
			locale:   "en",
			expected: "error.does_not_exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetTranslator_Singleton(t *testing.T) {
	first := GetTranslator()
	second := GetTranslator()
	assert.Same(t, first, second)
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "no header", header: "", expected: "en"},
		{name: "plain spanish", header: "es", expected: "es"},
		{name: "regional spanish", header: "es-CO,es;q=0.9,en;q=0.8", expected: "es"},
		{name: "english with quality", header: "en-US,en;q=0.5", expected: "en"},
		{name: "unsupported language", header: "fr-FR,fr;q=0.9", expected: "en"},
		{name: "uppercase language tag", header: "ES-MX", expected: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.header)
			}
			assert.Equal(t, tt.expected, GetLocale(c))
		})
	}
}
