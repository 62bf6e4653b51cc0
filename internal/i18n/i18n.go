// Package i18n provides internationalization support for the costing service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "es-CO,es;q=0.9,en;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":        "Invalid request",
			"error.invalid_request_body":   "Invalid request body",
			"error.internal_error":         "An unexpected error occurred",
			"error.unauthorized":           "Unauthorized",
			"error.invalid_credentials":    "Invalid email or password",
			"error.api_key_required":       "API key is required",
			"error.invalid_api_key":        "Invalid API key",
			"error.forbidden":              "Forbidden",
			"error.not_found":              "Not found",
			"error.session_not_found":      "Costing session not found or expired",
			"error.rate_limit_exceeded":    "Too many requests, please try again later",
			"error.conflict":               "Conflict",
			"error.incomplete_step":        "The current step is missing required information",
			"error.zero_purchase_quantity": "Purchase quantity cannot be zero",
			"error.not_all_costed":         "All ingredients must be costed before calculating",
			"error.session_ended":          "This costing session has already been accepted",
			"error.too_many_sessions":      "Too many active sessions, please try again later",
			"error.invalid_token":          "Invalid or expired token",
			"error.token_required":         "Authentication token is required",
			"error.timeout":                "Request timed out",

			// Success messages
			"success.cost_calculated": "Cost calculation completed successfully",
			"success.cost_accepted":   "Cost result accepted and saved",
		},
		"es": {
			// Error messages
			"error.invalid_request":        "Solicitud inválida",
			"error.invalid_request_body":   "Cuerpo de la solicitud inválido",
			"error.internal_error":         "Ocurrió un error inesperado",
			"error.unauthorized":           "No autorizado",
			"error.invalid_credentials":    "Correo o contraseña inválidos",
			"error.api_key_required":       "Se requiere una clave de API",
			"error.invalid_api_key":        "Clave de API inválida",
			"error.forbidden":              "Prohibido",
			"error.not_found":              "No encontrado",
			"error.session_not_found":      "Sesión de costeo no encontrada o expirada",
			"error.rate_limit_exceeded":    "Demasiadas solicitudes, intenta de nuevo más tarde",
			"error.conflict":               "Conflicto",
			"error.incomplete_step":        "Al paso actual le falta información requerida",
			"error.zero_purchase_quantity": "La cantidad de compra no puede ser cero",
			"error.not_all_costed":         "Todos los ingredientes deben estar costeados antes de calcular",
			"error.session_ended":          "Esta sesión de costeo ya fue aceptada",
			"error.too_many_sessions":      "Demasiadas sesiones activas, intenta de nuevo más tarde",
			"error.invalid_token":          "Token inválido o expirado",
			"error.token_required":         "Se requiere un token de autenticación",
			"error.timeout":                "La solicitud expiró",

			// Success messages
			"success.cost_calculated": "Cálculo de costos completado con éxito",
			"success.cost_accepted":   "Resultado de costos aceptado y guardado",
		},
	}
}
