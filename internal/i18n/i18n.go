// Package i18n translates user-facing messages for the en, pt and nl locales.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

var supportedTags = []language.Tag{
	language.English,
	language.Portuguese,
	language.Dutch,
}

var matcher = language.NewMatcher(supportedTags)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator returns a translator loaded with the built-in catalog.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages()}
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to English
// and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// ParseLocale matches an Accept-Language value against the supported
// locales, honoring q-weights.
func ParseLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := supportedTags[idx].Base()
	return base.String()
}

// GetLocale returns the request locale from the Accept-Language header.
func GetLocale(c *gin.Context) string {
	return ParseLocale(c.GetHeader(AcceptLanguageHeader))
}

func defaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:         "Invalid request",
			ErrKeyInvalidRequestBody:     "Invalid request body",
			ErrKeyInternalError:          "An unexpected error occurred",
			ErrKeyUnauthorized:           "Unauthorized",
			ErrKeyInvalidCredentials:     "Invalid email or password",
			ErrKeyAPIKeyRequired:         "API key is required",
			ErrKeyInvalidAPIKey:          "Invalid API key",
			ErrKeyForbidden:              "Forbidden",
			ErrKeyNotFound:               "Not found",
			ErrKeyPackageNotFound:        "Tour package not found",
			ErrKeyItineraryNotFound:      "Itinerary not found",
			ErrKeyCategoryNotFound:       "Category not found",
			ErrKeyTrendingNotFound:       "Trending destination not found",
			ErrKeyCatalogNotReady:        "The catalog is still loading, please try again",
			ErrKeyRateLimitExceeded:      "Too many requests, please try again later",
			ErrKeyConflict:               "Conflict",
			ErrKeyInvalidToken:           "Invalid or expired token",
			ErrKeyTokenRequired:          "Authentication token is required",
			ErrKeyTimeout:                "The request took too long",
			ErrKeyUnavailable:            "Service temporarily unavailable",
			ErrKeyUpstreamFailed:         "Could not load packages, please try again",
			ErrKeyInvalidPriceBracket:    "price: use a range like 1000-2500 or 5000+",
			ErrKeyInvalidDurationBracket: "duration: use a range of days like 1-3 or 15+",
			ErrKeyInvalidSortKey:         "sort: unsupported sort order",
			ErrKeyInvalidRating:          "rating: must be between 0 and 5",
			ErrKeyInvalidLead:            "Please check the highlighted fields",
			SuccessKeyLeadReceived:       "Thank you, our travel experts will contact you shortly",
			SuccessKeyCatalogRefreshed:   "Catalog refreshed",
		},
		"pt": {
			ErrKeyInvalidRequest:         "Requisição inválida",
			ErrKeyInvalidRequestBody:     "Corpo da requisição inválido",
			ErrKeyInternalError:          "Ocorreu um erro inesperado",
			ErrKeyUnauthorized:           "Não autorizado",
			ErrKeyInvalidCredentials:     "E-mail ou senha inválidos",
			ErrKeyAPIKeyRequired:         "Chave de API é obrigatória",
			ErrKeyInvalidAPIKey:          "Chave de API inválida",
			ErrKeyForbidden:              "Proibido",
			ErrKeyNotFound:               "Não encontrado",
			ErrKeyPackageNotFound:        "Pacote de viagem não encontrado",
			ErrKeyItineraryNotFound:      "Roteiro não encontrado",
			ErrKeyCategoryNotFound:       "Categoria não encontrada",
			ErrKeyTrendingNotFound:       "Destino em alta não encontrado",
			ErrKeyCatalogNotReady:        "O catálogo ainda está carregando, tente novamente",
			ErrKeyRateLimitExceeded:      "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:               "Conflito",
			ErrKeyInvalidToken:           "Token inválido ou expirado",
			ErrKeyTokenRequired:          "Token de autenticação é obrigatório",
			ErrKeyTimeout:                "A requisição demorou demais",
			ErrKeyUnavailable:            "Serviço temporariamente indisponível",
			ErrKeyUpstreamFailed:         "Não foi possível carregar os pacotes, tente novamente",
			ErrKeyInvalidPriceBracket:    "price: use uma faixa como 1000-2500 ou 5000+",
			ErrKeyInvalidDurationBracket: "duration: use uma faixa de dias como 1-3 ou 15+",
			ErrKeyInvalidSortKey:         "sort: ordenação não suportada",
			ErrKeyInvalidRating:          "rating: deve estar entre 0 e 5",
			ErrKeyInvalidLead:            "Verifique os campos destacados",
			SuccessKeyLeadReceived:       "Obrigado, nossos especialistas entrarão em contato em breve",
			SuccessKeyCatalogRefreshed:   "Catálogo atualizado",
		},
		"nl": {
			ErrKeyInvalidRequest:         "Ongeldig verzoek",
			ErrKeyInvalidRequestBody:     "Ongeldige aanvraag body",
			ErrKeyInternalError:          "Er is een onverwachte fout opgetreden",
			ErrKeyUnauthorized:           "Niet geautoriseerd",
			ErrKeyInvalidCredentials:     "Ongeldig e-mailadres of wachtwoord",
			ErrKeyAPIKeyRequired:         "API-sleutel is vereist",
			ErrKeyInvalidAPIKey:          "Ongeldige API-sleutel",
			ErrKeyForbidden:              "Verboden",
			ErrKeyNotFound:               "Niet gevonden",
			ErrKeyPackageNotFound:        "Reispakket niet gevonden",
			ErrKeyItineraryNotFound:      "Reisschema niet gevonden",
			ErrKeyCategoryNotFound:       "Categorie niet gevonden",
			ErrKeyTrendingNotFound:       "Populaire bestemming niet gevonden",
			ErrKeyCatalogNotReady:        "De catalogus wordt nog geladen, probeer het opnieuw",
			ErrKeyRateLimitExceeded:      "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:               "Conflict",
			ErrKeyInvalidToken:           "Ongeldig of verlopen token",
			ErrKeyTokenRequired:          "Authenticatietoken is vereist",
			ErrKeyTimeout:                "Het verzoek duurde te lang",
			ErrKeyUnavailable:            "Dienst tijdelijk niet beschikbaar",
			ErrKeyUpstreamFailed:         "Pakketten konden niet worden geladen, probeer het opnieuw",
			ErrKeyInvalidPriceBracket:    "price: gebruik een bereik zoals 1000-2500 of 5000+",
			ErrKeyInvalidDurationBracket: "duration: gebruik een aantal dagen zoals 1-3 of 15+",
			ErrKeyInvalidSortKey:         "sort: niet ondersteunde sortering",
			ErrKeyInvalidRating:          "rating: moet tussen 0 en 5 liggen",
			ErrKeyInvalidLead:            "Controleer de gemarkeerde velden",
			SuccessKeyLeadReceived:       "Bedankt, onze reisexperts nemen spoedig contact met u op",
			SuccessKeyCatalogRefreshed:   "Catalogus vernieuwd",
		},
	}
}
