package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/guttosm/tour-package-service/internal/circuitbreaker"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/i18n"
	"github.com/guttosm/tour-package-service/internal/middleware"
	"github.com/guttosm/tour-package-service/internal/service"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() any { return &dto.SuccessResponse{} },
	}

	errorResponsePool = sync.Pool{
		New: func() any { return &dto.ErrorResponse{} },
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// BindJSON decodes and validates the request body into a T.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BindQuery decodes and validates the query string into a T.
func BindQuery[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindQuery(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResponseBuilder writes SuccessResponse and ErrorResponse envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	b.SuccessWithMessage(statusCode, data, "")
}

// SuccessWithMessage sends data with a localized message key.
func (b *ResponseBuilder) SuccessWithMessage(statusCode int, data any, messageKey string) {
	resp := getSuccessResponse()
	defer putSuccessResponse(resp)

	resp.Data = data
	if messageKey != "" {
		resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	}
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data any) {
	b.Success(http.StatusCreated, data)
}

// NoContent sends 204 without a body.
func (b *ResponseBuilder) NoContent() {
	b.c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code and message key.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.write(statusCode, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)), nil, err)
}

// ErrorWithMessage sends an error response with a custom message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.write(statusCode, message, nil, err)
}

// BindError reports a request that failed binding or validation. Field
// level failures are listed in Details.
func (b *ResponseBuilder) BindError(err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	details := make(map[string]string, len(verrs))
	key := i18n.ErrKeyInvalidRequest
	for i, fe := range verrs {
		field := fieldName(fe)
		details[field] = fe.Tag()
		if i == 0 {
			key = messageKeyForField(field)
		}
	}
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(b.c))
	b.write(http.StatusBadRequest, message, details, err)
}

// Fail maps a service error onto a status code and localized message.
func (b *ResponseBuilder) Fail(err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		message := i18n.GetTranslator().Translate(messageKeyForField(verr.Field), i18n.GetLocale(b.c))
		b.write(http.StatusBadRequest, message, map[string]string{verr.Field: verr.Message}, err)
		return
	}
	status, key := statusForError(err)
	b.Error(status, key, err)
}

func (b *ResponseBuilder) write(statusCode int, message string, details map[string]string, err error) {
	resp := getErrorResponse()
	defer putErrorResponse(resp)

	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// 5xx errors are logged by the ErrorHandler middleware
	if err != nil && statusCode >= http.StatusInternalServerError {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
}

// statusForError returns the status code and message key for a service error.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		return http.StatusNotFound, i18n.ErrKeyPackageNotFound
	case errors.Is(err, service.ErrItineraryNotFound):
		return http.StatusNotFound, i18n.ErrKeyItineraryNotFound
	case errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound, i18n.ErrKeyCategoryNotFound
	case errors.Is(err, service.ErrTrendingNotFound):
		return http.StatusNotFound, i18n.ErrKeyTrendingNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, i18n.ErrKeyConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, i18n.ErrKeyInvalidToken
	case errors.Is(err, service.ErrNoSource):
		return http.StatusServiceUnavailable, i18n.ErrKeyCatalogNotReady
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// messageKeyForField picks the message shown for an invalid field.
func messageKeyForField(field string) string {
	switch field {
	case "price":
		return i18n.ErrKeyInvalidPriceBracket
	case "duration":
		return i18n.ErrKeyInvalidDurationBracket
	case "sort":
		return i18n.ErrKeyInvalidSortKey
	case "rating":
		return i18n.ErrKeyInvalidRating
	case "name", "email", "phone", "travel_date", "travelers", "message":
		return i18n.ErrKeyInvalidLead
	default:
		return i18n.ErrKeyInvalidRequest
	}
}

// fieldName returns the wire name of a failed field, lower snake case.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
