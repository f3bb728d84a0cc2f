package middleware

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "cbpmetrics/internal/errors"
)

// Validator decodes JSON request bodies and validates them using struct tags
type Validator struct {
	validator   *validator.Validate
	logger      *slog.Logger
	maxBodySize int64
}

// NewValidator creates a request validator. Bodies above maxBodySize bytes are
// rejected.
func NewValidator(logger *slog.Logger, maxBodySize int64) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("industry", isIndustryCode)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator:   v,
		logger:      logger.With(slog.String("component", "validator")),
		maxBodySize: maxBodySize,
	}
}

// Decode reads the JSON body of r into dst and validates it. The returned
// error is an *errors.APIError ready for the error handler.
func (m *Validator) Decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.ContentLength > m.maxBodySize {
		return apierrors.NewWithDetails(
			http.StatusRequestEntityTooLarge,
			"PAYLOAD_TOO_LARGE",
			"Request body exceeds maximum allowed size",
			map[string]interface{}{
				"max_size": m.maxBodySize,
				"size":     r.ContentLength,
			},
		)
	}

	body := http.MaxBytesReader(w, r.Body, m.maxBodySize)
	if err := render.DecodeJSON(body, dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apierrors.ErrPayloadTooLarge
		case errors.Is(err, io.EOF):
			return apierrors.New(http.StatusBadRequest, "INVALID_REQUEST", "Request body is empty")
		default:
			m.logger.DebugContext(r.Context(), "request body rejected",
				slog.String("error", err.Error()),
				slog.String("request_id", GetRequestID(r.Context())))
			return apierrors.InvalidRequestWithError(err)
		}
	}

	return m.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (m *Validator) ValidateStruct(v interface{}) error {
	err := m.validator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fieldPath(fe),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// ContentTypeValidator ensures requests with a body declare an allowed content
// type
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				"Unsupported content type",
				map[string]interface{}{
					"content_type": contentType,
					"allowed":      contentTypes,
				},
			))
		})
	}
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", field, param)
	case "max":
		return fmt.Sprintf("%s must contain at most %s entries", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "industry":
		return fmt.Sprintf("%s must be an industry code", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isIndustryCode accepts NAICS codes as CBP writes them: digits, sector ranges
// such as "31-33" and the padded forms "11----" and "113///".
func isIndustryCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" || len(code) > 10 {
		return false
	}
	for _, ch := range code {
		if !((ch >= '0' && ch <= '9') || ch == '-' || ch == '/') {
			return false
		}
	}
	return true
}
