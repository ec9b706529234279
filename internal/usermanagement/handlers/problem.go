package handlers

import (
	"errors"
	"net/http"

	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const problemContentType = "application/problem+json"

// ProblemDetails is the RFC 9457 error body returned by every endpoint.
type ProblemDetails struct {
	Type     string              `json:"type"`
	Title    string              `json:"title"`
	Status   int                 `json:"status"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Code     string              `json:"code,omitempty"`
}

var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	http.StatusUnauthorized:        "https://tools.ietf.org/html/rfc9110#section-15.5.2",
	http.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	http.StatusConflict:            "https://tools.ietf.org/html/rfc9110#section-15.5.10",
	http.StatusTooManyRequests:     "https://tools.ietf.org/html/rfc6585#section-4",
	http.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
}

func newProblem(status int, detail string) ProblemDetails {
	return ProblemDetails{
		Type:   problemTypes[status],
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// mapServiceError maps domain or repository errors to a problem document.
// Causes of 500s are logged and never returned to the client.
func mapServiceError(err error, logger *zap.Logger) ProblemDetails {
	var verr *e.ValidationError
	if errors.As(err, &verr) {
		p := newProblem(http.StatusBadRequest, "One or more validation errors occurred.")
		p.Errors = verr.Fields
		if termsRejected(verr) {
			p.Code = "terms_not_accepted"
		}
		return p
	}

	var p ProblemDetails
	switch {
	case errors.Is(err, e.ErrInvalidInput):
		p = newProblem(http.StatusBadRequest, detailOf(err))
		if errors.Is(err, e.ErrTermsNotAccepted) {
			p.Code = "terms_not_accepted"
		}
	case errors.Is(err, e.ErrUnauthorized):
		p = newProblem(http.StatusUnauthorized, detailOf(err))
	case errors.Is(err, e.ErrNotFound):
		p = newProblem(http.StatusNotFound, detailOf(err))
	case errors.Is(err, e.ErrAlreadyExists), errors.Is(err, e.ErrConcurrencyConflict):
		p = newProblem(http.StatusConflict, detailOf(err))
		switch {
		case errors.Is(err, e.ErrUsernameAlreadyExists):
			p.Code = "username_taken"
		case errors.Is(err, e.ErrEmailAlreadyExists):
			p.Code = "email_taken"
		case errors.Is(err, e.ErrConcurrencyConflict):
			p.Code = "concurrency_conflict"
		}
	case errors.Is(err, e.ErrRateLimited):
		p = newProblem(http.StatusTooManyRequests, detailOf(err))
	default:
		logger.Error("Internal server error", zap.Error(err))
		p = newProblem(http.StatusInternalServerError, "An unexpected error occurred.")
	}
	return p
}

func termsRejected(verr *e.ValidationError) bool {
	_, tos := verr.Fields["acceptTermsOfService"]
	_, privacy := verr.Fields["acceptPrivacyPolicy"]
	return tos || privacy
}

// detailOf prefers the client-facing message of a DetailedError over the
// wrapped error chain.
func detailOf(err error) string {
	var d *e.DetailedError
	if errors.As(err, &d) {
		return d.Detail
	}
	return err.Error()
}

func writeProblem(c *gin.Context, p ProblemDetails) {
	p.Instance = c.Request.URL.Path
	c.Header("Content-Type", problemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}

// abortWithError renders err as a problem document. It also serves as the
// failure callback of the auth and rate-limit middleware.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	writeProblem(c, mapServiceError(err, h.logger))
}
