package gemini

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/oukeidos/glosst/internal/apperrors"
	"google.golang.org/api/googleapi"
)

func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("gemini generate content failed: %w", err)

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		// DNS, socket and timeout failures are usually transient.
		return apperrors.New(apperrors.KindTransient, "Gemini request failed due to a temporary network error.", wrapped)
	}
	switch code := gerr.Code; {
	case code == http.StatusNotFound:
		return apperrors.New(apperrors.KindBadRequest, "Gemini model not found or no access (404).", wrapped)
	case code == http.StatusBadRequest:
		return apperrors.New(apperrors.KindBadRequest, "Gemini request rejected (400).", wrapped)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperrors.New(apperrors.KindAuth, fmt.Sprintf("Gemini authentication failed (%d).", code), wrapped)
	case code == http.StatusTooManyRequests:
		return apperrors.New(apperrors.KindRateLimit, "Gemini rate limit exceeded (429). Please try again later.", wrapped)
	case code >= 500:
		return apperrors.New(apperrors.KindTransient, fmt.Sprintf("Gemini service temporary error (%d).", code), wrapped)
	default:
		return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("Gemini API error (%d).", code), wrapped)
	}
}
