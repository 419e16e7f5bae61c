package cloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/oukeidos/glosst/internal/apperrors"
	"google.golang.org/api/googleapi"
)

func classifyCloudError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	wrapped := fmt.Errorf("cloud translateText failed: %w", err)

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 400:
			return apperrors.New(apperrors.KindBadRequest, "Cloud Translation rejected the request (400). Check the language pair and glossary.", wrapped)
		case gerr.Code == 404:
			return apperrors.New(apperrors.KindBadRequest, "Cloud Translation project or glossary not found (404).", wrapped)
		case gerr.Code == 401 || gerr.Code == 403:
			return apperrors.New(apperrors.KindAuth, fmt.Sprintf("Cloud Translation authentication/authorization failed (%d).", gerr.Code), wrapped)
		case gerr.Code == 429:
			return apperrors.New(apperrors.KindRateLimit, "Cloud Translation quota exceeded (429). Please try again later.", wrapped)
		case gerr.Code >= 500:
			return apperrors.New(apperrors.KindTransient, fmt.Sprintf("Cloud Translation temporary error (%d).", gerr.Code), wrapped)
		default:
			return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("Cloud Translation API error (%d).", gerr.Code), wrapped)
		}
	}

	return apperrors.New(apperrors.KindTransient, "Cloud Translation request failed due to a network error.", wrapped)
}
