// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	apperrors "headlines-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if apperrors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if apperrors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	// Exhaustion carries the user-facing reason, so its message is the title
	if apperrors.IsExhausted(err) {
		if apperrors.IsConfiguration(err) {
			return huma.Error503ServiceUnavailable(err.Error())
		}
		return huma.Error502BadGateway(err.Error())
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
