// ABOUTME: Response DTOs for reader view API endpoints
// ABOUTME: Defines the structure for reader view extraction responses

package responses

import "headlines-api/core/domain"

// ReaderViewResponse wraps a single reader view
type ReaderViewResponse struct {
	View domain.ReaderView `json:"view"`
}
