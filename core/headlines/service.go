// ABOUTME: Headlines service retrieves top headlines with timeout, retry and endpoint fallback
// ABOUTME: Normalizes and deduplicates the first sufficient upstream response

package headlines

import (
	"context"
	"errors"
	"io"
	"time"

	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
	"headlines-api/core/identity"
	"headlines-api/core/interfaces"
)

const (
	maxUpstreamPageSize    = 50
	overfetchMultiplier    = 3
	maxAttemptsPerEndpoint = 3

	// DefaultAttemptTimeout bounds a single HTTP attempt
	DefaultAttemptTimeout = 8 * time.Second

	// DefaultBackoffStep is multiplied by the attempt number between retries
	DefaultBackoffStep = 300 * time.Millisecond

	// SnapshotHint is appended to web failures
	SnapshotHint = "Ensure /news.json is generated during deploy."
)

// Config holds the service settings. Zero values fall back to defaults.
type Config struct {
	LiveURL        string
	SnapshotURL    string
	AttemptTimeout time.Duration
	BackoffStep    time.Duration

	// Sleep waits between attempts; it must return early when ctx is done
	Sleep func(ctx context.Context, d time.Duration) error

	// Now is the clock used for default publication dates and cache busting
	Now func() time.Time
}

// Service retrieves top headlines. It holds no per-call state and is safe for concurrent use.
type Service struct {
	deps   interfaces.Dependencies
	logger interfaces.Logger
	cfg    Config
}

// NewService creates a new headlines service
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.LiveURL == "" {
		cfg.LiveURL = DefaultLiveURL
	}
	if cfg.SnapshotURL == "" {
		cfg.SnapshotURL = DefaultSnapshotURL
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = DefaultAttemptTimeout
	}
	if cfg.BackoffStep <= 0 {
		cfg.BackoffStep = DefaultBackoffStep
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		deps:   deps,
		logger: deps.LoggerOrNop(),
		cfg:    cfg,
	}
}

// FetchTopHeadlines returns at most req.PageSize normalized, unique articles.
//
// Endpoints are tried in order with up to three attempts each. An endpoint whose
// response yields fewer than PageSize articles is abandoned for the next one, and
// its articles are discarded. When nothing usable is produced the returned
// *errors.ExhaustedError carries the last failure.
func (s *Service) FetchTopHeadlines(ctx context.Context, req domain.HeadlinesRequest) (*domain.HeadlinesResult, error) {
	if req.PageSize < 1 {
		return nil, &apperrors.ValidationError{Field: "pageSize", Message: "must be a positive integer"}
	}
	if req.Country == "" {
		return nil, &apperrors.ValidationError{Field: "country", Message: "cannot be empty"}
	}
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	fetchSize := overfetchSize(req.PageSize)
	endpoints := SelectEndpoints(req.Platform, req.APIKey != "", s.cfg.LiveURL, s.cfg.SnapshotURL)

	var lastErr error
	var accepted []domain.Article
	var acceptedFrom EndpointKind

endpointLoop:
	for i, ep := range endpoints {
		hasNext := i < len(endpoints)-1

		for attempt := 1; attempt <= maxAttemptsPerEndpoint; attempt++ {
			raws, err := s.attempt(ctx, ep, req, fetchSize)
			if err != nil {
				lastErr = err
				s.logger.Warn("Headline attempt failed", map[string]interface{}{
					"endpoint": string(ep.Kind),
					"attempt":  attempt,
					"error":    err.Error(),
				})

				if ctx.Err() != nil {
					break endpointLoop
				}
				if !apperrors.IsRetryable(err) {
					break
				}
				if attempt < maxAttemptsPerEndpoint {
					if err := s.cfg.Sleep(ctx, s.cfg.BackoffStep*time.Duration(attempt)); err != nil {
						break endpointLoop
					}
				}
				continue
			}

			articles := identity.MapAndDedup(raws, req.PageSize, s.cfg.Now())
			if len(articles) < req.PageSize && hasNext {
				s.logger.Info("Insufficient headlines, trying next endpoint", map[string]interface{}{
					"endpoint":  string(ep.Kind),
					"articles":  len(articles),
					"page_size": req.PageSize,
				})
				continue endpointLoop
			}

			accepted = articles
			acceptedFrom = ep.Kind
			break endpointLoop
		}
	}

	if len(accepted) == 0 {
		exhausted := &apperrors.ExhaustedError{Cause: lastErr}
		if req.IsWeb() {
			exhausted.Hint = SnapshotHint
		}
		s.logger.Error("Unable to load headlines", map[string]interface{}{
			"platform": string(req.Platform),
			"error":    exhausted.Error(),
		})
		return nil, exhausted
	}

	s.logger.Info("Headlines loaded", map[string]interface{}{
		"endpoint": string(acceptedFrom),
		"articles": len(accepted),
		"country":  req.Country,
		"category": req.Category,
	})

	return &domain.HeadlinesResult{
		Articles: accepted,
		Endpoint: string(acceptedFrom),
	}, nil
}

// attempt performs one bounded HTTP call and returns the raw articles of a structurally valid response
func (s *Service) attempt(ctx context.Context, ep Endpoint, req domain.HeadlinesRequest, fetchSize int) ([]domain.RawArticle, error) {
	target, err := buildRequestURL(ep, req, fetchSize, s.cfg.Now())
	if err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()

	s.logger.Debug("Requesting headlines", map[string]interface{}{
		"endpoint":  string(ep.Kind),
		"page_size": fetchSize,
		"country":   req.Country,
	})

	resp, err := s.deps.HTTPClient.Get(attemptCtx, target)
	if err != nil {
		return nil, transportError(ep, attemptCtx, err)
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, transportError(ep, attemptCtx, err)
	}

	payload, err := parsePayload(ep, resp.StatusCode(), resp.Header("Content-Type"), body)
	if err != nil {
		return nil, err
	}
	return payload.Articles, nil
}

func transportError(ep Endpoint, attemptCtx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &apperrors.TransportError{Endpoint: string(ep.Kind), Message: msgTimedOut, Err: err}
	}
	return &apperrors.TransportError{Endpoint: string(ep.Kind), Message: err.Error(), Err: err}
}

// RetryBudget is the longest FetchTopHeadlines can run when every attempt on
// every endpoint times out, with attemptTimeout per attempt and the default backoff
func RetryBudget(attemptTimeout time.Duration, endpoints int) time.Duration {
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	var backoff time.Duration
	for attempt := 1; attempt < maxAttemptsPerEndpoint; attempt++ {
		backoff += DefaultBackoffStep * time.Duration(attempt)
	}
	perEndpoint := attemptTimeout*maxAttemptsPerEndpoint + backoff
	return perEndpoint * time.Duration(endpoints)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
