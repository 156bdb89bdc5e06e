// Package core contains the business logic for the Headlines API.
// It is framework-agnostic and can be used independently of any web
// framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (RawArticle, Article, HeadlinesRequest, Event, ReaderView)
// - identity: URL normalization, article ids and canonical conversion
// - headlines: Top-headlines retrieval with endpoint fallback and retries
// - saved: Per-user saved articles keyed by article id
// - reader: Readable article extraction
// - analytics: Event tracking fanned out to pluggable sinks
// - snapshot: Generation of the news.json artifact
// - workers: Bounded background task dispatcher
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, storage)
//
// All external dependencies are injected via interfaces, so services are
// testable in isolation.
//
// # Usage Example
//
//	import (
//	    "headlines-api/core/domain"
//	    "headlines-api/core/headlines"
//	    "headlines-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	service := headlines.NewService(deps, headlines.Config{})
//	result, err := service.FetchTopHeadlines(ctx, domain.HeadlinesRequest{
//	    Country:  "us",
//	    Category: domain.CategoryAll,
//	    PageSize: 10,
//	    Platform: domain.PlatformNative,
//	    APIKey:   key,
//	})
package core
