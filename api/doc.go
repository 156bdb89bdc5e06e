// Package api provides the HTTP API layer for the headlines service.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation and a plain handler signature.
//
// # Architecture
//
// - server.go: Huma API configuration, CORS, logging and rate limiting
// - handlers/: HTTP request handlers, one per resource
// - dto/: request and response bodies plus mappers from domain types
// - middleware/: request ids, request logging and per-client rate limits
//
// # Routes
//
//	GET    /headlines             normalized top headlines
//	GET    /news.json             generated snapshot in the upstream shape
//	GET    /saved                 saved articles, newest first
//	POST   /saved                 save an article
//	POST   /saved/toggle          save or unsave an article
//	DELETE /saved?id=             remove a saved article
//	POST   /reader                reader view for one article URL
//	GET    /proxy/top-headlines   live API pass-through with the server key
//	POST   /events                record an analytics event
//	GET    /events                buffered analytics events
//	GET    /health                liveness and feature flags
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: middleware.NewRateLimiter(10, 20),
//	})
//	handlers.NewHeadlinesHandler(headlinesService, tracker, defaults).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format. Retrieval exhaustion maps to 502
// (503 when the server is misconfigured) with the user-facing reason as the
// detail. The snapshot and proxy routes answer in the upstream
// {"status":"error","message":...} shape instead, since clients treat them as
// news endpoints.
package api
