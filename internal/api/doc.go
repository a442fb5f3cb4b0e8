// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP interface of the Marquee estimator.

All routes live under /api/v1 on a chi router and answer with the standard
envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","query_time_ms":1}}
	{"status":"error","data":null,"metadata":{...},"error":{"code":"UNKNOWN_GENRE","message":"..."}}

Endpoints:

	GET  /api/v1/health                 service, catalog, engine and cache status
	GET  /api/v1/catalog/genres         genre vocabulary
	GET  /api/v1/catalog/themes         theme weight matrix
	GET  /api/v1/catalog/ratings        rating weight matrix
	GET  /api/v1/catalog/budgets        budget tiers and their recommendation policy
	GET  /api/v1/catalog/seasons        seasonal multipliers
	GET  /api/v1/catalog/features       feature sets, records and presentation settings
	GET  /api/v1/genres/options         ranked primary and secondary genre candidates
	POST /api/v1/estimate               affinity, production plan and resources at once
	POST /api/v1/estimate/affinity      affinity score and season breakdown
	POST /api/v1/estimate/production    production effort split
	POST /api/v1/estimate/resources     recommended extra resources
	GET  /api/v1/live                   WebSocket live session
	GET  /metrics                       Prometheus metrics

Middleware:

Every request gets a request ID, panic recovery and CORS. The REST group adds
per-IP rate limiting (go-chi/httprate), security headers, Prometheus request
metrics, the in-process performance monitor, gzip compression and a request
timeout. The live endpoint has its own, stricter upgrade rate limit and skips
compression and the timeout since the connection is hijacked.

Error Mapping:

  - malformed JSON body: 400 INVALID_REQUEST
  - validator failures: 400 VALIDATION_ERROR with per-field details
  - unknown genre or budget tier: 422 UNKNOWN_GENRE / UNKNOWN_BUDGET_TIER
  - rate limit: 429 RATE_LIMITED
  - live hub full or stopped: 503 SERVICE_UNAVAILABLE

An incomplete selection is not an error: POST /estimate and
POST /estimate/affinity answer 200 with ready set to false.
*/
package api
