// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus instrumentation for the estimator service.

Collectors are package-level and registered with the default registry through promauto.
Callers use the Record* helpers rather than touching collectors directly.

# Metrics Endpoint

	curl http://localhost:8437/metrics

# Available Metrics

Estimator:
  - estimator_computations_total{computation,outcome}
  - estimator_computation_duration_seconds{computation}
  - estimator_recommended_resources{list}
  - estimator_backfilled_resources_total{list}
  - debounce_tasks_total{outcome}

Catalog:
  - catalog_entries{kind}
  - catalog_integrity_violations

API and transport:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}
  - websocket_connections, websocket_messages_sent_total, websocket_messages_received_total
  - websocket_errors_total{error_type}

Cache:
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total{cache_type}
*/
package metrics
