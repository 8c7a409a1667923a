// Package httpx provides the retrying GET helper shared by the schedule,
// match-service, and TMDB clients.
//
// Responses are classified into services error markers: network failures,
// 429 and 5xx become ErrTransient and are retried with exponential backoff;
// 404 becomes ErrNotFound; any other non-2xx status is ErrExternalService.
package httpx
