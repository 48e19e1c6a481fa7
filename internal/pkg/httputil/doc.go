// Package httputil provides shared HTTP response/request helpers for handlers.
//
// Handlers use these instead of raw http.ResponseWriter calls so every
// endpoint produces the same JSON envelope, error structure, and logging.
package httputil
