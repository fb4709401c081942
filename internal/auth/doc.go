// Package auth provides HTTP authentication middleware for historyd.
//
// APIKeyMiddleware(mode, header, key) wraps an http.Handler and validates
// the API key from the named request header. When mode != "apikey" or
// key == "", every request passes through (useful for local development
// with auth disabled). A missing or incorrect key returns 401.
//
// This mirrors the teacher's gRPC APIKeyInterceptor, carried over to an
// HTTP transport since historyd's external interface is a REST API, not
// gRPC.
package auth
