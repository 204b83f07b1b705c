// Package api exposes the certificate request generation and analysis
// operations over HTTP.
//
// The surface is deliberately small: POST /api/generate accepts a
// descriptor-shaped JSON body and returns the PEM triple, POST
// /api/analyze accepts a PEM encoded request and returns the
// descriptor-shaped view, and GET /api/health reports liveness.
// Nothing is persisted across requests.
package api
