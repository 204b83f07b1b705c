package api

import (
	"github.com/effective-security/xcsr/csr"
)

// GenerateResponse is the body of a successful POST /api/generate.
type GenerateResponse struct {
	Success    bool   `json:"success"`
	CSR        string `json:"csr"`
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	CSR string `json:"csr"`
}

// AnalyzeResponse is the body of a successful POST /api/analyze.
type AnalyzeResponse struct {
	Success            bool                   `json:"success"`
	Subject            map[string]string      `json:"subject"`
	PublicKey          csr.PublicKeyInfo      `json:"publicKey"`
	Extensions         csr.AnalyzedExtensions `json:"extensions"`
	SignatureAlgorithm string                 `json:"signatureAlgorithm"`
	Verified           bool                   `json:"verified"`
	PEM                string                 `json:"pem"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
