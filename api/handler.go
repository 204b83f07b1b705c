package api

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xlog"
)

const (
	genericGenerateError = "Failed to generate CSR"
	genericAnalyzeError  = "Failed to analyze CSR"
)

// Handler serves the CSR generation and analysis endpoints.
type Handler struct {
	prov    *csr.Provider
	version string
	debug   bool
}

// NewHandler returns a Handler over the CSR provider.
// When debug is set, internal failure detail is included in error
// responses; production deployments keep it off.
func NewHandler(prov *csr.Provider, version string, debug bool) *Handler {
	return &Handler{
		prov:    prov,
		version: version,
		debug:   debug,
	}
}

// Generate handles POST /api/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req csr.CertificateRequestDescriptor
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	res, err := h.prov.Generate(&req)
	if err != nil {
		var verr *csr.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		logger.KV(xlog.ERROR, "reason", "generate", "err", err)
		respondError(w, http.StatusInternalServerError, h.internalError(genericGenerateError, err))
		return
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Success:    true,
		CSR:        res.CSR,
		PrivateKey: res.PrivateKey,
		PublicKey:  res.PublicKey,
	})
}

// Analyze handles POST /api/analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}
	if req.CSR == "" {
		respondError(w, http.StatusBadRequest, "csr is required")
		return
	}

	res, err := csr.Analyze([]byte(req.CSR))
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "analyze", "err", err)
		respondError(w, http.StatusInternalServerError, h.internalError(genericAnalyzeError, err))
		return
	}

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Success:            true,
		Subject:            res.Subject,
		PublicKey:          res.PublicKey,
		Extensions:         res.Extensions,
		SignatureAlgorithm: res.SignatureAlgorithm,
		Verified:           res.Verified,
		PEM:                res.PEM,
	})
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// internalError returns the generic message, with detail appended
// only in debug mode.
func (h *Handler) internalError(generic string, err error) string {
	if h.debug {
		return generic + ": " + err.Error()
	}
	return generic
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.KV(xlog.ERROR, "reason", "encode_response", "err", err)
	}
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
