package csr

import (
	"crypto/rand"
	"crypto/x509"
	"time"

	"github.com/effective-security/xcsr/certutil"
	"github.com/effective-security/xcsr/keyprov"
	"github.com/effective-security/xcsr/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "csr")

// Provider extends the key provider with certificate request
// generation.
type Provider struct {
	provider keyprov.Provider
}

// NewProvider returns an instance of CSR provider
func NewProvider(provider keyprov.Provider) *Provider {
	return &Provider{provider: provider}
}

// Generate validates the descriptor, generates a key pair, and returns
// the signed request and the key pair, all PEM encoded. When the
// descriptor carries a key password, the private key export is
// encrypted under it.
//
// Validation failures are returned as *ValidationError; any key
// provider or signer failure is reported as ErrGenerationFailed
// without collaborator detail.
func (c *Provider) Generate(req *CertificateRequestDescriptor) (*GeneratedRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kr, err := req.KeyRequest()
	if err != nil {
		return nil, err
	}
	defer metricskey.PerfCSRGenerate.MeasureSince(time.Now(), kr.Algo())

	extensions, err := req.Extensions()
	if err != nil {
		return nil, err
	}

	signer, err := c.provider.GenerateKey(kr.Algo(), kr.Size())
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "generate_key", "algo", kr.Algo(), "size", kr.Size(), "err", err)
		return nil, ErrGenerationFailed
	}

	template := x509.CertificateRequest{
		Subject:            req.Name(),
		SignatureAlgorithm: kr.SigAlgo(),
		ExtraExtensions:    extensions,
	}

	der, err := x509.CreateCertificateRequest(rand.Reader, &template, signer)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "create_request", "cn", req.CommonName, "err", err)
		return nil, ErrGenerationFailed
	}

	pubPEM, err := certutil.EncodePublicKeyToPEM(signer.Public())
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "encode_public_key", "err", err)
		return nil, ErrGenerationFailed
	}

	var keyPEM []byte
	if req.KeyPassword != "" {
		keyPEM, err = certutil.EncryptPrivateKeyToPEM(signer, []byte(req.KeyPassword))
	} else {
		keyPEM, err = certutil.EncodePrivateKeyToPEM(signer)
	}
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "encode_private_key", "err", err)
		return nil, ErrGenerationFailed
	}

	return &GeneratedRequest{
		CSR:        string(certutil.EncodeCSRToPEM(der)),
		PrivateKey: string(keyPEM),
		PublicKey:  string(pubPEM),
	}, nil
}
