package csr_test

import (
	"testing"

	"github.com/effective-security/xcsr/certutil"
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/keyprov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	prov := csr.NewProvider(keyprov.NewInMemoryProvider())

	tt := []struct {
		name   string
		req    *csr.CertificateRequestDescriptor
		experr string
	}{
		{
			name: "valid rsa",
			req: &csr.CertificateRequestDescriptor{
				CommonName: "test.example.com",
				KeyType:    "RSA",
				KeySize:    2048,
			},
		},
		{
			name: "valid ecdsa",
			req: &csr.CertificateRequestDescriptor{
				CommonName: "test.example.com",
				KeyType:    "ECDSA",
				Curve:      "P-256",
			},
		},
		{
			name:   "no common name",
			req:    &csr.CertificateRequestDescriptor{},
			experr: "commonName is required",
		},
		{
			name: "bad country",
			req: &csr.CertificateRequestDescriptor{
				CommonName: "test.example.com",
				Country:    "USA",
			},
			experr: "country must be a two-letter uppercase ISO code",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			res, err := prov.Generate(tc.req)
			if tc.experr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.experr, err.Error())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.NotEmpty(t, res.CSR)
			assert.NotEmpty(t, res.PrivateKey)
			assert.NotEmpty(t, res.PublicKey)

			csrv, err := certutil.ParseCSRFromPEM([]byte(res.CSR))
			require.NoError(t, err)
			assert.Equal(t, "test.example.com", csrv.Subject.CommonName)
			assert.NoError(t, csrv.CheckSignature())

			key, err := certutil.ParsePrivateKeyPEM([]byte(res.PrivateKey))
			require.NoError(t, err)
			require.NotNil(t, key)
		})
	}
}

func TestGenerateEncryptedKey(t *testing.T) {
	prov := csr.NewProvider(keyprov.NewInMemoryProvider())

	res, err := prov.Generate(&csr.CertificateRequestDescriptor{
		CommonName:  "test.example.com",
		KeyPassword: "Abcdef12",
	})
	require.NoError(t, err)
	assert.Contains(t, res.PrivateKey, "Proc-Type: 4,ENCRYPTED")

	// key is not recoverable without the password
	_, err = certutil.ParsePrivateKeyPEM([]byte(res.PrivateKey))
	require.Error(t, err)

	key, err := certutil.ParsePrivateKeyPEMWithPassword([]byte(res.PrivateKey), []byte("Abcdef12"))
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestGenerateAnalyzeRoundTrip(t *testing.T) {
	prov := csr.NewProvider(keyprov.NewInMemoryProvider())

	req := &csr.CertificateRequestDescriptor{
		CommonName:         "test.example.com",
		Country:            "US",
		State:              "WA",
		Locality:           "Seattle",
		Organization:       "org1",
		OrganizationalUnit: "unit1",
		Email:              "admin@example.com",
		KeyType:            "RSA",
		KeySize:            2048,
		KeyUsage:           []string{"digitalSignature", "keyEncipherment"},
		ExtendedKeyUsage:   []string{"serverAuth", "clientAuth"},
		SubjectAltNames: []csr.SubjectAltName{
			{Type: "DNS", Value: "test.example.com"},
			{Type: "DNS", Value: "*.example.com"},
			{Type: "IP", Value: "10.0.0.1"},
			{Type: "email", Value: "admin@example.com"},
			{Type: "URI", Value: "https://example.com/id"},
		},
		CustomExtensions: []csr.CustomExtension{
			{OID: "1.3.6.1.4.1.99999.1", Critical: false, Value: "hex:0500"},
		},
	}

	generated, err := prov.Generate(req)
	require.NoError(t, err)

	res, err := csr.Analyze([]byte(generated.CSR))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Verified)
	assert.Equal(t, generated.CSR, res.PEM)
	assert.Equal(t, "SHA256-RSA", res.SignatureAlgorithm)

	assert.Equal(t, map[string]string{
		"commonName":         "test.example.com",
		"country":            "US",
		"state":              "WA",
		"locality":           "Seattle",
		"organization":       "org1",
		"organizationalUnit": "unit1",
		"email":              "admin@example.com",
	}, res.Subject)

	assert.Equal(t, "RSA", res.PublicKey.Type)
	assert.Equal(t, 2048, res.PublicKey.Bits)

	assert.ElementsMatch(t, req.KeyUsage, res.Extensions.KeyUsage)
	assert.Equal(t, []string{"1.3.6.1.5.5.7.3.1", "1.3.6.1.5.5.7.3.2"}, res.Extensions.ExtendedKeyUsage)
	assert.Equal(t, req.SubjectAltNames, res.Extensions.SubjectAltNames)
	require.Len(t, res.Extensions.Custom, 1)
	assert.Equal(t, "1.3.6.1.4.1.99999.1", res.Extensions.Custom[0].OID)
	assert.Equal(t, "0500", res.Extensions.Custom[0].Value)
}

func TestAnalyzeECDSA(t *testing.T) {
	prov := csr.NewProvider(keyprov.NewInMemoryProvider())

	generated, err := prov.Generate(&csr.CertificateRequestDescriptor{
		CommonName: "ecdsa.example.com",
		KeyType:    "ECDSA",
		Curve:      "P-384",
	})
	require.NoError(t, err)

	res, err := csr.Analyze([]byte(generated.CSR))
	require.NoError(t, err)

	assert.True(t, res.Verified)
	assert.Equal(t, "ECDSA", res.PublicKey.Type)
	assert.Equal(t, 384, res.PublicKey.Bits)
	assert.Equal(t, "P-384", res.PublicKey.Curve)
	assert.Equal(t, "ECDSA-SHA256", res.SignatureAlgorithm)
}

func TestAnalyzeMalformed(t *testing.T) {
	_, err := csr.Analyze([]byte("not a pem"))
	require.Error(t, err)
	assert.Equal(t, csr.ErrParseFailed, err)

	_, err = csr.Analyze([]byte("-----BEGIN CERTIFICATE REQUEST-----\nZm9v\n-----END CERTIFICATE REQUEST-----\n"))
	require.Error(t, err)
	assert.Equal(t, csr.ErrParseFailed, err)
}
