package csr

import (
	"crypto/x509"
	"encoding/asn1"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/effective-security/xcsr/oid"
	"github.com/pkg/errors"
)

const (
	// KeyTypeRSA is the RSA key algorithm name
	KeyTypeRSA = "RSA"
	// KeyTypeECDSA is the ECDSA key algorithm name
	KeyTypeECDSA = "ECDSA"

	// DefaultRSAKeySize is used when the descriptor does not specify a size
	DefaultRSAKeySize = 2048
	// DefaultCurve is used when the descriptor does not specify a curve
	DefaultCurve = "P-256"
)

// SAN entry types
const (
	SANTypeDNS   = "DNS"
	SANTypeIP    = "IP"
	SANTypeEmail = "email"
	SANTypeURI   = "URI"
)

// SubjectAltName is a single typed Subject Alternative Name entry.
type SubjectAltName struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// CustomExtension represents a raw extension to be included in the request.
// The value may be prefixed with "hex:" or "base64:", otherwise hex
// decoding is tried first, then base64, then the raw string bytes are used.
type CustomExtension struct {
	OID      string `json:"oid" yaml:"oid"`
	Critical bool   `json:"critical" yaml:"critical"`
	Value    string `json:"value" yaml:"value"`
}

// CertificateRequestDescriptor encapsulates the API interface to the
// certificate request functionality: the subject identity, the key
// specification, and the requested extensions.
type CertificateRequestDescriptor struct {
	// CommonName of the Subject
	CommonName string `json:"commonName" yaml:"commonName"`
	// Country is the two-letter ISO code of the Subject
	Country            string `json:"country,omitempty" yaml:"country,omitempty"`
	State              string `json:"state,omitempty" yaml:"state,omitempty"`
	Locality           string `json:"locality,omitempty" yaml:"locality,omitempty"`
	Organization       string `json:"organization,omitempty" yaml:"organization,omitempty"`
	OrganizationalUnit string `json:"organizationalUnit,omitempty" yaml:"organizationalUnit,omitempty"`
	Email              string `json:"email,omitempty" yaml:"email,omitempty"`

	// KeyType is RSA or ECDSA, defaults to RSA
	KeyType string `json:"keyType,omitempty" yaml:"keyType,omitempty"`
	// KeySize is the RSA modulus size, one of 2048, 3072, 4096
	KeySize int `json:"keySize,omitempty" yaml:"keySize,omitempty"`
	// Curve is the ECDSA curve, one of P-256, P-384, P-521
	Curve string `json:"curve,omitempty" yaml:"curve,omitempty"`
	// KeyPassword guards the private key export encryption
	KeyPassword string `json:"keyPassword,omitempty" yaml:"keyPassword,omitempty"`

	// KeyUsage is the set of requested key usage flags
	KeyUsage []string `json:"keyUsage,omitempty" yaml:"keyUsage,omitempty"`
	// ExtendedKeyUsage is a list of purpose names or dotted-decimal OIDs
	ExtendedKeyUsage []string `json:"extendedKeyUsage,omitempty" yaml:"extendedKeyUsage,omitempty"`
	// SubjectAltNames is a list of typed SAN entries
	SubjectAltNames []SubjectAltName `json:"subjectAltNames,omitempty" yaml:"subjectAltNames,omitempty"`
	// CustomExtensions is a list of raw extensions
	CustomExtensions []CustomExtension `json:"customExtensions,omitempty" yaml:"customExtensions,omitempty"`
}

// KeyRequest contains the algorithm and key size for a new key.
type KeyRequest struct {
	A string `json:"algo" yaml:"algo"`
	S int    `json:"size" yaml:"size"`
}

// Algo returns the requested key algorithm
func (kr *KeyRequest) Algo() string {
	return kr.A
}

// Size returns the requested key size
func (kr *KeyRequest) Size() int {
	return kr.S
}

// SigAlgo returns an appropriate X.509 signature algorithm given the
// key request's type and size, using SHA-256 digests.
func (kr *KeyRequest) SigAlgo() x509.SignatureAlgorithm {
	switch kr.Algo() {
	case KeyTypeECDSA:
		return x509.ECDSAWithSHA256
	case KeyTypeRSA:
		return x509.SHA256WithRSA
	default:
		return x509.UnknownSignatureAlgorithm
	}
}

// KeyRequest resolves the descriptor's key specification, applying
// defaults: RSA-2048, or P-256 when ECDSA is requested without a curve.
func (d *CertificateRequestDescriptor) KeyRequest() (*KeyRequest, error) {
	keyType := d.KeyType
	if keyType == "" {
		keyType = KeyTypeRSA
	}

	switch keyType {
	case KeyTypeRSA:
		size := d.KeySize
		if size == 0 {
			size = DefaultRSAKeySize
		}
		if size != 2048 && size != 3072 && size != 4096 {
			return nil, &ValidationError{
				Kind:   InvalidFormat,
				Field:  "keySize",
				Reason: fmt.Sprintf("unsupported RSA key size: %d", size),
			}
		}
		return &KeyRequest{A: KeyTypeRSA, S: size}, nil
	case KeyTypeECDSA:
		curve := d.Curve
		if curve == "" {
			curve = DefaultCurve
		}
		bits, ok := oid.CurveBits[curve]
		if !ok {
			return nil, &ValidationError{
				Kind:   InvalidFormat,
				Field:  "curve",
				Reason: fmt.Sprintf("unsupported curve: %q", curve),
			}
		}
		return &KeyRequest{A: KeyTypeECDSA, S: bits}, nil
	default:
		return nil, &ValidationError{
			Kind:   InvalidFormat,
			Field:  "keyType",
			Reason: fmt.Sprintf("unsupported key type: %q", keyType),
		}
	}
}

// GeneratedRequest is the result of a successful Generate call:
// the signed request and the key pair, all PEM encoded.
type GeneratedRequest struct {
	CSR        string `json:"csr" yaml:"csr"`
	PrivateKey string `json:"privateKey" yaml:"privateKey"`
	PublicKey  string `json:"publicKey" yaml:"publicKey"`
}

// PublicKeyInfo describes the public key of an analyzed request.
type PublicKeyInfo struct {
	Type  string `json:"type" yaml:"type"`
	Bits  int    `json:"bits" yaml:"bits"`
	Curve string `json:"curve,omitempty" yaml:"curve,omitempty"`
}

// AnalyzedExtensions holds the reconstructed extensions of an
// analyzed request, the same shapes as the descriptor supplies.
type AnalyzedExtensions struct {
	KeyUsage         []string          `json:"keyUsage,omitempty" yaml:"keyUsage,omitempty"`
	ExtendedKeyUsage []string          `json:"extendedKeyUsage,omitempty" yaml:"extendedKeyUsage,omitempty"`
	SubjectAltNames  []SubjectAltName  `json:"subjectAltNames,omitempty" yaml:"subjectAltNames,omitempty"`
	Custom           []CustomExtension `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// AnalysisResult is the descriptor-shaped view of a parsed request.
type AnalysisResult struct {
	Subject            map[string]string  `json:"subject" yaml:"subject"`
	PublicKey          PublicKeyInfo      `json:"publicKey" yaml:"publicKey"`
	Extensions         AnalyzedExtensions `json:"extensions" yaml:"extensions"`
	SignatureAlgorithm string             `json:"signatureAlgorithm" yaml:"signatureAlgorithm"`
	Verified           bool               `json:"verified" yaml:"verified"`
	PEM                string             `json:"pem" yaml:"pem"`
}

// oidRx requires at least two dot-separated numeric components;
// a bare single-component string is not a valid extension OID.
var oidRx = regexp.MustCompile(`^\d+(\.\d+)+$`)

// ParseObjectIdentifier returns OID
func ParseObjectIdentifier(oidString string) (oid asn1.ObjectIdentifier, err error) {
	if !oidRx.MatchString(oidString) {
		err = errors.Errorf("invalid OID: %q", oidString)
		return
	}

	segments := strings.Split(oidString, ".")
	oid = make(asn1.ObjectIdentifier, len(segments))
	for i, intString := range segments {
		oid[i], err = strconv.Atoi(intString)
		if err != nil {
			err = errors.WithMessagef(err, "invalid OID")
			return
		}
	}
	return
}
