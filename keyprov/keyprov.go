package keyprov

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"io"

	"github.com/pkg/errors"
)

// Provider generates key pairs for certificate requests.
type Provider interface {
	// GenerateKey returns a new signer for the algorithm and key size.
	GenerateKey(algo string, size int) (crypto.Signer, error)
}

// inMemProv generates keys in process memory using crypto/rand.
type inMemProv struct {
	rand io.Reader
}

// NewInMemoryProvider returns an in-memory key provider.
func NewInMemoryProvider() Provider {
	return &inMemProv{rand: rand.Reader}
}

// GenerateKey returns a new signer for the algorithm and key size.
func (p *inMemProv) GenerateKey(algo string, size int) (crypto.Signer, error) {
	switch algo {
	case "RSA":
		switch size {
		case 2048, 3072, 4096:
		default:
			return nil, errors.Errorf("unsupported RSA key size: %d", size)
		}
		key, err := rsa.GenerateKey(p.rand, size)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to generate RSA key")
		}
		return key, nil
	case "ECDSA":
		var curve elliptic.Curve
		switch size {
		case 256:
			curve = elliptic.P256()
		case 384:
			curve = elliptic.P384()
		case 521:
			curve = elliptic.P521()
		default:
			return nil, errors.Errorf("unsupported ECDSA key size: %d", size)
		}
		key, err := ecdsa.GenerateKey(curve, p.rand)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to generate ECDSA key")
		}
		return key, nil
	default:
		return nil, errors.Errorf("unsupported algorithm: %q", algo)
	}
}
