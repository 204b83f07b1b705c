// Package keyprov provides key pair generation for certificate
// requests in a provider-agnostic way.
//
// The default in-memory provider generates RSA (2048, 3072, 4096) and
// ECDSA (P-256, P-384, P-521) keys with crypto/rand. Nothing is
// retained by the provider: each call returns a fresh signer owned by
// the caller.
package keyprov
