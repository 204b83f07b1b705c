// Package csr provides utilities for creating, parsing, and validating
// Certificate Signing Requests (CSRs) as defined by RFC 2986.
//
// This package supports:
//   - CSR generation with various key types (RSA, ECDSA)
//   - field validation of subject attributes and SAN entries
//   - extension handling: Key Usage, Extended Key Usage, Subject
//     Alternative Name, and custom OID-keyed extensions
//   - analysis of parsed requests back into a descriptor-shaped view,
//     including signature verification
//
// The package integrates with the keyprov package for key pair
// generation. Generation and analysis are mutual inverses on the
// fields each supports: analyzing a freshly generated request
// reproduces the subject mapping and the extension set supplied in
// the descriptor.
package csr
