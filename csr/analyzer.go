package csr

import (
	"crypto/x509/pkix"
	"encoding/hex"
	"time"

	"github.com/effective-security/xcsr/certutil"
	"github.com/effective-security/xcsr/metricskey"
	"github.com/effective-security/xcsr/oid"
	"github.com/effective-security/xlog"
)

// Analyze parses a PEM encoded certificate request and reconstructs
// its descriptor-shaped view: the subject mapping, public key info,
// the extension set, and the signature verification outcome.
//
// An invalid signature is a normal analysis outcome reported as
// Verified=false, not an error. Malformed input is reported as
// ErrParseFailed without parser detail.
func Analyze(csrPEM []byte) (*AnalysisResult, error) {
	started := time.Now()

	csrv, err := certutil.ParseCSRFromPEM(csrPEM)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "parse_csr", "err", err)
		return nil, ErrParseFailed
	}

	res := &AnalysisResult{
		Subject:            SubjectMap(csrv.Subject),
		SignatureAlgorithm: csrv.SignatureAlgorithm.String(),
		Verified:           csrv.CheckSignature() == nil,
		PEM:                string(csrPEM),
	}

	if ki, err := certutil.NewKeyInfo(csrv.PublicKey); err == nil {
		res.PublicKey = PublicKeyInfo{
			Type:  ki.Type,
			Bits:  ki.KeySize,
			Curve: ki.Curve,
		}
	} else {
		logger.KV(xlog.DEBUG, "reason", "key_info", "err", err)
	}

	handled := decodeKnownExtensions(res, csrv.Extensions)
	for _, ext := range csrv.Extensions {
		if handled[ext.Id.String()] {
			continue
		}
		res.Extensions.Custom = append(res.Extensions.Custom, CustomExtension{
			OID:      ext.Id.String(),
			Critical: ext.Critical,
			Value:    hex.EncodeToString(ext.Value),
		})
	}

	metricskey.PerfCSRAnalyze.MeasureSince(started, res.PublicKey.Type)
	return res, nil
}

// decodeKnownExtensions reconstructs the recognized extensions into
// the result and returns the OIDs it consumed. A recognized extension
// that fails to decode is left for the custom passthrough, keyed by
// its OID with a hex value.
func decodeKnownExtensions(res *AnalysisResult, list []pkix.Extension) map[string]bool {
	handled := map[string]bool{}

	if val := certutil.FindExtensionValue(list, oid.ExtensionKeyUsage); val != nil {
		flags, err := DecodeKeyUsage(val)
		if err == nil {
			res.Extensions.KeyUsage = flags
			handled[oid.ExtensionKeyUsage.String()] = true
		} else {
			logger.KV(xlog.DEBUG, "reason", "decode_key_usage", "err", err)
		}
	}

	if val := certutil.FindExtensionValue(list, oid.ExtensionExtendedKeyUsage); val != nil {
		ids, err := DecodeExtKeyUsage(val)
		if err == nil {
			res.Extensions.ExtendedKeyUsage = ids
			handled[oid.ExtensionExtendedKeyUsage.String()] = true
		} else {
			logger.KV(xlog.DEBUG, "reason", "decode_ext_key_usage", "err", err)
		}
	}

	if val := certutil.FindExtensionValue(list, oid.ExtensionSubjectAltName); val != nil {
		sans, err := DecodeSubjectAltName(val)
		if err == nil {
			res.Extensions.SubjectAltNames = sans
			handled[oid.ExtensionSubjectAltName.String()] = true
		} else {
			logger.KV(xlog.DEBUG, "reason", "decode_san", "err", err)
		}
	}

	return handled
}

// SubjectMap splits the Distinguished Name into attribute/value pairs
// keyed by the long-form subject names, such as commonName or
// organizationalUnit. Attributes with no known name are keyed by their
// dotted-decimal OID.
func SubjectMap(name pkix.Name) map[string]string {
	subject := map[string]string{}
	for _, attr := range name.Names {
		key, ok := oid.SubjectAttribute[attr.Type.String()]
		if !ok {
			key = attr.Type.String()
		}
		if v, ok := attr.Value.(string); ok {
			subject[key] = v
		}
	}
	return subject
}
