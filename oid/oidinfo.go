package oid

import (
	"crypto/x509"
	"encoding/asn1"
)

// KeyUsage contains a mapping of flag names to key usages.
var KeyUsage = map[string]x509.KeyUsage{
	"digitalSignature": x509.KeyUsageDigitalSignature,
	"nonRepudiation":   x509.KeyUsageContentCommitment,
	"keyEncipherment":  x509.KeyUsageKeyEncipherment,
	"dataEncipherment": x509.KeyUsageDataEncipherment,
	"keyAgreement":     x509.KeyUsageKeyAgreement,
	"keyCertSign":      x509.KeyUsageCertSign,
	"cRLSign":          x509.KeyUsageCRLSign,
	"encipherOnly":     x509.KeyUsageEncipherOnly,
	"decipherOnly":     x509.KeyUsageDecipherOnly,
}

// KeyUsageName provides map of names
var KeyUsageName = map[x509.KeyUsage]string{
	x509.KeyUsageDigitalSignature:  "digitalSignature",
	x509.KeyUsageContentCommitment: "nonRepudiation",
	x509.KeyUsageKeyEncipherment:   "keyEncipherment",
	x509.KeyUsageDataEncipherment:  "dataEncipherment",
	x509.KeyUsageKeyAgreement:      "keyAgreement",
	x509.KeyUsageCertSign:          "keyCertSign",
	x509.KeyUsageCRLSign:           "cRLSign",
	x509.KeyUsageEncipherOnly:      "encipherOnly",
	x509.KeyUsageDecipherOnly:      "decipherOnly",
}

// ExtKeyUsage contains a mapping of purpose names to extended key
// usage OIDs.
var ExtKeyUsage = map[string]asn1.ObjectIdentifier{
	"serverAuth":      {1, 3, 6, 1, 5, 5, 7, 3, 1},
	"clientAuth":      {1, 3, 6, 1, 5, 5, 7, 3, 2},
	"codeSigning":     {1, 3, 6, 1, 5, 5, 7, 3, 3},
	"emailProtection": {1, 3, 6, 1, 5, 5, 7, 3, 4},
	"timeStamping":    {1, 3, 6, 1, 5, 5, 7, 3, 8},
	"OCSPSigning":     {1, 3, 6, 1, 5, 5, 7, 3, 9},
}

// ExtKeyUsageName provides map of EKU OID strings to purpose names
var ExtKeyUsageName = map[string]string{
	"1.3.6.1.5.5.7.3.1": "serverAuth",
	"1.3.6.1.5.5.7.3.2": "clientAuth",
	"1.3.6.1.5.5.7.3.3": "codeSigning",
	"1.3.6.1.5.5.7.3.4": "emailProtection",
	"1.3.6.1.5.5.7.3.8": "timeStamping",
	"1.3.6.1.5.5.7.3.9": "OCSPSigning",
}

// well-known OIDs
var (
	ExtensionKeyUsage         = asn1.ObjectIdentifier{2, 5, 29, 15}
	ExtensionSubjectAltName   = asn1.ObjectIdentifier{2, 5, 29, 17}
	ExtensionExtendedKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37}
	ExtensionRequest          = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 14}

	NameEmailAddress = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}
	NameCN           = asn1.ObjectIdentifier{2, 5, 4, 3}
	NameC            = asn1.ObjectIdentifier{2, 5, 4, 6}
	NameL            = asn1.ObjectIdentifier{2, 5, 4, 7}
	NameST           = asn1.ObjectIdentifier{2, 5, 4, 8}
	NameO            = asn1.ObjectIdentifier{2, 5, 4, 10}
	NameOU           = asn1.ObjectIdentifier{2, 5, 4, 11}
)

// SubjectAttribute provides the long-form subject key for a DN
// attribute OID, such as 2.5.4.3 => commonName
var SubjectAttribute = map[string]string{
	"2.5.4.3":              "commonName",
	"2.5.4.6":              "country",
	"2.5.4.8":              "state",
	"2.5.4.7":              "locality",
	"2.5.4.10":             "organization",
	"2.5.4.11":             "organizationalUnit",
	"1.2.840.113549.1.9.1": "email",
}

// CurveBits provides bit sizes of the supported NIST curves.
var CurveBits = map[string]int{
	"P-256": 256,
	"P-384": 384,
	"P-521": 521,
}

// DisplayName provides OID name
var DisplayName = map[string]string{
	"2.5.29.15":             "Key Usage",
	"2.5.29.17":             "Subject Alt Name",
	"2.5.29.19":             "Basic Constraints",
	"2.5.29.37":             "Extended KeyUsage",
	"1.2.840.113549.1.9.14": "Extension Request",
	"1.3.6.1.5.5.7.1.1":     "Authority Info Access",
}

// KeyUsages returns list of flag names set in the mask
func KeyUsages(ku x509.KeyUsage) []string {
	list := make([]string, 0, len(KeyUsage))

	for bit := x509.KeyUsageDigitalSignature; bit <= x509.KeyUsageDecipherOnly; bit <<= 1 {
		if ku&bit == bit {
			list = append(list, KeyUsageName[bit])
		}
	}

	return list
}

// Strings returns list of OID string values
func Strings(ids ...asn1.ObjectIdentifier) []string {
	list := make([]string, 0, len(ids))

	for _, k := range ids {
		list = append(list, k.String())
	}

	return list
}
