package csr

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
	"strings"

	"github.com/effective-security/xcsr/oid"
	"github.com/pkg/errors"
)

// GeneralName tags per RFC 5280, 4.2.1.6
const (
	sanTagEmail = 1
	sanTagDNS   = 2
	sanTagURI   = 6
	sanTagIP    = 7
)

// Extensions builds the request's extension list from the descriptor:
// Key Usage (critical), Extended Key Usage, Subject Alternative Name,
// and any custom extensions, in that order. Absent kinds are omitted.
func (d *CertificateRequestDescriptor) Extensions() ([]pkix.Extension, error) {
	var list []pkix.Extension

	if len(d.KeyUsage) > 0 {
		ext, err := EncodeKeyUsage(d.KeyUsage)
		if err != nil {
			return nil, err
		}
		list = append(list, *ext)
	}

	if len(d.ExtendedKeyUsage) > 0 {
		ext, err := EncodeExtKeyUsage(d.ExtendedKeyUsage)
		if err != nil {
			return nil, err
		}
		list = append(list, *ext)
	}

	if len(d.SubjectAltNames) > 0 {
		ext, err := EncodeSubjectAltName(d.SubjectAltNames)
		if err != nil {
			return nil, err
		}
		list = append(list, *ext)
	}

	for _, custom := range d.CustomExtensions {
		ext, err := custom.Encode()
		if err != nil {
			return nil, err
		}
		list = append(list, *ext)
	}

	return list, nil
}

// EncodeKeyUsage folds the requested flag names into a single bitmask
// and returns the critical Key Usage extension.
func EncodeKeyUsage(flags []string) (*pkix.Extension, error) {
	var ku x509.KeyUsage
	for _, name := range flags {
		bit, ok := oid.KeyUsage[name]
		if !ok {
			return nil, &ValidationError{
				Kind:   InvalidFormat,
				Field:  "keyUsage",
				Reason: fmt.Sprintf("unsupported key usage: %q", name),
			}
		}
		ku |= bit
	}

	val, err := marshalKeyUsage(ku)
	if err != nil {
		return nil, err
	}

	return &pkix.Extension{
		Id:       oid.ExtensionKeyUsage,
		Critical: true,
		Value:    val,
	}, nil
}

// DecodeKeyUsage returns the flag names set in a Key Usage extension value.
func DecodeKeyUsage(val []byte) ([]string, error) {
	var bs asn1.BitString
	rest, err := asn1.Unmarshal(val, &bs)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse KeyUsage")
	}
	if len(rest) != 0 {
		return nil, errors.New("failed to parse KeyUsage: trailing data")
	}

	var ku x509.KeyUsage
	for i := 0; i < 9; i++ {
		if bs.At(i) != 0 {
			ku |= 1 << uint(i)
		}
	}
	return oid.KeyUsages(ku), nil
}

// EncodeExtKeyUsage maps the requested entries to purpose OIDs and
// returns the non-critical Extended Key Usage extension. Each entry is
// either a well-known purpose name or a literal dotted-decimal OID;
// caller order is preserved and duplicates are not removed.
func EncodeExtKeyUsage(entries []string) (*pkix.Extension, error) {
	ids := make([]asn1.ObjectIdentifier, 0, len(entries))
	for _, entry := range entries {
		if id, ok := oid.ExtKeyUsage[entry]; ok {
			ids = append(ids, id)
			continue
		}
		id, err := ParseObjectIdentifier(entry)
		if err != nil {
			return nil, &ValidationError{
				Kind:   InvalidOID,
				Field:  "extendedKeyUsage",
				Reason: fmt.Sprintf("unsupported extended key usage: %q", entry),
			}
		}
		ids = append(ids, id)
	}

	val, err := asn1.Marshal(ids)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &pkix.Extension{
		Id:    oid.ExtensionExtendedKeyUsage,
		Value: val,
	}, nil
}

// DecodeExtKeyUsage returns the OID list of an Extended Key Usage
// extension value, in encoded order.
func DecodeExtKeyUsage(val []byte) ([]string, error) {
	var ids []asn1.ObjectIdentifier
	rest, err := asn1.Unmarshal(val, &ids)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse ExtKeyUsage")
	}
	if len(rest) != 0 {
		return nil, errors.New("failed to parse ExtKeyUsage: trailing data")
	}
	return oid.Strings(ids...), nil
}

// EncodeSubjectAltName maps the typed entries to the GeneralName
// choices and returns the non-critical Subject Alternative Name
// extension, preserving caller order across types.
func EncodeSubjectAltName(sans []SubjectAltName) (*pkix.Extension, error) {
	rawValues := make([]asn1.RawValue, 0, len(sans))
	for _, san := range sans {
		switch san.Type {
		case SANTypeDNS:
			rawValues = append(rawValues, asn1.RawValue{Tag: sanTagDNS, Class: asn1.ClassContextSpecific, Bytes: []byte(san.Value)})
		case SANTypeEmail:
			rawValues = append(rawValues, asn1.RawValue{Tag: sanTagEmail, Class: asn1.ClassContextSpecific, Bytes: []byte(san.Value)})
		case SANTypeURI:
			rawValues = append(rawValues, asn1.RawValue{Tag: sanTagURI, Class: asn1.ClassContextSpecific, Bytes: []byte(san.Value)})
		case SANTypeIP:
			ip := net.ParseIP(san.Value)
			if ip == nil {
				return nil, &ValidationError{
					Kind:   InvalidSAN,
					Field:  "subjectAltNames",
					Reason: fmt.Sprintf("invalid IP address: %q", san.Value),
				}
			}
			if v4 := ip.To4(); v4 != nil {
				ip = v4
			}
			rawValues = append(rawValues, asn1.RawValue{Tag: sanTagIP, Class: asn1.ClassContextSpecific, Bytes: ip})
		default:
			return nil, &ValidationError{
				Kind:   InvalidSAN,
				Field:  "subjectAltNames",
				Reason: fmt.Sprintf("unsupported SAN type: %q", san.Type),
			}
		}
	}

	val, err := asn1.Marshal(rawValues)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &pkix.Extension{
		Id:    oid.ExtensionSubjectAltName,
		Value: val,
	}, nil
}

// DecodeSubjectAltName returns the typed entries of a Subject
// Alternative Name extension value, in encoded order. GeneralName
// choices other than DNS, IP, email and URI are skipped.
func DecodeSubjectAltName(val []byte) ([]SubjectAltName, error) {
	var seq asn1.RawValue
	rest, err := asn1.Unmarshal(val, &seq)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse SubjectAltName")
	}
	if len(rest) != 0 {
		return nil, errors.New("failed to parse SubjectAltName: trailing data")
	}
	if !seq.IsCompound || seq.Tag != asn1.TagSequence || seq.Class != asn1.ClassUniversal {
		return nil, errors.New("failed to parse SubjectAltName: bad GeneralNames sequence")
	}

	var list []SubjectAltName
	for inner := seq.Bytes; len(inner) > 0; {
		var v asn1.RawValue
		inner, err = asn1.Unmarshal(inner, &v)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to parse GeneralName")
		}
		switch v.Tag {
		case sanTagEmail:
			list = append(list, SubjectAltName{Type: SANTypeEmail, Value: string(v.Bytes)})
		case sanTagDNS:
			list = append(list, SubjectAltName{Type: SANTypeDNS, Value: string(v.Bytes)})
		case sanTagURI:
			list = append(list, SubjectAltName{Type: SANTypeURI, Value: string(v.Bytes)})
		case sanTagIP:
			list = append(list, SubjectAltName{Type: SANTypeIP, Value: net.IP(v.Bytes).String()})
		}
	}
	return list, nil
}

// reservedExtensions are composed from their own descriptor fields,
// or are the PKCS#10 extensionRequest wrapper itself; a custom
// extension carrying one would produce a duplicate or malformed
// request.
var reservedExtensions = []asn1.ObjectIdentifier{
	oid.ExtensionKeyUsage,
	oid.ExtensionSubjectAltName,
	oid.ExtensionExtendedKeyUsage,
	oid.ExtensionRequest,
}

// Encode returns the custom extension with OID, critical flag and
// value passed through verbatim.
func (ext CustomExtension) Encode() (*pkix.Extension, error) {
	id, err := ParseObjectIdentifier(ext.OID)
	if err != nil {
		return nil, &ValidationError{
			Kind:   InvalidOID,
			Field:  "customExtensions",
			Reason: fmt.Sprintf("invalid OID: %q", ext.OID),
		}
	}

	for _, reserved := range reservedExtensions {
		if id.Equal(reserved) {
			return nil, &ValidationError{
				Kind:   InvalidOID,
				Field:  "customExtensions",
				Reason: fmt.Sprintf("reserved OID: %q", ext.OID),
			}
		}
	}

	val, err := ext.GetValue()
	if err != nil {
		return nil, err
	}

	return &pkix.Extension{
		Id:       id,
		Critical: ext.Critical,
		Value:    val,
	}, nil
}

// GetValue returns the raw extension value.
// A "hex:" or "base64:" prefix selects the decoding and a malformed
// value is an error; without a prefix, hex decoding is tried first,
// then base64, then the string bytes are used verbatim.
func (ext CustomExtension) GetValue() ([]byte, error) {
	switch {
	case strings.HasPrefix(ext.Value, "hex:"):
		raw, err := hex.DecodeString(ext.Value[4:])
		if err != nil {
			return nil, &ValidationError{
				Kind:   InvalidFormat,
				Field:  "customExtensions",
				Reason: fmt.Sprintf("invalid hex value: %q", ext.Value),
			}
		}
		return raw, nil
	case strings.HasPrefix(ext.Value, "base64:"):
		raw, err := base64.StdEncoding.DecodeString(ext.Value[7:])
		if err != nil {
			return nil, &ValidationError{
				Kind:   InvalidFormat,
				Field:  "customExtensions",
				Reason: fmt.Sprintf("invalid base64 value: %q", ext.Value),
			}
		}
		return raw, nil
	}

	if raw, err := hex.DecodeString(ext.Value); err == nil {
		return raw, nil
	}
	if raw, err := base64.StdEncoding.DecodeString(ext.Value); err == nil {
		return raw, nil
	}
	return []byte(ext.Value), nil
}

// marshalKeyUsage encodes the mask as a DER BIT STRING, least
// significant flag first.
func marshalKeyUsage(ku x509.KeyUsage) ([]byte, error) {
	var a [2]byte
	a[0] = reverseBitsInAByte(byte(ku))
	a[1] = reverseBitsInAByte(byte(ku >> 8))

	l := 1
	if a[1] != 0 {
		l = 2
	}

	bitString := a[:l]
	val, err := asn1.Marshal(asn1.BitString{Bytes: bitString, BitLength: asn1BitLength(bitString)})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return val, nil
}

func reverseBitsInAByte(in byte) byte {
	b1 := in>>4 | in<<4
	b2 := b1>>2&0x33 | b1<<2&0xcc
	b3 := b2>>1&0x55 | b2<<1&0xaa
	return b3
}

// asn1BitLength returns the bit-length of bitString by considering the
// most-significant bit in a byte to be the "first" bit. This convention
// matches ASN.1, but differs from almost everything else.
func asn1BitLength(bitString []byte) int {
	bitLen := len(bitString) * 8

	for i := range bitString {
		b := bitString[len(bitString)-i-1]

		for bit := uint(0); bit < 8; bit++ {
			if (b>>bit)&1 == 1 {
				return bitLen
			}
			bitLen--
		}
	}

	return 0
}
