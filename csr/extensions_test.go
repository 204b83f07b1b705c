package csr_test

import (
	"encoding/hex"
	"testing"

	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKeyUsage(t *testing.T) {
	ext, err := csr.EncodeKeyUsage([]string{"digitalSignature", "keyEncipherment"})
	require.NoError(t, err)
	assert.True(t, ext.Critical)
	assert.Equal(t, oid.ExtensionKeyUsage, ext.Id)

	flags, err := csr.DecodeKeyUsage(ext.Value)
	require.NoError(t, err)
	assert.Equal(t, []string{"digitalSignature", "keyEncipherment"}, flags)
}

func TestEncodeKeyUsageAllFlags(t *testing.T) {
	all := []string{
		"digitalSignature", "nonRepudiation", "keyEncipherment",
		"dataEncipherment", "keyAgreement", "keyCertSign",
		"cRLSign", "encipherOnly", "decipherOnly",
	}
	ext, err := csr.EncodeKeyUsage(all)
	require.NoError(t, err)

	flags, err := csr.DecodeKeyUsage(ext.Value)
	require.NoError(t, err)
	assert.ElementsMatch(t, all, flags)
}

func TestEncodeKeyUsageUnknownFlag(t *testing.T) {
	_, err := csr.EncodeKeyUsage([]string{"digitalSignature", "flying"})
	require.Error(t, err)
	assert.Equal(t, `unsupported key usage: "flying"`, err.Error())
}

func TestEncodeDecodeExtKeyUsage(t *testing.T) {
	ext, err := csr.EncodeExtKeyUsage([]string{"serverAuth", "clientAuth", "1.3.6.1.4.1.99999.1", "serverAuth"})
	require.NoError(t, err)
	assert.False(t, ext.Critical)
	assert.Equal(t, oid.ExtensionExtendedKeyUsage, ext.Id)

	// caller order preserved, duplicates kept
	ids, err := csr.DecodeExtKeyUsage(ext.Value)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1.3.6.1.5.5.7.3.1",
		"1.3.6.1.5.5.7.3.2",
		"1.3.6.1.4.1.99999.1",
		"1.3.6.1.5.5.7.3.1",
	}, ids)
}

func TestEncodeExtKeyUsageInvalid(t *testing.T) {
	_, err := csr.EncodeExtKeyUsage([]string{"notAPurpose"})
	require.Error(t, err)
	assert.Equal(t, `unsupported extended key usage: "notAPurpose"`, err.Error())
}

func TestEncodeDecodeSubjectAltName(t *testing.T) {
	sans := []csr.SubjectAltName{
		{Type: "DNS", Value: "example.com"},
		{Type: "email", Value: "admin@example.com"},
		{Type: "IP", Value: "10.0.0.1"},
		{Type: "URI", Value: "https://example.com/id"},
		{Type: "IP", Value: "2001:db8::1"},
	}

	ext, err := csr.EncodeSubjectAltName(sans)
	require.NoError(t, err)
	assert.False(t, ext.Critical)
	assert.Equal(t, oid.ExtensionSubjectAltName, ext.Id)

	got, err := csr.DecodeSubjectAltName(ext.Value)
	require.NoError(t, err)
	assert.Equal(t, sans, got)
}

func TestEncodeSubjectAltNameInvalid(t *testing.T) {
	_, err := csr.EncodeSubjectAltName([]csr.SubjectAltName{{Type: "IP", Value: "not-an-ip"}})
	require.Error(t, err)
	assert.Equal(t, `invalid IP address: "not-an-ip"`, err.Error())

	_, err = csr.EncodeSubjectAltName([]csr.SubjectAltName{{Type: "XMPP", Value: "x"}})
	require.Error(t, err)
	assert.Equal(t, `unsupported SAN type: "XMPP"`, err.Error())
}

func TestCustomExtensionEncode(t *testing.T) {
	ext, err := csr.CustomExtension{
		OID:      "1.3.6.1.4.1.99999.2",
		Critical: true,
		Value:    "hex:0500",
	}.Encode()
	require.NoError(t, err)
	assert.True(t, ext.Critical)
	assert.Equal(t, "1.3.6.1.4.1.99999.2", ext.Id.String())
	assert.Equal(t, []byte{0x05, 0x00}, ext.Value)

	_, err = csr.CustomExtension{OID: "1", Value: "x"}.Encode()
	require.Error(t, err)
	assert.Equal(t, `invalid OID: "1"`, err.Error())
}

func TestCustomExtensionEncodeReserved(t *testing.T) {
	for _, id := range []string{
		oid.ExtensionKeyUsage.String(),
		oid.ExtensionSubjectAltName.String(),
		oid.ExtensionExtendedKeyUsage.String(),
		oid.ExtensionRequest.String(),
	} {
		_, err := csr.CustomExtension{OID: id, Value: "hex:0500"}.Encode()
		require.Error(t, err, "oid %s", id)
		assert.Equal(t, `reserved OID: "`+id+`"`, err.Error())
	}
}

func TestCustomExtensionGetValue(t *testing.T) {
	tt := []struct {
		name   string
		value  string
		exp    []byte
		experr string
	}{
		{name: "hex prefix", value: "hex:0500", exp: []byte{0x05, 0x00}},
		{name: "base64 prefix", value: "base64:dmFsdWU=", exp: []byte("value")},
		// bare hex decodes as hex first
		{name: "bare hex", value: "dead", exp: []byte{0xde, 0xad}},
		// opaque strings pass through verbatim
		{name: "verbatim", value: "not hex!", exp: []byte("not hex!")},
		{name: "malformed hex", value: "hex:zz", experr: `invalid hex value: "hex:zz"`},
		{name: "malformed base64", value: "base64:!!!", experr: `invalid base64 value: "base64:!!!"`},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := csr.CustomExtension{Value: tc.value}.GetValue()
			if tc.experr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.experr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, raw)
		})
	}
}

func TestDescriptorExtensions(t *testing.T) {
	req := &csr.CertificateRequestDescriptor{
		CommonName:       "test.example.com",
		KeyUsage:         []string{"digitalSignature"},
		ExtendedKeyUsage: []string{"serverAuth"},
		SubjectAltNames: []csr.SubjectAltName{
			{Type: "DNS", Value: "test.example.com"},
		},
		CustomExtensions: []csr.CustomExtension{
			{OID: "1.3.6.1.4.1.99999.3", Value: "hex:" + hex.EncodeToString([]byte("opaque"))},
		},
	}

	list, err := req.Extensions()
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, oid.ExtensionKeyUsage, list[0].Id)
	assert.Equal(t, oid.ExtensionExtendedKeyUsage, list[1].Id)
	assert.Equal(t, oid.ExtensionSubjectAltName, list[2].Id)
	assert.Equal(t, "1.3.6.1.4.1.99999.3", list[3].Id.String())
}
