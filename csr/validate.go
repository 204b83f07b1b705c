package csr

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	maxCommonNameLength = 64
	maxEmailLength      = 254
	maxDNSNameLength    = 253
	maxDNSLabelLength   = 63
	minPasswordLength   = 8

	passwordPunctuation = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// ValidateCommonName checks the required subject CommonName.
func ValidateCommonName(v string) *ValidationError {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{
			Kind:   Required,
			Field:  "commonName",
			Reason: "commonName is required",
		}
	}
	if len(v) > maxCommonNameLength {
		return &ValidationError{
			Kind:   TooLong,
			Field:  "commonName",
			Reason: fmt.Sprintf("commonName must not exceed %d characters", maxCommonNameLength),
		}
	}
	return nil
}

// ValidateCountry checks the optional two-letter country code.
func ValidateCountry(v string) *ValidationError {
	if v == "" {
		return nil
	}
	if len(v) != 2 || v[0] < 'A' || v[0] > 'Z' || v[1] < 'A' || v[1] > 'Z' {
		return &ValidationError{
			Kind:   InvalidFormat,
			Field:  "country",
			Reason: "country must be a two-letter uppercase ISO code",
		}
	}
	return nil
}

// ValidatePassword checks the optional private key passphrase:
// at least 8 characters, and at least 3 of 4 character classes.
func ValidatePassword(v string) *ValidationError {
	if v == "" {
		return nil
	}
	if len(v) < minPasswordLength {
		return &ValidationError{
			Kind:   TooWeak,
			Field:  "keyPassword",
			Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		}
	}

	var hasUpper, hasLower, hasDigit, hasPunct bool
	for _, c := range v {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(passwordPunctuation, c):
			hasPunct = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasPunct} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		return &ValidationError{
			Kind:   InsufficientComplexity,
			Field:  "keyPassword",
			Reason: "password must contain at least 3 of: uppercase, lowercase, digits, punctuation",
		}
	}
	return nil
}

// ValidateEmail checks the optional subject email address.
// A structural check with linear scans: exactly one @ with non-empty
// local and domain parts, a dot in the domain, and no whitespace.
func ValidateEmail(v string) *ValidationError {
	if v == "" {
		return nil
	}

	invalid := &ValidationError{
		Kind:   InvalidFormat,
		Field:  "email",
		Reason: fmt.Sprintf("invalid email address: %q", v),
	}

	if len(v) > maxEmailLength {
		return invalid
	}
	at := -1
	for i, c := range v {
		if unicode.IsSpace(c) {
			return invalid
		}
		if c == '@' {
			if at >= 0 {
				return invalid
			}
			at = i
		}
	}
	if at <= 0 || at == len(v)-1 {
		return invalid
	}
	domain := v[at+1:]
	if !strings.Contains(domain, ".") {
		return invalid
	}
	return nil
}

// ValidateDNSName checks a SAN DNS name: 253 characters max, labels of
// 1-63 alphanumeric-or-hyphen characters not starting or ending with a
// hyphen. A single literal * is permitted only as the entire first label.
func ValidateDNSName(v string) *ValidationError {
	invalid := &ValidationError{
		Kind:   InvalidSAN,
		Field:  "subjectAltNames",
		Reason: fmt.Sprintf("invalid DNS name: %q", v),
	}

	if len(v) < 1 || len(v) > maxDNSNameLength {
		return invalid
	}

	labels := strings.Split(v, ".")
	for i, label := range labels {
		if label == "*" && i == 0 && len(labels) > 1 {
			continue
		}
		if len(label) < 1 || len(label) > maxDNSLabelLength {
			return invalid
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return invalid
		}
		for _, c := range label {
			if !isAlphanumeric(c) && c != '-' {
				return invalid
			}
		}
	}
	return nil
}

// ValidateIPAddress checks a SAN IP entry: a dotted-quad IPv4 pattern
// or a colon-grouped IPv6 pattern. A structural check, not full RFC
// parsing.
func ValidateIPAddress(v string) *ValidationError {
	if isIPv4(v) || isIPv6(v) {
		return nil
	}
	return &ValidationError{
		Kind:   InvalidSAN,
		Field:  "subjectAltNames",
		Reason: fmt.Sprintf("invalid IP address: %q", v),
	}
}

// ValidateURI checks a SAN URI entry for a well-formed absolute URI.
func ValidateURI(v string) *ValidationError {
	u, err := url.Parse(v)
	if err != nil || !u.IsAbs() || (u.Host == "" && u.Path == "" && u.Opaque == "") {
		return &ValidationError{
			Kind:   InvalidSAN,
			Field:  "subjectAltNames",
			Reason: fmt.Sprintf("invalid URI: %q", v),
		}
	}
	return nil
}

// ValidateSAN checks a single typed SAN entry.
func ValidateSAN(san SubjectAltName) *ValidationError {
	switch san.Type {
	case SANTypeDNS:
		return ValidateDNSName(san.Value)
	case SANTypeIP:
		return ValidateIPAddress(san.Value)
	case SANTypeEmail:
		if err := ValidateEmail(san.Value); err != nil || san.Value == "" {
			return &ValidationError{
				Kind:   InvalidSAN,
				Field:  "subjectAltNames",
				Reason: fmt.Sprintf("invalid email SAN: %q", san.Value),
			}
		}
		return nil
	case SANTypeURI:
		return ValidateURI(san.Value)
	default:
		return &ValidationError{
			Kind:   InvalidSAN,
			Field:  "subjectAltNames",
			Reason: fmt.Sprintf("unsupported SAN type: %q", san.Type),
		}
	}
}

// ValidateOIDString checks a custom extension OID: two or more
// dot-separated numeric components.
func ValidateOIDString(v string) *ValidationError {
	if !oidRx.MatchString(v) {
		return &ValidationError{
			Kind:   InvalidOID,
			Field:  "customExtensions",
			Reason: fmt.Sprintf("invalid OID: %q", v),
		}
	}
	return nil
}

// Validate runs the field validators in a fixed order, returning the
// first failure: CommonName, country, password, email, SAN entries,
// custom extension OIDs.
func (d *CertificateRequestDescriptor) Validate() error {
	if err := ValidateCommonName(d.CommonName); err != nil {
		return err
	}
	if err := ValidateCountry(d.Country); err != nil {
		return err
	}
	if err := ValidatePassword(d.KeyPassword); err != nil {
		return err
	}
	if err := ValidateEmail(d.Email); err != nil {
		return err
	}
	for _, san := range d.SubjectAltNames {
		if err := ValidateSAN(san); err != nil {
			return err
		}
	}
	for _, ext := range d.CustomExtensions {
		if err := ValidateOIDString(ext.OID); err != nil {
			return err
		}
	}
	return nil
}

func isAlphanumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if len(p) < 1 || len(p) > 3 {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}
	return true
}

func isIPv6(s string) bool {
	groups := strings.Split(s, ":")
	if len(groups) < 2 || len(groups) > 8 {
		return false
	}
	for _, g := range groups {
		if len(g) > 4 {
			return false
		}
		for i := 0; i < len(g); i++ {
			if !isHexDigit(g[i]) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
