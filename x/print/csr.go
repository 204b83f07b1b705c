// Package print provides pretty-printers for certificate requests and
// analysis results.
package print

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/oid"
)

// subjectOrder lists the subject attributes in DN composition order.
var subjectOrder = []string{
	"country",
	"state",
	"locality",
	"organization",
	"organizationalUnit",
	"commonName",
	"email",
}

// JSON prints the value as indented JSON.
func JSON(w io.Writer, value any) {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "ERROR: %s\n", err)
		return
	}
	w.Write(b)
	io.WriteString(w, "\n")
}

// Analysis prints the CSR analysis result in a human readable form.
func Analysis(w io.Writer, res *csr.AnalysisResult) {
	fmt.Fprint(w, "Subject:\n")
	printed := map[string]bool{}
	for _, key := range subjectOrder {
		if v, ok := res.Subject[key]; ok {
			fmt.Fprintf(w, "  %s: %s\n", key, v)
			printed[key] = true
		}
	}
	var rest []string
	for key := range res.Subject {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(w, "  %s: %s\n", key, res.Subject[key])
	}

	if res.PublicKey.Curve != "" {
		fmt.Fprintf(w, "Public Key: %s %s\n", res.PublicKey.Type, res.PublicKey.Curve)
	} else {
		fmt.Fprintf(w, "Public Key: %s %d\n", res.PublicKey.Type, res.PublicKey.Bits)
	}
	fmt.Fprintf(w, "Signature Algorithm: %s\n", res.SignatureAlgorithm)
	fmt.Fprintf(w, "Verified: %t\n", res.Verified)

	ext := res.Extensions
	if len(ext.KeyUsage) > 0 {
		fmt.Fprintf(w, "Key Usage: %s\n", strings.Join(ext.KeyUsage, ", "))
	}
	if len(ext.ExtendedKeyUsage) > 0 {
		names := make([]string, 0, len(ext.ExtendedKeyUsage))
		for _, id := range ext.ExtendedKeyUsage {
			if name, ok := oid.ExtKeyUsageName[id]; ok {
				names = append(names, name)
			} else {
				names = append(names, id)
			}
		}
		fmt.Fprintf(w, "Extended Key Usage: %s\n", strings.Join(names, ", "))
	}
	if len(ext.SubjectAltNames) > 0 {
		fmt.Fprint(w, "Subject Alt Names:\n")
		for _, san := range ext.SubjectAltNames {
			fmt.Fprintf(w, "  %s: %s\n", san.Type, san.Value)
		}
	}
	if len(ext.Custom) > 0 {
		fmt.Fprint(w, "Extensions:\n")
		for _, ce := range ext.Custom {
			id := ce.OID
			if name, ok := oid.DisplayName[id]; ok {
				id = fmt.Sprintf("%s (%s)", name, ce.OID)
			}
			critical := ""
			if ce.Critical {
				critical = " (critical)"
			}
			fmt.Fprintf(w, "  %s%s: %s\n", id, critical, ce.Value)
		}
	}
}

// RequestAndKey prints the generated request with its key pair as JSON.
func RequestAndKey(w io.Writer, res *csr.GeneratedRequest) {
	JSON(w, res)
}
