package csr

import (
	"crypto/x509/pkix"

	"github.com/effective-security/xcsr/oid"
)

// Name returns the PKIX name for the descriptor's subject.
//
// Attributes are carried exclusively in ExtraNames so that the
// marshaled DN preserves a fixed order for reproducible output:
// Country, State, Locality, Organization, OrganizationalUnit,
// CommonName, Email; absent values are omitted. The standard
// pkix.Name fields are left unset, as ToRDNSequence would emit
// them in its own order ahead of ExtraNames.
func (d *CertificateRequestDescriptor) Name() pkix.Name {
	var name pkix.Name

	if d.Country != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameC,
			Value: d.Country,
		})
	}
	if d.State != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameST,
			Value: d.State,
		})
	}
	if d.Locality != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameL,
			Value: d.Locality,
		})
	}
	if d.Organization != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameO,
			Value: d.Organization,
		})
	}
	if d.OrganizationalUnit != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameOU,
			Value: d.OrganizationalUnit,
		})
	}
	if d.CommonName != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameCN,
			Value: d.CommonName,
		})
	}
	if d.Email != "" {
		name.ExtraNames = append(name.ExtraNames, pkix.AttributeTypeAndValue{
			Type:  oid.NameEmailAddress,
			Value: d.Email,
		})
	}

	return name
}
