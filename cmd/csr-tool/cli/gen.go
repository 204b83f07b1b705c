package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/keyprov"
	"github.com/effective-security/xcsr/x/print"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GenCmd specifies flags for the gen command
type GenCmd struct {
	Profile string `kong:"arg" required:"" help:"file name with the request profile, in JSON or YAML format"`
	Output  string `help:"the optional prefix for output files; if not set, the output will be printed to STDOUT only"`
}

// Run the command
func (a *GenCmd) Run(ctx *Cli) error {
	prof, err := ctx.ReadFile(a.Profile)
	if err != nil {
		return errors.WithMessage(err, "read request profile")
	}

	req := new(csr.CertificateRequestDescriptor)
	if strings.HasSuffix(a.Profile, "json") {
		err = json.Unmarshal(prof, req)
	} else {
		err = yaml.Unmarshal(prof, req)
	}
	if err != nil {
		return errors.WithMessage(err, "invalid request profile")
	}

	prov := csr.NewProvider(keyprov.NewInMemoryProvider())
	res, err := prov.Generate(req)
	if err != nil {
		return errors.WithMessage(err, "process request")
	}

	if a.Output == "" {
		print.RequestAndKey(ctx.Writer(), res)
		return nil
	}
	return saveRequest(a.Output, res)
}

func saveRequest(baseName string, res *csr.GeneratedRequest) error {
	err := os.WriteFile(baseName+".csr", []byte(res.CSR), 0664)
	if err != nil {
		return errors.WithStack(err)
	}
	err = os.WriteFile(baseName+".pub", []byte(res.PublicKey), 0664)
	if err != nil {
		return errors.WithStack(err)
	}
	err = os.WriteFile(baseName+".key", []byte(res.PrivateKey), 0600)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
