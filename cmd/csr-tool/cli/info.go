package cli

import (
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/x/print"
	"github.com/pkg/errors"
)

// InfoCmd specifies flags for the info command
type InfoCmd struct {
	Csr  string `kong:"arg" required:"" help:"CSR file name"`
	JSON bool   `help:"print the analysis as JSON"`
}

// Run the command
func (a *InfoCmd) Run(ctx *Cli) error {
	csrb, err := ctx.ReadFile(a.Csr)
	if err != nil {
		return errors.WithMessage(err, "unable to load CSR file")
	}

	res, err := csr.Analyze(csrb)
	if err != nil {
		return errors.WithMessage(err, "unable to analyze CSR")
	}

	if a.JSON {
		ctx.WriteJSON(res)
		return nil
	}

	print.Analysis(ctx.Writer(), res)
	return nil
}
