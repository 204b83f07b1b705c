package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestContext(t *testing.T) {
	var c Cli

	assert.NotNil(t, c.ErrWriter())
	assert.NotNil(t, c.Writer())
	assert.NotNil(t, c.Reader())

	c.WithErrWriter(os.Stderr)
	c.WithReader(os.Stdin)
	c.WithWriter(os.Stdout)

	assert.NotNil(t, c.Context())
	assert.NotNil(t, c.ErrWriter())
	assert.NotNil(t, c.Writer())
	assert.NotNil(t, c.Reader())

	out := bytes.NewBuffer([]byte{})
	c.WithWriter(out)
	c.WriteJSON(struct{}{})
	assert.Equal(t, "{}\n", out.String())
}

func TestParse(t *testing.T) {
	var cl struct {
		Cli

		Cmd struct {
			Ptr *bool `help:"test bool ptr"`
		} `kong:"cmd"`
	}

	p := mustNew(t, &cl)
	ctx, err := p.Parse([]string{"cmd", "--ptr=false"})
	require.NoError(t, err)
	require.Equal(t, "cmd", ctx.Command())
	if assert.NotNil(t, cl.Cmd.Ptr) {
		assert.False(t, *cl.Cmd.Ptr)
	}
}

func mustNew(t *testing.T, cli any, options ...kong.Option) *kong.Kong {
	t.Helper()
	options = append([]kong.Option{
		kong.Name("test"),
		kong.Exit(func(int) {
			t.Helper()
			t.Fatalf("unexpected exit()")
		}),
		ctl.BoolPtrMapper,
	}, options...)
	parser, err := kong.New(cli, options...)
	require.NoError(t, err)
	return parser
}

type testSuite struct {
	suite.Suite
	tmpdir string
	ctl    *Cli
	// Out is the output buffer
	Out bytes.Buffer
}

func (s *testSuite) SetupSuite() {
	s.tmpdir = filepath.Join(os.TempDir(), "tests", "csr-tool")
	err := os.MkdirAll(s.tmpdir, 0777)
	s.Require().NoError(err)

	s.ctl = &Cli{}
	s.ctl.WithErrWriter(&s.Out).
		WithWriter(&s.Out)
}

func (s *testSuite) TearDownSuite() {
	os.RemoveAll(s.tmpdir)
}

func (s *testSuite) SetupTest() {
	s.Out.Reset()
}

// HasText is a helper method to assert that the out stream contains the supplied
// text somewhere
func (s *testSuite) HasText(texts ...string) {
	outStr := s.Out.String()
	for _, t := range texts {
		s.Contains(outStr, t)
	}
}

// HasTextInFile is a helper method to assert that file contains the supplied text
func (s *testSuite) HasTextInFile(file string, texts ...string) {
	f, err := os.ReadFile(file)
	s.Require().NoError(err, "unable to read: %s", file)
	outStr := string(f)
	for _, t := range texts {
		s.Contains(outStr, t, "expecting to find text %q in file %q", t, file)
	}
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestGenToStdout() {
	profile := filepath.Join(s.tmpdir, "stdout_profile.yaml")
	err := os.WriteFile(profile, []byte(`
commonName: cli.example.com
country: US
organization: org1
keyType: ECDSA
`), 0644)
	s.Require().NoError(err)

	cmd := GenCmd{
		Profile: profile,
	}
	err = cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("BEGIN CERTIFICATE REQUEST", "PRIVATE KEY", "BEGIN PUBLIC KEY")
}

func (s *testSuite) TestGenAndInfo() {
	profile := filepath.Join(s.tmpdir, "profile.json")
	err := os.WriteFile(profile, []byte(`{
  "commonName": "cli.example.com",
  "country": "US",
  "organization": "org1",
  "keyType": "ECDSA",
  "keyUsage": ["digitalSignature"],
  "subjectAltNames": [
    {"type": "DNS", "value": "cli.example.com"}
  ]
}`), 0644)
	s.Require().NoError(err)

	out := filepath.Join(s.tmpdir, "cli")
	gen := GenCmd{
		Profile: profile,
		Output:  out,
	}
	err = gen.Run(s.ctl)
	s.Require().NoError(err)
	s.HasTextInFile(out+".csr", "BEGIN CERTIFICATE REQUEST")
	s.HasTextInFile(out+".pub", "BEGIN PUBLIC KEY")
	s.HasTextInFile(out+".key", "PRIVATE KEY")

	info := InfoCmd{
		Csr: out + ".csr",
	}
	err = info.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText(
		"commonName: cli.example.com",
		"country: US",
		"Verified: true",
		"Key Usage: digitalSignature",
		"DNS: cli.example.com",
	)
}

func (s *testSuite) TestGenInvalidProfile() {
	profile := filepath.Join(s.tmpdir, "bad_profile.yaml")
	err := os.WriteFile(profile, []byte("commonName: ''\n"), 0644)
	s.Require().NoError(err)

	cmd := GenCmd{
		Profile: profile,
	}
	err = cmd.Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "commonName is required")
}

func (s *testSuite) TestInfoJSON() {
	profile := filepath.Join(s.tmpdir, "json_profile.yaml")
	err := os.WriteFile(profile, []byte(`
commonName: json.example.com
keyType: ECDSA
`), 0644)
	s.Require().NoError(err)

	out := filepath.Join(s.tmpdir, "json")
	gen := GenCmd{
		Profile: profile,
		Output:  out,
	}
	s.Require().NoError(gen.Run(s.ctl))
	s.Out.Reset()

	info := InfoCmd{
		Csr:  out + ".csr",
		JSON: true,
	}
	s.Require().NoError(info.Run(s.ctl))
	s.HasText(`"commonName"`, `"verified"`)
}

func (s *testSuite) TestInfoInvalidFile() {
	bad := filepath.Join(s.tmpdir, "bad.csr")
	err := os.WriteFile(bad, []byte("not a pem"), 0644)
	s.Require().NoError(err)

	info := InfoCmd{
		Csr: bad,
	}
	err = info.Run(s.ctl)
	s.Require().Error(err)
	s.Contains(err.Error(), "unable to analyze CSR")
}
