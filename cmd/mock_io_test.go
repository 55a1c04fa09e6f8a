package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/eykd/ddata-go/internal/config"
	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
	"github.com/eykd/ddata-go/internal/source"
)

const (
	co60CSV = `energy,unc_en,intensity,unc_i,p_z,p_n,p_energy
1332.492,0.004,99.9826,0.0006,27,33,0
1173.228,0.003,99.85,0.03,27,33,0
58.603,0.007,2.07,0.03,27,33,58.59
`
	cs137CSV = `energy,intensity,p_z,p_n,p_energy,rad_type
661.657,85.1,55,82,0,G
31.817,1.99,55,82,0,X
`
	be7CSV = "energy,intensity,p_z,p_n,p_energy\n477.6035,10.44,4,3,0\n"
)

// memSource is an in-memory source.Source.
type memSource struct {
	mu        sync.Mutex
	payloads  map[string]string
	available []nuclide.ID
}

func newMemSource() *memSource {
	return &memSource{
		payloads: map[string]string{
			"60co":  co60CSV,
			"137cs": cs137CSV,
			"7be":   be7CSV,
			"11be":  "energy,intensity\n2124.473,35.5\n",
			"14be":  "energy,intensity\n3680,82\n",
		},
		available: []nuclide.ID{
			{Symbol: "Be", Mass: 7}, {Symbol: "Be", Mass: 11}, {Symbol: "Be", Mass: 14},
			{Symbol: "Co", Mass: 60}, {Symbol: "Cs", Mass: 137},
		},
	}
}

func (m *memSource) Name() string { return "mem" }

func (m *memSource) Fetch(_ context.Context, id nuclide.ID, _ decay.RadType) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payloads[id.APIName()]
	if !ok {
		return "", fmt.Errorf("%s: %w", id.APIName(), source.ErrNotFound)
	}
	return p, nil
}

func (m *memSource) Available(context.Context, decay.RadType) ([]nuclide.ID, error) {
	return m.available, nil
}

// mockCLIIO is a test double for DecayIO and BundleIO.
type mockCLIIO struct {
	cfg          config.Config
	cfgErr       error
	loadedPath   string
	loadRequired bool

	src        source.Source
	srcErr     error
	openedWith config.Config

	written    map[string]string // keyed by requested path
	writeErr   error
	fallbackTo string // when set, WriteArtifact reports this path instead

	put    map[string]string // keyed by dir/code/apiname
	putErr error
}

func newMockCLIIO() *mockCLIIO {
	cfg := config.Default()
	cfg.Data = "bundle"
	return &mockCLIIO{
		cfg:     cfg,
		src:     newMemSource(),
		written: make(map[string]string),
		put:     make(map[string]string),
	}
}

func (m *mockCLIIO) LoadConfig(path string, required bool) (config.Config, error) {
	m.loadedPath, m.loadRequired = path, required
	return m.cfg, m.cfgErr
}

func (m *mockCLIIO) OpenSource(_ context.Context, cfg config.Config) (source.Source, error) {
	m.openedWith = cfg
	return m.src, m.srcErr
}

func (m *mockCLIIO) WriteArtifact(p string, content []byte) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.written[p] = string(content)
	if m.fallbackTo != "" {
		return m.fallbackTo, nil
	}
	return p, nil
}

func (m *mockCLIIO) IsTerminal(io.Writer) bool { return false }

func (m *mockCLIIO) PutPayload(dir string, id nuclide.ID, rad decay.RadType, payload string, _ bool) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.put[path.Join(dir, rad.Code(), id.APIName())] = payload
	return nil
}

// executeRoot runs the full command tree with args and returns stdout,
// stderr and the error.
func executeRoot(mock *mockCLIIO, args ...string) (string, string, error) {
	root := newRootCmd(mock, newMockInitIO())
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}
