package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eykd/ddata-go/internal/config"
	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/pipeline"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"available", "bundle", "init"} {
		t.Run(name, func(t *testing.T) {
			for _, sub := range root.Commands() {
				if sub.Name() == name {
					if sub.RunE == nil {
						t.Errorf("command %q has nil RunE", name)
					}
					return
				}
			}
			t.Errorf("expected %q subcommand registered on root command", name)
		})
	}
}

func TestNewRootCmd_HasFlags(t *testing.T) {
	root := NewRootCmd()
	persistent := []string{"config", "verbose", "quiet", "no-colour", "rad", "fetch", "data", "base-url", "workers"}
	for _, name := range persistent {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent --%s flag", name)
		}
	}
	local := []string{"sort", "output", "text", "json", "mcnp", "id", "csv", "metrics-file"}
	for _, name := range local {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag on root command", name)
		}
	}
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	out, _, err := executeRoot(newMockCLIIO())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "ddata") {
		t.Errorf("expected help output to contain \"ddata\", got: %s", out)
	}
}

// TestDecayCmd_WritesArtifacts verifies the documented co60 + cs137 run.
func TestDecayCmd_WritesArtifacts(t *testing.T) {
	mock := newMockCLIIO()
	out, errOut, err := executeRoot(mock, "co60", "cs137", "--text", "--json", "--mcnp", "--csv", "-o", "out/run")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, errOut)
	}

	for _, p := range []string{"out/run.txt", "out/run.json", "out/run.i", "out/run.csv"} {
		if _, ok := mock.written[p]; !ok {
			t.Errorf("expected %s to be written, got %v", p, keys(mock.written))
		}
	}

	mcnp := mock.written["out/run.i"]
	for _, want := range []string{"sc100   Co60 decay data", "si100 L 1.17323e+00 1.33249e+00", "si101 L", "sc101   Cs137 decay data"} {
		if !strings.Contains(mcnp, want) {
			t.Errorf("MCNP output missing %q:\n%s", want, mcnp)
		}
	}

	js := mock.written["out/run.json"]
	if !strings.Contains(js, `"Co60m0"`) || !strings.Contains(js, `"Cs137m0"`) {
		t.Errorf("JSON keys missing:\n%s", js)
	}
	if strings.Index(js, `"Co60m0"`) > strings.Index(js, `"Cs137m0"`) {
		t.Errorf("JSON keys out of order:\n%s", js)
	}

	if !strings.Contains(mock.written["out/run.csv"], "IAEA 137cs CSV records for gamma decay") {
		t.Errorf("raw CSV banner missing:\n%s", mock.written["out/run.csv"])
	}
	if strings.Contains(mock.written["out/run.txt"], "\x1b") {
		t.Error("text artifact contains escape sequences")
	}

	if !strings.Contains(out, "Co60 (gamma decay, 2 records)") {
		t.Errorf("terminal table missing:\n%s", out)
	}
	if errOut != "" {
		t.Errorf("unexpected stderr: %s", errOut)
	}
}

// TestDecayCmd_NoFormatFlags verifies that only the terminal table is
// produced without format flags.
func TestDecayCmd_NoFormatFlags(t *testing.T) {
	mock := newMockCLIIO()
	out, _, err := executeRoot(mock, "co60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.written) != 0 {
		t.Errorf("unexpected artifacts: %v", keys(mock.written))
	}
	if !strings.Contains(out, "1173.228") {
		t.Errorf("terminal table missing:\n%s", out)
	}
}

// TestDecayCmd_InvalidOnly verifies that an invalid nuclide alone exits
// non-zero, writes nothing and reports why.
func TestDecayCmd_InvalidOnly(t *testing.T) {
	mock := newMockCLIIO()
	out, errOut, err := executeRoot(mock, "xx999", "--mcnp", "--json")
	if !errors.Is(err, pipeline.ErrEmptyResultSet) {
		t.Fatalf("err = %v, want ErrEmptyResultSet", err)
	}
	if len(mock.written) != 0 {
		t.Errorf("unexpected artifacts: %v", keys(mock.written))
	}
	if out != "" {
		t.Errorf("unexpected stdout: %s", out)
	}
	if !strings.Contains(errOut, "warning: ") || !strings.Contains(errOut, "(DDW001)") {
		t.Errorf("stderr = %q, want an invalid-nuclide warning", errOut)
	}
	if !strings.Contains(errOut, "(DDE001)") {
		t.Errorf("stderr = %q, want an empty-result error", errOut)
	}
}

// TestDecayCmd_PartialFailure verifies that a missing nuclide is reported
// while the rest are written.
func TestDecayCmd_PartialFailure(t *testing.T) {
	mock := newMockCLIIO()
	_, errOut, err := executeRoot(mock, "na22", "co60", "--mcnp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut, "(DDW002)") {
		t.Errorf("stderr = %q, want a source failure warning", errOut)
	}
	if !strings.HasPrefix(mock.written["decay_data.i"], "sc100   Co60") {
		t.Errorf("MCNP output should start with Co60 at id 100:\n%s", mock.written["decay_data.i"])
	}
}

// TestDecayCmd_ElementExpansion verifies that a bare element expands to its
// isotopes after the explicit nuclides.
func TestDecayCmd_ElementExpansion(t *testing.T) {
	mock := newMockCLIIO()
	if _, _, err := executeRoot(mock, "be", "co60", "--json", "-q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	js := mock.written["decay_data.json"]
	order := []string{`"Co60m0"`, `"Be7m0"`, `"Be11m0"`, `"Be14m0"`}
	last := -1
	for _, k := range order {
		i := strings.Index(js, k)
		if i <= last {
			t.Fatalf("key %s missing or out of order:\n%s", k, js)
		}
		last = i
	}
}

func TestDecayCmd_Quiet(t *testing.T) {
	out, errOut, err := executeRoot(newMockCLIIO(), "-q", "co60", "na22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" || errOut != "" {
		t.Errorf("quiet run printed stdout=%q stderr=%q", out, errOut)
	}
}

// TestDecayCmd_FlagsOverrideConfig verifies flag > config precedence.
func TestDecayCmd_FlagsOverrideConfig(t *testing.T) {
	mock := newMockCLIIO()
	mock.cfg.Rad = decay.XRay
	mock.cfg.ID = 300
	mock.cfg.Output = "from-config"

	if _, _, err := executeRoot(mock, "cs137", "--mcnp", "--rad", "gamma", "-q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.openedWith.Rad != decay.Gamma {
		t.Errorf("rad = %v, want gamma", mock.openedWith.Rad)
	}
	mcnp, ok := mock.written["from-config.i"]
	if !ok {
		t.Fatalf("expected from-config.i, got %v", keys(mock.written))
	}
	if !strings.Contains(mcnp, "si300 L 3.18170e-02 6.61657e-01") {
		t.Errorf("want gamma and x-ray lines at id 300:\n%s", mcnp)
	}
}

func TestDecayCmd_ConfigPath(t *testing.T) {
	mock := newMockCLIIO()
	if _, _, err := executeRoot(mock, "co60", "-q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.loadedPath != config.FileName || mock.loadRequired {
		t.Errorf("loaded %q required=%v, want optional %s", mock.loadedPath, mock.loadRequired, config.FileName)
	}

	if _, _, err := executeRoot(mock, "--config", "custom.yml", "co60", "-q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.loadedPath != "custom.yml" || !mock.loadRequired {
		t.Errorf("loaded %q required=%v, want required custom.yml", mock.loadedPath, mock.loadRequired)
	}
}

func TestDecayCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*mockCLIIO)
		args    []string
		wantErr string
	}{
		{"config error", func(m *mockCLIIO) { m.cfgErr = errors.New("bad yaml") }, []string{"co60"}, "bad yaml"},
		{"source error", func(m *mockCLIIO) { m.srcErr = errors.New("no bucket") }, []string{"co60"}, "opening data source"},
		{"write error", func(m *mockCLIIO) { m.writeErr = errors.New("disk full") }, []string{"co60", "--json"}, "disk full"},
		{"invalid id", func(*mockCLIIO) {}, []string{"co60", "--id", "0"}, "invalid settings"},
		{"invalid rad", func(*mockCLIIO) {}, []string{"co60", "--rad", "neutrino"}, "unknown radiation type"},
		{"invalid sort", func(*mockCLIIO) {}, []string{"co60", "--sort", "mass"}, "unknown sort key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockCLIIO()
			tt.setup(mock)
			_, _, err := executeRoot(mock, append(tt.args, "-q")...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestDecayCmd_FallbackPathLogged verifies that a working-directory
// fallback is reported.
func TestDecayCmd_FallbackPathLogged(t *testing.T) {
	mock := newMockCLIIO()
	mock.fallbackTo = "run.json"
	_, errOut, err := executeRoot(mock, "co60", "--json", "-o", "/nope/run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut, "wrote to working directory") {
		t.Errorf("stderr = %q, want a fallback warning", errOut)
	}
}

func TestDecayCmd_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ddata.prom")
	if _, _, err := executeRoot(newMockCLIIO(), "co60", "na22", "-q", "--metrics-file", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	for _, want := range []string{"ddata_source_fetches_total", `outcome="not_found"`, "ddata_nuclides_total"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func keys(m map[string]string) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
