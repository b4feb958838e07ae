package app_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/opencontainers/go-digest"
	"github.com/rigzba21/conda-vendor/internal/adapters/fs"
	"github.com/rigzba21/conda-vendor/internal/adapters/indexer"
	"github.com/rigzba21/conda-vendor/internal/adapters/manifest"
	"github.com/rigzba21/conda-vendor/internal/app"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

var archives = map[string][]byte{
	"/main/linux-64/python-3.9.5-h12debd9_4.tar.bz2": []byte("python archive"),
	"/main/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2":   []byte("six archive"),
}

type recordingRunner struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, _ []string, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil, nil
}

type harness struct {
	app    *app.App
	solver *mocks.MockSolver
	loader *mocks.MockEnvironmentLoader
	server *httptest.Server
	runner *recordingRunner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().Start(gomock.Any()).Return(nil).AnyTimes()
	renderer.EXPECT().Stop().Return(nil).AnyTimes()
	renderer.EXPECT().Wait().Return(nil).AnyTimes()
	renderer.EXPECT().OnPlanEmit(gomock.Any()).AnyTimes()
	renderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	renderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	h := &harness{
		solver: mocks.NewMockSolver(ctrl),
		loader: mocks.NewMockEnvironmentLoader(ctrl),
		server: server,
		runner: &recordingRunner{},
	}
	h.app = app.New(h.loader, h.solver, fs.NewLayoutManager(), manifest.NewStore(), renderer, log).
		WithIndexerOptions(indexer.WithRunner(h.runner))
	return h
}

func (h *harness) plan() []domain.FetchEntry {
	entry := func(path, name, version, subdir string) domain.FetchEntry {
		return domain.FetchEntry{
			Filename: filepath.Base(path),
			URL:      h.server.URL + path,
			SHA256:   digest.SHA256.FromBytes(archives[path]).Encoded(),
			Subdir:   subdir,
			Name:     name,
			Version:  version,
			Channel:  "https://conda.anaconda.org/main/" + subdir,
		}
	}
	return []domain.FetchEntry{
		entry("/main/linux-64/python-3.9.5-h12debd9_4.tar.bz2", "python", "3.9.5", "linux-64"),
		entry("/main/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2", "six", "1.16.0", "noarch"),
	}
}

func (h *harness) expectSolve(plan []domain.FetchEntry) {
	h.loader.EXPECT().Load("environment.yaml").Return(&domain.EnvironmentSpec{
		Name:         "minimal_env",
		Channels:     []string{"main", "nodefaults"},
		Dependencies: []domain.Dependency{{Name: "python", Version: "3.9.5"}},
	}, nil)

	result := &domain.SolveResult{Success: true, Actions: domain.SolveActions{Fetch: plan}}
	h.solver.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(result, nil)
	h.solver.EXPECT().ReconstructFetchActions(gomock.Any(), "conda", domain.PlatformTag("linux-64"), result).
		Return(result, nil)
}

func vendorOptions(out string) app.VendorOptions {
	opts := app.DefaultVendorOptions()
	opts.EnvironmentFile = "environment.yaml"
	opts.Platform = "linux-64"
	opts.OutputDir = out
	opts.OutputMode = "linear"
	return opts
}

func TestApp_Vendor(t *testing.T) {
	h := newHarness(t)
	plan := h.plan()
	h.expectSolve(plan)
	out := t.TempDir()

	result, err := h.app.Vendor(context.Background(), vendorOptions(out))
	require.NoError(t, err)

	root := filepath.Join(out, "minimal_env")
	payload, err := os.ReadFile(filepath.Join(root, "linux-64", plan[0].Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("python archive"), payload)

	six, err := os.ReadFile(filepath.Join(root, "noarch", plan[1].Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("six archive"), six)

	data, err := os.ReadFile(filepath.Join(root, domain.ManifestFileName))
	require.NoError(t, err)
	var doc map[string]map[string]struct {
		RepodataURL any                     `yaml:"repodata_url"`
		Entries     []domain.ManifestRecord `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	python := doc["main"]["linux-64"]
	require.Len(t, python.Entries, 1)
	assert.Equal(t, "pkg:conda/python@3.9.5?url="+plan[0].URL, python.Entries[0].Purl)
	assert.Equal(t, "https://conda.anaconda.org/main/linux-64/repodata.json", python.RepodataURL)
	require.Len(t, doc["main"]["noarch"].Entries, 1)

	var prov domain.Provenance
	data, err = os.ReadFile(filepath.Join(root, domain.ProvenanceFileName))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &prov))
	assert.Equal(t, result.ManifestSHA256, prov.ManifestSHA256)
	assert.Equal(t, 2, prov.Artifacts)

	require.Len(t, h.runner.calls, 1)
	assert.Equal(t, []string{"conda", "index", root}, h.runner.calls[0])
}

func TestApp_Vendor_InteractiveProgress(t *testing.T) {
	h := newHarness(t)
	h.app.WithDisableTick().WithTeaOptions(
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	plan := h.plan()
	h.expectSolve(plan)
	out := t.TempDir()

	opts := vendorOptions(out)
	opts.OutputMode = "tui"
	opts.Jobs = 2

	result, err := h.app.Vendor(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 2)
	assert.FileExists(t, filepath.Join(out, "minimal_env", "noarch", plan[1].Filename))
}

func TestApp_Vendor_ParallelSkipIndex(t *testing.T) {
	h := newHarness(t)
	plan := h.plan()
	h.expectSolve(plan)
	out := t.TempDir()

	opts := vendorOptions(out)
	opts.Jobs = 4
	opts.SkipIndex = true
	opts.ManifestFormat = "json"

	result, err := h.app.Vendor(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 2)
	assert.FileExists(t, filepath.Join(out, "minimal_env", domain.ManifestJSONFileName))
	assert.Empty(t, h.runner.calls)
}

func TestApp_Vendor_DigestMismatch(t *testing.T) {
	h := newHarness(t)
	plan := h.plan()
	plan[0].SHA256 = digest.SHA256.FromString("something else").Encoded()
	h.expectSolve(plan)
	out := t.TempDir()

	_, err := h.app.Vendor(context.Background(), vendorOptions(out))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDigestMismatch))

	root := filepath.Join(out, "minimal_env")
	assert.NoFileExists(t, filepath.Join(root, "linux-64", plan[0].Filename))
	assert.NoFileExists(t, filepath.Join(root, "noarch", plan[1].Filename))
	assert.NoFileExists(t, filepath.Join(root, domain.ManifestFileName))
	assert.Empty(t, h.runner.calls)
}

func TestApp_Vendor_NotFoundFailsDigest(t *testing.T) {
	h := newHarness(t)
	plan := h.plan()
	plan[1].URL = h.server.URL + "/main/noarch/missing-1.0-0.tar.bz2"
	h.expectSolve(plan)

	_, err := h.app.Vendor(context.Background(), vendorOptions(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDigestMismatch))
}

func TestApp_Vendor_RejectsBadOptions(t *testing.T) {
	h := newHarness(t)
	out := t.TempDir()

	opts := vendorOptions(out)
	opts.Solver = "pip"
	_, err := h.app.Vendor(context.Background(), opts)
	assert.True(t, errors.Is(err, domain.ErrUnknownSolver))

	opts = vendorOptions(out)
	opts.ManifestFormat = "toml"
	_, err = h.app.Vendor(context.Background(), opts)
	assert.True(t, errors.Is(err, domain.ErrUnknownManifestFormat))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_Manifest(t *testing.T) {
	h := newHarness(t)
	plan := h.plan()
	h.expectSolve(plan)
	output := filepath.Join(t.TempDir(), "vendor_resources.yaml")

	result, err := h.app.Manifest(context.Background(), app.ManifestOptions{
		EnvironmentFile: "environment.yaml",
		Solver:          "conda",
		Platform:        "linux-64",
		Output:          output,
		ManifestFormat:  "resources",
		OutputMode:      "linear",
	})
	require.NoError(t, err)
	assert.Equal(t, output, result.ManifestPath)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc struct {
		Resources []domain.Resource `yaml:"resources"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Resources, 2)
	assert.Equal(t, plan[0].URL, doc.Resources[0].URL)
	assert.Equal(t, plan[0].SHA256, doc.Resources[0].Validation.Value)
}
