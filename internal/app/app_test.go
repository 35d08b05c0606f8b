package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/specialistvlad/relionviz/internal/testutil"
	"github.com/specialistvlad/relionviz/internal/viewer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectRoot = "/project"

type harness struct {
	fs     afero.Fs
	out    *testutil.SafeBuffer
	errOut *testutil.SafeBuffer
	opened []string
}

// setupAppTest creates an App over an in-memory copy of the small project.
func setupAppTest(t *testing.T, cfg Config, extra map[string]string) (*App, *harness) {
	t.Helper()

	files := testutil.SmallProject(projectRoot)
	for k, v := range extra {
		files[k] = v
	}
	h := &harness{
		fs:     testutil.MemFs(t, files),
		out:    &testutil.SafeBuffer{},
		errOut: &testutil.SafeBuffer{},
	}

	if cfg.StarPath == "" {
		cfg.StarPath = projectRoot + "/default_pipeline.star"
	}
	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	a := NewApp(h.out, h.errOut, appConfig,
		WithFs(h.fs),
		WithOpener(func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		}),
	)

	t.Cleanup(func() {
		if os.Getenv("RELIONVIZ_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), h.errOut.String())
		}
	})
	return a, h
}

func (h *harness) read(t *testing.T, path string) string {
	t.Helper()
	b, err := afero.ReadFile(h.fs, path)
	require.NoError(t, err)
	return string(b)
}

func TestRun_FullGraph(t *testing.T) {
	// --- Arrange ---
	a, h := setupAppTest(t, Config{}, nil)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	mmd := h.read(t, projectRoot+"/pipeline.mmd")
	assert.True(t, strings.HasPrefix(mmd, "graph TD\n"))
	assert.Equal(t, testutil.SmallPipelineEdgeCount, strings.Count(mmd, " --> "))

	html := h.read(t, projectRoot+"/pipeline.html")
	assert.Contains(t, html, "<title>RELION Pipeline</title>")
	assert.Contains(t, html, "--particle_diameter 300", "enriched command reaches the tooltip data")

	assert.Contains(t, h.errOut.String(), projectRoot+"/pipeline.mmd")
	assert.Contains(t, h.errOut.String(), projectRoot+"/pipeline.html")
	assert.Empty(t, h.opened)
}

func TestRun_FocusUpstream(t *testing.T) {
	a, h := setupAppTest(t, Config{Job: "7", OutputBase: "/out/select"}, nil)

	require.NoError(t, a.Run(context.Background()))

	mmd := h.read(t, "/out/select.mmd")
	assert.Equal(t, 7, strings.Count(mmd, " --> "))
	assert.Contains(t, mmd, "job001 --> job002")
	assert.NotContains(t, mmd, "job008")
	assert.NotContains(t, mmd, "job011")

	html := h.read(t, "/out/select.html")
	assert.Contains(t, html, "<title>RELION Pipeline - 7</title>")
}

func TestRun_FocusDownstream(t *testing.T) {
	a, h := setupAppTest(t, Config{Job: "job010", Downstream: true}, nil)

	require.NoError(t, a.Run(context.Background()))

	mmd := h.read(t, projectRoot+"/pipeline.mmd")
	assert.Contains(t, mmd, "job010 --> job011")
	assert.Equal(t, 1, strings.Count(mmd, " --> "))
	assert.NotContains(t, mmd, "job004[")
}

func TestRun_JobNotFound(t *testing.T) {
	a, h := setupAppTest(t, Config{Job: "999"}, nil)

	err := a.Run(context.Background())

	var notFound *JobNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "999", notFound.Spec)
	assert.Len(t, notFound.Available, 11)
	assert.Contains(t, err.Error(), "Subtract/job011/")

	exists, _ := afero.Exists(h.fs, projectRoot+"/pipeline.mmd")
	assert.False(t, exists, "nothing is written on failure")
}

func TestRun_MissingPipeline(t *testing.T) {
	a, _ := setupAppTest(t, Config{StarPath: "/nowhere/default_pipeline.star"}, nil)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read pipeline")
}

func TestRun_Force(t *testing.T) {
	existing := map[string]string{projectRoot + "/pipeline.mmd": "old"}

	t.Run("existing output is kept without force", func(t *testing.T) {
		a, h := setupAppTest(t, Config{}, existing)

		require.NoError(t, a.Run(context.Background()))

		assert.Equal(t, "old", h.read(t, projectRoot+"/pipeline.mmd"))
		assert.Contains(t, h.errOut.String(), "already exists")
		exists, _ := afero.Exists(h.fs, projectRoot+"/pipeline.html")
		assert.False(t, exists)
	})

	t.Run("force overwrites", func(t *testing.T) {
		a, h := setupAppTest(t, Config{Force: true}, existing)

		require.NoError(t, a.Run(context.Background()))

		assert.True(t, strings.HasPrefix(h.read(t, projectRoot+"/pipeline.mmd"), "graph TD"))
	})
}

func TestRun_SecondRunWithoutForce(t *testing.T) {
	a, h := setupAppTest(t, Config{}, nil)
	require.NoError(t, a.Run(context.Background()))
	first := h.read(t, projectRoot+"/pipeline.mmd")

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, first, h.read(t, projectRoot+"/pipeline.mmd"))
	assert.Contains(t, h.errOut.String(), "already exists")
}

func TestRun_NoEnrich(t *testing.T) {
	a, h := setupAppTest(t, Config{NoEnrich: true}, nil)

	require.NoError(t, a.Run(context.Background()))

	assert.NotContains(t, h.read(t, projectRoot+"/pipeline.html"), "particle_diameter")
}

func TestRun_List(t *testing.T) {
	a, h := setupAppTest(t, Config{List: true, ListFormat: "json"}, nil)

	require.NoError(t, a.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, `"name": "Import/job001/"`)
	assert.Contains(t, out, `"stats": "loaded"`)
	exists, _ := afero.Exists(h.fs, projectRoot+"/pipeline.mmd")
	assert.False(t, exists, "listing does not render")
}

func TestRun_Styles(t *testing.T) {
	styles := map[string]string{
		"/styles.hcl": `
vars {
  text = "color:#000"
}

type_style "Select" {
  style = "fill:#FFFF00,${var.text}"
}
`,
	}
	a, h := setupAppTest(t, Config{StylesPath: "/styles.hcl"}, styles)

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, h.read(t, projectRoot+"/pipeline.mmd"), "classDef select fill:#FFFF00,color:#000\n")
}

func TestRun_BadStyles(t *testing.T) {
	a, _ := setupAppTest(t, Config{StylesPath: "/missing.hcl"}, nil)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load styles")
}

func TestRun_OpenViewers(t *testing.T) {
	a, h := setupAppTest(t, Config{MermaidLive: true, MermaidInk: true}, nil)

	require.NoError(t, a.Run(context.Background()))

	require.Len(t, h.opened, 2)
	assert.True(t, strings.HasPrefix(h.opened[0], viewer.LivePrefix))
	assert.True(t, strings.HasPrefix(h.opened[1], viewer.InkPrefix))

	markup, err := viewer.Decode(strings.TrimPrefix(h.opened[0], viewer.LivePrefix))
	require.NoError(t, err)
	assert.Equal(t, h.read(t, projectRoot+"/pipeline.mmd"), markup)
}

func TestRun_OpenFailureIsNotFatal(t *testing.T) {
	a, h := setupAppTest(t, Config{MermaidLive: true}, nil)
	a.open = func(string) error { return errors.New("no display") }

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, h.errOut.String(), "Could not open browser.")
}
