package pipeline

import (
	"context"
	"testing"

	"github.com/specialistvlad/relionviz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	fs := testutil.MemFs(t, testutil.SmallProject(projectRoot))

	cmd, ok := ParseNote(fs, projectRoot, "Refine3D/job004/")
	require.True(t, ok)
	assert.Contains(t, cmd, "relion_refine_mpi")
	assert.Contains(t, cmd, "--particle_diameter 300", "the last command wins")
	assert.NotContains(t, cmd, "--particle_diameter 280")

	_, ok = ParseNote(fs, projectRoot, "Extract/job002/")
	assert.False(t, ok, "missing note.txt")
}

func TestParseNote_NoCommandLines(t *testing.T) {
	fs := testutil.MemFs(t, map[string]string{
		"/p/Import/job001/note.txt": " ++++ Executing new job\n ++++ with the following command(s):\n",
	})
	_, ok := ParseNote(fs, "/p", "Import/job001/")
	assert.False(t, ok)
}

func TestParseModelStar(t *testing.T) {
	fs := testutil.MemFs(t, testutil.SmallProject(projectRoot))

	t.Run("refinement model", func(t *testing.T) {
		stats := ParseModelStar(fs, projectRoot+"/Refine3D/job004/run_model.star")
		require.Equal(t, StatsLoaded, stats.Outcome)
		require.Len(t, stats.Classes, 1)

		mc := stats.Classes[0]
		assert.Equal(t, 1, mc.ClassIndex)
		assert.InDelta(t, 3.2, mc.EstimatedResolution, 0.01)
		assert.InDelta(t, 0.95, mc.OverallFourierCompleteness, 0.01)
		assert.InDelta(t, 1.0, mc.ClassDistribution, 0.01)
		assert.InDelta(t, 1.5, mc.AccuracyRotations, 0.01)
		assert.InDelta(t, 0.35, mc.AccuracyTranslationsAngst, 0.01)
	})

	t.Run("classification model", func(t *testing.T) {
		stats := ParseModelStar(fs, projectRoot+"/Class3D/job006/run_it025_model.star")
		require.Equal(t, StatsLoaded, stats.Outcome)
		require.Len(t, stats.Classes, 3)
		assert.InDelta(t, 4.5, stats.Classes[0].EstimatedResolution, 0.01)
		assert.InDelta(t, 5.2, stats.Classes[1].EstimatedResolution, 0.01)
		assert.InDelta(t, 7.1, stats.Classes[2].EstimatedResolution, 0.01)
		for i, c := range stats.Classes {
			assert.Equal(t, i+1, c.ClassIndex)
		}
	})

	t.Run("missing file is absent", func(t *testing.T) {
		stats := ParseModelStar(fs, projectRoot+"/nonexistent.star")
		assert.Equal(t, StatsAbsent, stats.Outcome)
		assert.Nil(t, stats.Classes)
		assert.NoError(t, stats.Err)
	})
}

func TestParseModelStar_Malformed(t *testing.T) {
	fs := testutil.MemFs(t, map[string]string{
		"/m/broken.star":   "data_model_classes\nloop_\n_rlnClassDistribution\n_rlnEstimatedResolution\n0.5\n",
		"/m/nomarker.star": "data_model_general\n_rlnNrClasses 1\n",
		"/m/sparse.star":   "data_model_classes\nloop_\n_rlnReferenceImage\n_rlnEstimatedResolution\nref.mrc 6.5\n",
	})

	stats := ParseModelStar(fs, "/m/broken.star")
	assert.Equal(t, StatsMalformed, stats.Outcome)
	assert.Error(t, stats.Err)

	stats = ParseModelStar(fs, "/m/nomarker.star")
	assert.Equal(t, StatsMalformed, stats.Outcome)
	assert.ErrorContains(t, stats.Err, "model_classes")

	stats = ParseModelStar(fs, "/m/sparse.star")
	require.Equal(t, StatsLoaded, stats.Outcome)
	require.Len(t, stats.Classes, 1)
	assert.Equal(t, 6.5, stats.Classes[0].EstimatedResolution)
	assert.Equal(t, 0.0, stats.Classes[0].ClassDistribution, "missing numeric fields default to zero")
}

func TestFindLastIterationModel(t *testing.T) {
	fs := testutil.MemFs(t, testutil.SmallProject(projectRoot))

	path, ok := FindLastIterationModel(fs, projectRoot, "Class3D/job006/")
	require.True(t, ok)
	assert.Equal(t, projectRoot+"/Class3D/job006/run_it025_model.star", path)

	_, ok = FindLastIterationModel(fs, projectRoot, "Import/job001/")
	assert.False(t, ok)

	_, ok = FindLastIterationModel(fs, projectRoot, "Missing/job404/")
	assert.False(t, ok)
}

func TestFindLastIterationModel_NumericOrder(t *testing.T) {
	fs := testutil.MemFs(t, map[string]string{
		"/p/Class3D/job001/run_it9_model.star":  "",
		"/p/Class3D/job001/run_it10_model.star": "",
		"/p/Class3D/job001/run_it2_model.star":  "",
	})

	path, ok := FindLastIterationModel(fs, "/p", "Class3D/job001/")
	require.True(t, ok)
	assert.Equal(t, "/p/Class3D/job001/run_it10_model.star", path)
}

func TestEnrich(t *testing.T) {
	fs := testutil.MemFs(t, testutil.SmallProject(projectRoot))
	p, err := Parse(context.Background(), fs, projectRoot+"/default_pipeline.star")
	require.NoError(t, err)

	summary := Enrich(context.Background(), fs, p, projectRoot)
	assert.Equal(t, EnrichSummary{Commands: 3, Models: 2}, summary)

	r3d := p.Jobs["Refine3D/job004/"]
	assert.Contains(t, r3d.LastCommand, "relion_refine_mpi")
	assert.Len(t, r3d.ModelClasses, 1)
	assert.Equal(t, StatsLoaded, r3d.Stats)

	c3d := p.Jobs["Class3D/job006/"]
	assert.NotEmpty(t, c3d.LastCommand)
	assert.Len(t, c3d.ModelClasses, 3)
	assert.InDelta(t, 4.5, c3d.ModelClasses[0].EstimatedResolution, 0.01, "iteration 25 beats iteration 20")

	imp := p.Jobs["Import/job001/"]
	assert.NotEmpty(t, imp.LastCommand)
	assert.Nil(t, imp.ModelClasses)
	assert.Equal(t, StatsAbsent, imp.Stats)

	assert.Empty(t, p.Jobs["Extract/job002/"].LastCommand)
}

func TestEnrich_MalformedModelIsNotFatal(t *testing.T) {
	files := testutil.SmallProject(projectRoot)
	files[projectRoot+"/Refine3D/job004/run_model.star"] = "data_model_classes\nloop_\n_a\n_b\n1\n"
	fs := testutil.MemFs(t, files)

	p, err := Parse(context.Background(), fs, projectRoot+"/default_pipeline.star")
	require.NoError(t, err)

	summary := Enrich(context.Background(), fs, p, projectRoot)
	assert.Equal(t, 1, summary.Malformed)

	r3d := p.Jobs["Refine3D/job004/"]
	assert.Equal(t, StatsMalformed, r3d.Stats)
	assert.Nil(t, r3d.ModelClasses)
	assert.NotEmpty(t, r3d.LastCommand)
}

func TestStatsOutcome_String(t *testing.T) {
	assert.Equal(t, "absent", StatsAbsent.String())
	assert.Equal(t, "loaded", StatsLoaded.String())
	assert.Equal(t, "malformed", StatsMalformed.String())
	assert.Equal(t, "unknown", StatsOutcome(42).String())
}
