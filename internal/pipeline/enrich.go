package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/relionviz/internal/ctxlog"
	"github.com/specialistvlad/relionviz/internal/fsutil"
	"github.com/specialistvlad/relionviz/internal/starfile"
	"github.com/spf13/afero"
)

const (
	noteFile = "note.txt"
	// modelClassesMarker identifies the per-class table of a model file.
	modelClassesMarker = "model_classes"

	colClassDistribution          = "rlnClassDistribution"
	colAccuracyRotations          = "rlnAccuracyRotations"
	colAccuracyTranslationsAngst  = "rlnAccuracyTranslationsAngst"
	colEstimatedResolution        = "rlnEstimatedResolution"
	colOverallFourierCompleteness = "rlnOverallFourierCompleteness"
)

// StatsOutcome is the result of looking up a job's model statistics.
type StatsOutcome int

const (
	// StatsAbsent means no statistics file exists for the job.
	StatsAbsent StatsOutcome = iota
	// StatsLoaded means the statistics were read.
	StatsLoaded
	// StatsMalformed means a file exists but could not be used.
	StatsMalformed
)

// String implements fmt.Stringer.
func (o StatsOutcome) String() string {
	switch o {
	case StatsAbsent:
		return "absent"
	case StatsLoaded:
		return "loaded"
	case StatsMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ModelStats is the outcome of reading one model file.
type ModelStats struct {
	Outcome StatsOutcome
	Classes []ModelClassInfo
	// Err is the cause when Outcome is StatsMalformed.
	Err error
}

// modelLocator returns the model file of a job, or false when there is none.
type modelLocator func(afs afero.Fs, projectRoot, jobName string) (string, bool)

// modelLocators maps a job type to the way its statistics file is found.
// Types missing from the table carry no statistics.
var modelLocators = map[string]modelLocator{
	"Refine3D": fixedModel("run_model.star"),
	"Class3D":  FindLastIterationModel,
}

func fixedModel(name string) modelLocator {
	return func(afs afero.Fs, projectRoot, jobName string) (string, bool) {
		path := filepath.Join(projectRoot, jobName, name)
		return path, fsutil.Exists(afs, path)
	}
}

// EnrichSummary counts what enrichment found.
type EnrichSummary struct {
	Commands  int
	Models    int
	Malformed int
}

// Enrich fills LastCommand, ModelClasses and Stats of every job from the
// job directories under projectRoot. It mutates p in place and must not run
// concurrently with other users of p.
func Enrich(ctx context.Context, afs afero.Fs, p *Pipeline, projectRoot string) EnrichSummary {
	logger := ctxlog.FromContext(ctx)
	var summary EnrichSummary

	for _, name := range p.Names() {
		job := p.Jobs[name]

		if cmd, ok := ParseNote(afs, projectRoot, name); ok {
			job.LastCommand = cmd
			summary.Commands++
		}

		locate, ok := modelLocators[job.JobType()]
		if !ok {
			continue
		}
		path, ok := locate(afs, projectRoot, name)
		if !ok {
			job.Stats = StatsAbsent
			continue
		}

		stats := ParseModelStar(afs, path)
		job.Stats = stats.Outcome
		switch stats.Outcome {
		case StatsLoaded:
			job.ModelClasses = stats.Classes
			summary.Models++
		case StatsMalformed:
			summary.Malformed++
		}
	}

	logger.Debug("Jobs enriched.", "project_root", projectRoot, "commands", summary.Commands, "models", summary.Models)
	return summary
}

// ParseNote returns the last command recorded in <projectRoot>/<jobName>/note.txt:
// the last line starting with a backtick, trimmed. It returns false when the
// file is missing or holds no command.
func ParseNote(afs afero.Fs, projectRoot, jobName string) (string, bool) {
	f, err := afs.Open(filepath.Join(projectRoot, jobName, noteFile))
	if err != nil {
		return "", false
	}
	defer f.Close()

	var last string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "`") {
			last = line
		}
	}
	if sc.Err() != nil || last == "" {
		return "", false
	}
	return last, true
}

// ParseModelStar reads the per-class statistics of a model file. It never
// fails: a missing file is StatsAbsent, anything unusable is StatsMalformed.
// Class indices are 1-based and follow row order; missing numeric fields are 0.
func ParseModelStar(afs afero.Fs, path string) ModelStats {
	f, err := starfile.ReadFile(afs, path)
	if err != nil {
		if errors.Is(err, starfile.ErrNotFound) {
			return ModelStats{Outcome: StatsAbsent}
		}
		return ModelStats{Outcome: StatsMalformed, Err: err}
	}

	block, ok := f.FindBlock(modelClassesMarker)
	if !ok || block.Table == nil {
		return ModelStats{Outcome: StatsMalformed, Err: fmt.Errorf("%s: no %s table", path, modelClassesMarker)}
	}

	t := block.Table
	classes := make([]ModelClassInfo, 0, t.Len())
	for i := range t.Rows {
		classes = append(classes, ModelClassInfo{
			ClassIndex:                 i + 1,
			ClassDistribution:          t.Float(i, colClassDistribution),
			AccuracyRotations:          t.Float(i, colAccuracyRotations),
			AccuracyTranslationsAngst:  t.Float(i, colAccuracyTranslationsAngst),
			EstimatedResolution:        t.Float(i, colEstimatedResolution),
			OverallFourierCompleteness: t.Float(i, colOverallFourierCompleteness),
		})
	}
	return ModelStats{Outcome: StatsLoaded, Classes: classes}
}

var iterationModelPattern = regexp.MustCompile(`^run_it(\d+)_model\.star$`)

// FindLastIterationModel returns the model file of the highest iteration in
// the job directory. Iterations are compared numerically, so run_it9 sorts
// before run_it10 even without zero padding; equal numbers fall back to the
// lexicographically last name.
func FindLastIterationModel(afs afero.Fs, projectRoot, jobName string) (string, bool) {
	files, err := fsutil.FindFilesMatching(afs, filepath.Join(projectRoot, jobName), iterationModelPattern)
	if err != nil || len(files) == 0 {
		return "", false
	}

	best, bestIter := "", -1
	for _, path := range files {
		m := iterationModelPattern.FindStringSubmatch(filepath.Base(path))
		iter, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		// files is sorted, so >= keeps the lexicographically last on ties.
		if iter >= bestIter {
			best, bestIter = path, iter
		}
	}
	return best, best != ""
}
