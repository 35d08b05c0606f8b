package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/specialistvlad/relionviz/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleJobs() []*pipeline.Job {
	return []*pipeline.Job{
		{Name: "Select/job007/", Alias: "Select/j007_best_class/", TypeLabel: "relion.select.onvalue", Status: "Succeeded"},
		{Name: "Class3D/job006/", TypeLabel: "relion.class3d", Status: "Failed", Stats: pipeline.StatsMalformed},
		{Name: "Import/job001/", TypeLabel: "relion.importmovies", Status: "Succeeded"},
	}
}

func TestRecords_SortedByName(t *testing.T) {
	records := Records(sampleJobs())
	require.Len(t, records, 3)
	assert.Equal(t, "Class3D/job006/", records[0].Name)
	assert.Equal(t, "Import/job001/", records[1].Name)
	assert.Equal(t, Record{
		ID:        "job007",
		Name:      "Select/job007/",
		Alias:     "Select/j007_best_class/",
		Type:      "Select",
		TypeLabel: "relion.select.onvalue",
		Status:    "Succeeded",
		Stats:     "absent",
	}, records[2])
}

func TestWriteJobs(t *testing.T) {
	testCases := []struct {
		name     string
		format   string
		check    func(t *testing.T, out string)
		errMatch string
	}{
		{
			name:   "table",
			format: FormatTable,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "STATUS")
				assert.Contains(t, out, "Class3D/job006/")
				assert.Contains(t, out, "malformed")
				assert.Less(t, strings.Index(out, "Class3D"), strings.Index(out, "Select/job007/"))
			},
		},
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out string) {
				var got []Record
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				require.Len(t, got, 3)
				assert.Equal(t, "job006", got[0].ID)
				assert.NotContains(t, out, `"alias": ""`)
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			check: func(t *testing.T, out string) {
				var got []Record
				require.NoError(t, yaml.Unmarshal([]byte(out), &got))
				require.Len(t, got, 3)
				assert.Equal(t, "Select/j007_best_class/", got[2].Alias)
				assert.Equal(t, "Failed", got[0].Status)
			},
		},
		{
			name:     "unknown",
			format:   "xml",
			errMatch: `unknown format "xml"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteJobs(&buf, sampleJobs(), tc.format)
			if tc.errMatch != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMatch)
				return
			}
			require.NoError(t, err)
			tc.check(t, buf.String())
		})
	}
}

func TestWriteJobs_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJobs(&buf, nil, FormatTable))
	assert.Equal(t, "nothing to display...\n", buf.String())
}
