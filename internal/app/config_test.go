package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name     string
		in       Config
		want     Config
		errMatch string
	}{
		{
			name: "defaults derived from star path",
			in:   Config{StarPath: "/data/proj/default_pipeline.star"},
			want: Config{
				StarPath:   "/data/proj/default_pipeline.star",
				OutputBase: "/data/proj/pipeline",
				ProjectDir: "/data/proj",
				ListFormat: "table",
			},
		},
		{
			name: "job defaults to upstream",
			in:   Config{StarPath: "p.star", Job: "4"},
			want: Config{
				StarPath:   "p.star",
				Job:        "4",
				Upstream:   true,
				OutputBase: "pipeline",
				ProjectDir: ".",
				ListFormat: "table",
			},
		},
		{
			name: "downstream only is kept",
			in:   Config{StarPath: "p.star", Job: "4", Downstream: true},
			want: Config{
				StarPath:   "p.star",
				Job:        "4",
				Downstream: true,
				OutputBase: "pipeline",
				ProjectDir: ".",
				ListFormat: "table",
			},
		},
		{
			name: "output extension stripped",
			in:   Config{StarPath: "/p/x.star", OutputBase: "/out/diagram.mmd", ProjectDir: "/elsewhere"},
			want: Config{
				StarPath:   "/p/x.star",
				OutputBase: "/out/diagram",
				ProjectDir: "/elsewhere",
				ListFormat: "table",
			},
		},
		{
			name: "html extension stripped",
			in:   Config{StarPath: "/p/x.star", OutputBase: "/out/diagram.HTML"},
			want: Config{
				StarPath:   "/p/x.star",
				OutputBase: "/out/diagram",
				ProjectDir: "/p",
				ListFormat: "table",
			},
		},
		{
			name:     "missing star path",
			in:       Config{},
			errMatch: "StarPath is a required",
		},
		{
			name:     "bad list format",
			in:       Config{StarPath: "p.star", ListFormat: "csv"},
			errMatch: `invalid list format "csv"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewConfig(tc.in)
			if tc.errMatch != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{OutputBase: "/out/pipeline"}
	assert.Equal(t, "/out/pipeline.mmd", cfg.MermaidPath())
	assert.Equal(t, "/out/pipeline.html", cfg.HTMLPath())
}

func TestJobNotFoundError(t *testing.T) {
	err := &JobNotFoundError{Spec: "999", Available: []string{"Import/job001/", "Refine3D/job004/"}}
	assert.Equal(t, "job '999' not found in pipeline.\nAvailable jobs:\n  Import/job001/\n  Refine3D/job004/", err.Error())
}
