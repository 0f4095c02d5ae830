// Package config loads parshape job files.
//
// A job names an input source, a list of steps and an output. Files may be
// YAML, JSON or TOML; any key can be overridden from the environment with
// the PARSHAPE_ prefix, dots becoming underscores:
//
//	PARSHAPE_OUTPUT_FORMAT=csv  ->  output.format
//	PARSHAPE_WORKERS=4          ->  workers
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/vegasq/parshape/output"
	"github.com/vegasq/parshape/pipeline"
	"github.com/vegasq/parshape/reader"
	"github.com/vegasq/parshape/reshape"
	"github.com/vegasq/parshape/table"
	"github.com/vegasq/parshape/window"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PARSHAPE"

// Job is one load, transform, write run.
type Job struct {
	Input   reader.Source `mapstructure:"input"`
	Steps   []StepConfig  `mapstructure:"steps"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
	Workers int           `mapstructure:"workers"`
}

// StepConfig holds exactly one of its fields.
type StepConfig struct {
	Window  *WindowConfig  `mapstructure:"window"`
	Pivot   *PivotConfig   `mapstructure:"pivot"`
	Unpivot *UnpivotConfig `mapstructure:"unpivot"`
}

// OutputConfig says where and how results are written. An empty Path means
// stdout.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
	Limit  int    `mapstructure:"limit"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WindowConfig describes a window step. OrderBy entries use the syntax of
// ParseSortKeys.
type WindowConfig struct {
	Kind        string   `mapstructure:"kind"`
	Value       string   `mapstructure:"value"`
	Output      string   `mapstructure:"output"`
	PartitionBy []string `mapstructure:"partition_by"`
	OrderBy     []string `mapstructure:"order_by"`
	Offset      *int     `mapstructure:"offset"`
}

// PivotConfig describes a pivot step.
type PivotConfig struct {
	Index   string   `mapstructure:"index"`
	Pivot   string   `mapstructure:"pivot"`
	Values  string   `mapstructure:"values"`
	GroupBy []string `mapstructure:"group_by"`
}

// UnpivotConfig describes an unpivot step.
type UnpivotConfig struct {
	IDColumns    []string `mapstructure:"id_columns"`
	ValueColumns []string `mapstructure:"value_columns"`
	Variable     string   `mapstructure:"variable"`
	Value        string   `mapstructure:"value"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.kind", "")
	v.SetDefault("input.location", "")
	v.SetDefault("input.query", "")
	v.SetDefault("input.table", "")
	v.SetDefault("output.format", output.FormatJSONL)
	v.SetDefault("output.path", "")
	v.SetDefault("output.limit", 0)
	v.SetDefault("log.level", "WARN")
	v.SetDefault("log.format", "text")
	v.SetDefault("workers", 1)
}

// Load reads the job file at path and applies environment overrides. The
// file type follows its extension.
func Load(path string) (*Job, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	var job Job
	if err := v.Unmarshal(&job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// Validate checks the job's shape. Column references are checked later
// against the loaded data.
func (j *Job) Validate() error {
	if j.Input.Location == "" {
		return fmt.Errorf("%w: input.location is required", table.ErrInvalidSpec)
	}
	if j.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", table.ErrInvalidSpec, j.Workers)
	}
	if _, err := output.New(j.Output.Format, nil); err != nil {
		return fmt.Errorf("%w: %v", table.ErrInvalidSpec, err)
	}
	if len(j.Steps) == 0 {
		return fmt.Errorf("%w: at least one step is required", table.ErrInvalidSpec)
	}

	for i, s := range j.Steps {
		n := 0
		if s.Window != nil {
			n++
		}
		if s.Pivot != nil {
			n++
		}
		if s.Unpivot != nil {
			n++
		}
		if n != 1 {
			return fmt.Errorf("%w: step %d must set exactly one of window, pivot, unpivot", table.ErrInvalidSpec, i+1)
		}
	}
	return nil
}

// Pipeline builds the job's steps. Window steps share one engine sized by
// Workers.
func (j *Job) Pipeline(l *slog.Logger) (*pipeline.Pipeline, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	engine := window.NewEngine(window.WithWorkers(j.Workers))
	steps := make([]pipeline.Step, 0, len(j.Steps))
	for i, s := range j.Steps {
		switch {
		case s.Window != nil:
			spec, err := s.Window.Spec()
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			steps = append(steps, pipeline.WindowStep{Spec: spec, Engine: engine})
		case s.Pivot != nil:
			steps = append(steps, pipeline.PivotStep{Spec: s.Pivot.Spec()})
		case s.Unpivot != nil:
			steps = append(steps, pipeline.UnpivotStep{Spec: s.Unpivot.Spec()})
		}
	}
	return pipeline.New(l, steps...), nil
}

// Spec converts the config into a window spec.
func (c WindowConfig) Spec() (window.Spec, error) {
	kind, err := window.ParseKind(c.Kind)
	if err != nil {
		return window.Spec{}, err
	}
	orderBy, err := ParseSortKeys(c.OrderBy)
	if err != nil {
		return window.Spec{}, err
	}
	return window.Spec{
		Kind:         kind,
		OutputColumn: c.Output,
		ValueColumn:  c.Value,
		PartitionBy:  c.PartitionBy,
		OrderBy:      orderBy,
		Offset:       c.Offset,
	}, nil
}

// Spec converts the config into a pivot spec.
func (c PivotConfig) Spec() reshape.PivotSpec {
	return reshape.PivotSpec{
		IndexColumn:  c.Index,
		PivotColumn:  c.Pivot,
		ValuesColumn: c.Values,
		GroupBy:      c.GroupBy,
	}
}

// Spec converts the config into an unpivot spec.
func (c UnpivotConfig) Spec() reshape.UnpivotSpec {
	return reshape.UnpivotSpec{
		IDColumns:      c.IDColumns,
		ValueColumns:   c.ValueColumns,
		VariableColumn: c.Variable,
		ValueColumn:    c.Value,
	}
}
