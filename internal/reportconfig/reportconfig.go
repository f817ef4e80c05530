// Package reportconfig loads the settings of an evaluation from a YAML file,
// COVERAGE_GATE_* environment variables and command line flags, in
// increasing order of precedence.
package reportconfig

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
)

// ErrNoTree is returned when no coverage tree to evaluate is configured.
var ErrNoTree = errors.New("no coverage tree configured")

const envPrefix = "COVERAGE_GATE"

// IReportConfiguration is the read-only view of the settings the pipeline
// consumes.
type IReportConfiguration interface {
	TreeFile() string
	ReferenceFile() string
	DiffFile() string
	HistoryFile() string
	Job() string
	Build() int
	SourceDirectories() []string
	StripPrefix() string
	FileFilters() []string
	QualityGates() ([]qualitygate.QualityGate, error)
	VerbosityLevel() logging.VerbosityLevel
	Language() language.Tag
}

// GateConfig is a quality gate as written in the configuration file. Names
// are resolved by QualityGates, legacy names included.
type GateConfig struct {
	Threshold   float64 `mapstructure:"threshold" yaml:"threshold"`
	Metric      string  `mapstructure:"metric" yaml:"metric"`
	Baseline    string  `mapstructure:"baseline" yaml:"baseline"`
	Criticality string  `mapstructure:"criticality" yaml:"criticality"`
}

// ReportConfiguration is the concrete implementation of IReportConfiguration.
type ReportConfiguration struct {
	Tree       string       `mapstructure:"tree" yaml:"tree"`
	Reference  string       `mapstructure:"reference" yaml:"reference"`
	Diff       string       `mapstructure:"diff" yaml:"diff"`
	History    string       `mapstructure:"history" yaml:"history"`
	JobName    string       `mapstructure:"job" yaml:"job"`
	BuildNo    int          `mapstructure:"build" yaml:"build"`
	SourceDirs []string     `mapstructure:"source_dirs" yaml:"source_dirs"`
	Prefix     string       `mapstructure:"strip_prefix" yaml:"strip_prefix"`
	Filters    []string     `mapstructure:"file_filters" yaml:"file_filters"`
	Gates      []GateConfig `mapstructure:"quality_gates" yaml:"quality_gates"`
	Verbosity  string       `mapstructure:"verbosity" yaml:"verbosity"`
	Locale     string       `mapstructure:"locale" yaml:"locale"`
}

func (rc *ReportConfiguration) TreeFile() string            { return rc.Tree }
func (rc *ReportConfiguration) ReferenceFile() string       { return rc.Reference }
func (rc *ReportConfiguration) DiffFile() string            { return rc.Diff }
func (rc *ReportConfiguration) HistoryFile() string         { return rc.History }
func (rc *ReportConfiguration) Job() string                 { return rc.JobName }
func (rc *ReportConfiguration) Build() int                  { return rc.BuildNo }
func (rc *ReportConfiguration) SourceDirectories() []string { return rc.SourceDirs }
func (rc *ReportConfiguration) StripPrefix() string         { return rc.Prefix }
func (rc *ReportConfiguration) FileFilters() []string       { return rc.Filters }

// VerbosityLevel falls back to Info for unknown names; Validate reports them.
func (rc *ReportConfiguration) VerbosityLevel() logging.VerbosityLevel {
	v, err := logging.ParseVerbosity(rc.Verbosity)
	if err != nil {
		return logging.Info
	}
	return v
}

// Language is the locale used to format numbers, English when unset or
// invalid.
func (rc *ReportConfiguration) Language() language.Tag {
	tag, err := language.Parse(rc.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// QualityGates resolves the configured gates in order.
func (rc *ReportConfiguration) QualityGates() ([]qualitygate.QualityGate, error) {
	gates := make([]qualitygate.QualityGate, 0, len(rc.Gates))
	var errs []error
	for i, g := range rc.Gates {
		m, err := metric.Parse(g.Metric)
		if err != nil {
			errs = append(errs, fmt.Errorf("quality gate %d: %w", i+1, err))
			continue
		}
		b, err := qualitygate.ParseBaseline(g.Baseline)
		if err != nil {
			errs = append(errs, fmt.Errorf("quality gate %d: %w", i+1, err))
			continue
		}
		c, err := qualitygate.ParseCriticality(g.Criticality)
		if err != nil {
			errs = append(errs, fmt.Errorf("quality gate %d: %w", i+1, err))
			continue
		}
		gates = append(gates, qualitygate.New(g.Threshold, m, b, c))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return gates, nil
}

// Validate checks the settings that cannot be defaulted.
func (rc *ReportConfiguration) Validate() error {
	if strings.TrimSpace(rc.Tree) == "" {
		return ErrNoTree
	}
	if _, err := logging.ParseVerbosity(rc.Verbosity); err != nil {
		return err
	}
	if rc.History != "" && rc.JobName == "" {
		return fmt.Errorf("a job name is required when a history file is configured")
	}
	if _, err := rc.QualityGates(); err != nil {
		return err
	}
	return nil
}

// Default returns the settings used when nothing is configured.
func Default() *ReportConfiguration {
	return &ReportConfiguration{
		JobName:   "default",
		Verbosity: logging.Info.String(),
		Locale:    "en",
		Gates: []GateConfig{
			{Threshold: 60, Metric: "LINE", Baseline: "PROJECT", Criticality: "UNSTABLE"},
			{Threshold: 60, Metric: "BRANCH", Baseline: "PROJECT", Criticality: "UNSTABLE"},
			{Threshold: 80, Metric: "LINE", Baseline: "MODIFIED_LINES", Criticality: "FAILURE"},
		},
	}
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"tree":         "tree",
	"reference":    "reference",
	"diff":         "diff",
	"history":      "history",
	"job":          "job",
	"build":        "build",
	"source-dir":   "source_dirs",
	"strip-prefix": "strip_prefix",
	"filter":       "file_filters",
	"verbosity":    "verbosity",
	"locale":       "locale",
}

// Load reads the configuration file at path, if any, and overlays the
// environment and the flags that were set. Without a path "coverage-gate.yaml"
// is looked up in the working directory and its absence is not an error.
func Load(path string, flags *pflag.FlagSet) (*ReportConfiguration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("tree", cfg.Tree)
	v.SetDefault("reference", cfg.Reference)
	v.SetDefault("diff", cfg.Diff)
	v.SetDefault("history", cfg.History)
	v.SetDefault("job", cfg.JobName)
	v.SetDefault("build", cfg.BuildNo)
	v.SetDefault("source_dirs", cfg.SourceDirs)
	v.SetDefault("strip_prefix", cfg.Prefix)
	v.SetDefault("file_filters", cfg.Filters)
	v.SetDefault("quality_gates", cfg.Gates)
	v.SetDefault("verbosity", cfg.Verbosity)
	v.SetDefault("locale", cfg.Locale)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("coverage-gate")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg = &ReportConfiguration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes a configuration template holding the default settings.
func WriteDefault(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return enc.Close()
}
