package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures all runtime options for the generator and check runner.
type Config struct {
	Seed            int64         `yaml:"seed"`
	Iterations      int           `yaml:"iterations"`
	Workers         int           `yaml:"workers"`
	MaxColumns      int           `yaml:"max_columns"`
	MaxRowsPerTable int           `yaml:"max_rows_per_table"`
	InsertRowsMax   int           `yaml:"insert_rows_max"`
	NullProb        int           `yaml:"null_prob"`
	Weights         Weights       `yaml:"weights"`
	Synth           SynthConfig   `yaml:"synth"`
	Report          ReportConfig  `yaml:"report"`
	Logging         Logging       `yaml:"logging"`
	Storage         StorageConfig `yaml:"storage"`
}

// Weights controls weighted selections for statements and predicates.
type Weights struct {
	Queries   QueryWeights     `yaml:"queries"`
	Predicate PredicateWeights `yaml:"predicate"`
	Oracles   OracleWeights    `yaml:"oracles"`
}

// OracleWeights sets how often each property check runs.
type OracleWeights struct {
	RowTruth      int `yaml:"row_truth"`
	SimpleColumn  int `yaml:"simple_column"`
	CompoundFalse int `yaml:"compound_false"`
	QuerySyntax   int `yaml:"query_syntax"`
}

// QueryWeights sets relative frequencies per statement kind.
// Delete defaults to 0 and is only generated when raised explicitly.
type QueryWeights struct {
	Create int `yaml:"create"`
	Select int `yaml:"select"`
	Insert int `yaml:"insert"`
	Delete int `yaml:"delete"`
}

// PredicateWeights controls compound predicate shape.
type PredicateWeights struct {
	AndProb int `yaml:"and_prob"`
}

// SynthConfig bounds the row-targeted predicate synthesizer.
type SynthConfig struct {
	TrueMax   int `yaml:"true_max"`
	FalseMax  int `yaml:"false_max"`
	WindowMax int `yaml:"window_max"`
}

// ReportConfig controls where counterexample cases are written.
type ReportConfig struct {
	OutputDir   string `yaml:"output_dir"`
	UseUUIDPath bool   `yaml:"use_uuid_path"`
	Archive     bool   `yaml:"archive"`
}

// Logging controls stdout logging behavior.
type Logging struct {
	Verbose               bool   `yaml:"verbose"`
	ReportIntervalSeconds int    `yaml:"report_interval_seconds"`
	LogFile               string `yaml:"log_file"`
}

// StorageConfig holds external storage settings.
type StorageConfig struct {
	S3  S3Config  `yaml:"s3"`
	GCS GCSConfig `yaml:"gcs"`
}

// CloudEnabled reports whether any cloud storage backend is enabled.
func (s StorageConfig) CloudEnabled() bool {
	return s.GCS.Enabled || s.S3.Enabled
}

// S3Config configures S3 uploads (legacy and S3-compatible endpoints).
type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// GCSConfig configures GCS uploads.
type GCSConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	normalizeConfig(&cfg)
	return cfg, nil
}

// InsertRowsLimit bounds generated INSERT statements: they carry fewer rows.
const InsertRowsLimit = 10

const (
	maxColumnsDefault      = 6
	maxRowsPerTableDefault = 8
	insertRowsMaxDefault   = 9
	andProbDefault         = 70
	synthTrueMaxDefault    = 4
	synthFalseMaxDefault   = 3
	synthWindowMaxDefault  = 3
	reportIntervalDefault  = 30
)

func normalizeConfig(cfg *Config) {
	if cfg.Iterations < 0 {
		cfg.Iterations = 0
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxColumns <= 0 {
		cfg.MaxColumns = maxColumnsDefault
	}
	if cfg.MaxRowsPerTable < 0 {
		cfg.MaxRowsPerTable = maxRowsPerTableDefault
	}
	if cfg.InsertRowsMax <= 0 {
		cfg.InsertRowsMax = insertRowsMaxDefault
	}
	if cfg.InsertRowsMax >= InsertRowsLimit {
		cfg.InsertRowsMax = InsertRowsLimit - 1
	}
	if cfg.NullProb < 0 {
		cfg.NullProb = 0
	}
	if cfg.NullProb > 100 {
		cfg.NullProb = 100
	}
	q := &cfg.Weights.Queries
	if q.Create < 0 {
		q.Create = 0
	}
	if q.Select < 0 {
		q.Select = 0
	}
	if q.Insert < 0 {
		q.Insert = 0
	}
	if q.Delete < 0 {
		q.Delete = 0
	}
	o := &cfg.Weights.Oracles
	if o.RowTruth < 0 {
		o.RowTruth = 0
	}
	if o.SimpleColumn < 0 {
		o.SimpleColumn = 0
	}
	if o.CompoundFalse < 0 {
		o.CompoundFalse = 0
	}
	if o.QuerySyntax < 0 {
		o.QuerySyntax = 0
	}
	if o.RowTruth+o.SimpleColumn+o.CompoundFalse+o.QuerySyntax == 0 {
		*o = defaultOracleWeights()
	}
	if cfg.Weights.Predicate.AndProb < 0 || cfg.Weights.Predicate.AndProb > 100 {
		cfg.Weights.Predicate.AndProb = andProbDefault
	}
	if cfg.Synth.TrueMax <= 0 {
		cfg.Synth.TrueMax = synthTrueMaxDefault
	}
	if cfg.Synth.FalseMax < 0 {
		cfg.Synth.FalseMax = synthFalseMaxDefault
	}
	if cfg.Synth.WindowMax <= 0 {
		cfg.Synth.WindowMax = synthWindowMaxDefault
	}
	if cfg.Logging.ReportIntervalSeconds <= 0 {
		cfg.Logging.ReportIntervalSeconds = reportIntervalDefault
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "reports"
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Iterations:      1000,
		Workers:         1,
		MaxColumns:      maxColumnsDefault,
		MaxRowsPerTable: maxRowsPerTableDefault,
		InsertRowsMax:   insertRowsMaxDefault,
		NullProb:        10,
		Weights: Weights{
			Queries:   QueryWeights{Create: 1, Select: 100, Insert: 100, Delete: 0},
			Predicate: PredicateWeights{AndProb: andProbDefault},
			Oracles:   defaultOracleWeights(),
		},
		Synth: SynthConfig{
			TrueMax:   synthTrueMaxDefault,
			FalseMax:  synthFalseMaxDefault,
			WindowMax: synthWindowMaxDefault,
		},
		Report: ReportConfig{
			OutputDir: "reports",
			Archive:   true,
		},
		Logging: Logging{
			ReportIntervalSeconds: reportIntervalDefault,
			LogFile:               "logs/simgen.log",
		},
	}
}

func defaultOracleWeights() OracleWeights {
	return OracleWeights{RowTruth: 4, SimpleColumn: 2, CompoundFalse: 2, QuerySyntax: 2}
}
