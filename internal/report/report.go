package report

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"simgen/internal/config"
	"simgen/internal/generator"
	"simgen/internal/runinfo"
	"simgen/internal/schema"
	"simgen/internal/util"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Reporter writes counterexample cases to disk.
// It is not safe for concurrent use; each worker owns one.
type Reporter struct {
	OutputDir   string
	UseUUIDPath bool
	Prefix      string
	caseSeq     int
}

// Case describes a report directory.
type Case struct {
	ID  string
	Dir string
}

// Summary captures the persisted metadata for a case.
type Summary struct {
	Oracle         string             `json:"oracle"`
	SQL            []string           `json:"sql"`
	Expected       string             `json:"expected"`
	Actual         string             `json:"actual"`
	Error          string             `json:"error"`
	ErrorReason    string             `json:"error_reason"`
	Predicate      string             `json:"predicate"`
	RowIndex       int                `json:"row_index"`
	Seed           int64              `json:"seed"`
	Worker         int                `json:"worker"`
	Iteration      int                `json:"iteration"`
	UploadLocation string             `json:"upload_location"`
	CaseID         string             `json:"case_id"`
	CaseDir        string             `json:"case_dir"`
	ArchiveName    string             `json:"archive_name"`
	ArchiveCodec   string             `json:"archive_codec"`
	Details        map[string]any     `json:"details"`
	RunInfo        *runinfo.BasicInfo `json:"run_info,omitempty"`
	Timestamp      string             `json:"timestamp"`
}

// CaseFile is the replayable record of a failing iteration.
type CaseFile struct {
	Seed      int64                `yaml:"seed"`
	Worker    int                  `yaml:"worker"`
	Iteration int                  `yaml:"iteration"`
	Oracle    string               `yaml:"oracle"`
	Remaining generator.Remaining  `yaml:"remaining"`
	RowIndex  int                  `yaml:"row_index"`
	Table     schema.Table         `yaml:"table"`
	Predicate *generator.Predicate `yaml:"predicate,omitempty"`
	SQL       []string             `yaml:"sql,omitempty"`
	Config    config.Config        `yaml:"config"`
}

const (
	CaseArchiveName  = "case.tar.zst"
	CaseArchiveCodec = "zstd"
	CaseFileName     = "case.yaml"
	SummaryFileName  = "summary.json"
)

// New creates a reporter that writes to outputDir.
func New(outputDir string) *Reporter {
	return &Reporter{OutputDir: outputDir}
}

// NewCase allocates a new case directory.
func (r *Reporter) NewCase() (Case, error) {
	r.caseSeq++
	caseID := uuid.New().String()
	if v7, err := uuid.NewV7(); err == nil {
		caseID = v7.String()
	}
	caseDir := fmt.Sprintf("case_%s%04d_%s", r.Prefix, r.caseSeq, caseID)
	if r.UseUUIDPath {
		caseDir = caseID
	}
	dir := filepath.Join(r.OutputDir, caseDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Case{}, err
	}
	_ = os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Reproduce Case\n\n- Schema and rows: schema.sql, inserts.sql\n- Failing statement: case.sql\n- Replay: simgen-replay -case "+CaseFileName+"\n"), 0o644)
	return Case{ID: caseID, Dir: dir}, nil
}

// WriteSummary writes summary.json into the case directory.
func (r *Reporter) WriteSummary(c Case, summary Summary) error {
	f, err := os.Create(filepath.Join(c.Dir, SummaryFileName))
	if err != nil {
		return err
	}
	defer util.CloseWithErr(f, "summary output")
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(summary)
}

// WriteSQL writes a SQL file from the provided statements.
func (r *Reporter) WriteSQL(c Case, name string, statements []string) error {
	if len(statements) == 0 {
		return nil
	}
	return r.WriteText(c, name, strings.Join(statements, ";\n")+";\n")
}

// WriteText writes raw text content into the case directory.
func (r *Reporter) WriteText(c Case, name string, content string) error {
	path := filepath.Join(c.Dir, name)
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// DumpTable writes schema.sql and inserts.sql for the table a case ran on.
func (r *Reporter) DumpTable(c Case, tbl schema.Table) error {
	create := fmt.Sprintf("DROP TABLE IF EXISTS %s;\n%s;\n", tbl.Name, generator.CreateTableSQL(tbl))
	if err := r.WriteText(c, "schema.sql", create); err != nil {
		return err
	}
	if len(tbl.Rows) == 0 {
		return nil
	}
	cols := make([]string, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		cols = append(cols, col.Name)
	}
	insert := &generator.Insert{Table: tbl.Name, Columns: cols, Rows: tbl.Rows}
	return r.WriteSQL(c, "inserts.sql", []string{insert.SQLString()})
}

// WriteCaseFile writes case.yaml. Storage credentials are never persisted.
func (r *Reporter) WriteCaseFile(c Case, cf CaseFile) error {
	cf.Config.Storage = config.StorageConfig{}
	data, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "encode case file")
	}
	return os.WriteFile(filepath.Join(c.Dir, CaseFileName), data, 0o644)
}

// LoadCaseFile reads a case.yaml written by WriteCaseFile. path may name
// the file or its case directory.
func LoadCaseFile(path string) (CaseFile, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, CaseFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return CaseFile{}, err
	}
	var cf CaseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return CaseFile{}, errors.Wrapf(util.ErrMalformedInput, "decode %s: %v", path, err)
	}
	return cf, nil
}

// WriteCaseArchive creates a compressed archive for the case directory.
func (r *Reporter) WriteCaseArchive(c Case) (name string, codec string, err error) {
	archivePath := filepath.Join(c.Dir, CaseArchiveName)
	if removeErr := os.Remove(archivePath); removeErr != nil && !os.IsNotExist(removeErr) {
		return "", "", removeErr
	}
	defer func() {
		if err != nil {
			_ = os.Remove(archivePath)
		}
	}()
	file, err := os.Create(archivePath)
	if err != nil {
		return "", "", err
	}
	defer util.CloseWithErr(file, "archive output")

	zw, err := zstd.NewWriter(file)
	if err != nil {
		return "", "", err
	}
	defer func() {
		if closeErr := zw.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	tw := tar.NewWriter(zw)
	defer func() {
		if closeErr := tw.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	walkErr := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path == archivePath {
			return nil
		}
		return addArchiveFile(tw, c.Dir, path, d)
	})
	if walkErr != nil {
		return "", "", walkErr
	}
	return CaseArchiveName, CaseArchiveCodec, nil
}

func addArchiveFile(tw *tar.Writer, root string, path string, d fs.DirEntry) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	info, err := d.Info()
	if err != nil {
		return err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer util.CloseWithErr(src, "archive source")
	_, err = io.Copy(tw, src)
	return err
}

// ReadCaseArchive lists the file names stored in a case archive.
func ReadCaseArchive(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer util.CloseWithErr(file, "archive input")
	zr, err := zstd.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	tr := tar.NewReader(zr)
	var names []string
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
		names = append(names, header.Name)
	}
}
