package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"simgen/internal/config"
	"simgen/internal/generator"
	"simgen/internal/schema"
)

func sampleTable() schema.Table {
	return schema.Table{
		Name: "t1",
		Columns: []schema.Column{
			{Name: "c0", Type: schema.TypeInt},
			{Name: "c1", Type: schema.TypeVarchar},
			{Name: "c2", Type: schema.TypeBlob},
		},
		Rows: []schema.Row{
			{schema.IntValue(7), schema.TextValue("it's"), schema.BlobValue([]byte{0x01, 0xff})},
			{schema.NullValue(schema.TypeInt), schema.TextValue(""), schema.NullValue(schema.TypeBlob)},
		},
	}
}

func TestNewCaseLayout(t *testing.T) {
	r := New(t.TempDir())
	c1, err := r.NewCase()
	if err != nil {
		t.Fatalf("new case: %v", err)
	}
	c2, err := r.NewCase()
	if err != nil {
		t.Fatalf("new case: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(c1.Dir), "case_0001_") || !strings.HasPrefix(filepath.Base(c2.Dir), "case_0002_") {
		t.Fatalf("unexpected case dirs: %s %s", c1.Dir, c2.Dir)
	}
	if c1.ID == c2.ID {
		t.Fatalf("case ids must differ")
	}

	r = New(t.TempDir())
	r.UseUUIDPath = true
	c, err := r.NewCase()
	if err != nil {
		t.Fatalf("new case: %v", err)
	}
	if filepath.Base(c.Dir) != c.ID {
		t.Fatalf("expected uuid path, got %s", c.Dir)
	}
}

func TestCaseFileRoundTrip(t *testing.T) {
	r := New(t.TempDir())
	c, err := r.NewCase()
	if err != nil {
		t.Fatalf("new case: %v", err)
	}
	cfg := config.Default()
	cfg.Storage.S3.SecretAccessKey = "secret"
	pred := generator.Or(generator.Eq("c0", schema.IntValue(7)), generator.Lt("c2", schema.BlobValue([]byte{0x02})))
	in := CaseFile{
		Seed:      99,
		Worker:    1,
		Iteration: 12,
		Oracle:    "RowTruth",
		Remaining: generator.Remaining{Create: 1, Read: 2, Write: 3},
		RowIndex:  0,
		Table:     sampleTable(),
		Predicate: &pred,
		SQL:       []string{"SELECT * FROM t1 WHERE " + pred.SQLString()},
		Config:    cfg,
	}
	if err := r.WriteCaseFile(c, in); err != nil {
		t.Fatalf("write case file: %v", err)
	}
	out, err := LoadCaseFile(c.Dir)
	if err != nil {
		t.Fatalf("load case file: %v", err)
	}
	if out.Seed != 99 || out.Worker != 1 || out.Iteration != 12 || out.Oracle != "RowTruth" {
		t.Fatalf("unexpected header: %+v", out)
	}
	if out.Remaining != in.Remaining {
		t.Fatalf("unexpected remaining: %+v", out.Remaining)
	}
	if out.Predicate == nil || out.Predicate.SQLString() != pred.SQLString() {
		t.Fatalf("predicate mismatch: %v", out.Predicate)
	}
	if len(out.Table.Rows) != 2 || out.Table.Rows[0].String() != in.Table.Rows[0].String() || !out.Table.Rows[1][0].Null {
		t.Fatalf("table rows mismatch: %+v", out.Table.Rows)
	}
	if out.Config.Storage.S3.SecretAccessKey != "" {
		t.Fatalf("storage credentials must not be persisted")
	}
	if out.Config.Synth != cfg.Synth {
		t.Fatalf("config mismatch: %+v", out.Config.Synth)
	}
}

func TestLoadCaseFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), CaseFileName)
	if err := os.WriteFile(path, []byte("table: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCaseFile(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSummaryAndArchive(t *testing.T) {
	r := New(t.TempDir())
	c, err := r.NewCase()
	if err != nil {
		t.Fatalf("new case: %v", err)
	}
	if err := r.DumpTable(c, sampleTable()); err != nil {
		t.Fatalf("dump table: %v", err)
	}
	if err := r.WriteSQL(c, "case.sql", []string{"SELECT * FROM t1 WHERE TRUE"}); err != nil {
		t.Fatalf("write sql: %v", err)
	}
	summary := Summary{Oracle: "CompoundFalse", Seed: 5, CaseID: c.ID, Details: map[string]any{"b": 1, "a": "x"}}
	if err := r.WriteSummary(c, summary); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(c.Dir, SummaryFileName))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var decoded Summary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if decoded.Oracle != "CompoundFalse" || decoded.Seed != 5 || decoded.CaseID != c.ID {
		t.Fatalf("unexpected summary: %+v", decoded)
	}
	inserts, err := os.ReadFile(filepath.Join(c.Dir, "inserts.sql"))
	if err != nil {
		t.Fatalf("read inserts: %v", err)
	}
	if !strings.Contains(string(inserts), "'it''s'") || !strings.Contains(string(inserts), "x'01ff'") {
		t.Fatalf("unexpected inserts: %s", inserts)
	}

	name, codec, err := r.WriteCaseArchive(c)
	if err != nil {
		t.Fatalf("write archive: %v", err)
	}
	if name != CaseArchiveName || codec != CaseArchiveCodec {
		t.Fatalf("unexpected archive %s/%s", name, codec)
	}
	names, err := ReadCaseArchive(filepath.Join(c.Dir, name))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	sort.Strings(names)
	want := []string{"README.md", "case.sql", "inserts.sql", "schema.sql", SummaryFileName}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected archive entries: %v", names)
	}
}
