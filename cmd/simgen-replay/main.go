package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"simgen/internal/report"
	"simgen/internal/runner"
	"simgen/internal/util"
)

func main() {
	casePath := flag.String("case", "", "path to case.yaml or its case directory")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if *casePath == "" {
		fmt.Fprintln(os.Stderr, "case is required")
		flag.Usage()
		os.Exit(1)
	}
	cf, err := report.LoadCaseFile(*casePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load case failed: %v\n", err)
		os.Exit(1)
	}
	if info, err := os.Stat(*casePath); err == nil && info.IsDir() {
		if names, err := report.ReadCaseArchive(filepath.Join(*casePath, report.CaseArchiveName)); err == nil {
			util.Infof("archive %s holds %v", report.CaseArchiveName, names)
		}
	}
	out, err := runner.Replay(cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		os.Exit(1)
	}
	it := out.Iteration
	util.Infof("replay seed=%d worker=%d iteration=%d oracle=%s", cf.Seed, cf.Worker, cf.Iteration, it.Result.Oracle)
	for _, sql := range it.Result.SQL {
		util.Highlightf("%s;", sql)
	}
	util.Infof("same_table=%t same_oracle=%t same_predicate=%t", out.SameTable, out.SameOracle, out.SamePredicate)
	if out.RecordedTruth != nil {
		util.Infof("recorded predicate on row %d evaluates to %s", cf.RowIndex, *out.RecordedTruth)
	}
	if out.StillFails {
		util.Errorf("still fails: expected=%s actual=%s err=%v", it.Result.Expected, it.Result.Actual, it.Result.Err)
		os.Exit(2)
	}
	util.Infof("regenerated iteration passes")
}
