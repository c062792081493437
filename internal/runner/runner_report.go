package runner

import (
	"context"
	"path/filepath"
	"time"

	"simgen/internal/report"
	"simgen/internal/runinfo"
	"simgen/internal/util"
)

// handleFailure records a failing iteration as a replayable case.
func (r *Runner) handleFailure(ctx context.Context, it Iteration) {
	result := it.Result
	caseData, err := r.reporter.NewCase()
	if err != nil {
		util.Errorf("report case failed oracle=%s seed=%d err=%v", result.Oracle, it.Seed, err)
		return
	}
	details := result.Details
	if details == nil {
		details = map[string]any{}
	}
	errorReason, _ := details["error_reason"].(string)
	summary := report.Summary{
		Oracle:      result.Oracle,
		SQL:         result.SQL,
		Expected:    result.Expected,
		Actual:      result.Actual,
		ErrorReason: errorReason,
		RowIndex:    result.RowIndex,
		Seed:        it.Seed,
		Worker:      r.worker,
		Iteration:   it.Index,
		CaseID:      caseData.ID,
		CaseDir:     filepath.Base(caseData.Dir),
		Details:     details,
		RunInfo:     runinfo.FromEnv(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if result.Predicate != nil {
		summary.Predicate = result.Predicate.SQLString()
		details["columns"] = result.Predicate.Columns()
	}
	if result.Err != nil {
		summary.Error = result.Err.Error()
	}

	if err := r.reporter.WriteSQL(caseData, "case.sql", result.SQL); err != nil {
		util.Warnf("case sql failed dir=%s err=%v", caseData.Dir, err)
	}
	if err := r.reporter.DumpTable(caseData, it.Table); err != nil {
		util.Warnf("dump table failed dir=%s err=%v", caseData.Dir, err)
	}
	caseFile := report.CaseFile{
		Seed:      it.Seed,
		Worker:    r.worker,
		Iteration: it.Index,
		Oracle:    result.Oracle,
		Remaining: it.Remaining,
		RowIndex:  result.RowIndex,
		Table:     it.Table,
		Predicate: result.Predicate,
		SQL:       result.SQL,
		Config:    r.cfg,
	}
	if err := r.reporter.WriteCaseFile(caseData, caseFile); err != nil {
		util.Warnf("case file failed dir=%s err=%v", caseData.Dir, err)
	}
	r.writeSummary(caseData, summary)
	if r.cfg.Report.Archive {
		name, codec, archiveErr := r.reporter.WriteCaseArchive(caseData)
		if archiveErr != nil {
			util.Warnf("case archive failed dir=%s err=%v", caseData.Dir, archiveErr)
		} else {
			summary.ArchiveName = name
			summary.ArchiveCodec = codec
			r.writeSummary(caseData, summary)
		}
	}

	if r.uploader.Enabled() {
		location, err := r.uploader.UploadDir(ctx, caseData.Dir)
		if err != nil {
			util.Warnf("case upload failed dir=%s err=%v", caseData.Dir, err)
		} else {
			summary.UploadLocation = location
			r.writeSummary(caseData, summary)
		}
	}

	if result.Err != nil {
		util.Errorf("case captured oracle=%s seed=%d dir=%s err=%v", result.Oracle, it.Seed, caseData.Dir, result.Err)
		return
	}
	util.Warnf("case captured oracle=%s seed=%d dir=%s expected=%s actual=%s", result.Oracle, it.Seed, caseData.Dir, result.Expected, result.Actual)
}

func (r *Runner) writeSummary(c report.Case, summary report.Summary) bool {
	if err := r.reporter.WriteSummary(c, summary); err != nil {
		util.Warnf("case summary failed dir=%s err=%v", c.Dir, err)
		return false
	}
	return true
}
