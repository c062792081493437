package uploader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"simgen/internal/report"

	"github.com/pkg/errors"
)

const (
	archiveName = report.CaseArchiveName
	summaryName = report.SummaryFileName
)

type caseObject struct {
	path        string
	key         string
	contentType string
}

// caseObjects lists what to upload for a case directory. When the case
// was archived, only the archive and its summary are shipped.
func caseObjects(dir string, prefix string) (objects []caseObject, base string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", err
	}
	base = objectBase(prefix, filepath.Base(dir))
	archived := false
	for _, entry := range entries {
		if entry.Name() == archiveName {
			archived = true
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if archived && name != archiveName && name != summaryName {
			continue
		}
		objects = append(objects, caseObject{
			path:        filepath.Join(dir, name),
			key:         base + name,
			contentType: contentType(name),
		})
	}
	return objects, base, nil
}

// uploadCase ships every object of dir through put and returns the key
// prefix the case landed under.
func uploadCase(ctx context.Context, dir string, prefix string, put func(context.Context, caseObject) error) (string, error) {
	objects, base, err := caseObjects(dir, prefix)
	if err != nil {
		return "", err
	}
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := put(ctx, obj); err != nil {
			return "", errors.Wrapf(err, "upload %s", obj.key)
		}
	}
	return base, nil
}

func objectBase(prefix string, caseDir string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return caseDir + "/"
	}
	return prefix + "/" + caseDir + "/"
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".yaml":
		return "application/yaml"
	case ".sql", ".md":
		return "text/plain; charset=utf-8"
	case ".zst":
		return "application/zstd"
	default:
		return "application/octet-stream"
	}
}
