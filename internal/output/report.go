package output

import (
	"fmt"

	"github.com/rpgo/drawdown/internal/domain"
)

// fileFormats are written by the "all" pseudo-format
var fileFormats = []string{"csv", "detailed-csv", "json", "html"}

// GenerateReport writes the report in format to a file in dir and returns the
// paths written. "all" writes every file format.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	name := NormalizeFormatName(format)
	if name == "all" {
		var paths []string
		for _, n := range fileFormats {
			written, err := GenerateReport(report, n, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, written...)
		}
		return paths, nil
	}

	f := GetFormatterByName(name)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	path, err := WriteFormatted(f, report, dir, fileExtensions[f.Name()])
	if err != nil {
		return nil, fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return []string{path}, nil
}

// Render formats the report without touching the filesystem
func Render(report *domain.ProjectionReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	return f.Format(report)
}
