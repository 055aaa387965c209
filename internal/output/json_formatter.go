package output

import (
	"bytes"
	"encoding/json"

	"github.com/rpgo/drawdown/internal/domain"
)

// JSONFormatter writes the full report, every year record included.
// Amounts are decimal strings so no precision is lost on reload.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
