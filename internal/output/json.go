package output

import (
	"encoding/json"

	"github.com/rgehrsitz/opentax/internal/domain"
)

// JSONFormatter renders the summary as JSON. Amounts are decimal strings so
// no precision is lost.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(s *domain.TaxSummary) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}
