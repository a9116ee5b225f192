package output

import (
	"encoding/json"
	"io"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// writeJSONReport writes the complete result, input included, as indented
// JSON. Decimal amounts marshal as quoted strings so no precision is lost.
func writeJSONReport(result *domain.SimulationResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
