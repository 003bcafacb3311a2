package backup

import (
	"strings"

	"github.com/julianstephens/trackdown/internal/models"
)

// CSV renders entries as a flat spreadsheet: one row per entry, header
// `Date, <question label>..., Comment`. Multi-valued answers join with ", ",
// booleans render Yes/No, null renders empty. Every field is quote-wrapped
// with internal quotes doubled; encoding/csv only quotes when forced to, and
// the files this tool has always produced quote unconditionally.
func CSV(questions []models.Question, entries []models.Entry) string {
	header := make([]string, 0, len(questions)+2)
	header = append(header, "Date")
	for _, q := range questions {
		header = append(header, q.Label())
	}
	header = append(header, "Comment")

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, csvLine(header))

	for _, e := range entries {
		row := make([]string, 0, len(questions)+2)
		row = append(row, e.Date)
		for _, q := range questions {
			row = append(row, e.Responses[q.ID].Display())
		}
		row = append(row, e.Comment)
		lines = append(lines, csvLine(row))
	}

	return strings.Join(lines, "\n")
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
