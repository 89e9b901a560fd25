package service

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/postroom/postroom/internal/errors"
)

// reportHeader is the fixed first line of a job report.
const reportHeader = "Row,Email,Status"

// BuildReport renders the job's ledger as CSV text: the fixed header, then
// one line per row in ascending row order with email and status quoted
// (embedded quotes doubled). The row index itself is never quoted.
func (r *Runner) BuildReport(jobID string) ([]byte, error) {
	rows, ok := r.store.RowsNewestFirst(jobID)
	if !ok {
		return nil, apperrors.NotFoundf("job %s not found", jobID)
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Row < rows[b].Row })

	var b strings.Builder
	b.WriteString(reportHeader)
	b.WriteByte('\n')
	for _, rec := range rows {
		fmt.Fprintf(&b, "%d,%s,%s\n", rec.Row, csvQuote(rec.Email), csvQuote(string(rec.Status)))
	}
	return []byte(b.String()), nil
}

// csvQuote wraps a field in double quotes, doubling any embedded quotes.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
