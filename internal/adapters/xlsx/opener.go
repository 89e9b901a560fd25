// Package xlsx parses uploaded spreadsheets into datasets using excelize.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/postroom/postroom/internal/domain/model"
)

// Column layout of the recipient sheet. The first sheet row is a header and
// is skipped; data rows are indexed from 1.
const (
	colEmail = iota
	colName
	colAttachmentLink
)

// Opener reads .xlsx workbooks. The first sheet is the dataset; rows with no
// populated cell are kept, flagged Empty, so indexes stay aligned with the
// sheet.
type Opener struct{}

// NewOpener constructs an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open parses the workbook from r.
func (o *Opener) Open(ctx context.Context, r io.Reader) (model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Dataset{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return model.Dataset{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	dataset := model.Dataset{}
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		if err := ctx.Err(); err != nil {
			return model.Dataset{}, err
		}
		dataset.Rows = append(dataset.Rows, parseRow(i, cells))
	}
	return dataset, nil
}

func parseRow(index int, cells []string) model.DatasetRow {
	row := model.DatasetRow{
		Index:          index,
		Email:          cellAt(cells, colEmail),
		Name:           cellAt(cells, colName),
		AttachmentLink: cellAt(cells, colAttachmentLink),
	}
	row.Empty = row.Email == "" && row.Name == "" && row.AttachmentLink == ""
	return row
}

func cellAt(cells []string, col int) string {
	if col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
