package model

// DatasetRow is one data row extracted from the uploaded sheet. Index is
// 1-based and counts data rows only (the header row is excluded). Empty marks
// rows with no populated cell; they are skipped by the runner and consume no
// progress slot.
type DatasetRow struct {
	Index          int
	Email          string
	Name           string
	AttachmentLink string
	Empty          bool
}

// Dataset is the parsed, ordered contents of an uploaded sheet.
type Dataset struct {
	Rows []DatasetRow
}

// TotalDataRows returns the number of non-empty rows, the denominator for
// progress computation.
func (d Dataset) TotalDataRows() int {
	n := 0
	for _, r := range d.Rows {
		if !r.Empty {
			n++
		}
	}
	return n
}

// Message is a composed subject/body pair ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// Attachment is a resolved attachment ready to be included in a delivery.
type Attachment struct {
	Name    string
	Content []byte
}
