package domain

import "fmt"

// Logical column names. Matching against the header row is exact and case-sensitive.
const (
	ColumnTitle       = "Title"
	ColumnContent     = "Content"
	ColumnLabels      = "Labels"
	ColumnPublishDate = "Publish Date"
)

// Range specs used for spreadsheet reads.
const (
	// LastColumn bounds every read horizontally.
	LastColumn = "Z"
	// MaxSheetRows bounds whole-sheet reads vertically.
	MaxSheetRows = 1000

	// FullSheetRange reads the header and up to MaxSheetRows-1 data rows.
	FullSheetRange = "A1:Z1000"
	// HeaderRange reads only the header row.
	HeaderRange = "A1:Z1"
)

// FirstDataRow is the 1-based sheet row of the first data row.
const FirstDataRow = 2

// RowRange returns the range spec for a single 1-based sheet row.
func RowRange(row int) string {
	return fmt.Sprintf("A%d:%s%d", row, LastColumn, row)
}

// Absent is the index of a column not present in the header row.
const Absent = -1

// ColumnIndex maps logical column names to physical header positions.
type ColumnIndex map[string]int

// Of returns the physical index of a column, or Absent.
func (c ColumnIndex) Of(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return Absent
}

// Has returns true if the column is present.
func (c ColumnIndex) Has(name string) bool {
	return c.Of(name) != Absent
}

// Cell returns the cell of row at the column's index, or "" when the column
// is absent or the row is too short.
func (c ColumnIndex) Cell(row []string, name string) string {
	i := c.Of(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// SheetTable is an immutable snapshot of a spreadsheet range.
type SheetTable struct {
	// Headers is the first row of the range.
	Headers []string
	// Rows are the data rows; each may be shorter than Headers.
	Rows [][]string
	// Index maps the recognised columns to header positions.
	Index ColumnIndex
	// FirstRow is the 1-based sheet row number of Rows[0].
	FirstRow int
}

// Spreadsheet describes a spreadsheet file visible to the user.
type Spreadsheet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"web_view_link,omitempty"`
}

// SpreadsheetMetadata describes a spreadsheet and its tabs.
type SpreadsheetMetadata struct {
	SpreadsheetID string      `json:"spreadsheet_id"`
	Title         string      `json:"title"`
	Sheets        []SheetInfo `json:"sheets"`
}

// SheetInfo describes a single tab.
type SheetInfo struct {
	Title   string `json:"title"`
	SheetID int64  `json:"sheet_id"`
}

// SheetData is a range rendered as header-keyed rows.
type SheetData struct {
	Headers []string            `json:"headers"`
	Data    []map[string]string `json:"data"`
}

// SheetValidation is the result of checking a header row for post columns.
type SheetValidation struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing_columns,omitempty"`
	Message string   `json:"message"`
}

// Record types the i-th data row. Missing cells read as empty strings.
func (t *SheetTable) Record(i int) PostRecord {
	row := t.Rows[i]
	return PostRecord{
		Row:            t.FirstRow + i,
		Title:          t.Index.Cell(row, ColumnTitle),
		Content:        t.Index.Cell(row, ColumnContent),
		Labels:         ParseLabels(t.Index.Cell(row, ColumnLabels)),
		RawPublishDate: t.Index.Cell(row, ColumnPublishDate),
	}
}

// Records types every data row, including rows with an empty title.
func (t *SheetTable) Records() []PostRecord {
	records := make([]PostRecord, 0, len(t.Rows))
	for i := range t.Rows {
		records = append(records, t.Record(i))
	}
	return records
}

// Posts returns the records whose title cell is present and non-empty.
// A title of only spaces still counts as a post.
func (t *SheetTable) Posts() []PostRecord {
	var posts []PostRecord
	for i := range t.Rows {
		rec := t.Record(i)
		if rec.Title == "" {
			continue
		}
		posts = append(posts, rec)
	}
	return posts
}
