package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Encoder renders a flattened table into one output format. The flattening
// stays format agnostic, only the encoder knows about bytes on the wire.
type Encoder interface {
	ContentType() string
	Extension() string
	Encode(w io.Writer, table Table) error
}

// NewEncoder maps a format name to its encoder. "ppt" is accepted as an
// alias for "pptx". Unknown formats return false.
func NewEncoder(format string) (Encoder, bool) {
	switch format {
	case "xlsx":
		return xlsxEncoder{}, true
	case "pdf":
		return placeholderEncoder{
			contentType: "application/pdf",
			extension:   "pdf",
		}, true
	case "ppt", "pptx":
		return placeholderEncoder{
			contentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
			extension:   "pptx",
		}, true
	}
	return nil, false
}

type xlsxEncoder struct{}

func (xlsxEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (xlsxEncoder) Extension() string {
	return "xlsx"
}

func (xlsxEncoder) Encode(w io.Writer, table Table) error {
	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	const sheet = "Results"
	index, err := workbook.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	writeRow := func(rowIndex int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, value := range values {
			row[i] = value
		}
		return workbook.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, table.Header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, row := range table.Rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return workbook.Write(w)
}

// placeholderEncoder writes tab separated text under an office content type.
// Real PDF and slide rendering stays out of scope, the download shape is kept
// so clients can already wire the endpoints.
type placeholderEncoder struct {
	contentType string
	extension   string
}

func (e placeholderEncoder) ContentType() string {
	return e.contentType
}

func (e placeholderEncoder) Extension() string {
	return e.extension
}

func (e placeholderEncoder) Encode(w io.Writer, table Table) error {
	var b strings.Builder
	b.WriteString(table.SurveyTitle + " - results\n\n")
	b.WriteString(strings.Join(table.Header, "\t") + "\n")
	for _, row := range table.Rows {
		b.WriteString(strings.Join(row, "\t") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
