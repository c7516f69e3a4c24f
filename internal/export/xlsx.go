package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// XLSX renders the job history as a single-sheet Excel workbook. The buffer
// is returned for the HTTP layer to stream with the right content headers.
func XLSX(jobs []models.Job) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Jobs"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header := []any{"Date", "WIP Number", "Registration", "AW", "Hours", "VHC", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, j := range jobs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			calc.DayKey(j.CreatedAt),
			j.WIPNumber,
			j.VehicleReg,
			j.AW,
			calc.FormatDecimalHours(calc.AWToMinutes(j.AW)),
			string(j.VHCStatus),
			j.Notes,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
