package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders the artisan directory in the requested format and
// returns the bytes, a timestamped filename, and the content type.
type Exporter interface {
	Export(format string, rows []ArtisanDirectoryRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, rows []ArtisanDirectoryRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("artisan_directory_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("artisan_directory_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("artisan_directory_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

var directoryHeaders = []string{"ID", "Name", "CNIC", "Gender", "Contact No", "Craft", "Category", "Skill", "Education", "Employment Type", "Tehsil", "Avg Monthly Income", "Experience (Years)", "Registered At"}

func (e *exporter) exportCSV(rows []ArtisanDirectoryRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(directoryHeaders); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.CNIC,
			r.Gender,
			r.ContactNo,
			r.Craft,
			r.Category,
			r.Skill,
			r.Education,
			r.EmploymentType,
			r.Tehsil,
			fmt.Sprintf("%.2f", r.AvgMonthlyIncome),
			fmt.Sprintf("%.1f", r.Experience),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportExcel(rows []ArtisanDirectoryRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Artisan Directory"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range directoryHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.CNIC)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Gender)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.ContactNo)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Craft)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Skill)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.Education)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.EmploymentType)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), r.Tehsil)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), r.AvgMonthlyIncome)
		f.SetCellValue(sheet, fmt.Sprintf("M%d", row), r.Experience)
		f.SetCellValue(sheet, fmt.Sprintf("N%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportPDF(rows []ArtisanDirectoryRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Artisan Directory")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 8)
	headers := []string{"ID", "Name", "CNIC", "Gender", "Contact", "Craft", "Skill", "Education", "Tehsil", "Income", "Experience"}
	widths := []float64{12, 40, 30, 18, 28, 28, 30, 28, 30, 20, 18}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, r := range rows {
		name := r.Name
		if len(name) > 25 {
			name = name[:22] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.CNIC, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Gender, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.ContactNo, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Craft, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Skill, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.Education, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[8], 6, r.Tehsil, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[9], 6, fmt.Sprintf("%.0f", r.AvgMonthlyIncome), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[10], 6, fmt.Sprintf("%.1f", r.Experience), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
