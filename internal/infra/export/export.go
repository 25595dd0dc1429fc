// Package export writes account statements to PDF and XLSX files so a
// session's transaction history can outlive the process.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/minibank/minibank/internal/app/teller"
	"github.com/minibank/minibank/internal/infra/journal"
)

// Statement bundles what an exported file needs.
type Statement struct {
	Account teller.AccountInfo
	Entries []journal.Entry
}

const timeLayout = "2006-01-02 15:04:05"

// fileStem names an export file after the account and the current time.
func fileStem(address string) string {
	return fmt.Sprintf("statement_%s_%s", address, time.Now().Format("20060102_150405"))
}

// PDF writes the statement as a PDF and returns the file path.
func PDF(dir string, st Statement) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Account Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name: %s", st.Account.Name))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Account: %s    Branch: %s", st.Account.Address, st.Account.BranchID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Balance: %.2f", st.Account.Balance))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(45, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Balance", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 7, "Note", "1", 0, "", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 11)
	for _, e := range st.Entries {
		pdf.CellFormat(45, 7, e.At.Format(timeLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, string(e.Kind), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, strconv.FormatFloat(e.Amount, 'f', 2, 64), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, strconv.FormatFloat(e.Balance, 'f', 2, 64), "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 7, e.Note, "1", 0, "", false, 0, "")
		pdf.Ln(7)
	}

	path := filepath.Join(dir, fileStem(st.Account.Address)+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := pdf.Output(f); err != nil {
		return "", err
	}
	return path, nil
}

// XLSX writes the statement as a spreadsheet and returns the file path.
func XLSX(dir string, st Statement) (string, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Statement")
	if err != nil {
		return "", err
	}

	row := sheet.AddRow()
	row.AddCell().SetValue("Name")
	row.AddCell().SetValue(st.Account.Name)
	row = sheet.AddRow()
	row.AddCell().SetValue("Account")
	row.AddCell().SetValue(st.Account.Address)
	row = sheet.AddRow()
	row.AddCell().SetValue("Branch")
	row.AddCell().SetValue(st.Account.BranchID)
	row = sheet.AddRow()
	row.AddCell().SetValue("Balance")
	row.AddCell().SetValue(strconv.FormatFloat(st.Account.Balance, 'f', 2, 64))
	sheet.AddRow()

	row = sheet.AddRow()
	row.AddCell().SetValue("Date")
	row.AddCell().SetValue("Type")
	row.AddCell().SetValue("Amount")
	row.AddCell().SetValue("Balance")
	row.AddCell().SetValue("Note")

	for _, e := range st.Entries {
		row = sheet.AddRow()
		row.AddCell().SetValue(e.At.Format(timeLayout))
		row.AddCell().SetValue(string(e.Kind))
		row.AddCell().SetValue(strconv.FormatFloat(e.Amount, 'f', 2, 64))
		row.AddCell().SetValue(strconv.FormatFloat(e.Balance, 'f', 2, 64))
		row.AddCell().SetValue(e.Note)
	}

	path := filepath.Join(dir, fileStem(st.Account.Address)+".xlsx")
	if err := file.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
