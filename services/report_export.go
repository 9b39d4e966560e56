package services

import (
	"fmt"
	"io"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	invoicesSheet = "Invoices"
)

var invoiceColumns = []interface{}{
	"Invoice #", "Customer", "Invoice Date", "Due Date", "Status", "Total", "Paid", "Balance",
}

// WriteRevenueWorkbook writes an XLSX with a Summary sheet for the range and an
// Invoices sheet listing every invoice dated inside it.
func WriteRevenueWorkbook(w io.Writer, start, end time.Time, summary *models.RevenueSummary, invoices []models.Invoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Revenue Summary"},
		{"Start Date", start.Format(utils.DateLayout)},
		{"End Date", end.Format(utils.DateLayout)},
		{},
		{"Total Invoiced", summary.TotalInvoiced.InexactFloat64()},
		{"Total Paid", summary.TotalPaid.InexactFloat64()},
		{"Outstanding Balance", summary.OutstandingBalance.InexactFloat64()},
		{"Jobs", summary.JobCount},
		{"Completed Jobs", summary.CompletedJobCount},
	}
	for i, row := range summaryRows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A9", bold); err != nil {
		return fmt.Errorf("failed to style summary sheet: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 22); err != nil {
		return fmt.Errorf("failed to size summary sheet: %w", err)
	}

	if _, err := f.NewSheet(invoicesSheet); err != nil {
		return fmt.Errorf("failed to add invoices sheet: %w", err)
	}
	if err := f.SetSheetRow(invoicesSheet, "A1", &invoiceColumns); err != nil {
		return fmt.Errorf("failed to write invoice header: %w", err)
	}
	if err := f.SetCellStyle(invoicesSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("failed to style invoice header: %w", err)
	}
	for i, inv := range invoices {
		customer := ""
		if inv.Customer != nil {
			customer = inv.Customer.FullName()
		}
		row := []interface{}{
			inv.InvoiceNumber,
			customer,
			time.Time(inv.InvoiceDate).Format(utils.DateLayout),
			time.Time(inv.DueDate).Format(utils.DateLayout),
			string(inv.Status),
			inv.TotalAmount.InexactFloat64(),
			inv.PaidAmount.InexactFloat64(),
			inv.BalanceAmount.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(invoicesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write invoice row: %w", err)
		}
	}
	if err := f.SetColWidth(invoicesSheet, "A", "H", 16); err != nil {
		return fmt.Errorf("failed to size invoices sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
