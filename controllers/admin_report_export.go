package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
)

type transactionReportSummary struct {
	TotalTransactions int
	TotalCredits      int64
	TotalDebits       int64
	TotalRefunds      int64
	NetFlow           int64
	Wallets           int
}

func reportPeriodRange(c *gin.Context) (string, time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return "", time.Time{}, time.Time{}, false
	}
	return period, startDate, endDate, true
}

func fetchReportTransactions(startDate, endDate time.Time) ([]models.Transaction, transactionReportSummary, error) {
	var transactions []models.Transaction
	err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Wallet").
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, transactionReportSummary{}, err
	}

	var summary transactionReportSummary
	walletSet := make(map[uint]bool)
	for _, txn := range transactions {
		summary.TotalTransactions++
		walletSet[txn.WalletID] = true
		if txn.Status != models.TransactionStatusCompleted {
			continue
		}
		switch txn.Type {
		case models.TransactionTypeDeposit, models.TransactionTypePaymentIn:
			summary.TotalCredits += txn.Amount
		case models.TransactionTypeWithdrawal, models.TransactionTypePaymentOut:
			summary.TotalDebits += txn.Amount
		case models.TransactionTypeRefund:
			summary.TotalRefunds += txn.Amount
			summary.TotalCredits += txn.Amount
		}
	}
	summary.NetFlow = summary.TotalCredits - summary.TotalDebits
	summary.Wallets = len(walletSet)
	return transactions, summary, nil
}

// Admin: Download transaction report as Excel
func DownloadTransactionReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadTransactionReportExcel called")

	period, startDate, endDate, ok := reportPeriodRange(c)
	if !ok {
		return
	}
	utils.LogDebug("Generating Excel report for period: %s", period)

	transactions, summary, err := fetchReportTransactions(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for Excel report", len(transactions))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transaction Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	// Company details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("WORKNEST - Transaction Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("42 Harbour Lane")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Kochi, KL 682001")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: support@worknest.io")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"ID", "Order ID", "Wallet ID", "Date", "Type", "Amount", "Status", "Description"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetString(txn.OrderID)
		row.AddCell().SetInt(int(txn.WalletID))
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetString(formatAmount(txn.Amount))
		row.AddCell().SetString(txn.Status)
		row.AddCell().SetString(txn.Description)
	}

	sheet.AddRow() // spacing

	// Summary section
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalTransactions)},
		{"Total Credits", formatAmount(summary.TotalCredits)},
		{"Total Debits", formatAmount(summary.TotalDebits)},
		{"Total Refunds", formatAmount(summary.TotalRefunds)},
		{"Net Flow", formatAmount(summary.NetFlow)},
		{"Wallets Involved", fmt.Sprintf("%d", summary.Wallets)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transaction_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// Admin: Download transaction report as PDF
func DownloadTransactionReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadTransactionReportPDF called")

	period, startDate, endDate, ok := reportPeriodRange(c)
	if !ok {
		return
	}
	utils.LogDebug("Generating PDF report for period: %s", period)

	transactions, summary, err := fetchReportTransactions(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for PDF report", len(transactions))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "WORKNEST - Transaction Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Freelance Marketplace")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	pdf.Cell(0, 8, "42 Harbour Lane")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Kochi, KL 682001")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Email: support@worknest.io")
	pdf.Ln(10)

	headers := []string{"ID", "Order ID", "Wallet", "Date", "Type", "Amount", "Status"}
	colWidths := []float64{15, 70, 20, 35, 30, 35, 30}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, txn := range transactions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", txn.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, txn.OrderID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", txn.WalletID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, txn.Type, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, formatAmount(txn.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, txn.Status, "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	summaryLines := []string{
		fmt.Sprintf("Total Transactions: %d", summary.TotalTransactions),
		"Total Credits: " + formatAmount(summary.TotalCredits),
		"Total Debits: " + formatAmount(summary.TotalDebits),
		"Total Refunds: " + formatAmount(summary.TotalRefunds),
		"Net Flow: " + formatAmount(summary.NetFlow),
		fmt.Sprintf("Wallets Involved: %d", summary.Wallets),
	}
	for _, line := range summaryLines {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transaction_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
