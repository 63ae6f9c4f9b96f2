// Package report renders a month's derived snapshots as an XML document
// for download or archival.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/Sekine53629/household-finance/internal/utils"
)

// Build assembles the XML report for one month. Any of the snapshots may
// be nil; the corresponding section is omitted.
func Build(month string, schedule *models.PaymentSchedule, cashflow *models.MonthlyCashFlow, sheet *models.MonthlyBalanceSheet) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("monthly-report")
	root.CreateAttr("month", month)

	if schedule != nil {
		writeSchedule(root, schedule)
	}
	if cashflow != nil {
		writeCashFlow(root, cashflow)
	}
	if sheet != nil {
		writeBalanceSheet(root, sheet)
	}

	doc.Indent(2)
	return doc
}

// Write renders the report for a month to w.
func Write(w io.Writer, month string, schedule *models.PaymentSchedule, cashflow *models.MonthlyCashFlow, sheet *models.MonthlyBalanceSheet) error {
	doc := Build(month, schedule, cashflow, sheet)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeSchedule(root *etree.Element, schedule *models.PaymentSchedule) {
	el := root.CreateElement("payment-schedule")
	el.CreateAttr("risk", schedule.RiskLevel)

	cards := el.CreateElement("credit-cards")
	cards.CreateAttr("total", formatAmount(schedule.TotalCreditPayment))
	for name, amount := range schedule.CreditCardPayments {
		payment := cards.CreateElement("payment")
		payment.CreateAttr("name", name)
		payment.CreateAttr("amount", formatAmount(amount))
	}

	loans := el.CreateElement("loans")
	loans.CreateAttr("total", formatAmount(schedule.TotalLoanPayment))
	for name, amount := range schedule.LoanPayments {
		payment := loans.CreateElement("payment")
		payment.CreateAttr("name", name)
		payment.CreateAttr("amount", formatAmount(amount))
	}

	el.CreateElement("total-payment").SetText(formatAmount(schedule.TotalPayment))
}

func writeCashFlow(root *etree.Element, cashflow *models.MonthlyCashFlow) {
	el := root.CreateElement("cash-flow")
	el.CreateAttr("risk", cashflow.RiskLevel)

	income := el.CreateElement("income")
	income.CreateAttr("total", formatAmount(cashflow.TotalIncome))
	setAmount(income, "salary-net", cashflow.SalaryNet)
	setAmount(income, "bonus", cashflow.Bonus)
	setAmount(income, "side-income", cashflow.SideIncome)
	setAmount(income, "rent-income", cashflow.RentIncome)
	setAmount(income, "temporary-income", cashflow.TemporaryIncome)
	setAmount(income, "refund", cashflow.Refund)
	setAmount(income, "other-income", cashflow.OtherIncome)

	expense := el.CreateElement("expense")
	expense.CreateAttr("total", formatAmount(cashflow.TotalExpense))
	setAmount(expense, "fixed", cashflow.TotalFixedExpense)
	setAmount(expense, "credit", cashflow.TotalCreditPayment)
	setAmount(expense, "variable", cashflow.TotalVariableExpense)

	setAmount(el, "net-cashflow", cashflow.NetCashflow)
	setAmount(el, "closing-balance", cashflow.ClosingBalance)
}

func writeBalanceSheet(root *etree.Element, sheet *models.MonthlyBalanceSheet) {
	el := root.CreateElement("balance-sheet")
	el.CreateAttr("health", sheet.FinancialHealth)

	assets := el.CreateElement("assets")
	assets.CreateAttr("total", formatAmount(sheet.TotalAssets))
	setAmount(assets, "current", sheet.CurrentAssets)
	setAmount(assets, "investment", sheet.InvestmentAssets)
	setAmount(assets, "fixed", sheet.FixedAssets)

	liabilities := el.CreateElement("liabilities")
	liabilities.CreateAttr("total", formatAmount(sheet.TotalLiabilities))
	setAmount(liabilities, "current", sheet.CurrentLiabilities)
	setAmount(liabilities, "long-term", sheet.LongTermLiabilities)

	setAmount(el, "net-worth", sheet.NetWorth)
	setAmount(el, "net-worth-change", sheet.NetWorthChange)
	el.CreateElement("debt-ratio").SetText(sheet.DebtRatio.StringFixed(2))
	el.CreateElement("liquidity-ratio").SetText(sheet.LiquidityRatio.StringFixed(2))
}

func setAmount(parent *etree.Element, tag string, amount int64) {
	parent.CreateElement(tag).SetText(formatAmount(amount))
}

func formatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}

// Filename returns the download name for a month's report.
func Filename(month string) string {
	if _, err := utils.ParseMonth(month); err != nil {
		return "report.xml"
	}
	return "report-" + month + ".xml"
}
