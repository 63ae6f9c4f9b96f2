package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sekine53629/household-finance/internal/models"
)

func TestBuild(t *testing.T) {
	schedule := &models.PaymentSchedule{
		YearMonth:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		CreditCardPayments: models.PaymentBreakdown{"main card": 20_000},
		TotalCreditPayment: 20_000,
		LoanPayments:       models.PaymentBreakdown{"phone installments": 3_000},
		TotalLoanPayment:   3_000,
		TotalPayment:       23_000,
		RiskLevel:          models.RiskSafe,
	}
	cashflow := &models.MonthlyCashFlow{
		SalaryNet:    280_000,
		TotalIncome:  280_000,
		TotalExpense: 180_000,
		NetCashflow:  100_000,
		RiskLevel:    models.RiskSafe,
	}
	sheet := &models.MonthlyBalanceSheet{
		TotalAssets:      2_000_000,
		TotalLiabilities: 500_000,
		NetWorth:         1_500_000,
		DebtRatio:        decimal.NewFromInt(25),
		FinancialHealth:  models.HealthGood,
	}

	doc := Build("2025-04", schedule, cashflow, sheet)

	root := doc.SelectElement("monthly-report")
	require.NotNil(t, root)
	assert.Equal(t, "2025-04", root.SelectAttrValue("month", ""))

	sched := root.SelectElement("payment-schedule")
	require.NotNil(t, sched)
	assert.Equal(t, "safe", sched.SelectAttrValue("risk", ""))
	assert.Equal(t, "23000", sched.SelectElement("total-payment").Text())

	cards := sched.SelectElement("credit-cards")
	require.NotNil(t, cards)
	assert.Equal(t, "20000", cards.SelectAttrValue("total", ""))
	payments := cards.SelectElements("payment")
	require.Len(t, payments, 1)
	assert.Equal(t, "main card", payments[0].SelectAttrValue("name", ""))
	assert.Equal(t, "20000", payments[0].SelectAttrValue("amount", ""))

	cf := root.SelectElement("cash-flow")
	require.NotNil(t, cf)
	assert.Equal(t, "280000", cf.SelectElement("income").SelectAttrValue("total", ""))
	assert.Equal(t, "100000", cf.SelectElement("net-cashflow").Text())

	bs := root.SelectElement("balance-sheet")
	require.NotNil(t, bs)
	assert.Equal(t, "good", bs.SelectAttrValue("health", ""))
	assert.Equal(t, "1500000", bs.SelectElement("net-worth").Text())
	assert.Equal(t, "25.00", bs.SelectElement("debt-ratio").Text())
}

func TestBuildOmitsMissingSections(t *testing.T) {
	doc := Build("2025-04", nil, nil, nil)

	root := doc.SelectElement("monthly-report")
	require.NotNil(t, root)
	assert.Nil(t, root.SelectElement("payment-schedule"))
	assert.Nil(t, root.SelectElement("cash-flow"))
	assert.Nil(t, root.SelectElement("balance-sheet"))
}

func TestWriteRoundTrip(t *testing.T) {
	sheet := &models.MonthlyBalanceSheet{NetWorth: 42, FinancialHealth: models.HealthFair}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "2025-04", nil, nil, sheet))

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(buf.Bytes()))
	root := parsed.SelectElement("monthly-report")
	require.NotNil(t, root)
	assert.Equal(t, "42", root.SelectElement("balance-sheet").SelectElement("net-worth").Text())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "report-2025-04.xml", Filename("2025-04"))
	assert.Equal(t, "report.xml", Filename("not-a-month"))
}
