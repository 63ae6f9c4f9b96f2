package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProjectPaymentDate(t *testing.T) {
	card := &CreditCard{ClosingDay: 15, PaymentDay: 10}

	// Purchase after the closing day rolls to the statement two months
	// out.
	u := &CreditUsage{UsageDate: date(2025, 1, 20)}
	assert.Equal(t, date(2025, 3, 10), u.ProjectPaymentDate(card))

	// On or before the closing day lands next month.
	u = &CreditUsage{UsageDate: date(2025, 1, 15)}
	assert.Equal(t, date(2025, 2, 10), u.ProjectPaymentDate(card))

	u = &CreditUsage{UsageDate: date(2025, 1, 3)}
	assert.Equal(t, date(2025, 2, 10), u.ProjectPaymentDate(card))
}

func TestProjectPaymentDateClampsToMonthEnd(t *testing.T) {
	card := &CreditCard{ClosingDay: 25, PaymentDay: 31}

	// Debit month is February; day 31 clamps to the 28th.
	u := &CreditUsage{UsageDate: date(2025, 1, 10)}
	assert.Equal(t, date(2025, 2, 28), u.ProjectPaymentDate(card))

	// Leap year February keeps its 29th.
	u = &CreditUsage{UsageDate: date(2024, 1, 10)}
	assert.Equal(t, date(2024, 2, 29), u.ProjectPaymentDate(card))
}

func TestShortTermLoanRollover(t *testing.T) {
	loan := &ShortTermLoan{
		Name:            "phone installments",
		MonthlyPayment:  3_000,
		RemainingMonths: 2,
		IsActive:        true,
		StartDate:       date(2025, 1, 1),
	}
	assert.Equal(t, int64(6_000), loan.TotalRemaining())
	assert.Equal(t, date(2025, 3, 1), loan.CompletionDate())

	assert.True(t, loan.ApplyMonthlyRollover())
	assert.Equal(t, 1, loan.RemainingMonths)
	assert.True(t, loan.IsActive)

	// Final installment deactivates the loan.
	assert.True(t, loan.ApplyMonthlyRollover())
	assert.Equal(t, 0, loan.RemainingMonths)
	assert.False(t, loan.IsActive)

	// Exhausted loans are left alone.
	assert.False(t, loan.ApplyMonthlyRollover())
	assert.Equal(t, 0, loan.RemainingMonths)
}

func TestPaymentScheduleCalculateAll(t *testing.T) {
	th := DefaultThresholds()
	cards := []CreditCard{
		{ID: 1, Name: "main card", IsActive: true},
		{ID: 2, Name: "backup card", IsActive: true},
		{ID: 3, Name: "cancelled card", IsActive: false},
	}
	usages := []CreditUsage{
		{CreditCardID: 1, Amount: 12_000, PaymentDate: date(2025, 4, 10)},
		{CreditCardID: 1, Amount: 8_000, PaymentDate: date(2025, 4, 10)},
		// Paid usages and other months are excluded.
		{CreditCardID: 1, Amount: 99_000, PaymentDate: date(2025, 4, 10), IsPaid: true},
		{CreditCardID: 1, Amount: 50_000, PaymentDate: date(2025, 5, 10)},
		// Usage on an inactive card never shows up.
		{CreditCardID: 3, Amount: 7_000, PaymentDate: date(2025, 4, 10)},
	}
	loans := []ShortTermLoan{
		{Name: "phone installments", MonthlyPayment: 3_000, IsActive: true},
		{Name: "paid-off loan", MonthlyPayment: 5_000, IsActive: false},
	}

	p := &PaymentSchedule{YearMonth: date(2025, 4, 1)}
	p.CalculateAll(cards, usages, loans, th)

	assert.Equal(t, PaymentBreakdown{"main card": 20_000}, p.CreditCardPayments)
	assert.Equal(t, int64(20_000), p.TotalCreditPayment)
	// Cards with nothing due are omitted entirely.
	assert.NotContains(t, p.CreditCardPayments, "backup card")

	assert.Equal(t, PaymentBreakdown{"phone installments": 3_000}, p.LoanPayments)
	assert.Equal(t, int64(3_000), p.TotalLoanPayment)

	assert.Equal(t, p.TotalCreditPayment+p.TotalLoanPayment, p.TotalPayment)
	assert.Equal(t, RiskSafe, p.RiskLevel)
}

func TestPaymentScheduleCalculateAllIdempotent(t *testing.T) {
	th := DefaultThresholds()
	cards := []CreditCard{{ID: 1, Name: "main card", IsActive: true}}
	usages := []CreditUsage{{CreditCardID: 1, Amount: 40_000, PaymentDate: date(2025, 4, 10)}}

	p := &PaymentSchedule{YearMonth: date(2025, 4, 1)}
	p.CalculateAll(cards, usages, nil, th)
	first := *p
	p.CalculateAll(cards, usages, nil, th)

	assert.Equal(t, first.CreditCardPayments, p.CreditCardPayments)
	assert.Equal(t, first.TotalPayment, p.TotalPayment)
	assert.Equal(t, first.RiskLevel, p.RiskLevel)
}

func TestPaymentScheduleRiskBoundaries(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		total int64
		want  string
	}{
		{0, RiskSafe},
		{99_999, RiskSafe},
		{100_000, RiskWarning},
		{199_999, RiskWarning},
		{200_000, RiskDanger},
		{350_000, RiskDanger},
	}
	for _, tc := range cases {
		p := &PaymentSchedule{TotalPayment: tc.total}
		assert.Equal(t, tc.want, p.evaluateRisk(th), "total=%d", tc.total)
	}
}
