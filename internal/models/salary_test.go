package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalaryCalculateAll(t *testing.T) {
	s := &SalaryRecord{
		BaseSalary:                250_000,
		PositionAllowance:         20_000,
		HousingAllowance:          15_000,
		OvertimeMinutes:           630,
		OvertimePay:               18_000,
		CommutingAllowance:        12_000,
		TaxableCommutingAllowance: 2_000,

		HealthInsurance:     15_000,
		PensionInsurance:    27_000,
		EmploymentInsurance: 1_800,
		MonthlyIncomeTax:    8_500,
		ResidentTax:         14_000,
	}
	s.CalculateAll()

	// 630 minutes is 10.5 hours.
	assert.True(t, s.OvertimeHours.Equal(decimal.NewFromFloat(10.5)),
		"got %s", s.OvertimeHours)

	assert.Equal(t, int64(317_000), s.TotalPayment)
	// The non-taxable share of the commuting allowance is excluded.
	assert.Equal(t, int64(317_000-10_000), s.TaxableAmount)
	assert.Equal(t, int64(66_300), s.TotalDeduction)
	assert.Equal(t, int64(250_700), s.ActualPayment)
	assert.Equal(t, s.ActualPayment, s.NetPayment)
	assert.Equal(t, int64(0), s.Difference)
}

func TestSalaryCalculateAllZeroRecord(t *testing.T) {
	s := &SalaryRecord{}
	s.CalculateAll()

	assert.Equal(t, int64(0), s.TotalPayment)
	assert.Equal(t, int64(0), s.TotalDeduction)
	assert.Equal(t, int64(0), s.ActualPayment)
	assert.True(t, s.OvertimeHours.IsZero())
}

func TestPaymentBreakdownTotal(t *testing.T) {
	assert.Equal(t, int64(0), PaymentBreakdown{}.Total())
	assert.Equal(t, int64(35_000), PaymentBreakdown{"a": 20_000, "b": 15_000}.Total())
}
