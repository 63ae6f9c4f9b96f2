package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCashFlowCalculateAll(t *testing.T) {
	th := DefaultThresholds()
	month := date(2025, 4, 1)

	salary := &SalaryRecord{ActualPayment: 280_000}
	incomes := []Income{
		{YearMonth: month, Category: IncomeCategorySideBusiness, Amount: 20_000},
		{YearMonth: month, Category: IncomeCategorySideBusiness, Amount: 10_000},
		{YearMonth: month, Category: IncomeCategoryRefund, Amount: 5_000},
		// Other months are excluded.
		{YearMonth: date(2025, 3, 1), Category: IncomeCategorySideBusiness, Amount: 99_000},
	}
	fixed := []FixedExpense{
		{Name: "Housing loan", Category: FixedCategoryLoan, MonthlyAmount: 80_000, IsActive: true},
		{Name: "Car loan", Category: FixedCategoryLoan, MonthlyAmount: 20_000, IsActive: true},
		{Name: "Life insurance", Category: FixedCategoryInsurance, MonthlyAmount: 10_000, IsActive: true},
		{Name: "Electricity", Category: FixedCategoryUtility, MonthlyAmount: 8_000, IsActive: true},
		{Name: "Old gym", Category: FixedCategorySubscription, MonthlyAmount: 7_000, IsActive: false},
	}
	schedule := &PaymentSchedule{
		CreditCardPayments: PaymentBreakdown{"main card": 30_000},
		TotalCreditPayment: 30_000,
	}
	variables := []VariableExpense{
		{YearMonth: month, Category: VariableCategoryFood, Amount: 40_000},
		{YearMonth: month, Category: VariableCategoryFood, Amount: 5_000},
		{YearMonth: month, Category: VariableCategoryMedical, Amount: 3_000},
	}

	c := &MonthlyCashFlow{
		YearMonth:      month,
		Bonus:          50_000,
		OtherIncome:    1_000,
		OpeningBalance: 500_000,
		ClosingBalance: 620_000,
	}
	c.CalculateAll(salary, incomes, fixed, schedule, variables, th)

	assert.Equal(t, int64(280_000), c.SalaryNet)
	assert.Equal(t, int64(30_000), c.SideIncome)
	assert.Equal(t, int64(5_000), c.Refund)
	// Hand-entered bonus and other income survive the recompute and
	// count toward the total.
	assert.Equal(t, int64(280_000+50_000+30_000+5_000+1_000), c.TotalIncome)

	// Loan-category rows split on the housing keyword.
	assert.Equal(t, int64(80_000), c.HousingLoan)
	assert.Equal(t, int64(20_000), c.OtherLoans)
	assert.Equal(t, int64(10_000), c.Insurance)
	assert.Equal(t, int64(8_000), c.Utilities)
	// Inactive rows are skipped.
	assert.Equal(t, int64(0), c.Subscription)
	assert.Equal(t, int64(118_000), c.TotalFixedExpense)

	assert.Equal(t, int64(30_000), c.TotalCreditPayment)

	assert.Equal(t, int64(45_000), c.Food)
	assert.Equal(t, int64(3_000), c.Medical)
	assert.Equal(t, int64(48_000), c.TotalVariableExpense)

	assert.Equal(t, int64(118_000+30_000+48_000), c.TotalExpense)
	assert.Equal(t, c.TotalIncome-c.TotalExpense, c.NetCashflow)
	assert.Equal(t, int64(120_000), c.MonthlyChange)
	assert.Equal(t, RiskSafe, c.RiskLevel)
}

func TestCashFlowHousingKeywordMatching(t *testing.T) {
	th := DefaultThresholds()
	fixed := []FixedExpense{
		{Name: "住宅ローン", Category: FixedCategoryLoan, MonthlyAmount: 90_000, IsActive: true},
		{Name: "HOUSING LOAN refinance", Category: FixedCategoryLoan, MonthlyAmount: 10_000, IsActive: true},
		{Name: "Scooter loan", Category: FixedCategoryLoan, MonthlyAmount: 5_000, IsActive: true},
	}
	c := &MonthlyCashFlow{YearMonth: date(2025, 4, 1), ClosingBalance: 1_000_000, SalaryNet: 0, Bonus: 500_000}
	c.CalculateAll(nil, nil, fixed, nil, nil, th)

	assert.Equal(t, int64(100_000), c.HousingLoan)
	assert.Equal(t, int64(5_000), c.OtherLoans)
}

func TestCashFlowNilInputs(t *testing.T) {
	th := DefaultThresholds()
	c := &MonthlyCashFlow{YearMonth: date(2025, 4, 1)}
	c.CalculateAll(nil, nil, nil, nil, nil, th)

	assert.Equal(t, int64(0), c.SalaryNet)
	assert.Equal(t, int64(0), c.TotalIncome)
	assert.Equal(t, int64(0), c.TotalExpense)
	assert.Equal(t, PaymentBreakdown{}, c.CreditCardPayments)
	assert.True(t, c.ExpenseRatio().IsZero())
}

func TestCashFlowRiskPriority(t *testing.T) {
	th := DefaultThresholds()

	// Deficit wins over everything else.
	c := &MonthlyCashFlow{YearMonth: date(2025, 4, 1), ClosingBalance: 10_000}
	variables := []VariableExpense{{YearMonth: c.YearMonth, Category: VariableCategoryFood, Amount: 50_000}}
	c.CalculateAll(nil, nil, nil, nil, variables, th)
	assert.Equal(t, RiskDanger, c.RiskLevel)
	assert.Contains(t, c.RiskMessage, "deficit")

	// Low closing balance fires before the expense ratio rule.
	c = &MonthlyCashFlow{YearMonth: date(2025, 4, 1), Bonus: 1_000_000, ClosingBalance: 99_999}
	c.CalculateAll(nil, nil, nil, nil, nil, th)
	assert.Equal(t, RiskWarning, c.RiskLevel)
	assert.Contains(t, c.RiskMessage, "balance")

	// High expense ratio warns even when cash flow is positive.
	c = &MonthlyCashFlow{YearMonth: date(2025, 4, 1), Bonus: 1_000_000, ClosingBalance: 500_000}
	variables = []VariableExpense{{YearMonth: c.YearMonth, Category: VariableCategoryFood, Amount: 850_000}}
	c.CalculateAll(nil, nil, nil, nil, variables, th)
	assert.Equal(t, RiskWarning, c.RiskLevel)
	assert.Contains(t, c.RiskMessage, "85.0%")

	// Comfortable month reads safe.
	c = &MonthlyCashFlow{YearMonth: date(2025, 4, 1), Bonus: 1_000_000, ClosingBalance: 500_000}
	variables = []VariableExpense{{YearMonth: c.YearMonth, Category: VariableCategoryFood, Amount: 400_000}}
	c.CalculateAll(nil, nil, nil, nil, variables, th)
	assert.Equal(t, RiskSafe, c.RiskLevel)
}

func TestExpenseRatio(t *testing.T) {
	c := &MonthlyCashFlow{TotalIncome: 300_000, TotalExpense: 100_000}
	assert.True(t, c.ExpenseRatio().Equal(decimal.NewFromFloat(33.33)))

	c = &MonthlyCashFlow{TotalIncome: 0, TotalExpense: 100_000}
	assert.True(t, c.ExpenseRatio().IsZero())
}
