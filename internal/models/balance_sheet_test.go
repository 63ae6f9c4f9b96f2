package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceSheetCalculateAll(t *testing.T) {
	th := DefaultThresholds()
	assets := []Asset{
		{Name: "Wallet", Category: AssetCategoryCash, CurrentValue: 30_000, IsActive: true},
		{Name: "Main bank", Category: AssetCategoryBank, CurrentValue: 1_500_000, IsActive: true},
		{Name: "US stocks", Category: AssetCategoryInvestment, CurrentValue: 800_000, IsActive: true},
		{Name: "Index fund", Category: AssetCategoryInvestment, CurrentValue: 400_000, IsActive: true},
		{Name: "Crypto wallet", Category: AssetCategoryInvestment, CurrentValue: 100_000, IsActive: true},
		{Name: "Apartment", Category: AssetCategoryRealEstate, CurrentValue: 20_000_000, IsActive: true},
		{Name: "Car", Category: AssetCategoryVehicle, CurrentValue: 1_200_000, IsActive: true},
		// Closed accounts are skipped.
		{Name: "Old bank", Category: AssetCategoryBank, CurrentValue: 999_999, IsActive: false},
	}
	liabilities := []Liability{
		{Name: "Mortgage", Category: LiabilityCategoryHousingLoan, CurrentBalance: 18_000_000, RemainingMonths: 300, IsActive: true},
		{Name: "Car loan", Category: LiabilityCategoryCarLoan, CurrentBalance: 600_000, RemainingMonths: 36, IsActive: true},
		// Short-dated non-housing debt also counts as a current
		// liability.
		{Name: "Appliance loan", Category: LiabilityCategoryOther, CurrentBalance: 120_000, RemainingMonths: 6, IsActive: true},
		{Name: "Settled loan", Category: LiabilityCategoryOther, CurrentBalance: 50_000, RemainingMonths: 2, IsActive: false},
	}
	schedule := &PaymentSchedule{TotalCreditPayment: 80_000}

	b := &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1), Bonds: 200_000}
	b.CalculateAll(assets, liabilities, schedule, nil, th)

	assert.Equal(t, int64(30_000), b.Cash)
	assert.Equal(t, int64(1_500_000), b.BankDeposits)
	assert.Equal(t, int64(1_530_000), b.CurrentAssets)

	assert.Equal(t, int64(800_000), b.Stocks)
	assert.Equal(t, int64(400_000), b.InvestmentTrusts)
	assert.Equal(t, int64(100_000), b.Crypto)
	// Hand-entered bonds stay put and count toward investments.
	assert.Equal(t, int64(200_000), b.Bonds)
	assert.Equal(t, int64(1_500_000), b.InvestmentAssets)

	assert.Equal(t, int64(21_200_000), b.FixedAssets)
	assert.Equal(t, b.CurrentAssets+b.InvestmentAssets+b.FixedAssets, b.TotalAssets)

	assert.Equal(t, int64(80_000), b.CreditCardDebt)
	assert.Equal(t, int64(120_000), b.ShortTermLoans)
	assert.Equal(t, int64(200_000), b.CurrentLiabilities)

	assert.Equal(t, int64(18_000_000), b.HousingLoan)
	assert.Equal(t, int64(600_000), b.CarLoan)
	assert.Equal(t, int64(120_000), b.OtherLoans)
	assert.Equal(t, int64(18_720_000), b.LongTermLiabilities)

	assert.Equal(t, b.TotalAssets-b.TotalLiabilities, b.NetWorth)
	assert.False(t, b.DebtRatio.IsZero())
}

func TestBalanceSheetInvestmentBucketing(t *testing.T) {
	th := DefaultThresholds()
	assets := []Asset{
		{Name: "国内株式口座", Category: AssetCategoryInvestment, CurrentValue: 500_000, IsActive: true},
		{Name: "投資信託つみたて", Category: AssetCategoryInvestment, CurrentValue: 300_000, IsActive: true},
		{Name: "暗号資産", Category: AssetCategoryInvestment, CurrentValue: 50_000, IsActive: true},
		// No keyword match: held out of every sub-bucket.
		{Name: "Gold bar", Category: AssetCategoryInvestment, CurrentValue: 70_000, IsActive: true},
	}

	b := &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, nil, nil, th)

	assert.Equal(t, int64(500_000), b.Stocks)
	assert.Equal(t, int64(300_000), b.InvestmentTrusts)
	assert.Equal(t, int64(50_000), b.Crypto)
	assert.Equal(t, int64(850_000), b.InvestmentAssets)
}

func TestBalanceSheetLiquidityRatio(t *testing.T) {
	th := DefaultThresholds()
	assets := []Asset{
		{Name: "Main bank", Category: AssetCategoryBank, CurrentValue: 300_000, IsActive: true},
		{Name: "Apartment", Category: AssetCategoryRealEstate, CurrentValue: 10_000_000, IsActive: true},
	}
	schedule := &PaymentSchedule{TotalCreditPayment: 200_000}

	b := &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, schedule, nil, th)

	assert.True(t, b.LiquidityRatio.Equal(decimal.NewFromInt(150)),
		"got %s", b.LiquidityRatio)
}

func TestBalanceSheetHealthPriority(t *testing.T) {
	th := DefaultThresholds()

	// Insolvency wins over everything else.
	liabilities := []Liability{{Name: "Mortgage", Category: LiabilityCategoryHousingLoan, CurrentBalance: 5_000_000, RemainingMonths: 300, IsActive: true}}
	assets := []Asset{{Name: "Bank", Category: AssetCategoryBank, CurrentValue: 1_000_000, IsActive: true}}
	b := &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, liabilities, nil, nil, th)
	assert.Equal(t, HealthDanger, b.FinancialHealth)
	assert.Contains(t, b.HealthMessage, "Debts exceed assets")

	// Debt ratio above the danger band.
	liabilities = []Liability{{Name: "Mortgage", Category: LiabilityCategoryHousingLoan, CurrentBalance: 800_000, RemainingMonths: 300, IsActive: true}}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, liabilities, nil, nil, th)
	assert.Equal(t, HealthDanger, b.FinancialHealth)
	assert.Contains(t, b.HealthMessage, "Debt ratio")

	// Debt ratio in the warning band only.
	liabilities = []Liability{{Name: "Mortgage", Category: LiabilityCategoryHousingLoan, CurrentBalance: 600_000, RemainingMonths: 300, IsActive: true}}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, liabilities, nil, nil, th)
	assert.Equal(t, HealthWarning, b.FinancialHealth)

	// Low liquidity without heavy debt.
	schedule := &PaymentSchedule{TotalCreditPayment: 2_000_000}
	richAssets := []Asset{
		{Name: "Bank", Category: AssetCategoryBank, CurrentValue: 1_000_000, IsActive: true},
		{Name: "Apartment", Category: AssetCategoryRealEstate, CurrentValue: 30_000_000, IsActive: true},
	}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(richAssets, nil, schedule, nil, th)
	assert.Equal(t, HealthWarning, b.FinancialHealth)
	assert.Contains(t, b.HealthMessage, "Liquidity")

	// Growing net worth without any warning reads excellent.
	previous := &MonthlyBalanceSheet{NetWorth: 900_000}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, nil, previous, th)
	assert.Equal(t, HealthExcellent, b.FinancialHealth)
	assert.Equal(t, int64(100_000), b.NetWorthChange)

	// Flat month with no debt reads good.
	previous = &MonthlyBalanceSheet{NetWorth: 1_000_000}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, nil, previous, th)
	assert.Equal(t, HealthGood, b.FinancialHealth)
	assert.Equal(t, int64(0), b.NetWorthChange)
}

func TestBalanceSheetPreviousMonth(t *testing.T) {
	th := DefaultThresholds()
	assets := []Asset{{Name: "Bank", Category: AssetCategoryBank, CurrentValue: 1_100_000, IsActive: true}}

	// No prior snapshot degrades to zero change.
	b := &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, nil, nil, th)
	assert.Equal(t, int64(0), b.NetWorthChange)
	assert.True(t, b.NetWorthChangeRatio.IsZero())

	previous := &MonthlyBalanceSheet{NetWorth: 1_000_000}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, nil, previous, th)
	assert.Equal(t, int64(100_000), b.NetWorthChange)
	assert.True(t, b.NetWorthChangeRatio.Equal(decimal.NewFromInt(10)),
		"got %s", b.NetWorthChangeRatio)

	// A zero prior net worth must not divide.
	previous = &MonthlyBalanceSheet{NetWorth: 0}
	b = &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, nil, nil, previous, th)
	assert.Equal(t, int64(1_100_000), b.NetWorthChange)
	assert.True(t, b.NetWorthChangeRatio.IsZero())
}

func TestBalanceSheetCalculateAllIdempotent(t *testing.T) {
	th := DefaultThresholds()
	assets := []Asset{{Name: "Bank", Category: AssetCategoryBank, CurrentValue: 1_000_000, IsActive: true}}
	liabilities := []Liability{{Name: "Car loan", Category: LiabilityCategoryCarLoan, CurrentBalance: 300_000, RemainingMonths: 24, IsActive: true}}

	b := &MonthlyBalanceSheet{YearMonth: date(2025, 4, 1)}
	b.CalculateAll(assets, liabilities, nil, nil, th)
	first := *b
	b.CalculateAll(assets, liabilities, nil, nil, th)

	assert.Equal(t, first.TotalAssets, b.TotalAssets)
	assert.Equal(t, first.TotalLiabilities, b.TotalLiabilities)
	assert.Equal(t, first.NetWorth, b.NetWorth)
	assert.Equal(t, first.FinancialHealth, b.FinancialHealth)
}

func TestLiabilityDerivedValues(t *testing.T) {
	l := &Liability{
		CurrentBalance:  600_000,
		OriginalAmount:  1_000_000,
		MonthlyPayment:  30_000,
		RemainingMonths: 24,
	}
	assert.Equal(t, int64(120_000), l.TotalInterest())
	assert.True(t, l.RepaymentRatio().Equal(decimal.NewFromInt(40)),
		"got %s", l.RepaymentRatio())

	zero := &Liability{OriginalAmount: 0}
	assert.True(t, zero.RepaymentRatio().IsZero())
}
