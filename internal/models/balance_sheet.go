package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Financial health levels, most to least healthy.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthFair      = "fair"
	HealthWarning   = "warning"
	HealthDanger    = "danger"
)

// Asset categories.
const (
	AssetCategoryCash       = "cash"
	AssetCategoryBank       = "bank"
	AssetCategoryInvestment = "investment"
	AssetCategoryRealEstate = "real_estate"
	AssetCategoryVehicle    = "vehicle"
	AssetCategoryOther      = "other"
)

// Liability categories.
const (
	LiabilityCategoryHousingLoan  = "housing_loan"
	LiabilityCategoryCarLoan      = "car_loan"
	LiabilityCategoryCardLoan     = "card_loan"
	LiabilityCategoryStudentLoan  = "student_loan"
	LiabilityCategoryPersonalLoan = "personal_loan"
	LiabilityCategoryOther        = "other"
)

// Keywords splitting investment-category assets into sub-buckets.
// Name matching is a stopgap until assets carry an explicit
// sub-category; a renamed brokerage account silently changes bucket.
var (
	stockKeywords           = []string{"stock", "株"}
	investmentTrustKeywords = []string{"trust", "fund", "投資信託"}
	cryptoKeywords          = []string{"crypto", "暗号"}
)

// Asset is a single holding: an account, a property, a portfolio.
type Asset struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:200;not null"`
	Category string `json:"category" gorm:"size:20;not null"`

	CurrentValue    int64      `json:"current_value" gorm:"not null"`
	AcquisitionDate *time.Time `json:"acquisition_date"`
	AcquisitionCost *int64     `json:"acquisition_cost"`

	IsActive      bool   `json:"is_active" gorm:"not null;default:true"`
	AccountNumber string `json:"account_number" gorm:"size:100"`
	Institution   string `json:"institution" gorm:"size:100"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// UnrealizedGain returns current value minus acquisition cost, zero when
// the cost is unknown.
func (a *Asset) UnrealizedGain() int64 {
	if a.AcquisitionCost == nil {
		return 0
	}
	return a.CurrentValue - *a.AcquisitionCost
}

// UnrealizedGainRatio returns the gain as a percentage of acquisition
// cost, rounded to two decimal places.
func (a *Asset) UnrealizedGainRatio() decimal.Decimal {
	if a.AcquisitionCost == nil || *a.AcquisitionCost <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(a.UnrealizedGain()).
		Div(decimal.NewFromInt(*a.AcquisitionCost)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Liability is an outstanding debt: mortgages, card loans, borrowings.
type Liability struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:200;not null"`
	Category string `json:"category" gorm:"size:20;not null"`

	CurrentBalance  int64            `json:"current_balance" gorm:"not null"`
	OriginalAmount  int64            `json:"original_amount" gorm:"not null"`
	InterestRate    *decimal.Decimal `json:"interest_rate" gorm:"type:decimal(5,2)"`
	MonthlyPayment  int64            `json:"monthly_payment" gorm:"not null"`
	RemainingMonths int              `json:"remaining_months" gorm:"not null"`

	StartDate    time.Time  `json:"start_date" gorm:"not null"`
	MaturityDate *time.Time `json:"maturity_date"`
	PaymentDay   int        `json:"payment_day" gorm:"not null;default:1"`

	Lender        string `json:"lender" gorm:"size:100"`
	AccountNumber string `json:"account_number" gorm:"size:100"`
	IsActive      bool   `json:"is_active" gorm:"not null;default:true"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Liability) TableName() string {
	return "liabilities"
}

// TotalInterest estimates the interest left to pay: the sum of all
// remaining payments minus the outstanding principal.
func (l *Liability) TotalInterest() int64 {
	return l.MonthlyPayment*int64(l.RemainingMonths) - l.CurrentBalance
}

// RepaymentRatio returns repayment progress as a percentage of the
// original amount, rounded to two decimal places.
func (l *Liability) RepaymentRatio() decimal.Decimal {
	if l.OriginalAmount <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(l.OriginalAmount - l.CurrentBalance).
		Div(decimal.NewFromInt(l.OriginalAmount)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// MonthlyBalanceSheet is the derived net-worth snapshot for one month.
// One row per year_month; every field except YearMonth, Bonds and Memo
// is overwritten on recompute (bond holdings have no asset category of
// their own and are entered by hand).
type MonthlyBalanceSheet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	YearMonth time.Time `json:"year_month" gorm:"uniqueIndex;not null"`

	// Current assets.
	Cash          int64 `json:"cash" gorm:"not null;default:0"`
	BankDeposits  int64 `json:"bank_deposits" gorm:"not null;default:0"`
	CurrentAssets int64 `json:"current_assets" gorm:"not null;default:0"`

	// Investment assets.
	Stocks           int64 `json:"stocks" gorm:"not null;default:0"`
	Bonds            int64 `json:"bonds" gorm:"not null;default:0"`
	InvestmentTrusts int64 `json:"investment_trusts" gorm:"not null;default:0"`
	Crypto           int64 `json:"crypto" gorm:"not null;default:0"`
	InvestmentAssets int64 `json:"investment_assets" gorm:"not null;default:0"`

	// Fixed assets.
	RealEstate  int64 `json:"real_estate" gorm:"not null;default:0"`
	Vehicles    int64 `json:"vehicles" gorm:"not null;default:0"`
	OtherAssets int64 `json:"other_assets" gorm:"not null;default:0"`
	FixedAssets int64 `json:"fixed_assets" gorm:"not null;default:0"`

	TotalAssets int64 `json:"total_assets" gorm:"not null;default:0"`

	// Current liabilities.
	CreditCardDebt     int64 `json:"credit_card_debt" gorm:"not null;default:0"`
	ShortTermLoans     int64 `json:"short_term_loans" gorm:"not null;default:0"`
	CurrentLiabilities int64 `json:"current_liabilities" gorm:"not null;default:0"`

	// Long-term liabilities.
	HousingLoan         int64 `json:"housing_loan" gorm:"not null;default:0"`
	CarLoan             int64 `json:"car_loan" gorm:"not null;default:0"`
	StudentLoan         int64 `json:"student_loan" gorm:"not null;default:0"`
	OtherLoans          int64 `json:"other_loans" gorm:"not null;default:0"`
	LongTermLiabilities int64 `json:"long_term_liabilities" gorm:"not null;default:0"`

	TotalLiabilities int64 `json:"total_liabilities" gorm:"not null;default:0"`

	// Net worth and month-over-month movement.
	NetWorth            int64           `json:"net_worth" gorm:"not null;default:0"`
	NetWorthChange      int64           `json:"net_worth_change" gorm:"not null;default:0"`
	NetWorthChangeRatio decimal.Decimal `json:"net_worth_change_ratio" gorm:"type:decimal(8,2);not null;default:0"`

	// Financial ratios.
	DebtRatio      decimal.Decimal `json:"debt_ratio" gorm:"type:decimal(8,2);not null;default:0"`
	LiquidityRatio decimal.Decimal `json:"liquidity_ratio" gorm:"type:decimal(8,2);not null;default:0"`

	FinancialHealth string `json:"financial_health" gorm:"size:10;not null;default:fair"`
	HealthMessage   string `json:"health_message" gorm:"type:text"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MonthlyBalanceSheet) TableName() string {
	return "monthly_balance_sheets"
}

// CalculateAll rebuilds the snapshot from current raw records. schedule
// and previous may be nil; each degrades to zero rather than erroring.
func (b *MonthlyBalanceSheet) CalculateAll(assets []Asset, liabilities []Liability, schedule *PaymentSchedule, previous *MonthlyBalanceSheet, th Thresholds) {
	b.Cash = sumAssets(assets, AssetCategoryCash, nil)
	b.BankDeposits = sumAssets(assets, AssetCategoryBank, nil)
	b.CurrentAssets = b.Cash + b.BankDeposits

	b.Stocks = sumAssets(assets, AssetCategoryInvestment, stockKeywords)
	b.InvestmentTrusts = sumAssets(assets, AssetCategoryInvestment, investmentTrustKeywords)
	b.Crypto = sumAssets(assets, AssetCategoryInvestment, cryptoKeywords)
	b.InvestmentAssets = b.Stocks + b.Bonds + b.InvestmentTrusts + b.Crypto

	b.RealEstate = sumAssets(assets, AssetCategoryRealEstate, nil)
	b.Vehicles = sumAssets(assets, AssetCategoryVehicle, nil)
	b.OtherAssets = sumAssets(assets, AssetCategoryOther, nil)
	b.FixedAssets = b.RealEstate + b.Vehicles + b.OtherAssets

	b.TotalAssets = b.CurrentAssets + b.InvestmentAssets + b.FixedAssets

	if schedule != nil {
		b.CreditCardDebt = schedule.TotalCreditPayment
	} else {
		b.CreditCardDebt = 0
	}

	b.ShortTermLoans = 0
	b.HousingLoan = 0
	b.CarLoan = 0
	b.StudentLoan = 0
	b.OtherLoans = 0
	for _, liability := range liabilities {
		if !liability.IsActive {
			continue
		}
		if liability.RemainingMonths <= 12 && liability.Category != LiabilityCategoryHousingLoan {
			b.ShortTermLoans += liability.CurrentBalance
		}
		switch liability.Category {
		case LiabilityCategoryHousingLoan:
			b.HousingLoan += liability.CurrentBalance
		case LiabilityCategoryCarLoan:
			b.CarLoan += liability.CurrentBalance
		case LiabilityCategoryStudentLoan:
			b.StudentLoan += liability.CurrentBalance
		case LiabilityCategoryOther:
			b.OtherLoans += liability.CurrentBalance
		}
	}
	b.CurrentLiabilities = b.CreditCardDebt + b.ShortTermLoans
	b.LongTermLiabilities = b.HousingLoan + b.CarLoan + b.StudentLoan + b.OtherLoans

	b.TotalLiabilities = b.CurrentLiabilities + b.LongTermLiabilities
	b.NetWorth = b.TotalAssets - b.TotalLiabilities

	if previous != nil {
		b.NetWorthChange = b.NetWorth - previous.NetWorth
		if previous.NetWorth != 0 {
			b.NetWorthChangeRatio = decimal.NewFromInt(b.NetWorthChange).
				Div(decimal.NewFromInt(previous.NetWorth)).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		} else {
			b.NetWorthChangeRatio = decimal.Zero
		}
	} else {
		b.NetWorthChange = 0
		b.NetWorthChangeRatio = decimal.Zero
	}

	if b.TotalAssets > 0 {
		b.DebtRatio = decimal.NewFromInt(b.TotalLiabilities).
			Div(decimal.NewFromInt(b.TotalAssets)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		b.DebtRatio = decimal.Zero
	}

	if b.CurrentLiabilities > 0 {
		b.LiquidityRatio = decimal.NewFromInt(b.CurrentAssets).
			Div(decimal.NewFromInt(b.CurrentLiabilities)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		b.LiquidityRatio = decimal.Zero
	}

	b.FinancialHealth = b.evaluateHealth(th)
}

// evaluateHealth classifies the month. Rules fire in strict priority
// order: insolvency, debt ratio bands, liquidity, then growth.
func (b *MonthlyBalanceSheet) evaluateHealth(th Thresholds) string {
	if b.NetWorth < 0 {
		b.HealthMessage = "Debts exceed assets. Reduce liabilities as soon as possible."
		return HealthDanger
	}

	if b.DebtRatio.GreaterThan(decimal.NewFromInt(th.DebtRatioWarning)) {
		b.HealthMessage = fmt.Sprintf("Debt ratio is high (%s%%).", b.DebtRatio.StringFixed(1))
		if b.DebtRatio.GreaterThan(decimal.NewFromInt(th.DebtRatioDanger)) {
			return HealthDanger
		}
		return HealthWarning
	}

	if b.CurrentLiabilities > 0 && b.LiquidityRatio.LessThan(decimal.NewFromInt(th.LiquidityRatioWarn)) {
		b.HealthMessage = fmt.Sprintf("Liquidity ratio is low (%s%%).", b.LiquidityRatio.StringFixed(1))
		return HealthWarning
	}

	if b.NetWorthChange > 0 {
		b.HealthMessage = fmt.Sprintf("Net worth is growing (+%d).", b.NetWorthChange)
		return HealthExcellent
	}

	b.HealthMessage = "Finances are in good shape."
	return HealthGood
}

// sumAssets totals active assets in a category. When keywords are given
// only assets whose name matches one of them are counted.
func sumAssets(assets []Asset, category string, keywords []string) int64 {
	var total int64
	for _, asset := range assets {
		if !asset.IsActive || asset.Category != category {
			continue
		}
		if keywords != nil && !nameContainsAny(asset.Name, keywords) {
			continue
		}
		total += asset.CurrentValue
	}
	return total
}
