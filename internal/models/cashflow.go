package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sekine53629/household-finance/internal/utils"
)

// Fixed expense categories.
const (
	FixedCategoryLoan          = "loan"
	FixedCategoryInsurance     = "insurance"
	FixedCategorySubscription  = "subscription"
	FixedCategoryUtility       = "utility"
	FixedCategoryCommunication = "communication"
	FixedCategoryRent          = "rent"
	FixedCategoryOther         = "other"
)

// Income categories.
const (
	IncomeCategorySideBusiness = "side_business"
	IncomeCategoryRent         = "rent_income"
	IncomeCategoryInvestment   = "investment"
	IncomeCategoryRefund       = "refund"
	IncomeCategoryBonus        = "bonus"
	IncomeCategoryTemporary    = "temporary"
	IncomeCategoryOther        = "other"
)

// Variable expense categories.
const (
	VariableCategoryFood          = "food"
	VariableCategoryDailyGoods    = "daily_goods"
	VariableCategoryClothing      = "clothing"
	VariableCategorySocial        = "social"
	VariableCategoryTransport     = "transport"
	VariableCategoryMedical       = "medical"
	VariableCategoryEducation     = "education"
	VariableCategoryEntertainment = "entertainment"
	VariableCategoryOther         = "other"
)

// Keywords identifying a housing loan among loan-category fixed
// expenses. Matching by name is a stopgap until expenses carry an
// explicit sub-category.
var housingKeywords = []string{"housing", "住宅"}

// FixedExpense is a recurring monthly cost: loans, insurance,
// subscriptions, utilities.
type FixedExpense struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"size:200;not null"`
	Category      string `json:"category" gorm:"size:20;not null;default:other"`
	MonthlyAmount int64  `json:"monthly_amount" gorm:"not null"`
	PaymentDay    *int   `json:"payment_day"`

	// Set when the expense is an installment loan.
	IsLoan          bool `json:"is_loan" gorm:"not null;default:false"`
	RemainingMonths *int `json:"remaining_months"`

	IsActive  bool       `json:"is_active" gorm:"not null;default:true"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FixedExpense) TableName() string {
	return "fixed_expenses"
}

// TotalRemaining returns the outstanding balance when the expense is a
// loan, zero otherwise.
func (f *FixedExpense) TotalRemaining() int64 {
	if f.IsLoan && f.RemainingMonths != nil {
		return f.MonthlyAmount * int64(*f.RemainingMonths)
	}
	return 0
}

// Income is a non-salary income row: side business, rent, refunds.
// Many rows per (month, category) are allowed.
type Income struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	YearMonth time.Time `json:"year_month" gorm:"index;not null"`
	Category  string    `json:"category" gorm:"size:20;not null"`
	Amount    int64     `json:"amount" gorm:"not null"`

	Source       string     `json:"source" gorm:"size:200"`
	ReceivedDate *time.Time `json:"received_date"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Income) TableName() string {
	return "incomes"
}

// VariableExpense is a month-to-month spending row.
type VariableExpense struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	YearMonth time.Time `json:"year_month" gorm:"index;not null"`
	Category  string    `json:"category" gorm:"size:20;not null"`
	Amount    int64     `json:"amount" gorm:"not null"`

	ExpenseDate *time.Time `json:"expense_date"`
	Description string     `json:"description" gorm:"size:200"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VariableExpense) TableName() string {
	return "variable_expenses"
}

// MonthlyCashFlow is the derived income/expense snapshot for one month.
// One row per year_month. Balances, bonus and other income are entered
// by hand and survive recomputes; everything else is overwritten.
type MonthlyCashFlow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	YearMonth time.Time `json:"year_month" gorm:"uniqueIndex;not null"`

	// Account balances, entered by hand.
	OpeningBalance  int64 `json:"opening_balance" gorm:"not null;default:0"`
	MidMonthBalance int64 `json:"mid_month_balance" gorm:"not null;default:0"`
	ClosingBalance  int64 `json:"closing_balance" gorm:"not null;default:0"`
	MonthlyChange   int64 `json:"monthly_change" gorm:"not null;default:0"`
	SavableAmount   int64 `json:"savable_amount" gorm:"not null;default:0"`

	// Income. SalaryNet comes from the month's salary record; Bonus and
	// OtherIncome are entered by hand.
	SalaryNet       int64 `json:"salary_net" gorm:"not null;default:0"`
	Bonus           int64 `json:"bonus" gorm:"not null;default:0"`
	SideIncome      int64 `json:"side_income" gorm:"not null;default:0"`
	RentIncome      int64 `json:"rent_income" gorm:"not null;default:0"`
	TemporaryIncome int64 `json:"temporary_income" gorm:"not null;default:0"`
	Refund          int64 `json:"refund" gorm:"not null;default:0"`
	OtherIncome     int64 `json:"other_income" gorm:"not null;default:0"`
	TotalIncome     int64 `json:"total_income" gorm:"not null;default:0"`

	// Fixed expenses by category.
	HousingLoan       int64 `json:"housing_loan" gorm:"not null;default:0"`
	OtherLoans        int64 `json:"other_loans" gorm:"not null;default:0"`
	Insurance         int64 `json:"insurance" gorm:"not null;default:0"`
	Subscription      int64 `json:"subscription" gorm:"not null;default:0"`
	Utilities         int64 `json:"utilities" gorm:"not null;default:0"`
	Communication     int64 `json:"communication" gorm:"not null;default:0"`
	Rent              int64 `json:"rent" gorm:"not null;default:0"`
	TotalFixedExpense int64 `json:"total_fixed_expense" gorm:"not null;default:0"`

	// Credit card debits, copied from the month's payment schedule.
	CreditCardPayments PaymentBreakdown `json:"credit_card_payments" gorm:"type:jsonb;not null;default:'{}'"`
	TotalCreditPayment int64            `json:"total_credit_payment" gorm:"not null;default:0"`

	// Variable expenses by category.
	Food                 int64 `json:"food" gorm:"not null;default:0"`
	DailyGoods           int64 `json:"daily_goods" gorm:"not null;default:0"`
	Clothing             int64 `json:"clothing" gorm:"not null;default:0"`
	Social               int64 `json:"social" gorm:"not null;default:0"`
	Transport            int64 `json:"transport" gorm:"not null;default:0"`
	Medical              int64 `json:"medical" gorm:"not null;default:0"`
	Education            int64 `json:"education" gorm:"not null;default:0"`
	Entertainment        int64 `json:"entertainment" gorm:"not null;default:0"`
	OtherVariable        int64 `json:"other_variable" gorm:"not null;default:0"`
	TotalVariableExpense int64 `json:"total_variable_expense" gorm:"not null;default:0"`

	// Totals.
	TotalExpense int64 `json:"total_expense" gorm:"not null;default:0"`
	NetCashflow  int64 `json:"net_cashflow" gorm:"not null;default:0"`

	RiskLevel   string `json:"risk_level" gorm:"size:10;not null;default:safe"`
	RiskMessage string `json:"risk_message" gorm:"type:text"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MonthlyCashFlow) TableName() string {
	return "monthly_cash_flows"
}

// CalculateAll rebuilds the month from current raw records. salary and
// schedule may be nil; either degrades to zero rather than erroring.
func (c *MonthlyCashFlow) CalculateAll(salary *SalaryRecord, incomes []Income, fixed []FixedExpense, schedule *PaymentSchedule, variables []VariableExpense, th Thresholds) {
	if salary != nil {
		c.SalaryNet = salary.ActualPayment
	} else {
		c.SalaryNet = 0
	}

	c.SideIncome = sumIncomes(incomes, c.YearMonth, IncomeCategorySideBusiness)
	c.RentIncome = sumIncomes(incomes, c.YearMonth, IncomeCategoryRent)
	c.TemporaryIncome = sumIncomes(incomes, c.YearMonth, IncomeCategoryTemporary)
	c.Refund = sumIncomes(incomes, c.YearMonth, IncomeCategoryRefund)

	c.TotalIncome = c.SalaryNet +
		c.Bonus +
		c.SideIncome +
		c.RentIncome +
		c.TemporaryIncome +
		c.Refund +
		c.OtherIncome

	c.HousingLoan = 0
	c.OtherLoans = 0
	c.Insurance = 0
	c.Subscription = 0
	c.Utilities = 0
	c.Communication = 0
	c.Rent = 0
	for _, expense := range fixed {
		if !expense.IsActive {
			continue
		}
		switch expense.Category {
		case FixedCategoryLoan:
			if nameContainsAny(expense.Name, housingKeywords) {
				c.HousingLoan += expense.MonthlyAmount
			} else {
				c.OtherLoans += expense.MonthlyAmount
			}
		case FixedCategoryInsurance:
			c.Insurance += expense.MonthlyAmount
		case FixedCategorySubscription:
			c.Subscription += expense.MonthlyAmount
		case FixedCategoryUtility:
			c.Utilities += expense.MonthlyAmount
		case FixedCategoryCommunication:
			c.Communication += expense.MonthlyAmount
		case FixedCategoryRent:
			c.Rent += expense.MonthlyAmount
		}
	}
	c.TotalFixedExpense = c.HousingLoan +
		c.OtherLoans +
		c.Insurance +
		c.Subscription +
		c.Utilities +
		c.Communication +
		c.Rent

	if schedule != nil {
		c.CreditCardPayments = schedule.CreditCardPayments
		c.TotalCreditPayment = schedule.TotalCreditPayment
	} else {
		c.CreditCardPayments = PaymentBreakdown{}
		c.TotalCreditPayment = 0
	}

	c.Food = sumVariables(variables, c.YearMonth, VariableCategoryFood)
	c.DailyGoods = sumVariables(variables, c.YearMonth, VariableCategoryDailyGoods)
	c.Clothing = sumVariables(variables, c.YearMonth, VariableCategoryClothing)
	c.Social = sumVariables(variables, c.YearMonth, VariableCategorySocial)
	c.Transport = sumVariables(variables, c.YearMonth, VariableCategoryTransport)
	c.Medical = sumVariables(variables, c.YearMonth, VariableCategoryMedical)
	c.Education = sumVariables(variables, c.YearMonth, VariableCategoryEducation)
	c.Entertainment = sumVariables(variables, c.YearMonth, VariableCategoryEntertainment)
	c.OtherVariable = sumVariables(variables, c.YearMonth, VariableCategoryOther)
	c.TotalVariableExpense = c.Food +
		c.DailyGoods +
		c.Clothing +
		c.Social +
		c.Transport +
		c.Medical +
		c.Education +
		c.Entertainment +
		c.OtherVariable

	c.TotalExpense = c.TotalFixedExpense + c.TotalCreditPayment + c.TotalVariableExpense
	c.NetCashflow = c.TotalIncome - c.TotalExpense
	c.MonthlyChange = c.ClosingBalance - c.OpeningBalance

	c.RiskLevel = c.evaluateRisk(th)
}

// ExpenseRatio returns total expense as a percentage of total income,
// rounded to two decimal places. Zero when there is no income.
func (c *MonthlyCashFlow) ExpenseRatio() decimal.Decimal {
	if c.TotalIncome <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(c.TotalExpense).
		Div(decimal.NewFromInt(c.TotalIncome)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// evaluateRisk classifies the month. Rules fire in priority order:
// deficit, low closing balance, high expense ratio.
func (c *MonthlyCashFlow) evaluateRisk(th Thresholds) string {
	if c.NetCashflow < 0 {
		c.RiskMessage = "Cash flow is in deficit. Review this month's spending."
		return RiskDanger
	}

	if c.ClosingBalance < th.LowBalanceWarning {
		c.RiskMessage = "Closing balance is running low."
		return RiskWarning
	}

	if c.TotalIncome > 0 {
		ratio := c.ExpenseRatio()
		if ratio.GreaterThanOrEqual(decimal.NewFromInt(th.ExpenseRatioWarning)) {
			c.RiskMessage = fmt.Sprintf("Expenses are consuming %s%% of income.", ratio.StringFixed(1))
			return RiskWarning
		}
	}

	c.RiskMessage = "Cash flow is healthy."
	return RiskSafe
}

func sumIncomes(incomes []Income, month time.Time, category string) int64 {
	var total int64
	for _, income := range incomes {
		if income.Category == category && utils.SameMonth(income.YearMonth, month) {
			total += income.Amount
		}
	}
	return total
}

func sumVariables(expenses []VariableExpense, month time.Time, category string) int64 {
	var total int64
	for _, expense := range expenses {
		if expense.Category == category && utils.SameMonth(expense.YearMonth, month) {
			total += expense.Amount
		}
	}
	return total
}

func nameContainsAny(name string, keywords []string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
