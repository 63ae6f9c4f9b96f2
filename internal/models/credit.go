package models

import (
	"time"

	"github.com/Sekine53629/household-finance/internal/utils"
)

// Risk levels shared by PaymentSchedule and MonthlyCashFlow.
const (
	RiskSafe    = "safe"
	RiskWarning = "warning"
	RiskDanger  = "danger"
)

// CreditCard holds the billing cycle of one card: statements close on
// ClosingDay and are debited on PaymentDay of a later month.
type CreditCard struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:100;not null"`
	CardNumberLast4 string `json:"card_number_last4" gorm:"size:4"`

	// Day-of-month values in [1,31].
	ClosingDay int `json:"closing_day" gorm:"not null"`
	PaymentDay int `json:"payment_day" gorm:"not null"`

	BankAccount string `json:"bank_account" gorm:"size:100"`
	CreditLimit *int64 `json:"credit_limit"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

// CreditUsage is a single card transaction. PaymentDate is derived from
// the card's billing cycle once, at first save, and never recomputed.
type CreditUsage struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CreditCardID uint       `json:"credit_card_id" gorm:"index;not null"`
	CreditCard   CreditCard `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	UsageDate time.Time `json:"usage_date" gorm:"not null"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Merchant  string    `json:"merchant" gorm:"size:200"`
	Category  string    `json:"category" gorm:"size:20;default:other"`

	PaymentDate time.Time `json:"payment_date"`
	IsPaid      bool      `json:"is_paid" gorm:"not null;default:false"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CreditUsage) TableName() string {
	return "credit_usages"
}

// ProjectPaymentDate derives the debit date for this usage. A purchase
// made after the card's closing day rolls to the statement two months
// out; otherwise it lands on next month's statement. The debit day is
// the card's payment day, clamped to the last day of the target month.
func (u *CreditUsage) ProjectPaymentDate(card *CreditCard) time.Time {
	months := 1
	if u.UsageDate.Day() > card.ClosingDay {
		months = 2
	}
	paymentMonth := utils.AddMonths(u.UsageDate, months)
	day := utils.ClampDay(paymentMonth, card.PaymentDay)
	return time.Date(paymentMonth.Year(), paymentMonth.Month(), day, 0, 0, 0, 0, time.UTC)
}

// ShortTermLoan is an installment purchase (phone plans, installation
// fees). Every active loan is assumed due every month.
type ShortTermLoan struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`

	MonthlyPayment  int64 `json:"monthly_payment" gorm:"not null"`
	RemainingMonths int   `json:"remaining_months" gorm:"not null"`
	PaymentDay      int   `json:"payment_day" gorm:"not null"`

	StartDate   time.Time `json:"start_date" gorm:"not null"`
	BankAccount string    `json:"bank_account" gorm:"size:100"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShortTermLoan) TableName() string {
	return "short_term_loans"
}

// TotalRemaining returns the outstanding balance of the loan.
func (l *ShortTermLoan) TotalRemaining() int64 {
	return l.MonthlyPayment * int64(l.RemainingMonths)
}

// CompletionDate projects the month the final installment falls in.
func (l *ShortTermLoan) CompletionDate() time.Time {
	return utils.AddMonths(l.StartDate, l.RemainingMonths)
}

// ApplyMonthlyRollover counts down one installment. The loan deactivates
// itself when the last installment is consumed. Returns true if the
// record changed.
func (l *ShortTermLoan) ApplyMonthlyRollover() bool {
	if l.RemainingMonths <= 0 {
		return false
	}
	l.RemainingMonths--
	if l.RemainingMonths == 0 {
		l.IsActive = false
	}
	return true
}

// PaymentSchedule is the derived payment plan for one month: which
// cards and loans are debited, for how much, and a coarse risk tag.
// One row per year_month; every field except YearMonth and Memo is
// overwritten on recompute.
type PaymentSchedule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	YearMonth time.Time `json:"year_month" gorm:"uniqueIndex;not null"`

	CreditCardPayments PaymentBreakdown `json:"credit_card_payments" gorm:"type:jsonb;not null;default:'{}'"`
	TotalCreditPayment int64            `json:"total_credit_payment" gorm:"not null;default:0"`

	LoanPayments     PaymentBreakdown `json:"loan_payments" gorm:"type:jsonb;not null;default:'{}'"`
	TotalLoanPayment int64            `json:"total_loan_payment" gorm:"not null;default:0"`

	TotalPayment int64  `json:"total_payment" gorm:"not null;default:0"`
	RiskLevel    string `json:"risk_level" gorm:"size:10;not null;default:safe"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentSchedule) TableName() string {
	return "payment_schedules"
}

// CalculateAll rebuilds the schedule from current raw records. A card
// contributes the sum of its unpaid usages debited this month; cards
// with nothing due are omitted. Every active loan contributes its fixed
// monthly payment regardless of date.
func (p *PaymentSchedule) CalculateAll(cards []CreditCard, usages []CreditUsage, loans []ShortTermLoan, th Thresholds) {
	creditPayments := PaymentBreakdown{}
	for _, card := range cards {
		if !card.IsActive {
			continue
		}
		var amount int64
		for _, usage := range usages {
			if usage.CreditCardID != card.ID || usage.IsPaid {
				continue
			}
			if !utils.SameMonth(usage.PaymentDate, p.YearMonth) {
				continue
			}
			amount += usage.Amount
		}
		if amount > 0 {
			creditPayments[card.Name] = amount
		}
	}
	p.CreditCardPayments = creditPayments
	p.TotalCreditPayment = creditPayments.Total()

	loanPayments := PaymentBreakdown{}
	for _, loan := range loans {
		if !loan.IsActive {
			continue
		}
		loanPayments[loan.Name] = loan.MonthlyPayment
	}
	p.LoanPayments = loanPayments
	p.TotalLoanPayment = loanPayments.Total()

	p.TotalPayment = p.TotalCreditPayment + p.TotalLoanPayment
	p.RiskLevel = p.evaluateRisk(th)
}

// evaluateRisk tags the month by total payment volume alone.
// TODO: weigh the total against that month's salary record instead of
// fixed limits.
func (p *PaymentSchedule) evaluateRisk(th Thresholds) string {
	switch {
	case p.TotalPayment < th.SchedulePaymentWarning:
		return RiskSafe
	case p.TotalPayment < th.SchedulePaymentDanger:
		return RiskWarning
	default:
		return RiskDanger
	}
}
