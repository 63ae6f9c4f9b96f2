package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/Sekine53629/household-finance/internal/utils"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository provides database operations
type Repository struct {
	db *gorm.DB
}

// NewRepository initializes a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates or updates every table.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.SalaryRecord{},
		&models.Asset{},
		&models.Liability{},
		&models.FixedExpense{},
		&models.Income{},
		&models.VariableExpense{},
		&models.CreditCard{},
		&models.CreditUsage{},
		&models.ShortTermLoan{},
		&models.PaymentSchedule{},
		&models.MonthlyCashFlow{},
		&models.MonthlyBalanceSheet{},
	)
}

// ---- salary ----

// SalaryForMonth retrieves the salary record for a month.
func (r *Repository) SalaryForMonth(month time.Time) (*models.SalaryRecord, error) {
	salary := &models.SalaryRecord{}
	err := r.db.Where("year_month = ?", month).First(salary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find salary record: %w", err)
	}
	return salary, nil
}

// SalaryForUpdate loads the salary record for a month, or initializes a
// new one keyed to it.
func (r *Repository) SalaryForUpdate(month time.Time) (*models.SalaryRecord, error) {
	salary := &models.SalaryRecord{}
	err := r.db.Where("year_month = ?", month).
		Attrs(models.SalaryRecord{YearMonth: month}).
		FirstOrInit(salary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load salary record: %w", err)
	}
	return salary, nil
}

// SaveSalary persists a salary record.
func (r *Repository) SaveSalary(salary *models.SalaryRecord) error {
	if err := r.db.Save(salary).Error; err != nil {
		return fmt.Errorf("failed to save salary record: %w", err)
	}
	return nil
}

// RecentSalaries returns the newest n salary records.
func (r *Repository) RecentSalaries(n int) ([]models.SalaryRecord, error) {
	var salaries []models.SalaryRecord
	err := r.db.Order("year_month DESC").Limit(n).Find(&salaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	return salaries, nil
}

// ---- raw entities ----

// CreateAsset stores a new asset.
func (r *Repository) CreateAsset(asset *models.Asset) error {
	if err := r.db.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// ActiveAssets lists every active asset.
func (r *Repository) ActiveAssets() ([]models.Asset, error) {
	var assets []models.Asset
	err := r.db.Where("is_active = ?", true).Order("category, name").Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// CreateLiability stores a new liability.
func (r *Repository) CreateLiability(liability *models.Liability) error {
	if err := r.db.Create(liability).Error; err != nil {
		return fmt.Errorf("failed to create liability: %w", err)
	}
	return nil
}

// ActiveLiabilities lists every active liability.
func (r *Repository) ActiveLiabilities() ([]models.Liability, error) {
	var liabilities []models.Liability
	err := r.db.Where("is_active = ?", true).Order("category, name").Find(&liabilities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	return liabilities, nil
}

// CreateFixedExpense stores a new fixed expense.
func (r *Repository) CreateFixedExpense(expense *models.FixedExpense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create fixed expense: %w", err)
	}
	return nil
}

// ActiveFixedExpenses lists every active fixed expense.
func (r *Repository) ActiveFixedExpenses() ([]models.FixedExpense, error) {
	var expenses []models.FixedExpense
	err := r.db.Where("is_active = ?", true).Order("category, name").Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed expenses: %w", err)
	}
	return expenses, nil
}

// CreateIncome stores a new income row.
func (r *Repository) CreateIncome(income *models.Income) error {
	if err := r.db.Create(income).Error; err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// IncomesForMonth lists income rows for a month.
func (r *Repository) IncomesForMonth(month time.Time) ([]models.Income, error) {
	var incomes []models.Income
	err := r.db.Where("year_month = ?", month).Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

// CreateVariableExpense stores a new variable expense row.
func (r *Repository) CreateVariableExpense(expense *models.VariableExpense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create variable expense: %w", err)
	}
	return nil
}

// VariableExpensesForMonth lists variable expense rows for a month.
func (r *Repository) VariableExpensesForMonth(month time.Time) ([]models.VariableExpense, error) {
	var expenses []models.VariableExpense
	err := r.db.Where("year_month = ?", month).Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list variable expenses: %w", err)
	}
	return expenses, nil
}

// ---- credit ----

// CreateCreditCard stores a new credit card.
func (r *Repository) CreateCreditCard(card *models.CreditCard) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	return nil
}

// ActiveCreditCards lists every active credit card.
func (r *Repository) ActiveCreditCards() ([]models.CreditCard, error) {
	var cards []models.CreditCard
	err := r.db.Where("is_active = ?", true).Order("name").Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	return cards, nil
}

// CreditCardByID retrieves one credit card.
func (r *Repository) CreditCardByID(id uint) (*models.CreditCard, error) {
	card := &models.CreditCard{}
	err := r.db.First(card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credit card: %w", err)
	}
	return card, nil
}

// CreateCreditUsage stores a new credit usage.
func (r *Repository) CreateCreditUsage(usage *models.CreditUsage) error {
	if err := r.db.Create(usage).Error; err != nil {
		return fmt.Errorf("failed to create credit usage: %w", err)
	}
	return nil
}

// UsagesDueInMonth lists unpaid usages whose debit date falls in the
// given month.
func (r *Repository) UsagesDueInMonth(month time.Time) ([]models.CreditUsage, error) {
	next := utils.AddMonths(month, 1)
	var usages []models.CreditUsage
	err := r.db.
		Where("payment_date >= ? AND payment_date < ? AND is_paid = ?", month, next, false).
		Find(&usages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list credit usages: %w", err)
	}
	return usages, nil
}

// CreateShortTermLoan stores a new short-term loan.
func (r *Repository) CreateShortTermLoan(loan *models.ShortTermLoan) error {
	if err := r.db.Create(loan).Error; err != nil {
		return fmt.Errorf("failed to create short-term loan: %w", err)
	}
	return nil
}

// ActiveShortTermLoans lists every active short-term loan.
func (r *Repository) ActiveShortTermLoans() ([]models.ShortTermLoan, error) {
	var loans []models.ShortTermLoan
	err := r.db.Where("is_active = ?", true).Order("start_date").Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list short-term loans: %w", err)
	}
	return loans, nil
}

// SaveShortTermLoan persists loan counter updates.
func (r *Repository) SaveShortTermLoan(loan *models.ShortTermLoan) error {
	if err := r.db.Save(loan).Error; err != nil {
		return fmt.Errorf("failed to save short-term loan: %w", err)
	}
	return nil
}

// ---- monthly snapshots ----

// ScheduleForMonth retrieves the payment schedule for a month.
func (r *Repository) ScheduleForMonth(month time.Time) (*models.PaymentSchedule, error) {
	schedule := &models.PaymentSchedule{}
	err := r.db.Where("year_month = ?", month).First(schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment schedule: %w", err)
	}
	return schedule, nil
}

// ScheduleForUpdate loads the schedule row for a month, or initializes a
// new one keyed to it. User-entered fields on an existing row survive.
func (r *Repository) ScheduleForUpdate(month time.Time) (*models.PaymentSchedule, error) {
	schedule := &models.PaymentSchedule{}
	err := r.db.Where("year_month = ?", month).
		Attrs(models.PaymentSchedule{YearMonth: month}).
		FirstOrInit(schedule).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payment schedule: %w", err)
	}
	return schedule, nil
}

// SaveSchedule persists a payment schedule snapshot.
func (r *Repository) SaveSchedule(schedule *models.PaymentSchedule) error {
	if err := r.db.Save(schedule).Error; err != nil {
		return fmt.Errorf("failed to save payment schedule: %w", err)
	}
	return nil
}

// CashFlowForMonth retrieves the cash flow snapshot for a month.
func (r *Repository) CashFlowForMonth(month time.Time) (*models.MonthlyCashFlow, error) {
	cashflow := &models.MonthlyCashFlow{}
	err := r.db.Where("year_month = ?", month).First(cashflow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cash flow: %w", err)
	}
	return cashflow, nil
}

// CashFlowForUpdate loads the cash flow row for a month, or initializes
// a new one keyed to it.
func (r *Repository) CashFlowForUpdate(month time.Time) (*models.MonthlyCashFlow, error) {
	cashflow := &models.MonthlyCashFlow{}
	err := r.db.Where("year_month = ?", month).
		Attrs(models.MonthlyCashFlow{YearMonth: month}).
		FirstOrInit(cashflow).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cash flow: %w", err)
	}
	return cashflow, nil
}

// SaveCashFlow persists a cash flow snapshot.
func (r *Repository) SaveCashFlow(cashflow *models.MonthlyCashFlow) error {
	if err := r.db.Save(cashflow).Error; err != nil {
		return fmt.Errorf("failed to save cash flow: %w", err)
	}
	return nil
}

// BalanceSheetForMonth retrieves the balance sheet snapshot for a month.
func (r *Repository) BalanceSheetForMonth(month time.Time) (*models.MonthlyBalanceSheet, error) {
	sheet := &models.MonthlyBalanceSheet{}
	err := r.db.Where("year_month = ?", month).First(sheet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find balance sheet: %w", err)
	}
	return sheet, nil
}

// BalanceSheetForUpdate loads the balance sheet row for a month, or
// initializes a new one keyed to it.
func (r *Repository) BalanceSheetForUpdate(month time.Time) (*models.MonthlyBalanceSheet, error) {
	sheet := &models.MonthlyBalanceSheet{}
	err := r.db.Where("year_month = ?", month).
		Attrs(models.MonthlyBalanceSheet{YearMonth: month}).
		FirstOrInit(sheet).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load balance sheet: %w", err)
	}
	return sheet, nil
}

// SaveBalanceSheet persists a balance sheet snapshot.
func (r *Repository) SaveBalanceSheet(sheet *models.MonthlyBalanceSheet) error {
	if err := r.db.Save(sheet).Error; err != nil {
		return fmt.Errorf("failed to save balance sheet: %w", err)
	}
	return nil
}

// LatestCashFlow returns the newest cash flow at or before the month.
func (r *Repository) LatestCashFlow(upTo time.Time) (*models.MonthlyCashFlow, error) {
	cashflow := &models.MonthlyCashFlow{}
	err := r.db.Where("year_month <= ?", upTo).Order("year_month DESC").First(cashflow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest cash flow: %w", err)
	}
	return cashflow, nil
}

// LatestBalanceSheet returns the newest balance sheet at or before the
// month.
func (r *Repository) LatestBalanceSheet(upTo time.Time) (*models.MonthlyBalanceSheet, error) {
	sheet := &models.MonthlyBalanceSheet{}
	err := r.db.Where("year_month <= ?", upTo).Order("year_month DESC").First(sheet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest balance sheet: %w", err)
	}
	return sheet, nil
}

// BalanceSheetsBetween lists balance sheets in [from, to], oldest first.
func (r *Repository) BalanceSheetsBetween(from, to time.Time) ([]models.MonthlyBalanceSheet, error) {
	var sheets []models.MonthlyBalanceSheet
	err := r.db.Where("year_month >= ? AND year_month <= ?", from, to).
		Order("year_month").Find(&sheets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list balance sheets: %w", err)
	}
	return sheets, nil
}
