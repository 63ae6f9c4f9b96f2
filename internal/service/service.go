package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sekine53629/household-finance/internal/config"
	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/Sekine53629/household-finance/internal/repository"
	"github.com/Sekine53629/household-finance/internal/utils"
)

// AlertSender delivers a risk alert for a month that landed on danger.
type AlertSender interface {
	SendRiskAlert(month time.Time, cashflow *models.MonthlyCashFlow) error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	alerts AlertSender
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// SetAlertSender wires an optional risk alert channel.
func (s *Service) SetAlertSender(alerts AlertSender) {
	s.alerts = alerts
}

// Login checks the configured password and returns a JWT token
func (s *Service) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("User logged in")
	return tokenString, nil
}

// ---- raw entity writes ----

// SalaryForUpdate loads or initializes the salary record for a month so
// the caller can fill in payslip values before SaveSalary.
func (s *Service) SalaryForUpdate(month time.Time) (*models.SalaryRecord, error) {
	return s.repo.SalaryForUpdate(month)
}

// SaveSalary recomputes the payslip totals and persists the record.
func (s *Service) SaveSalary(salary *models.SalaryRecord) error {
	salary.CalculateAll()
	if err := s.repo.SaveSalary(salary); err != nil {
		return err
	}
	s.log.Infof("Salary record saved for %s: net %d", utils.FormatMonth(salary.YearMonth), salary.ActualPayment)
	return nil
}

// SalaryForMonth retrieves the stored salary record for a month.
func (s *Service) SalaryForMonth(month time.Time) (*models.SalaryRecord, error) {
	return s.repo.SalaryForMonth(month)
}

// AddAsset stores a new asset.
func (s *Service) AddAsset(asset *models.Asset) error {
	if asset.CurrentValue < 0 {
		return fmt.Errorf("asset value must not be negative")
	}
	asset.IsActive = true
	if err := s.repo.CreateAsset(asset); err != nil {
		return err
	}
	s.log.Infof("Asset created: %s (%s)", asset.Name, asset.Category)
	return nil
}

// AddLiability stores a new liability.
func (s *Service) AddLiability(liability *models.Liability) error {
	if liability.CurrentBalance < 0 {
		return fmt.Errorf("liability balance must not be negative")
	}
	liability.IsActive = true
	if err := s.repo.CreateLiability(liability); err != nil {
		return err
	}
	s.log.Infof("Liability created: %s (%s)", liability.Name, liability.Category)
	return nil
}

// AddFixedExpense stores a new fixed expense.
func (s *Service) AddFixedExpense(expense *models.FixedExpense) error {
	if expense.MonthlyAmount < 0 {
		return fmt.Errorf("monthly amount must not be negative")
	}
	expense.IsActive = true
	if err := s.repo.CreateFixedExpense(expense); err != nil {
		return err
	}
	s.log.Infof("Fixed expense created: %s (%s)", expense.Name, expense.Category)
	return nil
}

// AddIncome stores a new income row.
func (s *Service) AddIncome(income *models.Income) error {
	if income.Amount < 0 {
		return fmt.Errorf("income amount must not be negative")
	}
	income.YearMonth = utils.MonthStart(income.YearMonth)
	if err := s.repo.CreateIncome(income); err != nil {
		return err
	}
	s.log.Infof("Income recorded: %s %d for %s", income.Category, income.Amount, utils.FormatMonth(income.YearMonth))
	return nil
}

// AddVariableExpense stores a new variable expense row.
func (s *Service) AddVariableExpense(expense *models.VariableExpense) error {
	if expense.Amount < 0 {
		return fmt.Errorf("expense amount must not be negative")
	}
	expense.YearMonth = utils.MonthStart(expense.YearMonth)
	if err := s.repo.CreateVariableExpense(expense); err != nil {
		return err
	}
	s.log.Infof("Variable expense recorded: %s %d for %s", expense.Category, expense.Amount, utils.FormatMonth(expense.YearMonth))
	return nil
}

// AddCreditCard stores a new credit card after validating its billing
// cycle days.
func (s *Service) AddCreditCard(card *models.CreditCard) error {
	if card.ClosingDay < 1 || card.ClosingDay > 31 {
		return fmt.Errorf("closing day must be between 1 and 31")
	}
	if card.PaymentDay < 1 || card.PaymentDay > 31 {
		return fmt.Errorf("payment day must be between 1 and 31")
	}
	card.IsActive = true
	if err := s.repo.CreateCreditCard(card); err != nil {
		return err
	}
	s.log.Infof("Credit card created: %s (closing %d, payment %d)", card.Name, card.ClosingDay, card.PaymentDay)
	return nil
}

// RecordCreditUsage stores a card transaction. The debit date is derived
// from the card's billing cycle once here and never recomputed.
func (s *Service) RecordCreditUsage(usage *models.CreditUsage) error {
	if usage.Amount < 0 {
		return fmt.Errorf("usage amount must not be negative")
	}
	card, err := s.repo.CreditCardByID(usage.CreditCardID)
	if err != nil {
		return err
	}
	if usage.PaymentDate.IsZero() {
		usage.PaymentDate = usage.ProjectPaymentDate(card)
	}
	if err := s.repo.CreateCreditUsage(usage); err != nil {
		return err
	}
	s.log.Infof("Credit usage recorded: %s %d, debited %s", card.Name, usage.Amount, usage.PaymentDate.Format("2006-01-02"))
	return nil
}

// AddShortTermLoan stores a new short-term loan.
func (s *Service) AddShortTermLoan(loan *models.ShortTermLoan) error {
	if loan.MonthlyPayment < 0 {
		return fmt.Errorf("monthly payment must not be negative")
	}
	if loan.RemainingMonths < 0 {
		return fmt.Errorf("remaining months must not be negative")
	}
	loan.IsActive = true
	if err := s.repo.CreateShortTermLoan(loan); err != nil {
		return err
	}
	s.log.Infof("Short-term loan created: %s (%d x %d)", loan.Name, loan.MonthlyPayment, loan.RemainingMonths)
	return nil
}

// ---- monthly recomputes ----

// RecomputeSchedule rebuilds the payment schedule snapshot for a month.
func (s *Service) RecomputeSchedule(month time.Time) (*models.PaymentSchedule, error) {
	cards, err := s.repo.ActiveCreditCards()
	if err != nil {
		return nil, err
	}
	usages, err := s.repo.UsagesDueInMonth(month)
	if err != nil {
		return nil, err
	}
	loans, err := s.repo.ActiveShortTermLoans()
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.ScheduleForUpdate(month)
	if err != nil {
		return nil, err
	}
	schedule.CalculateAll(cards, usages, loans, s.config.Thresholds())
	if err := s.repo.SaveSchedule(schedule); err != nil {
		return nil, err
	}

	s.log.Infof("Payment schedule recomputed for %s: total %d (%s)",
		utils.FormatMonth(month), schedule.TotalPayment, schedule.RiskLevel)
	return schedule, nil
}

// RecomputeCashFlow rebuilds the cash flow snapshot for a month. The
// credit total is read from the stored payment schedule; recompute the
// schedule first if usages changed.
func (s *Service) RecomputeCashFlow(month time.Time) (*models.MonthlyCashFlow, error) {
	salary, err := s.repo.SalaryForMonth(month)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	incomes, err := s.repo.IncomesForMonth(month)
	if err != nil {
		return nil, err
	}
	fixed, err := s.repo.ActiveFixedExpenses()
	if err != nil {
		return nil, err
	}
	schedule, err := s.repo.ScheduleForMonth(month)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	variables, err := s.repo.VariableExpensesForMonth(month)
	if err != nil {
		return nil, err
	}

	cashflow, err := s.repo.CashFlowForUpdate(month)
	if err != nil {
		return nil, err
	}
	cashflow.CalculateAll(salary, incomes, fixed, schedule, variables, s.config.Thresholds())
	if err := s.repo.SaveCashFlow(cashflow); err != nil {
		return nil, err
	}

	s.log.Infof("Cash flow recomputed for %s: net %d (%s)",
		utils.FormatMonth(month), cashflow.NetCashflow, cashflow.RiskLevel)
	return cashflow, nil
}

// RecomputeBalanceSheet rebuilds the balance sheet snapshot for a month.
func (s *Service) RecomputeBalanceSheet(month time.Time) (*models.MonthlyBalanceSheet, error) {
	assets, err := s.repo.ActiveAssets()
	if err != nil {
		return nil, err
	}
	liabilities, err := s.repo.ActiveLiabilities()
	if err != nil {
		return nil, err
	}
	schedule, err := s.repo.ScheduleForMonth(month)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	previous, err := s.repo.BalanceSheetForMonth(utils.AddMonths(month, -1))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sheet, err := s.repo.BalanceSheetForUpdate(month)
	if err != nil {
		return nil, err
	}
	sheet.CalculateAll(assets, liabilities, schedule, previous, s.config.Thresholds())
	if err := s.repo.SaveBalanceSheet(sheet); err != nil {
		return nil, err
	}

	s.log.Infof("Balance sheet recomputed for %s: net worth %d (%s)",
		utils.FormatMonth(month), sheet.NetWorth, sheet.FinancialHealth)
	return sheet, nil
}

// MonthSnapshots bundles the three derived rows of one month.
type MonthSnapshots struct {
	Schedule     *models.PaymentSchedule     `json:"schedule"`
	CashFlow     *models.MonthlyCashFlow     `json:"cash_flow"`
	BalanceSheet *models.MonthlyBalanceSheet `json:"balance_sheet"`
}

// RecomputeMonth runs the full pipeline for a month. The payment
// schedule is a hard stage dependency: cash flow and balance sheet read
// its credit total, so it always runs first.
func (s *Service) RecomputeMonth(month time.Time) (*MonthSnapshots, error) {
	schedule, err := s.RecomputeSchedule(month)
	if err != nil {
		return nil, err
	}
	cashflow, err := s.RecomputeCashFlow(month)
	if err != nil {
		return nil, err
	}
	sheet, err := s.RecomputeBalanceSheet(month)
	if err != nil {
		return nil, err
	}
	return &MonthSnapshots{Schedule: schedule, CashFlow: cashflow, BalanceSheet: sheet}, nil
}

// ---- snapshot reads ----

// ScheduleForMonth returns the month's schedule, recomputing first when
// update is set. Without update a missing snapshot is ErrNotFound.
func (s *Service) ScheduleForMonth(month time.Time, update bool) (*models.PaymentSchedule, error) {
	if update {
		return s.RecomputeSchedule(month)
	}
	return s.repo.ScheduleForMonth(month)
}

// CashFlowForMonth returns the month's cash flow, recomputing first when
// update is set.
func (s *Service) CashFlowForMonth(month time.Time, update bool) (*models.MonthlyCashFlow, error) {
	if update {
		return s.RecomputeCashFlow(month)
	}
	return s.repo.CashFlowForMonth(month)
}

// BalanceSheetForMonth returns the month's balance sheet, recomputing
// first when update is set.
func (s *Service) BalanceSheetForMonth(month time.Time, update bool) (*models.MonthlyBalanceSheet, error) {
	if update {
		return s.RecomputeBalanceSheet(month)
	}
	return s.repo.BalanceSheetForMonth(month)
}

// ---- dashboard ----

// NetWorthPoint is one month on the dashboard's net worth series.
type NetWorthPoint struct {
	Month    string `json:"month"`
	NetWorth int64  `json:"net_worth"`
}

// Dashboard is the read model for the overview page.
type Dashboard struct {
	CurrentMonth   string                      `json:"current_month"`
	NetWorth       int64                       `json:"net_worth"`
	MonthlyIncome  int64                       `json:"monthly_income"`
	MonthlyExpense int64                       `json:"monthly_expense"`
	NetCashflow    int64                       `json:"net_cashflow"`
	BalanceSheet   *models.MonthlyBalanceSheet `json:"balance_sheet"`
	CashFlow       *models.MonthlyCashFlow     `json:"cash_flow"`
	RecentSalaries []models.SalaryRecord       `json:"recent_salaries"`
	NetWorthSeries []NetWorthPoint             `json:"net_worth_series"`
}

// BuildDashboard assembles the overview: latest snapshots up to the
// current month, recent payslips and a six-month net worth series.
// Missing snapshots degrade to zeros.
func (s *Service) BuildDashboard(now time.Time) (*Dashboard, error) {
	current := utils.MonthStart(now)
	dashboard := &Dashboard{CurrentMonth: utils.FormatMonth(current)}

	sheet, err := s.repo.LatestBalanceSheet(current)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if sheet != nil {
		dashboard.BalanceSheet = sheet
		dashboard.NetWorth = sheet.NetWorth
	}

	cashflow, err := s.repo.LatestCashFlow(current)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if cashflow != nil {
		dashboard.CashFlow = cashflow
		dashboard.MonthlyIncome = cashflow.TotalIncome
		dashboard.MonthlyExpense = cashflow.TotalExpense
		dashboard.NetCashflow = cashflow.NetCashflow
	}

	salaries, err := s.repo.RecentSalaries(3)
	if err != nil {
		return nil, err
	}
	dashboard.RecentSalaries = salaries

	from := utils.AddMonths(current, -5)
	sheets, err := s.repo.BalanceSheetsBetween(from, current)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]int64, len(sheets))
	for _, sh := range sheets {
		byMonth[utils.FormatMonth(sh.YearMonth)] = sh.NetWorth
	}
	for i := 0; i < 6; i++ {
		month := utils.FormatMonth(utils.AddMonths(from, i))
		dashboard.NetWorthSeries = append(dashboard.NetWorthSeries, NetWorthPoint{
			Month:    month,
			NetWorth: byMonth[month],
		})
	}

	return dashboard, nil
}

// ---- monthly batch ----

// RolloverShortTermLoans counts down one installment on every active
// loan. Returns the number of loans updated.
func (s *Service) RolloverShortTermLoans() (int, error) {
	loans, err := s.repo.ActiveShortTermLoans()
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range loans {
		loan := &loans[i]
		if !loan.ApplyMonthlyRollover() {
			continue
		}
		if err := s.repo.SaveShortTermLoan(loan); err != nil {
			return updated, err
		}
		updated++
		if !loan.IsActive {
			s.log.Infof("Short-term loan paid off: %s", loan.Name)
		}
	}
	return updated, nil
}

// RunMonthlyBatch is the first-of-month job: count down loan
// installments, recompute the month's pipeline, and raise an alert when
// the cash flow lands on danger.
func (s *Service) RunMonthlyBatch(month time.Time) error {
	month = utils.MonthStart(month)

	updated, err := s.RolloverShortTermLoans()
	if err != nil {
		return fmt.Errorf("loan rollover failed: %w", err)
	}
	s.log.Infof("Monthly batch: %d loans rolled over", updated)

	snapshots, err := s.RecomputeMonth(month)
	if err != nil {
		return fmt.Errorf("monthly recompute failed: %w", err)
	}

	if snapshots.CashFlow.RiskLevel == models.RiskDanger && s.alerts != nil {
		if err := s.alerts.SendRiskAlert(month, snapshots.CashFlow); err != nil {
			s.log.Errorf("Failed to send risk alert for %s: %v", utils.FormatMonth(month), err)
		}
	}
	return nil
}
