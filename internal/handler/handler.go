package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/Sekine53629/household-finance/internal/report"
	"github.com/Sekine53629/household-finance/internal/repository"
	"github.com/Sekine53629/household-finance/internal/service"
	"github.com/Sekine53629/household-finance/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles the single-user password login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Dashboard renders the overview page
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.BuildDashboard(time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build dashboard: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, dashboard); err != nil {
		http.Error(w, fmt.Sprintf("failed to render dashboard: %v", err), http.StatusInternalServerError)
	}
}

// DashboardJSON returns the overview as JSON
func (h *Handler) DashboardJSON(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.BuildDashboard(time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build dashboard: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// ---- monthly snapshots ----

// GetSchedule returns the payment schedule for {month}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	schedule, err := h.svc.ScheduleForMonth(month, updateParam(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// GetCashFlow returns the cash flow snapshot for {month}
func (h *Handler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	cashflow, err := h.svc.CashFlowForMonth(month, updateParam(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cashflow)
}

// GetBalanceSheet returns the balance sheet snapshot for {month}
func (h *Handler) GetBalanceSheet(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	sheet, err := h.svc.BalanceSheetForMonth(month, updateParam(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// RecomputeMonth runs the full snapshot pipeline for {month}
func (h *Handler) RecomputeMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	snapshots, err := h.svc.RecomputeMonth(month)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GetReport streams the month's XML report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	monthStr := utils.FormatMonth(month)

	schedule, err := h.svc.ScheduleForMonth(month, false)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(w, err)
		return
	}
	cashflow, err := h.svc.CashFlowForMonth(month, false)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(w, err)
		return
	}
	sheet, err := h.svc.BalanceSheetForMonth(month, false)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(w, err)
		return
	}
	if schedule == nil && cashflow == nil && sheet == nil {
		http.Error(w, fmt.Sprintf("no snapshots stored for %s", monthStr), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(monthStr)))
	if err := report.Write(w, monthStr, schedule, cashflow, sheet); err != nil {
		http.Error(w, fmt.Sprintf("failed to render report: %v", err), http.StatusInternalServerError)
	}
}

// ---- raw entity writes ----

// UpsertSalary creates or updates the salary record for a month
func (h *Handler) UpsertSalary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month             string `json:"month"`
		BaseSalary        int64  `json:"base_salary"`
		PositionAllowance int64  `json:"position_allowance"`
		OvertimePay       int64  `json:"overtime_pay"`
		HealthInsurance   int64  `json:"health_insurance"`
		PensionInsurance  int64  `json:"pension_insurance"`
		ResidentTax       int64  `json:"resident_tax"`
		Memo              string `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	month, err := utils.ParseMonth(req.Month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	salary, err := h.svc.SalaryForUpdate(month)
	if err != nil {
		respondError(w, err)
		return
	}
	salary.BaseSalary = req.BaseSalary
	salary.PositionAllowance = req.PositionAllowance
	salary.OvertimePay = req.OvertimePay
	salary.HealthInsurance = req.HealthInsurance
	salary.PensionInsurance = req.PensionInsurance
	salary.ResidentTax = req.ResidentTax
	if req.Memo != "" {
		salary.Memo = req.Memo
	}
	if err := h.svc.SaveSalary(salary); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, salary)
}

// GetSalary returns the salary record for {month}
func (h *Handler) GetSalary(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	salary, err := h.svc.SalaryForMonth(month)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, salary)
}

// CreateAsset stores a new asset
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Category        string `json:"category"`
		CurrentValue    int64  `json:"current_value"`
		AcquisitionCost *int64 `json:"acquisition_cost"`
		Institution     string `json:"institution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	asset := &models.Asset{
		Name:            req.Name,
		Category:        req.Category,
		CurrentValue:    req.CurrentValue,
		AcquisitionCost: req.AcquisitionCost,
		Institution:     req.Institution,
	}
	if err := h.svc.AddAsset(asset); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// CreateLiability stores a new liability
func (h *Handler) CreateLiability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Category        string `json:"category"`
		CurrentBalance  int64  `json:"current_balance"`
		OriginalAmount  int64  `json:"original_amount"`
		MonthlyPayment  int64  `json:"monthly_payment"`
		RemainingMonths int    `json:"remaining_months"`
		PaymentDay      int    `json:"payment_day"`
		StartDate       string `json:"start_date"`
		Lender          string `json:"lender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	liability := &models.Liability{
		Name:            req.Name,
		Category:        req.Category,
		CurrentBalance:  req.CurrentBalance,
		OriginalAmount:  req.OriginalAmount,
		MonthlyPayment:  req.MonthlyPayment,
		RemainingMonths: req.RemainingMonths,
		PaymentDay:      req.PaymentDay,
		StartDate:       startDate,
		Lender:          req.Lender,
	}
	if err := h.svc.AddLiability(liability); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, liability)
}

// CreateFixedExpense stores a new fixed expense
func (h *Handler) CreateFixedExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Category        string `json:"category"`
		MonthlyAmount   int64  `json:"monthly_amount"`
		PaymentDay      *int   `json:"payment_day"`
		IsLoan          bool   `json:"is_loan"`
		RemainingMonths *int   `json:"remaining_months"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	expense := &models.FixedExpense{
		Name:            req.Name,
		Category:        req.Category,
		MonthlyAmount:   req.MonthlyAmount,
		PaymentDay:      req.PaymentDay,
		IsLoan:          req.IsLoan,
		RemainingMonths: req.RemainingMonths,
	}
	if err := h.svc.AddFixedExpense(expense); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// CreateIncome stores a new income row
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month    string `json:"month"`
		Category string `json:"category"`
		Amount   int64  `json:"amount"`
		Source   string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	month, err := utils.ParseMonth(req.Month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	income := &models.Income{
		YearMonth: month,
		Category:  req.Category,
		Amount:    req.Amount,
		Source:    req.Source,
	}
	if err := h.svc.AddIncome(income); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, income)
}

// CreateVariableExpense stores a new variable expense row
func (h *Handler) CreateVariableExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month       string `json:"month"`
		Category    string `json:"category"`
		Amount      int64  `json:"amount"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	month, err := utils.ParseMonth(req.Month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense := &models.VariableExpense{
		YearMonth:   month,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.svc.AddVariableExpense(expense); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// CreateCreditCard stores a new credit card
func (h *Handler) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		ClosingDay  int    `json:"closing_day"`
		PaymentDay  int    `json:"payment_day"`
		BankAccount string `json:"bank_account"`
		CreditLimit *int64 `json:"credit_limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	card := &models.CreditCard{
		Name:        req.Name,
		ClosingDay:  req.ClosingDay,
		PaymentDay:  req.PaymentDay,
		BankAccount: req.BankAccount,
		CreditLimit: req.CreditLimit,
	}
	if err := h.svc.AddCreditCard(card); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// CreateCreditUsage stores a new card transaction
func (h *Handler) CreateCreditUsage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CreditCardID uint   `json:"credit_card_id"`
		UsageDate    string `json:"usage_date"`
		Amount       int64  `json:"amount"`
		Merchant     string `json:"merchant"`
		Category     string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	usageDate, err := parseDate(req.UsageDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	usage := &models.CreditUsage{
		CreditCardID: req.CreditCardID,
		UsageDate:    usageDate,
		Amount:       req.Amount,
		Merchant:     req.Merchant,
		Category:     req.Category,
	}
	if err := h.svc.RecordCreditUsage(usage); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, usage)
}

// CreateShortTermLoan stores a new short-term loan
func (h *Handler) CreateShortTermLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		MonthlyPayment  int64  `json:"monthly_payment"`
		RemainingMonths int    `json:"remaining_months"`
		PaymentDay      int    `json:"payment_day"`
		StartDate       string `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	loan := &models.ShortTermLoan{
		Name:            req.Name,
		MonthlyPayment:  req.MonthlyPayment,
		RemainingMonths: req.RemainingMonths,
		PaymentDay:      req.PaymentDay,
		StartDate:       startDate,
	}
	if err := h.svc.AddShortTermLoan(loan); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// ---- helpers ----

func monthParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	month, err := utils.ParseMonth(mux.Vars(r)["month"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return time.Time{}, false
	}
	return month, true
}

func updateParam(r *http.Request) bool {
	return r.URL.Query().Get("update") == "true"
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD format", s)
	}
	return t.UTC(), nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
