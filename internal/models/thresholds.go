package models

// Thresholds holds the classification limits used by the monthly
// aggregators. Values come from configuration so they can be tuned
// without touching the evaluation logic.
type Thresholds struct {
	// Payment schedule: total monthly payment limits.
	SchedulePaymentWarning int64
	SchedulePaymentDanger  int64

	// Cash flow: closing balance floor and expense/income ratio ceiling.
	LowBalanceWarning   int64
	ExpenseRatioWarning int64

	// Balance sheet: debt ratio bands and liquidity ratio floor.
	DebtRatioWarning   int64
	DebtRatioDanger    int64
	LiquidityRatioWarn int64
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SchedulePaymentWarning: 100_000,
		SchedulePaymentDanger:  200_000,
		LowBalanceWarning:      100_000,
		ExpenseRatioWarning:    80,
		DebtRatioWarning:       50,
		DebtRatioDanger:        70,
		LiquidityRatioWarn:     100,
	}
}
