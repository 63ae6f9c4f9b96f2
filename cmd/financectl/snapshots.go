package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newShowScheduleCmd() *cobra.Command {
	var (
		month  string
		update bool
	)
	cmd := &cobra.Command{
		Use:   "show-schedule",
		Short: "Print a month's payment schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthFlag(month)
			if err != nil {
				return err
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			schedule, err := svc.ScheduleForMonth(m, update)
			if err != nil {
				return err
			}
			printSchedule(schedule)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "target month as YYYY-MM (default: current month)")
	cmd.Flags().BoolVar(&update, "update", false, "recompute from raw records before printing")
	return cmd
}

func newShowCashFlowCmd() *cobra.Command {
	var (
		month  string
		update bool
	)
	cmd := &cobra.Command{
		Use:   "show-cashflow",
		Short: "Print a month's cash flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthFlag(month)
			if err != nil {
				return err
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			cashflow, err := svc.CashFlowForMonth(m, update)
			if err != nil {
				return err
			}
			printCashFlow(cashflow)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "target month as YYYY-MM (default: current month)")
	cmd.Flags().BoolVar(&update, "update", false, "recompute from raw records before printing")
	return cmd
}

func newShowBalanceSheetCmd() *cobra.Command {
	var (
		month  string
		update bool
	)
	cmd := &cobra.Command{
		Use:   "show-balance-sheet",
		Short: "Print a month's balance sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthFlag(month)
			if err != nil {
				return err
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			sheet, err := svc.BalanceSheetForMonth(m, update)
			if err != nil {
				return err
			}
			printBalanceSheet(sheet)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "target month as YYYY-MM (default: current month)")
	cmd.Flags().BoolVar(&update, "update", false, "recompute from raw records before printing")
	return cmd
}

func newRecomputeCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild all three snapshots for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthFlag(month)
			if err != nil {
				return err
			}
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			snapshots, err := svc.RecomputeMonth(m)
			if err != nil {
				return err
			}
			fmt.Printf("Recomputed %s\n", m.Format("2006-01"))
			printSchedule(snapshots.Schedule)
			printCashFlow(snapshots.CashFlow)
			printBalanceSheet(snapshots.BalanceSheet)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "target month as YYYY-MM (default: current month)")
	return cmd
}

func printSchedule(p *models.PaymentSchedule) {
	fmt.Printf("\nPayment schedule %s  risk=%s\n", p.YearMonth.Format("2006-01"), colorRisk(p.RiskLevel))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Payee", "Amount"})
	for _, name := range sortedKeys(p.CreditCardPayments) {
		table.Append([]string{name, formatYen(p.CreditCardPayments[name])})
	}
	for _, name := range sortedKeys(p.LoanPayments) {
		table.Append([]string{name, formatYen(p.LoanPayments[name])})
	}
	table.SetFooter([]string{"Total", formatYen(p.TotalPayment)})
	table.Render()
}

func printCashFlow(c *models.MonthlyCashFlow) {
	fmt.Printf("\nCash flow %s  risk=%s\n", c.YearMonth.Format("2006-01"), colorRisk(c.RiskLevel))
	if c.RiskMessage != "" {
		fmt.Println(c.RiskMessage)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Item", "Amount"})
	table.Append([]string{"Salary (net)", formatYen(c.SalaryNet)})
	table.Append([]string{"Bonus", formatYen(c.Bonus)})
	table.Append([]string{"Total income", formatYen(c.TotalIncome)})
	table.Append([]string{"Fixed expenses", formatYen(c.TotalFixedExpense)})
	table.Append([]string{"Credit card debits", formatYen(c.TotalCreditPayment)})
	table.Append([]string{"Variable expenses", formatYen(c.TotalVariableExpense)})
	table.Append([]string{"Total expense", formatYen(c.TotalExpense)})
	table.Append([]string{"Net cash flow", formatYen(c.NetCashflow)})
	table.Append([]string{"Closing balance", formatYen(c.ClosingBalance)})
	table.Append([]string{"Expense ratio", c.ExpenseRatio().StringFixed(1) + "%"})
	table.Render()
}

func printBalanceSheet(b *models.MonthlyBalanceSheet) {
	fmt.Printf("\nBalance sheet %s  health=%s\n", b.YearMonth.Format("2006-01"), colorRisk(b.FinancialHealth))
	if b.HealthMessage != "" {
		fmt.Println(b.HealthMessage)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Item", "Amount"})
	table.Append([]string{"Current assets", formatYen(b.CurrentAssets)})
	table.Append([]string{"Investment assets", formatYen(b.InvestmentAssets)})
	table.Append([]string{"Fixed assets", formatYen(b.FixedAssets)})
	table.Append([]string{"Total assets", formatYen(b.TotalAssets)})
	table.Append([]string{"Current liabilities", formatYen(b.CurrentLiabilities)})
	table.Append([]string{"Long-term liabilities", formatYen(b.LongTermLiabilities)})
	table.Append([]string{"Total liabilities", formatYen(b.TotalLiabilities)})
	table.Append([]string{"Net worth", formatYen(b.NetWorth)})
	table.Append([]string{"Debt ratio", b.DebtRatio.StringFixed(1) + "%"})
	table.Append([]string{"Liquidity ratio", b.LiquidityRatio.StringFixed(1) + "%"})
	table.Render()
}

func sortedKeys(m models.PaymentBreakdown) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
