package main

import (
	"fmt"
	"os"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newAddSalaryCmd() *cobra.Command {
	var (
		month               string
		baseSalary          int64
		positionAllowance   int64
		housingAllowance    int64
		overtimeMinutes     int64
		overtimePay         int64
		commutingAllowance  int64
		healthInsurance     int64
		pensionInsurance    int64
		employmentInsurance int64
		incomeTax           int64
		residentTax         int64
		memo                string
	)
	cmd := &cobra.Command{
		Use:   "add-salary",
		Short: "Record or update a month's payslip",
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

			salary, err := svc.SalaryForUpdate(m)
			if err != nil {
				return err
			}
			salary.BaseSalary = baseSalary
			salary.PositionAllowance = positionAllowance
			salary.HousingAllowance = housingAllowance
			salary.OvertimeMinutes = overtimeMinutes
			salary.OvertimePay = overtimePay
			salary.CommutingAllowance = commutingAllowance
			salary.HealthInsurance = healthInsurance
			salary.PensionInsurance = pensionInsurance
			salary.EmploymentInsurance = employmentInsurance
			salary.MonthlyIncomeTax = incomeTax
			salary.ResidentTax = residentTax
			if memo != "" {
				salary.Memo = memo
			}
			if err := svc.SaveSalary(salary); err != nil {
				return err
			}
			fmt.Printf("Saved payslip for %s (net %d)\n",
				salary.YearMonth.Format("2006-01"), salary.ActualPayment)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "target month as YYYY-MM (default: current month)")
	cmd.Flags().Int64Var(&baseSalary, "base-salary", 0, "base salary")
	cmd.Flags().Int64Var(&positionAllowance, "position-allowance", 0, "position allowance")
	cmd.Flags().Int64Var(&housingAllowance, "housing-allowance", 0, "housing allowance")
	cmd.Flags().Int64Var(&overtimeMinutes, "overtime-minutes", 0, "overtime worked, in minutes")
	cmd.Flags().Int64Var(&overtimePay, "overtime-pay", 0, "overtime pay")
	cmd.Flags().Int64Var(&commutingAllowance, "commuting-allowance", 0, "commuting allowance")
	cmd.Flags().Int64Var(&healthInsurance, "health-insurance", 0, "health insurance deduction")
	cmd.Flags().Int64Var(&pensionInsurance, "pension-insurance", 0, "pension insurance deduction")
	cmd.Flags().Int64Var(&employmentInsurance, "employment-insurance", 0, "employment insurance deduction")
	cmd.Flags().Int64Var(&incomeTax, "income-tax", 0, "monthly income tax")
	cmd.Flags().Int64Var(&residentTax, "resident-tax", 0, "resident tax")
	cmd.Flags().StringVar(&memo, "memo", "", "free-form note")
	cmd.MarkFlagRequired("base-salary")
	return cmd
}

func newShowSalaryCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "show-salary",
		Short: "Print a month's payslip",
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

			salary, err := svc.SalaryForMonth(m)
			if err != nil {
				return err
			}
			printSalary(salary)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "target month as YYYY-MM (default: current month)")
	return cmd
}

func printSalary(s *models.SalaryRecord) {
	fmt.Printf("Payslip %s\n", s.YearMonth.Format("2006-01"))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Item", "Amount"})
	table.Append([]string{"Base salary", formatYen(s.BaseSalary)})
	table.Append([]string{"Position allowance", formatYen(s.PositionAllowance)})
	table.Append([]string{"Housing allowance", formatYen(s.HousingAllowance)})
	table.Append([]string{"Overtime pay", formatYen(s.OvertimePay)})
	table.Append([]string{"Commuting allowance", formatYen(s.CommutingAllowance)})
	table.Append([]string{"Total payment", formatYen(s.TotalPayment)})
	table.Append([]string{"Health insurance", formatYen(s.HealthInsurance)})
	table.Append([]string{"Pension insurance", formatYen(s.PensionInsurance)})
	table.Append([]string{"Employment insurance", formatYen(s.EmploymentInsurance)})
	table.Append([]string{"Income tax", formatYen(s.MonthlyIncomeTax)})
	table.Append([]string{"Resident tax", formatYen(s.ResidentTax)})
	table.Append([]string{"Total deduction", formatYen(s.TotalDeduction)})
	table.Append([]string{"Net payment", formatYen(s.ActualPayment)})
	table.Render()
	if s.Memo != "" {
		fmt.Printf("Memo: %s\n", s.Memo)
	}
}
