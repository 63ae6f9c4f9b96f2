package main

import (
	"fmt"
	"time"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/spf13/cobra"
)

func newAddAssetCmd() *cobra.Command {
	var (
		name        string
		category    string
		value       int64
		cost        int64
		acquired    string
		institution string
		memo        string
	)
	cmd := &cobra.Command{
		Use:   "add-asset",
		Short: "Register an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			asset := &models.Asset{
				Name:         name,
				Category:     category,
				CurrentValue: value,
				Institution:  institution,
				Memo:         memo,
			}
			if cmd.Flags().Changed("cost") {
				asset.AcquisitionCost = &cost
			}
			if acquired != "" {
				d, err := time.Parse("2006-01-02", acquired)
				if err != nil {
					return fmt.Errorf("invalid --acquired date %q: %w", acquired, err)
				}
				asset.AcquisitionDate = &d
			}
			if err := svc.AddAsset(asset); err != nil {
				return err
			}
			fmt.Printf("Added asset %q (%s, %s)\n", asset.Name, asset.Category, formatYen(asset.CurrentValue))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&category, "category", models.AssetCategoryBank,
		"category: cash, bank, investment, real_estate, vehicle, other")
	cmd.Flags().Int64Var(&value, "value", 0, "current value")
	cmd.Flags().Int64Var(&cost, "cost", 0, "acquisition cost, for unrealized gain tracking")
	cmd.Flags().StringVar(&acquired, "acquired", "", "acquisition date as YYYY-MM-DD")
	cmd.Flags().StringVar(&institution, "institution", "", "holding institution")
	cmd.Flags().StringVar(&memo, "memo", "", "free-form note")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("value")
	return cmd
}

func newAddCreditCardCmd() *cobra.Command {
	var (
		name        string
		last4       string
		closingDay  int
		paymentDay  int
		bankAccount string
		limit       int64
	)
	cmd := &cobra.Command{
		Use:   "add-credit-card",
		Short: "Register a credit card and its billing cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService()
			if err != nil {
				return err
			}
			defer closeFn()

			card := &models.CreditCard{
				Name:            name,
				CardNumberLast4: last4,
				ClosingDay:      closingDay,
				PaymentDay:      paymentDay,
				BankAccount:     bankAccount,
			}
			if cmd.Flags().Changed("limit") {
				card.CreditLimit = &limit
			}
			if err := svc.AddCreditCard(card); err != nil {
				return err
			}
			fmt.Printf("Added card %q (closes on day %d, debits on day %d)\n",
				card.Name, card.ClosingDay, card.PaymentDay)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "card name")
	cmd.Flags().StringVar(&last4, "last4", "", "last four digits of the card number")
	cmd.Flags().IntVar(&closingDay, "closing-day", 15, "statement closing day of month")
	cmd.Flags().IntVar(&paymentDay, "payment-day", 10, "bank debit day of month")
	cmd.Flags().StringVar(&bankAccount, "bank-account", "", "debit account")
	cmd.Flags().Int64Var(&limit, "limit", 0, "credit limit")
	cmd.MarkFlagRequired("name")
	return cmd
}
