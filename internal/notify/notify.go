package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Sekine53629/household-finance/internal/config"
	"github.com/Sekine53629/household-finance/internal/models"
)

// Sender delivers risk alerts via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Configured reports whether SMTP delivery is set up.
func (s *Sender) Configured() bool {
	return s.cfg.SMTPHost != "" && s.cfg.SenderEmail != "" && s.cfg.AlertEmail != ""
}

// SendRiskAlert mails a summary of a month whose cash flow was
// classified as danger.
func (s *Sender) SendRiskAlert(month time.Time, cashflow *models.MonthlyCashFlow) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AlertEmail}
	e.Subject = fmt.Sprintf("Cash flow alert for %s", month.Format("2006-01"))

	body := fmt.Sprintf(
		"Cash flow for %s was classified as %s.\n\n", month.Format("January 2006"), cashflow.RiskLevel,
	)
	body += fmt.Sprintf(
		"Total income:  %d\n"+
			"Total expense: %d\n"+
			"Net cash flow: %d\n",
		cashflow.TotalIncome, cashflow.TotalExpense, cashflow.NetCashflow,
	)
	if cashflow.RiskMessage != "" {
		body += "\n" + cashflow.RiskMessage + "\n"
	}
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send risk alert to %s: %v", s.cfg.AlertEmail, err)
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	s.logger.Infof("Risk alert sent to %s: %s", s.cfg.AlertEmail, e.Subject)
	return nil
}
