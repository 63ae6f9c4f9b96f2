package main

import (
	"strconv"

	"github.com/Sekine53629/household-finance/internal/models"
	"github.com/fatih/color"
)

// formatYen renders a whole-yen amount with thousands separators.
func formatYen(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// colorRisk colors a risk or health level for terminal output.
func colorRisk(level string) string {
	switch level {
	case models.RiskDanger:
		return color.New(color.FgRed, color.Bold).Sprint(level)
	case models.RiskWarning:
		return color.New(color.FgYellow).Sprint(level)
	case models.HealthExcellent:
		return color.New(color.FgGreen, color.Bold).Sprint(level)
	case models.RiskSafe, models.HealthGood:
		return color.New(color.FgGreen).Sprint(level)
	default:
		return level
	}
}
