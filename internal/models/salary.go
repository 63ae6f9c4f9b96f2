package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryRecord is one month's payslip. Column layout mirrors the payslip
// itself: payment items, intermediate values, deduction items, results.
// CalculateAll fills every derived field before the record is saved.
type SalaryRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	YearMonth time.Time `json:"year_month" gorm:"uniqueIndex;not null"`

	// Payment items.
	BaseSalary                  int64 `json:"base_salary" gorm:"not null;default:0"`
	PositionAllowance           int64 `json:"position_allowance" gorm:"not null;default:0"`
	QualificationAllowance      int64 `json:"qualification_allowance" gorm:"not null;default:0"`
	StoreQualificationAllowance int64 `json:"store_qualification_allowance" gorm:"not null;default:0"`
	PharmacistRegionalAllowance int64 `json:"pharmacist_regional_allowance" gorm:"not null;default:0"`
	RelocationAllowance         int64 `json:"relocation_allowance" gorm:"not null;default:0"`
	HousingAllowance            int64 `json:"housing_allowance" gorm:"not null;default:0"`
	AdjustmentAllowance         int64 `json:"adjustment_allowance" gorm:"not null;default:0"`
	FamilyAllowance             int64 `json:"family_allowance" gorm:"not null;default:0"`

	// Hourly and overtime items.
	BaseHourlyWage  int64           `json:"base_hourly_wage" gorm:"not null;default:0"`
	OvertimeMinutes int64           `json:"overtime_minutes" gorm:"not null;default:0"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours" gorm:"type:decimal(5,2);not null;default:0"`
	OvertimePay     int64           `json:"overtime_pay" gorm:"not null;default:0"`

	NightWorkMinutes int64           `json:"night_work_minutes" gorm:"not null;default:0"`
	NightWorkPay     int64           `json:"night_work_pay" gorm:"not null;default:0"`
	HolidayWorkHours decimal.Decimal `json:"holiday_work_hours" gorm:"type:decimal(5,2);not null;default:0"`
	HolidayWorkPay   int64           `json:"holiday_work_pay" gorm:"not null;default:0"`

	// Other payment items.
	ParkingFee                int64 `json:"parking_fee" gorm:"not null;default:0"`
	CommutingAllowance        int64 `json:"commuting_allowance" gorm:"not null;default:0"`
	TaxableCommutingAllowance int64 `json:"taxable_commuting_allowance" gorm:"not null;default:0"`
	PaymentAdjustment         int64 `json:"payment_adjustment" gorm:"not null;default:0"`
	TaxablePayment            int64 `json:"taxable_payment" gorm:"not null;default:0"`

	// Derived: sum of every payment item.
	TotalPayment int64 `json:"total_payment" gorm:"not null;default:0"`

	// Intermediate values used by the payroll office.
	DependentFamilyCount    int64 `json:"dependent_family_count" gorm:"not null;default:0"`
	InsuranceStandardSalary int64 `json:"insurance_standard_salary" gorm:"not null;default:0"`

	// Deduction items: social insurance.
	HealthInsurance      int64 `json:"health_insurance" gorm:"not null;default:0"`
	FireInsurance        int64 `json:"fire_insurance" gorm:"not null;default:0"`
	PensionInsurance     int64 `json:"pension_insurance" gorm:"not null;default:0"`
	EmploymentInsurance  int64 `json:"employment_insurance" gorm:"not null;default:0"`
	MatchingContribution int64 `json:"matching_contribution" gorm:"not null;default:0"`

	// Deduction items: taxes.
	TaxableAmount    int64 `json:"taxable_amount" gorm:"not null;default:0"`
	MonthlyIncomeTax int64 `json:"monthly_income_tax" gorm:"not null;default:0"`
	ResidentTax      int64 `json:"resident_tax" gorm:"not null;default:0"`

	// Deduction items: other.
	MutualAid               int64 `json:"mutual_aid" gorm:"not null;default:0"`
	UnionFee                int64 `json:"union_fee" gorm:"not null;default:0"`
	DamageInsurance         int64 `json:"damage_insurance" gorm:"not null;default:0"`
	LTDInsurance            int64 `json:"ltd_insurance" gorm:"not null;default:0"`
	CompanyHousingDeduction int64 `json:"company_housing_deduction" gorm:"not null;default:0"`
	YearEndAdjustment       int64 `json:"year_end_adjustment" gorm:"not null;default:0"`

	// Derived: sum of every deduction item.
	TotalDeduction int64 `json:"total_deduction" gorm:"not null;default:0"`

	// Derived results.
	ActualPayment int64 `json:"actual_payment" gorm:"not null;default:0"`
	NetPayment    int64 `json:"net_payment" gorm:"not null;default:0"`
	Difference    int64 `json:"difference" gorm:"not null;default:0"`

	Memo      string    `json:"memo" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}

// CalculateAll recomputes every derived payslip field.
func (s *SalaryRecord) CalculateAll() {
	if s.OvertimeMinutes > 0 {
		s.OvertimeHours = decimal.NewFromInt(s.OvertimeMinutes).
			Div(decimal.NewFromInt(60)).Round(2)
	}

	s.TotalPayment = s.BaseSalary +
		s.PositionAllowance +
		s.QualificationAllowance +
		s.StoreQualificationAllowance +
		s.PharmacistRegionalAllowance +
		s.RelocationAllowance +
		s.HousingAllowance +
		s.AdjustmentAllowance +
		s.FamilyAllowance +
		s.OvertimePay +
		s.NightWorkPay +
		s.HolidayWorkPay +
		s.ParkingFee +
		s.CommutingAllowance +
		s.TaxableCommutingAllowance +
		s.PaymentAdjustment +
		s.TaxablePayment

	// Taxable amount excludes the non-taxable share of the commuting
	// allowance.
	s.TaxableAmount = s.TotalPayment - (s.CommutingAllowance - s.TaxableCommutingAllowance)

	s.TotalDeduction = s.HealthInsurance +
		s.FireInsurance +
		s.PensionInsurance +
		s.EmploymentInsurance +
		s.MatchingContribution +
		s.MonthlyIncomeTax +
		s.ResidentTax +
		s.MutualAid +
		s.UnionFee +
		s.DamageInsurance +
		s.LTDInsurance +
		s.CompanyHousingDeduction +
		s.YearEndAdjustment

	s.ActualPayment = s.TotalPayment - s.TotalDeduction
	s.NetPayment = s.ActualPayment
	s.Difference = s.ActualPayment - s.NetPayment
}
