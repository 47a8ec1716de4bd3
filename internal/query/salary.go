package query

// PayMode is the unit a job's salary amount is quoted in.
type PayMode string

const (
	PayHourly  PayMode = "hourly"
	PayDaily   PayMode = "daily"
	PayWeekly  PayMode = "weekly"
	PayMonthly PayMode = "monthly"
	PayYearly  PayMode = "yearly"
)

// Annual multipliers: 40h × 52 weeks, 5 days × 52 weeks.
const (
	hoursPerYear  = 2080
	daysPerYear   = 260
	weeksPerYear  = 52
	monthsPerYear = 12
)

// AnnualMultiplier returns the factor that converts an amount in the given
// pay mode to a yearly equivalent. Unknown modes are treated as yearly.
func AnnualMultiplier(mode PayMode) float64 {
	switch mode {
	case PayHourly:
		return hoursPerYear
	case PayDaily:
		return daysPerYear
	case PayWeekly:
		return weeksPerYear
	case PayMonthly:
		return monthsPerYear
	default:
		return 1
	}
}

// Annualize converts a salary amount to its yearly equivalent so that
// min/max salary filters compare on one scale.
func Annualize(amount float64, mode PayMode) float64 {
	return amount * AnnualMultiplier(mode)
}

// annualSalaryExpr is the SQL mirror of Annualize, evaluated against the
// jobs row inside the WHERE clause. It is never selected: the annualized
// value exists only for the comparison and is absent from every result row.
const annualSalaryExpr = `(j.salary_amount * CASE j.salary_mode
	WHEN 'hourly' THEN 2080
	WHEN 'daily' THEN 260
	WHEN 'weekly' THEN 52
	WHEN 'monthly' THEN 12
	ELSE 1 END)`
