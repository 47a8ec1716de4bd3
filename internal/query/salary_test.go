package query

import "testing"

func TestAnnualMultiplier(t *testing.T) {
	tests := []struct {
		mode     PayMode
		expected float64
	}{
		{PayHourly, 2080},
		{PayDaily, 260},
		{PayWeekly, 52},
		{PayMonthly, 12},
		{PayYearly, 1},
		{PayMode("stipend"), 1}, // unknown falls back to yearly
		{PayMode(""), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := AnnualMultiplier(tt.mode); got != tt.expected {
				t.Errorf("AnnualMultiplier(%q) = %v, want %v", tt.mode, got, tt.expected)
			}
		})
	}
}

func TestAnnualize(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		mode     PayMode
		expected float64
	}{
		{"hourly 50", 50, PayHourly, 104000},
		{"daily 400", 400, PayDaily, 104000},
		{"weekly 2000", 2000, PayWeekly, 104000},
		{"monthly 8000", 8000, PayMonthly, 96000},
		{"yearly passthrough", 120000, PayYearly, 120000},
		{"zero amount", 0, PayHourly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Annualize(tt.amount, tt.mode); got != tt.expected {
				t.Errorf("Annualize(%v, %q) = %v, want %v", tt.amount, tt.mode, got, tt.expected)
			}
		})
	}
}
