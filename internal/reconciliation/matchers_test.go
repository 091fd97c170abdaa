package reconciliation

import (
	"testing"
)

func TestExactMatcher(t *testing.T) {
	m := NewExactMatcher()

	if m.Name() != "exact" {
		t.Errorf("expected name 'exact', got %s", m.Name())
	}

	a := txn(t, "2020-12-04", "Tecnologia", "16.00", "Bitbucket")

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "identical", date: "2020-12-04", want: true},
		{name: "next day", date: "2020-12-05", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := txn(t, tt.date, "Tecnologia", "16.00", "Bitbucket")
			if got := m.Match(a, b); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToleranceMatcher(t *testing.T) {
	m := NewToleranceMatcher(1)

	if m.Name() != "tolerance" {
		t.Errorf("expected name 'tolerance', got %s", m.Name())
	}
	if m.Days() != 1 {
		t.Errorf("expected 1 day tolerance, got %d", m.Days())
	}

	a := txn(t, "2020-12-04", "Tecnologia", "16.00", "Bitbucket")

	tests := []struct {
		name string
		b    []string
		want bool
	}{
		{name: "same day", b: []string{"2020-12-04", "Tecnologia", "16.00", "Bitbucket"}, want: true},
		{name: "one day off", b: []string{"2020-12-05", "Tecnologia", "16.00", "Bitbucket"}, want: true},
		{name: "two days off", b: []string{"2020-12-06", "Tecnologia", "16.00", "Bitbucket"}, want: false},
		{name: "amount differs", b: []string{"2020-12-04", "Tecnologia", "16.01", "Bitbucket"}, want: false},
		{name: "equivalent amount form", b: []string{"2020-12-05", "Tecnologia", "16.0", "Bitbucket"}, want: true},
		{name: "department differs", b: []string{"2020-12-04", "Jurídico", "16.00", "Bitbucket"}, want: false},
		{name: "beneficiary differs", b: []string{"2020-12-04", "Tecnologia", "16.00", "GitHub"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := txn(t, tt.b[0], tt.b[1], tt.b[2], tt.b[3])
			if got := m.Match(a, b); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}
