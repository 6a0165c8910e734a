package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// NormalizeNumeric Tests
// ----------------------------------------------------------------------------

func TestNormalizeNumeric(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{name: "positive integer", input: "123", wantOK: true, want: "123"},
		{name: "zero", input: "0", wantOK: true, want: "0"},
		{name: "negative integer", input: "-456", wantOK: true, want: "-456"},
		{name: "decimal number", input: "123.45", wantOK: true, want: "123.45"},
		{name: "trailing zeros trimmed", input: "1234.50", wantOK: true, want: "1234.5"},
		{name: "dollar and thousands", input: "$1,234.50", wantOK: true, want: "1234.5"},
		{name: "euro", input: "€99", wantOK: true, want: "99"},
		{name: "accounting negative", input: "(45.00)", wantOK: true, want: "-45"},
		{name: "surrounding whitespace", input: "  42  ", wantOK: true, want: "42"},
		{name: "empty", input: "", wantOK: false},
		{name: "letters", input: "abc", wantOK: false},
		{name: "two points", input: "1.2.3", wantOK: false},
		{name: "sign only", input: "-", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeNumeric(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeNumeric(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizeNumeric(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeInteger(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{"15", true, "15"},
		{"1,200", true, "1200"},
		{"-3", true, "-3"},
		{"2.5", false, ""},
		{"x", false, ""},
	}

	for _, tt := range tests {
		got, ok := NormalizeInteger(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NormalizeInteger(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

// ----------------------------------------------------------------------------
// NormalizeDate / NormalizeTime Tests
// ----------------------------------------------------------------------------

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{"2024-03-05", true, "2024-03-05"},
		{"2024/03/05", true, "2024-03-05"},
		{"3/5/2024", true, "2024-03-05"},
		{"03-05-2024", true, "2024-03-05"},
		{"Mar 5, 2024", true, "2024-03-05"},
		{"5 Mar 2024", true, "2024-03-05"},
		{"20240305", true, "2024-03-05"},
		{"3/5/24", true, "2024-03-05"},
		{"1/1/99", true, "1999-01-01"},
		{"", false, ""},
		{"tomorrow", false, ""},
		{"2024-13-01", false, ""},
	}

	for _, tt := range tests {
		got, ok := NormalizeDate(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{"09:30", true, "09:30"},
		{"19:30:15", true, "19:30"},
		{"7:30 PM", true, "19:30"},
		{"7:30am", true, "07:30"},
		{"0930", true, "09:30"},
		{"25:00", false, ""},
		{"noon", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		got, ok := NormalizeTime(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NormalizeTime(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

// ----------------------------------------------------------------------------
// NormalizeBool Tests
// ----------------------------------------------------------------------------

func TestNormalizeBool(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{"yes", true, "true"},
		{"Y", true, "true"},
		{"TRUE", true, "true"},
		{"1", true, "true"},
		{"no", true, "false"},
		{"f", true, "false"},
		{" 0 ", true, "false"},
		{"maybe", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		got, ok := NormalizeBool(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NormalizeBool(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell / MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  plain  ", "plain"},
		{`="00123"`, "00123"},
		{"=SUM", "SUM"},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"Team_ID", " team_name ", "team_id"})

	if got, ok := idx["team_id"]; !ok || got != 0 {
		t.Errorf("idx[team_id] = %d, %v; want 0, true (first occurrence wins)", got, ok)
	}
	if got := idx["team_name"]; got != 1 {
		t.Errorf("idx[team_name] = %d, want 1", got)
	}
	if len(idx) != 2 {
		t.Errorf("len(idx) = %d, want 2", len(idx))
	}
}
