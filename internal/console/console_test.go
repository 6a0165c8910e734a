package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/JonMunkholm/esports/internal/store"
)

func TestValidateInt(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"42", nil},
		{"-7", nil},
		{"+3", nil},
		{" 12 ", nil},
		{"", ErrEmptyInput},
		{"-", ErrNotInteger},
		{"1.5", ErrNotInteger},
		{"12a", ErrNotInteger},
		{"--1", ErrNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateInt(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateInt(%q) = %v, want %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFloat(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"3.14", nil},
		{"-0.5", nil},
		{".5", nil},
		{"5.", nil},
		{"+10", nil},
		{"", ErrEmptyInput},
		{".", ErrNotNumber},
		{"-.", ErrNotNumber},
		{"+", ErrNotNumber},
		{"1.2.3", ErrNotNumber},
		{"1e5", ErrNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateFloat(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFloat(%q) = %v, want %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestChoose(t *testing.T) {
	options := []string{"View", "Search", "Back"}
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1", 1, true},
		{" 3 ", 3, true},
		{"search", 2, true},
		{"BACK", 3, true},
		{"0", 0, false},
		{"4", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"sort", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Choose(tt.in, options)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Choose(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPrompter_Reprompts(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\n\n-12\n1.2.3\n2.5\n\nname\nmaybe\nYes\n"), &out)

	n, err := p.Int("int: ")
	if err != nil || n != -12 {
		t.Fatalf("Int() = %d, %v, want -12", n, err)
	}
	f, err := p.Float("float: ")
	if err != nil || f != 2.5 {
		t.Fatalf("Float() = %v, %v, want 2.5", f, err)
	}
	s, err := p.String("name: ")
	if err != nil || s != "name" {
		t.Fatalf("String() = %q, %v, want name", s, err)
	}
	ok, err := p.Confirm("sure?")
	if err != nil || !ok {
		t.Fatalf("Confirm() = %v, %v, want true", ok, err)
	}

	if got := strings.Count(out.String(), "Please try again"); got != 5 {
		t.Errorf("retry messages = %d, want 5\n%s", got, out.String())
	}
}

func TestPrompter_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("x\n"), io.Discard)
	if _, err := p.Int("n: "); !errors.Is(err, io.EOF) {
		t.Errorf("Int() error = %v, want io.EOF", err)
	}
}

func TestPrompter_Menu(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("9\nreports\n"), &out)

	got, err := p.Menu("Main Menu", []string{"Tables", "Reports", "Quit"})
	if err != nil {
		t.Fatalf("Menu() error = %v", err)
	}
	if got != 2 {
		t.Errorf("Menu() = %d, want 2", got)
	}
	if !strings.Contains(out.String(), "  2. Reports") || !strings.Contains(out.String(), "Invalid input") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRenderTable(t *testing.T) {
	tbl := store.New([]string{"team_id", "team_name"},
		[]string{"T001", "Alpha"},
		[]string{"T002", "A very long team name indeed"},
	)

	got := RenderTable(tbl, 10)
	for _, want := range []string{"team_id", "Alpha", "A very lo…", "2 row(s)"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderTable() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "indeed") {
		t.Errorf("RenderTable() did not truncate:\n%s", got)
	}

	if got := RenderTable(nil, 10); got != "No data to display.\n" {
		t.Errorf("RenderTable(nil) = %q", got)
	}
}
