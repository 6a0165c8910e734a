package store

import (
	"reflect"
	"testing"
)

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		delim byte
		n     int
		want  []string
	}{
		{"exact", "a,b,c", ',', 3, []string{"a", "b", "c"}},
		{"short line", "a,b", ',', 3, []string{"a", "b"}},
		{"trailing delimiter fills last slot", "a,b,", ',', 3, []string{"a", "b", ""}},
		{"trailing delimiter short", "a,b,", ',', 4, []string{"a", "b", ""}},
		{"empty line", "", ',', 3, []string{""}},
		{"quoted delimiter in first field", `"x,y",z`, ',', 2, []string{"x,y", "z"}},
		{"last field absorbs remainder", "a,b,c,d", ',', 3, []string{"a", "b", "c,d"}},
		{"last field keeps quotes", `a,"b,c"`, ',', 2, []string{"a", `"b,c"`}},
		{"doubled quote not unescaped", `a""b,c`, ',', 2, []string{"ab", "c"}},
		{"unterminated quote", `"a,b`, ',', 2, []string{"a,b"}},
		{"single column keeps first token", "a,b,c", ',', 1, []string{"a"}},
		{"alternate delimiter", "a;b,c", ';', 2, []string{"a", "b,c"}},
		{"empty middle cells", "a,,c", ',', 3, []string{"a", "", "c"}},
		{"only quotes", `""`, ',', 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRow(tt.line, tt.delim, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitRow(%q, %q, %d) = %q, want %q", tt.line, tt.delim, tt.n, got, tt.want)
			}
		})
	}
}

func TestSplitRow_NonPositiveCount(t *testing.T) {
	if got := SplitRow("a,b", ',', 0); got != nil {
		t.Errorf("SplitRow(n=0) = %q, want nil", got)
	}
}

func TestSplitRow_NeverExceedsCount(t *testing.T) {
	lines := []string{"a,b,c,d,e", `"a,b",c,d`, ",,,,,", "x"}
	for _, line := range lines {
		for n := 1; n <= 4; n++ {
			if got := SplitRow(line, ',', n); len(got) > n {
				t.Errorf("SplitRow(%q, %d) returned %d cells", line, n, len(got))
			}
		}
	}
}

func TestJoinRow(t *testing.T) {
	if got := JoinRow([]string{"a", "", "c"}, ','); got != "a,,c" {
		t.Errorf("JoinRow() = %q, want %q", got, "a,,c")
	}
}
