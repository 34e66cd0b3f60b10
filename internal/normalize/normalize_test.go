package normalize

import (
	"reflect"
	"testing"
)

func TestCleanLine(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  DROIT CIVIL  ", "DROIT CIVIL"},
		{"Salle   AR104", "Salle AR104"},
		{"\t\n", ""},
		{"одна строка", "одна строка"},
	}

	for _, tt := range tests {
		if got := CleanLine(tt.input); got != tt.expected {
			t.Errorf("CleanLine(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSplitLines(t *testing.T) {
	input := "DROIT CIVIL\n\n  Salle AR104  \nDUPONT J.\n"
	want := []string{"DROIT CIVIL", "Salle AR104", "DUPONT J."}

	if got := SplitLines(input); !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines() = %v, want %v", got, want)
	}
}
