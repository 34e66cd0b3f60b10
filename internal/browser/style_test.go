package browser

import "testing"

func TestParseContainerStyle(t *testing.T) {
	style := "position: relative; overflow: hidden; width: 700px; height: 560px;"

	width, height, err := parseContainerStyle(style)
	if err != nil {
		t.Fatalf("parseContainerStyle() error = %v", err)
	}
	if width != 700 || height != 560 {
		t.Errorf("got %dx%d, want 700x560", width, height)
	}
}

func TestParseContainerStyleInvalid(t *testing.T) {
	if _, _, err := parseContainerStyle("display: none;"); err == nil {
		t.Errorf("expected error for style without dimensions")
	}
}

func TestParsePositionStyle(t *testing.T) {
	tests := []struct {
		style string
		x, y  int
	}{
		{"position: absolute; left: 250px; top: 100px; width: 99px;", 250, 100},
		{"position: absolute; left: 0px; top: 0px;", 0, 0},
		{"left: 250.5px; top: 100.25px;", 250, 100}, // дробные пиксели усекаются
	}

	for _, tt := range tests {
		x, y, err := parsePositionStyle(tt.style)
		if err != nil {
			t.Errorf("parsePositionStyle(%q) error = %v", tt.style, err)
			continue
		}
		if x != tt.x || y != tt.y {
			t.Errorf("parsePositionStyle(%q) = (%d,%d), want (%d,%d)", tt.style, x, y, tt.x, tt.y)
		}
	}
}

func TestParseHeightStyle(t *testing.T) {
	h, err := parseHeightStyle("height:60px")
	if err != nil {
		t.Fatalf("parseHeightStyle() error = %v", err)
	}
	if h != 60 {
		t.Errorf("got %d, want 60", h)
	}

	if _, err := parseHeightStyle("width:60px"); err == nil {
		t.Errorf("expected error for style without height")
	}
}
