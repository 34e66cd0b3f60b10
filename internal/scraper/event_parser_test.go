package scraper

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseEventText(t *testing.T) {
	blob := `<div class="eventText"><b>DROIT CIVIL</b><br>Salle AR104<br>DUPONT J.<br>Groupe A<br>Groupe B<br>CM amphi</div>`

	rec, err := ParseEventText(blob)
	if err != nil {
		t.Fatalf("ParseEventText() error = %v", err)
	}

	if rec.Course != "DROIT CIVIL" {
		t.Errorf("Course = %q, want %q", rec.Course, "DROIT CIVIL")
	}
	if rec.Room != "Salle AR104" {
		t.Errorf("Room = %q, want %q", rec.Room, "Salle AR104")
	}
	if rec.Instructor != "DUPONT J." {
		t.Errorf("Instructor = %q, want %q", rec.Instructor, "DUPONT J.")
	}
	if want := []string{"Groupe A", "Groupe B"}; !reflect.DeepEqual(rec.Groups, want) {
		t.Errorf("Groups = %v, want %v", rec.Groups, want)
	}
	if rec.Notes != "CM amphi" {
		t.Errorf("Notes = %q, want %q", rec.Notes, "CM amphi")
	}
}

func TestParseEventTextNoGroups(t *testing.T) {
	blob := `<div class="eventText"><b>ANGLAIS</b><br>Salle MH101<br>SMITH A.<br>TD</div>`

	rec, err := ParseEventText(blob)
	if err != nil {
		t.Fatalf("ParseEventText() error = %v", err)
	}

	if len(rec.Groups) != 0 {
		t.Errorf("Groups = %v, want empty", rec.Groups)
	}
	if rec.Notes != "TD" {
		t.Errorf("Notes = %q, want %q", rec.Notes, "TD")
	}
}

func TestParseEventTextTooFewLines(t *testing.T) {
	blobs := []string{
		`<div class="eventText"><b>DROIT</b><br>Salle<br>Prof</div>`,
		`<div class="eventText"><b>DROIT</b></div>`,
		`<div class="eventText"></div>`,
		``,
	}

	for _, blob := range blobs {
		_, err := ParseEventText(blob)
		if err == nil {
			t.Errorf("ParseEventText(%q) expected error, got nil", blob)
			continue
		}
		if !errors.Is(err, ErrMalformedEventText) {
			t.Errorf("ParseEventText(%q) error = %v, want ErrMalformedEventText", blob, err)
		}
	}
}

func TestParseEventTextNormalizesLines(t *testing.T) {
	// NBSP и лишние пробелы в строках портала — норма, не ошибка.
	blob := `<div class="eventText"><b> DROIT&nbsp;CIVIL </b><br>Salle&nbsp;&nbsp;AR104<br>DUPONT   J.<br><br>CM</div>`

	rec, err := ParseEventText(blob)
	if err != nil {
		t.Fatalf("ParseEventText() error = %v", err)
	}

	if rec.Course != "DROIT CIVIL" {
		t.Errorf("Course = %q, want %q", rec.Course, "DROIT CIVIL")
	}
	if rec.Room != "Salle AR104" {
		t.Errorf("Room = %q, want %q", rec.Room, "Salle AR104")
	}
	if rec.Instructor != "DUPONT J." {
		t.Errorf("Instructor = %q, want %q", rec.Instructor, "DUPONT J.")
	}
}

func TestParseEventTextBareFragment(t *testing.T) {
	// Без обёртки div и маркера: так блоб выглядит, если браузерный слой
	// отдал innerHTML вместо outerHTML.
	blob := `<b>ECONOMIE</b><br>Salle ME201<br>MARTIN P.<br>examen`

	rec, err := ParseEventText(blob)
	if err != nil {
		t.Fatalf("ParseEventText() error = %v", err)
	}
	if rec.Course != "ECONOMIE" {
		t.Errorf("Course = %q, want %q", rec.Course, "ECONOMIE")
	}
	if rec.Notes != "examen" {
		t.Errorf("Notes = %q, want %q", rec.Notes, "examen")
	}
}
