package hotkey

import (
	"reflect"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		chord string
		want  []string
	}{
		{"Ctrl+Shift+Z", []string{"ctrl", "shift", "z"}},
		{"ctrl + alt + q", []string{"ctrl", "alt", "q"}},
		{"Control+Option+F12", []string{"ctrl", "alt", "f12"}},
		{"Win+Space", []string{"cmd", "space"}},
		{"Ctrl+Ctrl+1", []string{"ctrl", "1"}},
		{"F5", []string{"f5"}},
	}

	for _, tc := range tests {
		got, err := ParseChord(tc.chord)
		if err != nil {
			t.Errorf("ParseChord(%q) error: %v", tc.chord, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseChord(%q) = %v; want %v", tc.chord, got, tc.want)
		}
	}
}

func TestParseChord_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"Ctrl+Shift",
		"Ctrl++Z",
		"Ctrl+Z+X",
		"Ctrl+F25",
		"Ctrl+F01",
		"Ctrl+Banana",
	}

	for _, chord := range invalid {
		if got, err := ParseChord(chord); err == nil {
			t.Errorf("ParseChord(%q) = %v; want error", chord, got)
		}
	}
}

func TestNew_KeepsParsedKeys(t *testing.T) {
	l, err := New("Ctrl+Shift+Z")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	keys := l.Keys()
	keys[0] = "mutated"
	if l.Keys()[0] != "ctrl" {
		t.Error("Keys() exposed the internal slice")
	}

	if _, err := New("Shift"); err == nil {
		t.Error("New(\"Shift\") succeeded; want error")
	}
}
