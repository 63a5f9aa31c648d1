package utils

import "testing"

func TestParseHourMinute(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expHour    int
		expMinutes int
	}{
		{
			name:       "simple time",
			input:      "08:30",
			expHour:    8,
			expMinutes: 30,
		},
		{
			name:       "iso datetime",
			input:      "2007-11-30T00:00:00+07:00",
			expHour:    0,
			expMinutes: 0,
		},
		{
			name:       "mysql datetime",
			input:      "2007-11-30 13:45:00",
			expHour:    13,
			expMinutes: 45,
		},
		{
			name:       "time with trailing zone",
			input:      "09:15:00Z",
			expHour:    9,
			expMinutes: 15,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h, m, err := ParseHourMinute(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h != tc.expHour || m != tc.expMinutes {
				t.Fatalf("expected %02d:%02d, got %02d:%02d", tc.expHour, tc.expMinutes, h, m)
			}
		})
	}
}

func TestParseHourMinuteInvalid(t *testing.T) {
	for _, input := range []string{"invalid", "", "25:00", "10:71"} {
		if _, _, err := ParseHourMinute(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestIsValidSessionTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "08:40", want: true},
		{input: "23:59", want: true},
		{input: "8:40", want: false},  // not fixed width
		{input: "08.40", want: false}, // wrong separator
		{input: "08:40:00", want: false},
		{input: "24:00", want: false},
		{input: "", want: false},
	}

	for _, tc := range tests {
		if got := IsValidSessionTime(tc.input); got != tc.want {
			t.Errorf("IsValidSessionTime(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Internal Medicine", want: "internal_medicine"},
		{input: "  Cardiology ", want: "cardiology"},
		{input: "ENT & Eye", want: "ent_eye"},
		{input: "---", want: ""},
	}

	for _, tc := range tests {
		if got := Slugify(tc.input); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestColorForNameDeterministic(t *testing.T) {
	a, b := ColorForName("Cardiology"), ColorForName("Cardiology")
	if a != b {
		t.Fatalf("color not deterministic: %s vs %s", a, b)
	}
	if a == ColorForName("Neurology") {
		t.Log("two block names hashed to the same hue; acceptable but unusual")
	}
}

func TestSequentialID(t *testing.T) {
	if got := SequentialID("i", 1); got != "i001" {
		t.Errorf("SequentialID(i, 1) = %s, want i001", got)
	}
	if got := SequentialID("c", 42); got != "c042" {
		t.Errorf("SequentialID(c, 42) = %s, want c042", got)
	}
}
