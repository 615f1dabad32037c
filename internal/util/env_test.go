package util

import "testing"

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{"unset uses default true", "", true, true},
		{"unset uses default false", "", false, false},
		{"true", "true", false, true},
		{"TRUE", "TRUE", false, true},
		{"1", "1", false, true},
		{"yes", "yes", false, true},
		{"on", "on", false, true},
		{"false", "false", true, false},
		{"0", "0", true, false},
		{"no", "no", true, false},
		{"off", "off", true, false},
		{"whitespace trimmed", "  true  ", false, true},
		{"invalid uses default", "banana", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL_ENV", tt.value)
			if got := ParseBoolEnv("TEST_BOOL_ENV", tt.defaultValue); got != tt.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int
		want         int
	}{
		{"unset uses default", "", 42, 42},
		{"valid integer", "7", 42, 7},
		{"negative integer", "-3", 42, -3},
		{"whitespace trimmed", "  15  ", 42, 15},
		{"invalid uses default", "seven", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_ENV", tt.value)
			if got := ParseIntEnv("TEST_INT_ENV", tt.defaultValue); got != tt.want {
				t.Errorf("ParseIntEnv(%q, %d) = %d, want %d", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}
