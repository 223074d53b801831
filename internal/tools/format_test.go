package tools

import (
	"testing"
	"time"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{999, "$999.00"},
		{1000, "$1,000.00"},
		{1234567.89, "$1,234,567.89"},
		{-0.4, "-$0.40"},
		{-98765.43, "-$98,765.43"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatKRW(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₩0"},
		{12345678, "₩12,345,678"},
		{-5000, "-₩5,000"},
	}
	for _, tt := range tests {
		if got := FormatKRW(tt.in); got != tt.want {
			t.Errorf("FormatKRW(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedUSD(t *testing.T) {
	if got := FormatSignedUSD(12.3); got != "+$12.30" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatSignedUSD(0); got != "+$0.00" {
		t.Errorf("zero = %q", got)
	}
	if got := FormatSignedUSD(-3.5); got != "-$3.50" {
		t.Errorf("negative = %q", got)
	}
}

func TestFormatSignedPercent(t *testing.T) {
	if got := FormatSignedPercent(1.234); got != "+1.23%" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatSignedPercent(-0.4); got != "-0.40%" {
		t.Errorf("negative = %q", got)
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 30, 5, 0, time.Local)
	if got := FormatClock(ts); got != "09:30:05" {
		t.Errorf("FormatClock = %q", got)
	}
}
