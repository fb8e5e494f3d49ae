package parser

import (
	"testing"
	"time"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"السنة : ٢٠٢١", "السنة : 2021"},
		{"۱۲۳", "123"},
		{"٧٫٥", "7.5"},
		{"  a \n\t b  ", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.input); got != tt.expected {
			t.Errorf("NormalizeText(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestIntFromText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"الحلقة 12", 12, true},
		{"الحلقة ١٢", 12, true},
		{"مدة الفيلم : 118 دقيقة", 118, true},
		{"tab-5", 5, true},
		{"بدون رقم", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := IntFromText(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("IntFromText(%q) = (%d, %v), expected (%d, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestRatingFromText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected int
	}{
		{"10 / 7.5", 7500},
		{"8.2", 8200},
		{"10 / ٨٫٢", 8200},
		{"7.1 / ", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := RatingFromText(tt.input); got != tt.expected {
			t.Errorf("RatingFromText(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestDateFromText(t *testing.T) {
	t.Parallel()
	feb15 := time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"الأربعاء 15 02 2023", feb15},
		{"2023-02-15", feb15},
		{"15/02/2023", feb15},
		{"١٥-٠٢-٢٠٢٣", feb15},
		{"31 02 2023", time.Time{}},
		{"غير معروف", time.Time{}},
	}
	for _, tt := range tests {
		if got := DateFromText(tt.input); !got.Equal(tt.expected) {
			t.Errorf("DateFromText(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestFixURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		href     string
		expected string
	}{
		{"/movie/1/x", "https://ak.sv/movie/1/x"},
		{"//img.ak.sv/a.jpg", "https://img.ak.sv/a.jpg"},
		{"https://go.ak.sv/link/1", "https://go.ak.sv/link/1"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := FixURL("https://ak.sv", tt.href); got != tt.expected {
			t.Errorf("FixURL(%q) = %q, expected %q", tt.href, got, tt.expected)
		}
	}
}

func TestTypeFromURL(t *testing.T) {
	t.Parallel()
	if got := TypeFromURL("https://ak.sv/movie/1/x"); got != "Movie" {
		t.Errorf("Expected Movie, got %s", got)
	}
	if got := TypeFromURL("https://ak.sv/series/1/x"); got != "TvSeries" {
		t.Errorf("Expected TvSeries, got %s", got)
	}
}
