package validate

import (
	"math"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Jane Doe", true},
		{"Jane", true},
		{"Jane<script>", false},
		{"", false},
		{strings.Repeat("a", 50), true},
		{strings.Repeat("a", 51), false},
		{"Jane123", false},
		{"O'Brien", false},
	}
	for _, tc := range cases {
		if got := Name(tc.input); got != tc.want {
			t.Errorf("Name(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestUsername(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"jdoe", true},
		{"jd", false},
		{strings.Repeat("a", 20), true},
		{strings.Repeat("a", 21), false},
		{"jane;drop", false},
		{"jane'--", false},
	}
	for _, tc := range cases {
		if got := Username(tc.input); got != tc.want {
			t.Errorf("Username(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"jane@example.com", true},
		{"jane.doe+tag@sub.example.co", true},
		{"jane@example", false},
		{"not-an-email", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Email(tc.input); got != tc.want {
			t.Errorf("Email(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIDNumber(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"9001015009087", true},
		{"900101500908", false},
		{"90010150090871", false},
		{"900101500908a", false},
	}
	for _, tc := range cases {
		if got := IDNumber(tc.input); got != tc.want {
			t.Errorf("IDNumber(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestAccountNumberAndSwiftCode(t *testing.T) {
	if !AccountNumber("AC1234567890") {
		t.Error("expected generated-style account number to be accepted")
	}
	if AccountNumber("A1b2") {
		t.Error("expected 4-character account number to be rejected")
	}
	if AccountNumber("1234-5678") {
		t.Error("expected punctuation in account number to be rejected")
	}

	if !SwiftCode("ABSAZAJJ") {
		t.Error("expected 8-character SWIFT code to be accepted")
	}
	if !SwiftCode("ABSAZAJJXXX") {
		t.Error("expected 11-character SWIFT code to be accepted")
	}
	if SwiftCode("ABSAZAJ") {
		t.Error("expected 7-character SWIFT code to be rejected")
	}
	if SwiftCode("ABSAZAJJXXXX") {
		t.Error("expected 12-character SWIFT code to be rejected")
	}
}

func TestAmount(t *testing.T) {
	cases := []struct {
		input float64
		want  bool
	}{
		{100, true},
		{50.5, true},
		{0.01, true},
		{99.99, true},
		{0, false},
		{-5, false},
		{10.999, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tc := range cases {
		if got := Amount(tc.input); got != tc.want {
			t.Errorf("Amount(%v) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Abc123!@", true},
		{"longerPassw0rd!", true},
		{"abc12345", false},   // no symbol
		{"abcdefg!", false},   // no digit
		{"12345678!", false},  // no letter
		{"Ab1!", false},       // too short
		{"Abc123!@ ", false},  // space outside allowed set
		{"Abc123!<>", false},  // blacklisted characters
	}
	for _, tc := range cases {
		if got := Password(tc.input); got != tc.want {
			t.Errorf("Password(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestToCents(t *testing.T) {
	cases := []struct {
		input float64
		want  int64
	}{
		{100, 10000},
		{50.5, 5050},
		{0.01, 1},
		{19.99, 1999},
	}
	for _, tc := range cases {
		if got := ToCents(tc.input); got != tc.want {
			t.Errorf("ToCents(%v) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
