package domain

import "testing"

func TestParseTransactionStatus(t *testing.T) {
	cases := []struct {
		input  string
		want   TransactionStatus
		wantOK bool
	}{
		{"", StatusPending, true},
		{"pending", StatusPending, true},
		{"confirmed", StatusConfirmed, true},
		{"denied", StatusDenied, true},
		{"flagged", StatusFlagged, true},
		{"Pending", "", false},
		{"completed", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseTransactionStatus(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseTransactionStatus(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestUpdatableStatus(t *testing.T) {
	for _, status := range []TransactionStatus{StatusConfirmed, StatusDenied, StatusFlagged} {
		if !UpdatableStatus(status) {
			t.Errorf("expected %q to be an updatable status", status)
		}
	}
	for _, status := range []TransactionStatus{StatusPending, "", "bogus"} {
		if UpdatableStatus(status) {
			t.Errorf("expected %q to be rejected as an update target", status)
		}
	}
}

func TestVariantAllows(t *testing.T) {
	cases := []struct {
		variant Variant
		role    Role
		want    bool
	}{
		{VariantUser, RoleUser, true},
		{VariantUser, RoleEmployee, true},
		{VariantUser, RoleAdmin, true},
		{VariantUser, RoleManager, false},
		{VariantEmployee, RoleEmployee, true},
		{VariantEmployee, RoleManager, true},
		{VariantEmployee, RoleAdmin, false},
		{VariantAdmin, RoleAdmin, true},
		{VariantAdmin, RoleUser, false},
		{VariantManager, RoleManager, true},
		{VariantManager, RoleEmployee, false},
	}
	for _, tc := range cases {
		if got := tc.variant.Allows(tc.role); got != tc.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tc.variant, tc.role, got, tc.want)
		}
	}
}
