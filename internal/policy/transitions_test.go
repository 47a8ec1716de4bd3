package policy_test

import (
	"testing"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/policy"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "reviewed", "hired", "rejected"}
	for _, s := range valid {
		got, err := policy.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"PENDING", "withdrawn", ""} {
		if _, err := policy.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestValidateTransition_HappyPath(t *testing.T) {
	cases := []struct {
		from policy.Status
		to   policy.Status
	}{
		{policy.StatusPending, policy.StatusReviewed},
		{policy.StatusReviewed, policy.StatusHired},
	}
	for _, c := range cases {
		if err := policy.ValidateTransition(c.from, c.to); err != nil {
			t.Errorf("ValidateTransition(%s → %s) = %v, want nil", c.from, c.to, err)
		}
	}
}

func TestValidateTransition_SameStatus(t *testing.T) {
	all := []policy.Status{
		policy.StatusPending, policy.StatusReviewed,
		policy.StatusHired, policy.StatusRejected,
	}
	for _, s := range all {
		err := policy.ValidateTransition(s, s)
		if err == nil {
			t.Errorf("ValidateTransition(%s → %s) expected error", s, s)
			continue
		}
		if apperr.KindOf(err) != apperr.KindBadRequest {
			t.Errorf("ValidateTransition(%s → %s) kind = %s, want BAD_REQUEST", s, s, apperr.KindOf(err))
		}
	}
}

func TestValidateTransition_FromTerminal(t *testing.T) {
	terminals := []policy.Status{policy.StatusHired, policy.StatusRejected}
	targets := []policy.Status{
		policy.StatusPending, policy.StatusReviewed,
		policy.StatusHired, policy.StatusRejected,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if from == to {
				continue // same-status case covered above
			}
			err := policy.ValidateTransition(from, to)
			if err == nil {
				t.Errorf("ValidateTransition(%s → %s) expected error (terminal)", from, to)
				continue
			}
			if apperr.KindOf(err) != apperr.KindForbidden {
				t.Errorf("ValidateTransition(%s → %s) kind = %s, want FORBIDDEN", from, to, apperr.KindOf(err))
			}
		}
	}
}

func TestValidateTransition_ReviewedOnlyMovesToHired(t *testing.T) {
	err := policy.ValidateTransition(policy.StatusReviewed, policy.StatusPending)
	if err == nil {
		t.Fatal("ValidateTransition(reviewed → pending) expected error")
	}
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Errorf("kind = %s, want BAD_REQUEST", apperr.KindOf(err))
	}

	// rejected from reviewed is also blocked: the check rejects any target
	// that is not exactly hired
	err = policy.ValidateTransition(policy.StatusReviewed, policy.StatusRejected)
	if err == nil {
		t.Fatal("ValidateTransition(reviewed → rejected) expected error")
	}
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Errorf("kind = %s, want BAD_REQUEST", apperr.KindOf(err))
	}
}

func TestValidateTransition_CheckOrder(t *testing.T) {
	// same-status beats terminal: hired → hired reports BAD_REQUEST, not
	// FORBIDDEN
	err := policy.ValidateTransition(policy.StatusHired, policy.StatusHired)
	if apperr.KindOf(err) != apperr.KindBadRequest {
		t.Errorf("hired → hired kind = %s, want BAD_REQUEST", apperr.KindOf(err))
	}
}

func TestIsTerminal(t *testing.T) {
	if !policy.IsTerminal(policy.StatusHired) || !policy.IsTerminal(policy.StatusRejected) {
		t.Error("hired and rejected should be terminal")
	}
	if policy.IsTerminal(policy.StatusPending) || policy.IsTerminal(policy.StatusReviewed) {
		t.Error("pending and reviewed should not be terminal")
	}
}
