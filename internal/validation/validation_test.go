package validation_test

import (
	"testing"

	"github.com/gildedfork/tablebook/internal/validation"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "diner@example.com", ""},
		{"valid with subdomain", "diner@mail.example.co", ""},
		{"empty", "", "Email is required"},
		{"whitespace only", "   ", "Email is required"},
		{"missing domain", "diner@", "Please enter a valid email address"},
		{"missing at sign", "diner.example.com", "Please enter a valid email address"},
		{"missing tld", "diner@example", "Please enter a valid email address"},
		{"contains space", "di ner@example.com", "Please enter a valid email address"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := validation.Email(tc.value); got != tc.want {
				t.Fatalf("Email(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"abc", 1},               // lowercase only
		{"abcdefgh", 2},          // length + lowercase
		{"Abc12345", 4},          // length + upper + lower + digit
		{"Abc12345!", 5},         // everything
		{"PASSWORD1", 3},         // length + upper + digit
		{"a1!", 3},               // lower + digit + special
	}

	for _, tc := range tests {
		if got := validation.PasswordStrength(tc.password); got != tc.want {
			t.Errorf("PasswordStrength(%q) = %d, want %d", tc.password, got, tc.want)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name            string
		value           string
		minLength       int
		requireStrength bool
		want            string
	}{
		{"signup path accepts strong enough", "Abc12345", 8, true, ""},
		{"login path accepts short-ish", "abc123", 6, false, ""},
		{"empty", "", 8, true, "Password is required"},
		{"too short", "Ab1", 8, true, "Password must be at least 8 characters"},
		{"login min six", "abc12", 6, false, "Password must be at least 6 characters"},
		{"long but weak", "aaaaaaaa", 8, true, "Password must contain uppercase, lowercase, and numbers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := validation.Password(tc.value, tc.minLength, tc.requireStrength)
			if got != tc.want {
				t.Fatalf("Password(%q, %d, %v) = %q, want %q", tc.value, tc.minLength, tc.requireStrength, got, tc.want)
			}
		})
	}
}

func TestConfirmPassword(t *testing.T) {
	if got := validation.ConfirmPassword("Abc12345", "Abc1234"); got != "Passwords do not match" {
		t.Fatalf("mismatch: got %q", got)
	}
	if got := validation.ConfirmPassword("Abc12345", ""); got != "Please confirm your password" {
		t.Fatalf("empty confirm: got %q", got)
	}
	if got := validation.ConfirmPassword("Abc12345", "Abc12345"); got != "" {
		t.Fatalf("match should pass, got %q", got)
	}
}

func TestNames(t *testing.T) {
	if got := validation.FirstName("  J "); got != "First name must be at least 2 characters" {
		t.Fatalf("short first name: got %q", got)
	}
	if got := validation.FirstName(""); got != "First name is required" {
		t.Fatalf("empty first name: got %q", got)
	}
	if got := validation.FirstName("  Jo "); got != "" {
		t.Fatalf("trimmed first name should pass, got %q", got)
	}
	if got := validation.LastName("B"); got != "Last name must be at least 2 characters" {
		t.Fatalf("short last name: got %q", got)
	}
}

func TestCheckbox(t *testing.T) {
	if got := validation.Checkbox(false, "Terms agreement"); got != "Terms agreement is required" {
		t.Fatalf("unchecked: got %q", got)
	}
	if got := validation.Checkbox(false, ""); got != "This field is required" {
		t.Fatalf("unchecked default name: got %q", got)
	}
	if got := validation.Checkbox(true, "Terms agreement"); got != "" {
		t.Fatalf("checked should pass, got %q", got)
	}
}

func TestSignUpForm(t *testing.T) {
	errs := validation.SignUpForm("Jo", "Smith", "jo@example.com", "Abc12345", "Abc12345", true)
	if len(errs) != 0 {
		t.Fatalf("valid signup should produce no errors, got %v", errs)
	}

	errs = validation.SignUpForm("", "S", "not-an-email", "weak", "weaker", false)
	wantFields := []string{"firstName", "lastName", "email", "password", "confirmPassword", "agreeToTerms"}
	for _, f := range wantFields {
		if errs[f] == "" {
			t.Errorf("expected an error for %q, got none (all: %v)", f, errs)
		}
	}
}

func TestLoginForm(t *testing.T) {
	if errs := validation.LoginForm("jo@example.com", "abc123"); len(errs) != 0 {
		t.Fatalf("valid login should produce no errors, got %v", errs)
	}

	errs := validation.LoginForm("", "")
	if errs["email"] != "Email is required" || errs["password"] != "Password is required" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestReservationForm(t *testing.T) {
	form := validation.ReservationForm{
		FullName:        "Jo Smith",
		Email:           "jo@example.com",
		Phone:           "555-0101",
		ReservationDate: "2025-01-10",
		ReservationTime: "19:00",
		PartySize:       validation.DefaultPartySize,
	}
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("valid form should produce no errors, got %v", errs)
	}

	empty := validation.ReservationForm{}
	errs := empty.Validate()
	for _, f := range []string{"fullName", "email", "phone", "reservationDate", "reservationTime"} {
		if errs[f] != "Required" {
			t.Errorf("field %q: got %q, want \"Required\"", f, errs[f])
		}
	}

	bad := form
	bad.Email = "jo@example"
	if got := bad.Validate()["email"]; got != "Invalid email" {
		t.Fatalf("bad email shape: got %q", got)
	}
}
