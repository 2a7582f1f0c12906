package validation

import "strings"

const (
	loginPasswordMinLength  = 6
	signUpPasswordMinLength = 8
)

// DefaultPartySize is what the reservation form preselects.
const DefaultPartySize = 1

// PartySizeOptions is the small range the form lets a guest pick from.
// Larger parties (up to the store limit of 20) go through the API directly.
var PartySizeOptions = []int{1, 2, 3, 4, 5, 6, 7, 8}

func LoginForm(email, password string) Fields {
	errs := Fields{}

	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Password(password, loginPasswordMinLength, false); msg != "" {
		errs["password"] = msg
	}

	return errs
}

func SignUpForm(firstName, lastName, email, password, confirmPassword string, agreeToTerms bool) Fields {
	errs := Fields{}

	if msg := FirstName(firstName); msg != "" {
		errs["firstName"] = msg
	}
	if msg := LastName(lastName); msg != "" {
		errs["lastName"] = msg
	}
	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Password(password, signUpPasswordMinLength, true); msg != "" {
		errs["password"] = msg
	}
	if msg := ConfirmPassword(password, confirmPassword); msg != "" {
		errs["confirmPassword"] = msg
	}
	if !agreeToTerms {
		errs["agreeToTerms"] = "You must agree to the terms and conditions"
	}

	return errs
}

type ReservationForm struct {
	FullName        string
	Email           string
	Phone           string
	ReservationDate string
	ReservationTime string
	PartySize       int
}

// Validate mirrors the reservation form's submit-time checks: terse
// "Required" markers next to each missing field, plus an email shape check.
func (f ReservationForm) Validate() Fields {
	errs := Fields{}

	if strings.TrimSpace(f.FullName) == "" {
		errs["fullName"] = "Required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Required"
	} else if !ValidEmail(f.Email) {
		errs["email"] = "Invalid email"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Required"
	}
	if f.ReservationDate == "" {
		errs["reservationDate"] = "Required"
	}
	if f.ReservationTime == "" {
		errs["reservationTime"] = "Required"
	}

	return errs
}
