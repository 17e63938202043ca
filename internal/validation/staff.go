package validation

import "unicode/utf8"

// StaffForm is the dashboard form for creating a staff account.
type StaffForm struct {
	Name     string
	Phone    string
	Email    string
	Role     string
	Password string
	Confirm  string
}

// ValidateStaff checks a staff form. The confirmation is only compared when checkConfirm is set.
func ValidateStaff(f StaffForm, checkConfirm bool) Errors {
	errs := Errors{}

	if !nonEmpty(f.Name) {
		errs.add("name", "Required")
	}
	if !nonEmpty(f.Phone) {
		errs.add("phone", "Required")
	}
	if !nonEmpty(f.Email) {
		errs.add("email", "Required")
	}
	if !nonEmpty(f.Role) {
		errs.add("role", "Required")
	}

	if f.Password == "" {
		errs.add("password", "Password is required")
	} else if utf8.RuneCountInString(f.Password) < 6 {
		errs.add("password", "Min 6 characters")
	}

	if checkConfirm {
		if f.Confirm == "" {
			errs.add("confirm", "Confirm password is required")
		} else if f.Password != "" && f.Password != f.Confirm {
			errs.add("confirm", "Passwords do not match")
		}
	}

	return errs
}
