package forms

// Registration is the driver sign-up form. Vehicle type and plate are
// optional but must be given together.
type Registration struct {
	Email           string `form:"email" validate:"required,basicemail"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	CarOwnerName    string `form:"carOwnerName" validate:"required"`
	Mobile          string `form:"mobile" validate:"required,mobile10"`
	CarType         string `form:"carType" validate:"required_with=CarNo"`
	CarNo           string `form:"carNo" validate:"required_with=CarType"`
	TermsAccepted   bool   `form:"termsAccepted" validate:"required"`
}

var registrationMessages = map[string]map[string]string{
	"email": {
		"required":   "Email is required",
		"basicemail": "Email is invalid",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"confirmPassword": {
		"required": "Confirm password is required",
		"eqfield":  "Passwords do not match",
	},
	"carOwnerName": {"required": "Car owner name is required"},
	"mobile": {
		"required": "Mobile number is required",
		"mobile10": "Mobile number must be 10 digits",
	},
	"carType":       {"required_with": "Car type is required when car number is provided"},
	"carNo":         {"required_with": "Car number is required when car type is provided"},
	"termsAccepted": {"required": "You must agree to the terms and conditions"},
}

// ValidateRegistration checks the sign-up form.
func ValidateRegistration(r Registration) Errors {
	return check(r, registrationMessages)
}

// Login is the sign-in form. Identifier is an email or a mobile number;
// the backend tells them apart.
type Login struct {
	Identifier string `form:"identifier" validate:"required"`
	Password   string `form:"password" validate:"required"`
	RememberMe bool   `form:"rememberMe"`
}

var loginMessages = map[string]map[string]string{
	"identifier": {"required": "Email or mobile number is required"},
	"password":   {"required": "Password is required"},
}

// ValidateLogin checks the sign-in form.
func ValidateLogin(l Login) Errors {
	return check(l, loginMessages)
}
