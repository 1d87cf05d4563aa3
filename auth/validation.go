package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/drimcity/drimcity-go/accounts"
	"github.com/drimcity/drimcity-go/web"
)

// Machine-readable validation and conflict codes for the auth endpoints.
const (
	CodeLoginRequired                      = "login_required"
	CodeLoginMustBeGreaterOrEqualMinLen    = "login_must_be_greater_or_equal_min_length"
	CodeLoginMustBeLessOrEqualMaxLen       = "login_must_be_less_or_equal_max_length"
	CodeLoginMustContainSpecificSymbols    = "login_must_contain_specific_symbols"
	CodePasswordRequired                   = "password_required"
	CodePasswordMustBeGreaterOrEqualMinLen = "password_must_be_greater_or_equal_min_length"
	CodePasswordMustBeLessOrEqualMaxLen    = "password_must_be_less_or_equal_max_length"
	CodePasswordMustContainUppercase       = "password_must_contain_uppercase_letter"
	CodePasswordMustContainLowercase       = "password_must_contain_lowercase_letter"
	CodePasswordMustContainNumber          = "password_must_contain_number"
	CodePasswordMustContainSpecialSymbol   = "password_must_contain_special_symbol"

	CodeAccountAlreadyExists = "account_already_exists"
)

var (
	loginCharsRe    = regexp.MustCompile(`^[a-zA-Z0-9_\-]*$`)
	uppercaseRe     = regexp.MustCompile(`[A-Z]`)
	lowercaseRe     = regexp.MustCompile(`[a-z]`)
	digitRe         = regexp.MustCompile(`[0-9]`)
	specialSymbolRe = regexp.MustCompile(`[!?*.+]`)
)

// newValidator builds the validator with the custom character-class rules the
// auth requests use on top of the builtin length tags.
func newValidator() *validator.Validate {
	v := web.NewValidator()
	must := func(err error) {
		if err != nil {
			panic(fmt.Sprintf("auth: failed to register validation rule: %v", err))
		}
	}
	must(v.RegisterValidation("login_chars", func(fl validator.FieldLevel) bool {
		return loginCharsRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("has_uppercase", func(fl validator.FieldLevel) bool {
		return uppercaseRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("has_lowercase", func(fl validator.FieldLevel) bool {
		return lowercaseRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("has_digit", func(fl validator.FieldLevel) bool {
		return digitRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("has_special", func(fl validator.FieldLevel) bool {
		return specialSymbolRe.MatchString(fl.Field().String())
	}))
	return v
}

var loginRules = map[string]web.FieldRule{
	"required": {
		Code:    CodeLoginRequired,
		Message: "Login cannot be empty",
	},
	"min": {
		Code:    CodeLoginMustBeGreaterOrEqualMinLen,
		Message: fmt.Sprintf("Login length must be greater or equal than %d", accounts.LoginMinLength),
	},
	"max": {
		Code:    CodeLoginMustBeLessOrEqualMaxLen,
		Message: fmt.Sprintf("Login length must be less or equal than %d", accounts.LoginMaxLength),
	},
	"login_chars": {
		Code:    CodeLoginMustContainSpecificSymbols,
		Message: "Login must contain only letters, numbers, underscores and dashes",
	},
}

var passwordRules = map[string]web.FieldRule{
	"required": {
		Code:    CodePasswordRequired,
		Message: "Password cannot be empty",
	},
	"min": {
		Code:    CodePasswordMustBeGreaterOrEqualMinLen,
		Message: fmt.Sprintf("Password length must be greater or equal than %d", accounts.PasswordMinLength),
	},
	"max": {
		Code:    CodePasswordMustBeLessOrEqualMaxLen,
		Message: fmt.Sprintf("Password length must be less or equal than %d", accounts.PasswordMaxLength),
	},
	"has_uppercase": {
		Code:    CodePasswordMustContainUppercase,
		Message: "Password must contain at least one uppercase letter",
	},
	"has_lowercase": {
		Code:    CodePasswordMustContainLowercase,
		Message: "Password must contain at least one lowercase letter",
	},
	"has_digit": {
		Code:    CodePasswordMustContainNumber,
		Message: "Password must contain at least one number",
	},
	"has_special": {
		Code:    CodePasswordMustContainSpecialSymbol,
		Message: "Password must contain at least one of the symbols in (!?*.+)",
	},
}

// createAccountRules validates both credential fields; authenticate only
// checks lengths, since the stored rules already shaped the password.
var createAccountRules = web.RuleSet{
	"login":    loginRules,
	"password": passwordRules,
}

var authenticateRules = web.RuleSet{
	"login": {
		"required": loginRules["required"],
		"min":      loginRules["min"],
		"max":      loginRules["max"],
	},
	"password": {
		"required": passwordRules["required"],
		"min":      passwordRules["min"],
		"max":      passwordRules["max"],
	},
}

// normalizeLogin lowercases a login for comparison and storage.
func normalizeLogin(login string) string {
	return strings.ToLower(login)
}
