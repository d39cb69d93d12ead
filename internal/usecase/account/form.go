package account

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	Name                 string `form:"name" validate:"required,letters"`
	LastName             string `form:"last_name" validate:"required,letters"`
	Email                string `form:"email" validate:"required,shopemail"`
	Phone                string `form:"phone" validate:"required,phone"`
	Password             string `form:"password" validate:"required,strongpassword"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
	Birth                string `form:"birth" validate:"required,adult"`
	Country              string `form:"country" validate:"required"`
	City                 string `form:"city" validate:"required"`
	Cologne              string `form:"cologne" validate:"required"`
	Address              string `form:"address" validate:"required"`
	ZipCode              string `form:"zip_code" validate:"required,numeric,max=5"`
	Terms                bool   `form:"terms" validate:"required"`
}

type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// FormState is the outcome of checking a form: the sanitized values, the
// failing rule per field and whether the form may be submitted.
type FormState struct {
	Values        map[string]string
	Invalid       map[string]string
	SubmitEnabled bool
}

const (
	minPasswordLen   = 8
	maxPasswordLen   = 64
	maxZipLen        = 5
	adultAge         = 18
	maxEmailSubLabel = 125
	passwordSpecial  = "@$!%*?&"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailLocal    = regexp.MustCompile(`^[-\w.%+]{1,64}$`)
	emailLabel    = regexp.MustCompile(`^[A-Za-z0-9-]{1,63}$`)
	emailTopLevel = regexp.MustCompile(`^[A-Za-z]{2,63}$`)
)

// Validator checks the account forms.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator() *Validator {
	return newValidator(time.Now)
}

func newValidator(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(), now: now}
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.validate.RegisterValidation("letters", func(fl validator.FieldLevel) bool {
		return isLetters(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("shopemail", func(fl validator.FieldLevel) bool {
		return isShopEmail(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("adult", func(fl validator.FieldLevel) bool {
		return isAdult(fl.Field().String(), v.now())
	})
	return v
}

// Sanitize applies the input filters of the register form.
func (f RegisterForm) Sanitize() RegisterForm {
	f.Name = onlyLetters(f.Name)
	f.LastName = onlyLetters(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = sanitizePhone(strings.TrimSpace(f.Phone))
	f.Password = strings.TrimSpace(f.Password)
	f.PasswordConfirmation = strings.TrimSpace(f.PasswordConfirmation)
	f.Birth = strings.TrimSpace(f.Birth)
	f.Cologne = strings.TrimSpace(f.Cologne)
	f.Address = strings.TrimSpace(f.Address)
	f.ZipCode = sanitizeZip(f.ZipCode)
	return f
}

func (f RegisterForm) values() map[string]string {
	terms := ""
	if f.Terms {
		terms = "on"
	}
	return map[string]string{
		"name":                  f.Name,
		"last_name":             f.LastName,
		"email":                 f.Email,
		"phone":                 f.Phone,
		"password":              f.Password,
		"password_confirmation": f.PasswordConfirmation,
		"birth":                 f.Birth,
		"country":               f.Country,
		"city":                  f.City,
		"cologne":               f.Cologne,
		"address":               f.Address,
		"zip_code":              f.ZipCode,
		"terms":                 terms,
	}
}

// ValidateRegister sanitizes and checks the register form.
func (v *Validator) ValidateRegister(f RegisterForm) (RegisterForm, FormState) {
	f = f.Sanitize()
	state := v.check(f, f.values())
	// The confirmation only counts when the password itself is acceptable.
	if _, bad := state.Invalid["password"]; bad {
		if _, already := state.Invalid["password_confirmation"]; !already {
			state.Invalid["password_confirmation"] = "strongpassword"
		}
	}
	state.SubmitEnabled = len(state.Invalid) == 0
	return f, state
}

func (v *Validator) ValidateLogin(f LoginForm) (LoginForm, FormState) {
	f.Email = strings.TrimSpace(f.Email)
	return f, v.check(f, map[string]string{
		"email":    f.Email,
		"password": f.Password,
	})
}

func (v *Validator) check(form any, values map[string]string) FormState {
	state := FormState{Values: values, Invalid: map[string]string{}}
	if err := v.validate.Struct(form); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				state.Invalid[fe.Field()] = fe.Tag()
			}
		} else {
			state.Invalid["form"] = err.Error()
		}
	}
	state.SubmitEnabled = len(state.Invalid) == 0
	return state
}

func onlyLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func isLetters(s string) bool {
	return s != "" && onlyLetters(s) == s
}

func sanitizePhone(s string) string {
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return "+" + keep(rest, "0123456789")
	}
	return keep(s, "0123456789+")
}

func sanitizeZip(s string) string {
	digits := keep(s, "0123456789")
	if len(digits) > maxZipLen {
		digits = digits[:maxZipLen]
	}
	return digits
}

func keep(s, allowed string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(allowed, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isShopEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || !emailLocal.MatchString(local) || strings.HasPrefix(domain, "-") {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 || len(labels)-1 > maxEmailSubLabel {
		return false
	}
	for _, l := range labels[:len(labels)-1] {
		if !emailLabel.MatchString(l) {
			return false
		}
	}
	return emailTopLevel.MatchString(labels[len(labels)-1])
}

func isStrongPassword(s string) bool {
	if len(s) < minPasswordLen || len(s) > maxPasswordLen {
		return false
	}
	var upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecial, r):
			special = true
		case r >= 'a' && r <= 'z':
		default:
			return false
		}
	}
	return upper && digit && special
}

func isAdult(birth string, now time.Time) bool {
	t, err := time.Parse(time.DateOnly, birth)
	if err != nil {
		return false
	}
	age := now.Year() - t.Year()
	if now.Month() < t.Month() || (now.Month() == t.Month() && now.Day() < t.Day()) {
		age--
	}
	return age >= adultAge
}
