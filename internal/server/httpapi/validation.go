package httpapi

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type registerRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Birthdate string `json:"birthdate" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Gender    string `json:"gender" binding:"required,oneof=Male Female Other"`
	Country   string `json:"country" binding:"required"`
}

// loginRequest leaves the password unchecked so an empty one fails with the
// same answer as a wrong one.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// nominationRequest is the body of both create and delete. A user_username
// field, if sent, is ignored: the owner is always the session user.
type nominationRequest struct {
	Category          string `json:"category" binding:"required"`
	Iteration         int    `json:"iteration" binding:"required,min=1"`
	MovieName         string `json:"movie_name" binding:"required"`
	MovieReleaseDate  string `json:"movie_release_date" binding:"required"`
	PersonName        string `json:"person_name" binding:"required"`
	PersonDateOfBirth string `json:"person_date_of_birth" binding:"required"`
}

// fieldErrors turns a binding error into field -> code pairs keyed by the
// JSON field name. Errors that are not validation failures (malformed JSON,
// wrong types) are reported under "body".
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "invalid"
		return out
	}

	for _, fe := range verrs {
		out[jsonFieldName(fe.Field())] = validationCode(fe)
	}
	return out
}

func validationCode(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		if fe.Kind() == reflect.String {
			return "too_short"
		}
		return "too_small"
	case "max":
		return "too_long"
	case "email":
		return "invalid_email"
	case "oneof":
		return "must_be_one_of: " + fe.Param()
	default:
		return "invalid"
	}
}

// jsonFieldName converts a Go field name such as MovieReleaseDate to the
// snake_case key used on the wire.
func jsonFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
