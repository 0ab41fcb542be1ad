// Package form decodes application/x-www-form-urlencoded request bodies into
// tagged structs and validates them.
//
// Field mapping uses the `form` tag; validation rules live in the `validate`
// tag, comma-separated:
//
//	required   value must be present and non-empty
//	email      value must look like an email address
//	min=N      string: minimum length | number: minimum value
//	gte=N      numeric value must be >= N
//	gt=N       numeric value must be > N
//
// Numeric struct fields (int, uint, float64) are parsed from their form
// value; a parse failure is reported as a field error, which callers treat
// as invalid input.
//
//	type ReservationInput struct {
//	    Nama   string  `form:"nama"   validate:"required"`
//	    Jumlah int     `form:"jumlah" validate:"required,gt=0"`
//	    Harga  float64 `form:"harga"  validate:"required,gte=0"`
//	}
//
//	input := ReservationInput{}
//	if errs := form.Bind(r, &input); len(errs) > 0 { … }
package form

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Errors maps form field name to a human-readable problem.
type Errors map[string]string

// First returns one of the messages, picked deterministically by field
// name, for flows that surface a single flash per submission.
func (e Errors) First() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return e[keys[0]]
}

// Bind parses the request form, fills dest (a struct pointer) and validates
// it. An empty map means dest is ready to use.
func Bind(r *http.Request, dest interface{}) Errors {
	errs := Errors{}

	if err := r.ParseForm(); err != nil {
		errs["_form"] = "malformed form body"
		return errs
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		errs["_form"] = "bind target must be a struct pointer"
		return errs
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := field.Tag.Get("form")
		if name == "" || !rv.Field(i).CanSet() {
			continue
		}

		raw := strings.TrimSpace(r.PostFormValue(name))
		rules := splitRules(field.Tag.Get("validate"))

		if raw == "" {
			if hasRule(rules, "required") {
				errs[name] = fmt.Sprintf("The %s field is required.", name)
			}
			continue
		}

		if ok := setField(rv.Field(i), raw); !ok {
			errs[name] = fmt.Sprintf("The %s field must be a number.", name)
			continue
		}

		if msg := applyRules(rules, name, rv.Field(i), raw); msg != "" {
			errs[name] = msg
		}
	}

	return errs
}

func setField(v reflect.Value, raw string) bool {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return false
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return false
		}
		v.SetUint(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false
		}
		v.SetFloat(f)
	default:
		return false
	}
	return true
}

func applyRules(rules []string, name string, v reflect.Value, raw string) string {
	for _, rule := range rules {
		key, param, _ := strings.Cut(rule, "=")

		switch key {
		case "required": // presence already checked
		case "email":
			if !emailRe.MatchString(raw) {
				return fmt.Sprintf("The %s field must be a valid email address.", name)
			}
		case "min":
			n, _ := strconv.ParseFloat(param, 64)
			if v.Kind() == reflect.String {
				if len(raw) < int(n) {
					return fmt.Sprintf("The %s field must be at least %s characters.", name, param)
				}
			} else if numeric(v) < n {
				return fmt.Sprintf("The %s field must be at least %s.", name, param)
			}
		case "gte":
			n, _ := strconv.ParseFloat(param, 64)
			if numeric(v) < n {
				return fmt.Sprintf("The %s field must be at least %s.", name, param)
			}
		case "gt":
			n, _ := strconv.ParseFloat(param, 64)
			if numeric(v) <= n {
				return fmt.Sprintf("The %s field must be greater than %s.", name, param)
			}
		}
	}
	return ""
}

func numeric(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float64:
		return v.Float()
	}
	return 0
}

func splitRules(tag string) []string {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}
