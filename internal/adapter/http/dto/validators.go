package dto

import (
	"html"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Solana addresses and signatures use the bitcoin base58 alphabet.
var base58Re = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,88}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("base58", validateBase58)
		_ = v.RegisterValidation("safe_url", validateSafeURL)
	}
}

// IsBase58 reports whether s looks like a base58 address or signature.
func IsBase58(s string) bool {
	return base58Re.MatchString(s)
}

func validateBase58(fl validator.FieldLevel) bool {
	return IsBase58(fl.Field().String())
}

// validateSafeURL accepts http, https and ipfs URLs.
func validateSafeURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // optional field; use "required" tag to enforce presence
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ipfs":
		return u.Host != ""
	}
	return false
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer. Fields tagged sanitize:"-"
// are left untouched.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() || rt.Field(i).Tag.Get("sanitize") == "-" {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			switch elem := f.Elem(); elem.Kind() {
			case reflect.String:
				elem.SetString(sanitize(elem.String()))
			case reflect.Struct:
				sanitizeFields(elem)
			}
		case reflect.Slice:
			for j := 0; j < f.Len(); j++ {
				switch elem := f.Index(j); elem.Kind() {
				case reflect.String:
					elem.SetString(sanitize(elem.String()))
				case reflect.Struct:
					sanitizeFields(elem)
				}
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
