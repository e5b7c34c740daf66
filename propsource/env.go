package propsource

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"

	"github.com/andriiyaremenko/injective"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))

	ErrUnsupportedType = errors.New("type cannot be parsed from string")
)

type ParseError struct {
	cause    error
	Key      string
	Property string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s for property %q: %s", err.Key, err.Property, err.cause)
}

func (err *ParseError) Unwrap() error {
	return err.cause
}

// Env reads properties from environment variables named
// PREFIX_TYPE_PROPERTY in upper snake case, e.g. APP_SERVICE_GREETING
// for property "greeting" of *Service with prefix "app".
// Values are parsed according to the type of the property field,
// properties without field receive strings.
type Env struct {
	values map[string]string
	prefix string
}

// NewEnv creates Env that falls back to values from .env files
// when variable is not set in the environment.
func NewEnv(prefix string, files ...string) (*Env, error) {
	values := make(map[string]string)

	if len(files) > 0 {
		var err error
		if values, err = godotenv.Read(files...); err != nil {
			return nil, fmt.Errorf("reading env files: %w", err)
		}
	}

	return &Env{values: values, prefix: prefix}, nil
}

func (e *Env) Properties(t reflect.Type) (injective.Properties, error) {
	descriptors, err := injective.Describe(t)
	if err != nil {
		return nil, err
	}

	props := make(injective.Properties)

	for _, descriptor := range descriptors {
		key := e.Key(t, descriptor.Name)

		raw, ok := e.lookup(key)
		if !ok {
			continue
		}

		value, err := parse(raw, descriptor.Type)
		if err != nil {
			return nil, &ParseError{cause: err, Key: key, Property: descriptor.Name}
		}

		props[descriptor.Name] = value
	}

	return props, nil
}

// Key returns variable name for property of t.
func (e *Env) Key(t reflect.Type, property string) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	parts := make([]string, 0, 3)
	if e.prefix != "" {
		parts = append(parts, upperSnake(e.prefix))
	}

	return strings.Join(append(parts, upperSnake(t.Name()), upperSnake(property)), "_")
}

func (e *Env) lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}

	value, ok := e.values[key]

	return value, ok
}

func parse(raw string, t reflect.Type) (any, error) {
	if t == nil {
		return raw, nil
	}

	if t == durationType {
		return time.ParseDuration(raw)
	}

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t).Interface(), nil
	case reflect.Interface:
		if !reflect.TypeOf(raw).AssignableTo(t) {
			return nil, fmt.Errorf("%s: %w", t, ErrUnsupportedType)
		}

		return raw, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(b).Convert(t).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(f).Convert(t).Interface(), nil
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return nil, fmt.Errorf("%s: %w", t, ErrUnsupportedType)
		}

		parts := strings.Split(raw, ",")
		s := reflect.MakeSlice(t, len(parts), len(parts))
		for i, part := range parts {
			s.Index(i).Set(reflect.ValueOf(strings.TrimSpace(part)).Convert(t.Elem()))
		}

		return s.Interface(), nil
	default:
		return nil, fmt.Errorf("%s: %w", t, ErrUnsupportedType)
	}
}

func upperSnake(name string) string {
	runes := []rune(name)

	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteRune('_')
			continue
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteRune('_')
			}
		}

		b.WriteRune(unicode.ToUpper(r))
	}

	return b.String()
}
