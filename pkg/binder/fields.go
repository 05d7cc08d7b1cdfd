package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// source returns the raw values of a named parameter; an empty result means absent.
type source func(name string) []string

// bindFields fills the exported fields of the struct v points to from src. A field is
// named by its tagName tag; `-` skips it. Untagged fields use their lowercased name,
// or are skipped when taggedOnly is set. Absent parameters leave fields untouched.
func bindFields(v any, tagName string, taggedOnly bool, src source, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", bindErr)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, ok := paramName(sf, tagName, taggedOnly)
		if !ok {
			continue
		}
		raw := src(name)
		if len(raw) == 0 {
			continue
		}
		if err := setValue(rv.Field(i), raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func paramName(sf reflect.StructField, tagName string, taggedOnly bool) (string, bool) {
	tag := sf.Tag.Get(tagName)
	switch {
	case tag == "-":
		return "", false
	case tag != "":
		name, _, _ := strings.Cut(tag, ",")
		return name, true
	case taggedOnly:
		return "", false
	}
	return strings.ToLower(sf.Name), true
}

// setValue assigns raw to field. Pointers are allocated, slices take every value
// (comma separated lists included), anything else takes the first value.
func setValue(field reflect.Value, raw []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), raw)
	case reflect.Slice:
		parts := splitValues(raw)
		s := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, p := range parts {
			if err := setScalar(s.Index(i), p); err != nil {
				return err
			}
		}
		field.Set(s)
		return nil
	}
	return setScalar(field, raw[0])
}

func setScalar(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", s)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}

// parseBool accepts strconv forms plus on/off and yes/no, as sent by HTML forms.
func parseBool(s string) (bool, error) {
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", s)
}

func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for p := range strings.SplitSeq(v, ",") {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}
