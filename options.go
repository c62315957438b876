// File: optionsconfig/options.go
package optionsconfig

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// maskToken replaces sensitive values in every diagnostic rendering.
const maskToken = "***HIDDEN***"

// Options is the resolved, validated result of one resolution pass:
// one typed value per schema entry plus the schema itself for
// introspection. Options is immutable after construction and safe for
// concurrent reads. Independent resolutions share no state.
type Options struct {
	schema *Schema
	values map[string]any    // keyed by option name
	attrs  map[string]string // attribute name -> option name
}

// Resolve runs the full pipeline over the schema: value resolution,
// root-option defaulting, and dependency validation. inputs may be nil
// when no explicit values exist; env may be nil to use a snapshot of
// the process environment.
func Resolve(s *Schema, inputs Inputs, env map[string]string) (*Options, error) {
	if s == nil {
		return nil, ErrEmptySchema
	}
	if inputs == nil {
		inputs = Inputs{}
	}
	if env == nil {
		env = Environ()
	}

	values, err := resolve(s, inputs, env)
	if err != nil {
		return nil, err
	}

	applyRootDefaults(s, values, inputs, env)

	if err := validateDependencies(s, values); err != nil {
		return nil, err
	}

	attrs := make(map[string]string, s.Len())
	for _, opt := range s.Options() {
		attrs[opt.AttrName()] = opt.Name
	}

	return &Options{schema: s, values: values, attrs: attrs}, nil
}

// Schema returns the schema the options were resolved from.
func (o *Options) Schema() *Schema {
	return o.schema
}

// Get retrieves a resolved value by option name or by derived
// attribute name. The second return value reports whether the key
// names a schema entry.
func (o *Options) Get(key string) (any, bool) {
	if name, ok := o.attrs[key]; ok {
		key = name
	}
	if _, ok := o.schema.Option(key); !ok {
		return nil, false
	}
	return o.values[key], true
}

// String retrieves a string value, converting from common scalar types
// when the stored value isn't already a string. A nil value yields "".
func (o *Options) String(key string) (string, error) {
	val, found := o.Get(key)
	if !found {
		return "", fmt.Errorf("option not in schema: %s", key)
	}
	if val == nil {
		return "", nil
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for option %s", val, key)
	}
}

// Path retrieves a path-typed value as a string. It is an alias of
// String kept for call-site clarity.
func (o *Options) Path(key string) (string, error) {
	return o.String(key)
}

// Int64 retrieves an integer value, converting from numeric types and
// parsable strings.
func (o *Options) Int64(key string) (int64, error) {
	val, found := o.Get(key)
	if !found {
		return 0, fmt.Errorf("option not in schema: %s", key)
	}
	if val == nil {
		return 0, fmt.Errorf("option %s is nil, cannot convert to int64", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		s := v.String()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		} else {
			return 0, fmt.Errorf("cannot convert %q to int64 for option %s: %w", s, key, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for option %s", val, key)
}

// Float64 retrieves a float value, converting from numeric types and
// parsable strings.
func (o *Options) Float64(key string) (float64, error) {
	val, found := o.Get(key)
	if !found {
		return 0.0, fmt.Errorf("option not in schema: %s", key)
	}
	if val == nil {
		return 0.0, fmt.Errorf("option %s is nil, cannot convert to float64", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.String:
		s := v.String()
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		} else {
			return 0.0, fmt.Errorf("cannot convert %q to float64 for option %s: %w", s, key, err)
		}
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for option %s", val, key)
}

// Bool retrieves a boolean value, converting from parsable strings and
// numeric types (0 is false, non-zero true).
func (o *Options) Bool(key string) (bool, error) {
	val, found := o.Get(key)
	if !found {
		return false, fmt.Errorf("option not in schema: %s", key)
	}
	if val == nil {
		return false, fmt.Errorf("option %s is nil, cannot convert to bool", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := v.String()
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		} else {
			return false, fmt.Errorf("cannot convert %q to bool for option %s: %w", s, key, err)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for option %s", val, key)
}

// Scan decodes the resolved values into the target struct or map,
// matching fields by attribute name through the "opt" tag. The target
// must be a non-nil pointer.
func (o *Options) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	data := make(map[string]any, len(o.values))
	for _, opt := range o.schema.Options() {
		data[opt.AttrName()] = o.values[opt.Name]
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "opt",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to scan options into %T: %w", target, err)
	}

	return nil
}

// Render returns the options as "NAME: value" lines in schema order,
// with sensitive values replaced by the masking token. Intended for
// diagnostics.
func (o *Options) Render() string {
	var b strings.Builder
	b.WriteString("Options resolved with:")
	for _, opt := range o.schema.Options() {
		b.WriteString("\n")
		b.WriteString(opt.Name)
		b.WriteString(": ")
		b.WriteString(o.displayValue(opt))
	}
	return b.String()
}

// LogValue renders the options as a masked slog group, one attribute
// per option. Sensitive values never reach the log sink in plain form.
func (o *Options) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, o.schema.Len())
	for _, opt := range o.schema.Options() {
		attrs = append(attrs, slog.String(opt.AttrName(), o.displayValue(opt)))
	}
	return slog.GroupValue(attrs...)
}

func (o *Options) displayValue(opt Option) string {
	if opt.Sensitive {
		return maskToken
	}
	v := o.values[opt.Name]
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}
