// Package options describes the configurable settings a bot exposes and
// validates the values users provide for them.
package options

import (
	"fmt"

	"github.com/spacebear01/osbc/internal/model"
)

// OptionType identifies the kind of control an option is edited with.
type OptionType string

const (
	// OptionTypeSlider is a bounded integer option.
	OptionTypeSlider OptionType = "slider"
	// OptionTypeCheckbox is a multi-select option over a fixed set of choices.
	OptionTypeCheckbox OptionType = "checkbox"
	// OptionTypeDropdown is a single-select option over a fixed set of choices.
	OptionTypeDropdown OptionType = "dropdown"
	// OptionTypeText is a free-form text option.
	OptionTypeText OptionType = "text"
)

// Option describes a single configurable setting.
type Option struct {
	Key         string
	Label       string
	Type        OptionType
	Min         int      // slider lower bound
	Max         int      // slider upper bound
	Choices     []string // checkbox and dropdown choices
	Placeholder string   // text hint
}

// Schema is the full set of options a bot exposes.
type Schema struct {
	Title   string
	Options []Option
}

// Values holds the user-provided value for each option, keyed by option key.
type Values map[string]any

// Builder accumulates option declarations into a Schema.
type Builder struct {
	title string
	opts  []Option
}

// NewBuilder returns a Builder for a schema with the given title.
func NewBuilder(title string) *Builder {
	return &Builder{title: title}
}

// AddSlider declares a bounded integer option.
func (b *Builder) AddSlider(key, label string, min, max int) {
	b.opts = append(b.opts, Option{Key: key, Label: label, Type: OptionTypeSlider, Min: min, Max: max})
}

// AddCheckbox declares a multi-select option over the given choices.
func (b *Builder) AddCheckbox(key, label string, choices ...string) {
	b.opts = append(b.opts, Option{Key: key, Label: label, Type: OptionTypeCheckbox, Choices: choices})
}

// AddDropdown declares a single-select option over the given choices.
func (b *Builder) AddDropdown(key, label string, choices ...string) {
	b.opts = append(b.opts, Option{Key: key, Label: label, Type: OptionTypeDropdown, Choices: choices})
}

// AddText declares a free-form text option.
func (b *Builder) AddText(key, label, placeholder string) {
	b.opts = append(b.opts, Option{Key: key, Label: label, Type: OptionTypeText, Placeholder: placeholder})
}

// Build validates the accumulated declarations and returns the schema.
func (b *Builder) Build() (Schema, error) {
	if b.title == "" {
		return Schema{}, fmt.Errorf("title is required: %w", model.ErrNotValid)
	}

	seen := map[string]struct{}{}
	for _, opt := range b.opts {
		if opt.Key == "" {
			return Schema{}, fmt.Errorf("option key is required: %w", model.ErrNotValid)
		}
		if _, ok := seen[opt.Key]; ok {
			return Schema{}, fmt.Errorf("duplicate option key %q: %w", opt.Key, model.ErrNotValid)
		}
		seen[opt.Key] = struct{}{}

		switch opt.Type {
		case OptionTypeSlider:
			if opt.Min >= opt.Max {
				return Schema{}, fmt.Errorf("slider %q bounds must satisfy min < max: %w", opt.Key, model.ErrNotValid)
			}
		case OptionTypeCheckbox, OptionTypeDropdown:
			if len(opt.Choices) == 0 {
				return Schema{}, fmt.Errorf("option %q needs at least one choice: %w", opt.Key, model.ErrNotValid)
			}
		}
	}

	return Schema{Title: b.title, Options: b.opts}, nil
}

// Validate checks the given values against the schema. Every declared option
// must be present, no unknown keys are allowed, and each value must fit its
// option's type and constraints.
func (s Schema) Validate(values Values) error {
	declared := map[string]struct{}{}
	for _, opt := range s.Options {
		declared[opt.Key] = struct{}{}
	}

	for key := range values {
		if _, ok := declared[key]; !ok {
			return fmt.Errorf("unknown option %q: %w", key, model.ErrNotValid)
		}
	}

	for _, opt := range s.Options {
		raw, ok := values[opt.Key]
		if !ok {
			return fmt.Errorf("option %q is not set: %w", opt.Key, model.ErrNotValid)
		}
		if err := opt.validate(raw); err != nil {
			return fmt.Errorf("option %q: %w", opt.Key, err)
		}
	}

	return nil
}

// Defaults returns a value set with every option at its default: sliders at
// their lower bound, dropdowns at their first choice, checkboxes and text
// empty.
func (s Schema) Defaults() Values {
	values := Values{}
	for _, opt := range s.Options {
		switch opt.Type {
		case OptionTypeSlider:
			values[opt.Key] = opt.Min
		case OptionTypeCheckbox:
			values[opt.Key] = []string{}
		case OptionTypeDropdown:
			values[opt.Key] = opt.Choices[0]
		case OptionTypeText:
			values[opt.Key] = ""
		}
	}
	return values
}

func (o Option) validate(raw any) error {
	switch o.Type {
	case OptionTypeSlider:
		v, ok := asInt(raw)
		if !ok {
			return fmt.Errorf("expected an integer, got %T: %w", raw, model.ErrNotValid)
		}
		if v < o.Min || v > o.Max {
			return fmt.Errorf("%d is outside [%d, %d]: %w", v, o.Min, o.Max, model.ErrNotValid)
		}

	case OptionTypeCheckbox:
		vs, ok := asStringSlice(raw)
		if !ok {
			return fmt.Errorf("expected a list of strings, got %T: %w", raw, model.ErrNotValid)
		}
		for _, v := range vs {
			if !contains(o.Choices, v) {
				return fmt.Errorf("%q is not a valid choice: %w", v, model.ErrNotValid)
			}
		}

	case OptionTypeDropdown:
		v, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T: %w", raw, model.ErrNotValid)
		}
		if !contains(o.Choices, v) {
			return fmt.Errorf("%q is not a valid choice: %w", v, model.ErrNotValid)
		}

	case OptionTypeText:
		if _, ok := raw.(string); !ok {
			return fmt.Errorf("expected a string, got %T: %w", raw, model.ErrNotValid)
		}

	default:
		return fmt.Errorf("unknown option type %q: %w", o.Type, model.ErrNotValid)
	}

	return nil
}

// Int returns the value for key as an int. Missing keys and values of other
// types return 0.
func (v Values) Int(key string) int {
	n, _ := asInt(v[key])
	return n
}

// String returns the value for key as a string, or "" when absent.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// StringSlice returns the value for key as a string slice, or nil when absent.
func (v Values) StringSlice(key string) []string {
	vs, ok := asStringSlice(v[key])
	if !ok {
		return nil
	}
	return vs
}

// asInt normalizes the numeric types YAML decoding may produce.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// asStringSlice normalizes string lists, including the []any form YAML
// decoding produces.
func asStringSlice(raw any) ([]string, bool) {
	switch vs := raw.(type) {
	case []string:
		return vs, true
	case []any:
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func contains(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
