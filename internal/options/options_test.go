package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
)

func buildSchema(t *testing.T) options.Schema {
	t.Helper()

	b := options.NewBuilder("Chopper")
	b.AddSlider("running_time", "How long to run (minutes)", 1, 360)
	b.AddCheckbox("trees", "Trees to chop", "oak", "willow", "yew")
	b.AddDropdown("location", "Where to chop", "varrock", "draynor")
	b.AddText("notes", "Notes", "e.g. bank when full")

	schema, err := b.Build()
	require.NoError(t, err)
	return schema
}

func TestBuilderBuild(t *testing.T) {
	tests := map[string]struct {
		build  func(b *options.Builder)
		expErr bool
	}{
		"A builder with valid options should build": {
			build: func(b *options.Builder) {
				b.AddSlider("running_time", "How long to run", 1, 360)
				b.AddDropdown("location", "Where", "varrock")
			},
			expErr: false,
		},

		"A builder with no options should build": {
			build:  func(b *options.Builder) {},
			expErr: false,
		},

		"Duplicate keys should fail": {
			build: func(b *options.Builder) {
				b.AddSlider("running_time", "How long to run", 1, 360)
				b.AddText("running_time", "How long to run", "")
			},
			expErr: true,
		},

		"An empty key should fail": {
			build: func(b *options.Builder) {
				b.AddText("", "Notes", "")
			},
			expErr: true,
		},

		"A slider with inverted bounds should fail": {
			build: func(b *options.Builder) {
				b.AddSlider("running_time", "How long to run", 360, 1)
			},
			expErr: true,
		},

		"A dropdown without choices should fail": {
			build: func(b *options.Builder) {
				b.AddDropdown("location", "Where")
			},
			expErr: true,
		},

		"A checkbox without choices should fail": {
			build: func(b *options.Builder) {
				b.AddCheckbox("trees", "Trees")
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			b := options.NewBuilder("Test bot")
			test.build(b)

			_, err := b.Build()

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuilderBuildWithoutTitle(t *testing.T) {
	_, err := options.NewBuilder("").Build()
	assert.ErrorIs(t, err, model.ErrNotValid)
}

func TestSchemaValidate(t *testing.T) {
	validValues := func() options.Values {
		return options.Values{
			"running_time": 30,
			"trees":        []string{"oak", "willow"},
			"location":     "varrock",
			"notes":        "",
		}
	}

	tests := map[string]struct {
		values func() options.Values
		expErr bool
	}{
		"Valid values should pass": {
			values: validValues,
			expErr: false,
		},

		"Checkbox values decoded as a generic list should pass": {
			values: func() options.Values {
				v := validValues()
				v["trees"] = []any{"oak", "yew"}
				return v
			},
			expErr: false,
		},

		"A missing option should fail": {
			values: func() options.Values {
				v := validValues()
				delete(v, "location")
				return v
			},
			expErr: true,
		},

		"An unknown option should fail": {
			values: func() options.Values {
				v := validValues()
				v["speed"] = 3
				return v
			},
			expErr: true,
		},

		"A slider value below the lower bound should fail": {
			values: func() options.Values {
				v := validValues()
				v["running_time"] = 0
				return v
			},
			expErr: true,
		},

		"A slider value above the upper bound should fail": {
			values: func() options.Values {
				v := validValues()
				v["running_time"] = 361
				return v
			},
			expErr: true,
		},

		"A slider value of the wrong type should fail": {
			values: func() options.Values {
				v := validValues()
				v["running_time"] = "fast"
				return v
			},
			expErr: true,
		},

		"A checkbox value outside the choices should fail": {
			values: func() options.Values {
				v := validValues()
				v["trees"] = []string{"oak", "magic"}
				return v
			},
			expErr: true,
		},

		"A dropdown value outside the choices should fail": {
			values: func() options.Values {
				v := validValues()
				v["location"] = "lumbridge"
				return v
			},
			expErr: true,
		},

		"A text value of the wrong type should fail": {
			values: func() options.Values {
				v := validValues()
				v["notes"] = 42
				return v
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			schema := buildSchema(t)

			err := schema.Validate(test.values())

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchemaDefaults(t *testing.T) {
	assert := assert.New(t)

	schema := buildSchema(t)
	values := schema.Defaults()

	assert.NoError(schema.Validate(values))
	assert.Equal(1, values.Int("running_time"))
	assert.Equal("varrock", values.String("location"))
	assert.Empty(values.StringSlice("trees"))
}

func TestValuesAccessors(t *testing.T) {
	values := options.Values{
		"running_time": 30,
		"trees":        []any{"oak", "willow"},
		"location":     "varrock",
	}

	assert := assert.New(t)
	assert.Equal(30, values.Int("running_time"))
	assert.Equal([]string{"oak", "willow"}, values.StringSlice("trees"))
	assert.Equal("varrock", values.String("location"))

	// Missing keys fall back to zero values.
	assert.Equal(0, values.Int("missing"))
	assert.Equal("", values.String("missing"))
	assert.Nil(values.StringSlice("missing"))
}
