package typedargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedargs/typedargs/schema"
)

func classified(t *testing.T, f *schema.Field) *typeInfo {
	t.Helper()
	info, err := classify(f)
	require.NoError(t, err)
	return info
}

func TestSynthesizeBoolean(t *testing.T) {
	t.Run("Should offer both polarities for a required boolean", func(t *testing.T) {
		f := &schema.Field{Name: "flag", Alias: "flag", Type: schema.Bool(), Required: true}
		specs := synthesizeBoolean(f, classified(t, f))

		require.Len(t, specs, 2)
		assert.Equal(t, "flag", specs[0].name)
		assert.Equal(t, "true", specs[0].constant)
		assert.False(t, specs[0].takesValue)
		assert.False(t, specs[0].secondary)
		assert.Equal(t, "no-flag", specs[1].name)
		assert.Equal(t, "false", specs[1].constant)
		assert.True(t, specs[1].secondary)
		assert.Equal(t, specs[0].dest, specs[1].dest)
	})

	t.Run("Should invert the flag when the default is truthy", func(t *testing.T) {
		f := &schema.Field{Name: "cache", Alias: "cache", Type: schema.Bool(), Default: schema.Supplied(true)}
		specs := synthesizeBoolean(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.Equal(t, "no-cache", specs[0].name)
		assert.Equal(t, "false", specs[0].constant)
	})

	t.Run("Should keep the plain flag when the default is falsy", func(t *testing.T) {
		f := &schema.Field{Name: "verbose", Alias: "verbose", Type: schema.Bool(), Default: schema.Supplied(false)}
		specs := synthesizeBoolean(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.Equal(t, "verbose", specs[0].name)
		assert.Equal(t, "true", specs[0].constant)
	})
}

func TestSynthesizeLiteral(t *testing.T) {
	t.Run("Should take a value when more than one choice exists", func(t *testing.T) {
		f := &schema.Field{Name: "color", Alias: "color", Type: schema.Literal("red", "green", "blue"), Required: true}
		specs := synthesizeLiteral(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.True(t, specs[0].takesValue)
		assert.Equal(t, "{red, green, blue}", specs[0].metavar)
	})

	t.Run("Should collapse a single optional choice to a flag", func(t *testing.T) {
		f := &schema.Field{Name: "mode", Alias: "mode", Type: schema.Literal("fast"), Default: schema.Absent()}
		specs := synthesizeLiteral(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.False(t, specs[0].takesValue)
		assert.Equal(t, "fast", specs[0].constant)
	})

	t.Run("Should keep a required single choice value-taking", func(t *testing.T) {
		f := &schema.Field{Name: "mode", Alias: "mode", Type: schema.Literal("fast"), Required: true}
		specs := synthesizeLiteral(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.True(t, specs[0].takesValue)
	})

	t.Run("Should add a clearing flag when absence is allowed and a default is present", func(t *testing.T) {
		f := &schema.Field{
			Name:    "mode",
			Alias:   "mode",
			Type:    schema.Optional(schema.Literal("fast")),
			Default: schema.Supplied("fast"),
		}
		specs := synthesizeLiteral(f, classified(t, f))

		require.Len(t, specs, 2)
		assert.Equal(t, "mode", specs[0].name)
		assert.Equal(t, "fast", specs[0].constant)
		assert.Equal(t, "no-mode", specs[1].name)
		assert.Equal(t, "", specs[1].constant)
		assert.True(t, specs[1].secondary)
	})

	t.Run("Should not add a clearing flag when the default is the absence sentinel", func(t *testing.T) {
		f := &schema.Field{
			Name:    "mode",
			Alias:   "mode",
			Type:    schema.Optional(schema.Literal("fast")),
			Default: schema.Absent(),
		}
		specs := synthesizeLiteral(f, classified(t, f))

		require.Len(t, specs, 1)
	})

	t.Run("Should render non-string choices by their string form", func(t *testing.T) {
		f := &schema.Field{Name: "bits", Alias: "bits", Type: schema.Literal(8, 16, 32), Required: true}
		specs := synthesizeLiteral(f, classified(t, f))

		assert.Equal(t, "{8, 16, 32}", specs[0].metavar)
	})
}

func TestSynthesizeEnum(t *testing.T) {
	members := []schema.Member{
		{Name: "debug", Value: 10},
		{Name: "info", Value: 20},
	}

	t.Run("Should take a member name when more than one member exists", func(t *testing.T) {
		f := &schema.Field{Name: "level", Alias: "level", Type: schema.Enum(members...), Required: true}
		specs := synthesizeEnum(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.True(t, specs[0].takesValue)
		assert.Equal(t, "{debug, info}", specs[0].metavar)
	})

	t.Run("Should collapse a single optional member to a flag storing its name", func(t *testing.T) {
		f := &schema.Field{
			Name:    "level",
			Alias:   "level",
			Type:    schema.Enum(members[0]),
			Default: schema.Absent(),
		}
		specs := synthesizeEnum(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.False(t, specs[0].takesValue)
		assert.Equal(t, "debug", specs[0].constant)
	})
}

func TestSynthesizeContainerAndMapping(t *testing.T) {
	t.Run("Should mark containers repeatable", func(t *testing.T) {
		f := &schema.Field{Name: "tags", Alias: "tags", Type: schema.List(schema.String()), Required: true}
		specs := synthesizeContainer(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.True(t, specs[0].repeatable)
		assert.True(t, specs[0].takesValue)
		assert.Equal(t, "TAGS", specs[0].metavar)
	})

	t.Run("Should keep mappings single-valued", func(t *testing.T) {
		f := &schema.Field{Name: "extra", Alias: "extra", Type: schema.Map(), Required: true}
		specs := synthesizeMapping(f, classified(t, f))

		require.Len(t, specs, 1)
		assert.False(t, specs[0].repeatable)
		assert.True(t, specs[0].takesValue)
	})
}

func TestArgumentNaming(t *testing.T) {
	t.Run("Should map underscores to hyphens", func(t *testing.T) {
		f := &schema.Field{Name: "log_level", Alias: "log_level", Type: schema.String(), Required: true}
		specs := synthesizeScalar(f, classified(t, f))

		assert.Equal(t, "log-level", specs[0].name)
		assert.Equal(t, "log_level", specs[0].dest)
	})

	t.Run("Should upper-case the alias as the placeholder", func(t *testing.T) {
		f := &schema.Field{Name: "name", Alias: "name", Type: schema.String(), Required: true}
		specs := synthesizeScalar(f, classified(t, f))

		assert.Equal(t, "NAME", specs[0].metavar)
	})
}

func TestHelpFor(t *testing.T) {
	t.Run("Should join description and rendered default", func(t *testing.T) {
		f := &schema.Field{
			Name:        "count",
			Alias:       "count",
			Type:        schema.Int(),
			Default:     schema.Supplied(3),
			Description: "how many",
		}
		assert.Equal(t, "how many (default: 3)", helpFor(f))
	})

	t.Run("Should render the absence sentinel as none", func(t *testing.T) {
		f := &schema.Field{
			Name:        "mode",
			Alias:       "mode",
			Type:        schema.Optional(schema.String()),
			Default:     schema.Absent(),
			Description: "pick one",
		}
		assert.Equal(t, "pick one (default: none)", helpFor(f))
	})

	t.Run("Should omit the default for required fields", func(t *testing.T) {
		f := &schema.Field{Name: "name", Alias: "name", Type: schema.String(), Required: true, Description: "the name"}
		assert.Equal(t, "the name", helpFor(f))
	})

	t.Run("Should omit the description when empty", func(t *testing.T) {
		f := &schema.Field{Name: "count", Alias: "count", Type: schema.Int(), Default: schema.Supplied(1)}
		assert.Equal(t, "(default: 1)", helpFor(f))
	})

	t.Run("Should redact secret defaults", func(t *testing.T) {
		f := &schema.Field{
			Name:    "token",
			Alias:   "token",
			Type:    schema.Secret(),
			Default: schema.Supplied(schema.SecretString("hunter2")),
		}
		assert.Equal(t, "(default: [REDACTED])", helpFor(f))
	})
}

func TestTruthy(t *testing.T) {
	t.Run("Should treat zero values and nil as falsy", func(t *testing.T) {
		for _, v := range []any{nil, false, "", 0, int64(0), 0.0} {
			assert.False(t, truthy(v), "value %#v", v)
		}
	})

	t.Run("Should treat non-zero values as truthy", func(t *testing.T) {
		for _, v := range []any{true, "x", 1, int64(2), 0.5, []string{}} {
			assert.True(t, truthy(v), "value %#v", v)
		}
	})
}
