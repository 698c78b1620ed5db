package typedargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typedargs/typedargs/schema"
)

func coercerFor(t *testing.T, typ *schema.Type) coercer {
	t.Helper()
	info, err := classify(&schema.Field{Name: "x", Alias: "x", Type: typ})
	require.NoError(t, err)
	return synthesizeCoercer(info)
}

func TestSynthesizeCoercer(t *testing.T) {
	t.Run("Should pass non-string values through untouched", func(t *testing.T) {
		coerce := coercerFor(t, schema.Literal("red", "green"))
		assert.Equal(t, 42, coerce(42))
		assert.Equal(t, []string{"a"}, coerce([]string{"a"}))
		assert.Equal(t, true, coerce(true))
	})

	t.Run("Should turn the empty string into the absence sentinel", func(t *testing.T) {
		for _, typ := range []*schema.Type{
			schema.String(), schema.Literal("a"), schema.Map(),
		} {
			coerce := coercerFor(t, typ)
			assert.Nil(t, coerce(""))
		}
	})

	t.Run("Should return the raw token unchanged on failure", func(t *testing.T) {
		coerce := coercerFor(t, schema.Literal("red", "green"))
		assert.Equal(t, "purple", coerce("purple"))
	})

	t.Run("Should resolve literal tokens to their declared values", func(t *testing.T) {
		coerce := coercerFor(t, schema.Literal(8, 16, 32))
		assert.Equal(t, 16, coerce("16"))
	})

	t.Run("Should resolve enum tokens by member name", func(t *testing.T) {
		coerce := coercerFor(t, schema.Enum(
			schema.Member{Name: "debug", Value: 10},
			schema.Member{Name: "info", Value: 20},
		))
		assert.Equal(t, 20, coerce("info"))
		assert.Equal(t, "verbose", coerce("verbose"))
	})

	t.Run("Should parse mapping literals into maps", func(t *testing.T) {
		coerce := coercerFor(t, schema.Map())
		got := coerce(`{region: us-east-1, retries: 3}`)
		require.IsType(t, map[string]any{}, got)
		m := got.(map[string]any)
		assert.Equal(t, "us-east-1", m["region"])
		assert.EqualValues(t, 3, m["retries"])
	})

	t.Run("Should keep malformed mapping literals as raw tokens", func(t *testing.T) {
		coerce := coercerFor(t, schema.Map())
		assert.Equal(t, "{broken", coerce("{broken"))
	})

	t.Run("Should leave scalar tokens to the construction step", func(t *testing.T) {
		coerce := coercerFor(t, schema.Int())
		assert.Equal(t, "17", coerce("17"))
	})
}

func TestCoercerRoundTrip(t *testing.T) {
	t.Run("Should re-accept the string form of every literal choice", func(t *testing.T) {
		choices := []any{"red", 8, 2.5, true}
		coerce := coercerFor(t, schema.Literal(choices...))
		for _, c := range choices {
			got := coerce(stringForm(c))
			assert.Equal(t, c, got)
			assert.Equal(t, got, coerce(stringForm(got)))
		}
	})

	t.Run("Should re-accept enum member names", func(t *testing.T) {
		members := []schema.Member{
			{Name: "low", Value: "low"},
			{Name: "high", Value: "high"},
		}
		coerce := coercerFor(t, schema.Enum(members...))
		for _, m := range members {
			assert.Equal(t, m.Value, coerce(m.Name))
		}
	})
}
