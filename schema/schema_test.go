package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Should build a schema and derive hyphenated aliases", func(t *testing.T) {
		s, err := New("arguments",
			&Field{Name: "max_size", Type: Int(), Required: true},
			&Field{Name: "verbose", Type: Bool(), Default: Supplied(false)},
		)
		require.NoError(t, err)
		require.Len(t, s.Fields, 2)
		assert.Equal(t, "max-size", s.Fields[0].Alias)
		assert.Equal(t, "verbose", s.Fields[1].Alias)
	})

	t.Run("Should keep an explicit alias verbatim", func(t *testing.T) {
		s, err := New("arguments",
			&Field{Name: "workers", Alias: "jobs", Type: Int(), Required: true},
		)
		require.NoError(t, err)
		assert.Equal(t, "jobs", s.Fields[0].Alias)
	})

	t.Run("Should reject a required field with a default", func(t *testing.T) {
		_, err := New("arguments",
			&Field{Name: "count", Type: Int(), Required: true, Default: Supplied(1)},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot carry a default")
	})

	t.Run("Should reject an optional field without a default", func(t *testing.T) {
		_, err := New("arguments",
			&Field{Name: "count", Type: Int()},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs a default")
	})

	t.Run("Should accept an explicitly absent default", func(t *testing.T) {
		_, err := New("arguments",
			&Field{Name: "color", Type: Optional(String()), Default: Absent()},
		)
		assert.NoError(t, err)
	})

	t.Run("Should reject a default combined with a default factory", func(t *testing.T) {
		_, err := New("arguments",
			&Field{
				Name:        "tags",
				Type:        List(String()),
				Default:     Supplied([]string{}),
				DefaultFunc: func() any { return []string{} },
			},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("Should reject duplicate field names", func(t *testing.T) {
		_, err := New("arguments",
			&Field{Name: "count", Type: Int(), Required: true},
			&Field{Name: "count", Type: Int(), Required: true},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared twice")
	})

	t.Run("Should reject aliases that collide after hyphen mapping", func(t *testing.T) {
		_, err := New("arguments",
			&Field{Name: "max_size", Type: Int(), Required: true},
			&Field{Name: "max", Alias: "max-size", Type: Int(), Required: true},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "alias")
	})

	t.Run("Should reject an empty literal type", func(t *testing.T) {
		_, err := New("arguments",
			&Field{Name: "color", Type: Literal(), Required: true},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one choice")
	})

	t.Run("Should reject duplicate enum member names", func(t *testing.T) {
		_, err := New("arguments",
			&Field{
				Name:     "level",
				Type:     Enum(Member{Name: "DEBUG", Value: 10}, Member{Name: "DEBUG", Value: 20}),
				Required: true,
			},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared twice")
	})
}

func TestFieldDefaultValue(t *testing.T) {
	t.Run("Should resolve a supplied default", func(t *testing.T) {
		f := &Field{Name: "count", Type: Int(), Default: Supplied(3)}
		v, ok := f.DefaultValue()
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("Should resolve an absent default to nil", func(t *testing.T) {
		f := &Field{Name: "color", Type: Optional(String()), Default: Absent()}
		v, ok := f.DefaultValue()
		require.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Should invoke the default factory", func(t *testing.T) {
		f := &Field{Name: "tags", Type: List(String()), DefaultFunc: func() any { return []string{"a"} }}
		v, ok := f.DefaultValue()
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, v)
	})

	t.Run("Should report no default for required fields", func(t *testing.T) {
		f := &Field{Name: "name", Type: String(), Required: true}
		_, ok := f.DefaultValue()
		assert.False(t, ok)
	})
}

func TestTypeConcrete(t *testing.T) {
	t.Run("Should return a plain type as its own branch", func(t *testing.T) {
		branches, allowsAbsent := Int().Concrete()
		require.Len(t, branches, 1)
		assert.Equal(t, KindInt, branches[0].Kind)
		assert.False(t, allowsAbsent)
	})

	t.Run("Should unwrap an optional and record the absence branch", func(t *testing.T) {
		branches, allowsAbsent := Optional(String()).Concrete()
		require.Len(t, branches, 1)
		assert.Equal(t, KindString, branches[0].Kind)
		assert.True(t, allowsAbsent)
	})

	t.Run("Should flatten nested unions", func(t *testing.T) {
		ty := Optional(Union(Literal("a"), Literal("b")))
		branches, allowsAbsent := ty.Concrete()
		require.Len(t, branches, 2)
		assert.Equal(t, KindLiteral, branches[0].Kind)
		assert.Equal(t, KindLiteral, branches[1].Kind)
		assert.True(t, allowsAbsent)
	})

	t.Run("Should leave no branches for a bare absence type", func(t *testing.T) {
		branches, allowsAbsent := None().Concrete()
		assert.Empty(t, branches)
		assert.True(t, allowsAbsent)
	})
}

func TestValue(t *testing.T) {
	t.Run("Should distinguish supplied, absent and unset", func(t *testing.T) {
		assert.True(t, Supplied(1).IsSupplied())
		assert.True(t, Absent().IsAbsent())
		assert.True(t, Value{}.IsUnset())
	})

	t.Run("Should return the wrapped value only when supplied", func(t *testing.T) {
		assert.Equal(t, "x", Supplied("x").Get())
		assert.Nil(t, Absent().Get())
		assert.Nil(t, Value{}.Get())
	})
}
