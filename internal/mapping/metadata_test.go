package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref  string
		want Metadata
	}{
		{"a/b/C", ClassRef("a/b/C")},
		{"a/b/C.field", FieldRef("a/b/C", "field", "")},
		{"a/b/C.field:[I", FieldRef("a/b/C", "field", "[I")},
		{"a/b/C.doThing(I)V", MethodRef("a/b/C", "doThing", "(I)V")},
		{" a/b/C.<init>()V ", MethodRef("a/b/C", "<init>", "()V")},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseRef(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRefInvalid(t *testing.T) {
	for _, ref := range []string{"", ".x", "a/B.", "a/B.(I)V", "a/B.x(I", "a/B.x:Q"} {
		t.Run(ref, func(t *testing.T) {
			_, err := ParseRef(ref)
			assert.ErrorIs(t, err, ErrBadMapping)
		})
	}

	assert.Panics(t, func() { MustParseRef("a/B.x(") })
}

func TestMethodMappingDescriptor(t *testing.T) {
	assert.Equal(t, "()V", MethodMapping{}.Descriptor())
	assert.Equal(t, "(IJ)Z", MethodMapping{Args: []string{"I", "J"}, Return: "Z"}.Descriptor())
	assert.Equal(t, "(D)V", MethodMapping{Desc: "(D)V", Args: []string{"I"}}.Descriptor())
}

func TestMetadataHas(t *testing.T) {
	md := ClassRef("a/B")

	assert.True(t, md.Has(KindClass))
	assert.False(t, md.Has(KindField))
	assert.False(t, md.Has(KindRawNode))
	assert.False(t, md.IsZero())
	assert.True(t, Metadata{}.IsZero())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "RawNode", KindRawNode.String())
	assert.Equal(t, "Method", KindMethod.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.True(t, KindField.IsMapping())
	assert.False(t, KindRawNode.IsMapping())
}
