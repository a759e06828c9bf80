package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRegister(t *testing.T) {
	sets := []Services{
		NewServices(),
		NewServices("x"),
		NewServices("y", "z"),
		NewServices("x", "legacy"),
	}

	for _, s := range sets {
		t.Run(stringsOf(s), func(t *testing.T) {
			assert.Equal(t, !s.Has("x"), ShouldRegister("!x", s))
			assert.Equal(t, s.Has("x"), ShouldRegister("x", s))
			assert.True(t, ShouldRegister("", s))
		})
	}
}

func TestShouldRegisterLegacyScenario(t *testing.T) {
	assert.False(t, ShouldRegister("!legacy", NewServices("legacy")))
	assert.True(t, ShouldRegister("!legacy", NewServices()))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Predicate
	}{
		{"", Predicate{}},
		{"foo", Predicate{Service: "foo"}},
		{"!foo", Predicate{Negated: true, Service: "foo"}},
		{"  ! foo ", Predicate{Negated: true, Service: "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Parse(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "!foo", Parse("!foo").String())
	assert.True(t, Parse("").IsZero())
}

func TestEvalDoesNotMutate(t *testing.T) {
	s := NewServices("a", " ", "b")

	ShouldRegister("!a", s)
	ShouldRegister("c", s)

	assert.Equal(t, []string{"a", "b"}, s.Names())
	assert.Equal(t, 2, s.Len())
}

func stringsOf(s Services) string {
	names := s.Names()
	if len(names) == 0 {
		return "empty"
	}

	out := names[0]
	for _, n := range names[1:] {
		out += "," + n
	}

	return out
}
