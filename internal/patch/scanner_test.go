package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"classpatch/internal/classfile"
	"classpatch/internal/diagnostic"
	"classpatch/internal/gate"
	"classpatch/internal/mapping"
	"classpatch/internal/transform"
)

type thingPatch struct {
	calls int
}

func (p *thingPatch) doThing(node *classfile.MethodNode) {
	p.calls++
	node.InsertHead(classfile.Op(classfile.Nop))
}

func (p *thingPatch) Injections() []Injection {
	return []Injection{{
		Name:   "doThing",
		Fn:     p.doThing,
		Target: &mapping.MethodMapping{Owner: "a/Thing", Name: "doThing", Desc: "(I)V"},
	}}
}

func target(desc string) *mapping.MethodMapping {
	return &mapping.MethodMapping{Owner: "a/Thing", Name: "doThing", Desc: desc}
}

func nop(*classfile.MethodNode) {}

func unitNames(units []*transform.Unit) []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name()
	}

	return names
}

func TestScanUngatedWithEmptyServices(t *testing.T) {
	p := &thingPatch{}

	units, err := NewScanner(nil, gate.NewServices(), nil).Scan(p)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "a/Thing.doThing(I)V", units[0].String())
	assert.Equal(t, "thingPatch", units[0].Patch())
	assert.Equal(t, []transform.Target{"a/Thing"}, units[0].Targets())

	class := &classfile.ClassNode{
		Name:    "a/Thing",
		Methods: []*classfile.MethodNode{{Name: "doThing", Desc: "(I)V"}},
	}

	units[0].Transform(class, transform.Context{Class: "a/Thing"})
	assert.Equal(t, 1, p.calls)
	assert.Len(t, class.Methods[0].Instructions, 1)
}

func TestScanNegatedGate(t *testing.T) {
	p := Func{
		PatchName: "Legacy",
		Points:    []Injection{{Name: "modern", Fn: nop, Target: target("(I)V"), When: "!legacy"}},
	}

	core, logs := observer.New(zapcore.InfoLevel)
	s := NewScanner(nil, gate.NewServices("legacy"), zap.New(core))

	units, err := s.Scan(p)
	require.NoError(t, err)
	assert.Empty(t, units)

	skipped := logs.FilterMessage("Skipping injection").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "modern", skipped[0].ContextMap()["injection"])
	assert.Equal(t, "legacy", skipped[0].ContextMap()["service"])
	assert.Equal(t, true, skipped[0].ContextMap()["present"])

	diags := s.Diagnostics()
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeInjectionSkipped, diags.Infos[0].Code)
	assert.Equal(t, "Legacy", diags.Infos[0].Subject)
	assert.Equal(t, "modern", diags.Infos[0].Member)
	assert.False(t, diags.HasErrors())

	units, err = NewScanner(nil, gate.NewServices(), nil).Scan(p)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestScanKeepsDeclarationOrder(t *testing.T) {
	p := Func{Points: []Injection{
		{Name: "a", Fn: nop, Target: target("(I)V")},
		{Name: "b", Fn: nop, Target: target("(I)V"), When: "optifine"},
		{Name: "c", Fn: nop, Target: target("(J)V"), When: "!optifine"},
		{Name: "d", Fn: nop, Target: target("(I)V"), When: "!forge"},
		{Name: "e", Fn: nop, Target: target("(Z)V")},
	}}

	units, err := NewScanner(nil, gate.NewServices("forge"), nil).Scan(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "e"}, unitNames(units))

	units, err = NewScanner(nil, gate.NewServices("optifine"), nil).Scan(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "e"}, unitNames(units))
}

func TestScanIgnoresIncompleteDeclarations(t *testing.T) {
	var nilFn func(*classfile.MethodNode)

	p := Func{Points: []Injection{
		{Name: "noTarget", Fn: nop},
		{Name: "noFn", Target: target("(I)V")},
		{Name: "nilFn", Fn: nilFn, Target: target("(I)V")},
		{Name: "notFunc", Fn: 42, Target: target("(I)V")},
		{Name: "ok", Fn: nop, Target: target("(I)V")},
	}}

	s := NewScanner(nil, gate.NewServices(), nil)

	units, err := s.Scan(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, unitNames(units))

	diags := s.Diagnostics()
	assert.Equal(t, []string{
		diagnostic.CodeNotCallable,
		diagnostic.CodeInjectionIgnored,
		diagnostic.CodeInjectionIgnored,
		diagnostic.CodeInjectionIgnored,
	}, diags.Codes())
}

func TestScanSkipsDuplicateCallables(t *testing.T) {
	p := Func{Points: []Injection{
		{Name: "inject", Fn: nop, Target: target("(I)V")},
		{Name: "inject", Fn: nop, Target: target("(J)V")},
		{Fn: nop, Target: target("(I)V")},
		{Fn: nop, Target: target("(I)V")},
	}}

	s := NewScanner(nil, gate.NewServices(), nil)

	units, err := s.Scan(p)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, "a/Thing.doThing(I)V", units[0].String())
	assert.Equal(t, []string{"inject", "injection#2", "injection#3"}, unitNames(units))

	diags := s.Diagnostics()
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeDuplicateCallable, diags.Warnings[0].Code)
}

func TestScanComplementaryGatesShareName(t *testing.T) {
	p := Func{Points: []Injection{
		{Name: "inject", Fn: nop, Target: target("(I)V"), When: "optifine"},
		{Name: "inject", Fn: nop, Target: target("(J)V"), When: "!optifine"},
	}}

	s := NewScanner(nil, gate.NewServices(), nil)

	units, err := s.Scan(p)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "a/Thing.doThing(J)V", units[0].String())

	diags := s.Diagnostics()
	assert.Empty(t, diags.Warnings)
	assert.Equal(t, []string{diagnostic.CodeInjectionSkipped}, diags.Codes())

	units, err = NewScanner(nil, gate.NewServices("optifine"), nil).Scan(p)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "a/Thing.doThing(I)V", units[0].String())
}

func TestScanUnmappedParameterIsFatal(t *testing.T) {
	p := Func{Points: []Injection{
		{Name: "ok", Fn: nop, Target: target("(I)V")},
		{Name: "broken", Fn: func(*classfile.MethodNode, mapping.Field) {}, Target: target("(I)V")},
	}}

	units, err := NewScanner(nil, gate.NewServices(), nil).Scan(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapping.ErrUnmappedParameter)
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, units)
}

func TestScanGatedDeclarationIsNotResolved(t *testing.T) {
	p := Func{Points: []Injection{
		{Name: "broken", Fn: func(mapping.Field) {}, Target: target("(I)V"), When: "missing"},
	}}

	units, err := NewScanner(nil, gate.NewServices(), nil).Scan(p)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestScanBadTargetIsFatal(t *testing.T) {
	p := Func{Points: []Injection{{Name: "bad", Fn: nop, Target: target("(I")}}}

	_, err := NewScanner(nil, gate.NewServices(), nil).Scan(p)
	assert.ErrorIs(t, err, mapping.ErrBadMapping)
}

func TestScanResolvesThroughTable(t *testing.T) {
	table := mapping.NewTable()
	table.AddClass("a/Thing", "bq")
	table.AddMethod("a/Thing", "doThing", "(I)V", "func_5")
	table.AddField("a/Thing", "count", "field_9")

	r, err := mapping.NewResolver(table, 16)
	require.NoError(t, err)

	var got mapping.Field

	p := Func{Points: []Injection{{
		Name:   "count",
		Fn:     func(node *classfile.MethodNode, f mapping.Field) { got = f },
		Target: target("(I)V"),
		Args:   []mapping.Metadata{{}, mapping.FieldRef("a/Thing", "count", "I")},
	}}}

	units, err := NewScanner(r, gate.NewServices(), nil).Scan(p)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, []transform.Target{"bq"}, units[0].Targets())

	class := &classfile.ClassNode{
		Name:    "bq",
		Methods: []*classfile.MethodNode{{Name: "func_5", Desc: "(I)V"}},
	}

	res := units[0].Apply(class)
	require.NoError(t, res.Err)
	assert.Equal(t, "field_9", got.RuntimeName())
}

func TestScanAll(t *testing.T) {
	good := Func{PatchName: "good", Points: []Injection{{Name: "a", Fn: nop, Target: target("(I)V")}}}
	other := &thingPatch{}
	bad := Func{PatchName: "bad", Points: []Injection{{Name: "b", Fn: func(mapping.Class) {}, Target: target("(I)V")}}}

	s := NewScanner(nil, gate.NewServices(), nil)

	units, err := s.ScanAll(good, nil, other)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "doThing"}, unitNames(units))

	units, err = s.ScanAll(good, bad, other)
	require.ErrorIs(t, err, mapping.ErrUnmappedParameter)
	assert.Nil(t, units)
}

func TestName(t *testing.T) {
	assert.Equal(t, "thingPatch", Name(&thingPatch{}))
	assert.Equal(t, "Nuker", Name(Func{PatchName: "Nuker"}))
	assert.Equal(t, "Func", Name(Func{}))
}
