package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsCollect(t *testing.T) {
	var d Diagnostics

	assert.NoError(t, d.Error())

	d.AddInfo(CodeInjectionSkipped, "service legacy is present", "FlightPatch", "onTravel")
	d.AddWarning(CodeNotCallable, "Fn is not a func", "FlightPatch", "broken")
	d.AddError(CodeDuplicateClass, "duplicate class", "a/B", "")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{CodeDuplicateClass, CodeNotCallable, CodeInjectionSkipped}, d.Codes())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "[a/B]: [duplicate_class] duplicate class", err.Error())
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("x", "first", "", "")
	b.AddError("y", "second", "", "m")
	a.Merge(b)

	require.Len(t, a.All(), 2)
	assert.Equal(t, "m: [y] second", a.Errors[0].String())
	assert.Equal(t, SeverityError, a.Errors[0].Severity)
	assert.Equal(t, "error", a.Errors[0].Severity.String())
}
