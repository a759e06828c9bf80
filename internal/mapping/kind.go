package mapping

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the declared kind of an injection parameter.
type Kind int

const (
	// KindUnknown is any declared type the engine cannot bind.
	KindUnknown Kind = iota
	// KindRawNode receives the matched method record itself.
	KindRawNode
	KindClass
	KindField
	KindMethod
)

// IsMapping reports whether values of this kind are resolved from metadata.
func (k Kind) IsMapping() bool {
	return k == KindClass || k == KindField || k == KindMethod
}
