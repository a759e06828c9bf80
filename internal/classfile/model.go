package classfile

import (
	"fmt"
	"slices"
)

// ClassNode is the structural model of one class file.
type ClassNode struct {
	MinorVersion uint16
	MajorVersion uint16
	Access       uint16

	// Name is the internal name, e.g. "net/minecraft/entity/Entity".
	Name       string
	SuperName  string
	Interfaces []string

	Fields  []*FieldNode
	Methods []*MethodNode
}

// FieldNode is a field declared by a class.
type FieldNode struct {
	Access uint16
	Name   string
	Desc   string
}

// MethodNode is a method declared by a class. Instructions is the mutable
// body that patches rewrite in place.
type MethodNode struct {
	Access    uint16
	Name      string
	Desc      string
	MaxStack  uint16
	MaxLocals uint16

	Instructions []Insn
}

// MemberRef is a constant-pool reference resolved to names.
// For class-only instructions (new, checkcast, ...) only Owner is set.
type MemberRef struct {
	Owner string
	Name  string
	Desc  string
}

// String renders the reference as owner.name desc.
func (r MemberRef) String() string {
	if r.Name == "" {
		return r.Owner
	}

	return r.Owner + "." + r.Name + r.Desc
}

// Insn is one decoded instruction.
type Insn struct {
	// Offset is the bytecode offset the instruction was read from, or -1 for
	// instructions inserted after parsing.
	Offset   int
	Opcode   Opcode
	Operands []byte
	Ref      *MemberRef
}

// String renders the instruction for diagnostics.
func (i Insn) String() string {
	if i.Ref != nil {
		return fmt.Sprintf("%s %s", i.Opcode, i.Ref)
	}

	return i.Opcode.String()
}

// Op builds an operand-less instruction for insertion.
func Op(op Opcode) Insn {
	return Insn{Offset: -1, Opcode: op}
}

// MethodInsn builds an invoke instruction for insertion.
func MethodInsn(op Opcode, owner, name, desc string) Insn {
	return Insn{Offset: -1, Opcode: op, Ref: &MemberRef{Owner: owner, Name: name, Desc: desc}}
}

// FieldInsn builds a field access instruction for insertion.
func FieldInsn(op Opcode, owner, name, desc string) Insn {
	return Insn{Offset: -1, Opcode: op, Ref: &MemberRef{Owner: owner, Name: name, Desc: desc}}
}

// Method returns the first method with the given name and descriptor, or nil.
func (c *ClassNode) Method(name, desc string) *MethodNode {
	for _, m := range c.Methods {
		if m != nil && m.Name == name && m.Desc == desc {
			return m
		}
	}

	return nil
}

// MethodNames lists the name+descriptor of every method in file order.
func (c *ClassNode) MethodNames() []string {
	names := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		if m == nil {
			continue
		}

		names = append(names, m.Name+m.Desc)
	}

	return names
}

// Clone returns a deep copy of the class.
func (c *ClassNode) Clone() *ClassNode {
	if c == nil {
		return nil
	}

	out := *c
	out.Interfaces = slices.Clone(c.Interfaces)

	if c.Fields != nil {
		out.Fields = make([]*FieldNode, len(c.Fields))
		for i, f := range c.Fields {
			fc := *f
			out.Fields[i] = &fc
		}
	}

	if c.Methods != nil {
		out.Methods = make([]*MethodNode, len(c.Methods))
		for i, m := range c.Methods {
			out.Methods[i] = m.Clone()
		}
	}

	return &out
}

// Clone returns a deep copy of the method. A nil method clones to nil.
func (m *MethodNode) Clone() *MethodNode {
	if m == nil {
		return nil
	}

	out := *m
	if m.Instructions == nil {
		return &out
	}

	out.Instructions = make([]Insn, len(m.Instructions))
	for i, insn := range m.Instructions {
		out.Instructions[i] = insn.clone()
	}

	return &out
}

func (i Insn) clone() Insn {
	out := i
	out.Operands = slices.Clone(i.Operands)

	if i.Ref != nil {
		ref := *i.Ref
		out.Ref = &ref
	}

	return out
}

// InsertHead inserts instructions at the start of the body.
func (m *MethodNode) InsertHead(insns ...Insn) {
	m.Insert(0, insns...)
}

// Insert inserts instructions before index i. Out of range indexes are
// clamped to the body bounds.
func (m *MethodNode) Insert(i int, insns ...Insn) {
	i = max(0, min(i, len(m.Instructions)))
	m.Instructions = slices.Insert(m.Instructions, i, insns...)
}

// IndexFunc returns the index of the first instruction at or after from that
// satisfies f, or -1.
func (m *MethodNode) IndexFunc(from int, f func(Insn) bool) int {
	for i := max(from, 0); i < len(m.Instructions); i++ {
		if f(m.Instructions[i]) {
			return i
		}
	}

	return -1
}
