package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const magic = 0xCAFEBABE

var (
	// ErrBadMagic is returned when the input does not start with 0xCAFEBABE.
	ErrBadMagic = errors.New("not a class file")
	// ErrTruncated is returned when the input ends before a structure is complete.
	ErrTruncated = errors.New("truncated class file")
	// ErrBadConstant is returned for constant pool indexes of the wrong kind.
	ErrBadConstant = errors.New("bad constant pool reference")
	// ErrBadOpcode is returned for bytes that do not decode to an instruction.
	ErrBadOpcode = errors.New("bad opcode")
)

// constant pool tags
const (
	tagUTF8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

type constant struct {
	tag  uint8
	utf8 string
	a, b uint16
}

type constantPool []constant

func (p constantPool) entry(i uint16, tags ...uint8) (constant, error) {
	if i == 0 || int(i) >= len(p) {
		return constant{}, fmt.Errorf("%w: index %d out of range", ErrBadConstant, i)
	}

	c := p[i]
	for _, t := range tags {
		if c.tag == t {
			return c, nil
		}
	}

	return constant{}, fmt.Errorf("%w: index %d has tag %d", ErrBadConstant, i, c.tag)
}

func (p constantPool) utf8(i uint16) (string, error) {
	c, err := p.entry(i, tagUTF8)
	if err != nil {
		return "", err
	}

	return c.utf8, nil
}

func (p constantPool) className(i uint16) (string, error) {
	c, err := p.entry(i, tagClass)
	if err != nil {
		return "", err
	}

	return p.utf8(c.a)
}

func (p constantPool) nameAndType(i uint16) (string, string, error) {
	c, err := p.entry(i, tagNameAndType)
	if err != nil {
		return "", "", err
	}

	name, err := p.utf8(c.a)
	if err != nil {
		return "", "", err
	}

	desc, err := p.utf8(c.b)
	if err != nil {
		return "", "", err
	}

	return name, desc, nil
}

func (p constantPool) member(i uint16) (*MemberRef, error) {
	c, err := p.entry(i, tagFieldref, tagMethodref, tagInterfaceMethodref, tagInvokeDynamic)
	if err != nil {
		return nil, err
	}

	ref := &MemberRef{}
	if c.tag != tagInvokeDynamic {
		// invokedynamic's first operand is a bootstrap method index, not a class
		if ref.Owner, err = p.className(c.a); err != nil {
			return nil, err
		}
	}

	if ref.Name, ref.Desc, err = p.nameAndType(c.b); err != nil {
		return nil, err
	}

	return ref, nil
}

// reader is a big-endian cursor with a sticky error.
type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}

	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, r.pos)
		return nil
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b
}

func (r *reader) u1() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}

	return 0
}

func (r *reader) u2() uint16 {
	if b := r.take(2); b != nil {
		return binary.BigEndian.Uint16(b)
	}

	return 0
}

func (r *reader) u4() uint32 {
	if b := r.take(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}

	return 0
}

// Parse reads a class file into a ClassNode.
func Parse(data []byte) (*ClassNode, error) {
	r := &reader{data: data}

	if r.u4() != magic {
		if r.err != nil {
			return nil, r.err
		}

		return nil, ErrBadMagic
	}

	node := &ClassNode{}
	node.MinorVersion = r.u2()
	node.MajorVersion = r.u2()

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}

	node.Access = r.u2()
	thisIdx, superIdx := r.u2(), r.u2()

	if r.err != nil {
		return nil, r.err
	}

	if node.Name, err = pool.className(thisIdx); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}

	if superIdx != 0 {
		if node.SuperName, err = pool.className(superIdx); err != nil {
			return nil, fmt.Errorf("super_class: %w", err)
		}
	}

	for n := int(r.u2()); n > 0 && r.err == nil; n-- {
		idx := r.u2()
		if r.err != nil {
			break
		}

		iface, err := pool.className(idx)
		if err != nil {
			return nil, fmt.Errorf("interfaces: %w", err)
		}

		node.Interfaces = append(node.Interfaces, iface)
	}

	for n := int(r.u2()); n > 0 && r.err == nil; n-- {
		f, err := readField(r, pool)
		if err != nil {
			return nil, err
		}

		node.Fields = append(node.Fields, f)
	}

	for n := int(r.u2()); n > 0 && r.err == nil; n-- {
		m, err := readMethod(r, pool)
		if err != nil {
			return nil, err
		}

		node.Methods = append(node.Methods, m)
	}

	// class attributes are not modeled, but they must be well formed
	skipAttributes(r)

	if r.err != nil {
		return nil, r.err
	}

	return node, nil
}

func readConstantPool(r *reader) (constantPool, error) {
	count := int(r.u2())
	pool := make(constantPool, max(count, 1))

	for i := 1; i < count; i++ {
		tag := r.u1()
		c := constant{tag: tag}

		switch tag {
		case tagUTF8:
			// modified UTF-8 is close enough to UTF-8 for identifiers
			c.utf8 = string(r.take(int(r.u2())))
		case tagInteger, tagFloat:
			r.take(4)
		case tagLong, tagDouble:
			r.take(8)
			pool[i] = c
			i++ // eight-byte constants take two slots

			continue
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			c.a = r.u2()
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			c.a, c.b = r.u2(), r.u2()
		case tagMethodHandle:
			r.u1()
			c.a = r.u2()
		default:
			if r.err != nil {
				return nil, r.err
			}

			return nil, fmt.Errorf("%w: unknown tag %d at index %d", ErrBadConstant, tag, i)
		}

		if r.err != nil {
			return nil, r.err
		}

		pool[i] = c
	}

	return pool, r.err
}

func readField(r *reader, pool constantPool) (*FieldNode, error) {
	f := &FieldNode{Access: r.u2()}

	nameIdx, descIdx := r.u2(), r.u2()
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if f.Name, err = pool.utf8(nameIdx); err != nil {
		return nil, fmt.Errorf("field name: %w", err)
	}

	if f.Desc, err = pool.utf8(descIdx); err != nil {
		return nil, fmt.Errorf("field %s descriptor: %w", f.Name, err)
	}

	skipAttributes(r)

	return f, r.err
}

func readMethod(r *reader, pool constantPool) (*MethodNode, error) {
	m := &MethodNode{Access: r.u2()}

	nameIdx, descIdx := r.u2(), r.u2()
	if r.err != nil {
		return nil, r.err
	}

	var err error
	if m.Name, err = pool.utf8(nameIdx); err != nil {
		return nil, fmt.Errorf("method name: %w", err)
	}

	if m.Desc, err = pool.utf8(descIdx); err != nil {
		return nil, fmt.Errorf("method %s descriptor: %w", m.Name, err)
	}

	for n := int(r.u2()); n > 0 && r.err == nil; n-- {
		nameIdx := r.u2()
		if r.err != nil {
			break
		}

		attrName, err := pool.utf8(nameIdx)
		if err != nil {
			return nil, fmt.Errorf("method %s%s attribute: %w", m.Name, m.Desc, err)
		}

		body := r.take(int(r.u4()))
		if r.err != nil {
			break
		}

		if attrName != "Code" {
			continue
		}

		if err := readCode(body, pool, m); err != nil {
			return nil, fmt.Errorf("method %s%s: %w", m.Name, m.Desc, err)
		}
	}

	return m, r.err
}

func readCode(body []byte, pool constantPool, m *MethodNode) error {
	r := &reader{data: body}
	m.MaxStack = r.u2()
	m.MaxLocals = r.u2()
	code := r.take(int(r.u4()))

	if r.err != nil {
		return r.err
	}

	insns, err := decodeInstructions(code, pool)
	if err != nil {
		return err
	}

	m.Instructions = insns

	return nil
}

func decodeInstructions(code []byte, pool constantPool) ([]Insn, error) {
	var insns []Insn

	for pc := 0; pc < len(code); {
		op := Opcode(code[pc])
		if !op.Valid() {
			return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrBadOpcode, code[pc], pc)
		}

		n, err := operandLength(code, pc)
		if err != nil {
			return nil, err
		}

		end := pc + 1 + n
		if end > len(code) {
			return nil, fmt.Errorf("%w: %s at offset %d", ErrTruncated, op, pc)
		}

		insn := Insn{Offset: pc, Opcode: op}
		if n > 0 {
			insn.Operands = append([]byte(nil), code[pc+1:end]...)
		}

		switch {
		case op.IsMemberAccess():
			if insn.Ref, err = pool.member(binary.BigEndian.Uint16(insn.Operands)); err != nil {
				return nil, fmt.Errorf("%s at offset %d: %w", op, pc, err)
			}
		case op.IsTypeRef():
			owner, err := pool.className(binary.BigEndian.Uint16(insn.Operands))
			if err != nil {
				return nil, fmt.Errorf("%s at offset %d: %w", op, pc, err)
			}

			insn.Ref = &MemberRef{Owner: owner}
		}

		insns = append(insns, insn)
		pc = end
	}

	return insns, nil
}

// operandLength returns the number of operand bytes following the opcode at pc.
func operandLength(code []byte, pc int) (int, error) {
	op := Opcode(code[pc])
	if n := fixedOperandLength(op); n >= 0 {
		return n, nil
	}

	word := func(at int) (int32, error) {
		if at+4 > len(code) {
			return 0, fmt.Errorf("%w: %s at offset %d", ErrTruncated, op, pc)
		}

		return int32(binary.BigEndian.Uint32(code[at:])), nil
	}

	// switch operands are aligned to four bytes from the start of the method
	pad := (4 - (pc+1)%4) % 4

	switch op {
	case Tableswitch:
		low, err := word(pc + 1 + pad + 4)
		if err != nil {
			return 0, err
		}

		high, err := word(pc + 1 + pad + 8)
		if err != nil {
			return 0, err
		}

		if high < low {
			return 0, fmt.Errorf("%w: tableswitch bounds %d > %d at offset %d", ErrBadOpcode, low, high, pc)
		}

		entries := int64(high) - int64(low) + 1
		if entries*4 > int64(len(code)) {
			return 0, fmt.Errorf("%w: tableswitch with %d entries at offset %d", ErrTruncated, entries, pc)
		}

		return pad + 12 + int(entries)*4, nil
	case Lookupswitch:
		pairs, err := word(pc + 1 + pad + 4)
		if err != nil {
			return 0, err
		}

		if pairs < 0 {
			return 0, fmt.Errorf("%w: lookupswitch with %d pairs at offset %d", ErrBadOpcode, pairs, pc)
		}

		if int64(pairs)*8 > int64(len(code)) {
			return 0, fmt.Errorf("%w: lookupswitch with %d pairs at offset %d", ErrTruncated, pairs, pc)
		}

		return pad + 8 + int(pairs)*8, nil
	case Wide:
		if pc+1 >= len(code) {
			return 0, fmt.Errorf("%w: wide at offset %d", ErrTruncated, pc)
		}

		if Opcode(code[pc+1]) == Iinc {
			return 5, nil
		}

		return 3, nil
	}

	return 0, fmt.Errorf("%w: 0x%02x at offset %d", ErrBadOpcode, uint8(op), pc)
}

func skipAttributes(r *reader) {
	for n := int(r.u2()); n > 0 && r.err == nil; n-- {
		r.u2()
		r.take(int(r.u4()))
	}
}
