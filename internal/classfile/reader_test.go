package classfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classBuilder assembles minimal class files for reader tests.
type classBuilder struct {
	pool    bytes.Buffer
	count   uint16
	utf8s   map[string]uint16
	classes map[string]uint16
	methods bytes.Buffer
	nmeth   uint16
}

func newClassBuilder() *classBuilder {
	return &classBuilder{count: 1, utf8s: map[string]uint16{}, classes: map[string]uint16{}}
}

func (b *classBuilder) u2(buf *bytes.Buffer, v uint16) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func (b *classBuilder) u4(buf *bytes.Buffer, v uint32) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func (b *classBuilder) utf8(s string) uint16 {
	if i, ok := b.utf8s[s]; ok {
		return i
	}

	b.pool.WriteByte(tagUTF8)
	b.u2(&b.pool, uint16(len(s)))
	b.pool.WriteString(s)

	i := b.count
	b.count++
	b.utf8s[s] = i

	return i
}

func (b *classBuilder) class(name string) uint16 {
	if i, ok := b.classes[name]; ok {
		return i
	}

	n := b.utf8(name)
	b.pool.WriteByte(tagClass)
	b.u2(&b.pool, n)

	i := b.count
	b.count++
	b.classes[name] = i

	return i
}

func (b *classBuilder) member(tag uint8, owner, name, desc string) uint16 {
	c := b.class(owner)
	n, d := b.utf8(name), b.utf8(desc)

	b.pool.WriteByte(tagNameAndType)
	b.u2(&b.pool, n)
	b.u2(&b.pool, d)
	nat := b.count
	b.count++

	b.pool.WriteByte(tag)
	b.u2(&b.pool, c)
	b.u2(&b.pool, nat)

	i := b.count
	b.count++

	return i
}

func (b *classBuilder) long() {
	b.pool.WriteByte(tagLong)
	b.u4(&b.pool, 0)
	b.u4(&b.pool, 42)
	b.count += 2
}

func (b *classBuilder) method(name, desc string, code []byte) {
	b.u2(&b.methods, 0x0001)
	b.u2(&b.methods, b.utf8(name))
	b.u2(&b.methods, b.utf8(desc))
	b.u2(&b.methods, 1)

	var attr bytes.Buffer
	b.u2(&attr, 2)
	b.u2(&attr, 3)
	b.u4(&attr, uint32(len(code)))
	attr.Write(code)
	b.u2(&attr, 0)
	b.u2(&attr, 0)

	b.u2(&b.methods, b.utf8("Code"))
	b.u4(&b.methods, uint32(attr.Len()))
	b.methods.Write(attr.Bytes())
	b.nmeth++
}

func (b *classBuilder) build(name, super string) []byte {
	this, sup := b.class(name), b.class(super)

	var out bytes.Buffer
	b.u4(&out, magic)
	b.u2(&out, 0)
	b.u2(&out, 52)
	b.u2(&out, b.count)
	out.Write(b.pool.Bytes())
	b.u2(&out, 0x0021)
	b.u2(&out, this)
	b.u2(&out, sup)
	b.u2(&out, 0) // interfaces
	b.u2(&out, 0) // fields
	b.u2(&out, b.nmeth)
	out.Write(b.methods.Bytes())
	b.u2(&out, 0) // attributes

	return out.Bytes()
}

func TestParseMethodsAndRefs(t *testing.T) {
	b := newClassBuilder()
	b.long()

	field := b.member(tagFieldref, "a/Entity", "motionX", "D")
	call := b.member(tagMethodref, "a/Hooks", "onTick", "(La/Entity;)V")

	b.method("doThing", "(I)V", []byte{
		byte(Aload0),
		byte(Getfield), byte(field >> 8), byte(field),
		byte(Pop),
		byte(Aload0),
		byte(Invokestatic), byte(call >> 8), byte(call),
		byte(Return),
	})
	b.method("doThing", "(J)V", []byte{byte(Return)})

	node, err := Parse(b.build("a/Entity", "java/lang/Object"))
	require.NoError(t, err)

	assert.Equal(t, "a/Entity", node.Name)
	assert.Equal(t, "java/lang/Object", node.SuperName)
	assert.Equal(t, uint16(52), node.MajorVersion)
	require.Len(t, node.Methods, 2)
	assert.Equal(t, []string{"doThing(I)V", "doThing(J)V"}, node.MethodNames())

	m := node.Methods[0]
	assert.Equal(t, uint16(2), m.MaxStack)
	assert.Equal(t, uint16(3), m.MaxLocals)
	require.Len(t, m.Instructions, 6)

	assert.Equal(t, Getfield, m.Instructions[1].Opcode)
	assert.Equal(t, 1, m.Instructions[1].Offset)
	assert.Equal(t, &MemberRef{Owner: "a/Entity", Name: "motionX", Desc: "D"}, m.Instructions[1].Ref)
	assert.Equal(t, &MemberRef{Owner: "a/Hooks", Name: "onTick", Desc: "(La/Entity;)V"}, m.Instructions[4].Ref)
	assert.Equal(t, "invokestatic a/Hooks.onTick(La/Entity;)V", m.Instructions[4].String())

	assert.Same(t, node.Methods[1], node.Method("doThing", "(J)V"))
	assert.Nil(t, node.Method("doThing", "(Z)V"))
}

func TestParseSwitchesAndWide(t *testing.T) {
	b := newClassBuilder()

	code := []byte{
		byte(Iload1),      // 0
		byte(Tableswitch), // 1, padded to 4
		0, 0,
		0, 0, 0, 20, // default
		0, 0, 0, 1, // low
		0, 0, 0, 2, // high
		0, 0, 0, 20,
		0, 0, 0, 20,
		byte(Wide), byte(Iinc), 0, 1, 0, 5, // 24
		byte(Wide), byte(Iload), 0, 1, // 30
		byte(Lookupswitch), // 34, padded to 36
		0,
		0, 0, 0, 10, // default
		0, 0, 0, 1, // npairs
		0, 0, 0, 7, 0, 0, 0, 10,
		byte(Return),
	}
	b.method("run", "(I)V", code)

	node, err := Parse(b.build("a/Switch", "java/lang/Object"))
	require.NoError(t, err)

	ops := make([]Opcode, 0, len(node.Methods[0].Instructions))
	for _, insn := range node.Methods[0].Instructions {
		ops = append(ops, insn.Opcode)
	}

	assert.Equal(t, []Opcode{Iload1, Tableswitch, Wide, Wide, Lookupswitch, Return}, ops)
	assert.Equal(t, 52, node.Methods[0].Instructions[5].Offset)
}

func TestParseErrors(t *testing.T) {
	b := newClassBuilder()
	b.method("run", "()V", []byte{byte(Return)})
	valid := b.build("a/B", "java/lang/Object")

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrTruncated},
		{name: "bad magic", data: []byte{0xCA, 0xFE, 0xD0, 0x0D, 0, 0, 0, 52}, want: ErrBadMagic},
		{name: "truncated", data: valid[:len(valid)-6], want: ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseBadOpcode(t *testing.T) {
	b := newClassBuilder()
	b.method("run", "()V", []byte{0xfe})

	_, err := Parse(b.build("a/B", "java/lang/Object"))
	assert.ErrorIs(t, err, ErrBadOpcode)
}

func TestCloneIsDeep(t *testing.T) {
	orig := &ClassNode{
		Name: "a/B",
		Methods: []*MethodNode{{
			Name: "run",
			Desc: "()V",
			Instructions: []Insn{
				MethodInsn(Invokestatic, "a/Hooks", "h", "()V"),
				Op(Return),
			},
		}},
	}

	cp := orig.Clone()
	cp.Methods[0].InsertHead(Op(Nop))
	cp.Methods[0].Instructions[1].Ref.Name = "changed"

	assert.Len(t, orig.Methods[0].Instructions, 2)
	assert.Equal(t, "h", orig.Methods[0].Instructions[0].Ref.Name)
	assert.Len(t, cp.Methods[0].Instructions, 3)
}

func TestInsertAndIndexFunc(t *testing.T) {
	m := &MethodNode{Instructions: []Insn{Op(Aload0), Op(Pop), Op(Return)}}

	m.Insert(99, Op(Nop))
	assert.Equal(t, Nop, m.Instructions[3].Opcode)

	m.Insert(1, Op(Dup))
	assert.Equal(t, []Opcode{Aload0, Dup, Pop, Return, Nop}, opcodes(m))

	isPop := func(i Insn) bool { return i.Opcode == Pop }
	assert.Equal(t, 2, m.IndexFunc(0, isPop))
	assert.Equal(t, -1, m.IndexFunc(3, isPop))
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "invokestatic", Invokestatic.String())
	assert.Equal(t, "jsr_w", JsrW.String())
	assert.Equal(t, "opcode(0xfe)", Opcode(0xfe).String())
}

func opcodes(m *MethodNode) []Opcode {
	out := make([]Opcode, len(m.Instructions))
	for i, insn := range m.Instructions {
		out[i] = insn.Opcode
	}

	return out
}

func TestCloneEqualsOriginal(t *testing.T) {
	orig := &ClassNode{
		Name:    "a/B",
		Methods: []*MethodNode{{Name: "run", Desc: "()V"}, {Name: "tick", Desc: "()V", Instructions: []Insn{Op(Return)}}},
	}

	assert.Equal(t, orig, orig.Clone())
	assert.Nil(t, (*ClassNode)(nil).Clone())
}

func TestCloneKeepsNilMethods(t *testing.T) {
	orig := &ClassNode{Name: "a/B", Methods: []*MethodNode{nil, {Name: "run", Desc: "()V"}}}

	var out *ClassNode

	require.NotPanics(t, func() { out = orig.Clone() })
	require.Len(t, out.Methods, 2)
	assert.Nil(t, out.Methods[0])
	assert.Equal(t, orig.Methods[1], out.Methods[1])
	assert.Nil(t, (*MethodNode)(nil).Clone())
	assert.Same(t, orig.Methods[1], orig.Method("run", "()V"))
	assert.Equal(t, []string{"run()V"}, orig.MethodNames())
}

func TestDecodeOversizedSwitch(t *testing.T) {
	word := func(v int32) []byte {
		return binary.BigEndian.AppendUint32(nil, uint32(v))
	}

	tests := []struct {
		name string
		code []byte
	}{
		{
			name: "tableswitch full int range",
			code: bytes.Join([][]byte{
				{byte(Tableswitch), 0, 0, 0},
				word(0), word(-1 << 31), word(1<<31 - 1),
				{byte(Return)},
			}, nil),
		},
		{
			name: "lookupswitch too many pairs",
			code: bytes.Join([][]byte{
				{byte(Lookupswitch), 0, 0, 0},
				word(0), word(1 << 30),
				{byte(Return)},
			}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insns, err := decodeInstructions(tt.code, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTruncated)
			assert.Nil(t, insns)
		})
	}
}
