package classfile

import "fmt"

// Opcode is a single JVM instruction opcode.
type Opcode uint8

// Opcodes referenced by name elsewhere in the module. The full mnemonic table
// lives in opcodeNames.
const (
	Nop             Opcode = 0x00
	AconstNull      Opcode = 0x01
	Iconst0         Opcode = 0x03
	Iconst1         Opcode = 0x04
	Bipush          Opcode = 0x10
	Sipush          Opcode = 0x11
	Ldc             Opcode = 0x12
	LdcW            Opcode = 0x13
	Ldc2W           Opcode = 0x14
	Iload           Opcode = 0x15
	Aload           Opcode = 0x19
	Iload0          Opcode = 0x1a
	Iload1          Opcode = 0x1b
	Aload0          Opcode = 0x2a
	Aload1          Opcode = 0x2b
	Aload2          Opcode = 0x2c
	Istore          Opcode = 0x36
	Pop             Opcode = 0x57
	Dup             Opcode = 0x59
	Iadd            Opcode = 0x60
	Iinc            Opcode = 0x84
	Ifeq            Opcode = 0x99
	Ifne            Opcode = 0x9a
	Goto            Opcode = 0xa7
	Tableswitch     Opcode = 0xaa
	Lookupswitch    Opcode = 0xab
	Ireturn         Opcode = 0xac
	Areturn         Opcode = 0xb0
	Return          Opcode = 0xb1
	Getstatic       Opcode = 0xb2
	Putstatic       Opcode = 0xb3
	Getfield        Opcode = 0xb4
	Putfield        Opcode = 0xb5
	Invokevirtual   Opcode = 0xb6
	Invokespecial   Opcode = 0xb7
	Invokestatic    Opcode = 0xb8
	Invokeinterface Opcode = 0xb9
	Invokedynamic   Opcode = 0xba
	New             Opcode = 0xbb
	Newarray        Opcode = 0xbc
	Anewarray       Opcode = 0xbd
	Checkcast       Opcode = 0xc0
	Instanceof      Opcode = 0xc1
	Wide            Opcode = 0xc4
	Multianewarray  Opcode = 0xc5
	GotoW           Opcode = 0xc8
	JsrW            Opcode = 0xc9
)

var opcodeNames = [...]string{
	"nop", "aconst_null", "iconst_m1", "iconst_0", "iconst_1", "iconst_2", "iconst_3", "iconst_4",
	"iconst_5", "lconst_0", "lconst_1", "fconst_0", "fconst_1", "fconst_2", "dconst_0", "dconst_1",
	"bipush", "sipush", "ldc", "ldc_w", "ldc2_w", "iload", "lload", "fload",
	"dload", "aload", "iload_0", "iload_1", "iload_2", "iload_3", "lload_0", "lload_1",
	"lload_2", "lload_3", "fload_0", "fload_1", "fload_2", "fload_3", "dload_0", "dload_1",
	"dload_2", "dload_3", "aload_0", "aload_1", "aload_2", "aload_3", "iaload", "laload",
	"faload", "daload", "aaload", "baload", "caload", "saload", "istore", "lstore",
	"fstore", "dstore", "astore", "istore_0", "istore_1", "istore_2", "istore_3", "lstore_0",
	"lstore_1", "lstore_2", "lstore_3", "fstore_0", "fstore_1", "fstore_2", "fstore_3", "dstore_0",
	"dstore_1", "dstore_2", "dstore_3", "astore_0", "astore_1", "astore_2", "astore_3", "iastore",
	"lastore", "fastore", "dastore", "aastore", "bastore", "castore", "sastore", "pop",
	"pop2", "dup", "dup_x1", "dup_x2", "dup2", "dup2_x1", "dup2_x2", "swap",
	"iadd", "ladd", "fadd", "dadd", "isub", "lsub", "fsub", "dsub",
	"imul", "lmul", "fmul", "dmul", "idiv", "ldiv", "fdiv", "ddiv",
	"irem", "lrem", "frem", "drem", "ineg", "lneg", "fneg", "dneg",
	"ishl", "lshl", "ishr", "lshr", "iushr", "lushr", "iand", "land",
	"ior", "lor", "ixor", "lxor", "iinc", "i2l", "i2f", "i2d",
	"l2i", "l2f", "l2d", "f2i", "f2l", "f2d", "d2i", "d2l",
	"d2f", "i2b", "i2c", "i2s", "lcmp", "fcmpl", "fcmpg", "dcmpl",
	"dcmpg", "ifeq", "ifne", "iflt", "ifge", "ifgt", "ifle", "if_icmpeq",
	"if_icmpne", "if_icmplt", "if_icmpge", "if_icmpgt", "if_icmple", "if_acmpeq", "if_acmpne", "goto",
	"jsr", "ret", "tableswitch", "lookupswitch", "ireturn", "lreturn", "freturn", "dreturn",
	"areturn", "return", "getstatic", "putstatic", "getfield", "putfield", "invokevirtual", "invokespecial",
	"invokestatic", "invokeinterface", "invokedynamic", "new", "newarray", "anewarray", "arraylength", "athrow",
	"checkcast", "instanceof", "monitorenter", "monitorexit", "wide", "multianewarray", "ifnull", "ifnonnull",
	"goto_w", "jsr_w",
}

// String returns the JVM mnemonic for the opcode.
func (o Opcode) String() string {
	if o.Valid() {
		return opcodeNames[o]
	}

	return fmt.Sprintf("opcode(0x%02x)", uint8(o))
}

// Valid reports whether o is a defined JVM opcode.
func (o Opcode) Valid() bool {
	return int(o) < len(opcodeNames)
}

// IsMemberAccess reports whether the instruction's operand is a field or
// method reference in the constant pool.
func (o Opcode) IsMemberAccess() bool {
	return o >= Getstatic && o <= Invokedynamic
}

// IsFieldAccess reports whether the instruction reads or writes a field.
func (o Opcode) IsFieldAccess() bool {
	return o >= Getstatic && o <= Putfield
}

// IsInvoke reports whether the instruction invokes a method.
func (o Opcode) IsInvoke() bool {
	return o >= Invokevirtual && o <= Invokedynamic
}

// IsTypeRef reports whether the instruction's operand is a class reference.
func (o Opcode) IsTypeRef() bool {
	switch o {
	case New, Anewarray, Checkcast, Instanceof, Multianewarray:
		return true
	default:
		return false
	}
}

// fixedOperandLength returns the operand byte count of fixed-length opcodes,
// or -1 for the variable-length ones (tableswitch, lookupswitch, wide).
func fixedOperandLength(o Opcode) int {
	switch {
	case o == Bipush, o == Ldc, o == Newarray:
		return 1
	case o >= Iload && o <= Aload, o >= Istore && o <= 0x3a, o == 0xa9:
		// xload, xstore, ret
		return 1
	case o == Sipush, o == LdcW, o == Ldc2W, o == Iinc:
		return 2
	case o >= Ifeq && o <= 0xa8, o == 0xc6, o == 0xc7:
		// conditional branches, goto, jsr, ifnull, ifnonnull
		return 2
	case o >= Getstatic && o <= Invokestatic, o == New, o == Anewarray, o == Checkcast, o == Instanceof:
		return 2
	case o == Multianewarray:
		return 3
	case o == Invokeinterface, o == Invokedynamic, o == GotoW, o == JsrW:
		return 4
	case o == Tableswitch, o == Lookupswitch, o == Wide:
		return -1
	default:
		return 0
	}
}
