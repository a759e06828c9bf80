// Package classfile provides the parsed class-file model that transformer
// units operate on, and a reader for the JVM class file format.
//
// The model is deliberately small: a ClassNode holds its methods in file
// order, and every MethodNode exposes a mutable instruction body. Member and
// class instructions carry a MemberRef resolved from the constant pool so a
// patch can locate call sites and field accesses by name and descriptor
// instead of by pool index.
//
// # Reading
//
//	node, err := classfile.Parse(data)
//	if err != nil {
//		return err
//	}
//	m := node.Method("tick", "()V")
//
// Instructions inserted by a patch carry Offset -1. There is no writer; the
// host pipeline owns serialization.
package classfile
