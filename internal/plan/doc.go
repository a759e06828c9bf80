// Package plan builds the argument-binding plan of an injection callable.
//
// Every parameter of the callable is classified once, at scan time, into a
// closed set of argument sources:
//
//	*classfile.MethodNode  the matched method record (KindRawNode)
//	mapping.Class          a resolved class descriptor
//	mapping.Field          a resolved field descriptor
//	mapping.Method         a resolved method descriptor
//
// Mapping descriptors are resolved while the plan is built, so a parameter
// missing its metadata fails the build with mapping.ErrUnmappedParameter.
// Any other parameter type is recorded as KindUnknown and only fails when
// the plan is replayed for an invocation.
package plan
