// Package patches holds the built-in patches shipped with classpatch.
package patches

import (
	"classpatch/internal/classfile"
	"classpatch/internal/mapping"
	"classpatch/internal/patch"
)

// Symbolic names of the classes the built-in patches touch.
const (
	LivingEntity     = "net/minecraft/entity/LivingEntity"
	Vec3d            = "net/minecraft/util/math/Vec3d"
	PlayerController = "net/minecraft/client/multiplayer/PlayerController"
	BlockPos         = "net/minecraft/util/math/BlockPos"
	Direction        = "net/minecraft/util/Direction"
)

// HooksClass is the internal name of the class whose static methods the
// inserted calls invoke.
const HooksClass = "classpatch/runtime/Hooks"

// All returns every built-in patch in registration order.
func All() []patch.Patch {
	return []patch.Patch{
		&ElytraFlight{},
		&Nuker{},
	}
}

// hookCall builds the two instructions that pass this to a static hook.
func hookCall(hooks, name string, this mapping.Class) []classfile.Insn {
	return []classfile.Insn{
		classfile.Op(classfile.Aload0),
		classfile.MethodInsn(classfile.Invokestatic, hooks, name, "("+this.Desc()+")V"),
	}
}

func hooksOrDefault(hooks string) string {
	if hooks == "" {
		return HooksClass
	}

	return hooks
}
