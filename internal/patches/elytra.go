package patches

import (
	"classpatch/internal/classfile"
	"classpatch/internal/mapping"
	"classpatch/internal/patch"
)

// ElytraFlight calls a hook at the start of every living-entity travel step
// so flight can take over while the elytra is open. OptiFine rewrites the
// same method, so the patch stays out of its way.
type ElytraFlight struct {
	// Hooks overrides HooksClass.
	Hooks string
}

// Name implements patch.Named.
func (p *ElytraFlight) Name() string { return "ElytraFlight" }

// Injections implements patch.Patch.
func (p *ElytraFlight) Injections() []patch.Injection {
	return []patch.Injection{{
		Name: "travel",
		Fn:   p.travel,
		Target: &mapping.MethodMapping{
			Owner: LivingEntity,
			Name:  "travel",
			Args:  []string{mapping.ObjectDesc(Vec3d)},
		},
		When: "!optifine",
		Args: []mapping.Metadata{{}, mapping.ClassRef(LivingEntity)},
	}}
}

func (p *ElytraFlight) travel(node *classfile.MethodNode, entity mapping.Class) {
	node.InsertHead(hookCall(hooksOrDefault(p.Hooks), "onElytraTravel", entity)...)
	node.MaxStack = max(node.MaxStack, 1)
}
