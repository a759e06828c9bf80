package patches

import (
	"fmt"

	"classpatch/internal/classfile"
	"classpatch/internal/mapping"
	"classpatch/internal/patch"
)

// Nuker calls a hook before every write of the block-damage progress field
// inside the controller's damage step.
type Nuker struct {
	// Hooks overrides HooksClass.
	Hooks string
}

// Name implements patch.Named.
func (p *Nuker) Name() string { return "Nuker" }

// Injections implements patch.Patch.
func (p *Nuker) Injections() []patch.Injection {
	return []patch.Injection{{
		Name: "onPlayerDamageBlock",
		Fn:   p.onPlayerDamageBlock,
		Target: &mapping.MethodMapping{
			Owner:  PlayerController,
			Name:   "onPlayerDamageBlock",
			Args:   []string{mapping.ObjectDesc(BlockPos), mapping.ObjectDesc(Direction)},
			Return: "Z",
		},
		Args: []mapping.Metadata{
			{},
			mapping.ClassRef(PlayerController),
			mapping.FieldRef(PlayerController, "curBlockDamageMP", "F"),
		},
	}}
}

func (p *Nuker) onPlayerDamageBlock(node *classfile.MethodNode, controller mapping.Class, damage mapping.Field) error {
	writes := func(insn classfile.Insn) bool {
		return insn.Opcode == classfile.Putfield && insn.Ref != nil &&
			damage.Matches(insn.Ref.Owner, insn.Ref.Name, insn.Ref.Desc)
	}

	call := hookCall(hooksOrDefault(p.Hooks), "onBlockDamage", controller)

	n := 0
	for i := node.IndexFunc(0, writes); i >= 0; i = node.IndexFunc(i+len(call)+1, writes) {
		node.Insert(i, call...)
		n++
	}

	if n == 0 {
		return fmt.Errorf("no write to %s in %s%s", damage, node.Name, node.Desc)
	}

	node.MaxStack++

	return nil
}
