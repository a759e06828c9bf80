// Package mapping provides mapping descriptors: immutable values that name a
// class, field or method by its symbolic (original) name and structural
// signature, independent of whether the running artifact uses original or
// remapped (obfuscated) identifiers.
//
// # Declarative metadata
//
// Patch authors describe targets with ClassMapping, FieldMapping and
// MethodMapping values. A Metadata value carries zero or one of them and is
// the source a Resolver turns into a Descriptor:
//
//	md := mapping.MethodRef("net/minecraft/entity/Entity", "tick", "()V")
//	d, err := resolver.Resolve(mapping.KindMethod, md)
//
// Resolving a mapping-capable kind without the matching metadata fails with
// ErrUnmappedParameter.
//
// # Remapping tables
//
// A Table maps symbolic names to runtime names. Tables are loaded from YAML
// or TOML files with the following structure:
//
//	version: "1"
//	classes:
//	  - name: net/minecraft/entity/LivingEntity
//	    runtime: cgn
//	    fields:
//	      - name: motionX
//	        runtime: field_70159_w
//	    methods:
//	      - name: travel
//	        desc: (Lnet/minecraft/util/math/Vec3d;)V
//	        runtime: func_213352_e
//
// Class names embedded in field and method descriptors are rewritten through
// the class entries, so method descriptors never need to be listed twice.
//
// # Equality
//
// Class, Field and Method are comparable value types; == compares owner,
// name and signature, never identity.
package mapping
