package model

// Resolve determines the concrete type bound to a type variable at
// entity's position in the hierarchy.
//
// typeToResolve is the type expression being rendered; declaring is the
// type that introduced the variable in its parameter list; entity is the
// node currently being generated, which may be declaring's own entity or
// a descendant. When no unambiguous binding exists, typeToResolve comes
// back unchanged: absence of information is a normal outcome here, never
// an error.
//
// The search walks entity's supertype edges depth-first for an edge whose
// linked ancestor declares the same type as declaring, descending through
// linked ancestors and skipping unlinked edges. The first matching edge
// on a path wins. Well-formed hierarchies are acyclic; the visited set
// only keeps malformed input from looping.
func Resolve(typeToResolve, declaring Type, entity *Entity) Type {
	v, ok := typeToResolve.(*Var)
	if !ok {
		// Already concrete, nothing to resolve.
		return typeToResolve
	}
	decl, ok := declaring.(*Ref)
	if !ok {
		return typeToResolve
	}

	edge := findDeclaration(entity, decl.Name, make(map[*Entity]bool))
	if edge == nil {
		return typeToResolve
	}
	if len(edge.Ref.Params) == 0 {
		// Raw reference: the generic type was embedded without
		// arguments, so no binding can be derived.
		return typeToResolve
	}

	for i, slot := range decl.Params {
		sv, ok := slot.(*Var)
		if !ok || sv.Name != v.Name {
			continue
		}
		if i >= len(edge.Ref.Params) {
			// Arity shortfall at the matched position: no binding.
			return typeToResolve
		}
		return edge.Ref.Params[i]
	}

	// The variable is not among declaring's parameters.
	return typeToResolve
}

// findDeclaration searches the hierarchy reachable from e for an edge
// whose linked ancestor declares the type named name.
func findDeclaration(e *Entity, name string, visited map[*Entity]bool) *Supertype {
	if e == nil || visited[e] {
		return nil
	}
	visited[e] = true

	for _, st := range e.Supertypes {
		if st.Entity == nil {
			// Unlinked edge: nothing to match against, and no
			// ancestors to descend into.
			continue
		}
		if st.Entity.Type.Name == name {
			return st
		}
		if found := findDeclaration(st.Entity, name, visited); found != nil {
			return found
		}
	}
	return nil
}
