package ast

// Normalize applies the K/C-based AST-shaping pass described in spec §4.3:
// post-order, every child whose symbol is in contract gets spliced into its
// parent's child list in place, and every terminal leaf whose symbol is not
// in keep gets dropped entirely. Root-level contraction is permitted, in
// which case Normalize returns the flattened list of what would have been
// the root's children instead of a single node; internal/parser returns that
// list as-is and internal/slang's Toolchain.Parse picks its first element,
// matching the original
// predecessor's normalize_tree(tlist, clist, root) behavior in
// interpreter/parse.py.
func Normalize(root *Node, keep, contract map[string]bool) []*Node {
	if root == nil {
		return nil
	}
	if root.IsTerminal() {
		if keep[root.Sym] {
			return []*Node{root}
		}
		return nil
	}

	var children []*Node
	for _, c := range root.Children {
		children = append(children, Normalize(c, keep, contract)...)
	}

	normalized := &Node{
		Sym:      root.Sym,
		Children: children,
		Start:    root.Start,
		End:      root.End,
	}

	if contract[root.Sym] {
		return children
	}
	return []*Node{normalized}
}
