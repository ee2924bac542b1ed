package topo

// Explore collects every sub-shape of the given kind in the shape's
// subtree, in encounter order, with locations and orientations
// composed up to the root occurrence. Matching shapes are not
// descended into; a shape of the requested kind yields itself.
func Explore(s Shape, kind Kind) []Shape {
	if s.IsNil() {
		return nil
	}
	var out []Shape
	stack := []Shape{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Kind() == kind {
			out = append(out, cur)
			continue
		}
		children := cur.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}
