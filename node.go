package nestedcsv

// node is the storage of a record value. Nodes live in an arena and refer to
// their children by index, so a whole tree is a single allocation group that
// can be copied or discarded at once.
type node struct {
	name     string
	value    string
	kind     Kind
	column   int32
	children []int32
}

const noColumn = -1

type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	return &arena{nodes: make([]node, 0, capacity)}
}

func (a *arena) add(kind Kind, name, value string, column int32) int32 {
	a.nodes = append(a.nodes, node{
		name:   name,
		value:  value,
		kind:   kind,
		column: column,
	})
	return int32(len(a.nodes) - 1)
}

func (a *arena) attach(parent, child int32) {
	p := &a.nodes[parent]
	p.children = append(p.children, child)
}

// set attaches child to parent under its name, replacing any previous child of
// the same name in place so the original insertion position is retained.
func (a *arena) set(parent, child int32) {
	name := a.nodes[child].name
	for i, c := range a.nodes[parent].children {
		if a.nodes[c].name == name {
			a.nodes[parent].children[i] = child
			return
		}
	}
	a.attach(parent, child)
}

func (a *arena) lookup(parent int32, name string) int32 {
	for _, c := range a.nodes[parent].children {
		if a.nodes[c].name == name {
			return c
		}
	}
	return -1
}

// copyFrom copies the subtree rooted at index in src into a, giving the root of
// the copy the name passed as argument. It returns the index of the copy.
func (a *arena) copyFrom(src *arena, index int32, name string) int32 {
	n := &src.nodes[index]
	i := a.add(n.kind, name, n.value, n.column)
	if len(n.children) > 0 {
		children := make([]int32, 0, len(n.children))
		for _, c := range n.children {
			children = append(children, a.copyFrom(src, c, src.nodes[c].name))
		}
		a.nodes[i].children = children
	}
	return i
}

func (a *arena) size(index int32) int {
	n := 1
	for _, c := range a.nodes[index].children {
		n += a.size(c)
	}
	return n
}
