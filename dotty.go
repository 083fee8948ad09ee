package extents

import (
	"fmt"
	"io"
)

type nodeids struct {
	idTable map[*node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*node]int),
		max:     1,
	}
}

func (ids nodeids) find(n *node) int {
	return ids.idTable[n]
}

func (ids *nodeids) alloc(n *node) int {
	if id := ids.find(n); id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Dot outputs the internal structure of a file's extent tree in Graphviz DOT
// format (for debugging purposes). Nodes render as records listing their
// extents; edges carry the cached subtree byte length.
func (f *File) Dot(w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12,shape=record];\n")
	ids := newtable()
	nodelist, edgelist := "", ""
	var walk func(n *node)
	walk = func(n *node) {
		ID := ids.alloc(n)
		label := ""
		for i := 0; i < n.size; i++ {
			if i > 0 {
				label += "|"
			}
			label += n.keys[i].String()
		}
		if n.size == 0 {
			label = "empty"
		}
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(n.isLeaf()))
		if n.isLeaf() {
			return
		}
		for i := 0; i <= n.size; i++ {
			child := n.children[i]
			cid := ids.alloc(child)
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [label=\"%d\"];\n", ID, cid, n.childLengths[i])
			walk(child)
		}
	}
	walk(f.root)
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",fillcolor=\"#a3d7e4\""
	} else {
		s += ",color=black"
	}
	return s
}
