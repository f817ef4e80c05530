package tree

import (
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

// defaultPackage is the name coverage tools give to unnamed packages.
const defaultPackage = "-"

// NameHash derives a stable numeric id from a node name or path.
func NameHash(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32())
}

// Path returns the slash separated location of a node. Packages contribute
// their dotted name as directories, files their source path when known.
// Other nodes inherit the path of their parent.
func (t *Tree) Path(id NodeID) string {
	n := t.node(id)
	switch n.metric {
	case metric.Package:
		return t.mergePath(id, strings.ReplaceAll(n.name, ".", "/"))
	case metric.File:
		if n.file.SourcePath != "" {
			return filepath.ToSlash(n.file.SourcePath)
		}
		return t.mergePath(id, n.name)
	case metric.Module:
		return ""
	default:
		if p, ok := t.Parent(id); ok {
			return t.Path(p)
		}
		return ""
	}
}

func (t *Tree) mergePath(id NodeID, local string) string {
	if local == defaultPackage {
		local = ""
	}
	p, ok := t.Parent(id)
	if !ok {
		return local
	}
	parentPath := t.Path(p)
	switch {
	case parentPath == "":
		return local
	case local == "":
		return parentPath
	default:
		return parentPath + "/" + local
	}
}

// Find searches the subtree rooted at id, id included, for the first node of
// metric m with the given name.
func (t *Tree) Find(id NodeID, m metric.Metric, name string) (NodeID, bool) {
	return t.findFirst(id, func(nid NodeID) bool {
		n := &t.nodes[nid]
		return n.metric == m && n.name == name
	})
}

// FindByHash searches like Find but matches the NameHash of either the node
// name or its path.
func (t *Tree) FindByHash(id NodeID, m metric.Metric, hash int) (NodeID, bool) {
	return t.findFirst(id, func(nid NodeID) bool {
		n := &t.nodes[nid]
		return n.metric == m && (NameHash(n.name) == hash || NameHash(t.Path(nid)) == hash)
	})
}

// FindFile returns the first file whose path equals path.
func (t *Tree) FindFile(id NodeID, path string) (NodeID, bool) {
	path = filepath.ToSlash(path)
	return t.findFirst(id, func(nid NodeID) bool {
		return t.nodes[nid].metric == metric.File && t.Path(nid) == path
	})
}

func (t *Tree) findFirst(id NodeID, match func(NodeID) bool) (NodeID, bool) {
	if match(id) {
		return id, true
	}
	for _, c := range t.node(id).children {
		if found, ok := t.findFirst(c, match); ok {
			return found, true
		}
	}
	return None, false
}

// All returns the nodes of metric m below id, id included, in pre-order.
func (t *Tree) All(id NodeID, m metric.Metric) []NodeID {
	var nodes []NodeID
	t.walk(id, func(nid NodeID) {
		if t.nodes[nid].metric == m {
			nodes = append(nodes, nid)
		}
	})
	return nodes
}

// AllFiles returns the file nodes below id in pre-order.
func (t *Tree) AllFiles(id NodeID) []NodeID {
	return t.All(id, metric.File)
}

// FilesByPath indexes the file nodes below id by path. The first file wins
// when paths collide.
func (t *Tree) FilesByPath(id NodeID) map[string]NodeID {
	files := map[string]NodeID{}
	for _, f := range t.AllFiles(id) {
		p := t.Path(f)
		if _, ok := files[p]; !ok {
			files[p] = f
		}
	}
	return files
}
