package tree

import (
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

const (
	ambiguousFilesMessage = "There are ambiguous file paths which might lead to faulty coverage reports:"
	removedFilesMessage   = "-> These files have been removed from the report in order to guarantee flawless coverage visualizations"
	packageInfoMessage    = "-> In order to avoid this make sure package names are unique within the whole project"
)

// SplitPackages turns dotted package names below a MODULE node into a
// hierarchy of single segment packages. Segments shared by several packages
// are merged. Calling it on any other node, or on a module without packages,
// changes nothing.
func (t *Tree) SplitPackages(id NodeID) {
	n := t.node(id)
	if n.metric != metric.Module {
		return
	}
	var packages, others []NodeID
	for _, c := range n.children {
		if t.nodes[c].metric == metric.Package {
			packages = append(packages, c)
		} else {
			others = append(others, c)
		}
	}
	if len(packages) == 0 {
		return
	}

	n.children = others
	for _, p := range packages {
		t.nodes[p].parent = None
	}
	for _, p := range packages {
		segments := splitName(t.nodes[p].name)
		if len(segments) == 0 {
			t.AddChild(id, p)
			continue
		}
		target := id
		for _, segment := range segments {
			target = t.packageChild(target, segment)
		}
		t.moveContent(p, target)
	}
}

func splitName(name string) []string {
	var segments []string
	for _, s := range strings.Split(name, ".") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// packageChild returns the package child of parent named name, creating it
// when missing.
func (t *Tree) packageChild(parent NodeID, name string) NodeID {
	for _, c := range t.nodes[parent].children {
		if t.nodes[c].metric == metric.Package && t.nodes[c].name == name {
			return c
		}
	}
	child := t.NewNode(metric.Package, name)
	t.AddChild(parent, child)
	return child
}

// moveContent re-attaches the children and leaves of from below to.
func (t *Tree) moveContent(from, to NodeID) {
	children := t.nodes[from].children
	leaves := t.nodes[from].leaves
	t.nodes[from].children = nil
	t.nodes[from].leaves = nil
	for _, c := range children {
		t.nodes[c].parent = None
		t.AddChild(to, c)
	}
	t.nodes[to].leaves = append(t.nodes[to].leaves, leaves...)
}

// Remove detaches id from its parent. The root cannot be removed.
func (t *Tree) Remove(id NodeID) {
	n := t.node(id)
	if n.parent == None {
		if id == t.root {
			panic("the root node cannot be removed")
		}
		return
	}
	p := &t.nodes[n.parent]
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = None
}

// ClearContent detaches all children and drops all leaves of id. The payload
// is kept.
func (t *Tree) ClearContent(id NodeID) {
	n := t.node(id)
	for _, c := range n.children {
		t.nodes[c].parent = None
	}
	n.children = nil
	n.leaves = nil
}

// VerifyPathUniqueness keeps the first file of every path and removes the
// files that repeat it. Removed paths are reported to log.
func (t *Tree) VerifyPathUniqueness(log *logging.FilteredLog) {
	seen := map[string]bool{}
	reported := map[string]bool{}
	var duplicates []string
	for _, f := range t.AllFiles(t.root) {
		p := t.Path(f)
		if !seen[p] {
			seen[p] = true
			continue
		}
		t.Remove(f)
		if !reported[p] {
			reported[p] = true
			duplicates = append(duplicates, p)
		}
	}
	if len(duplicates) == 0 {
		return
	}
	log.LogError("%s\n%s", ambiguousFilesMessage, strings.Join(duplicates, ",\n"))
	log.LogError(removedFilesMessage)
	log.LogError(packageInfoMessage)
}

// CopyTree returns a deep copy of the subtree rooted at id as a new tree.
func (t *Tree) CopyTree(id NodeID) *Tree {
	dst := &Tree{}
	dst.root = t.copyInto(dst, id)
	return dst
}

// CopyEmpty returns a single node tree with the kind and name of id. File
// nodes keep their source path but no other payload data.
func (t *Tree) CopyEmpty(id NodeID) *Tree {
	dst := &Tree{}
	dst.root = t.copyShallow(dst, id)
	return dst
}

// Prune copies the subtree rooted at id, keeping only the files accepted by
// keep and the containers leading to them. Kept files are copied with their
// full content, containers without their leaves.
func (t *Tree) Prune(id NodeID, keep func(NodeID) bool) *Tree {
	if t.node(id).metric == metric.File {
		if keep(id) {
			return t.CopyTree(id)
		}
		return t.CopyEmpty(id)
	}
	dst := &Tree{}
	dst.root = t.copyShallow(dst, id)
	t.pruneInto(dst, dst.root, id, keep)
	return dst
}

func (t *Tree) pruneInto(dst *Tree, dstID, srcID NodeID, keep func(NodeID) bool) {
	for _, c := range t.nodes[srcID].children {
		if t.nodes[c].metric == metric.File {
			if keep(c) {
				dst.AddChild(dstID, t.copyInto(dst, c))
			}
			continue
		}
		if !t.containsFile(c, keep) {
			continue
		}
		cc := t.copyShallow(dst, c)
		dst.AddChild(dstID, cc)
		t.pruneInto(dst, cc, c, keep)
	}
}

func (t *Tree) containsFile(id NodeID, keep func(NodeID) bool) bool {
	for _, f := range t.AllFiles(id) {
		if keep(f) {
			return true
		}
	}
	return false
}

// copyInto deep copies the subtree rooted at srcID into dst in pre-order and
// returns the detached copy of srcID.
func (t *Tree) copyInto(dst *Tree, srcID NodeID) NodeID {
	src := &t.nodes[srcID]
	id := dst.appendNode(node{
		metric: src.metric,
		name:   src.name,
		parent: None,
		leaves: append([]Leaf(nil), src.leaves...),
		file:   cloneFile(src.file),
		method: cloneMethod(src.method),
	})
	for _, c := range src.children {
		dst.AddChild(id, t.copyInto(dst, c))
	}
	return id
}

func (t *Tree) copyShallow(dst *Tree, srcID NodeID) NodeID {
	src := t.node(srcID)
	n := node{metric: src.metric, name: src.name, parent: None}
	if src.file != nil {
		n.file = newFileData(src.file.SourcePath)
	}
	if src.method != nil {
		n.method = &MethodData{Line: src.method.Line}
	}
	return dst.appendNode(n)
}

func (t *Tree) appendNode(n node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

func cloneFile(f *FileData) *FileData {
	if f == nil {
		return nil
	}
	return f.clone()
}

func cloneMethod(m *MethodData) *MethodData {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
