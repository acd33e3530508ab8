// Package diff compares two analyzed traces and reports node, duration,
// and edge differences between them.
package diff

import (
	"math"
	"sort"

	"github.com/dissectlabs/dissect/internal/graph"
)

// Status classifies how a node or edge differs between two traces.
type Status string

const (
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
)

// changedThresholdMs is the minimum duration delta treated as a change.
const changedThresholdMs = 0.01

// NodeDiff describes one node's difference. Nodes are matched by label,
// not id, since ids usually differ between runs.
type NodeDiff struct {
	ID            string
	Label         string
	Status        Status
	OldDurationMs float64
	NewDurationMs float64
	ChangeMs      float64
	ChangePct     float64
}

// IsRegression reports whether the node got slower.
func (d NodeDiff) IsRegression() bool {
	return d.Status == StatusChanged && d.ChangeMs > 0
}

// IsImprovement reports whether the node got faster.
func (d NodeDiff) IsImprovement() bool {
	return d.Status == StatusChanged && d.ChangeMs < 0
}

// EdgeDiff describes one added or removed edge, keyed by endpoint labels.
type EdgeDiff struct {
	Source string
	Target string
	Status Status
}

// Diff is the complete comparison of two traces.
type Diff struct {
	Nodes []NodeDiff
	Edges []EdgeDiff
}

// Added returns nodes present only in the new trace.
func (d Diff) Added() []NodeDiff { return d.filter(StatusAdded) }

// Removed returns nodes present only in the old trace.
func (d Diff) Removed() []NodeDiff { return d.filter(StatusRemoved) }

// Changed returns nodes whose duration moved past the threshold.
func (d Diff) Changed() []NodeDiff { return d.filter(StatusChanged) }

// Regressions returns changed nodes that got slower.
func (d Diff) Regressions() []NodeDiff {
	var out []NodeDiff
	for _, n := range d.Nodes {
		if n.IsRegression() {
			out = append(out, n)
		}
	}
	return out
}

// Improvements returns changed nodes that got faster.
func (d Diff) Improvements() []NodeDiff {
	var out []NodeDiff
	for _, n := range d.Nodes {
		if n.IsImprovement() {
			out = append(out, n)
		}
	}
	return out
}

// HasChanges reports whether anything differs at all.
func (d Diff) HasChanges() bool {
	for _, n := range d.Nodes {
		if n.Status != StatusUnchanged {
			return true
		}
	}
	return len(d.Edges) > 0
}

func (d Diff) filter(status Status) []NodeDiff {
	var out []NodeDiff
	for _, n := range d.Nodes {
		if n.Status == status {
			out = append(out, n)
		}
	}
	return out
}

// Compare diffs two exports. Node matching is by label; edge matching is
// by (source label, target label) pairs.
func Compare(old, new graph.Export) Diff {
	oldByLabel := nodesByLabel(old)
	newByLabel := nodesByLabel(new)

	labels := make([]string, 0, len(oldByLabel)+len(newByLabel))
	seen := make(map[string]bool)
	for label := range oldByLabel {
		labels = append(labels, label)
		seen[label] = true
	}
	for label := range newByLabel {
		if !seen[label] {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	var result Diff
	for _, label := range labels {
		oldNode, inOld := oldByLabel[label]
		newNode, inNew := newByLabel[label]
		switch {
		case inOld && !inNew:
			result.Nodes = append(result.Nodes, NodeDiff{
				ID:            oldNode.ID,
				Label:         label,
				Status:        StatusRemoved,
				OldDurationMs: oldNode.Duration,
			})
		case inNew && !inOld:
			result.Nodes = append(result.Nodes, NodeDiff{
				ID:            newNode.ID,
				Label:         label,
				Status:        StatusAdded,
				NewDurationMs: newNode.Duration,
			})
		default:
			result.Nodes = append(result.Nodes, compareDurations(label, oldNode, newNode))
		}
	}

	oldEdges := edgeKeys(old)
	newEdges := edgeKeys(new)
	for _, key := range sortedKeys(newEdges) {
		if !oldEdges[key] {
			result.Edges = append(result.Edges, EdgeDiff{Source: key[0], Target: key[1], Status: StatusAdded})
		}
	}
	for _, key := range sortedKeys(oldEdges) {
		if !newEdges[key] {
			result.Edges = append(result.Edges, EdgeDiff{Source: key[0], Target: key[1], Status: StatusRemoved})
		}
	}

	return result
}

func compareDurations(label string, oldNode, newNode graph.ExportNode) NodeDiff {
	change := newNode.Duration - oldNode.Duration
	status := StatusUnchanged
	if math.Abs(change) > changedThresholdMs {
		status = StatusChanged
	}
	pct := 0.0
	if oldNode.Duration > 0 {
		pct = change / oldNode.Duration * 100
	}
	return NodeDiff{
		ID:            newNode.ID,
		Label:         label,
		Status:        status,
		OldDurationMs: oldNode.Duration,
		NewDurationMs: newNode.Duration,
		ChangeMs:      change,
		ChangePct:     pct,
	}
}

func nodesByLabel(exp graph.Export) map[string]graph.ExportNode {
	out := make(map[string]graph.ExportNode, len(exp.Nodes))
	for _, n := range exp.Nodes {
		out[n.Label] = n
	}
	return out
}

func edgeKeys(exp graph.Export) map[[2]string]bool {
	labels := make(map[string]string, len(exp.Nodes))
	for _, n := range exp.Nodes {
		labels[n.ID] = n.Label
	}
	out := make(map[[2]string]bool, len(exp.Edges))
	for _, e := range exp.Edges {
		src, srcOK := labels[e.Source]
		tgt, tgtOK := labels[e.Target]
		if srcOK && tgtOK {
			out[[2]string{src, tgt}] = true
		}
	}
	return out
}

func sortedKeys(m map[[2]string]bool) [][2]string {
	keys := make([][2]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	return keys
}
