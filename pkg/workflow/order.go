package workflow

import "sort"

// OrderedStep is a node decorated with its position in the execution order.
type OrderedStep struct {
	Node
	StepNumber     int  `json:"stepNumber"`
	IsTrigger      bool `json:"isTrigger"`
	IsStartingNode bool `json:"isStartingNode"`
	IsDisconnected bool `json:"isDisconnected"`
}

// Order is the outcome of ResolveOrder.
type Order struct {
	Steps []OrderedStep
	// Seeds holds the ids the traversal started from, in input order.
	Seeds []string
	// Iterations is the number of queue pops the traversal performed.
	Iterations int
	// Truncated is set when the traversal stopped at the 3×N iteration bound. Every node is
	// queued at most once, so Iterations never exceeds N and the bound is not reached in practice.
	Truncated bool
}

// ResolveOrder computes a best-effort topological order of the graph.
//
// Seeds are trigger nodes plus nodes without incoming edges that do have outgoing ones; when
// there are none the top-left-most node is used. A FIFO breadth-first walk from the seeds
// emits a node once all of its incoming edges have been consumed. Nodes the walk never
// reaches are appended afterwards in input order and flagged as disconnected, so cycles
// without an entry point are flattened rather than rejected.
func ResolveOrder(g *Graph) Order {
	n := len(g.Nodes)
	if n == 0 {
		return Order{Steps: []OrderedStep{}}
	}

	idByName := make(map[string]string, n)
	nodeByID := make(map[string]Node, n)
	for _, node := range g.Nodes {
		idByName[node.Name] = node.ID
		nodeByID[node.ID] = node
	}

	indegree := make(map[string]int, n)
	for _, node := range g.Nodes {
		indegree[node.ID] = 0
	}
	for _, e := range g.Edges() {
		indegree[idByName[e.To]]++
	}

	var seeds []string
	isSeed := map[string]bool{}
	for _, node := range g.Nodes {
		if IsTrigger(node.Type) || (indegree[node.ID] == 0 && len(g.successors(node.Name, idByName)) > 0) {
			seeds = append(seeds, node.ID)
			isSeed[node.ID] = true
		}
	}
	if len(seeds) == 0 {
		start := topLeft(g.Nodes)
		seeds = []string{start.ID}
		isSeed[start.ID] = true
	}

	queue := append([]string(nil), seeds...)
	queued := make(map[string]bool, n)
	for _, id := range seeds {
		queued[id] = true
	}
	visited := make(map[string]bool, n)
	steps := make([]OrderedStep, 0, n)
	limit := 3 * n
	iterations := 0
	truncated := false

	for len(queue) > 0 {
		if iterations >= limit {
			truncated = true
			break
		}
		iterations++

		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		node := nodeByID[id]
		steps = append(steps, OrderedStep{
			Node:           node,
			StepNumber:     len(steps) + 1,
			IsTrigger:      IsTrigger(node.Type),
			IsStartingNode: isSeed[id],
		})

		for _, succName := range g.successors(node.Name, idByName) {
			succ := idByName[succName]
			indegree[succ]--
			if indegree[succ] <= 0 && !visited[succ] && !queued[succ] {
				queued[succ] = true
				queue = append(queue, succ)
			}
		}
	}

	for _, node := range g.Nodes {
		if visited[node.ID] {
			continue
		}
		steps = append(steps, OrderedStep{
			Node:           node,
			StepNumber:     len(steps) + 1,
			IsTrigger:      IsTrigger(node.Type),
			IsStartingNode: isSeed[node.ID],
			IsDisconnected: true,
		})
	}

	return Order{Steps: steps, Seeds: seeds, Iterations: iterations, Truncated: truncated}
}

// topLeft picks the node with the smallest x, then smallest y. Ties keep input order.
func topLeft(nodes []Node) Node {
	best := nodes[0]
	for _, node := range nodes[1:] {
		if node.Position.X < best.Position.X ||
			(node.Position.X == best.Position.X && node.Position.Y < best.Position.Y) {
			best = node
		}
	}
	return best
}

// FindCycles returns the node names of every cycle in the graph (strongly connected
// components with more than one node, or a node connected to itself). Components and their
// members follow input order.
func FindCycles(g *Graph) [][]string {
	idx := make(map[string]int, len(g.Nodes))
	for i, node := range g.Nodes {
		idx[node.Name] = i
	}
	adj := make([][]int, len(g.Nodes))
	selfLoop := make([]bool, len(g.Nodes))
	for _, e := range g.Edges() {
		from, to := idx[e.From], idx[e.To]
		adj[from] = append(adj[from], to)
		if from == to {
			selfLoop[from] = true
		}
	}

	t := &tarjan{
		adj:     adj,
		index:   make([]int, len(g.Nodes)),
		low:     make([]int, len(g.Nodes)),
		onStack: make([]bool, len(g.Nodes)),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := range g.Nodes {
		if t.index[i] == -1 {
			t.strongConnect(i)
		}
	}

	var cycles [][]string
	for _, comp := range t.components {
		if len(comp) == 1 && !selfLoop[comp[0]] {
			continue
		}
		members := make([]bool, len(g.Nodes))
		for _, v := range comp {
			members[v] = true
		}
		var names []string
		for i, node := range g.Nodes {
			if members[i] {
				names = append(names, node.Name)
			}
		}
		cycles = append(cycles, names)
	}
	sortByFirstMember(cycles, idx)
	return cycles
}

type tarjan struct {
	adj        [][]int
	index      []int
	low        []int
	onStack    []bool
	stack      []int
	next       int
	components [][]int
}

func (t *tarjan) strongConnect(v int) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if t.index[w] == -1 {
			t.strongConnect(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] == t.index[v] {
		var comp []int
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.components = append(t.components, comp)
	}
}

func sortByFirstMember(cycles [][]string, idx map[string]int) {
	sort.Slice(cycles, func(i, j int) bool {
		return idx[cycles[i][0]] < idx[cycles[j][0]]
	})
}
