package algorithms

// KCoreDecomposition assigns every node its coreness: the largest k such
// that the node belongs to a k-core (a maximal subgraph in which every
// node has degree >= k within that subgraph). It uses the standard peeling
// algorithm: repeatedly strip the lowest-degree remaining node, recording
// the degree at the moment of removal as that node's coreness.
func KCoreDecomposition(g *Graph) map[string]int {
	core := make(map[string]int, len(g.Nodes))
	if len(g.Nodes) == 0 {
		return core
	}

	adjacency := g.undirectedAdjacency()
	degree := make(map[string]int, len(g.Nodes))
	for _, node := range g.Nodes {
		degree[node] = len(adjacency[node])
	}

	removed := make(map[string]bool, len(g.Nodes))
	remaining := len(g.Nodes)
	maxSeen := 0

	for remaining > 0 {
		// Find the remaining node with minimum degree.
		minNode := ""
		minDegree := -1
		for _, node := range g.Nodes {
			if removed[node] {
				continue
			}
			if minDegree == -1 || degree[node] < minDegree {
				minDegree = degree[node]
				minNode = node
			}
		}

		if minDegree > maxSeen {
			maxSeen = minDegree
		}
		core[minNode] = maxSeen

		removed[minNode] = true
		remaining--
		for _, neighbor := range adjacency[minNode] {
			if !removed[neighbor] {
				degree[neighbor]--
			}
		}
	}

	return core
}

// NodesAtLeastCore returns the node ids whose coreness is >= k, i.e. the
// k-core subgraph's membership.
func NodesAtLeastCore(core map[string]int, k int) []string {
	out := make([]string, 0, len(core))
	for node, c := range core {
		if c >= k {
			out = append(out, node)
		}
	}
	return out
}
