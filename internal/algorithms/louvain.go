package algorithms

import "sort"

// Community is a group of node ids assigned to the same cluster by
// LouvainCommunities.
type Community struct {
	ID    int
	Nodes []string
}

// LouvainCommunities partitions the graph into communities by greedily
// moving nodes to whichever neighboring community most increases overall
// modularity, iterating until no move improves it. This is the single-level
// variant of Louvain (no recursive community-graph contraction), which
// keeps the algorithm's behavior easy to reason about on the property
// graph's modest node counts.
func LouvainCommunities(g *Graph) []Community {
	if len(g.Nodes) == 0 {
		return []Community{}
	}

	assignment := make(map[string]int, len(g.Nodes))
	for i, node := range g.Nodes {
		assignment[node] = i
	}

	adjacency := g.undirectedAdjacency()
	totalEdges := float64(len(g.Edges))
	if totalEdges == 0 {
		return singletonCommunities(g.Nodes)
	}

	degree := make(map[string]float64, len(g.Nodes))
	for _, e := range g.Edges {
		degree[e.Source]++
		degree[e.Target]++
	}

	improved := true
	for improved {
		improved = false
		for _, node := range g.Nodes {
			current := assignment[node]
			best := current
			bestGain := modularity(g.Edges, degree, totalEdges, assignment)

			tried := map[int]bool{current: true}
			for _, neighbor := range adjacency[node] {
				candidate := assignment[neighbor]
				if tried[candidate] {
					continue
				}
				tried[candidate] = true

				assignment[node] = candidate
				gain := modularity(g.Edges, degree, totalEdges, assignment)
				if gain > bestGain {
					bestGain = gain
					best = candidate
					improved = true
				}
			}
			assignment[node] = best
		}
	}

	return groupCommunities(assignment)
}

// modularity computes Newman's modularity Q for a given partition.
func modularity(edges []Edge, degree map[string]float64, totalEdges float64, assignment map[string]int) float64 {
	if totalEdges == 0 {
		return 0
	}
	// Q = sum over communities c of L_c/m - (D_c/2m)^2, where L_c counts the
	// edges inside c and D_c sums the degrees of c's nodes.
	intra := 0.0
	for _, e := range edges {
		if assignment[e.Source] == assignment[e.Target] {
			intra++
		}
	}
	communityDegree := make(map[int]float64)
	for node, k := range degree {
		communityDegree[assignment[node]] += k
	}
	expected := 0.0
	for _, dc := range communityDegree {
		expected += dc * dc
	}
	m2 := 2 * totalEdges
	return intra/totalEdges - expected/(m2*m2)
}

func groupCommunities(assignment map[string]int) []Community {
	groups := make(map[int][]string)
	for node, id := range assignment {
		groups[id] = append(groups[id], node)
	}
	out := make([]Community, 0, len(groups))
	for id, nodes := range groups {
		sort.Strings(nodes)
		out = append(out, Community{ID: id, Nodes: nodes})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Nodes) != len(out[j].Nodes) {
			return len(out[i].Nodes) > len(out[j].Nodes)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func singletonCommunities(nodes []string) []Community {
	out := make([]Community, len(nodes))
	for i, n := range nodes {
		out[i] = Community{ID: i, Nodes: []string{n}}
	}
	return out
}
