package algorithms

import "container/heap"

// ShortestPath finds the lowest-weight path from source to target using
// Dijkstra's algorithm over the graph treated as directed (edges traverse
// source -> target only), returning the ordered node ids on the path and
// its total weight. ok is false when target is unreachable from source.
func ShortestPath(g *Graph, source, target string) (path []string, weight float64, ok bool) {
	if source == target {
		return []string{source}, 0, true
	}

	adjacency := g.adjacency()
	dist := make(map[string]float64, len(g.Nodes))
	prev := make(map[string]string, len(g.Nodes))
	visited := make(map[string]bool, len(g.Nodes))

	pq := &priorityQueue{{node: source, dist: 0}}
	dist[source] = 0

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if cur.node == target {
			break
		}

		for _, e := range adjacency[cur.node] {
			alt := cur.dist + e.Weight
			if existing, seen := dist[e.Target]; !seen || alt < existing {
				dist[e.Target] = alt
				prev[e.Target] = cur.node
				heap.Push(pq, pqItem{node: e.Target, dist: alt})
			}
		}
	}

	finalDist, reached := dist[target]
	if !reached {
		return nil, 0, false
	}

	// Walk prev pointers back from target to source.
	ordered := []string{target}
	for n := target; n != source; {
		p, has := prev[n]
		if !has {
			return nil, 0, false
		}
		ordered = append(ordered, p)
		n = p
	}
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}
	return ordered, finalDist, true
}

type pqItem struct {
	node string
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
