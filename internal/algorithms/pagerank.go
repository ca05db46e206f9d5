package algorithms

import (
	"context"
	"math"
)

const (
	pageRankDamping   = 0.85
	pageRankEpsilon   = 1e-6
	pageRankMaxRounds = 100
)

// PageRank computes the PageRank of every node via power iteration,
// following a damping factor of 0.85 and stopping once the L1 change
// between rounds drops below 1e-6 or 100 rounds have run, whichever comes
// first. Dangling nodes (zero out-degree) redistribute their rank evenly
// across the whole node set, matching the standard random-surfer
// formulation rather than letting their mass vanish.
//
// ctx is checked between rounds; a cancelled context aborts the iteration
// and returns ctx.Err() alongside the ranks computed so far.
func PageRank(ctx context.Context, g *Graph) (map[string]float64, error) {
	n := len(g.Nodes)
	if n == 0 {
		return map[string]float64{}, nil
	}

	inbound := make(map[string][]Edge, n)
	outDegree := make(map[string]float64, n)
	for _, e := range g.Edges {
		inbound[e.Target] = append(inbound[e.Target], e)
		outDegree[e.Source] += e.Weight
	}

	rank := make(map[string]float64, n)
	for _, node := range g.Nodes {
		rank[node] = 1.0 / float64(n)
	}

	for round := 0; round < pageRankMaxRounds; round++ {
		select {
		case <-ctx.Done():
			return rank, ctx.Err()
		default:
		}

		danglingMass := 0.0
		for _, node := range g.Nodes {
			if outDegree[node] == 0 {
				danglingMass += rank[node]
			}
		}

		next := make(map[string]float64, n)
		base := (1-pageRankDamping)/float64(n) + pageRankDamping*danglingMass/float64(n)
		for _, node := range g.Nodes {
			sum := 0.0
			for _, e := range inbound[node] {
				if od := outDegree[e.Source]; od > 0 {
					sum += rank[e.Source] * e.Weight / od
				}
			}
			next[node] = base + pageRankDamping*sum
		}

		delta := 0.0
		for _, node := range g.Nodes {
			delta += math.Abs(next[node] - rank[node])
		}
		rank = next
		if delta < pageRankEpsilon {
			break
		}
	}

	return rank, nil
}
