// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Charles University, Faculty of Arts,
//                Department of Linguistics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package comparative

import (
	"fmt"
	"math"
)

// Edge joins two tree nodes at a distance. Internal nodes created
// during clustering are labelled by their member set in parenthesised
// Newick-like form, e.g. "(Latin,Spanish)".
type Edge struct {
	A        string
	B        string
	Distance float64
}

// Phylogeny method names accepted by BuildPhylogeny.
const (
	MethodNJ    = "nj"
	MethodUPGMA = "upgma"
)

// BuildPhylogeny clusters the analysis's distance matrix into a tree.
// method is MethodNJ (neighbor-joining, no molecular-clock assumption,
// the default) or MethodUPGMA.
func (a *Analysis) BuildPhylogeny(method string) ([]Edge, error) {
	langs, matrix := a.DistanceMatrix()
	if len(langs) < 2 {
		return nil, nil
	}
	switch method {
	case MethodUPGMA:
		return UPGMA(langs, matrix), nil
	case MethodNJ, "":
		return NeighborJoining(langs, matrix), nil
	}
	return nil, fmt.Errorf("unknown phylogeny method %q", method)
}

// UPGMA performs average-linkage agglomerative clustering, which
// assumes a molecular clock: at each step the closest pair of clusters
// is merged and its distances to the rest are arithmetic means.
func UPGMA(langs []string, matrix [][]float64) []Edge {
	remaining := make([]int, len(langs))
	labels := append([]string(nil), langs...)
	dist := copyMatrix(matrix)
	for i := range remaining {
		remaining[i] = i
	}

	var edges []Edge
	for len(remaining) > 1 {
		minDist := math.Inf(1)
		minI, minJ := 0, 1
		for a := 0; a < len(remaining); a++ {
			for b := a + 1; b < len(remaining); b++ {
				ii, jj := remaining[a], remaining[b]
				if dist[ii][jj] < minDist {
					minDist = dist[ii][jj]
					minI, minJ = a, b
				}
			}
		}

		ii, jj := remaining[minI], remaining[minJ]
		edges = append(edges, Edge{A: labels[ii], B: labels[jj], Distance: minDist})
		labels[ii] = fmt.Sprintf("(%s,%s)", labels[ii], labels[jj])

		for _, k := range remaining {
			if k != ii && k != jj {
				avg := (dist[ii][k] + dist[jj][k]) / 2
				dist[ii][k] = avg
				dist[k][ii] = avg
			}
		}
		remaining = append(remaining[:minJ], remaining[minJ+1:]...)
	}
	return edges
}

// NeighborJoining implements the Saitou-Nei algorithm: at each step the
// pair minimising the Q-criterion is joined under a fresh internal
// node. Each edge records the distance between the two joined nodes;
// the per-branch lengths from the new node to each of them are not
// computed. Unlike UPGMA it does not assume equal rates along branches.
func NeighborJoining(langs []string, matrix [][]float64) []Edge {
	n := len(langs)
	if n < 2 {
		return nil
	}

	dist := make(map[[2]int]float64)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dist[[2]int{i, j}] = matrix[i][j]
		}
	}

	active := make([]int, n)
	labels := make(map[int]string, n)
	for i := 0; i < n; i++ {
		active[i] = i
		labels[i] = langs[i]
	}

	var edges []Edge
	nextID := n

	for len(active) > 2 {
		r := len(active)

		rowSum := make(map[int]float64, r)
		for _, i := range active {
			s := 0.0
			for _, j := range active {
				if i != j {
					s += dist[[2]int{i, j}]
				}
			}
			rowSum[i] = s
		}

		minQ := math.Inf(1)
		pair := [2]int{active[0], active[1]}
		for a := 0; a < len(active); a++ {
			for b := a + 1; b < len(active); b++ {
				i, j := active[a], active[b]
				q := float64(r-2)*dist[[2]int{i, j}] - rowSum[i] - rowSum[j]
				if q < minQ {
					minQ = q
					pair = [2]int{i, j}
				}
			}
		}

		f, g := pair[0], pair[1]
		dFG := dist[[2]int{f, g}]

		newNode := nextID
		nextID++
		labels[newNode] = fmt.Sprintf("(%s,%s)", labels[f], labels[g])
		edges = append(edges, Edge{A: labels[f], B: labels[g], Distance: dFG})

		for _, k := range active {
			if k != f && k != g {
				dNew := (dist[[2]int{f, k}] + dist[[2]int{g, k}] - dFG) / 2
				dist[[2]int{newNode, k}] = dNew
				dist[[2]int{k, newNode}] = dNew
			}
		}
		dist[[2]int{newNode, newNode}] = 0

		kept := active[:0]
		for _, k := range active {
			if k != f && k != g {
				kept = append(kept, k)
			}
		}
		active = append(kept, newNode)
	}

	if len(active) == 2 {
		i, j := active[0], active[1]
		edges = append(edges, Edge{A: labels[i], B: labels[j], Distance: dist[[2]int{i, j}]})
	}
	return edges
}

// Newick renders a clustering result in Newick notation. Because
// internal labels already carry their member sets in parenthesised
// form, the final edge's joined label is the whole tree.
func Newick(edges []Edge) string {
	if len(edges) == 0 {
		return ";"
	}
	last := edges[len(edges)-1]
	return fmt.Sprintf("(%s,%s);", last.A, last.B)
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = append([]float64(nil), m[i]...)
	}
	return out
}
