package graph

import "sort"

// Components returns the connected components of the graph treating edges as
// undirected, largest first. Ties break by the smallest member identifier.
// Node identifiers within a component are sorted.
func (g *Graph) Components() [][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.SourceID] = append(adj[e.SourceID], e.TargetID)
		adj[e.TargetID] = append(adj[e.TargetID], e.SourceID)
	}

	visited := make(map[string]bool, len(g.Nodes))
	var components [][]string

	for _, n := range g.Nodes {
		if visited[n.ID] {
			continue
		}
		var component []string
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)
			for _, neighbor := range adj[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	return components
}
