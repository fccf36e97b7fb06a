// Package network lays out the chain graph shown behind the feeds.
package network

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/hedisam/chainfeed/internal/feed"
)

// Radius of the sphere the nodes are placed on.
const Radius = 1.5

// hubName marks the chain placed at the centre of a hub graph.
const hubName = "avalanche"

type Node struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	LogoURI  string     `json:"logoUri,omitempty"`
	Position [3]float64 `json:"position"`
	Center   bool       `json:"center,omitempty"`
}

type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Source provides the graph served to the render layer.
type Source interface {
	Graph(ctx context.Context) (*Graph, error)
}

// Static serves the same graph on every call.
type Static struct {
	graph *Graph
}

func NewStatic(g *Graph) *Static {
	return &Static{graph: g}
}

func (s *Static) Graph(_ context.Context) (*Graph, error) {
	return s.graph, nil
}

// Mesh places one node per id on a sphere and links every pair of nodes.
func Mesh(ids []string) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(ids)),
		Links: make([]Link, 0, len(ids)*(len(ids)-1)/2),
	}
	for i, id := range ids {
		g.Nodes = append(g.Nodes, Node{
			ID:       id,
			Position: spherePosition(i, len(ids)),
		})
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			g.Links = append(g.Links, Link{Source: ids[i], Target: ids[j]})
		}
	}
	return g
}

// Hub places the first chain whose name mentions Avalanche at the origin, spreads
// the other chains over the sphere and links the centre to each of them. Without
// such a chain the nodes are placed the same way and left unlinked.
func Hub(chains []*feed.ChainInfo) *Graph {
	centre := slices.IndexFunc(chains, func(c *feed.ChainInfo) bool {
		return c != nil && strings.Contains(strings.ToLower(c.Name), hubName)
	})

	others := make([]*feed.ChainInfo, 0, len(chains))
	for i, c := range chains {
		if c != nil && i != centre {
			others = append(others, c)
		}
	}

	g := &Graph{
		Nodes: make([]Node, 0, len(others)+1),
		Links: make([]Link, 0, len(others)),
	}
	if centre >= 0 {
		g.Nodes = append(g.Nodes, Node{
			ID:      chains[centre].ChainID,
			Name:    chains[centre].Name,
			LogoURI: chains[centre].LogoURI,
			Center:  true,
		})
	}
	for i, c := range others {
		g.Nodes = append(g.Nodes, Node{
			ID:       c.ChainID,
			Name:     c.Name,
			LogoURI:  c.LogoURI,
			Position: spherePosition(i, len(others)),
		})
		if centre >= 0 {
			g.Links = append(g.Links, Link{Source: chains[centre].ChainID, Target: c.ChainID})
		}
	}
	return g
}

// spherePosition spreads total points over the sphere along a spiral.
func spherePosition(index, total int) [3]float64 {
	phi := math.Acos(-1 + 2*float64(index)/float64(total))
	theta := math.Sqrt(float64(total)*math.Pi) * phi

	return [3]float64{
		Radius * math.Cos(theta) * math.Sin(phi),
		Radius * math.Sin(theta) * math.Sin(phi),
		Radius * math.Cos(phi),
	}
}
