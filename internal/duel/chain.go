package duel

import "github.com/duelverse/duelfield/internal/field"

// ChainLink is one activation waiting to resolve.
type ChainLink struct {
	Card   *field.CardInstance
	Player int
	Index  int // 1-based chain link number
}

// Chain is a LIFO stack of activations. The simulator tracks chain
// membership for display and logging only; effect resolution is up to
// the players.
type Chain struct {
	links []ChainLink
}

// Add pushes a new link onto the chain and returns it.
func (c *Chain) Add(inst *field.CardInstance, player int) ChainLink {
	link := ChainLink{Card: inst, Player: player, Index: len(c.links) + 1}
	c.links = append(c.links, link)
	return link
}

// Resolve pops the most recent link. The second result is false when
// the chain is empty.
func (c *Chain) Resolve() (ChainLink, bool) {
	if len(c.links) == 0 {
		return ChainLink{}, false
	}
	link := c.links[len(c.links)-1]
	c.links = c.links[:len(c.links)-1]
	return link, true
}

// Len returns the number of unresolved links.
func (c *Chain) Len() int { return len(c.links) }
