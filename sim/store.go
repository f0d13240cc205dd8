// Implements the Proxel Store: an ordered binary tree of proxels keyed by their
// composite id, backed by an arena of nodes shared between generations.

package sim

import (
	"fmt"
	"math/rand"
)

// nilHandle marks an absent child or an empty tree.
const nilHandle int32 = -1

// freeTag marks a node that currently sits on the pool's free list.
const freeTag uint16 = 0

type node struct {
	Proxel
	left, right int32
	owner       uint16 // tag of the owning Store, or freeTag
}

// NodePool is the arena that backs every Store of a run. Nodes are addressed by
// integer handles; released handles go onto a free list and are reused before the
// arena grows. At any time a node is owned by exactly one Store or by the free list.
//
// Thread-safety: NOT thread-safe. Must be used from a single goroutine.
type NodePool struct {
	nodes   []node
	free    []int32
	live    int
	peak    int
	nextTag uint16
}

// NewNodePool creates an empty pool with room for capacity nodes before the arena grows.
func NewNodePool(capacity int) *NodePool {
	if capacity < 0 {
		capacity = 0
	}
	return &NodePool{
		nodes:   make([]node, 0, capacity),
		free:    make([]int32, 0),
		nextTag: freeTag + 1,
	}
}

// Live returns the number of nodes currently owned by a Store.
func (p *NodePool) Live() int { return p.live }

// Peak returns the largest Live value observed since the pool was created.
func (p *NodePool) Peak() int { return p.peak }

// Allocated returns the number of nodes ever created in the arena.
func (p *NodePool) Allocated() int { return len(p.nodes) }

// Free returns the number of released nodes waiting for reuse.
func (p *NodePool) Free() int { return len(p.free) }

func (p *NodePool) alloc(owner uint16, px Proxel) int32 {
	var h int32
	if n := len(p.free); n > 0 {
		h = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		h = int32(len(p.nodes))
		p.nodes = append(p.nodes, node{})
	}
	p.nodes[h] = node{Proxel: px, left: nilHandle, right: nilHandle, owner: owner}
	p.live++
	if p.live > p.peak {
		p.peak = p.live
	}
	return h
}

func (p *NodePool) release(owner uint16, h int32) {
	n := &p.nodes[h]
	if n.owner != owner {
		panic(fmt.Sprintf("proxel pool: release of handle %d by store %d, owned by %d", h, owner, n.owner))
	}
	n.owner = freeTag
	n.left, n.right = nilHandle, nilHandle
	p.free = append(p.free, h)
	p.live--
}

// Store holds one generation of proxels as a binary search tree ordered by id.
// Colliding ids are merged by summing their mass. The tree is not rebalanced;
// sorted insertion sequences degrade it to a list, which is accepted.
type Store struct {
	pool    *NodePool
	horizon int
	tag     uint16
	root    int32
	size    int
	rng     *rand.Rand
}

// NewStore creates an empty generation on pool. Age counters are clamped to
// horizon-1. rng drives the coin flips of ExtractAny; a nil rng always descends left.
func NewStore(pool *NodePool, horizon int, rng *rand.Rand) *Store {
	if horizon < 1 {
		panic(fmt.Sprintf("NewStore: horizon must be >= 1, got %d", horizon))
	}
	tag := pool.nextTag
	pool.nextTag++
	return &Store{
		pool:    pool,
		horizon: horizon,
		tag:     tag,
		root:    nilHandle,
		rng:     rng,
	}
}

// Horizon returns the age bound of this store.
func (s *Store) Horizon() int { return s.horizon }

// Len returns the number of proxels in the store.
func (s *Store) Len() int { return s.size }

// IsEmpty reports whether the store holds no proxels.
func (s *Store) IsEmpty() bool { return s.root == nilHandle }

// Insert adds mass to the proxel (state, age, memory), creating it if needed.
// Ages at or beyond the horizon are clamped to horizon-1. It reports whether the
// mass was merged into an existing proxel.
func (s *Store) Insert(state, age, memory int, mass float64) bool {
	age = clampAge(age, s.horizon)
	memory = clampAge(memory, s.horizon)
	id := Encode(s.horizon, state, age, memory)
	px := Proxel{ID: id, State: state, Age: age, Memory: memory, Mass: mass}

	if s.root == nilHandle {
		s.root = s.pool.alloc(s.tag, px)
		s.size++
		return false
	}

	nodes := s.pool.nodes
	cur := s.root
	for {
		n := &nodes[cur]
		switch {
		case id < n.ID:
			if n.left == nilHandle {
				h := s.pool.alloc(s.tag, px)
				s.pool.nodes[cur].left = h
				s.size++
				return false
			}
			cur = n.left
		case id > n.ID:
			if n.right == nilHandle {
				h := s.pool.alloc(s.tag, px)
				s.pool.nodes[cur].right = h
				s.size++
				return false
			}
			cur = n.right
		case id == n.ID:
			n.Mass += mass
			return true
		default:
			panic(fmt.Sprintf("proxel store: id %d cannot be ordered against node id %d", id, n.ID))
		}
	}
}

// ExtractAny removes and returns one leaf of the tree. The descent follows the only
// child where there is one and flips a coin where there are two. Extraction order
// carries no meaning; the second result is false when the store is empty.
func (s *Store) ExtractAny() (Proxel, bool) {
	if s.root == nilHandle {
		return Proxel{}, false
	}
	nodes := s.pool.nodes
	parent := nilHandle
	cur := s.root
	wentLeft := false
	for {
		n := nodes[cur]
		if n.owner != s.tag {
			panic(fmt.Sprintf("proxel store %d: reached handle %d owned by %d", s.tag, cur, n.owner))
		}
		var next int32
		switch {
		case n.left != nilHandle && n.right != nilHandle:
			if s.rng != nil && s.rng.Intn(2) == 1 {
				next, wentLeft = n.right, false
			} else {
				next, wentLeft = n.left, true
			}
		case n.left != nilHandle:
			next, wentLeft = n.left, true
		case n.right != nilHandle:
			next, wentLeft = n.right, false
		default:
			next = nilHandle
		}
		if next == nilHandle {
			break
		}
		parent, cur = cur, next
	}

	if parent == nilHandle {
		s.root = nilHandle
	} else if wentLeft {
		nodes[parent].left = nilHandle
	} else {
		nodes[parent].right = nilHandle
	}
	px := nodes[cur].Proxel
	s.pool.release(s.tag, cur)
	s.size--
	return px, true
}

// Walk visits the proxels in ascending id order until fn returns false.
func (s *Store) Walk(fn func(Proxel) bool) {
	nodes := s.pool.nodes
	stack := make([]int32, 0, 32)
	cur := s.root
	for cur != nilHandle || len(stack) > 0 {
		for cur != nilHandle {
			stack = append(stack, cur)
			cur = nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(nodes[cur].Proxel) {
			return
		}
		cur = nodes[cur].right
	}
}

// Leaves counts the proxels with no children.
func (s *Store) Leaves() int {
	if s.root == nilHandle {
		return 0
	}
	nodes := s.pool.nodes
	count := 0
	stack := []int32{s.root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := nodes[h]
		if n.left == nilHandle && n.right == nilHandle {
			count++
			continue
		}
		if n.left != nilHandle {
			stack = append(stack, n.left)
		}
		if n.right != nilHandle {
			stack = append(stack, n.right)
		}
	}
	return count
}

// TotalMass sums the mass of every proxel in the store.
func (s *Store) TotalMass() float64 {
	total := 0.0
	s.Walk(func(p Proxel) bool {
		total += p.Mass
		return true
	})
	return total
}

// Snapshot returns the proxels in ascending id order.
func (s *Store) Snapshot() []Proxel {
	out := make([]Proxel, 0, s.size)
	s.Walk(func(p Proxel) bool {
		out = append(out, p)
		return true
	})
	return out
}
