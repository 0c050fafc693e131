// Package referral derives the referral distribution graph over
// accounts and computes each account's share of the daily bonus from
// its downline. The tree is rebuilt from scratch every maintenance
// pass; edges follow each account's referrer link.
package referral

import (
	"sort"

	"edcchain/core/types"
	"github.com/holiman/uint256"
)

// MaxLevels is the depth of the downline that can earn.
const MaxLevels = 7

// levelPercents is the per-level payout rate over downline balances,
// in types.BonusPercentDenom units. Level l pays only to accounts of
// rank > l.
var levelPercents = [MaxLevels]uint32{2500, 2000, 1500, 1000, 500, 500, 500}

// RankThreshold is the whole-token downline balance a direct referral
// must hold to raise its referrer's rank.
const RankThreshold = 100 * types.CoreAssetPrecision

// Payout is one scan result: what to_account earns from its downline.
type Payout struct {
	ToAccount types.AccountID
	Quantity  types.Amount
	Rank      uint8
	// History lists the per-level downline amounts that fed the
	// payout, index 0 being the direct referrals.
	History []types.Amount
}

// BalanceFunc resolves the balance the distribution is computed over;
// the modern variant passes mature balances, the legacy ones plain
// balances.
type BalanceFunc func(types.AccountID) types.Amount

type node struct {
	id       types.AccountID
	children []types.AccountID
}

// Tree is the formed referral graph.
type Tree struct {
	root    types.AccountID
	nodes   map[types.AccountID]*node
	order   []types.AccountID
	balance BalanceFunc
}

// New prepares an unformed tree. accounts must be in id order; the
// scan output order follows it.
func New(accounts []*types.Account, root types.AccountID, balance BalanceFunc) *Tree {
	t := &Tree{root: root, nodes: make(map[types.AccountID]*node, len(accounts)), balance: balance}
	for _, a := range accounts {
		t.nodes[a.ID] = &node{id: a.ID}
		t.order = append(t.order, a.ID)
	}
	for _, a := range accounts {
		if a.ID == root || a.Referrer == a.ID {
			continue
		}
		parent, ok := t.nodes[a.Referrer]
		if !ok {
			continue
		}
		parent.children = append(parent.children, a.ID)
	}
	return t
}

// Form fixes the child ordering. Separate from New to mirror the
// form-then-scan contract of the consumers.
func (t *Tree) Form() {
	for _, n := range t.nodes {
		sort.Slice(n.children, func(i, j int) bool { return n.children[i] < n.children[j] })
	}
}

// Scan computes every account's payout, in account-id order. Accounts
// whose payout rounds below one satoshi are omitted.
func (t *Tree) Scan() []Payout {
	var out []Payout
	for _, id := range t.order {
		p, ok := t.payout(id)
		if ok {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the payout of one account from a scan result.
func Find(payouts []Payout, id types.AccountID) (Payout, bool) {
	for _, p := range payouts {
		if p.ToAccount == id {
			return p, true
		}
	}
	return Payout{}, false
}

func (t *Tree) payout(id types.AccountID) (Payout, bool) {
	n := t.nodes[id]
	if n == nil || len(n.children) == 0 {
		return Payout{}, false
	}

	rank := t.rank(n)
	if rank == 0 {
		return Payout{}, false
	}

	levels := t.levelAmounts(n)
	var quantity types.Amount
	history := make([]types.Amount, 0, rank)
	for l := 0; l < int(rank) && l < MaxLevels; l++ {
		history = append(history, levels[l])
		quantity += percentOf(levels[l], levelPercents[l])
	}
	if quantity < 1 {
		return Payout{}, false
	}
	return Payout{ToAccount: id, Quantity: quantity, Rank: rank, History: history}, true
}

// rank counts the direct referrals whose own subtree balance clears
// the threshold, capped at MaxLevels.
func (t *Tree) rank(n *node) uint8 {
	var rank uint8
	for _, child := range n.children {
		if t.subtreeBalance(child) >= RankThreshold {
			rank++
			if rank == MaxLevels {
				break
			}
		}
	}
	return rank
}

func (t *Tree) subtreeBalance(id types.AccountID) types.Amount {
	total := t.balance(id)
	n := t.nodes[id]
	if n == nil {
		return total
	}
	for _, child := range n.children {
		total += t.subtreeBalance(child)
	}
	return total
}

// levelAmounts sums downline balances per depth, breadth-first.
func (t *Tree) levelAmounts(n *node) [MaxLevels]types.Amount {
	var levels [MaxLevels]types.Amount
	frontier := n.children
	for depth := 0; depth < MaxLevels && len(frontier) > 0; depth++ {
		var next []types.AccountID
		for _, id := range frontier {
			levels[depth] += t.balance(id)
			if child := t.nodes[id]; child != nil {
				next = append(next, child.children...)
			}
		}
		frontier = next
	}
	return levels
}

func percentOf(amount types.Amount, percent uint32) types.Amount {
	if amount <= 0 || percent == 0 {
		return 0
	}
	v := uint256.NewInt(uint64(amount))
	v.Mul(v, uint256.NewInt(uint64(percent)))
	v.Div(v, uint256.NewInt(types.BonusPercentDenom))
	return types.Amount(v.Uint64())
}
