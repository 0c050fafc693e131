package referral

import (
	"testing"

	"edcchain/core/types"
)

func buildAccounts(referrers map[types.AccountID]types.AccountID, n int) []*types.Account {
	accounts := make([]*types.Account, 0, n)
	for i := 0; i < n; i++ {
		id := types.AccountID(i)
		ref := id
		if r, ok := referrers[id]; ok {
			ref = r
		}
		accounts = append(accounts, &types.Account{ID: id, Referrer: ref})
	}
	return accounts
}

func TestScanPaysReferrerFromDownline(t *testing.T) {
	// 1 refers 2 and 3; both hold enough to qualify.
	accounts := buildAccounts(map[types.AccountID]types.AccountID{2: 1, 3: 1}, 4)
	balances := map[types.AccountID]types.Amount{
		2: 200 * types.CoreAssetPrecision,
		3: 150 * types.CoreAssetPrecision,
	}
	tree := New(accounts, 0, func(id types.AccountID) types.Amount { return balances[id] })
	tree.Form()

	payouts := tree.Scan()
	payout, ok := Find(payouts, 1)
	if !ok {
		t.Fatalf("no payout for account 1: %v", payouts)
	}
	if payout.Rank != 2 {
		t.Fatalf("rank %d, want 2", payout.Rank)
	}
	level0 := balances[2] + balances[3]
	if len(payout.History) == 0 || payout.History[0] != level0 {
		t.Fatalf("history %v, want first level %d", payout.History, level0)
	}
	want := level0 * types.Amount(levelPercents[0]) / types.BonusPercentDenom
	if payout.Quantity != want {
		t.Fatalf("quantity %d, want %d", payout.Quantity, want)
	}
}

func TestScanSkipsLeavesAndDustDownlines(t *testing.T) {
	accounts := buildAccounts(map[types.AccountID]types.AccountID{2: 1}, 3)
	tree := New(accounts, 0, func(id types.AccountID) types.Amount { return 1 })
	tree.Form()
	if payouts := tree.Scan(); len(payouts) != 0 {
		t.Fatalf("dust downline still paid: %v", payouts)
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	refs := map[types.AccountID]types.AccountID{}
	for i := types.AccountID(10); i < 30; i++ {
		refs[i] = (i % 5) + 1
	}
	accounts := buildAccounts(refs, 30)
	balance := func(id types.AccountID) types.Amount { return 500 * types.CoreAssetPrecision }

	first := New(accounts, 0, balance)
	first.Form()
	second := New(accounts, 0, balance)
	second.Form()

	a, b := first.Scan(), second.Scan()
	if len(a) != len(b) {
		t.Fatalf("scan lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ToAccount != b[i].ToAccount || a[i].Quantity != b[i].Quantity || a[i].Rank != b[i].Rank {
			t.Fatalf("scan diverges at %d: %+v vs %+v", i, a[i], b[i])
		}
		if i > 0 && a[i].ToAccount <= a[i-1].ToAccount {
			t.Fatalf("scan not in account order at %d", i)
		}
	}
}

func TestDeepChainStopsAtMaxLevels(t *testing.T) {
	refs := map[types.AccountID]types.AccountID{}
	// Chain 1 <- 2 <- 3 ... <- 12.
	for i := types.AccountID(2); i <= 12; i++ {
		refs[i] = i - 1
	}
	accounts := buildAccounts(refs, 13)
	tree := New(accounts, 0, func(id types.AccountID) types.Amount { return 1000 * types.CoreAssetPrecision })
	tree.Form()
	payout, ok := Find(tree.Scan(), 1)
	if !ok {
		t.Fatalf("no payout for chain head")
	}
	if len(payout.History) > MaxLevels {
		t.Fatalf("history depth %d exceeds %d", len(payout.History), MaxLevels)
	}
}
