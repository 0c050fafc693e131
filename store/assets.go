package store

import (
	"sort"

	"edcchain/core/types"
)

// CreateAsset inserts an asset with its dynamic-data companion.
func (s *Store) CreateAsset(a *types.Asset) *types.Asset {
	if a.ID >= s.nextAssetID {
		s.nextAssetID = a.ID + 1
	}
	s.assets[a.ID] = a
	s.assetDyn[a.ID] = &types.AssetDynamicData{Asset: a.ID}
	return a
}

// NewAssetID hands out the next dense asset id.
func (s *Store) NewAssetID() types.AssetID {
	id := s.nextAssetID
	s.nextAssetID++
	return id
}

// Asset looks up an asset by id.
func (s *Store) Asset(id types.AssetID) (*types.Asset, bool) {
	a, ok := s.assets[id]
	return a, ok
}

// AssetBySymbol looks up an asset by symbol.
func (s *Store) AssetBySymbol(symbol string) (*types.Asset, bool) {
	for _, a := range s.assetsByID() {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return nil, false
}

// AssetDynamic returns the dynamic data of an asset.
func (s *Store) AssetDynamic(id types.AssetID) *types.AssetDynamicData {
	return s.assetDyn[id]
}

// CoreDynamic returns the dynamic data of the core asset.
func (s *Store) CoreDynamic() *types.AssetDynamicData {
	return s.assetDyn[types.CoreAssetID]
}

// AssetsByID yields every asset ordered by id.
func (s *Store) AssetsByID() []*types.Asset {
	return s.assetsByID()
}

func (s *Store) assetsByID() []*types.Asset {
	out := make([]*types.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Bitasset returns the bitasset companion of an asset, if any.
func (s *Store) Bitasset(id types.AssetID) (*types.BitassetData, bool) {
	b, ok := s.bitassets[id]
	return b, ok
}

// CreateBitasset attaches bitasset data to an asset.
func (s *Store) CreateBitasset(b *types.BitassetData) *types.BitassetData {
	s.bitassets[b.Asset] = b
	return b
}

// BitassetsByAsset yields every bitasset row ordered by asset id.
func (s *Store) BitassetsByAsset() []*types.BitassetData {
	out := make([]*types.BitassetData, 0, len(s.bitassets))
	for _, b := range s.bitassets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// FBA returns the fee-backed-asset pool with the given id, creating a
// zero pool on first access.
func (s *Store) FBA(id types.FBAccumulatorID) *types.FBAccumulator {
	f, ok := s.fbas[id]
	if !ok {
		f = &types.FBAccumulator{ID: id}
		s.fbas[id] = f
	}
	return f
}

// CreateBuyback marks an asset as buyback-configured.
func (s *Store) CreateBuyback(asset types.AssetID) *types.Buyback {
	b := &types.Buyback{ID: s.nextBuybackID, AssetToBuy: asset}
	s.nextBuybackID++
	s.buybacks[b.ID] = b
	return b
}

// BuybacksByID yields every buyback marker ordered by id.
func (s *Store) BuybacksByID() []*types.Buyback {
	out := make([]*types.Buyback, 0, len(s.buybacks))
	for _, b := range s.buybacks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateLimitOrder inserts an open order.
func (s *Store) CreateLimitOrder(o *types.LimitOrder) *types.LimitOrder {
	o.ID = s.nextLimitOrderID
	s.nextLimitOrderID++
	s.limitOrders[o.ID] = o
	return o
}

// LimitOrder looks up an open order by id.
func (s *Store) LimitOrder(id types.LimitOrderID) (*types.LimitOrder, bool) {
	o, ok := s.limitOrders[id]
	return o, ok
}

// RemoveLimitOrder deletes a filled or cancelled order.
func (s *Store) RemoveLimitOrder(id types.LimitOrderID) {
	delete(s.limitOrders, id)
}

// LimitOrdersByID yields every open order ordered by id.
func (s *Store) LimitOrdersByID() []*types.LimitOrder {
	out := make([]*types.LimitOrder, 0, len(s.limitOrders))
	for _, o := range s.limitOrders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
