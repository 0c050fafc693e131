package votes

import "sort"

// TopK selects the count best candidates: primary key tallied votes
// descending, tie-break ranking key ascending. Ties must resolve the
// same way on every node; the ranking key is the candidate's dense
// vote id (or object id for workers), so lower id wins.
func TopK[T any](candidates []T, count int, votes func(T) uint64, rank func(T) uint64) []T {
	refs := append([]T(nil), candidates...)
	sort.Slice(refs, func(i, j int) bool {
		vi, vj := votes(refs[i]), votes(refs[j])
		if vi != vj {
			return vi > vj
		}
		return rank(refs[i]) < rank(refs[j])
	})
	if count > len(refs) {
		count = len(refs)
	}
	return refs[:count]
}
