package forecast

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/utils"
)

const maxTiers = 3

var tierNames = [maxTiers]string{"Low", "Medium", "High"}

// ClusterExpenses groups expense categories into severity tiers by amount.
// The partition is the exact least-squares split of the sorted amounts into at most
// three contiguous groups, so the same input always yields the same tiers.
// Results keep the input order.
func ClusterExpenses(entries []models.ExpenseEntry) ([]models.ExpenseCluster, error) {
	result := make([]models.ExpenseCluster, 0, len(entries))
	if len(entries) == 0 {
		return result, nil
	}
	for _, e := range entries {
		if !utils.IsFinite(e.Amount) {
			return nil, fmt.Errorf("%w: amount for %q is not a number", models.ErrInvalidInput, e.Category)
		}
	}

	k := min(maxTiers, len(entries))

	// Stable sort keeps insertion order between equal amounts
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].Amount < entries[order[b]].Amount
	})
	values := make([]float64, len(order))
	for i, idx := range order {
		values[i] = entries[idx].Amount
	}

	// Equal amounts never end up in different tiers
	var cuts []int
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			cuts = append(cuts, i)
		}
	}
	groups := min(k, len(cuts)+1)

	sse := newSquaredError(values)
	_, bounds := partition(sse, cuts, len(values), groups)

	ranks := make([]int, len(entries))
	start := 0
	for rank, end := range append(bounds, len(values)) {
		for i := start; i < end; i++ {
			ranks[order[i]] = rank
		}
		start = end
	}

	for i, e := range entries {
		result = append(result, models.ExpenseCluster{
			Category: e.Category,
			Amount:   e.Amount,
			Tier:     tierLabel(ranks[i], k),
		})
	}
	return result, nil
}

func tierLabel(rank, k int) string {
	if k == maxTiers {
		return tierNames[rank]
	}
	return fmt.Sprintf("Tier %d", rank+1)
}

// squaredError answers within-group sum of squared deviations for values[a:b]
type squaredError struct {
	sum, sumSq []float64
}

func newSquaredError(values []float64) squaredError {
	s := squaredError{sum: make([]float64, len(values)+1), sumSq: make([]float64, len(values)+1)}
	for i, v := range values {
		s.sum[i+1] = s.sum[i] + v
		s.sumSq[i+1] = s.sumSq[i] + v*v
	}
	return s
}

func (s squaredError) cost(a, b int) float64 {
	n := float64(b - a)
	if n == 0 {
		return 0
	}
	total := s.sum[b] - s.sum[a]
	return math.Max(0, s.sumSq[b]-s.sumSq[a]-total*total/n)
}

// partition picks groups-1 of the allowed cut positions splitting values[0:n] with the
// least total squared error. On ties the earliest cuts win.
func partition(sse squaredError, cuts []int, n, groups int) (float64, []int) {
	switch {
	case groups <= 1 || len(cuts) < groups-1:
		return sse.cost(0, n), nil
	case groups == 2:
		best, at := math.Inf(1), 0
		for _, c := range cuts {
			if total := sse.cost(0, c) + sse.cost(c, n); total < best {
				best, at = total, c
			}
		}
		return best, []int{at}
	}

	// tail[a] is the cheapest two-group split of values[cuts[a]:n], second cut at cuts[opt[a]]
	m := len(cuts)
	tail := make([]float64, m)
	opt := make([]int, m)
	for a := range tail {
		tail[a] = math.Inf(1)
	}
	splitTails(sse, cuts, n, tail, opt, 0, m-2, 1, m-1)

	best, first := math.Inf(1), 0
	for a := 0; a < m-1; a++ {
		if total := sse.cost(0, cuts[a]) + tail[a]; total < best {
			best, first = total, a
		}
	}
	return best, []int{cuts[first], cuts[opt[first]]}
}

// splitTails fills tail[aLo..aHi] by divide and conquer. The best second cut never moves
// left as the first cut moves right, so each level scans every candidate once.
func splitTails(sse squaredError, cuts []int, n int, tail []float64, opt []int, aLo, aHi, bLo, bHi int) {
	if aLo > aHi {
		return
	}
	mid := (aLo + aHi) / 2
	best, at := math.Inf(1), max(mid+1, bLo)
	for b := max(mid+1, bLo); b <= bHi; b++ {
		if total := sse.cost(cuts[mid], cuts[b]) + sse.cost(cuts[b], n); total < best {
			best, at = total, b
		}
	}
	tail[mid], opt[mid] = best, at

	splitTails(sse, cuts, n, tail, opt, aLo, mid-1, bLo, at)
	splitTails(sse, cuts, n, tail, opt, mid+1, aHi, at, bHi)
}
