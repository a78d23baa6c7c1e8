package simulator

import (
	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// pendingQueue holds purchases awaiting their payoff, keyed by maturity day.
// One entry per purchase, so its size is bounded by assets x days rather than units.
type pendingQueue struct {
	byDay map[int][]domain.Maturation
	size  int
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{byDay: make(map[int][]domain.Maturation)}
}

// schedule adds one entry; it will be returned by exactly one resolve call
func (q *pendingQueue) schedule(m domain.Maturation) {
	q.byDay[m.MaturityDay] = append(q.byDay[m.MaturityDay], m)
	q.size++
}

// resolve removes and returns every entry maturing on day, in purchase order.
// Entries for other days are left untouched.
func (q *pendingQueue) resolve(day int) []domain.Maturation {
	due, ok := q.byDay[day]
	if !ok {
		return nil
	}
	delete(q.byDay, day)
	q.size -= len(due)
	return due
}

// next returns the earliest day with unresolved entries
func (q *pendingQueue) next() (int, bool) {
	earliest, found := 0, false
	for day := range q.byDay {
		if !found || day < earliest {
			earliest, found = day, true
		}
	}
	return earliest, found
}

// len returns the number of unresolved entries
func (q *pendingQueue) len() int {
	return q.size
}

// value returns the summed payoff of every unresolved entry
func (q *pendingQueue) value() (int64, error) {
	var total int64
	for _, entries := range q.byDay {
		for _, m := range entries {
			var err error
			if total, err = domain.AddAmounts(total, m.Payoff); err != nil {
				return 0, err
			}
		}
	}
	return total, nil
}
