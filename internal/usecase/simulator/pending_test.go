package simulator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/harvestflow-backend/internal/domain"
)

func TestPendingQueue_ResolvesOnlyDueEntries(t *testing.T) {
	q := newPendingQueue()
	q.schedule(domain.Maturation{Asset: "Turnip", MaturityDay: 3, Units: 2, Payoff: 70})
	q.schedule(domain.Maturation{Asset: "Kale", MaturityDay: 4, Units: 1, Payoff: 110})
	q.schedule(domain.Maturation{Asset: "Turnip", MaturityDay: 3, Units: 1, Payoff: 35})

	assert.Equal(t, 3, q.len())
	value, err := q.value()
	require.NoError(t, err)
	assert.Equal(t, int64(215), value)

	next, ok := q.next()
	require.True(t, ok)
	assert.Equal(t, 3, next)

	assert.Empty(t, q.resolve(2))

	due := q.resolve(3)
	assert.Len(t, due, 2)
	assert.Equal(t, 1, q.len())

	// Already resolved entries are gone
	assert.Empty(t, q.resolve(3))

	next, ok = q.next()
	require.True(t, ok)
	assert.Equal(t, 4, next)

	due = q.resolve(4)
	assert.Equal(t, []domain.Maturation{{Asset: "Kale", MaturityDay: 4, Units: 1, Payoff: 110}}, due)
	assert.Equal(t, 0, q.len())

	_, ok = q.next()
	assert.False(t, ok)

	value, err = q.value()
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestPendingQueue_ValueOverflow(t *testing.T) {
	q := newPendingQueue()
	q.schedule(domain.Maturation{Asset: "Big", MaturityDay: 2, Units: 1, Payoff: math.MaxInt64})
	q.schedule(domain.Maturation{Asset: "Big", MaturityDay: 3, Units: 1, Payoff: 1})

	_, err := q.value()

	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
}
