package domain

// Purchase records the units of one asset bought on a simulated day.
// Buying is greedy, so an asset appears at most once per day.
type Purchase struct {
	Asset       string
	Day         int
	Units       int64
	UnitCost    int64
	MaturityDay int
	UnitPayoff  int64
}

// Cost returns the total paid for the purchase. It never exceeds the balance
// it was paid from, so it cannot overflow.
func (p Purchase) Cost() int64 {
	return p.Units * p.UnitCost
}

// Maturation is a pending payoff awaiting credit.
// Exactly one Maturation is scheduled per Purchase and it is resolved on MaturityDay.
type Maturation struct {
	Asset       string
	MaturityDay int
	Units       int64
	Payoff      int64 // Total for all units
}

// DayRecord captures what happened on a single simulated day.
// Phases run in order: maturities are credited, the admissible subset is computed,
// then the balance is spent greedily.
type DayRecord struct {
	Day            int
	OpeningBalance int64        // Balance before maturities were credited
	Matured        []Maturation // Entries resolved on this day
	Credited       int64        // Sum of Matured payoffs
	Admissible     []string     // Asset names that could still mature within the horizon, in rank order
	Purchases      []Purchase
	ClosingBalance int64
}

// Spent returns the total cost of the day's purchases
func (r DayRecord) Spent() int64 {
	var total int64
	for _, p := range r.Purchases {
		total += p.Cost()
	}
	return total
}

// UnitsBought returns the number of units bought on the day
func (r DayRecord) UnitsBought() int64 {
	var total int64
	for _, p := range r.Purchases {
		total += p.Units
	}
	return total
}
