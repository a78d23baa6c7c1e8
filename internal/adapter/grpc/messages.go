package grpc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/harvestflow-backend/internal/domain"
	"github.com/simaogato/harvestflow-backend/internal/usecase/allocator"
	"github.com/simaogato/harvestflow-backend/internal/usecase/planner"
)

// Wire layout (google.protobuf.Struct fields). Money travels as decimal strings,
// like amounts elsewhere in the API; day counters travel as numbers.
//
//	AllocateOnce request:  catalog, starting_balance
//	AllocateOnce response: run_id, catalog, starting_balance, purchases[], remaining, ranking[{name, daily_yield}]
//	Simulate request:      catalog, starting_balance, horizon, include_trace
//	Simulate response:     run_id, catalog, starting_balance, horizon, final_balance, unmatured, days[]
//	ListCatalogs response: catalogs[]
//
// Purchases and maturations carry a units count; costs and payoffs of a purchase
// are per unit, the payoff of a maturation is the total.
const (
	fieldCatalog         = "catalog"
	fieldCatalogs        = "catalogs"
	fieldStartingBalance = "starting_balance"
	fieldHorizon         = "horizon"
	fieldIncludeTrace    = "include_trace"
	fieldRunID           = "run_id"
	fieldPurchases       = "purchases"
	fieldRemaining       = "remaining"
	fieldRanking         = "ranking"
	fieldFinalBalance    = "final_balance"
	fieldUnmatured       = "unmatured"
	fieldDays            = "days"
)

// MaxHorizon is the longest horizon accepted over the wire
const MaxHorizon = 100_000

// AllocationResponse is the decoded AllocateOnce response
type AllocationResponse struct {
	RunID           string
	Catalog         string
	StartingBalance int64
	Purchases       []string
	Remaining       int64
}

// SimulationResponse is the decoded Simulate response
type SimulationResponse struct {
	RunID           string
	Catalog         string
	StartingBalance int64
	Horizon         int
	FinalBalance    int64
	Unmatured       int64
	Days            []domain.DayRecord // Empty unless the trace was requested
}

// --- requests ---

func encodeAllocateRequest(input planner.AllocateInput) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldCatalog:         input.CatalogName,
		fieldStartingBalance: formatAmount(input.StartingBalance),
	})
}

func decodeAllocateRequest(req *structpb.Struct) (planner.AllocateInput, error) {
	balance, err := amountField(req, fieldStartingBalance)
	if err != nil {
		return planner.AllocateInput{}, err
	}
	return planner.AllocateInput{
		CatalogName:     req.GetFields()[fieldCatalog].GetStringValue(),
		StartingBalance: balance,
	}, nil
}

func encodeSimulateRequest(input planner.SimulateInput) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		fieldCatalog:         input.CatalogName,
		fieldStartingBalance: formatAmount(input.StartingBalance),
		fieldHorizon:         input.Horizon,
		fieldIncludeTrace:    input.Trace,
	})
}

func decodeSimulateRequest(req *structpb.Struct) (planner.SimulateInput, error) {
	balance, err := amountField(req, fieldStartingBalance)
	if err != nil {
		return planner.SimulateInput{}, err
	}
	horizon, err := intField(req, fieldHorizon)
	if err != nil {
		return planner.SimulateInput{}, err
	}
	if horizon > MaxHorizon {
		return planner.SimulateInput{}, fmt.Errorf("horizon %d exceeds the maximum of %d", horizon, MaxHorizon)
	}
	return planner.SimulateInput{
		CatalogName:     req.GetFields()[fieldCatalog].GetStringValue(),
		StartingBalance: balance,
		Horizon:         horizon,
		Trace:           req.GetFields()[fieldIncludeTrace].GetBoolValue(),
	}, nil
}

// --- responses ---

func encodeAllocation(report *planner.AllocationReport) (*structpb.Struct, error) {
	purchases := make([]interface{}, 0, len(report.Allocation.Purchases))
	for _, name := range report.Allocation.Purchases {
		purchases = append(purchases, name)
	}

	ranking := make([]interface{}, 0, report.Catalog.Len())
	for _, asset := range allocator.Rank(report.Catalog.Assets()) {
		ranking = append(ranking, map[string]interface{}{
			"name":        asset.Name,
			"daily_yield": asset.DailyYield().StringFixed(4),
		})
	}

	return structpb.NewStruct(map[string]interface{}{
		fieldRunID:           report.RunID.String(),
		fieldCatalog:         report.Catalog.Name(),
		fieldStartingBalance: formatAmount(report.StartingBalance),
		fieldPurchases:       purchases,
		fieldRemaining:       formatAmount(report.Allocation.Remaining),
		fieldRanking:         ranking,
	})
}

func decodeAllocation(resp *structpb.Struct) (*AllocationResponse, error) {
	out := &AllocationResponse{
		RunID:   resp.GetFields()[fieldRunID].GetStringValue(),
		Catalog: resp.GetFields()[fieldCatalog].GetStringValue(),
	}

	var err error
	if out.StartingBalance, err = amountField(resp, fieldStartingBalance); err != nil {
		return nil, err
	}
	if out.Remaining, err = amountField(resp, fieldRemaining); err != nil {
		return nil, err
	}

	out.Purchases = make([]string, 0)
	for _, v := range resp.GetFields()[fieldPurchases].GetListValue().GetValues() {
		out.Purchases = append(out.Purchases, v.GetStringValue())
	}

	return out, nil
}

func encodeSimulation(report *planner.SimulationReport) (*structpb.Struct, error) {
	result := report.Result
	fields := map[string]interface{}{
		fieldRunID:           report.RunID.String(),
		fieldCatalog:         report.Catalog.Name(),
		fieldStartingBalance: formatAmount(result.StartingBalance),
		fieldHorizon:         result.Horizon,
		fieldFinalBalance:    formatAmount(result.FinalBalance),
		fieldUnmatured:       formatAmount(result.Unmatured),
	}

	if len(result.Days) > 0 {
		days := make([]interface{}, 0, len(result.Days))
		for _, day := range result.Days {
			days = append(days, encodeDay(day))
		}
		fields[fieldDays] = days
	}

	return structpb.NewStruct(fields)
}

func encodeDay(day domain.DayRecord) map[string]interface{} {
	admissible := make([]interface{}, 0, len(day.Admissible))
	for _, name := range day.Admissible {
		admissible = append(admissible, name)
	}

	matured := make([]interface{}, 0, len(day.Matured))
	for _, m := range day.Matured {
		matured = append(matured, map[string]interface{}{
			"asset":        m.Asset,
			"maturity_day": m.MaturityDay,
			"units":        formatAmount(m.Units),
			"payoff":       formatAmount(m.Payoff),
		})
	}

	purchases := make([]interface{}, 0, len(day.Purchases))
	for _, p := range day.Purchases {
		purchases = append(purchases, map[string]interface{}{
			"asset":        p.Asset,
			"day":          p.Day,
			"units":        formatAmount(p.Units),
			"cost":         formatAmount(p.UnitCost),
			"maturity_day": p.MaturityDay,
			"payoff":       formatAmount(p.UnitPayoff),
		})
	}

	return map[string]interface{}{
		"day":             day.Day,
		"opening_balance": formatAmount(day.OpeningBalance),
		"credited":        formatAmount(day.Credited),
		"closing_balance": formatAmount(day.ClosingBalance),
		"admissible":      admissible,
		"matured":         matured,
		"purchases":       purchases,
	}
}

func decodeSimulation(resp *structpb.Struct) (*SimulationResponse, error) {
	out := &SimulationResponse{
		RunID:   resp.GetFields()[fieldRunID].GetStringValue(),
		Catalog: resp.GetFields()[fieldCatalog].GetStringValue(),
	}

	var err error
	if out.StartingBalance, err = amountField(resp, fieldStartingBalance); err != nil {
		return nil, err
	}
	if out.Horizon, err = intField(resp, fieldHorizon); err != nil {
		return nil, err
	}
	if out.FinalBalance, err = amountField(resp, fieldFinalBalance); err != nil {
		return nil, err
	}
	if out.Unmatured, err = amountField(resp, fieldUnmatured); err != nil {
		return nil, err
	}

	for _, v := range resp.GetFields()[fieldDays].GetListValue().GetValues() {
		day, err := decodeDay(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		out.Days = append(out.Days, day)
	}

	return out, nil
}

func decodeDay(s *structpb.Struct) (domain.DayRecord, error) {
	var day domain.DayRecord
	var err error

	if day.Day, err = intField(s, "day"); err != nil {
		return day, err
	}
	if day.OpeningBalance, err = amountField(s, "opening_balance"); err != nil {
		return day, err
	}
	if day.Credited, err = amountField(s, "credited"); err != nil {
		return day, err
	}
	if day.ClosingBalance, err = amountField(s, "closing_balance"); err != nil {
		return day, err
	}

	day.Admissible = make([]string, 0)
	for _, v := range s.GetFields()["admissible"].GetListValue().GetValues() {
		day.Admissible = append(day.Admissible, v.GetStringValue())
	}

	for _, v := range s.GetFields()["matured"].GetListValue().GetValues() {
		entry := v.GetStructValue()
		m := domain.Maturation{Asset: entry.GetFields()["asset"].GetStringValue()}
		if m.MaturityDay, err = intField(entry, "maturity_day"); err != nil {
			return day, err
		}
		if m.Units, err = amountField(entry, "units"); err != nil {
			return day, err
		}
		if m.Payoff, err = amountField(entry, "payoff"); err != nil {
			return day, err
		}
		day.Matured = append(day.Matured, m)
	}

	for _, v := range s.GetFields()["purchases"].GetListValue().GetValues() {
		entry := v.GetStructValue()
		p := domain.Purchase{Asset: entry.GetFields()["asset"].GetStringValue()}
		if p.Day, err = intField(entry, "day"); err != nil {
			return day, err
		}
		if p.Units, err = amountField(entry, "units"); err != nil {
			return day, err
		}
		if p.UnitCost, err = amountField(entry, "cost"); err != nil {
			return day, err
		}
		if p.MaturityDay, err = intField(entry, "maturity_day"); err != nil {
			return day, err
		}
		if p.UnitPayoff, err = amountField(entry, "payoff"); err != nil {
			return day, err
		}
		day.Purchases = append(day.Purchases, p)
	}

	return day, nil
}

func encodeCatalogNames(names []string) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(names))
	for _, name := range names {
		list = append(list, name)
	}
	return structpb.NewStruct(map[string]interface{}{fieldCatalogs: list})
}

func decodeCatalogNames(resp *structpb.Struct) []string {
	names := make([]string, 0)
	for _, v := range resp.GetFields()[fieldCatalogs].GetListValue().GetValues() {
		names = append(names, v.GetStringValue())
	}
	return names
}

// --- field helpers ---

func formatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// amountField reads a whole-unit amount sent either as a decimal string or a number.
// A missing field reads as zero.
func amountField(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		amount, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return 0, fmt.Errorf("invalid %s format: %w", key, err)
		}
		if !amount.IsInteger() {
			return 0, fmt.Errorf("invalid %s: %s is not a whole amount", key, kind.StringValue)
		}
		if amount.GreaterThan(maxAmount) || amount.LessThan(minAmount) {
			return 0, fmt.Errorf("invalid %s: %s is out of range", key, kind.StringValue)
		}
		return amount.IntPart(), nil
	case *structpb.Value_NumberValue:
		return wholeNumber(key, kind.NumberValue)
	case *structpb.Value_NullValue:
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid %s: expected string or number", key)
	}
}

// intField reads a whole number. A missing field reads as zero.
func intField(s *structpb.Struct, key string) (int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n, err := wholeNumber(key, kind.NumberValue)
		return int(n), err
	case *structpb.Value_StringValue:
		n, err := strconv.Atoi(kind.StringValue)
		if err != nil {
			return 0, fmt.Errorf("invalid %s format: %w", key, err)
		}
		return n, nil
	case *structpb.Value_NullValue:
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid %s: expected number", key)
	}
}

func wholeNumber(key string, f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid %s: %v is not a whole number", key, f)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("invalid %s: %v is out of range", key, f)
	}
	return int64(f), nil
}
