// Package variance previews weight variances of weight-priced items.
//
// The preview mirrors the marketplace approval policy so the driver app can show a likely
// outcome immediately. The backend decision stays authoritative: nothing here writes into
// an item's WeightInfo.
package variance

import (
	"math"

	"github.com/shopspring/decimal"

	"grocery-shopper/internal/apperr"
	"grocery-shopper/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Evaluation is the preview of a candidate weight.
type Evaluation struct {
	CandidateWeight decimal.Decimal
	EstimatedPrice  decimal.Decimal
	ActualPrice     decimal.Decimal
	// VarianceAmount is candidate minus requested weight.
	VarianceAmount decimal.Decimal
	// VariancePercentage is nil when the requested quantity is zero.
	VariancePercentage *float64
	PredictedOutcome   domain.Outcome
}

// ValidateWeight runs the checks a candidate weight must pass before it is evaluated or sent.
func ValidateWeight(item domain.OrderItem, candidate float64) (decimal.Decimal, error) {
	if math.IsNaN(candidate) || math.IsInf(candidate, 0) || candidate <= 0 {
		return decimal.Zero, apperr.ErrInvalidWeight
	}
	w := decimal.NewFromFloat(candidate)
	if item.MinWeight != nil && w.LessThan(*item.MinWeight) {
		return decimal.Zero, apperr.ErrWeightBelowMinimum
	}
	if item.MaxWeight != nil && w.GreaterThan(*item.MaxWeight) {
		return decimal.Zero, apperr.ErrWeightAboveMaximum
	}
	if !item.IsWeightBased {
		return decimal.Zero, apperr.ErrNotWeightBased
	}
	return w, nil
}

// Evaluate validates candidate against item bounds and previews prices and the approval outcome
// under prefs. It has no side effects.
func Evaluate(item domain.OrderItem, candidate float64, prefs domain.Preferences) (Evaluation, error) {
	w, err := ValidateWeight(item, candidate)
	if err != nil {
		return Evaluation{}, err
	}

	requested := item.RequestedQuantity
	ev := Evaluation{
		CandidateWeight: w,
		EstimatedPrice:  requested.Mul(item.PricePerUnit),
		ActualPrice:     w.Mul(item.PricePerUnit),
		VarianceAmount:  w.Sub(requested),
	}

	if !requested.IsPositive() {
		ev.PredictedOutcome = domain.OutcomeNeedsApproval
		return ev, nil
	}

	pct := w.Sub(requested).Div(requested).Mul(hundred)
	f := pct.InexactFloat64()
	ev.VariancePercentage = &f
	ev.PredictedOutcome = classify(pct, prefs)
	return ev, nil
}

// Classify applies the auto-approval policy to a variance percentage.
// A nil percentage cannot be evaluated and always needs approval.
func Classify(pct *float64, prefs domain.Preferences) domain.Outcome {
	if pct == nil || math.IsNaN(*pct) || math.IsInf(*pct, 0) {
		return domain.OutcomeNeedsApproval
	}
	return classify(decimal.NewFromFloat(*pct), prefs)
}

func classify(pct decimal.Decimal, prefs domain.Preferences) domain.Outcome {
	if !prefs.AutoApproveVariances {
		return domain.OutcomeNeedsApproval
	}
	// underage is never auto-approved in overages-only mode
	if prefs.AutoApproveOveragesOnly && pct.IsNegative() {
		return domain.OutcomeNeedsApproval
	}
	// the threshold itself is within tolerance
	if pct.Abs().LessThanOrEqual(decimal.NewFromInt(int64(prefs.MaxAutoVariancePercentage))) {
		return domain.OutcomeAutoApproved
	}
	return domain.OutcomeNeedsApproval
}
