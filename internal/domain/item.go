package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a single line of a grocery order as tracked during shopping.
type OrderItem struct {
	ID                string
	Name              string
	RequestedQuantity decimal.Decimal
	// FoundQuantity is nil until the driver resolves a unit-based item.
	FoundQuantity *decimal.Decimal
	IsWeightBased bool
	WeightUnit    WeightUnit
	PricePerUnit  decimal.Decimal
	MinWeight     *decimal.Decimal
	MaxWeight     *decimal.Decimal
	WeightInfo    *WeightInfo
	Status        ItemStatus
	FinalPrice    decimal.Decimal
	LineTotal     decimal.Decimal
	UpdatedAt     time.Time
}

// WeightInfo carries the weighing result of a weight-based item.
// ActualWeight is set only after the driver has weighed the item.
type WeightInfo struct {
	EstimatedWeight    decimal.Decimal
	ActualWeight       *decimal.Decimal
	EstimatedPrice     decimal.Decimal
	ActualPrice        decimal.Decimal
	VariancePercentage *float64
	VarianceApproved   Approval
	NeedsApproval      bool
}

// Weighed reports whether the driver completed a weigh action for the item.
func (i OrderItem) Weighed() bool {
	return i.WeightInfo != nil && i.WeightInfo.ActualWeight != nil
}

// Clone returns a deep copy so callers can hand items out without sharing pointers.
func (i OrderItem) Clone() OrderItem {
	out := i
	out.FoundQuantity = cloneDecimal(i.FoundQuantity)
	out.MinWeight = cloneDecimal(i.MinWeight)
	out.MaxWeight = cloneDecimal(i.MaxWeight)
	if i.WeightInfo != nil {
		wi := *i.WeightInfo
		wi.ActualWeight = cloneDecimal(i.WeightInfo.ActualWeight)
		if i.WeightInfo.VariancePercentage != nil {
			v := *i.WeightInfo.VariancePercentage
			wi.VariancePercentage = &v
		}
		out.WeightInfo = &wi
	}
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// WeightSubmission is the backend's answer to an actual weight submission.
type WeightSubmission struct {
	WeightInfo         WeightInfo
	Status             ItemStatus
	FoundQuantity      *decimal.Decimal
	FinalPrice         decimal.Decimal
	LineTotal          decimal.Decimal
	UpdatedAt          time.Time
	NeedsApproval      bool
	AutoApproved       bool
	VariancePercentage *float64
}
