package shopping

import (
	"time"

	"grocery-shopper/internal/domain"
)

// mergeOrder folds a fetched order into the local one.
//
// The fetched copy wins, except for an item confirmed locally at a version newer than
// the fetched UpdatedAt: that item keeps the local value once. Every mark in held is
// consumed, so the following refresh always takes the fetched value.
func mergeOrder(local, incoming domain.Order, held map[string]time.Time) (domain.Order, []string) {
	out := incoming.Clone()
	var kept []string
	for i, in := range out.Items {
		version, ok := held[in.ID]
		if !ok || !in.UpdatedAt.Before(version) {
			continue
		}
		if j := local.Item(in.ID); j >= 0 {
			out.Items[i] = local.Items[j].Clone()
			kept = append(kept, in.ID)
		}
	}
	clear(held)
	return out, kept
}

func applySubmission(item domain.OrderItem, sub domain.WeightSubmission, version time.Time) domain.OrderItem {
	out := item.Clone()
	wi := sub.WeightInfo
	if old := item.WeightInfo; old != nil {
		if wi.EstimatedWeight.IsZero() {
			wi.EstimatedWeight = old.EstimatedWeight
		}
		if wi.EstimatedPrice.IsZero() {
			wi.EstimatedPrice = old.EstimatedPrice
		}
	}
	out.WeightInfo = &wi
	if sub.Status != "" {
		out.Status = sub.Status
	}
	if sub.FoundQuantity != nil {
		q := *sub.FoundQuantity
		out.FoundQuantity = &q
	}
	if !sub.FinalPrice.IsZero() {
		out.FinalPrice = sub.FinalPrice
	}
	if !sub.LineTotal.IsZero() {
		out.LineTotal = sub.LineTotal
	}
	out.UpdatedAt = version
	return out
}
