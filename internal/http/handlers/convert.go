package handlers

import (
	"grocery-shopper/internal/domain"
	"grocery-shopper/internal/progress"
	"grocery-shopper/internal/service/shopping"
	"grocery-shopper/internal/variance"
)

func itemToResponse(it domain.OrderItem) itemDTO {
	out := itemDTO{
		ID:                it.ID,
		Name:              it.Name,
		RequestedQuantity: it.RequestedQuantity,
		FoundQuantity:     it.FoundQuantity,
		IsWeightBased:     it.IsWeightBased,
		WeightUnit:        string(it.WeightUnit),
		PricePerUnit:      it.PricePerUnit,
		MinWeight:         it.MinWeight,
		MaxWeight:         it.MaxWeight,
		Status:            string(it.Status),
		State:             string(progress.ItemState(it)),
		FinalPrice:        it.FinalPrice,
		LineTotal:         it.LineTotal,
		UpdatedAt:         it.UpdatedAt,
	}
	if wi := it.WeightInfo; wi != nil {
		out.WeightInfo = &weightInfoDTO{
			EstimatedWeight:    wi.EstimatedWeight,
			ActualWeight:       wi.ActualWeight,
			EstimatedPrice:     wi.EstimatedPrice,
			ActualPrice:        wi.ActualPrice,
			VariancePercentage: wi.VariancePercentage,
			VarianceApproved:   wi.VarianceApproved.Ptr(),
			NeedsApproval:      wi.NeedsApproval,
		}
	}
	return out
}

func progressToResponse(p progress.Progress) progressDTO {
	return progressDTO{
		Resolved:         p.Resolved,
		Total:            p.Total,
		Pending:          nonNil(p.Pending),
		AwaitingApproval: nonNil(p.AwaitingApproval),
		CanCheckout:      p.CanCheckout,
		Message:          p.Message,
	}
}

func preferencesToResponse(p domain.Preferences) preferencesDTO {
	return preferencesDTO{
		AutoApproveVariances:       p.AutoApproveVariances,
		MaxAutoVariancePercentage:  p.MaxAutoVariancePercentage,
		AutoApproveOveragesOnly:    p.AutoApproveOveragesOnly,
		VarianceNotificationMethod: string(p.VarianceNotificationMethod),
		ApprovalTimeoutMinutes:     p.ApprovalTimeoutMinutes,
	}
}

func stateToResponse(s domain.PreferenceState) preferenceStateDTO {
	return preferenceStateDTO{
		Committed: preferencesToResponse(s.Committed),
		Draft:     preferencesToResponse(s.Draft),
		Dirty:     s.Dirty(),
	}
}

func snapshotToResponse(s shopping.Snapshot) snapshotDTO {
	items := make([]itemDTO, 0, len(s.Order.Items))
	for _, it := range s.Order.Items {
		items = append(items, itemToResponse(it))
	}
	return snapshotDTO{
		OrderID:            s.Order.ID,
		CustomerID:         s.Order.CustomerID,
		Status:             string(s.Order.Status),
		Items:              items,
		Progress:           progressToResponse(s.Progress),
		Preferences:        preferencesToResponse(s.Preferences),
		DefaultPreferences: s.DefaultPreferences,
		InFlight:           nonNil(s.InFlight),
	}
}

func previewToResponse(e variance.Evaluation) previewDTO {
	return previewDTO{
		CandidateWeight:    e.CandidateWeight,
		EstimatedPrice:     e.EstimatedPrice,
		ActualPrice:        e.ActualPrice,
		VarianceAmount:     e.VarianceAmount,
		VariancePercentage: e.VariancePercentage,
		PredictedOutcome:   string(e.PredictedOutcome),
	}
}

func weightResultToResponse(r shopping.WeightResult) weightResultDTO {
	return weightResultDTO{
		Item:          itemToResponse(r.Item),
		Preview:       previewToResponse(r.Preview),
		NeedsApproval: r.NeedsApproval,
		AutoApproved:  r.AutoApproved,
		Progress:      progressToResponse(r.Progress),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
