package marketplace

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"grocery-shopper/internal/domain"
)

type orderDTO struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customerId"`
	DriverID   string         `json:"driverId"`
	Status     string         `json:"status"`
	Items      []orderItemDTO `json:"items"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type orderItemDTO struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	RequestedQuantity *decimal.Decimal `json:"requestedQuantity"`
	FoundQuantity     *decimal.Decimal `json:"foundQuantity"`
	IsWeightBased     bool             `json:"isWeightBased"`
	WeightUnit        string           `json:"weightUnit"`
	PricePerUnit      decimal.Decimal  `json:"pricePerUnit"`
	MinWeight         *decimal.Decimal `json:"minWeight"`
	MaxWeight         *decimal.Decimal `json:"maxWeight"`
	WeightInfo        *weightInfoDTO   `json:"weightInfo"`
	Status            string           `json:"status"`
	FinalPrice        decimal.Decimal  `json:"finalPrice"`
	LineTotal         decimal.Decimal  `json:"lineTotal"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

type weightInfoDTO struct {
	EstimatedWeight    decimal.Decimal  `json:"estimatedWeight"`
	ActualWeight       *decimal.Decimal `json:"actualWeight"`
	EstimatedPrice     decimal.Decimal  `json:"estimatedPrice"`
	ActualPrice        decimal.Decimal  `json:"actualPrice"`
	VariancePercentage *float64         `json:"variancePercentage"`
	VarianceApproved   *bool            `json:"varianceApproved"`
	NeedsApproval      bool             `json:"needsApproval"`
}

type submitWeightRequest struct {
	Weight json.Number `json:"weight"`
	Note   string      `json:"note,omitempty"`
}

type submitWeightResponse struct {
	WeightInfo    *weightInfoDTO   `json:"weightInfo"`
	OrderItem     *submittedItem   `json:"orderItem"`
	NeedsApproval bool             `json:"needsApproval"`
	AutoApproved  bool             `json:"autoApproved"`
	VarianceInfo  *varianceInfoDTO `json:"varianceInfo"`
}

type submittedItem struct {
	Status        string           `json:"status"`
	FoundQuantity *decimal.Decimal `json:"foundQuantity"`
	FinalPrice    decimal.Decimal  `json:"finalPrice"`
	LineTotal     decimal.Decimal  `json:"lineTotal"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type varianceInfoDTO struct {
	VariancePercentage *float64 `json:"variancePercentage"`
}

type foundQuantityRequest struct {
	FoundQuantity json.Number `json:"foundQuantity"`
	Notes         string      `json:"notes,omitempty"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

type preferencesDTO struct {
	AutoApproveVariances       *bool   `json:"autoApproveVariances"`
	MaxAutoVariancePercentage  *int    `json:"maxAutoVariancePercentage"`
	AutoApproveOveragesOnly    *bool   `json:"autoApproveOveragesOnly"`
	VarianceNotificationMethod *string `json:"varianceNotificationMethod"`
	ApprovalTimeoutMinutes     *int    `json:"approvalTimeoutMinutes"`
}

func parseOrder(dto orderDTO) (domain.Order, error) {
	id := strings.TrimSpace(dto.ID)
	if id == "" {
		return domain.Order{}, malformed("order without id")
	}
	status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(dto.Status)))
	if !status.Valid() {
		return domain.Order{}, malformed("order %s: unknown status %q", id, dto.Status)
	}

	ord := domain.Order{
		ID:         id,
		CustomerID: strings.TrimSpace(dto.CustomerID),
		DriverID:   strings.TrimSpace(dto.DriverID),
		Status:     status,
		Items:      make([]domain.OrderItem, 0, len(dto.Items)),
		UpdatedAt:  dto.UpdatedAt,
	}
	seen := make(map[string]struct{}, len(dto.Items))
	for _, raw := range dto.Items {
		it, err := parseItem(raw)
		if err != nil {
			return domain.Order{}, err
		}
		if _, dup := seen[it.ID]; dup {
			return domain.Order{}, malformed("order %s: duplicate item %s", id, it.ID)
		}
		seen[it.ID] = struct{}{}
		ord.Items = append(ord.Items, it)
	}
	return ord, nil
}

func parseItem(dto orderItemDTO) (domain.OrderItem, error) {
	id := strings.TrimSpace(dto.ID)
	if id == "" {
		return domain.OrderItem{}, malformed("item without id")
	}

	requested := decimal.Zero
	if dto.RequestedQuantity != nil {
		requested = *dto.RequestedQuantity
	}
	if requested.IsNegative() {
		return domain.OrderItem{}, malformed("item %s: negative requested quantity", id)
	}
	if dto.FoundQuantity != nil && dto.FoundQuantity.IsNegative() {
		return domain.OrderItem{}, malformed("item %s: negative found quantity", id)
	}
	if dto.PricePerUnit.IsNegative() {
		return domain.OrderItem{}, malformed("item %s: negative price", id)
	}
	if dto.MinWeight != nil && dto.MaxWeight != nil && dto.MinWeight.GreaterThan(*dto.MaxWeight) {
		return domain.OrderItem{}, malformed("item %s: min weight above max weight", id)
	}

	status, err := parseItemStatus(id, dto.Status)
	if err != nil {
		return domain.OrderItem{}, err
	}

	item := domain.OrderItem{
		ID:                id,
		Name:              dto.Name,
		RequestedQuantity: requested,
		FoundQuantity:     dto.FoundQuantity,
		IsWeightBased:     dto.IsWeightBased,
		PricePerUnit:      dto.PricePerUnit,
		MinWeight:         dto.MinWeight,
		MaxWeight:         dto.MaxWeight,
		Status:            status,
		FinalPrice:        dto.FinalPrice,
		LineTotal:         dto.LineTotal,
		UpdatedAt:         dto.UpdatedAt,
	}

	if dto.IsWeightBased {
		unit := domain.WeightUnit(strings.ToLower(strings.TrimSpace(dto.WeightUnit)))
		if unit == "" {
			unit = domain.UnitPound
		}
		if !unit.Valid() {
			return domain.OrderItem{}, malformed("item %s: unknown weight unit %q", id, dto.WeightUnit)
		}
		item.WeightUnit = unit
		if dto.WeightInfo != nil {
			wi := parseWeightInfo(*dto.WeightInfo)
			item.WeightInfo = &wi
		}
	}
	return item, nil
}

func parseItemStatus(id, raw string) (domain.ItemStatus, error) {
	s := domain.ItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return domain.ItemPending, nil
	}
	if !s.Valid() {
		return "", malformed("item %s: unknown status %q", id, raw)
	}
	return s, nil
}

func parseWeightInfo(dto weightInfoDTO) domain.WeightInfo {
	return domain.WeightInfo{
		EstimatedWeight:    dto.EstimatedWeight,
		ActualWeight:       dto.ActualWeight,
		EstimatedPrice:     dto.EstimatedPrice,
		ActualPrice:        dto.ActualPrice,
		VariancePercentage: dto.VariancePercentage,
		VarianceApproved:   domain.ApprovalFromPtr(dto.VarianceApproved),
		NeedsApproval:      dto.NeedsApproval,
	}
}

func parseSubmission(dto submitWeightResponse, weight decimal.Decimal) (domain.WeightSubmission, error) {
	if dto.WeightInfo == nil {
		return domain.WeightSubmission{}, malformed("weight submission without weightInfo")
	}
	wi := parseWeightInfo(*dto.WeightInfo)
	if wi.ActualWeight == nil {
		w := weight
		wi.ActualWeight = &w
	}
	// top-level flag is the decision; the nested copy may lag behind it
	wi.NeedsApproval = dto.NeedsApproval
	if dto.AutoApproved && wi.VarianceApproved == domain.ApprovalUndetermined {
		wi.VarianceApproved = domain.ApprovalApproved
	}

	out := domain.WeightSubmission{
		WeightInfo:         wi,
		Status:             domain.ItemWeighed,
		NeedsApproval:      dto.NeedsApproval,
		AutoApproved:       dto.AutoApproved,
		VariancePercentage: wi.VariancePercentage,
	}
	if dto.VarianceInfo != nil && dto.VarianceInfo.VariancePercentage != nil {
		out.VariancePercentage = dto.VarianceInfo.VariancePercentage
		out.WeightInfo.VariancePercentage = dto.VarianceInfo.VariancePercentage
	}
	if it := dto.OrderItem; it != nil {
		if it.Status != "" {
			status, err := parseItemStatus("submitted", it.Status)
			if err != nil {
				return domain.WeightSubmission{}, err
			}
			out.Status = status
		}
		out.FoundQuantity = it.FoundQuantity
		out.FinalPrice = it.FinalPrice
		out.LineTotal = it.LineTotal
		out.UpdatedAt = it.UpdatedAt
	}
	return out, nil
}

func parsePreferences(dto preferencesDTO) (domain.Preferences, error) {
	p := domain.DefaultPreferences()
	if dto.AutoApproveVariances != nil {
		p.AutoApproveVariances = *dto.AutoApproveVariances
	}
	if dto.MaxAutoVariancePercentage != nil {
		p.MaxAutoVariancePercentage = *dto.MaxAutoVariancePercentage
	}
	if dto.AutoApproveOveragesOnly != nil {
		p.AutoApproveOveragesOnly = *dto.AutoApproveOveragesOnly
	}
	if dto.VarianceNotificationMethod != nil {
		p.VarianceNotificationMethod = domain.NotificationMethod(strings.ToLower(*dto.VarianceNotificationMethod))
	}
	if dto.ApprovalTimeoutMinutes != nil {
		p.ApprovalTimeoutMinutes = *dto.ApprovalTimeoutMinutes
	}
	if !p.Valid() {
		return domain.Preferences{}, malformed("preferences out of range: %+v", p)
	}
	return p, nil
}

func preferencesToDTO(p domain.Preferences) preferencesDTO {
	method := string(p.VarianceNotificationMethod)
	return preferencesDTO{
		AutoApproveVariances:       &p.AutoApproveVariances,
		MaxAutoVariancePercentage:  &p.MaxAutoVariancePercentage,
		AutoApproveOveragesOnly:    &p.AutoApproveOveragesOnly,
		VarianceNotificationMethod: &method,
		ApprovalTimeoutMinutes:     &p.ApprovalTimeoutMinutes,
	}
}
