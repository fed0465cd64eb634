package handlers

import (
	"time"

	"github.com/shopspring/decimal"
)

type weightRequest struct {
	Weight float64 `json:"weight"`
	Note   string  `json:"note,omitempty"`
}

type foundQuantityRequest struct {
	FoundQuantity decimal.Decimal `json:"found_quantity"`
	Notes         string          `json:"notes,omitempty"`
}

type preferenceEditRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type weightInfoDTO struct {
	EstimatedWeight    decimal.Decimal  `json:"estimated_weight"`
	ActualWeight       *decimal.Decimal `json:"actual_weight,omitempty"`
	EstimatedPrice     decimal.Decimal  `json:"estimated_price"`
	ActualPrice        decimal.Decimal  `json:"actual_price"`
	VariancePercentage *float64         `json:"variance_percentage,omitempty"`
	VarianceApproved   *bool            `json:"variance_approved"`
	NeedsApproval      bool             `json:"needs_approval"`
}

type itemDTO struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	RequestedQuantity decimal.Decimal  `json:"requested_quantity"`
	FoundQuantity     *decimal.Decimal `json:"found_quantity,omitempty"`
	IsWeightBased     bool             `json:"is_weight_based"`
	WeightUnit        string           `json:"weight_unit,omitempty"`
	PricePerUnit      decimal.Decimal  `json:"price_per_unit"`
	MinWeight         *decimal.Decimal `json:"min_weight,omitempty"`
	MaxWeight         *decimal.Decimal `json:"max_weight,omitempty"`
	WeightInfo        *weightInfoDTO   `json:"weight_info,omitempty"`
	Status            string           `json:"status"`
	State             string           `json:"state"`
	FinalPrice        decimal.Decimal  `json:"final_price"`
	LineTotal         decimal.Decimal  `json:"line_total"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type progressDTO struct {
	Resolved         int      `json:"resolved"`
	Total            int      `json:"total"`
	Pending          []string `json:"pending"`
	AwaitingApproval []string `json:"awaiting_approval"`
	CanCheckout      bool     `json:"can_checkout"`
	Message          string   `json:"message"`
}

type preferencesDTO struct {
	AutoApproveVariances       bool   `json:"auto_approve_variances"`
	MaxAutoVariancePercentage  int    `json:"max_auto_variance_percentage"`
	AutoApproveOveragesOnly    bool   `json:"auto_approve_overages_only"`
	VarianceNotificationMethod string `json:"variance_notification_method"`
	ApprovalTimeoutMinutes     int    `json:"approval_timeout_minutes"`
}

type snapshotDTO struct {
	OrderID            string         `json:"order_id"`
	CustomerID         string         `json:"customer_id"`
	Status             string         `json:"status"`
	Items              []itemDTO      `json:"items"`
	Progress           progressDTO    `json:"progress"`
	Preferences        preferencesDTO `json:"preferences"`
	DefaultPreferences bool           `json:"default_preferences"`
	InFlight           []string       `json:"in_flight"`
}

type previewDTO struct {
	CandidateWeight    decimal.Decimal `json:"candidate_weight"`
	EstimatedPrice     decimal.Decimal `json:"estimated_price"`
	ActualPrice        decimal.Decimal `json:"actual_price"`
	VarianceAmount     decimal.Decimal `json:"variance_amount"`
	VariancePercentage *float64        `json:"variance_percentage"`
	PredictedOutcome   string          `json:"predicted_outcome"`
}

type weightResultDTO struct {
	Item          itemDTO     `json:"item"`
	Preview       previewDTO  `json:"preview"`
	NeedsApproval bool        `json:"needs_approval"`
	AutoApproved  bool        `json:"auto_approved"`
	Progress      progressDTO `json:"progress"`
}

type itemResultDTO struct {
	Item     itemDTO     `json:"item"`
	Progress progressDTO `json:"progress"`
}

type preferenceStateDTO struct {
	Committed preferencesDTO `json:"committed"`
	Draft     preferencesDTO `json:"draft"`
	Dirty     bool           `json:"dirty"`
}

type driftRowDTO struct {
	Predicted string `json:"predicted"`
	Server    string `json:"server"`
	Count     int64  `json:"count"`
}

type driftReportDTO struct {
	Since      time.Time                   `json:"since"`
	Total      int64                       `json:"total"`
	Mismatched int64                       `json:"mismatched"`
	Rows       []driftRowDTO               `json:"rows"`
	Decisions  map[string]map[string]int64 `json:"decisions"`
}
