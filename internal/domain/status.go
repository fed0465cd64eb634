package domain

type (
	// OrderStatus represents the lifecycle phase of an order.
	OrderStatus string
	// ItemStatus represents the backend status of an order item.
	ItemStatus string
	// WeightUnit is the unit a weight-based item is priced in.
	WeightUnit string
	// NotificationMethod is how a customer is told about a variance.
	NotificationMethod string
)

// List of order statuses
const (
	OrderPending    OrderStatus = "pending"
	OrderAccepted   OrderStatus = "accepted"
	OrderShopping   OrderStatus = "shopping"
	OrderCheckout   OrderStatus = "checkout"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCanceled   OrderStatus = "canceled"
)

// List of item statuses
const (
	ItemPending        ItemStatus = "pending"
	ItemFound          ItemStatus = "found"
	ItemPartiallyFound ItemStatus = "partially_found"
	ItemNotFound       ItemStatus = "not_found"
	ItemWeighed        ItemStatus = "weighed"
	ItemSubstituted    ItemStatus = "substituted"
)

// List of weight units
const (
	UnitPound    WeightUnit = "lb"
	UnitKilogram WeightUnit = "kg"
	UnitOunce    WeightUnit = "oz"
)

// List of notification methods
const (
	NotifyPush NotificationMethod = "push"
	NotifySMS  NotificationMethod = "sms"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderAccepted, OrderShopping, OrderCheckout,
	OrderDelivering, OrderDelivered, OrderCanceled,
}

var allowedItemStatuses = [...]ItemStatus{
	ItemPending, ItemFound, ItemPartiallyFound, ItemNotFound, ItemWeighed, ItemSubstituted,
}

var allowedUnits = [...]WeightUnit{UnitPound, UnitKilogram, UnitOunce}

// Valid checks if the OrderStatus is known
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the ItemStatus is known
func (s ItemStatus) Valid() bool {
	for _, v := range allowedItemStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the WeightUnit is known
func (u WeightUnit) Valid() bool {
	for _, v := range allowedUnits {
		if u == v {
			return true
		}
	}
	return false
}

// Valid checks if the NotificationMethod is known
func (m NotificationMethod) Valid() bool {
	return m == NotifyPush || m == NotifySMS
}

// Approval is the tri-state variance approval reported by the backend.
type Approval int

// Approval states
const (
	ApprovalUndetermined Approval = iota
	ApprovalApproved
	ApprovalRejected
)

// ApprovalFromPtr maps an optional backend flag onto Approval.
func ApprovalFromPtr(v *bool) Approval {
	switch {
	case v == nil:
		return ApprovalUndetermined
	case *v:
		return ApprovalApproved
	default:
		return ApprovalRejected
	}
}

// Ptr maps Approval back onto an optional flag.
func (a Approval) Ptr() *bool {
	switch a {
	case ApprovalApproved:
		v := true
		return &v
	case ApprovalRejected:
		v := false
		return &v
	default:
		return nil
	}
}

func (a Approval) String() string {
	switch a {
	case ApprovalApproved:
		return "approved"
	case ApprovalRejected:
		return "rejected"
	default:
		return "undetermined"
	}
}

// Outcome is a variance approval classification.
type Outcome string

// Outcomes
const (
	OutcomeAutoApproved  Outcome = "auto_approved"
	OutcomeNeedsApproval Outcome = "needs_approval"
)
