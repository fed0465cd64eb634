package domain

import "time"

// Order is the aggregate the driver shops for.
type Order struct {
	ID         string
	CustomerID string
	DriverID   string
	Status     OrderStatus
	Items      []OrderItem
	UpdatedAt  time.Time
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// Item returns the index of the item with the given ID or -1.
func (o Order) Item(id string) int {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return i
		}
	}
	return -1
}
