package models

type UserStatus string
type UserRole string
type OrderStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"

	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"

	OrderStatusPending   OrderStatus = "pending"
	OrderStatusToPay     OrderStatus = "to_pay"
	OrderStatusToShip    OrderStatus = "to_ship"
	OrderStatusToReceive OrderStatus = "to_receive"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusRefund    OrderStatus = "refund"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every order status in dashboard display order.
var OrderStatuses = []OrderStatus{
	OrderStatusToPay,
	OrderStatusToShip,
	OrderStatusToReceive,
	OrderStatusCompleted,
	OrderStatusRefund,
	OrderStatusCancelled,
}

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

func (r UserRole) Valid() bool {
	return r == UserRoleCustomer || r == UserRoleAdmin
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusPending {
		return true
	}
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
