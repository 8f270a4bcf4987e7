package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending             OrderStatus = "PENDING"
	OrderStatusPendingVerification OrderStatus = "PENDING_VERIFICATION"
	OrderStatusPaid                OrderStatus = "PAID"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusFailed              OrderStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodGateway   PaymentMethod = "gateway"
	PaymentMethodUPIManual PaymentMethod = "upi_manual"
)

// orderTransitions lists, per current status, the statuses an order may move to.
// Statuses only move forward; FAILED and COMPLETED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:             {OrderStatusPaid, OrderStatusFailed},
	OrderStatusPendingVerification: {OrderStatusCompleted, OrderStatusFailed},
	OrderStatusPaid:                {OrderStatusCompleted},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsPaid reports whether the buyer has actually paid for the product.
func (s OrderStatus) IsPaid() bool {
	return s == OrderStatusPaid || s == OrderStatusCompleted
}

type Order struct {
	ID               uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	ProductID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"product_id"`
	Product          *PYQ          `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BuyerName        string        `gorm:"not null" json:"buyer_name"`
	BuyerEmail       string        `gorm:"not null;index:idx_orders_email_status,priority:1" json:"buyer_email"`
	Status           OrderStatus   `gorm:"type:varchar(32);not null;index:idx_orders_email_status,priority:2" json:"status"`
	PaymentMethod    PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Amount           int64         `gorm:"not null;default:0" json:"amount"`
	GatewayOrderID   *string       `gorm:"type:varchar(100);uniqueIndex" json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string       `gorm:"type:varchar(100)" json:"gateway_payment_id,omitempty"`
	UPITransactionID *string       `gorm:"type:varchar(100)" json:"upi_transaction_id,omitempty"`
	AdminVerified    bool          `gorm:"not null;default:false" json:"admin_verified"`
	CreatedAt        time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}
