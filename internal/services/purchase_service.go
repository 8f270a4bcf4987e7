package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Srijansendry/Srijan/internal/helpers"
	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/payments"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultGatewayTimeout = 10 * time.Second
	DefaultRestoreLimit   = 500
	defaultUPIPayeeName   = "StudyVerse"
)

type PurchaseOptions struct {
	GatewayFactory payments.Factory
	GatewayTimeout time.Duration
	// RestoreLimit caps how many completed orders one restoration request scans.
	RestoreLimit int
}

// PurchaseService runs both payment paths for PYQs (manual UPI and gateway
// checkout) and answers which products an email has bought.
type PurchaseService struct {
	db       *gorm.DB
	settings *SettingsService
	opts     PurchaseOptions
}

func NewPurchaseService(db *gorm.DB, opts PurchaseOptions) *PurchaseService {
	if opts.GatewayFactory == nil {
		opts.GatewayFactory = payments.NewRazorpayGateway
	}
	if opts.GatewayTimeout <= 0 {
		opts.GatewayTimeout = DefaultGatewayTimeout
	}
	if opts.RestoreLimit <= 0 {
		opts.RestoreLimit = DefaultRestoreLimit
	}
	return &PurchaseService{
		db:       db,
		settings: NewSettingsService(db),
		opts:     opts,
	}
}

type ManualPaymentInput struct {
	ProductID     string
	BuyerName     string
	BuyerEmail    string
	TransactionID string
}

type GatewayOrderInput struct {
	ProductID  string
	BuyerName  string
	BuyerEmail string
}

type GatewayOrder struct {
	OrderID        uuid.UUID
	GatewayOrderID string
	Amount         int64
	Currency       string
	KeyID          string
}

// VerifyResult reports the outcome of a checkout callback. Transitioned is true
// only for the call that actually moved the order to PAID.
type VerifyResult struct {
	Verified     bool
	Transitioned bool
}

type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

func (s *PurchaseService) findProduct(ctx context.Context, productID string) (*models.PYQ, error) {
	id, err := uuid.Parse(strings.TrimSpace(productID))
	if err != nil {
		return nil, notFoundError("product %q", productID)
	}

	var pyq models.PYQ
	if err := s.db.WithContext(ctx).First(&pyq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("product %s", id)
		}
		return nil, persistenceError("load product", err)
	}
	return &pyq, nil
}

// SubmitManualPayment records a buyer's claimed UPI transfer. The order always
// waits in PENDING_VERIFICATION for an administrator.
func (s *PurchaseService) SubmitManualPayment(ctx context.Context, in ManualPaymentInput) (*models.Order, error) {
	buyerName := strings.TrimSpace(in.BuyerName)
	buyerEmail := helpers.NormalizeEmail(in.BuyerEmail)
	transactionID := strings.TrimSpace(in.TransactionID)
	if strings.TrimSpace(in.ProductID) == "" || buyerName == "" || buyerEmail == "" || transactionID == "" {
		return nil, validationError("productId, buyerName, buyerEmail and transactionId are required")
	}

	pyq, err := s.findProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ProductID:        pyq.ID,
		BuyerName:        buyerName,
		BuyerEmail:       buyerEmail,
		Status:           models.OrderStatusPendingVerification,
		PaymentMethod:    models.PaymentMethodUPIManual,
		Amount:           helpers.ToMinorUnits(pyq.Price),
		UPITransactionID: &transactionID,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, persistenceError("create upi order", err)
	}
	return &order, nil
}

// CreateGatewayOrder opens a gateway order for the product and records it locally
// as PENDING. Credentials are read on every call so admin changes apply at once.
func (s *PurchaseService) CreateGatewayOrder(ctx context.Context, in GatewayOrderInput) (*GatewayOrder, error) {
	buyerName := strings.TrimSpace(in.BuyerName)
	buyerEmail := helpers.NormalizeEmail(in.BuyerEmail)
	if strings.TrimSpace(in.ProductID) == "" || buyerName == "" || buyerEmail == "" {
		return nil, validationError("productId, buyerName and buyerEmail are required")
	}

	pyq, err := s.findProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	creds, err := s.settings.GatewayCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if !creds.Usable() {
		return nil, fmt.Errorf("%w: gateway is disabled or not configured", ErrGatewayUnavailable)
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, s.opts.GatewayTimeout)
	defer cancel()

	amount := helpers.ToMinorUnits(pyq.Price)
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixNano())
	remote, err := s.opts.GatewayFactory(creds).CreateOrder(gatewayCtx, amount, payments.CurrencyINR, receipt)
	if err != nil {
		if errors.Is(err, ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	gatewayOrderID := remote.ID
	order := models.Order{
		ProductID:      pyq.ID,
		BuyerName:      buyerName,
		BuyerEmail:     buyerEmail,
		Status:         models.OrderStatusPending,
		PaymentMethod:  models.PaymentMethodGateway,
		Amount:         remote.Amount,
		GatewayOrderID: &gatewayOrderID,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, persistenceError("create gateway order", err)
	}

	return &GatewayOrder{
		OrderID:        order.ID,
		GatewayOrderID: remote.ID,
		Amount:         remote.Amount,
		Currency:       remote.Currency,
		KeyID:          creds.KeyID,
	}, nil
}

// VerifyGatewayCallback checks the checkout signature and, when it matches,
// moves the order from PENDING to PAID. A mismatch is not an error: Verified is
// false and the order stays PENDING. Repeated or concurrent calls with a valid
// signature all verify, but only one of them writes.
func (s *PurchaseService) VerifyGatewayCallback(ctx context.Context, in VerifyInput) (VerifyResult, error) {
	orderID := strings.TrimSpace(in.GatewayOrderID)
	paymentID := strings.TrimSpace(in.GatewayPaymentID)
	signature := strings.TrimSpace(in.Signature)
	if orderID == "" || paymentID == "" || signature == "" {
		return VerifyResult{}, validationError("gatewayOrderId, gatewayPaymentId and signature are required")
	}

	values, err := s.settings.Get(ctx, models.SettingRazorpayKeySecret)
	if err != nil {
		return VerifyResult{}, err
	}
	secret := strings.TrimSpace(values[models.SettingRazorpayKeySecret])
	if secret == "" {
		return VerifyResult{}, fmt.Errorf("%w: gateway secret is not configured", ErrGatewayUnavailable)
	}

	if !helpers.ValidGatewaySignature(secret, orderID, paymentID, signature) {
		return VerifyResult{}, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("gateway_order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":             models.OrderStatusPaid,
			"gateway_payment_id": paymentID,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return VerifyResult{}, persistenceError("mark order paid", res.Error)
	}
	if res.RowsAffected > 0 {
		return VerifyResult{Verified: true, Transitioned: true}, nil
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "gateway_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VerifyResult{}, notFoundError("gateway order %s", orderID)
		}
		return VerifyResult{}, persistenceError("load gateway order", err)
	}
	if order.Status.IsPaid() {
		return VerifyResult{Verified: true}, nil
	}
	return VerifyResult{}, fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
}

// ListCompletedProductIDs returns the products an email has a COMPLETED order
// for, in order of first purchase, without duplicates.
func (s *PurchaseService) ListCompletedProductIDs(ctx context.Context, email string) ([]string, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" {
		return nil, validationError("email is required")
	}

	var productIDs []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("buyer_email = ? AND status = ?", email, models.OrderStatusCompleted).
		Group("product_id").
		Order("MIN(created_at) ASC").
		Limit(s.opts.RestoreLimit).
		Pluck("product_id", &productIDs).Error
	if err != nil {
		return nil, persistenceError("list completed orders", err)
	}

	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.String())
	}
	return ids, nil
}

// HasEntitlement reports whether email has paid for productID, either through a
// verified gateway payment or an approved UPI transfer.
func (s *PurchaseService) HasEntitlement(ctx context.Context, email string, productID uuid.UUID) (bool, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("buyer_email = ? AND product_id = ? AND status IN ?", email, productID,
			[]models.OrderStatus{models.OrderStatusPaid, models.OrderStatusCompleted}).
		Count(&count).Error
	if err != nil {
		return false, persistenceError("check entitlement", err)
	}
	return count > 0, nil
}

// SetOrderStatus is the administrator's approve/reject decision. Approving
// (COMPLETED) also marks the order as admin verified.
func (s *PurchaseService) SetOrderStatus(ctx context.Context, principal models.Principal, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	if status != models.OrderStatusCompleted && status != models.OrderStatusFailed {
		return nil, validationError("status must be %s or %s", models.OrderStatusCompleted, models.OrderStatusFailed)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, notFoundError("order %q", orderID)
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("order %s", id)
		}
		return nil, persistenceError("load order", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.OrderStatusCompleted {
		updates["admin_verified"] = true
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, persistenceError("update order status", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %s changed concurrently", ErrInvalidTransition, order.ID)
	}

	if err := s.db.WithContext(ctx).First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, persistenceError("reload order", err)
	}
	return &order, nil
}

type OrderFilter struct {
	Status models.OrderStatus
	Page   int
	Limit  int
}

// OrderPage is one page of orders with the page and limit actually applied.
type OrderPage struct {
	Orders []models.Order
	Total  int64
	Page   int
	Limit  int
}

func (p OrderPage) TotalPages() int64 {
	return (p.Total + int64(p.Limit) - 1) / int64(p.Limit)
}

func (s *PurchaseService) ListOrders(ctx context.Context, principal models.Principal, filter OrderFilter) (*OrderPage, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	scoped := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Order{})
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, persistenceError("count orders", err)
	}

	var orders []models.Order
	err := scoped().Preload("Product").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, persistenceError("list orders", err)
	}
	return &OrderPage{Orders: orders, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ExpireStaleOrders fails PENDING and PENDING_VERIFICATION orders created before
// now-olderThan. It returns how many orders were failed.
func (s *PurchaseService) ExpireStaleOrders(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, validationError("expiry window must be positive")
	}

	cutoff := time.Now().Add(-olderThan)
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status IN ? AND created_at < ?",
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusPendingVerification}, cutoff).
		Updates(map[string]interface{}{
			"status":     models.OrderStatusFailed,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, persistenceError("expire stale orders", res.Error)
	}
	return res.RowsAffected, nil
}

// UPIPaymentQR renders the UPI deep link for paying a product's price as a PNG.
func (s *PurchaseService) UPIPaymentQR(ctx context.Context, productID string) ([]byte, error) {
	pyq, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	values, err := s.settings.Get(ctx, models.SettingUPIVPA, models.SettingUPIPayeeName)
	if err != nil {
		return nil, err
	}
	vpa := strings.TrimSpace(values[models.SettingUPIVPA])
	if vpa == "" {
		return nil, fmt.Errorf("%w: upi payee is not configured", ErrGatewayUnavailable)
	}
	payee := strings.TrimSpace(values[models.SettingUPIPayeeName])
	if payee == "" {
		payee = defaultUPIPayeeName
	}

	png, err := helpers.EncodeQRPNG(helpers.UPIPaymentURI(vpa, payee, pyq.Price, pyq.Title))
	if err != nil {
		return nil, fmt.Errorf("encode upi qr: %w", err)
	}
	return png, nil
}

// GatewayPublicConfig is what the checkout page needs to open the gateway widget.
func (s *PurchaseService) GatewayPublicConfig(ctx context.Context) (string, bool, error) {
	creds, err := s.settings.GatewayCredentials(ctx)
	if err != nil {
		return "", false, err
	}
	return creds.KeyID, creds.Usable(), nil
}
