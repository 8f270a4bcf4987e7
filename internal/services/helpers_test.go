package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/payments"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func createPYQ(t *testing.T, db *gorm.DB, title string, price float64) *models.PYQ {
	t.Helper()
	pyq := &models.PYQ{Title: title, Year: 2023, Price: price}
	require.NoError(t, db.Create(pyq).Error)
	return pyq
}

func createOrder(t *testing.T, db *gorm.DB, productID uuid.UUID, email string, status models.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ProductID:     productID,
		BuyerName:     "Test Buyer",
		BuyerEmail:    email,
		Status:        status,
		PaymentMethod: models.PaymentMethodUPIManual,
		Amount:        900,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedSettings(t *testing.T, db *gorm.DB, values map[string]string) {
	t.Helper()
	require.NoError(t, NewSettingsService(db).Seed(context.Background(), values))
}

func enableGateway(t *testing.T, db *gorm.DB) {
	seedSettings(t, db, map[string]string{
		models.SettingRazorpayEnabled:   "true",
		models.SettingRazorpayKeyID:     "rzp_test_key",
		models.SettingRazorpayKeySecret: "test_secret",
	})
}

var (
	ownerPrincipal = models.Principal{ID: uuid.New(), Role: models.RoleOwner, Status: models.ProfileStatusActive}
	adminPrincipal = models.Principal{ID: uuid.New(), Role: models.RoleAdmin, Status: models.ProfileStatusActive}
	lockedAdmin    = models.Principal{ID: uuid.New(), Role: models.RoleAdmin, Status: models.ProfileStatusLocked}
)

type fakeGateway struct {
	mu        sync.Mutex
	order     *payments.RemoteOrder
	err       error
	block     bool
	calls     int
	amounts   []int64
	receipts  []string
	lastCreds payments.Credentials
}

func (g *fakeGateway) factory() payments.Factory {
	return func(creds payments.Credentials) payments.Gateway {
		g.mu.Lock()
		g.lastCreds = creds
		g.mu.Unlock()
		return g
	}
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payments.RemoteOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.amounts = append(g.amounts, amount)
	g.receipts = append(g.receipts, receipt)
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}
