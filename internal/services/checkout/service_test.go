package checkout

import (
	"context"
	"testing"

	"beezio/internal/models"
	"beezio/internal/repositories"
	"beezio/internal/services/catalog"
	"beezio/internal/services/payment"
	"beezio/internal/services/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProducts) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProducts) GetBySellerID(sellerID uint) ([]models.Product, error) {
	args := m.Called(sellerID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProducts) List(offset, limit int) ([]models.Product, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProducts) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProducts) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) CreateWithPayouts(ctx context.Context, order *models.Order, items []models.OrderItem, payouts []models.Payout) error {
	args := m.Called(ctx, order, items, payouts)
	return args.Error(0)
}

func (m *MockOrders) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrders) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrders) ListByBuyer(ctx context.Context, buyerID uint, offset, limit int) ([]models.Order, int64, error) {
	args := m.Called(ctx, buyerID, offset, limit)
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrders) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockProvider) GetPaymentIntent(ctx context.Context, intentID string) (*payment.Intent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func newTestService(t *testing.T, products *MockProducts, orders *MockOrders, provider payment.Provider) Service {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultFeeConfig())
	require.NoError(t, err)
	pricer := catalog.NewService(products, nil, engine)
	return NewService(products, orders, pricer, engine, provider, &NoopMetricsCollector{})
}

func uintPtr(v uint) *uint { return &v }

func TestSubmitOrder_LedgerAccountsForEveryCent(t *testing.T) {
	products := new(MockProducts)
	orders := new(MockOrders)
	provider := new(MockProvider)

	products.On("GetByID", uint(7)).Return(&models.Product{
		ID:              7,
		SellerID:        3,
		Title:           "Hand-thrown mug",
		AskPrice:        50,
		CommissionType:  "percent",
		CommissionValue: 10,
		Status:          models.ProductStatusActive,
		Currency:        "USD",
	}, nil)

	// Final price per unit for ask 50 at 10/15 is 64.68; two units.
	provider.On("CreatePaymentIntent", mock.Anything, int64(12936), "usd", mock.Anything).
		Return(&payment.Intent{ID: "pi_123", ClientSecret: "pi_123_secret", Status: "requires_payment_method"}, nil)

	var captured []models.Payout
	orders.On("CreateWithPayouts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(3).([]models.Payout)
		}).Return(nil)

	svc := newTestService(t, products, orders, provider)
	result, err := svc.SubmitOrder(context.Background(), 42,
		[]CartLine{{ProductID: 7, Quantity: 2}},
		Attribution{AffiliateID: uintPtr(9)},
	)
	require.NoError(t, err)
	assert.Equal(t, 129.36, result.Order.TotalAmount)
	assert.Equal(t, "pi_123", result.Order.PaymentIntentID)
	assert.Equal(t, "pi_123_secret", result.ClientSecret)
	assert.NotEmpty(t, result.Order.OrderNumber)

	byRole := map[string]models.Payout{}
	sum := 0.0
	for _, row := range captured {
		byRole[row.Role] = row
		sum += row.Amount
	}
	assert.Equal(t, 100.00, byRole[models.PayoutRoleSeller].Amount)
	assert.Equal(t, 10.00, byRole[models.PayoutRoleAffiliate].Amount)
	assert.Equal(t, 15.00, byRole[models.PayoutRoleBeezio].Amount)
	assert.Equal(t, 4.36, byRole[models.PayoutRoleStripe].Amount)
	assert.InDelta(t, 129.36, sum, 0.01)

	assert.Equal(t, uint(3), *byRole[models.PayoutRoleSeller].BeneficiaryID)
	assert.Equal(t, uint(9), *byRole[models.PayoutRoleAffiliate].BeneficiaryID)
	assert.Nil(t, byRole[models.PayoutRoleBeezio].BeneficiaryID)
	assert.Nil(t, byRole[models.PayoutRoleStripe].BeneficiaryID)
	_, hasReferral := byRole[models.PayoutRoleReferralAffiliate]
	assert.False(t, hasReferral)

	orders.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestSubmitOrder_ReferralOverrideCarvedFromPlatformRow(t *testing.T) {
	products := new(MockProducts)
	orders := new(MockOrders)
	provider := new(MockProvider)

	products.On("GetByID", uint(7)).Return(&models.Product{
		ID:              7,
		SellerID:        3,
		Title:           "Hand-thrown mug",
		AskPrice:        50,
		CommissionType:  "percent",
		CommissionValue: 10,
		Status:          models.ProductStatusActive,
	}, nil)
	provider.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&payment.Intent{ID: "pi_9", ClientSecret: "sec"}, nil)

	var captured []models.Payout
	orders.On("CreateWithPayouts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(3).([]models.Payout)
		}).Return(nil)

	svc := newTestService(t, products, orders, provider)
	_, err := svc.SubmitOrder(context.Background(), 42,
		[]CartLine{{ProductID: 7, Quantity: 1}},
		Attribution{AffiliateID: uintPtr(9), ReferralAffiliateID: uintPtr(4)},
	)
	require.NoError(t, err)

	byRole := map[string]models.Payout{}
	for _, row := range captured {
		byRole[row.Role] = row
	}
	// Platform gross is 7.50; the 5% override diverts 0.38 to the
	// recruiter and leaves 7.12 for the platform.
	assert.Equal(t, 0.38, byRole[models.PayoutRoleReferralAffiliate].Amount)
	assert.Equal(t, 7.12, byRole[models.PayoutRoleBeezio].Amount)
	assert.Equal(t, uint(4), *byRole[models.PayoutRoleReferralAffiliate].BeneficiaryID)
}

func TestQuoteCart_FundraiserShareOnlyWhenAttributed(t *testing.T) {
	products := new(MockProducts)
	orders := new(MockOrders)

	products.On("GetByID", uint(7)).Return(&models.Product{
		ID:                7,
		SellerID:          3,
		Title:             "Charity print",
		AskPrice:          50,
		CommissionType:    "percent",
		CommissionValue:   10,
		FundraiserPercent: 10,
		Status:            models.ProductStatusActive,
	}, nil)

	svc := newTestService(t, products, orders, nil)

	direct, err := svc.QuoteCart(context.Background(), []CartLine{{ProductID: 7, Quantity: 1}}, Attribution{})
	require.NoError(t, err)
	attributed, err := svc.QuoteCart(context.Background(), []CartLine{{ProductID: 7, Quantity: 1}},
		Attribution{FundraiserID: uintPtr(12)})
	require.NoError(t, err)

	assert.Equal(t, 0.0, direct.Lines[0].Breakdown.FundraiserAmount)
	assert.Equal(t, 5.00, attributed.Lines[0].Breakdown.FundraiserAmount)
	assert.Greater(t, attributed.Total, direct.Total)
}

func TestQuoteCart_Validation(t *testing.T) {
	tests := []struct {
		name      string
		lines     []CartLine
		setupMock func(*MockProducts)
		wantErr   error
	}{
		{
			name:    "empty cart",
			lines:   nil,
			wantErr: ErrEmptyCart,
		},
		{
			name:    "zero quantity",
			lines:   []CartLine{{ProductID: 7, Quantity: 0}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:  "unknown product",
			lines: []CartLine{{ProductID: 7, Quantity: 1}},
			setupMock: func(m *MockProducts) {
				m.On("GetByID", uint(7)).Return(nil, repositories.ErrProductNotFound)
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name:  "inactive product",
			lines: []CartLine{{ProductID: 7, Quantity: 1}},
			setupMock: func(m *MockProducts) {
				m.On("GetByID", uint(7)).Return(&models.Product{
					ID: 7, SellerID: 3, Title: "Retired", AskPrice: 10,
					Status: models.ProductStatusInactive,
				}, nil)
			},
			wantErr: ErrProductUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProducts)
			if tt.setupMock != nil {
				tt.setupMock(products)
			}
			svc := newTestService(t, products, new(MockOrders), nil)

			_, err := svc.QuoteCart(context.Background(), tt.lines, Attribution{})
			assert.ErrorIs(t, err, tt.wantErr)
			products.AssertExpectations(t)
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	order := &models.Order{
		ID:              5,
		OrderNumber:     "ord-5",
		Status:          models.OrderStatusPendingPayment,
		PaymentIntentID: "pi_5",
	}

	t.Run("settled intent marks order paid", func(t *testing.T) {
		orders := new(MockOrders)
		provider := new(MockProvider)
		orders.On("GetByOrderNumber", mock.Anything, "ord-5").Return(order, nil)
		provider.On("GetPaymentIntent", mock.Anything, "pi_5").
			Return(&payment.Intent{ID: "pi_5", Status: "succeeded"}, nil)
		orders.On("UpdateStatus", mock.Anything, uint(5), models.OrderStatusPaid).Return(nil)

		svc := newTestService(t, new(MockProducts), orders, provider)
		got, err := svc.ConfirmPayment(context.Background(), "ord-5")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPaid, got.Status)
		orders.AssertExpectations(t)
	})

	t.Run("unsettled intent is rejected", func(t *testing.T) {
		pending := *order
		pending.Status = models.OrderStatusPendingPayment
		orders := new(MockOrders)
		provider := new(MockProvider)
		orders.On("GetByOrderNumber", mock.Anything, "ord-5").Return(&pending, nil)
		provider.On("GetPaymentIntent", mock.Anything, "pi_5").
			Return(&payment.Intent{ID: "pi_5", Status: "requires_payment_method"}, nil)

		svc := newTestService(t, new(MockProducts), orders, provider)
		_, err := svc.ConfirmPayment(context.Background(), "ord-5")
		assert.ErrorIs(t, err, ErrPaymentNotSettled)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders := new(MockOrders)
		orders.On("GetByOrderNumber", mock.Anything, "missing").Return(nil, repositories.ErrOrderNotFound)

		svc := newTestService(t, new(MockProducts), orders, nil)
		_, err := svc.ConfirmPayment(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestSubmitOrder_ItemSnapshotFreezesRates(t *testing.T) {
	products := new(MockProducts)
	orders := new(MockOrders)

	products.On("GetByID", uint(7)).Return(&models.Product{
		ID:              7,
		SellerID:        3,
		Title:           "Sticker pack",
		AskPrice:        10,
		CommissionType:  "percent",
		CommissionValue: 20,
		Status:          models.ProductStatusActive,
	}, nil)

	var items []models.OrderItem
	orders.On("CreateWithPayouts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			items = args.Get(2).([]models.OrderItem)
		}).Return(nil)

	svc := newTestService(t, products, orders, nil)
	_, err := svc.SubmitOrder(context.Background(), 42, []CartLine{{ProductID: 7, Quantity: 3}}, Attribution{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 20.0, items[0].AffiliatePercentAtPurchase)
	assert.Equal(t, 15.0, items[0].PlatformPercentAtPurchase)
	assert.Equal(t, 10.0, items[0].SellerAskPricePerUnit)
	assert.NotNil(t, items[0].PayoutSnapshot["final_price"])
	assert.Equal(t, items[0].FinalSalePricePerUnit, items[0].PayoutSnapshot["final_price"])
}
