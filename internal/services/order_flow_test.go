package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlx.DB) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).UpsertGoogle(context.Background(), domain.GoogleProfile{
		Subject: "google-sub-1", Name: "Asha", Email: "asha@example.com", Picture: "https://pic.example/a.png",
	})
	require.NoError(t, err)
	return u
}

type failingGateway struct{ calls int }

func (f *failingGateway) Charge(context.Context, services.Charge) (services.PaymentResult, error) {
	f.calls++
	return services.PaymentResult{}, errors.New("gateway unreachable")
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int64{
		"Rs 1,000":    1000,
		"Rs 500":      500,
		"Rs 1,00,000": 100000,
		"Rs 12,345":   12345,
		"Rs. 799":     799,
		"Rs 1,299.50": 1299,
		"250":         250,
	}
	for in, want := range cases {
		got, err := services.ParsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := services.ParsePrice("free")
	assert.Error(t, err)
	_, err = services.ParsePrice("")
	assert.Error(t, err)
}

func TestCheckoutComputesTotalAndRecordsOrder(t *testing.T) {
	db := memdb(t)
	u := seedUser(t, db)
	orders := repos.NewOrderRepo(db)
	svc := services.NewCheckoutService(orders, services.MockGateway{})

	rc, err := svc.Checkout(context.Background(), services.CheckoutRequest{
		UserID: u.ID,
		Cart: []services.CartLine{
			{Title: "Air Fryer", Price: "Rs 1,000", Quantity: 2},
			{Title: "Kettle", Price: "Rs 500", Quantity: 1},
		},
		PaymentMethod:  "card",
		PaymentDetails: map[string]any{"last4": "4242"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), rc.Total)
	assert.NotZero(t, rc.OrderID)
	assert.Regexp(t, `^txn_[0-9a-f]{9}$`, rc.TransactionID)

	o, err := orders.Get(context.Background(), rc.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), o.TotalAmount)
	assert.Equal(t, domain.PaymentCompleted, o.PaymentStatus)
	assert.Equal(t, "card", o.PaymentMethod)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Air Fryer", o.Items[0].ProductTitle)
	assert.Equal(t, int64(1000), o.Items[0].ProductPrice)
	assert.Equal(t, 2, o.Items[0].Quantity)

	history, err := svc.History(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rc.OrderID, history[0].ID)
}

func TestCheckoutDeclinedCreatesNoOrder(t *testing.T) {
	db := memdb(t)
	u := seedUser(t, db)
	orders := repos.NewOrderRepo(db)
	svc := services.NewCheckoutService(orders, services.MockGateway{Decline: true, DeclineMessage: "Card declined"})

	_, err := svc.Checkout(context.Background(), services.CheckoutRequest{
		UserID: u.ID,
		Cart:   []services.CartLine{{Title: "Kettle", Price: "Rs 500", Quantity: 1}},
	})
	var declined *services.PaymentDeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "Card declined", declined.Message)

	n, err := orders.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCheckoutRejectsBadCart(t *testing.T) {
	db := memdb(t)
	gw := &failingGateway{}
	svc := services.NewCheckoutService(repos.NewOrderRepo(db), gw)

	_, err := svc.Checkout(context.Background(), services.CheckoutRequest{UserID: 1})
	assert.ErrorIs(t, err, services.ErrInvalidCart)

	_, err = svc.Checkout(context.Background(), services.CheckoutRequest{
		UserID: 1,
		Cart:   []services.CartLine{{Title: "Kettle", Price: "Rs 500", Quantity: 0}},
	})
	assert.ErrorIs(t, err, services.ErrInvalidCart)
	assert.Zero(t, gw.calls)
}

func TestCheckoutUnparseablePriceIsError(t *testing.T) {
	db := memdb(t)
	gw := &failingGateway{}
	svc := services.NewCheckoutService(repos.NewOrderRepo(db), gw)

	_, err := svc.Checkout(context.Background(), services.CheckoutRequest{
		UserID: 1,
		Cart:   []services.CartLine{{Title: "Mystery", Price: "call us", Quantity: 1}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCart)
	assert.Zero(t, gw.calls)
}

func TestCreateWithItemsIsAtomic(t *testing.T) {
	db := memdb(t)
	u := seedUser(t, db)
	orders := repos.NewOrderRepo(db)

	// quantity 0 violates the CHECK on the second item
	_, err := orders.CreateWithItems(context.Background(), domain.Order{
		UserID: u.ID, TotalAmount: 100, PaymentStatus: domain.PaymentCompleted,
	}, []domain.OrderItem{
		{ProductTitle: "ok", ProductPrice: 100, Quantity: 1},
		{ProductTitle: "bad", ProductPrice: 100, Quantity: 0},
	})
	require.Error(t, err)

	n, err := orders.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMockGatewayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := services.MockGateway{Delay: time.Second}.Charge(ctx, services.Charge{Amount: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBreakerGatewayOpensAfterFailures(t *testing.T) {
	gw := &failingGateway{}
	b := services.NewBreakerGateway(gw, time.Second)
	for i := 0; i < 5; i++ {
		_, err := b.Charge(context.Background(), services.Charge{Amount: 10})
		require.Error(t, err)
	}
	_, err := b.Charge(context.Background(), services.Charge{Amount: 10})
	require.Error(t, err)
	assert.Equal(t, 5, gw.calls)
}

func TestBreakerGatewayPassesDeclines(t *testing.T) {
	b := services.NewBreakerGateway(services.MockGateway{Decline: true}, time.Second)
	res, err := b.Charge(context.Background(), services.Charge{Amount: 10})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Payment declined", res.Message)
}
