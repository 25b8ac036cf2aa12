package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodiehub/models"
	"foodiehub/store"
)

var (
	alice = models.Identity{UserID: "user-alice", Role: models.RoleCustomer}
	bob   = models.Identity{UserID: "user-bob", Role: models.RoleCustomer}
	admin = models.Identity{UserID: "user-admin", Role: models.RoleAdmin}
)

func newTestOrderService(t *testing.T) (*OrderService, *store.MemoryOrders) {
	t.Helper()
	menu := store.NewMemoryMenuItems()
	ctx := context.Background()
	require.NoError(t, menu.Insert(ctx, &models.MenuItem{ItemID: "item-burger", Name: "Burger", Price: 150, Category: "mains"}))
	require.NoError(t, menu.Insert(ctx, &models.MenuItem{ItemID: "item-fries", Name: "Fries", Price: 80, Category: "sides"}))
	require.NoError(t, menu.Insert(ctx, &models.MenuItem{ItemID: "item-cake", Name: "Chocolate Truffle Cake", Price: 550, Category: "cakes"}))

	orders := store.NewMemoryOrders()
	return NewOrderService(orders, NewCatalogService(menu), nil), orders
}

func burgerAndFries() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		CustomerName:  "Alice",
		Phone:         "1234567890",
		Address:       "123 Test St, Test City",
		PaymentMethod: "phonepe",
		Items: []models.OrderLineRequest{
			{MenuItem: "item-burger", Quantity: 2},
			{MenuItem: "item-fries", Quantity: 1},
		},
	}
}

func TestCreateRecomputesTotalFromCatalog(t *testing.T) {
	svc, _ := newTestOrderService(t)

	req := burgerAndFries()
	// client-declared prices and total must be ignored
	req.Items[0].Price = 1
	req.Items[1].Price = 1
	req.TotalAmount = 3

	order, err := svc.Create(context.Background(), alice, req)
	require.NoError(t, err)

	assert.Equal(t, 380, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, alice.UserID, order.UserID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 150, order.Items[0].Price)
	assert.Equal(t, "Burger", order.Items[0].Name)
	assert.Equal(t, 80, order.Items[1].Price)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, models.StatusPending, order.StatusHistory[0].Status)
	assert.Equal(t, alice.UserID, order.StatusHistory[0].ChangedBy)
}

func TestCreateUnknownItemWritesNothing(t *testing.T) {
	svc, orders := newTestOrderService(t)

	req := burgerAndFries()
	req.Items = append(req.Items, models.OrderLineRequest{MenuItem: "item-ghost", Quantity: 1})

	_, err := svc.Create(context.Background(), alice, req)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "item-ghost")

	all, err := orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "failed create must not persist a partial order")
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	req := burgerAndFries()
	req.Items = nil
	_, err := svc.Create(ctx, alice, req)
	assert.ErrorIs(t, err, models.ErrValidation)

	req = burgerAndFries()
	req.Items[0].Quantity = 0
	_, err = svc.Create(ctx, alice, req)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAdvanceHappyPath(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)

	for _, target := range []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	} {
		order, err = svc.Advance(ctx, admin, order.OrderID, target)
		require.NoError(t, err, "advance to %s", target)
		assert.Equal(t, target, order.Status)
	}

	require.Len(t, order.StatusHistory, 5)
	assert.Equal(t, models.StatusDelivered, order.StatusHistory[4].Status)
	assert.Equal(t, admin.UserID, order.StatusHistory[4].ChangedBy)
}

func TestAdvanceSkippingStatesIsIllegal(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)

	_, err = svc.Advance(ctx, admin, order.OrderID, models.StatusDelivered)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.Advance(ctx, admin, order.OrderID, models.StatusPreparing)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestAdvanceForwardIsAdminOnly(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)

	_, err = svc.Advance(ctx, alice, order.OrderID, models.StatusConfirmed)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Advance(ctx, alice, order.OrderID, models.StatusPreparing)
	assert.ErrorIs(t, err, models.ErrForbidden, "authorization must be checked before transition legality")
}

func TestAdvanceUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService(t)

	_, err := svc.Advance(context.Background(), admin, "order-missing", models.StatusConfirmed)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancellationWindow(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	// owner may cancel while pending
	order, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)
	cancelled, err := svc.Advance(ctx, alice, order.OrderID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// and while confirmed
	order, err = svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)
	_, err = svc.Advance(ctx, admin, order.OrderID, models.StatusConfirmed)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, alice, order.OrderID, models.StatusCancelled)
	require.NoError(t, err)

	// but not once preparing
	order, err = svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)
	for _, target := range []models.OrderStatus{models.StatusConfirmed, models.StatusPreparing} {
		_, err = svc.Advance(ctx, admin, order.OrderID, target)
		require.NoError(t, err)
	}
	_, err = svc.Advance(ctx, alice, order.OrderID, models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.Advance(ctx, admin, order.OrderID, models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// another customer may never cancel someone else's order
	order, err = svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)
	_, err = svc.Advance(ctx, bob, order.OrderID, models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestConcurrentAdvanceOneWinner(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Advance(ctx, admin, order.OrderID, models.StatusConfirmed)
		}(i)
	}
	wg.Wait()

	winners, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		default:
			require.ErrorIs(t, err, models.ErrConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, conflicts)

	final, err := svc.Get(ctx, admin, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, final.Status)
	confirmedEntries := 0
	for _, change := range final.StatusHistory {
		if change.Status == models.StatusConfirmed {
			confirmedEntries++
		}
	}
	assert.Equal(t, 1, confirmedEntries, "a lost race must not append a duplicate history entry")
}

func TestListMineScopedToOwner(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	aliceOrder, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)
	bobReq := burgerAndFries()
	bobReq.CustomerName = "Bob"
	_, err = svc.Create(ctx, bob, bobReq)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, aliceOrder.OrderID, mine[0].OrderID)
	for _, o := range mine {
		assert.Equal(t, alice.UserID, o.UserID)
	}
}

func TestListAllAdminOnlyAndOrdered(t *testing.T) {
	svc, orders := newTestOrderService(t)
	ctx := context.Background()

	_, err := svc.ListAll(ctx, alice)
	assert.ErrorIs(t, err, models.ErrForbidden)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Order{
		{OrderID: "order-a", UserID: alice.UserID, CreatedAt: base},
		{OrderID: "order-c", UserID: alice.UserID, CreatedAt: base.Add(time.Minute)},
		// same timestamp as order-c: tie broken by id descending
		{OrderID: "order-b", UserID: alice.UserID, CreatedAt: base.Add(time.Minute)},
	}
	for i := range seed {
		require.NoError(t, orders.Insert(ctx, &seed[i]))
	}

	all, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "order-c", all[0].OrderID)
	assert.Equal(t, "order-b", all[1].OrderID)
	assert.Equal(t, "order-a", all[2].OrderID)
}

func TestAliceScenario(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, alice, burgerAndFries())
	require.NoError(t, err)
	assert.Equal(t, 380, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)

	_, err = svc.Advance(ctx, admin, order.OrderID, models.StatusConfirmed)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, admin, order.OrderID, models.StatusPreparing)
	require.NoError(t, err)

	_, err = svc.Advance(ctx, alice, order.OrderID, models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)
}
