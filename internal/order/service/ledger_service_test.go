package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	clientrepo "floracrm/internal/client/repository"
	"floracrm/internal/domain"
	"floracrm/internal/dto"
	apperrors "floracrm/internal/errors"
	"floracrm/internal/order/repository"
	productrepo "floracrm/internal/product/repository"
	"floracrm/internal/testutil"
)

func newTestLedgerService(db *sql.DB) *LedgerService {
	return NewLedgerService(
		db,
		repository.NewMySQLOrderRepository(db),
		repository.NewMySQLOrderItemRepository(db),
		repository.NewMySQLOrderHistoryRepository(db),
		productrepo.NewMySQLProductRepository(db),
		clientrepo.NewMySQLClientRepository(db),
		repository.NewMySQLUserRepository(db),
		zap.NewNop(),
		5*time.Second,
	)
}

func insertTestClient(t *testing.T, db *sql.DB, phone string) uint {
	result, err := db.Exec(`INSERT INTO clients (name, phone, client_type) VALUES ('Анна', ?, 'оба')`, phone)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func insertTestProduct(t *testing.T, db *sql.DB, price float64) uint {
	result, err := db.Exec(`INSERT INTO products (name, price, category) VALUES ('Букет роз', ?, 'букет')`, price)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func newTestOrder(clientID uint, recipientID uint) domain.Order {
	return domain.Order{
		ClientID:        clientID,
		RecipientID:     recipientID,
		Status:          domain.StatusNew,
		DeliveryDate:    time.Now().Add(48 * time.Hour),
		DeliveryAddress: "ул. Абая 10",
	}
}

func TestLedgerService_Create_WritesCreationHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234501")
	recipientID := insertTestClient(t, db, "+77011234502")

	created, err := svc.Create(ctx, newTestOrder(clientID, recipientID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, created.Status)
	assert.Equal(t, 0.0, created.TotalPrice)

	history, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.HistoryActionCreated, history[0].Action)
	assert.Nil(t, history[0].OldStatus)
	assert.Equal(t, domain.StatusNew, history[0].NewStatus)
	require.NotNil(t, history[0].Comment)
	assert.Equal(t, "Заказ создан", *history[0].Comment)
}

func TestLedgerService_Create_UnknownClient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)

	_, err := svc.Create(context.Background(), newTestOrder(9999, 9999))
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestLedgerService_UpdateStatus_RecordsTransition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234503")
	created, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)

	// Legacy alias resolves to the canonical code.
	order, entry, err := svc.UpdateStatus(ctx, created.ID, "ОПЛАЧЕН", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, order.Status)
	require.NotNil(t, entry)
	require.NotNil(t, entry.OldStatus)
	assert.Equal(t, domain.StatusNew, *entry.OldStatus)
	require.NotNil(t, entry.Comment)
	assert.Equal(t, "Статус изменен с новый на оплачен", *entry.Comment)

	history, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestLedgerService_UpdateStatus_SameStatusIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234504")
	created, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)

	order, entry, err := svc.UpdateStatus(ctx, created.ID, "новый", "")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Equal(t, domain.StatusNew, order.Status)

	history, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLedgerService_AddItem_RecomputesTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234505")
	productA := insertTestProduct(t, db, 18000)
	productB := insertTestProduct(t, db, 8000)

	created, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, created.ID, dto.AddItemRequest{ProductID: productA, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 18000.0, item.Price)

	_, err = svc.AddItem(ctx, created.ID, dto.AddItemRequest{ProductID: productB, Quantity: 1})
	require.NoError(t, err)

	order, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 26000.0, order.TotalPrice)
}

func TestLedgerService_AddItem_ExplicitPriceOverridesSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234506")
	productID := insertTestProduct(t, db, 18000)

	created, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)

	price := 15000.0
	item, err := svc.AddItem(ctx, created.ID, dto.AddItemRequest{ProductID: productID, Quantity: 2, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 15000.0, item.Price)

	order, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, order.TotalPrice)
}

func TestLedgerService_RemoveItem_RecomputesTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234507")
	productA := insertTestProduct(t, db, 18000)
	productB := insertTestProduct(t, db, 8000)

	created, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)

	itemA, err := svc.AddItem(ctx, created.ID, dto.AddItemRequest{ProductID: productA, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, created.ID, dto.AddItemRequest{ProductID: productB, Quantity: 1})
	require.NoError(t, err)

	err = svc.RemoveItem(ctx, created.ID, itemA.ID)
	require.NoError(t, err)

	order, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, order.TotalPrice)
}

func TestLedgerService_RemoveItem_WrongOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234508")
	productID := insertTestProduct(t, db, 18000)

	orderA, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)
	orderB, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, orderA.ID, dto.AddItemRequest{ProductID: productID, Quantity: 1})
	require.NoError(t, err)

	// Item belongs to orderA, removing it through orderB must fail.
	err = svc.RemoveItem(ctx, orderB.ID, item.ID)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	orderA2, err := svc.Get(ctx, orderA.ID)
	require.NoError(t, err)
	assert.Equal(t, 18000.0, orderA2.TotalPrice)
}

func TestLedgerService_Delete_CascadesItemsAndHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	svc := newTestLedgerService(db)
	ctx := context.Background()

	clientID := insertTestClient(t, db, "+77011234509")
	productID := insertTestProduct(t, db, 18000)

	created, err := svc.Create(ctx, newTestOrder(clientID, clientID))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, created.ID, dto.AddItemRequest{ProductID: productID, Quantity: 1})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	var itemCount, historyCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM order_items WHERE order_id = ?", created.ID).Scan(&itemCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM order_history WHERE order_id = ?", created.ID).Scan(&historyCount))
	assert.Equal(t, 0, itemCount)
	assert.Equal(t, 0, historyCount)
}
