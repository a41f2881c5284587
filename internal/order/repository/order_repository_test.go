package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floracrm/internal/domain"
	"floracrm/internal/errors"
	"floracrm/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func seedClient(t *testing.T, db *sql.DB, phone string) uint {
	result, err := db.Exec(`INSERT INTO clients (name, phone, client_type) VALUES ('Тест', ?, 'оба')`, phone)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func seedOrder(t *testing.T, db *sql.DB, clientID uint, status string, deliveryDate time.Time) uint {
	result, err := db.Exec(`
		INSERT INTO orders (client_id, recipient_id, status, delivery_date, delivery_address, total_price)
		VALUES (?, ?, ?, ?, 'ул. Абая 10', 0)
	`, clientID, clientID, status, deliveryDate)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func TestOrderRepository_FindByID_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	clientID := seedClient(t, db, "+77010000001")
	orderID := seedOrder(t, db, clientID, "new", time.Now().Add(24*time.Hour))

	order, err := repo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, clientID, order.ClientID)
	assert.Equal(t, domain.StatusNew, order.Status)
	assert.Equal(t, "ул. Абая 10", order.DeliveryAddress)
	assert.Nil(t, order.ExecutorID)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	order, err := repo.FindByID(context.Background(), uint(9999))
	assert.Error(t, err)
	assert.Nil(t, order)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestOrderRepository_List_FilterByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	clientID := seedClient(t, db, "+77010000002")
	seedOrder(t, db, clientID, "new", time.Now())
	paidID := seedOrder(t, db, clientID, "paid", time.Now())

	orders, err := repo.List(context.Background(), OrderFilter{Status: "paid", Limit: 100})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, paidID, orders[0].ID)
	assert.Equal(t, domain.StatusPaid, orders[0].Status)
}

func TestOrderRepository_List_FilterByClient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	clientA := seedClient(t, db, "+77010000003")
	clientB := seedClient(t, db, "+77010000004")
	seedOrder(t, db, clientA, "new", time.Now())
	seedOrder(t, db, clientB, "new", time.Now())

	orders, err := repo.List(context.Background(), OrderFilter{ClientID: &clientA, Limit: 100})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, clientA, orders[0].ClientID)
}

func TestOrderRepository_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	clientID := seedClient(t, db, "+77010000005")
	first := seedOrder(t, db, clientID, "new", time.Now())
	second := seedOrder(t, db, clientID, "new", time.Now())

	orders, err := repo.List(context.Background(), OrderFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].ID)
	assert.Equal(t, first, orders[1].ID)
}

func TestOrderRepository_List_DateRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	clientID := seedClient(t, db, "+77010000006")
	seedOrder(t, db, clientID, "new", time.Now().AddDate(0, 0, -10))
	inRange := seedOrder(t, db, clientID, "new", time.Now().AddDate(0, 0, 1))

	from := time.Now()
	orders, err := repo.List(context.Background(), OrderFilter{DateFrom: &from, Limit: 100})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, inRange, orders[0].ID)
}
