package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping database tests, docker is not available: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=boardland",
			"POSTGRES_PASSWORD=boardland",
			"POSTGRES_DB=boardland_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Printf("skipping database tests, could not start postgres: %v", err)
		os.Exit(m.Run())
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=boardland password=boardland dbname=boardland_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			return pingErr
		}

		testDB = db

		return nil
	}); err != nil {
		log.Printf("skipping database tests, could not connect to postgres: %v", err)
		_ = pool.Purge(resource)
		os.Exit(m.Run())
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	_ = pool.Purge(resource)
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()

	if testDB == nil {
		t.Skip("database is not available")
	}
}

func cleanTables(t *testing.T) {
	t.Helper()

	require.NoError(t, testDB.Exec("DELETE FROM stock_items").Error)
	require.NoError(t, testDB.Exec("DELETE FROM sessions").Error)
	require.NoError(t, testDB.Exec("DELETE FROM users").Error)
}

func seedSession(t *testing.T) Session {
	t.Helper()

	session, err := NewSessionDAO(testDB).Insert(context.Background(), Session{
		Name:       "Spring Edition",
		Address:    "12 Rue des Jeux, Lyon",
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		FixedFee:   decimal.NewFromInt(2),
		PercentFee: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	return session
}

func seedStockItem(t *testing.T, sessionID uint, deposited, sold int, forSale bool) StockItem {
	t.Helper()

	item, err := NewStockDAO(testDB).Insert(context.Background(), StockItem{
		SessionID:         sessionID,
		SellerEmail:       "alice@example.com",
		Name:              "Azul",
		UnitPrice:         decimal.NewFromInt(20),
		QuantityDeposited: deposited,
		QuantitySold:      sold,
		IsForSale:         forSale,
		DepositFee:        decimal.NewFromInt(4),
		DepositFeePaid:    true,
	})
	require.NoError(t, err)

	return item
}

func TestUserDAO_Insert_DuplicateEmail(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	d := NewUserDAO(testDB)

	_, err := d.Insert(context.Background(), User{
		Email:    "alice@example.com",
		Password: "hash",
		Role:     "seller",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = d.Insert(context.Background(), User{
		Email:    "alice@example.com",
		Password: "hash",
		Role:     "seller",
		Name:     "Alice Again",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestStockDAO_RegisterSale(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	session := seedSession(t)
	item := seedStockItem(t, session.ID, 5, 0, true)

	d := NewStockDAO(testDB)

	updated, err := d.RegisterSale(context.Background(), item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.QuantitySold)

	_, err = d.RegisterSale(context.Background(), item.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestStockDAO_RegisterSale_NotForSale(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	session := seedSession(t)
	item := seedStockItem(t, session.ID, 5, 0, false)

	_, err := NewStockDAO(testDB).RegisterSale(context.Background(), item.ID, 1)

	assert.ErrorIs(t, err, ErrStockItemNotForSale)
}

func TestStockDAO_Withdraw(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	session := seedSession(t)
	d := NewStockDAO(testDB)

	t.Run("partial withdrawal shrinks the deposit", func(t *testing.T) {
		item := seedStockItem(t, session.ID, 5, 0, true)

		updated, removed, err := d.Withdraw(context.Background(), item.ID, "alice@example.com", 2)

		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, 3, updated.QuantityDeposited)
	})

	t.Run("full withdrawal of a never-sold item deletes the row", func(t *testing.T) {
		item := seedStockItem(t, session.ID, 5, 0, true)

		_, removed, err := d.Withdraw(context.Background(), item.ID, "alice@example.com", 5)

		require.NoError(t, err)
		assert.True(t, removed)

		_, err = d.FindByID(context.Background(), item.ID)
		assert.ErrorIs(t, err, ErrStockItemNotFound)
	})

	t.Run("full withdrawal keeps sold rows for the payout history", func(t *testing.T) {
		item := seedStockItem(t, session.ID, 5, 2, true)

		updated, removed, err := d.Withdraw(context.Background(), item.ID, "alice@example.com", 10)

		require.NoError(t, err)
		assert.False(t, removed, "the shrunken row still exists")
		assert.Equal(t, 2, updated.QuantityDeposited)
		assert.Equal(t, 2, updated.QuantitySold)
		assert.False(t, updated.IsForSale)
	})

	t.Run("other sellers cannot withdraw the item", func(t *testing.T) {
		item := seedStockItem(t, session.ID, 5, 0, true)

		_, _, err := d.Withdraw(context.Background(), item.ID, "bob@example.com", 1)

		assert.ErrorIs(t, err, ErrNotItemOwner)
	})
}

func TestStockDAO_ToggleForSale_ZeroRemaining(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	session := seedSession(t)
	item := seedStockItem(t, session.ID, 2, 2, false)

	_, err := NewStockDAO(testDB).ToggleForSale(context.Background(), item.ID)

	assert.ErrorIs(t, err, ErrZeroRemaining)
}

func TestStockDAO_PaySeller(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	session := seedSession(t)
	d := NewStockDAO(testDB)

	seedStockItem(t, session.ID, 5, 3, true)
	seedStockItem(t, session.ID, 2, 0, true)

	paid, err := d.PaySeller(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.False(t, paid[0].SellerPaid, "returned rows reflect the pre-payout state")

	_, err = d.PaySeller(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNoUnpaidSales)
}

func TestSessionDAO_BulkUpdate_AllOrNothing(t *testing.T) {
	requireDB(t)
	cleanTables(t)

	session := seedSession(t)

	d := NewSessionDAO(testDB)

	modified := session
	modified.Name = "Renamed Edition"
	missing := session
	missing.ID = session.ID + 100

	err := d.BulkUpdate(context.Background(), []Session{modified, missing})
	require.ErrorIs(t, err, ErrSessionNotFound)

	// The first row must have been rolled back with the failing one.
	reloaded, err := d.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Edition", reloaded.Name)
}
