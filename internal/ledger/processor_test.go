package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/testutil"
)

func newTestProcessor(db *testutil.TestDB) *TransactionProcessor {
	return NewTransactionProcessor(db.Storage, NewBudgetMonitor(db.Storage))
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("expense drives balance negative and trips the advisory", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)

		txn, advisory, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			5000, model.TypeExpense, "lunch", now)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(5000), txn.Amount)

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(-5000), got.Balance)

		assert.Equal(t,
			"You have exceeded your budget limit of 0.00. Your current expenses are 50.00.",
			advisory)
	})

	t.Run("income then expense track the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 100000)
		account := db.SeedAccount(user.ID, "Bank", 10000)

		_, advisory, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			5000, model.TypeIncome, "salary", now)
		require.NoError(t, err)
		assert.Empty(t, advisory)

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(15000), got.Balance)

		_, advisory, err = processor.CreateTransaction(ctx, user.ID, account.ID, "",
			3000, model.TypeExpense, "groceries", now)
		require.NoError(t, err)
		assert.Empty(t, advisory)

		got, err = db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(12000), got.Balance)
	})

	t.Run("category attached when supplied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)
		category := db.SeedCategory(user.ID, "Food", nil)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, category.ID,
			500, model.TypeExpense, "", now)
		require.NoError(t, err)
		require.NotNil(t, txn.CategoryID)
		assert.Equal(t, category.ID, *txn.CategoryID)
	})

	t.Run("validation failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)

		_, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			0, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrValidation)

		_, _, err = processor.CreateTransaction(ctx, user.ID, account.ID, "",
			-100, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrValidation)

		_, _, err = processor.CreateTransaction(ctx, user.ID, account.ID, "",
			100, "transfer", "", now)
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("ownership checks", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		alice := db.SeedUser("Alice", "alice@example.com", 0)
		bob := db.SeedUser("Bob", "bob@example.com", 0)
		account := db.SeedAccount(alice.ID, "Cash", 0)
		category := db.SeedCategory(alice.ID, "Food", nil)
		bobAccount := db.SeedAccount(bob.ID, "Cash", 0)

		// Missing user.
		_, _, err := processor.CreateTransaction(ctx, uuid.NewString(), account.ID, "",
			100, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrNotFound)

		// Missing account.
		_, _, err = processor.CreateTransaction(ctx, alice.ID, uuid.NewString(), "",
			100, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrNotFound)

		// Someone else's account.
		_, _, err = processor.CreateTransaction(ctx, bob.ID, account.ID, "",
			100, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrForbidden)

		// Someone else's category on an owned account.
		_, _, err = processor.CreateTransaction(ctx, bob.ID, bobAccount.ID, category.ID,
			100, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrForbidden)

		// Missing category.
		_, _, err = processor.CreateTransaction(ctx, alice.ID, account.ID, uuid.NewString(),
			100, model.TypeExpense, "", now)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("failed create leaves balance untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 1000)

		_, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, uuid.NewString(),
			100, model.TypeExpense, "", now)
		require.Error(t, err)

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(1000), got.Balance)
	})
}

func TestCreateTransactionConcurrent(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	processor := newTestProcessor(db)

	user := db.SeedUser("Alice", "alice@example.com", 1000000)
	account := db.SeedAccount(user.ID, "Cash", 0)

	// Both concurrent writes must land; a lost update would leave 1000.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
				1000, model.TypeIncome, "", time.Now())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := db.Storage.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Cents(2000), got.Balance)
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	processor := newTestProcessor(db)

	user := db.SeedUser("Alice", "alice@example.com", 0)
	account := db.SeedAccount(user.ID, "Cash", 0)
	_, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
		1000, model.TypeIncome, "salary", time.Now())
	require.NoError(t, err)

	t.Run("owner sees transactions", func(t *testing.T) {
		got, err := processor.ListTransactions(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing user not found", func(t *testing.T) {
		_, err := processor.ListTransactions(ctx, uuid.NewString())
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("amount change shifts balance by the difference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 10000)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			3000, model.TypeExpense, "", now)
		require.NoError(t, err)

		newAmount := model.Cents(5000)
		_, err = processor.UpdateTransaction(ctx, user.ID, txn.ID, model.TransactionUpdate{Amount: &newAmount})
		require.NoError(t, err)

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(5000), got.Balance)
	})

	t.Run("type flip reverses the contribution", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			2000, model.TypeExpense, "", now)
		require.NoError(t, err)

		income := model.TypeIncome
		_, err = processor.UpdateTransaction(ctx, user.ID, txn.ID, model.TransactionUpdate{Type: &income})
		require.NoError(t, err)

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(2000), got.Balance)
	})

	t.Run("description change leaves balance alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			700, model.TypeExpense, "old", now)
		require.NoError(t, err)

		desc := "new"
		got, err := processor.UpdateTransaction(ctx, user.ID, txn.ID, model.TransactionUpdate{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "new", got.Description)

		acc, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(-700), acc.Balance)
	})

	t.Run("invalid amount rejected without balance change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			700, model.TypeExpense, "", now)
		require.NoError(t, err)

		bad := model.Cents(0)
		_, err = processor.UpdateTransaction(ctx, user.ID, txn.ID, model.TransactionUpdate{Amount: &bad})
		assert.ErrorIs(t, err, common.ErrValidation)

		acc, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(-700), acc.Balance)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		alice := db.SeedUser("Alice", "alice@example.com", 0)
		bob := db.SeedUser("Bob", "bob@example.com", 0)
		account := db.SeedAccount(alice.ID, "Cash", 0)

		txn, _, err := processor.CreateTransaction(ctx, alice.ID, account.ID, "",
			700, model.TypeExpense, "", now)
		require.NoError(t, err)

		desc := "stolen"
		_, err = processor.UpdateTransaction(ctx, bob.ID, txn.ID, model.TransactionUpdate{Description: &desc})
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("balance contribution reversed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 10000)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			4000, model.TypeExpense, "", now)
		require.NoError(t, err)

		require.NoError(t, processor.DeleteTransaction(ctx, user.ID, txn.ID))

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(10000), got.Balance)

		_, err = processor.GetTransaction(ctx, user.ID, txn.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("income reversal subtracts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		user := db.SeedUser("Alice", "alice@example.com", 0)
		account := db.SeedAccount(user.ID, "Cash", 0)

		txn, _, err := processor.CreateTransaction(ctx, user.ID, account.ID, "",
			2500, model.TypeIncome, "", now)
		require.NoError(t, err)

		require.NoError(t, processor.DeleteTransaction(ctx, user.ID, txn.ID))

		got, err := db.Storage.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(0), got.Balance)
	})

	t.Run("other user forbidden, missing id not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		processor := newTestProcessor(db)

		alice := db.SeedUser("Alice", "alice@example.com", 0)
		bob := db.SeedUser("Bob", "bob@example.com", 0)
		account := db.SeedAccount(alice.ID, "Cash", 0)

		txn, _, err := processor.CreateTransaction(ctx, alice.ID, account.ID, "",
			100, model.TypeExpense, "", now)
		require.NoError(t, err)

		assert.ErrorIs(t, processor.DeleteTransaction(ctx, bob.ID, txn.ID), common.ErrForbidden)
		assert.ErrorIs(t, processor.DeleteTransaction(ctx, alice.ID, uuid.NewString()), common.ErrNotFound)
	})
}
