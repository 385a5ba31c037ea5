package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms-backend/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Book{}, &models.User{}, &models.BookTransaction{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{
		ID:        uuid.New().String(),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, title string, available int) models.Book {
	book := models.Book{Title: title, Author: "Author", Available: available}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func seedTransaction(t *testing.T, db *gorm.DB, book models.Book, user models.User, status models.Status, borrowedAt, dueDate time.Time) models.BookTransaction {
	txn := models.BookTransaction{
		BookID:     book.ID,
		BorrowerID: user.ID,
		BorrowedAt: borrowedAt,
		DueDate:    dueDate,
		Status:     status,
	}
	require.NoError(t, db.Create(&txn).Error)
	return txn
}

func TestSweepOverdue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	book := seedBook(t, db, "Sweep Book", 3)
	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	u3 := seedUser(t, db, "u3@example.com")

	now := time.Now().UTC()
	pastDue := seedTransaction(t, db, book, u1, models.StatusBorrowed, now.Add(-20*24*time.Hour), now.Add(-6*24*time.Hour))
	current := seedTransaction(t, db, book, u2, models.StatusBorrowed, now, now.Add(models.LoanPeriod))
	// A returned loan keeps its state no matter how old the due date is.
	returnedAt := now.Add(-time.Hour)
	returned := models.BookTransaction{
		BookID:     book.ID,
		BorrowerID: u3.ID,
		BorrowedAt: now.Add(-30 * 24 * time.Hour),
		DueDate:    now.Add(-16 * 24 * time.Hour),
		ReturnedAt: &returnedAt,
		Status:     models.StatusReturned,
	}
	require.NoError(t, db.Create(&returned).Error)

	swept, err := repo.SweepOverdue(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	var got models.BookTransaction
	require.NoError(t, db.First(&got, pastDue.ID).Error)
	assert.Equal(t, models.StatusOverdue, got.Status)
	got = models.BookTransaction{}
	require.NoError(t, db.First(&got, current.ID).Error)
	assert.Equal(t, models.StatusBorrowed, got.Status)
	got = models.BookTransaction{}
	require.NoError(t, db.First(&got, returned.ID).Error)
	assert.Equal(t, models.StatusReturned, got.Status)

	// Re-running with nothing left to flip is a no-op.
	swept, err = repo.SweepOverdue(now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), swept)
}

func TestHasActiveLoan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	book := seedBook(t, db, "Active Book", 2)
	user := seedUser(t, db, "active@example.com")

	active, err := repo.HasActiveLoan(user.ID)
	require.NoError(t, err)
	assert.False(t, active)

	now := time.Now().UTC()
	txn := seedTransaction(t, db, book, user, models.StatusBorrowed, now, now.Add(models.LoanPeriod))

	active, err = repo.HasActiveLoan(user.ID)
	require.NoError(t, err)
	assert.True(t, active)

	// Overdue still counts as active.
	require.NoError(t, db.Model(&models.BookTransaction{}).Where("id = ?", txn.ID).
		Update("status", models.StatusOverdue).Error)
	active, err = repo.HasActiveLoan(user.ID)
	require.NoError(t, err)
	assert.True(t, active)

	returnedAt := now
	require.NoError(t, db.Model(&models.BookTransaction{}).Where("id = ?", txn.ID).
		Updates(map[string]interface{}{"status": models.StatusReturned, "returned_at": returnedAt}).Error)
	active, err = repo.HasActiveLoan(user.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestListBorrowedBetween(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	book := seedBook(t, db, "Range Book", 5)
	user := seedUser(t, db, "range@example.com")

	day := func(s string) time.Time {
		d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		require.NoError(t, err)
		return d
	}
	inside := seedTransaction(t, db, book, user, models.StatusReturned,
		day("2026-01-15").Add(10*time.Hour), day("2026-01-29"))
	later := seedTransaction(t, db, book, user, models.StatusReturned,
		day("2026-01-15").Add(15*time.Hour), day("2026-01-29"))
	seedTransaction(t, db, book, user, models.StatusReturned,
		day("2026-01-16"), day("2026-01-30"))

	txns, err := repo.ListBorrowedBetween(day("2026-01-15"), day("2026-01-16"))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	// Newest first.
	assert.Equal(t, later.ID, txns[0].ID)
	assert.Equal(t, inside.ID, txns[1].ID)

	txns, err = repo.ListBorrowedBetween(day("2026-01-01"), day("2026-01-17"))
	require.NoError(t, err)
	assert.Len(t, txns, 3)

	txns, err = repo.ListBorrowedBetween(day("2026-02-01"), day("2026-02-02"))
	require.NoError(t, err)
	assert.Len(t, txns, 0)
}

func TestDecrementAvailableGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	book := seedBook(t, db, "Guard Book", 1)

	ok, err := repo.DecrementAvailable(book.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second decrement finds no available copies and changes nothing.
	ok, err = repo.DecrementAvailable(book.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	var got models.Book
	require.NoError(t, db.First(&got, book.ID).Error)
	assert.Equal(t, 0, got.Available)

	require.NoError(t, repo.IncrementAvailable(book.ID))
	require.NoError(t, db.First(&got, book.ID).Error)
	assert.Equal(t, 1, got.Available)
}
