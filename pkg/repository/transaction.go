package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"lms-backend/pkg/models"
)

type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository

	Create(txn *models.BookTransaction) error
	FindByID(id uint) (*models.BookTransaction, error)
	FindByIDForUpdate(id uint) (*models.BookTransaction, error)
	Save(txn *models.BookTransaction) error

	// HasActiveLoan reports whether the borrower holds a loan in a
	// borrowed or overdue state.
	HasActiveLoan(borrowerID string) (bool, error)
	CountByBook(bookID uint) (int64, error)

	// SweepOverdue flips every still-borrowed transaction whose due date has
	// passed to overdue. Bulk conditional update; idempotent.
	SweepOverdue(now time.Time) (int64, error)

	ListAll() ([]models.BookTransaction, error)
	// ListBorrowedBetween returns transactions with borrowed_at in
	// [start, end), newest first.
	ListBorrowedBetween(start, end time.Time) ([]models.BookTransaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Create(txn *models.BookTransaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		return errors.Wrap(err, "create transaction")
	}
	return nil
}

func (r *transactionRepository) FindByID(id uint) (*models.BookTransaction, error) {
	var txn models.BookTransaction
	if err := r.db.First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindByIDForUpdate(id uint) (*models.BookTransaction, error) {
	var txn models.BookTransaction
	if err := lockForUpdate(r.db).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) Save(txn *models.BookTransaction) error {
	if err := r.db.Save(txn).Error; err != nil {
		return errors.Wrap(err, "save transaction")
	}
	return nil
}

func (r *transactionRepository) HasActiveLoan(borrowerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BookTransaction{}).
		Where("borrower_id = ? AND status IN ?", borrowerID, models.ActiveStatuses).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count active loans")
	}
	return count > 0, nil
}

func (r *transactionRepository) CountByBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.BookTransaction{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count transactions for book")
	}
	return count, nil
}

func (r *transactionRepository) SweepOverdue(now time.Time) (int64, error) {
	res := r.db.Model(&models.BookTransaction{}).
		Where("status = ? AND due_date < ?", models.StatusBorrowed, now).
		Update("status", models.StatusOverdue)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "sweep overdue")
	}
	return res.RowsAffected, nil
}

func (r *transactionRepository) ListAll() ([]models.BookTransaction, error) {
	var txns []models.BookTransaction
	if err := r.db.Order("borrowed_at DESC").Find(&txns).Error; err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	return txns, nil
}

func (r *transactionRepository) ListBorrowedBetween(start, end time.Time) ([]models.BookTransaction, error) {
	var txns []models.BookTransaction
	err := r.db.
		Where("borrowed_at >= ? AND borrowed_at < ?", start, end).
		Order("borrowed_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, errors.Wrap(err, "list transactions by date")
	}
	return txns, nil
}
