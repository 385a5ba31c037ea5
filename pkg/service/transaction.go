package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lms-backend/pkg/models"
	"lms-backend/pkg/repository"
)

const dateLayout = "2006-01-02"

// TransactionService owns the borrow/return lifecycle. Books and users are
// only read here; their rows are mutated as a side effect of loan state
// changes, always inside the same database transaction.
type TransactionService struct {
	db    *gorm.DB
	books repository.BookRepository
	users repository.UserRepository
	txns  repository.TransactionRepository
	log   *zap.Logger
}

func NewTransactionService(db *gorm.DB, log *zap.Logger) *TransactionService {
	return &TransactionService{
		db:    db,
		books: repository.NewBookRepository(db),
		users: repository.NewUserRepository(db),
		txns:  repository.NewTransactionRepository(db),
		log:   log,
	}
}

// Borrow creates an active loan: a new transaction due in 14 days plus a
// decrement of the book's available count, committed as one unit.
func (s *TransactionService) Borrow(bookID uint, borrowerID string) (*models.BookTransaction, error) {
	if bookID == 0 || borrowerID == "" {
		return nil, fmt.Errorf("%w: missing required fields: bookId, borrowerId", ErrInvalidRequest)
	}

	var created *models.BookTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		books := s.books.WithTx(tx)
		users := s.users.WithTx(tx)
		txns := s.txns.WithTx(tx)

		book, err := books.FindByIDForUpdate(bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if book.Available <= 0 {
			return ErrNoCopiesAvailable
		}

		// Locking the borrower row serializes concurrent borrows by the
		// same user, so the active-loan check below cannot race.
		if _, err := users.FindByIDForUpdate(borrowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		active, err := txns.HasActiveLoan(borrowerID)
		if err != nil {
			return err
		}
		if active {
			return ErrActiveLoanExists
		}

		now := time.Now().UTC()
		txn := &models.BookTransaction{
			BookID:     book.ID,
			BorrowerID: borrowerID,
			BorrowedAt: now,
			DueDate:    now.Add(models.LoanPeriod),
			Status:     models.StatusBorrowed,
		}
		if err := txns.Create(txn); err != nil {
			return err
		}
		ok, err := books.DecrementAvailable(book.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoCopiesAvailable
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("book borrowed",
		zap.Uint("transactionId", created.ID),
		zap.Uint("bookId", bookID),
		zap.String("borrowerId", borrowerID))
	return created, nil
}

// Return closes an active loan and puts the copy back on the shelf.
func (s *TransactionService) Return(transactionID uint) (*models.BookTransaction, error) {
	if transactionID == 0 {
		return nil, fmt.Errorf("%w: transactionId is required", ErrInvalidRequest)
	}

	var updated *models.BookTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		books := s.books.WithTx(tx)
		txns := s.txns.WithTx(tx)

		txn, err := txns.FindByIDForUpdate(transactionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if txn.Status == models.StatusReturned {
			return ErrAlreadyReturned
		}

		now := time.Now().UTC()
		txn.Status = models.StatusReturned
		txn.ReturnedAt = &now
		if err := txns.Save(txn); err != nil {
			return err
		}
		if err := books.IncrementAvailable(txn.BookID); err != nil {
			return err
		}
		updated = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("book returned",
		zap.Uint("transactionId", updated.ID),
		zap.Uint("bookId", updated.BookID))
	return updated, nil
}

// List returns all transactions newest first, after sweeping overdue ones.
func (s *TransactionService) List() ([]models.BookTransaction, error) {
	if err := s.sweep(); err != nil {
		return nil, err
	}
	return s.txns.ListAll()
}

// ListByDate returns transactions borrowed on the given calendar day.
func (s *TransactionService) ListByDate(date string) ([]models.BookTransaction, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date query parameter is required (YYYY-MM-DD)", ErrInvalidRequest)
	}
	start, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidRequest)
	}
	if err := s.sweep(); err != nil {
		return nil, err
	}
	return s.txns.ListBorrowedBetween(start, start.AddDate(0, 0, 1))
}

// ListByRange returns transactions borrowed within [startDate, endDate],
// end-inclusive by day.
func (s *TransactionService) ListByRange(startDate, endDate string) ([]models.BookTransaction, error) {
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: both startDate and endDate are required (YYYY-MM-DD)", ErrInvalidRequest)
	}
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidRequest)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidRequest)
	}
	if err := s.sweep(); err != nil {
		return nil, err
	}
	return s.txns.ListBorrowedBetween(start, end.AddDate(0, 0, 1))
}

func (s *TransactionService) sweep() error {
	swept, err := s.txns.SweepOverdue(time.Now().UTC())
	if err != nil {
		return err
	}
	if swept > 0 {
		s.log.Info("marked transactions overdue", zap.Int64("count", swept))
	}
	return nil
}
