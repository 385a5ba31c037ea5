package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lms-backend/pkg/models"
	"lms-backend/pkg/repository"
)

// UpdateBookInput carries a partial edit; nil fields are left unchanged.
type UpdateBookInput struct {
	Title     *string
	Author    *string
	Available *int
}

type BookService struct {
	db    *gorm.DB
	books repository.BookRepository
	txns  repository.TransactionRepository
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{
		db:    db,
		books: repository.NewBookRepository(db),
		txns:  repository.NewTransactionRepository(db),
	}
}

func (s *BookService) List() ([]models.Book, error) {
	return s.books.FindAll()
}

func (s *BookService) Get(id uint) (*models.Book, error) {
	book, err := s.books.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) Create(title, author string, available int) (*models.Book, error) {
	if title == "" || author == "" {
		return nil, fmt.Errorf("%w: title and author are required", ErrInvalidRequest)
	}
	if available < 0 {
		return nil, fmt.Errorf("%w: available must not be negative", ErrInvalidRequest)
	}
	book := &models.Book{Title: title, Author: author, Available: available}
	if err := s.books.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Update(id uint, in UpdateBookInput) (*models.Book, error) {
	book, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidRequest)
		}
		book.Title = *in.Title
	}
	if in.Author != nil {
		if *in.Author == "" {
			return nil, fmt.Errorf("%w: author must not be empty", ErrInvalidRequest)
		}
		book.Author = *in.Author
	}
	if in.Available != nil {
		if *in.Available < 0 {
			return nil, fmt.Errorf("%w: available must not be negative", ErrInvalidRequest)
		}
		book.Available = *in.Available
	}
	if err := s.books.Save(book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book unless transactions reference it. The schema also
// enforces this with an ON DELETE RESTRICT constraint; the explicit check
// keeps the behavior identical on engines that skip foreign keys.
func (s *BookService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		books := s.books.WithTx(tx)
		txns := s.txns.WithTx(tx)

		if _, err := books.FindByIDForUpdate(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		count, err := txns.CountByBook(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrBookHasTransactions
		}
		return books.Delete(id)
	})
}
