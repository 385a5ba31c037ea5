package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"lms-backend/pkg/models"
)

type BookRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *gorm.DB) BookRepository

	FindAll() ([]models.Book, error)
	FindByID(id uint) (*models.Book, error)
	// FindByIDForUpdate locks the book row for the rest of the enclosing
	// transaction.
	FindByIDForUpdate(id uint) (*models.Book, error)
	Create(book *models.Book) error
	Save(book *models.Book) error
	Delete(id uint) error

	// DecrementAvailable takes one copy off the shelf. Returns false when
	// no copies were available; the guard keeps the count from going negative.
	DecrementAvailable(id uint) (bool, error)
	// IncrementAvailable puts a returned copy back.
	IncrementAvailable(id uint) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) WithTx(tx *gorm.DB) BookRepository {
	return &bookRepository{db: tx}
}

func (r *bookRepository) FindAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("id").Find(&books).Error; err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	return books, nil
}

func (r *bookRepository) FindByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByIDForUpdate(id uint) (*models.Book, error) {
	var book models.Book
	if err := lockForUpdate(r.db).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Create(book *models.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		return errors.Wrap(err, "create book")
	}
	return nil
}

func (r *bookRepository) Save(book *models.Book) error {
	if err := r.db.Save(book).Error; err != nil {
		return errors.Wrap(err, "save book")
	}
	return nil
}

func (r *bookRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Book{}, id).Error; err != nil {
		return errors.Wrap(err, "delete book")
	}
	return nil
}

func (r *bookRepository) DecrementAvailable(id uint) (bool, error) {
	res := r.db.Model(&models.Book{}).
		Where("id = ? AND available > 0", id).
		UpdateColumn("available", gorm.Expr("available - 1"))
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "decrement available")
	}
	return res.RowsAffected > 0, nil
}

func (r *bookRepository) IncrementAvailable(id uint) error {
	res := r.db.Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("available", gorm.Expr("available + 1"))
	if res.Error != nil {
		return errors.Wrap(res.Error, "increment available")
	}
	return nil
}
