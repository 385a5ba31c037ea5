package models

import (
	"time"
)

// LoanPeriod is how long a borrower may keep a book before it goes overdue.
const LoanPeriod = 14 * 24 * time.Hour

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusOverdue  Status = "overdue"
	StatusReturned Status = "returned"
)

// ActiveStatuses are the states that count as an open loan.
var ActiveStatuses = []Status{StatusBorrowed, StatusOverdue}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Author    string    `gorm:"not null" json:"author"`
	Available int       `gorm:"not null;default:0;check:available >= 0" json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookTransaction tracks one copy of one book borrowed by one user.
// returned_at stays null until the loan is closed; status moves
// borrowed -> overdue -> returned (or borrowed -> returned) and never back.
type BookTransaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"not null;index:idx_txn_book_status,priority:1" json:"bookId"`
	BorrowerID string     `gorm:"type:uuid;not null;index:idx_txn_borrower_status,priority:1" json:"borrowerId"`
	BorrowedAt time.Time  `gorm:"not null;index" json:"borrowedAt"`
	DueDate    time.Time  `gorm:"not null;index:idx_txn_status_due,priority:2" json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt"`
	Status     Status     `gorm:"size:20;not null;default:'borrowed';index:idx_txn_borrower_status,priority:2;index:idx_txn_status_due,priority:1;index:idx_txn_book_status,priority:2" json:"status"`

	Book     Book `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Borrower User `gorm:"foreignKey:BorrowerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
