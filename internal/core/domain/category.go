package domain

import "time"

// CategoryType determines the sign applied to an entry's amount.
type CategoryType int16

const (
	CategoryTypeIncome  CategoryType = 1
	CategoryTypeExpense CategoryType = 2
)

// Sign returns +1 for income categories and -1 for expense categories.
func (t CategoryType) Sign() int64 {
	if t == CategoryTypeIncome {
		return 1
	}
	return -1
}

// Category is a user-defined top-level classification for ledger entries.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"` // 1=income, 2=expense
	IsActive   bool         `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Subcategory is the leaf classification ledger entries reference.
type Subcategory struct {
	SubcategoryID string `json:"subcategoryID"` // Primary Key (UUID)
	CategoryID    string `json:"categoryID"`    // FK -> Category
	Name          string `json:"name"`
	IsActive      bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SubcategoryDetail is a subcategory joined with its owning category, used
// when resolving an entry's classification to the category type.
type SubcategoryDetail struct {
	Subcategory
	CategoryName string       `json:"categoryName"`
	CategoryType CategoryType `json:"categoryType"`
}
