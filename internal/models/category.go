package models

// DefaultCategoryColor is applied when a category is created without an
// explicit color.
const DefaultCategoryColor = "#f8a5c2"

// Category is a named, colored tag for transactions. Names are unique within
// a binder, not globally.
type Category struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100;not null;uniqueIndex:idx_category_name_binder"`
	Color    string `gorm:"size:20;default:#f8a5c2"`
	BinderID uint   `gorm:"not null;index;uniqueIndex:idx_category_name_binder"`

	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE"`
}
