package model

import "time"

// Category labels transactions and may nest one level under a parent
// category. The parent link is a plain id plus indexes in storage, not a
// cyclic object graph; a parent must already exist before it can be used.
type Category struct {
	CreatedAt     time.Time
	ParentID      *string
	Parent        *Category
	ID            string
	UserID        string
	Name          string
	Subcategories []Category
}
