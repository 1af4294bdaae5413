package models

// Category is one entry of the flat remote catalog list. The whole table is
// refreshed clear-then-insert, so rows carry no local state.
type Category struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string `json:"name"`
	ItemCount int    `gorm:"column:item_count" json:"itemCount"`
}
