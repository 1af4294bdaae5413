package models

import "time"

// Ingredient is one physical pantry item. InstanceID distinguishes separate
// units of the same product; CatalogID is shared by all units of a product
// (two purchases of the same yogurt get two InstanceIDs, one CatalogID).
//
// InstanceID is assigned by IngredientService as the owner's current max + 1
// and is unique per user, so the key is (user_id, instance_id), not an
// autoincrement column. The same struct is the Remote Store payload; the json
// tags define the per-user subtree record, where the owner is already the
// subtree root and is not repeated.
type Ingredient struct {
	UserID     string     `gorm:"column:user_id;primaryKey;size:64" json:"-"`
	InstanceID int        `gorm:"column:instance_id;primaryKey;autoIncrement:false" json:"instanceId"`
	CatalogID  string     `gorm:"column:catalog_id;index" json:"catalogId"`
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	Category   string     `json:"category"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	ImageURL   string     `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Calories   float64    `json:"calories,omitempty"`
	Fat        float64    `json:"fat,omitempty"`
}
