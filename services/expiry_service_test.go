package services

import (
	"testing"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
)

func TestExpiringScopedToUserAndWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpiryService(db, nil, nil, 48*time.Hour)

	soon := time.Now().Add(24 * time.Hour)
	far := time.Now().Add(200 * time.Hour)
	db.Create(&models.Ingredient{UserID: "user-a", InstanceID: 1, Name: "a yogurt", ExpiresAt: &soon})
	db.Create(&models.Ingredient{UserID: "user-a", InstanceID: 2, Name: "a rice", ExpiresAt: &far})
	db.Create(&models.Ingredient{UserID: "user-a", InstanceID: 3, Name: "a salt"})
	db.Create(&models.Ingredient{UserID: "user-b", InstanceID: 1, Name: "b yogurt", ExpiresAt: &soon})

	expiring, err := svc.Expiring("user-a")
	if err != nil {
		t.Fatalf("expiring: %v", err)
	}
	if len(expiring) != 1 || expiring[0].Name != "a yogurt" {
		t.Fatalf("expiring = %+v, want only a's soon-to-expire item", expiring)
	}
}
