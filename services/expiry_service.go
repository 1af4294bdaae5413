package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"gorm.io/gorm"
)

// ExpiryService finds pantry items about to expire and fans the alert out to
// every channel the user can see: open realtime sessions, registered push
// endpoints and email.
type ExpiryService struct {
	db     *gorm.DB
	hub    *RealtimeHub
	push   *PushService
	window time.Duration
}

func NewExpiryService(db *gorm.DB, hub *RealtimeHub, push *PushService, window time.Duration) *ExpiryService {
	if window <= 0 {
		window = 72 * time.Hour
	}
	return &ExpiryService{db: db, hub: hub, push: push, window: window}
}

// Expiring lists the user's ingredients whose expiry falls inside the alert
// window.
func (s *ExpiryService) Expiring(userID string) ([]models.Ingredient, error) {
	cutoff := time.Now().Add(s.window)
	var out []models.Ingredient
	err := s.db.
		Where("user_id = ? AND expires_at IS NOT NULL AND expires_at <= ?", userID, cutoff).
		Order("expires_at").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: expiring ingredients: %v", utils.ErrLocalStorage, err)
	}
	return out, nil
}

// Notify emits one alert covering all expiring items. Push and email are
// best effort; only the local read can fail the call.
func (s *ExpiryService) Notify(userID, email string) ([]models.Ingredient, error) {
	expiring, err := s.Expiring(userID)
	if err != nil {
		return nil, err
	}
	if len(expiring) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(expiring))
	for _, ing := range expiring {
		names = append(names, ing.Name)
	}
	body := fmt.Sprintf("Expiring soon: %s", strings.Join(names, ", "))

	if s.hub != nil {
		s.hub.Broadcast(userID, "ingredient.expiring", expiring)
	}
	if s.push != nil {
		s.push.PushToUser(userID, "Pantry check", body, map[string]string{"count": fmt.Sprintf("%d", len(expiring))})
	}
	if email != "" {
		if err := utils.SendExpiryEmail(email, names); err != nil {
			log.Printf("expiry email: %v", err)
		}
	}
	return expiring, nil
}
