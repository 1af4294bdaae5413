package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"gorm.io/gorm"
)

// CategoryService keeps the flat category reference list. Refresh replaces
// the whole table from the remote catalog, clear-then-insert.
type CategoryService struct {
	db  *gorm.DB
	api *RecipeAPIClient
}

func NewCategoryService(db *gorm.DB, api *RecipeAPIClient) *CategoryService {
	return &CategoryService{db: db, api: api}
}

func (s *CategoryService) Refresh(ctx context.Context) ([]models.Category, error) {
	results, err := s.api.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Category, 0, len(results))
	for _, c := range results {
		id, err := strconv.Atoi(c.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: category id %q", utils.ErrMalformedResponse, c.ID)
		}
		count, _ := strconv.Atoi(c.ItemCount)
		rows = append(rows, models.Category{ID: id, Name: c.Name, ItemCount: count})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: refresh categories: %v", utils.ErrLocalStorage, err)
	}
	return rows, nil
}

func (s *CategoryService) List() ([]models.Category, error) {
	var out []models.Category
	if err := s.db.Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", utils.ErrLocalStorage, err)
	}
	return out, nil
}
