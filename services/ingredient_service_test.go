package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"
)

const testUser = "uid-1"

func TestSaveAssignsStrictlyIncreasingInstanceIDs(t *testing.T) {
	svc := NewIngredientService(newTestDB(t), newFakeRemote(), nil)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		saved, err := svc.Save(ctx, testUser, models.Ingredient{CatalogID: "4890008100309", Name: fmt.Sprintf("item %d", i)})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if saved.InstanceID != i {
			t.Fatalf("save %d: got instance id %d", i, saved.InstanceID)
		}
	}
}

func TestSaveContinuesFromExistingMax(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Ingredient{UserID: testUser, InstanceID: 7, Name: "old"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewIngredientService(db, newFakeRemote(), nil)
	saved, err := svc.Save(context.Background(), testUser, models.Ingredient{Name: "new"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.InstanceID != 8 {
		t.Fatalf("got instance id %d, want 8", saved.InstanceID)
	}
}

func TestSaveRemoteFailureSkipsLocalWrite(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	remote.failPut = true
	svc := NewIngredientService(db, remote, nil)

	_, err := svc.Save(context.Background(), testUser, models.Ingredient{Name: "milk"})
	if !errors.Is(err, utils.ErrRemoteUnavailable) {
		t.Fatalf("want remote error, got %v", err)
	}

	var count int64
	db.Model(&models.Ingredient{}).Count(&count)
	if count != 0 {
		t.Fatalf("local write happened despite remote failure, count=%d", count)
	}
}

func TestSyncReplacesLocalWhenRemoteLarger(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)

	for i := 1; i <= 3; i++ {
		db.Create(&models.Ingredient{UserID: testUser, InstanceID: i, Name: fmt.Sprintf("local %d", i)})
	}
	for i := 10; i < 15; i++ {
		remote.seedIngredient(testUser, models.Ingredient{InstanceID: i, Name: fmt.Sprintf("remote %d", i)})
	}

	replaced, err := svc.Sync(context.Background(), testUser)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !replaced {
		t.Fatal("expected a replacement")
	}

	var local []models.Ingredient
	db.Order("instance_id").Find(&local)
	if len(local) != 5 {
		t.Fatalf("got %d local rows, want 5", len(local))
	}
	for _, ing := range local {
		if ing.InstanceID < 10 {
			t.Fatalf("original local row %d survived the replacement", ing.InstanceID)
		}
	}
}

func TestSyncNoOpWhenLocalCountAtLeastRemote(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)

	// Same count, different content: the documented lossy no-op.
	db.Create(&models.Ingredient{UserID: testUser, InstanceID: 1, Name: "local milk", Quantity: 2})
	remote.seedIngredient(testUser, models.Ingredient{InstanceID: 1, Name: "remote milk", Quantity: 5})

	replaced, err := svc.Sync(context.Background(), testUser)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if replaced {
		t.Fatal("sync replaced local rows despite local count >= remote count")
	}

	var ing models.Ingredient
	db.First(&ing, "instance_id = ?", 1)
	if ing.Name != "local milk" || ing.Quantity != 2 {
		t.Fatalf("local row changed: %+v", ing)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)

	for i := 1; i <= 2; i++ {
		remote.seedIngredient(testUser, models.Ingredient{InstanceID: i, Name: fmt.Sprintf("r%d", i)})
	}

	ctx := context.Background()
	if _, err := svc.Sync(ctx, testUser); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	replaced, err := svc.Sync(ctx, testUser)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if replaced {
		t.Fatal("second sync changed state without intervening writes")
	}
}

func TestDeleteRemoteFailureLeavesLocalUntouched(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	remote.failDelete = true
	svc := NewIngredientService(db, remote, nil)

	db.Create(&models.Ingredient{UserID: testUser, InstanceID: 1, Name: "eggs"})

	err := svc.Delete(context.Background(), testUser, models.Ingredient{InstanceID: 1})
	if !errors.Is(err, utils.ErrRemoteUnavailable) {
		t.Fatalf("want remote error, got %v", err)
	}

	var count int64
	db.Model(&models.Ingredient{}).Count(&count)
	if count != 1 {
		t.Fatal("local record deleted despite remote failure")
	}
}

func TestDeleteRemovesBothStores(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)

	db.Create(&models.Ingredient{UserID: testUser, InstanceID: 3, Name: "eggs"})
	remote.seedIngredient(testUser, models.Ingredient{InstanceID: 3, Name: "eggs"})

	if err := svc.Delete(context.Background(), testUser, models.Ingredient{InstanceID: 3}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&models.Ingredient{}).Count(&count)
	if count != 0 {
		t.Fatal("local record survived delete")
	}
	if len(remote.ingredients[testUser]) != 0 {
		t.Fatal("remote record survived delete")
	}
}

func TestUpdateQuantityWritesLocalThenRemote(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)

	db.Create(&models.Ingredient{UserID: testUser, InstanceID: 2, Name: "flour", Quantity: 1})
	remote.seedIngredient(testUser, models.Ingredient{InstanceID: 2, Name: "flour", Quantity: 1})

	if err := svc.UpdateQuantity(context.Background(), testUser, 2, 4.5); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	var ing models.Ingredient
	db.First(&ing, "instance_id = ?", 2)
	if ing.Quantity != 4.5 {
		t.Fatalf("local quantity = %v, want 4.5", ing.Quantity)
	}
	if got := remote.ingredients[testUser][2].Quantity; got != 4.5 {
		t.Fatalf("remote quantity = %v, want 4.5", got)
	}
}

func TestUpdateQuantityUnknownInstance(t *testing.T) {
	svc := NewIngredientService(newTestDB(t), newFakeRemote(), nil)

	err := svc.UpdateQuantity(context.Background(), testUser, 99, 1)
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestSyncLeavesOtherUsersRowsAlone(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if _, err := svc.Save(ctx, "user-a", models.Ingredient{Name: fmt.Sprintf("a item %d", i)}); err != nil {
			t.Fatalf("save for a: %v", err)
		}
	}
	for i := 101; i <= 103; i++ {
		remote.seedIngredient("user-b", models.Ingredient{InstanceID: i, Name: fmt.Sprintf("b item %d", i)})
	}

	replaced, err := svc.Sync(ctx, "user-b")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !replaced {
		t.Fatal("expected b's rows to be replaced")
	}

	aRows, err := svc.GetAll(ctx, "user-a")
	if err != nil {
		t.Fatalf("get all for a: %v", err)
	}
	if len(aRows) != 2 {
		t.Fatalf("a's rows after b's sync = %d, want 2", len(aRows))
	}
	bRows, err := svc.GetAll(ctx, "user-b")
	if err != nil {
		t.Fatalf("get all for b: %v", err)
	}
	if len(bRows) != 3 {
		t.Fatalf("b's rows after sync = %d, want 3", len(bRows))
	}
}

func TestSaveInstanceIDsIndependentPerUser(t *testing.T) {
	svc := NewIngredientService(newTestDB(t), newFakeRemote(), nil)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if _, err := svc.Save(ctx, "user-a", models.Ingredient{Name: "a"}); err != nil {
			t.Fatalf("save for a: %v", err)
		}
	}
	saved, err := svc.Save(ctx, "user-b", models.Ingredient{Name: "b"})
	if err != nil {
		t.Fatalf("save for b: %v", err)
	}
	if saved.InstanceID != 1 {
		t.Fatalf("b's first instance id = %d, want 1", saved.InstanceID)
	}
}

func TestGetAllScopedToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(db, newFakeRemote(), nil)
	ctx := context.Background()

	db.Create(&models.Ingredient{UserID: "user-a", InstanceID: 1, Name: "a milk"})
	db.Create(&models.Ingredient{UserID: "user-b", InstanceID: 1, Name: "b milk"})

	rows, err := svc.GetAll(ctx, "user-a")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "a milk" {
		t.Fatalf("rows for a = %+v", rows)
	}
}

func TestDeleteOnlyTouchesOwnersRow(t *testing.T) {
	db := newTestDB(t)
	remote := newFakeRemote()
	svc := NewIngredientService(db, remote, nil)

	db.Create(&models.Ingredient{UserID: "user-a", InstanceID: 1, Name: "a milk"})
	db.Create(&models.Ingredient{UserID: "user-b", InstanceID: 1, Name: "b milk"})

	if err := svc.Delete(context.Background(), "user-a", models.Ingredient{InstanceID: 1}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&models.Ingredient{}).Where("user_id = ?", "user-b").Count(&count)
	if count != 1 {
		t.Fatal("b's row deleted by a's delete")
	}
}
