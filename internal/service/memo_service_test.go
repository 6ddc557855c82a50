package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/memoapi/internal/config"
	"github.com/memoapi/internal/db"
	"github.com/memoapi/internal/domain"
)

// setupTestMemoService creates a memo service over a temp sqlite database
func setupTestMemoService(t *testing.T) (domain.MemoService, *db.DB) {
	t.Helper()

	database, err := db.Open(config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "memos.db"),
		ConnMaxLifetime: time.Minute,
		AutoMigrate:     true,
	}, gormlogger.Discard)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewMemoService(database, slog.Default()), database
}

func strPtr(s string) *string {
	return &s
}

func TestMemoService_CreateMemo(t *testing.T) {
	service, _ := setupTestMemoService(t)
	ctx := context.Background()

	memo, err := service.CreateMemo(ctx, "u1", domain.CreateMemoRequest{Title: "a", Content: "b"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if memo.ID == 0 {
		t.Error("Expected generated id")
	}
	if memo.UserID != "u1" {
		t.Errorf("Expected user_id 'u1', got %q", memo.UserID)
	}
	if memo.CreatedAt.IsZero() {
		t.Error("Expected created_at timestamp")
	}

	// Another user must not see it
	memos, err := service.ListMemos(ctx, "u2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(memos) != 0 {
		t.Errorf("Expected u2 to see no memos, got %d", len(memos))
	}
}

func TestMemoService_RoundTrip(t *testing.T) {
	service, _ := setupTestMemoService(t)
	ctx := context.Background()

	created, err := service.CreateMemo(ctx, "u1", domain.CreateMemoRequest{Title: "groceries", Content: "milk"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	memos, err := service.ListMemos(ctx, "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(memos) != 1 {
		t.Fatalf("Expected 1 memo, got %d", len(memos))
	}
	got := memos[0]
	if got.ID != created.ID || got.Title != "groceries" || got.Content != "milk" {
		t.Errorf("Round trip mismatch: created %+v, listed %+v", created, got)
	}
}

func TestMemoService_ListMemos_Empty(t *testing.T) {
	service, _ := setupTestMemoService(t)

	memos, err := service.ListMemos(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if memos == nil || len(memos) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", memos)
	}
}

func TestMemoService_UpdateMemo(t *testing.T) {
	service, _ := setupTestMemoService(t)
	ctx := context.Background()

	created, err := service.CreateMemo(ctx, "u1", domain.CreateMemoRequest{Title: "old", Content: "keep"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := service.UpdateMemo(ctx, "u1", created.ID, domain.UpdateMemoRequest{Title: strPtr("new")})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Title != "new" {
		t.Errorf("Expected title 'new', got %q", updated.Title)
	}
	if updated.Content != "keep" {
		t.Errorf("Expected omitted content to be kept, got %q", updated.Content)
	}
	if updated.UserID != "u1" {
		t.Errorf("Expected owner unchanged, got %q", updated.UserID)
	}

	updated, err = service.UpdateMemo(ctx, "u1", created.ID, domain.UpdateMemoRequest{Title: strPtr(""), Content: strPtr("")})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Title != "" || updated.Content != "" {
		t.Errorf("Expected explicit empty values to overwrite, got %+v", updated)
	}
}

func TestMemoService_UpdateMemo_NotOwned(t *testing.T) {
	service, database := setupTestMemoService(t)
	ctx := context.Background()

	created, err := service.CreateMemo(ctx, "u1", domain.CreateMemoRequest{Title: "mine", Content: "private"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tests := []struct {
		name   string
		userID string
		memoID int64
	}{
		{"other user", "u2", created.ID},
		{"missing id", "u1", created.ID + 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateMemo(ctx, tt.userID, tt.memoID, domain.UpdateMemoRequest{Title: strPtr("hijacked")})
			if !domain.IsNotFoundError(err) {
				t.Errorf("Expected not found error, got %v", err)
			}
		})
	}

	stored, err := database.GetMemoForUser(ctx, created.ID, "u1")
	if err != nil {
		t.Fatalf("Expected memo to still exist, got %v", err)
	}
	if stored.Title != "mine" || stored.Content != "private" {
		t.Errorf("Storage changed: %+v", stored)
	}
}

func TestMemoService_DeleteMemo(t *testing.T) {
	service, _ := setupTestMemoService(t)
	ctx := context.Background()

	created, err := service.CreateMemo(ctx, "u1", domain.CreateMemoRequest{Title: "bye"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := service.DeleteMemo(ctx, "u1", created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	memos, err := service.ListMemos(ctx, "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(memos) != 0 {
		t.Errorf("Expected no memos after delete, got %d", len(memos))
	}

	// Deleting twice reports not found
	if err := service.DeleteMemo(ctx, "u1", created.ID); !domain.IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestMemoService_DeleteMemo_NotOwned(t *testing.T) {
	service, _ := setupTestMemoService(t)
	ctx := context.Background()

	created, err := service.CreateMemo(ctx, "u1", domain.CreateMemoRequest{Title: "mine"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := service.DeleteMemo(ctx, "u2", created.ID); !domain.IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}

	memos, err := service.ListMemos(ctx, "u1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(memos) != 1 {
		t.Errorf("Expected memo to survive foreign delete, got %d memos", len(memos))
	}
}

func TestMemoService_DatabaseFailure(t *testing.T) {
	service, database := setupTestMemoService(t)
	database.Close()

	_, err := service.ListMemos(context.Background(), "u1")
	if err == nil {
		t.Fatal("Expected error on closed database")
	}
	if !domain.IsInfrastructureError(err) {
		t.Errorf("Expected infrastructure error, got %v", err)
	}
}
