package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/neuroblog/neuroblog/pkg/storage"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(storage.Config{DSN: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background(), Schema); err != nil {
		t.Fatal(err)
	}
	return NewStore(db)
}

func TestCreateAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "  Admin@Example.COM ", "correct horse battery", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	u, err := store.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u == nil {
		t.Fatal("user not found by normalized email")
	}
	if u.ID != id || u.Role != RoleAdmin {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "correct horse battery" {
		t.Error("password stored in the clear")
	}

	byID, err := store.GetByID(ctx, id)
	if err != nil || byID == nil || byID.Email != "admin@example.com" {
		t.Fatalf("GetByID = %+v, %v", byID, err)
	}
}

func TestGet_Absent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	u, err := store.GetByEmail(ctx, "nobody@example.com")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", u, err)
	}
	u, err = store.GetByID(ctx, 12345)
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", u, err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "dup@example.com", "password123", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, "dup@example.com", "password456", ""); err == nil {
		t.Fatal("expected unique constraint error")
	}
}

func TestCheckPassword(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "check@example.com", "password123", ""); err != nil {
		t.Fatal(err)
	}
	u, err := store.GetByEmail(ctx, "check@example.com")
	if err != nil || u == nil {
		t.Fatal(err)
	}
	if !u.CheckPassword("password123") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
}

func TestDefaultRoleAndIsAdmin(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "reader@example.com", "password123", ""); err != nil {
		t.Fatal(err)
	}
	u, err := store.GetByEmail(ctx, "reader@example.com")
	if err != nil || u == nil {
		t.Fatal(err)
	}
	if u.Role != RoleReader {
		t.Errorf("default role = %q", u.Role)
	}
	if u.IsAdmin() {
		t.Error("reader reported as admin")
	}
	var absent *User
	if absent.IsAdmin() {
		t.Error("nil user reported as admin")
	}
}
