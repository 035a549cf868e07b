package users

import (
	"context"
	"errors"
	"testing"

	"cv-backend/internal/shared/storage/memdb"
)

func connectedRepo(t *testing.T) (*MemDBRepo, *memdb.DB) {
	t.Helper()
	db := memdb.New()
	if err := db.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Disconnect)
	return NewMemDBRepo(db), db
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)

	in := User{ID: "123", Name: "John Doe", Email: "john@example.com"}
	created, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != in.ID || created.Name != in.Name || created.Email != in.Email || created.Attributes != nil {
		t.Fatalf("created = %+v, want %+v", created, in)
	}

	got, err := repo.GetByID(ctx, "123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "123" || got.Name != "John Doe" || got.Email != "john@example.com" {
		t.Fatalf("got %+v", got)
	}
}

func TestOperationsFailWhenDisconnected(t *testing.T) {
	ctx := context.Background()
	repo := NewMemDBRepo(memdb.New())

	if _, err := repo.Create(ctx, User{ID: "1", Name: "A", Email: "a@x.com"}); !errors.Is(err, memdb.ErrNotConnected) {
		t.Fatalf("Create = %v, want ErrNotConnected", err)
	}
	if _, err := repo.GetByID(ctx, "1"); !errors.Is(err, memdb.ErrNotConnected) {
		t.Fatalf("GetByID = %v, want ErrNotConnected", err)
	}
	if _, err := repo.Update(ctx, "1", Update{}); !errors.Is(err, memdb.ErrNotConnected) {
		t.Fatalf("Update = %v, want ErrNotConnected", err)
	}
	if _, err := repo.List(ctx); !errors.Is(err, memdb.ErrNotConnected) {
		t.Fatalf("List = %v, want ErrNotConnected", err)
	}
}

func TestCreateDuplicateLeavesExistingUntouched(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)

	if _, err := repo.Create(ctx, User{ID: "1", Name: "Ada", Email: "ada@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, User{ID: "1", Name: "Eve", Email: "eve@x.com"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate create = %v, want ErrDuplicateID", err)
	}

	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ada" || got.Email != "ada@x.com" {
		t.Fatalf("existing record changed: %+v", got)
	}
}

func TestGetAbsentIDNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)
	if _, err := repo.GetByID(ctx, "999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get absent = %v, want ErrNotFound", err)
	}
}

func TestUpdateTouchesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)

	if _, err := repo.Create(ctx, User{ID: "1", Name: "Ada", Email: "ada@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Ada Lovelace"
	updated, err := repo.Update(ctx, "1", Update{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Ada Lovelace" || updated.Email != "ada@x.com" {
		t.Fatalf("updated = %+v", updated)
	}

	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ada Lovelace" || got.Email != "ada@x.com" {
		t.Fatalf("stored = %+v", got)
	}

	if _, err := repo.Update(ctx, "missing", Update{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update absent = %v, want ErrNotFound", err)
	}
}

func TestUpdateMergesAttributes(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)

	if _, err := repo.Create(ctx, User{ID: "1", Name: "Ada", Email: "ada@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Update(ctx, "1", Update{Attributes: map[string]string{"team": "analytical-engines"}}); err != nil {
		t.Fatalf("update attrs: %v", err)
	}
	updated, err := repo.Update(ctx, "1", Update{Attributes: map[string]string{"city": "London"}})
	if err != nil {
		t.Fatalf("update attrs: %v", err)
	}
	if updated.Attributes["team"] != "analytical-engines" || updated.Attributes["city"] != "London" {
		t.Fatalf("attributes = %+v", updated.Attributes)
	}
	if updated.Name != "Ada" || updated.Email != "ada@x.com" {
		t.Fatalf("named fields changed: %+v", updated)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)

	if _, err := repo.Create(ctx, User{ID: "1", Name: "Ada", Email: "ada@x.com", Attributes: map[string]string{"k": "v"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Name = "corrupted"
	got.Attributes["k"] = "corrupted"

	again, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Name != "Ada" || again.Attributes["k"] != "v" {
		t.Fatalf("internal state corrupted via returned value: %+v", again)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	list[0].Attributes["k"] = "corrupted"
	again, err = repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get after list: %v", err)
	}
	if again.Attributes["k"] != "v" {
		t.Fatalf("internal state corrupted via list snapshot: %+v", again)
	}
}

func TestListReturnsStableSnapshot(t *testing.T) {
	ctx := context.Background()
	repo, _ := connectedRepo(t)

	for _, u := range []User{
		{ID: "b", Name: "B", Email: "b@x.com"},
		{ID: "a", Name: "A", Email: "a@x.com"},
		{ID: "c", Name: "C", Email: "c@x.com"},
	} {
		if _, err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create %s: %v", u.ID, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Fatalf("list order = %v", list)
		}
	}
}

func TestStoreDoesNotSurviveConnectionCycle(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	if err := db.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	repo := NewMemDBRepo(db)

	if _, err := repo.Create(ctx, User{ID: "1", Name: "Ada", Email: "ada@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	db.Disconnect()
	if err := db.Connect(); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	defer db.Disconnect()

	if _, err := repo.GetByID(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after cycle = %v, want ErrNotFound", err)
	}
}

// Full walk through the connect / create / disconnect / reconnect sequence.
func TestConnectionCycleScenario(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemDBRepo(db)

	if err := db.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := repo.Create(ctx, User{ID: "1", Name: "Ada", Email: "ada@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "1" || got.Name != "Ada" || got.Email != "ada@x.com" {
		t.Fatalf("got %+v", got)
	}

	db.Disconnect()
	if _, err := repo.GetByID(ctx, "1"); !errors.Is(err, memdb.ErrNotConnected) {
		t.Fatalf("get while disconnected = %v, want ErrNotConnected", err)
	}

	if err := db.Connect(); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	defer db.Disconnect()
	if _, err := repo.GetByID(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after reconnect = %v, want ErrNotFound", err)
	}
}
