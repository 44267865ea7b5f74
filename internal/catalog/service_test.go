package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
)

func testAdmin() admin.Principal {
	return admin.Principal{AdminID: uuid.NewString(), Username: "reviewer"}
}

func TestCreateUpsertsByPlatformAndName(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, testAdmin(), ItemInput{Platform: "Instagram", Name: "Followers", Price: 750})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-creating the same service updates the price instead of duplicating.
	second, err := svc.Create(ctx, testAdmin(), ItemInput{Platform: "Instagram", Name: "Followers", Price: 900})
	if err != nil {
		t.Fatalf("re-create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert onto %s, got new item %s", first.ID, second.ID)
	}
	if second.Price != 900 {
		t.Fatalf("price not updated, got %d", second.Price)
	}

	items, _ := svc.ListActive(ctx)
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
}

func TestDeactivateHidesFromStorefront(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	item, err := svc.Create(ctx, testAdmin(), ItemInput{Platform: "YouTube", Name: "Views", Price: 500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(ctx, testAdmin(), item.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	items, _ := svc.ListActive(ctx)
	if len(items) != 0 {
		t.Fatalf("deactivated item still listed: %d", len(items))
	}
	platforms, _ := svc.Platforms(ctx)
	if len(platforms) != 0 {
		t.Fatalf("deactivated platform still listed: %v", platforms)
	}

	// The item itself survives for past orders.
	stored, err := svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get after deactivate: %v", err)
	}
	if stored.Active {
		t.Fatal("item should be inactive")
	}
}

func TestListByPlatform(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	for _, in := range []ItemInput{
		{Platform: "Instagram", Name: "Followers", Price: 750},
		{Platform: "Instagram", Name: "Likes", Price: 300},
		{Platform: "YouTube", Name: "Views", Price: 500},
	} {
		if _, err := svc.Create(ctx, testAdmin(), in); err != nil {
			t.Fatalf("create %s/%s: %v", in.Platform, in.Name, err)
		}
	}

	items, err := svc.ListByPlatform(ctx, "Instagram")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two Instagram items, got %d", len(items))
	}

	platforms, _ := svc.Platforms(ctx)
	if len(platforms) != 2 || platforms[0] != "Instagram" || platforms[1] != "YouTube" {
		t.Fatalf("unexpected platforms: %v", platforms)
	}
}

func TestWritesRequirePrincipal(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, admin.Principal{}, ItemInput{Platform: "X", Name: "Reposts", Price: 100}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized create, got %v", err)
	}
	if err := svc.Deactivate(ctx, admin.Principal{}, uuid.NewString()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized deactivate, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, testAdmin(), ItemInput{Name: "Likes", Price: 100}); err == nil {
		t.Fatal("expected error for missing platform")
	}
	if _, err := svc.Create(ctx, testAdmin(), ItemInput{Platform: "X", Name: "Likes", Price: 0}); err == nil {
		t.Fatal("expected error for non-positive price")
	}
}
