package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ziadkadry99/accessblock/internal/db"
	"github.com/ziadkadry99/accessblock/internal/logging"
)

func testDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get absent: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent user, got %+v", got)
	}

	if err := store.Upsert(ctx, "u1", Preference{FontStep: intPtr(5)}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(ctx, "u1", Preference{FontStep: intPtr(6), ColourScheme: intPtr(2)}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err = store.Get(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got.FontStep != 6 || *got.ColourScheme != 2 {
		t.Fatalf("got %+v, want font=6 scheme=2", got)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, "u1"); got != nil {
		t.Errorf("record still present after delete: %+v", got)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Errorf("deleting a missing record: %v", err)
	}
}

func TestStoreKeepsNullFields(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	if err := store.Upsert(ctx, "u2", Preference{ColourScheme: intPtr(4)}); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if got.FontStep != nil {
		t.Errorf("font step should be absent, got %d", *got.FontStep)
	}
}

func TestInstanceStore(t *testing.T) {
	store := NewInstanceStore(testDB(t))
	ctx := context.Background()
	base := testCatalogue(t)

	if err := store.SetScheme(ctx, "42", Scheme{ID: 3, Foreground: "#FFFFFF", Background: "#000000"}); err != nil {
		t.Fatalf("SetScheme: %v", err)
	}
	if err := store.SetScheme(ctx, "42", Scheme{ID: 3, Background: "#111111"}); err != nil {
		t.Fatalf("SetScheme update: %v", err)
	}

	schemes, err := store.Schemes(ctx, "42")
	if err != nil {
		t.Fatal(err)
	}
	if len(schemes) != 1 || schemes[0].Background != "#111111" || schemes[0].Foreground != "" {
		t.Fatalf("got %+v", schemes)
	}

	cat, err := store.Catalogue(ctx, "42", base)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := cat.Scheme(3); s.Background != "#111111" {
		t.Errorf("instance override missing: %+v", s)
	}
	if s, _ := cat.Scheme(2); s.Background != "#FAFAC8" {
		t.Errorf("site scheme lost: %+v", s)
	}

	other, err := store.Catalogue(ctx, "7", base)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := other.Scheme(3); s.Background != "#EDD1B0" {
		t.Errorf("override leaked into another instance: %+v", s)
	}
}

func TestInstanceStoreRejectsDefaultScheme(t *testing.T) {
	store := NewInstanceStore(testDB(t))
	err := store.SetScheme(context.Background(), "42", Scheme{ID: DefaultSchemeID, Background: "#000000"})
	if !IsValidation(err) {
		t.Errorf("got %v, want ValidationError", err)
	}
}

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	err   error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func keyOf(key map[string]types.AttributeValue) string {
	return key["userId"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.items, keyOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoStoreRoundTrip(t *testing.T) {
	client := newFakeDynamo()
	store := NewDynamoStore(logging.Discard(), client, "prefs")
	ctx := context.Background()

	if got, err := store.Get(ctx, "u1"); err != nil || got != nil {
		t.Fatalf("absent user: got %+v, %v", got, err)
	}

	if err := store.Upsert(ctx, "u1", Preference{FontStep: intPtr(8)}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, ok := client.items["u1"]["colourScheme"]; ok {
		t.Error("absent scheme should be omitted from the item")
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.FontStep == nil || *got.FontStep != 8 || got.ColourScheme != nil {
		t.Fatalf("got %+v, want font=8", got)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if len(client.items) != 0 {
		t.Errorf("item not deleted: %v", client.items)
	}
}

func TestDynamoStoreErrors(t *testing.T) {
	client := newFakeDynamo()
	client.err = errors.New("throttled")
	store := NewDynamoStore(logging.Discard(), client, "prefs")

	if _, err := store.Get(context.Background(), "u1"); !errors.Is(err, client.err) {
		t.Errorf("Get: got %v", err)
	}
	if err := store.Upsert(context.Background(), "u1", Preference{FontStep: intPtr(1)}); !errors.Is(err, client.err) {
		t.Errorf("Upsert: got %v", err)
	}
}
