package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tourista/tourism-api/internal/core/domain"
)

func TestConnect_RequiresURIAndDatabase(t *testing.T) {
	if _, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"}); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestStoreErr(t *testing.T) {
	err := storeErr("find users", fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	plain := errors.New("bad filter")
	err = storeErr("find users", plain)
	if errors.Is(err, domain.ErrStoreUnavailable) || !errors.Is(err, plain) {
		t.Fatalf("unexpected wrapping: %v", err)
	}
}

func TestSettableFields(t *testing.T) {
	for _, f := range []string{"avatar", domain.ReserveHotel, domain.ReserveRestaurant, domain.FieldTour} {
		if !settableFields[f] {
			t.Fatalf("%s should be settable", f)
		}
	}
	if settableFields["tokens"] || settableFields["password"] {
		t.Fatal("credentials must not be settable")
	}
}
