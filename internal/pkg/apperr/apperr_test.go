package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TestKindStatusCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{kind: Validation, want: fiber.StatusBadRequest},
		{kind: NotFound, want: fiber.StatusNotFound},
		{kind: Conflict, want: fiber.StatusConflict},
		{kind: Gateway, want: fiber.StatusBadGateway},
		{kind: Persistence, want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.kind.StatusCode(); got != tt.want {
			t.Fatalf("StatusCode(%d) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfAndSafeMessage(t *testing.T) {
	err := New(NotFound, "pack not found")
	if KindOf(err) != NotFound {
		t.Fatalf("expected NotFound kind")
	}
	if SafeMessage(err) != "pack not found" {
		t.Fatalf("unexpected safe message %q", SafeMessage(err))
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if KindOf(wrapped) != NotFound {
		t.Fatalf("expected kind to survive wrapping")
	}

	plain := errors.New("connection refused")
	if KindOf(plain) != Persistence {
		t.Fatalf("expected unknown errors to default to Persistence")
	}
	if SafeMessage(plain) != "internal server error" {
		t.Fatalf("expected generic message for unknown errors, got %q", SafeMessage(plain))
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("invalid pack id %q", "abc")
	if KindOf(err) != Validation {
		t.Fatalf("expected Validation kind")
	}
	if SafeMessage(err) != `invalid pack id "abc"` {
		t.Fatalf("unexpected message %q", SafeMessage(err))
	}
}

func TestWrapKeepsCauseOutOfSafeMessage(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
	err := Wrap(Persistence, "failed to load packs", cause)

	if SafeMessage(err) != "failed to load packs" {
		t.Fatalf("safe message leaked: %q", SafeMessage(err))
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to stay in the chain for logging")
	}
}

func TestFromDB(t *testing.T) {
	if KindOf(FromDB(gorm.ErrRecordNotFound, "story not found")) != NotFound {
		t.Fatalf("expected ErrRecordNotFound to map to NotFound")
	}
	if SafeMessage(FromDB(gorm.ErrRecordNotFound, "story not found")) != "story not found" {
		t.Fatalf("expected the caller-provided not-found message")
	}
	if KindOf(FromDB(gorm.ErrDuplicatedKey, "x")) != Conflict {
		t.Fatalf("expected ErrDuplicatedKey to map to Conflict")
	}
	if KindOf(FromDB(errors.New("bad connection"), "x")) != Persistence {
		t.Fatalf("expected unknown db errors to map to Persistence")
	}
}
