package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/persistence/middleware"
	"github.com/aretw0/zconv/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newSealed(t *testing.T, next ports.HistoryStore, cfg middleware.EncryptionConfig) ports.HistoryStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware failed: %v", err)
	}
	return mw(next)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store := newSealed(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunHistoryStoreContract(t, store)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := newSealed(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	if err := secureStore.Append(ctx, domain.Record{Input: "my-secret-sauce", Output: []int{1, 2}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// The underlying store only sees ciphertext
	stored, err := underlyingStore.List(ctx)
	if err != nil {
		t.Fatalf("Underlying list failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored record, got %d", len(stored))
	}
	if stored[0].Input != "" || stored[0].Output != nil {
		t.Fatalf("Expected plain fields to be hidden, found: %+v", stored[0])
	}
	if stored[0].Sealed == "" || strings.Contains(stored[0].Sealed, "secret") {
		t.Fatalf("Expected an opaque sealed payload, got %q", stored[0].Sealed)
	}

	loaded, err := secureStore.List(ctx)
	if err != nil {
		t.Fatalf("List via middleware failed: %v", err)
	}
	if loaded[0].Input != "my-secret-sauce" || len(loaded[0].Output) != 2 {
		t.Errorf("Unexpected decrypted record: %+v", loaded[0])
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	old := newSealed(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: oldKey})
	if err := old.Append(ctx, domain.Record{Input: "encrypted-with-old-key", Output: []int{2}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// New active key, old one as fallback
	rotated := newSealed(t, underlyingStore, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	if err := rotated.Append(ctx, domain.Record{Input: "encrypted-with-new-key", Output: []int{3}}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	recs, err := rotated.List(ctx)
	if err != nil {
		t.Fatalf("List with rotation failed: %v", err)
	}
	if len(recs) != 2 || recs[0].Input != "encrypted-with-old-key" || recs[1].Input != "encrypted-with-new-key" {
		t.Errorf("Unexpected records: %+v", recs)
	}

	// Without the fallback, the old record cannot be read
	strict := newSealed(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: newKey})
	if _, err := strict.List(ctx); err == nil {
		t.Error("Expected decryption failure without fallback key")
	}
}

func TestEncryptionMiddleware_RejectsPlainRecords(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	_ = underlyingStore.Append(ctx, domain.Record{Input: "plain", Output: []int{1}})

	secureStore := newSealed(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err := secureStore.List(ctx)
	if !errors.Is(err, middleware.ErrNotSealed) {
		t.Fatalf("Expected ErrNotSealed, got %v", err)
	}
}

func TestNewEncryptionMiddleware_KeySize(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")}); err == nil {
		t.Error("Expected error for short key")
	}
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if string(got) != string(key) {
		t.Error("ParseKey returned a different key")
	}

	if _, err := middleware.ParseKey("not base64!"); err == nil {
		t.Error("Expected error for invalid base64")
	}
	if _, err := middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Error("Expected error for short key")
	}
}
