package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestProviderError_MessageAndKind(t *testing.T) {
	inner := errors.New("boom")
	err := fmt.Errorf("query index: %w", NewProviderError(ErrVectorStoreError, inner))

	if !errors.Is(err, ErrVectorStoreError) {
		t.Error("expected ErrVectorStoreError in chain")
	}
	if !errors.Is(err, inner) {
		t.Error("expected inner error in chain")
	}
	if got := ProviderMessage(err); got != "boom" {
		t.Errorf("ProviderMessage = %q, want %q", got, "boom")
	}
}

func TestProviderMessage_Plain(t *testing.T) {
	if got := ProviderMessage(errors.New("plain")); got != "plain" {
		t.Errorf("ProviderMessage = %q", got)
	}
}

func TestNewProviderError_Nil(t *testing.T) {
	if NewProviderError(ErrVectorStoreError, nil) != nil {
		t.Error("nil error must stay nil")
	}
}
