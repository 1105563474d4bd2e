package domain

import "errors"

var (
	// ErrInvalidInput signals a malformed or empty request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrVectorStoreError signals a vector store failure.
	ErrVectorStoreError = errors.New("vector store error")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrLLMProviderError signals a chat completion failure.
	ErrLLMProviderError = errors.New("llm provider error")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrNotImplemented signals an unconfigured feature.
	ErrNotImplemented = errors.New("not implemented")
)
