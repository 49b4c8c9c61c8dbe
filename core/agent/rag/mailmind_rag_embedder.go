// Package rag provides the in-memory semantic retrieval engine behind
// MailMind's AI routes: a deterministic hashed bag-of-words embedder, a
// capped embedding store, and cosine-similarity retrieval with
// sender-aware filtering.
package rag

import (
	"context"
	"math"
)

// DefaultDimension is the embedding vector dimension.
const DefaultDimension = 128

// Embedder produces fixed-dimension embeddings for similarity search.
// The context is part of the contract so a network-backed embedding
// model can be swapped in later; HashEmbedder never blocks on it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// HashEmbedder is a deterministic bag-of-words embedder. Each token is
// hashed to one of Dimension buckets and counted, then the vector is
// unit-normalized. No model, no I/O, collisions intentional.
type HashEmbedder struct {
	dimension int
}

// NewHashEmbedder creates a hash embedder. Non-positive dimensions fall
// back to DefaultDimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashEmbedder{dimension: dimension}
}

// Dimension returns the embedding vector dimension.
func (e *HashEmbedder) Dimension() int {
	return e.dimension
}

// Embed implements Embedder. It never fails; malformed input degrades
// to the zero vector so retrieval stays best-effort.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	return e.EmbedText(text), nil
}

// EmbedText produces the embedding synchronously.
func (e *HashEmbedder) EmbedText(text string) []float64 {
	vec := make([]float64, e.dimension)

	for _, token := range tokenize(text) {
		vec[hashToken(token)%int64(e.dimension)]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	// Zero vector (no tokens) is preserved as-is.
	return vec
}

// tokenize extracts maximal runs of word characters (letters, digits,
// underscore), lowercased. Everything else is a separator.
func tokenize(text string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(text); i++ {
		if isWordByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, lowerASCII(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, lowerASCII(text[start:]))
	}
	return tokens
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

// hashToken is a polynomial rolling hash (hash*31 + char) accumulated
// with 32-bit signed wraparound. The wraparound is load-bearing: it
// keeps bucket assignments, and therefore similarity rankings,
// reproducible across implementations.
func hashToken(token string) int64 {
	var hash int32
	for i := 0; i < len(token); i++ {
		hash = hash*31 + int32(token[i])
	}
	// Absolute value in 64 bits so math.MinInt32 stays positive.
	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return h
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when dimensions mismatch or either vector has zero norm.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (normA * normB)
}
