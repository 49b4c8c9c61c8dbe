package rag

import (
	"context"
	"sort"

	"mailmind_server/pkg/logger"
)

// DefaultTopK is the result-count limit used when callers pass none.
const DefaultTopK = 3

// SimilarEmail is one retrieval result with its similarity score.
type SimilarEmail struct {
	EmailID    string  `json:"email_id"`
	Subject    string  `json:"subject"`
	Body       string  `json:"body"`
	From       string  `json:"from"`
	Similarity float64 `json:"similarity"`
}

// Query describes one similarity search.
type Query struct {
	Text           string
	TopK           int
	ExcludeEmailID string // drop this record even if it ranks first
	SenderFilter   string // prefer records from this sender, free-form
}

// Retriever runs cosine-similarity nearest-neighbor search over the
// store, with optional sender scoping.
type Retriever struct {
	embedder Embedder
	store    *Store
	log      *logger.Logger
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(embedder Embedder, store *Store) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		log:      logger.WithField("component", "rag_retriever"),
	}
}

// FindSimilar returns up to TopK stored emails ranked by descending
// cosine similarity to the query text. An empty store or an empty
// candidate set yields an empty slice, never an error: retrieval is
// best-effort context, not a primary workflow.
//
// When SenderFilter is set, candidates are restricted to that sender's
// prior emails; if the sender has no history the search falls back to
// all candidates rather than returning nothing.
func (r *Retriever) FindSimilar(ctx context.Context, q Query) ([]SimilarEmail, error) {
	records := r.store.snapshot()
	if len(records) == 0 {
		r.log.Debug("no emails in embedding store")
		return []SimilarEmail{}, nil
	}

	topK := q.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmbedding, err := r.embedder.Embed(ctx, q.Text)
	if err != nil {
		// Degrade to no context instead of failing the caller's request.
		r.log.WithError(err).Warn("query embedding failed")
		return []SimilarEmail{}, nil
	}

	candidates := make([]*EmailRecord, 0, len(records))
	for _, rec := range records {
		if q.ExcludeEmailID != "" && rec.EmailID == q.ExcludeEmailID {
			continue
		}
		candidates = append(candidates, rec)
	}

	if q.SenderFilter != "" {
		wanted := NormalizeAddress(q.SenderFilter)
		fromSender := make([]*EmailRecord, 0, len(candidates))
		for _, rec := range candidates {
			if NormalizeAddress(rec.From) == wanted {
				fromSender = append(fromSender, rec)
			}
		}
		if len(fromSender) > 0 {
			candidates = fromSender
		} else {
			r.log.Debug("no prior emails from %s, falling back to global search", wanted)
		}
	}

	results := make([]SimilarEmail, len(candidates))
	for i, rec := range candidates {
		results[i] = SimilarEmail{
			EmailID:    rec.EmailID,
			Subject:    rec.Subject,
			Body:       rec.Body,
			From:       rec.From,
			Similarity: cosineSimilarity(queryEmbedding, rec.Embedding),
		}
	}

	// Stable: ties keep store order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
