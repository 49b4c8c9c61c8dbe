package rag

import (
	"context"
	"sync"
	"time"

	"mailmind_server/core/domain"
	"mailmind_server/pkg/logger"
)

// DefaultMaxRecords caps the store to bound memory use.
const DefaultMaxRecords = 500

// EmailRecord is the unit of storage: one indexed email with its
// embedding. Text fields are copied verbatim at ingestion time.
type EmailRecord struct {
	EmailID   string
	Subject   string
	Body      string
	From      string
	Embedding []float64
	Timestamp time.Time
}

// Stats reports aggregate store state. Oldest and Newest follow current
// store order, which approximates chronological order: an upserted
// record keeps its original slot, so its refreshed timestamp does not
// move it to the back.
type Stats struct {
	Count  int        `json:"total_emails"`
	Oldest *time.Time `json:"oldest_email"`
	Newest *time.Time `json:"newest_email"`
}

// BatchResult reports the outcome of a batch initialization.
type BatchResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
}

// Store is a capped in-memory embedding store. It is process-lifetime
// state with no persistence: a rebuildable cache, not a system of
// record. Construct one in bootstrap and pass the handle around; fiber
// runs handlers on parallel goroutines, so all read-modify-write
// sequences hold the mutex.
type Store struct {
	mu         sync.RWMutex
	records    []*EmailRecord
	byID       map[string]int
	embedder   Embedder
	maxRecords int
	log        *logger.Logger
}

// NewStore creates an empty store. Non-positive maxRecords falls back
// to DefaultMaxRecords.
func NewStore(embedder Embedder, maxRecords int) *Store {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Store{
		byID:       make(map[string]int),
		embedder:   embedder,
		maxRecords: maxRecords,
		log:        logger.WithField("component", "rag_store"),
	}
}

// Upsert embeds subject+body and inserts or replaces the record keyed
// by emailID. An existing record is overwritten in place and keeps its
// slot, so eviction order stays FIFO by original insertion. The record
// is written whole or not at all.
func (s *Store) Upsert(ctx context.Context, emailID, subject, body, from string) error {
	embedding, err := s.embedder.Embed(ctx, subject+" "+body)
	if err != nil {
		return err
	}

	record := &EmailRecord{
		EmailID:   emailID,
		Subject:   subject,
		Body:      body,
		From:      from,
		Embedding: embedding,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.byID[emailID]; ok {
		s.records[idx] = record
		return nil
	}

	s.records = append(s.records, record)
	s.byID[emailID] = len(s.records) - 1

	// Evict oldest insertions beyond the cap.
	if len(s.records) > s.maxRecords {
		evicted := len(s.records) - s.maxRecords
		for _, old := range s.records[:evicted] {
			delete(s.byID, old.EmailID)
		}
		s.records = append([]*EmailRecord(nil), s.records[evicted:]...)
		for i, r := range s.records {
			s.byID[r.EmailID] = i
		}
		s.log.Debug("evicted %d oldest records, store at cap %d", evicted, s.maxRecords)
	}

	return nil
}

// InitializeBatch upserts each email in order. A failure on one email
// never aborts the rest; the caller gets the aggregate count.
func (s *Store) InitializeBatch(ctx context.Context, emails []domain.Email) BatchResult {
	result := BatchResult{Attempted: len(emails)}

	for _, email := range emails {
		if err := s.Upsert(ctx, email.ID, email.Subject, email.Content(), email.From); err != nil {
			s.log.WithError(err).Warn("failed to index email %s", email.ID)
			continue
		}
		result.Succeeded++
	}

	s.log.Info("batch initialization: %d/%d emails indexed, store size %d",
		result.Succeeded, result.Attempted, s.Count())
	return result
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// GetStats returns the current record count and the timestamps at both
// ends of store order. Nil timestamps mean the store is empty.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Count: len(s.records)}
	if len(s.records) > 0 {
		oldest := s.records[0].Timestamp
		newest := s.records[len(s.records)-1].Timestamp
		stats.Oldest = &oldest
		stats.Newest = &newest
	}
	return stats
}

// snapshot returns the current records under the read lock. Records are
// never mutated after insertion, so sharing the pointers is safe.
func (s *Store) snapshot() []*EmailRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*EmailRecord, len(s.records))
	copy(out, s.records)
	return out
}
