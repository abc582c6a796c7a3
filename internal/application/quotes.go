package application

import (
	"sync"
	"time"

	"swapcore/internal/domain"
)

// QuoteRecord is the last known quote state for a sell token on a chain.
// There is at most one live record per (chain, token) key; every refetch,
// successful or not, overwrites it.
type QuoteRecord struct {
	Params    domain.QuoteParams
	Fee       *domain.FeeInformation
	Price     *domain.PriceInformation
	Error     domain.QuoteErrorKind
	LastCheck time.Time
}

// UnsupportedTokenEntry marks a token the remote API refused to quote. The
// entry is removed automatically once a later quote for the token succeeds.
type UnsupportedTokenEntry struct {
	ChainID   domain.ChainID
	Address   domain.Address
	DateAdded time.Time
}

// QuoteStore holds quote records and the unsupported-token set. Single
// logical writer (the quote engine), many readers.
type QuoteStore struct {
	mu          sync.RWMutex
	quotes      map[domain.ChainID]map[domain.Address]QuoteRecord
	unsupported map[domain.ChainID]map[domain.Address]UnsupportedTokenEntry
	now         func() time.Time
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		quotes:      make(map[domain.ChainID]map[domain.Address]QuoteRecord),
		unsupported: make(map[domain.ChainID]map[domain.Address]UnsupportedTokenEntry),
		now:         time.Now,
	}
}

// Update writes a successful quote for its (chain, sellToken) key.
func (s *QuoteStore) Update(params domain.QuoteParams, fee domain.FeeInformation, price domain.PriceInformation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(QuoteRecord{Params: params, Fee: &fee, Price: &price})
}

// SetError records a failed quote, clearing any previous fee and price.
func (s *QuoteStore) SetError(params domain.QuoteParams, kind domain.QuoteErrorKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(QuoteRecord{Params: params, Error: kind})
}

// put stamps LastCheck, keeping it strictly increasing per key even under a
// coarse clock.
func (s *QuoteStore) put(rec QuoteRecord) {
	chain := s.quotes[rec.Params.ChainID]
	if chain == nil {
		chain = make(map[domain.Address]QuoteRecord)
		s.quotes[rec.Params.ChainID] = chain
	}
	rec.LastCheck = s.now()
	if prev, ok := chain[rec.Params.SellToken]; ok && !rec.LastCheck.After(prev.LastCheck) {
		rec.LastCheck = prev.LastCheck.Add(time.Nanosecond)
	}
	chain[rec.Params.SellToken] = rec
}

// Clear drops the record for a (chain, token) key.
func (s *QuoteStore) Clear(chainID domain.ChainID, token domain.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quotes[chainID], token)
}

// Last returns the live record for a (chain, token) key.
func (s *QuoteStore) Last(chainID domain.ChainID, token domain.Address) (QuoteRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.quotes[chainID][token]
	return rec, ok
}

func (s *QuoteStore) AddUnsupported(chainID domain.ChainID, token domain.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chain := s.unsupported[chainID]
	if chain == nil {
		chain = make(map[domain.Address]UnsupportedTokenEntry)
		s.unsupported[chainID] = chain
	}
	chain[token] = UnsupportedTokenEntry{ChainID: chainID, Address: token, DateAdded: s.now()}
}

func (s *QuoteStore) RemoveUnsupported(chainID domain.ChainID, token domain.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unsupported[chainID], token)
}

func (s *QuoteStore) IsUnsupported(chainID domain.ChainID, token domain.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.unsupported[chainID][token]
	return ok
}
