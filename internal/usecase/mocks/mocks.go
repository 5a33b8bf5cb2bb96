package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// MockAccountReader is a mock implementation of AccountReader.
type MockAccountReader struct {
	mu       sync.RWMutex
	accounts map[string]*domain.AccountSnapshot

	GetByNumberFunc func(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error)
}

func NewMockAccountReader() *MockAccountReader {
	return &MockAccountReader{
		accounts: make(map[string]*domain.AccountSnapshot),
	}
}

// Put seeds a snapshot for the default lookup behavior.
func (m *MockAccountReader) Put(snapshot *domain.AccountSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[snapshot.AccountNumber] = snapshot
}

func (m *MockAccountReader) GetByNumber(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, accountNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[accountNumber]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

// MockAggregateReader is a mock implementation of AggregateReader.
type MockAggregateReader struct {
	mu     sync.RWMutex
	totals map[string]decimal.Decimal

	TotalFunc func(ctx context.Context, accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod, referenceDate time.Time) (decimal.Decimal, error)
}

func NewMockAggregateReader() *MockAggregateReader {
	return &MockAggregateReader{
		totals: make(map[string]decimal.Decimal),
	}
}

// SetTotal seeds the posted total for an account, kind, and period.
func (m *MockAggregateReader) SetTotal(accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod, total decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals[aggregateKey(accountNumber, kind, period)] = total
}

func (m *MockAggregateReader) Total(ctx context.Context, accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod, referenceDate time.Time) (decimal.Decimal, error) {
	if m.TotalFunc != nil {
		return m.TotalFunc(ctx, accountNumber, kind, period, referenceDate)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if total, ok := m.totals[aggregateKey(accountNumber, kind, period)]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func aggregateKey(accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod) string {
	return accountNumber + "|" + string(kind) + "|" + string(period)
}

// MockDecisionRepository is a mock implementation of DecisionRepository.
type MockDecisionRepository struct {
	mu        sync.RWMutex
	decisions map[string]*domain.Decision
	order     []string

	CreateFunc  func(ctx context.Context, decision *domain.Decision) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Decision, error)
	ListFunc    func(ctx context.Context, filter domain.DecisionFilter) ([]*domain.Decision, error)
}

func NewMockDecisionRepository() *MockDecisionRepository {
	return &MockDecisionRepository{
		decisions: make(map[string]*domain.Decision),
	}
}

func (m *MockDecisionRepository) Create(ctx context.Context, decision *domain.Decision) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, decision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[decision.ID] = decision
	m.order = append(m.order, decision.ID)
	return nil
}

func (m *MockDecisionRepository) GetByID(ctx context.Context, id string) (*domain.Decision, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.decisions[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDecisionNotFound
}

func (m *MockDecisionRepository) List(ctx context.Context, filter domain.DecisionFilter) ([]*domain.Decision, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var decisions []*domain.Decision
	for _, id := range m.order {
		d := m.decisions[id]
		if filter.AccountNumber != "" && d.SourceAccountNumber != filter.AccountNumber {
			continue
		}
		if filter.Kind != "" && d.Kind != filter.Kind {
			continue
		}
		if filter.RejectedOnly && d.Eligible {
			continue
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		values: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte("processing")
	}
	m.values[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
