package payments

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrMockProvider = errors.New("mock provider error")
	ErrMockStore    = errors.New("mock store error")
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	PushFunc  func(ctx context.Context, req STKPushRequest) (STKPushResponse, error)
	CallCount int
	LastReq   STKPushRequest
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) STKPush(ctx context.Context, req STKPushRequest) (STKPushResponse, error) {
	m.CallCount++
	m.LastReq = req
	if m.PushFunc != nil {
		return m.PushFunc(ctx, req)
	}
	return STKPushResponse{
		MerchantRequestID: "mr-0001",
		CheckoutRequestID: "cr-0001",
		ResponseCode:      "0",
	}, nil
}

type correlationKey struct{ mrid, crid string }

// MockStore implements Store for testing. Resolve mirrors the production
// read-check-write semantics against an in-memory map.
type MockStore struct {
	Records     map[correlationKey]*Payment
	Events      []CallbackEvent
	CreateCalls int
	FailCreate  bool
	FailResolve bool
}

func NewMockStore() *MockStore {
	return &MockStore{Records: map[correlationKey]*Payment{}}
}

func (m *MockStore) Put(p Payment) {
	m.Records[correlationKey{p.MerchantRequestID, p.CheckoutRequestID}] = &p
}

func (m *MockStore) Create(_ context.Context, p *Payment) error {
	m.CreateCalls++
	if m.FailCreate {
		return ErrMockStore
	}
	key := correlationKey{p.MerchantRequestID, p.CheckoutRequestID}
	if _, exists := m.Records[key]; exists {
		return ErrMockStore
	}
	cp := *p
	m.Records[key] = &cp
	return nil
}

func (m *MockStore) LatestBySale(_ context.Context, saleID string) (Payment, error) {
	var found *Payment
	for _, p := range m.Records {
		if p.SaleID == saleID && (found == nil || p.CreatedAt.After(found.CreatedAt)) {
			found = p
		}
	}
	// mirror the gorm repo so handler tests see the same sentinel
	if found == nil {
		return Payment{}, gorm.ErrRecordNotFound
	}
	return *found, nil
}

func (m *MockStore) List(_ context.Context) ([]Payment, error) {
	out := make([]Payment, 0, len(m.Records))
	for _, p := range m.Records {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockStore) Resolve(_ context.Context, mrid, crid string, out Outcome, raw []byte) (ResolveStatus, error) {
	if m.FailResolve {
		return 0, ErrMockStore
	}

	p, ok := m.Records[correlationKey{mrid, crid}]
	if !ok {
		m.Events = append(m.Events, CallbackEvent{Outcome: OutcomeUnknown})
		return ResolveUnknown, nil
	}
	if p.Terminal() {
		m.Events = append(m.Events, CallbackEvent{Outcome: OutcomeDuplicate})
		return ResolveDuplicate, nil
	}
	p.Amount = out.Amount
	p.TransactionCode = out.TransactionCode
	m.Events = append(m.Events, CallbackEvent{Outcome: OutcomeApplied})
	return ResolveApplied, nil
}

func (m *MockStore) RecordEvent(_ context.Context, ev *CallbackEvent) error {
	m.Events = append(m.Events, *ev)
	return nil
}
