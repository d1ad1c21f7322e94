package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dao"
	"ssc-pay-api/internal/dto"
	ordermodel "ssc-pay-api/internal/model/order"
)

// memStore 内存订单存储, 语义口径对齐 dao.OrderDao:
// 未命中返回 (nil, nil); 撞号/身份已写入分别返回 dao 哨兵错误
type memStore struct {
	mu     sync.Mutex
	orders map[uint64]*ordermodel.ShopOrder
	codes  map[int64]uint64

	claims     int // ClaimIdentity 调用计数
	claimFails int // 前 N 次 ClaimIdentity 模拟撞号
}

func newMemStore(orders ...*ordermodel.ShopOrder) *memStore {
	s := &memStore{
		orders: make(map[uint64]*ordermodel.ShopOrder),
		codes:  make(map[int64]uint64),
	}
	for _, o := range orders {
		cp := *o
		s.orders[o.ID] = &cp
		if o.OrderCode != nil {
			s.codes[*o.OrderCode] = o.ID
		}
	}
	return s
}

func (s *memStore) GetByID(id uint64) (*ordermodel.ShopOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *memStore) GetByOrderCode(code int64) (*ordermodel.ShopOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.codes[code]
	if !ok {
		return nil, nil
	}
	cp := *s.orders[id]
	return &cp, nil
}

func (s *memStore) ClaimIdentity(id uint64, code int64, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims++
	if s.claimFails > 0 {
		s.claimFails--
		return dao.ErrOrderCodeTaken
	}
	o, ok := s.orders[id]
	if !ok || o.OrderCode != nil {
		return dao.ErrIdentityClaimed
	}
	if _, dup := s.codes[code]; dup {
		return dao.ErrOrderCodeTaken
	}
	o.OrderCode = &code
	o.PaymentID = &paymentID
	s.codes[code] = id
	return nil
}

func (s *memStore) ApplyOutcome(id uint64, outcome dto.PaymentOutcomeVo) (*ordermodel.ShopOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	if o.Terminal() && o.OrderStatus != outcome.OrderStatus {
		return nil, dao.ErrStateConflict
	}
	o.OrderStatus = outcome.OrderStatus
	pid := outcome.PayosPaymentID
	o.PayosPaymentID = &pid
	if outcome.Status != "" {
		o.Status = outcome.Status
	}
	if outcome.PaidAt != nil && o.PaidAt == nil {
		at := *outcome.PaidAt
		o.PaidAt = &at
	}
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func newTestOrder(id uint64, total int64) *ordermodel.ShopOrder {
	return &ordermodel.ShopOrder{
		ID:          id,
		TotalPrice:  decimal.NewFromInt(total),
		OrderStatus: ordermodel.OrderStatusOrdered,
		Status:      ordermodel.PayStatusPending,
	}
}

func withIdentity(o *ordermodel.ShopOrder, code int64, pid string) *ordermodel.ShopOrder {
	o.OrderCode = &code
	o.PaymentID = &pid
	return o
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("期望业务错误, 实际为 nil")
	}
	var ce constant.Error
	if !errors.As(err, &ce) {
		t.Fatalf("期望 constant.Error, 实际: %v", err)
	}
	return ce.Code()
}
