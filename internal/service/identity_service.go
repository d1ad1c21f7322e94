package service

import (
	"errors"
	"log"
	"math/rand"
	"strconv"

	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dao"
	ordermodel "ssc-pay-api/internal/model/order"
)

// 支付单号取 9 位随机数, 落在网关安全整数范围内
const (
	orderCodeMin = 100000000
	orderCodeMax = 999999999
)

// OrderIdentityService 负责订单支付身份的一次性铸造
// 约定: payment_id 恒为 order_code 的十进制字符串, 下单与验签两侧口径一致
type OrderIdentityService struct {
	store    OrderStore
	maxRetry int
}

func NewOrderIdentityService(store OrderStore, maxRetry int) *OrderIdentityService {
	if maxRetry <= 0 {
		maxRetry = 5
	}
	return &OrderIdentityService{store: store, maxRetry: maxRetry}
}

// EnsureIdentity 幂等铸造 (orderCode, paymentId)
// 已有值直接返回, 不产生第二次写; 撞号依赖唯一索引识别并换号重试
// 只返回已落库的标识, 不在内存里推导缺失的 paymentId
func (s *OrderIdentityService) EnsureIdentity(order *ordermodel.ShopOrder) (int64, string, error) {
	if order.OrderCode != nil {
		if order.PaymentID == nil || *order.PaymentID == "" {
			// 半写入的身份行, 原子铸造下不该出现, 宁可失败也不返回未落库的推导值
			log.Printf("[IDENTITY] order %d 身份行缺 paymentId, orderCode=%d", order.ID, *order.OrderCode)
			return 0, "", constant.NewError(constant.CodeOrderStateInvalid)
		}
		return *order.OrderCode, *order.PaymentID, nil
	}

	for attempt := 1; attempt <= s.maxRetry; attempt++ {
		code := randomOrderCode()
		pid := strconv.FormatInt(code, 10)

		err := s.store.ClaimIdentity(order.ID, code, pid)
		if err == nil {
			order.OrderCode = &code
			order.PaymentID = &pid
			return code, pid, nil
		}
		if errors.Is(err, dao.ErrOrderCodeTaken) {
			// 撞号, 换号重试
			log.Printf("[IDENTITY] order %d 撞号重试 (%d/%d): code=%d", order.ID, attempt, s.maxRetry, code)
			continue
		}
		if errors.Is(err, dao.ErrIdentityClaimed) {
			// 并发首次 checkout 已抢先写入, 回读既有值
			fresh, gErr := s.store.GetByID(order.ID)
			if gErr != nil || fresh == nil || fresh.OrderCode == nil || fresh.PaymentID == nil || *fresh.PaymentID == "" {
				return 0, "", constant.NewError(constant.CodeDatabaseError)
			}
			*order = *fresh
			return *fresh.OrderCode, *fresh.PaymentID, nil
		}
		return 0, "", constant.NewError(constant.CodeDatabaseError)
	}
	return 0, "", constant.NewError(constant.CodeDatabaseError)
}

func randomOrderCode() int64 {
	return orderCodeMin + rand.Int63n(orderCodeMax-orderCodeMin+1)
}
