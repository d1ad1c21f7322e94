package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"ssc-pay-api/internal/config"
	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dal"
	"ssc-pay-api/internal/dao"
	"ssc-pay-api/internal/dto"
	"ssc-pay-api/internal/gateway"
	ordermodel "ssc-pay-api/internal/model/order"
	"ssc-pay-api/internal/utils"
)

// GatewayClient 支付网关契约: 提交已签名负载, 换收银台跳转地址
type GatewayClient interface {
	CreatePaymentLink(ctx context.Context, intent *dto.PaymentIntent) (string, error)
}

// CheckoutService 发起支付: 铸造身份 -> 组装签名负载 -> 请求网关
type CheckoutService struct {
	store    OrderStore
	identity *OrderIdentityService
	builder  *PaymentIntentBuilder
	gw       GatewayClient
}

func NewCheckoutService() *CheckoutService {
	store := dao.NewOrderDao()
	return &CheckoutService{
		store:    store,
		identity: NewOrderIdentityService(store, config.C.Order.CodeRetry),
		builder:  NewPaymentIntentBuilder(config.C.Payos.ChecksumKey, config.C.Frontend.BaseUrl),
		gw:       gateway.NewPayosClient(config.C.Payos),
	}
}

// Checkout 处理发起支付请求
func (s *CheckoutService) Checkout(ctx context.Context, req dto.CheckoutReq) (dto.CheckoutResp, error) {
	var resp dto.CheckoutResp

	id, err := strconv.ParseUint(strings.TrimSpace(req.OrderID), 10, 64)
	if err != nil || id == 0 {
		return resp, constant.NewError(constant.CodeOrderNotFound)
	}

	// 1) 定位订单
	order, err := s.store.GetByID(id)
	if err != nil {
		return resp, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return resp, constant.NewError(constant.CodeOrderNotFound)
	}

	// 2) 幂等铸造支付身份
	if _, _, err := s.identity.EnsureIdentity(order); err != nil {
		return resp, err
	}

	// 3) 组装并签名支付负载
	intent, err := s.builder.BuildIntent(order)
	if err != nil {
		return resp, err
	}

	// 4) 请求网关换取收银台链接
	payUrl, err := s.gw.CreatePaymentLink(ctx, intent)
	if err != nil {
		return resp, err
	}

	// 5) 短期缓存订单快照
	cacheOrder(order)

	resp.Success = true
	resp.PaymentURL = payUrl
	log.Printf("[CHECKOUT] 下单成功, order=%d, orderCode=%d", order.ID, *order.OrderCode)
	return resp, nil
}

// cacheOrder 缓存到 redis（短期, 查询接口读穿透用）
func cacheOrder(m *ordermodel.ShopOrder) {
	if dal.RedisClient == nil || m == nil {
		return
	}
	cacheKey := "order:" + strconv.FormatUint(m.ID, 10)
	_ = dal.RedisClient.Set(dal.RedisCtx, cacheKey, utils.MapToJSON(m), 10*time.Minute).Err()
}
