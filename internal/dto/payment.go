package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ssc-pay-api/internal/utils"
)

// CheckoutReq 发起支付请求
type CheckoutReq struct {
	OrderID string `json:"orderId" binding:"required"`
}

// CheckoutResp 发起支付响应
type CheckoutResp struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"paymentUrl"`
}

// VerifyOrderPayload 验证回调中的订单子对象, 即参与验签的字段集合
// orderCode 兼容 string/number 两种 JSON 形态
type VerifyOrderPayload struct {
	OrderCode utils.StringOrNumber `json:"orderCode"`
	Status    string               `json:"status"`
	PaymentID string               `json:"paymentId"`
}

// SignParams 验签口径: 与回调方发来的原始字符串形态保持一致
func (p VerifyOrderPayload) SignParams() map[string]string {
	return map[string]string{
		"orderCode": strings.TrimSpace(p.OrderCode.String()),
		"status":    p.Status,
		"paymentId": p.PaymentID,
	}
}

// VerifyReq 支付结果验证请求（网关回调或 COD 确认）
type VerifyReq struct {
	Signature     string             `json:"signature"`
	Order         VerifyOrderPayload `json:"order" binding:"required"`
	PaymentMethod string             `json:"paymentMethod"`
}

// VerifyResp 支付结果验证响应
type VerifyResp struct {
	Success bool     `json:"success"`
	Order   *OrderVO `json:"order"`
}

// OrderVO 订单支付视图
type OrderVO struct {
	ID                 uint64              `json:"id"`
	OrderCode          *int64              `json:"orderCode"`
	PaymentID          *string             `json:"paymentId"`
	TotalPrice         decimal.Decimal     `json:"totalPrice"`
	PriceAfterDiscount decimal.NullDecimal `json:"priceAfterDiscount"`
	OrderStatus        string              `json:"orderStatus"`
	Status             string              `json:"status"`
	PayosPaymentID     *string             `json:"payosPaymentId"`
	PaidAt             *time.Time          `json:"paidAt"`
}

// PaymentOutcomeVo 待落库的支付终态字段
// PaidAt/Status 为空表示该字段不变更
type PaymentOutcomeVo struct {
	OrderStatus    string
	Status         string
	PayosPaymentID string
	PaidAt         *time.Time
}

// PaymentAuditPayload 支付审计日志负载
type PaymentAuditPayload struct {
	OrderID      uint64
	TraceID      string
	Kind         string
	RequestBody  string
	ResponseBody string
	Status       string
	ErrorMsg     string
	IP           string
	UserAgent    string
	LatencyMs    int64
	CreatedAt    time.Time
}
