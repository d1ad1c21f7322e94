package dto

import (
	"strconv"

	"ssc-pay-api/internal/utils"
)

// PaymentIntent 发往 PAYOS 的下单负载
// 字段集合封闭, 保证规范化签名口径固定; 数字一律十进制整数字符串
type PaymentIntent struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	CancelUrl   string `json:"cancelUrl"`
	ReturnUrl   string `json:"returnUrl"`
	Signature   string `json:"signature"`
}

// SignParams 最终签名口径: 除 signature 外的全部负载字段
func (p PaymentIntent) SignParams() map[string]string {
	return map[string]string{
		"orderCode":   strconv.FormatInt(p.OrderCode, 10),
		"amount":      strconv.FormatInt(p.Amount, 10),
		"description": p.Description,
		"cancelUrl":   p.CancelUrl,
		"returnUrl":   p.ReturnUrl,
	}
}

// PayosCreateResp PAYOS 下单响应
type PayosCreateResp struct {
	Code utils.StringOrNumber `json:"code"`
	Desc string               `json:"desc"`
	Data struct {
		PaymentLinkID utils.StringOrNumber `json:"paymentLinkId"`
		CheckoutUrl   string               `json:"checkoutUrl"`
		Status        string               `json:"status"`
	} `json:"data"`
}
