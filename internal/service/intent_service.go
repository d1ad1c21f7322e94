package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dto"
	ordermodel "ssc-pay-api/internal/model/order"
	"ssc-pay-api/internal/utils"
)

// PAYOS 对 description 的长度上限
const descriptionMaxLen = 25

const descriptionPrefix = "Thanh toan don "

// PaymentIntentBuilder 组装并签名发往网关的下单负载
// 密钥与跳转地址经构造函数显式注入, 不读全局环境
type PaymentIntentBuilder struct {
	checksumKey string
	frontendUrl string
}

func NewPaymentIntentBuilder(checksumKey, frontendUrl string) *PaymentIntentBuilder {
	return &PaymentIntentBuilder{
		checksumKey: checksumKey,
		frontendUrl: strings.TrimRight(frontendUrl, "/"),
	}
}

// BuildIntent 构造已签名的支付负载, 不做网络请求
// 前置条件: 订单身份已铸造
func (b *PaymentIntentBuilder) BuildIntent(order *ordermodel.ShopOrder) (*dto.PaymentIntent, error) {
	if order.OrderCode == nil || order.PaymentID == nil {
		return nil, constant.NewError(constant.CodeOrderStateInvalid)
	}
	code := *order.OrderCode
	pid := *order.PaymentID

	amount, err := resolveAmount(order)
	if err != nil {
		return nil, err
	}

	intent := &dto.PaymentIntent{
		OrderCode:   code,
		Amount:      amount,
		Description: buildDescription(code),
		CancelUrl:   b.redirectUrl("/cancel", code, pid, ordermodel.PayStatusCancelled),
		ReturnUrl:   b.redirectUrl("/success", code, pid, ordermodel.PayStatusPaid),
	}
	// 最终签名覆盖除 signature 外的全部负载字段
	intent.Signature = utils.GenerateSign(intent.SignParams(), b.checksumKey)
	return intent, nil
}

// redirectUrl 生成自校验跳转地址
// 查询参数若被原样转投到验证接口, 必须能通过验签, 故按验签口径单独签名
func (b *PaymentIntentBuilder) redirectUrl(path string, code int64, pid, status string) string {
	sub := dto.VerifyOrderPayload{
		OrderCode: utils.StringOrNumber(strconv.FormatInt(code, 10)),
		Status:    status,
		PaymentID: pid,
	}
	q := url.Values{}
	q.Set("orderCode", strconv.FormatInt(code, 10))
	q.Set("id", pid)
	q.Set("status", status)
	q.Set("signature", utils.GenerateSign(sub.SignParams(), b.checksumKey))
	return b.frontendUrl + path + "?" + q.Encode()
}

// resolveAmount 应收金额: 优先折后价, 否则原价; 必须为正整数(最小货币单位)
func resolveAmount(order *ordermodel.ShopOrder) (int64, error) {
	price := order.TotalPrice
	if order.PriceAfterDiscount.Valid {
		price = order.PriceAfterDiscount.Decimal
	}
	if !price.IsInteger() || price.Cmp(decimal.Zero) <= 0 {
		return 0, constant.NewError(constant.CodeOrderStateInvalid)
	}
	return price.IntPart(), nil
}

// buildDescription 先拼接再截断, 签名与发送用同一截断后的值
func buildDescription(code int64) string {
	s := strconv.FormatInt(code, 10)
	if len(s) > 6 {
		s = s[len(s)-6:]
	}
	desc := descriptionPrefix + s
	if len(desc) > descriptionMaxLen {
		desc = desc[:descriptionMaxLen]
	}
	return desc
}
