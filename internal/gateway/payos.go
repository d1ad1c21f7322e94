package gateway

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"ssc-pay-api/internal/config"
	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dto"
	"ssc-pay-api/internal/notify"
	"ssc-pay-api/internal/utils"
)

const createPaymentPath = "/v2/payment-requests"

// PAYOS 业务成功码
const payosSuccessCode = "00"

// PayosClient PAYOS 网关客户端
// 网络/上游侧失败一律上报 CodeGatewayUnavailable, 不混入订单或签名错误
type PayosClient struct {
	cfg config.PayosCfg
}

func NewPayosClient(cfg config.PayosCfg) *PayosClient {
	return &PayosClient{cfg: cfg}
}

// CreatePaymentLink 调用 PAYOS 下单接口, 返回收银台跳转地址
func (c *PayosClient) CreatePaymentLink(ctx context.Context, intent *dto.PaymentIntent) (string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	headers := map[string]string{
		"x-client-id": c.cfg.ClientID,
		"x-api-key":   c.cfg.ApiKey,
	}
	reqUrl := c.cfg.ApiUrl + createPaymentPath

	// 重试归网关客户端管, 核心流程视为单次调用
	retries := c.cfg.RetryTimes
	if retries < 1 {
		retries = 1
	}
	var resp string
	err := utils.DoWithRetry(ctxTimeout, retries, time.Duration(c.cfg.RetryIntervalSec)*time.Second, func() error {
		r, rErr := utils.HttpPostJson(ctxTimeout, reqUrl, intent, headers)
		if rErr != nil {
			return rErr
		}
		resp = r
		return nil
	})
	if err != nil {
		log.Printf("[GATEWAY-PAYOS] 请求失败(重试后仍失败): %v", err)
		notify.NotifyPaymentAlert("error", "PAYOS 下单失败", map[string]string{
			"订单号": intentOrderCode(intent),
			"错误":  err.Error(),
		})
		return "", constant.NewError(constant.CodeGatewayUnavailable)
	}

	var parsed dto.PayosCreateResp
	if err := json.Unmarshal([]byte(resp), &parsed); err != nil {
		log.Printf("[GATEWAY-PAYOS] 响应解析失败: %v, raw=%s", err, resp)
		return "", constant.NewError(constant.CodeGatewayUnavailable)
	}

	if parsed.Code.String() != payosSuccessCode {
		log.Printf("[GATEWAY-PAYOS] 上游返回错误: code=%s, desc=%s", parsed.Code, parsed.Desc)
		notify.NotifyPaymentAlert("warn", "PAYOS 返回业务错误", map[string]string{
			"订单号":  intentOrderCode(intent),
			"上游码":  parsed.Code.String(),
			"上游描述": parsed.Desc,
		})
		return "", constant.NewError(constant.CodeGatewayUnavailable)
	}
	if parsed.Data.CheckoutUrl == "" || !utils.IsValidURL(parsed.Data.CheckoutUrl) {
		log.Printf("[GATEWAY-PAYOS] 上游返回无效收银台链接: %q", parsed.Data.CheckoutUrl)
		return "", constant.NewError(constant.CodeGatewayUnavailable)
	}

	return parsed.Data.CheckoutUrl, nil
}

func intentOrderCode(intent *dto.PaymentIntent) string {
	if intent == nil {
		return ""
	}
	return strconv.FormatInt(intent.OrderCode, 10)
}
