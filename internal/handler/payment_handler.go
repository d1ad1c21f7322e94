package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"ssc-pay-api/internal/config"
	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dal"
	"ssc-pay-api/internal/dao"
	"ssc-pay-api/internal/dto"
	"ssc-pay-api/internal/logger"
	"ssc-pay-api/internal/middleware"
	ordermodel "ssc-pay-api/internal/model/order"
	"ssc-pay-api/internal/service"
	"ssc-pay-api/internal/utils"
)

type PaymentHandler struct {
	checkout *service.CheckoutService
	verify   *service.VerifyService
}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{
		checkout: service.NewCheckoutService(),
		verify:   service.NewVerifyService(),
	}
}

// Checkout 发起支付, 返回收银台跳转地址
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(config.C.Order.CheckoutTimeoutSec)*time.Second)
	defer cancel()

	resp, err := h.checkout.Checkout(ctx, req)
	h.audit(c, "checkout", parseOrderID(req.OrderID), req, resp, err, start)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify 处理支付结果验证回调
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}

	start := time.Now()
	vo, err := h.verify.Verify(req)
	var orderID uint64
	if vo != nil {
		orderID = vo.ID
	}
	h.audit(c, "verify", orderID, req, vo, err, start)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerifyResp{Success: true, Order: vo})
}

// Get 查询订单支付状态, 优先读 redis
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.writeError(c, constant.NewError(constant.CodeOrderNotFound))
		return
	}

	var m *ordermodel.ShopOrder
	cacheKey := "order:" + strconv.FormatUint(id, 10)
	if dal.RedisClient != nil {
		if sjson, cErr := dal.RedisClient.Get(dal.RedisCtx, cacheKey).Result(); cErr == nil {
			var cached ordermodel.ShopOrder
			if json.Unmarshal([]byte(sjson), &cached) == nil {
				m = &cached
			}
		}
	}
	if m == nil {
		m, err = dao.NewOrderDao().GetByID(id)
		if err != nil {
			h.writeError(c, constant.NewError(constant.CodeDatabaseError))
			return
		}
	}
	if m == nil {
		h.writeError(c, constant.NewError(constant.CodeOrderNotFound))
		return
	}

	var vo dto.OrderVO
	_ = copier.Copy(&vo, m)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": vo})
}

// writeError 业务错误映射 HTTP 状态, 内部原因不外泄
func (h *PaymentHandler) writeError(c *gin.Context, err error) {
	traceID := c.GetString(middleware.TraceKey)
	var ce constant.Error
	if errors.As(err, &ce) {
		c.JSON(constant.HTTPStatus(ce.Code()), utils.ErrorWithTrace(ce.Code(), traceID))
		return
	}
	c.JSON(http.StatusInternalServerError, utils.ErrorWithTrace(constant.CodeSystemError, traceID))
}

// audit 写支付审计日志（异步落库）
func (h *PaymentHandler) audit(c *gin.Context, kind string, orderID uint64, req any, resp any, err error, start time.Time) {
	payload := &dto.PaymentAuditPayload{
		OrderID:      orderID,
		TraceID:      c.GetString(middleware.TraceKey),
		Kind:         kind,
		RequestBody:  utils.MapToJSON(req),
		ResponseBody: utils.MapToJSON(resp),
		Status:       "success",
		IP:           utils.GetRealClientIP(c),
		UserAgent:    c.Request.UserAgent(),
		LatencyMs:    time.Since(start).Milliseconds(),
		CreatedAt:    time.Now(),
	}
	if err != nil {
		payload.Status = "failed"
		payload.ErrorMsg = err.Error()
	}
	logger.WritePaymentLog(payload)
}

func parseOrderID(raw string) uint64 {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
