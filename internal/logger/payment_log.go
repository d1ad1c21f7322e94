package logger

import (
	"log"

	"ssc-pay-api/internal/dal"
	"ssc-pay-api/internal/dao"
	"ssc-pay-api/internal/dto"
	"ssc-pay-api/internal/idgen"
	ordermodel "ssc-pay-api/internal/model/order"
	"ssc-pay-api/internal/shard"
)

// WritePaymentLog 异步写入支付审计日志
func WritePaymentLog(payload *dto.PaymentAuditPayload) {
	if payload == nil {
		log.Printf("[AuditLogger] payload 为空，跳过写入")
		return
	}
	logID := idgen.New()
	table := shard.PaymentLogShard.GetTable(logID, payload.CreatedAt)

	entry := ordermodel.PaymentLog{
		ID:           logID,
		OrderID:      payload.OrderID,
		TraceID:      payload.TraceID,
		Kind:         payload.Kind,
		RequestBody:  payload.RequestBody,
		ResponseBody: payload.ResponseBody,
		Status:       payload.Status,
		ErrorMsg:     payload.ErrorMsg,
		IP:           payload.IP,
		UserAgent:    payload.UserAgent,
		LatencyMs:    payload.LatencyMs,
		CreatedAt:    payload.CreatedAt,
	}

	go func(entry ordermodel.PaymentLog, tableName string) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[AuditLogger] goroutine panic: trace_id=%s, err=%v", entry.TraceID, r)
			}
		}()

		if dal.OrderDB == nil {
			return
		}
		if err := dao.NewOrderDao().InsertPaymentLog(tableName, &entry); err != nil {
			log.Printf("[AuditLogger] 写入失败: table=%s, trace_id=%s, err=%v", tableName, entry.TraceID, err)
		}
	}(entry, table)
}
