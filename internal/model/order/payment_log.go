package ordermodel

import "time"

// PaymentLog 支付请求审计日志（按月+CRC32 分表，见 internal/shard）
type PaymentLog struct {
	ID           uint64    `gorm:"column:id;primaryKey"`
	OrderID      uint64    `gorm:"column:order_id"`
	TraceID      string    `gorm:"column:trace_id"`
	Kind         string    `gorm:"column:kind"` // checkout | verify
	RequestBody  string    `gorm:"column:request_body"`
	ResponseBody string    `gorm:"column:response_body"`
	Status       string    `gorm:"column:status"`
	ErrorMsg     string    `gorm:"column:error_msg"`
	IP           string    `gorm:"column:ip"`
	UserAgent    string    `gorm:"column:user_agent"`
	LatencyMs    int64     `gorm:"column:latency_ms"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}
