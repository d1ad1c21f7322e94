package shard

// PaymentLogShard 支付审计日志分表引擎
var PaymentLogShard *ShardEngine

// InitShardEngines 初始化所有分片引擎
func InitShardEngines() {
	PaymentLogShard = NewShardEngine("p_pay_log", 4)
}
