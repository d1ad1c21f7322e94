package shard

// ShardStrategy 定义分片策略接口
type ShardStrategy interface {
	GetShard(id uint64) int
}
