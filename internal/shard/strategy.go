package shard

import (
	"hash/crc32"
	"strconv"
)

// CRC32ShardStrategy 使用 CRC32 哈希进行分片
type CRC32ShardStrategy struct {
	ShardCount uint32
}

func NewCRC32Strategy(count uint32) *CRC32ShardStrategy {
	return &CRC32ShardStrategy{ShardCount: count}
}

func (s *CRC32ShardStrategy) GetShard(id uint64) int {
	hash := crc32.ChecksumIEEE([]byte(strconv.FormatUint(id, 10)))
	return int(hash % s.ShardCount)
}
