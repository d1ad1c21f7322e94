package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// GenerateSign 生成签名（用于请求或验证）
// 规则: 排除 signature 字段, 其余 key 按字典序排序拼接 k=v&k=v,
// 对拼接串做 HMAC-SHA256, 输出小写 hex
func GenerateSign(params map[string]string, checksumKey string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
		if i < len(keys)-1 {
			sb.WriteString("&")
		}
	}

	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySign 验证签名是否匹配（恒定时间比较）
func VerifySign(params map[string]string, checksumKey string, signature string) bool {
	if signature == "" {
		return false
	}
	expected := GenerateSign(params, checksumKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}
