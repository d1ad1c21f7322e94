package notify

import (
	"fmt"
	"strings"
	"time"
)

// NotifyPaymentAlert 支付链路异常报警（网关失败、验签拒绝等）
func NotifyPaymentAlert(level, title string, fields map[string]string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*[%s] %s*\n", strings.ToUpper(level), escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", time.Now().Format("2006-01-02 15:04:05")))

	for k, v := range fields {
		if v == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(k), escapeMarkdown(v)))
	}

	NotifySendMsgToTG(sb.String())
}

// escapeMarkdown 转义 Telegram Markdown 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
