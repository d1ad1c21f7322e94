package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"ssc-pay-api/internal/config"
)

type TelegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

// SendTelegramMessage 发送运维报警消息, 未配置 bot 时静默跳过
func SendTelegramMessage(content string) error {
	tg := config.C.Telegram
	if tg.BotToken == "" || tg.ChatID == "" {
		return nil
	}

	msg := TelegramMessage{
		ChatID: tg.ChatID,
		Text:   content,
		Parse:  "Markdown",
	}
	body, _ := json.Marshal(msg)
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", tg.BotToken)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// NotifySendMsgToTG 异步发送报警信息
func NotifySendMsgToTG(content string) {
	go func() {
		if err := SendTelegramMessage(content); err != nil {
			log.Printf("Telegram 消息发送失败: %v", err)
		}
	}()
}
