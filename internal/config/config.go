package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}

// PayosCfg PAYOS 网关配置, checksumKey 为签名共享密钥
type PayosCfg struct {
	ApiUrl           string `mapstructure:"apiUrl"`
	ClientID         string `mapstructure:"clientId"`
	ApiKey           string `mapstructure:"apiKey"`
	ChecksumKey      string `mapstructure:"checksumKey"`
	TimeoutSec       int    `mapstructure:"timeoutSec"`
	RetryTimes       int    `mapstructure:"retryTimes"`
	RetryIntervalSec int    `mapstructure:"retryIntervalSec"`
}
type FrontendCfg struct {
	BaseUrl string `mapstructure:"baseUrl"`
}
type OrderCfg struct {
	CodeRetry          int `mapstructure:"codeRetry"`
	CheckoutTimeoutSec int `mapstructure:"checkoutTimeoutSec"`
}
type TelegramCfg struct {
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatId"`
}

type Root struct {
	Server   ServerCfg   `mapstructure:"server"`
	Mysql    MysqlCfg    `mapstructure:"mysql"`
	Redis    RedisCfg    `mapstructure:"redis"`
	RabbitMQ RabbitCfg   `mapstructure:"rabbitmq"`
	Payos    PayosCfg    `mapstructure:"payos"`
	Frontend FrontendCfg `mapstructure:"frontend"`
	Order    OrderCfg    `mapstructure:"order"`
	Telegram TelegramCfg `mapstructure:"telegram"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if strings.TrimSpace(C.Payos.ApiUrl) == "" {
		C.Payos.ApiUrl = "https://api-merchant.payos.vn"
	}
	if C.Payos.TimeoutSec <= 0 {
		C.Payos.TimeoutSec = 10
	}
	if C.Payos.RetryTimes <= 0 {
		C.Payos.RetryTimes = 1
	}
	if C.Payos.RetryIntervalSec <= 0 {
		C.Payos.RetryIntervalSec = 2
	}
	if C.Order.CodeRetry <= 0 {
		C.Order.CodeRetry = 5
	}
	if C.Order.CheckoutTimeoutSec <= 0 {
		C.Order.CheckoutTimeoutSec = 15
	}
}

// Timeout 网关请求超时
func (c PayosCfg) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}
