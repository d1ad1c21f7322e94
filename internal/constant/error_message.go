package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:       {"操作成功", "Success"},
	CodeSystemError:   {"系统错误", "System error"},
	CodeDatabaseError: {"数据库错误", "Database error"},
	CodeInvalidParams: {"参数格式错误", "Invalid params"},

	// 订单相关错误
	CodeOrderNotFound:     {"订单不存在", "Order not found"},
	CodeOrderStateInvalid: {"订单状态无效", "Invalid order state"},

	// 支付验签错误
	CodeSignatureInvalid: {"签名验证失败", "Invalid signature"},

	// 网关错误
	CodeGatewayUnavailable: {"支付网关不可用", "Payment gateway unavailable"},
}
