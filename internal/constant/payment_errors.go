package constant

import "net/http"

// 系统级错误码 (1xxx)
const (
	CodeSuccess       = 0    // 操作成功
	CodeSystemError   = 1000 // 系统内部错误
	CodeDatabaseError = 1001 // 数据库操作失败
	CodeInvalidParams = 1100 // 参数格式错误
)

// 订单相关错误码 (21xx)
const (
	CodeOrderNotFound     = 2100 // 订单不存在，请检查订单号是否正确
	CodeOrderStateInvalid = 2102 // 订单状态无效，缺少可签名的金额或标识，无法进行当前操作
)

// 支付验签相关错误码 (23xx)
const (
	CodeSignatureInvalid = 2300 // 回调签名验证失败，订单状态不做任何变更
)

// 网关相关错误码 (24xx)
const (
	CodeGatewayUnavailable = 2400 // 支付网关不可用（网络超时或上游异常）
)

// HTTPStatus 错误码映射 HTTP 状态
func HTTPStatus(code int) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeOrderNotFound:
		return http.StatusNotFound
	case CodeOrderStateInvalid, CodeSignatureInvalid, CodeInvalidParams:
		return http.StatusBadRequest
	case CodeGatewayUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
