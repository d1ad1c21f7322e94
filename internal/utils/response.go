package utils

import "ssc-pay-api/internal/constant"

// 统一响应格式（支持中英文提示）
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`              // 中文描述
	MsgEN   string      `json:"msg_en,omitempty"` // 英文描述
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// 错误响应（自动从 constant 中获取中英文描述）
func Error(code int) Response {
	if info, exists := constant.GetErrorInfo(code); exists {
		return Response{
			Success: false,
			Code:    code,
			Msg:     info.CN,
			MsgEN:   info.EN,
		}
	}
	return Response{
		Success: false,
		Code:    code,
		Msg:     "未知错误",
		MsgEN:   "Unknown error",
	}
}

// 错误响应（带 TraceID）
func ErrorWithTrace(code int, traceID string) Response {
	resp := Error(code)
	resp.TraceID = traceID
	return resp
}
