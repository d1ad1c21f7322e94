package service

import (
	"strconv"

	ordermodel "ssc-pay-api/internal/model/order"
)

// resolveStrategy 单个订单定位策略, 未命中返回 (nil, nil)
type resolveStrategy func(store OrderStore, raw string) (*ordermodel.ShopOrder, error)

// orderResolvers 按声明顺序尝试: 先按支付单号, 再按订单主键兜底
// 两者都可能命中时, 显式的 order_code 索引优先
var orderResolvers = []resolveStrategy{
	resolveByOrderCode,
	resolveByRawID,
}

// resolveByOrderCode 按 order_code 唯一索引定位
func resolveByOrderCode(store OrderStore, raw string) (*ordermodel.ShopOrder, error) {
	code, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || code <= 0 {
		return nil, nil
	}
	return store.GetByOrderCode(code)
}

// resolveByRawID 回调方把订单主键当 orderCode 传过来的历史兼容路径
func resolveByRawID(store OrderStore, raw string) (*ordermodel.ShopOrder, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		// 结构上不是合法主键, 跳过
		return nil, nil
	}
	return store.GetByID(id)
}

// resolveOrder 依次执行策略链, 全部未命中返回 (nil, nil)
func resolveOrder(store OrderStore, raw string) (*ordermodel.ShopOrder, error) {
	for _, resolve := range orderResolvers {
		o, err := resolve(store, raw)
		if err != nil {
			return nil, err
		}
		if o != nil {
			return o, nil
		}
	}
	return nil, nil
}
