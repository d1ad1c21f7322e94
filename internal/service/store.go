package service

import (
	"ssc-pay-api/internal/dao"
	"ssc-pay-api/internal/dto"
	ordermodel "ssc-pay-api/internal/model/order"
)

// OrderStore 订单存储契约
// 存储层在本服务中是外部协作方, 仅按唯一键查找 + 单行原子更新两类语义约定
// 查不到记录返回 (nil, nil), 与 dao 约定一致
// ApplyOutcome 是条件更新: 既有终态与新结果不同则返回 dao.ErrStateConflict,
// paid_at 一经写入不再变更
type OrderStore interface {
	GetByID(id uint64) (*ordermodel.ShopOrder, error)
	GetByOrderCode(code int64) (*ordermodel.ShopOrder, error)
	ClaimIdentity(id uint64, code int64, paymentID string) error
	ApplyOutcome(id uint64, outcome dto.PaymentOutcomeVo) (*ordermodel.ShopOrder, error)
}

var _ OrderStore = (*dao.OrderDao)(nil)
