package service

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"ssc-pay-api/internal/config"
	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dao"
	"ssc-pay-api/internal/dto"
	"ssc-pay-api/internal/event"
	ordermodel "ssc-pay-api/internal/model/order"
	"ssc-pay-api/internal/mq"
	"ssc-pay-api/internal/notify"
	"ssc-pay-api/internal/utils"
)

// COD 货到付款, 无网关签名可验
const payMethodCOD = "COD"

// VerifyService 消费支付结果回调并落库状态迁移
type VerifyService struct {
	store       OrderStore
	pub         event.Publisher
	checksumKey string
}

func NewVerifyService() *VerifyService {
	return &VerifyService{
		store:       dao.NewOrderDao(),
		pub:         mq.NewRabbitPublisher(),
		checksumKey: config.C.Payos.ChecksumKey,
	}
}

// Verify 处理验证回调
// COD 直接落终态; 网关路径先验签后查单, 验签失败不产生任何变更
func (s *VerifyService) Verify(req dto.VerifyReq) (*dto.OrderVO, error) {
	raw := strings.TrimSpace(req.Order.OrderCode.String())

	if req.PaymentMethod == payMethodCOD {
		return s.applyCOD(raw)
	}

	// 1) 重算签名并恒定时间比较
	if !utils.VerifySign(req.Order.SignParams(), s.checksumKey, req.Signature) {
		log.Printf("[VERIFY] 签名校验失败, orderCode=%s", raw)
		notify.NotifyPaymentAlert("warn", "回调签名校验失败", map[string]string{
			"orderCode": raw,
			"status":    req.Order.Status,
		})
		return nil, constant.NewError(constant.CodeSignatureInvalid)
	}

	// 2) 按策略链定位持久化订单, 不信任回调方携带的状态
	order, err := resolveOrder(s.store, raw)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}

	// 3) 计算终态字段
	var outcome dto.PaymentOutcomeVo
	var topic string
	if req.Order.Status == ordermodel.PayStatusPaid {
		outcome = dto.PaymentOutcomeVo{
			OrderStatus:    ordermodel.OrderStatusPaid,
			Status:         ordermodel.PayStatusPaid,
			PayosPaymentID: req.Order.PaymentID,
		}
		topic = "payment.paid"
	} else {
		outcome = dto.PaymentOutcomeVo{
			OrderStatus:    ordermodel.OrderStatusFailed,
			Status:         ordermodel.PayStatusFailed,
			PayosPaymentID: ordermodel.PayosPaymentFailed,
		}
		topic = "payment.failed"
	}

	return s.applyOutcome(order, outcome, topic)
}

// applyCOD 货到付款路径: 跳过验签, 仅做订单定位与终态落库
func (s *VerifyService) applyCOD(raw string) (*dto.OrderVO, error) {
	order, err := resolveOrder(s.store, raw)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}

	outcome := dto.PaymentOutcomeVo{
		OrderStatus:    ordermodel.OrderStatusCOD,
		PayosPaymentID: ordermodel.PayosPaymentCOD,
	}
	return s.applyOutcome(order, outcome, "payment.cod")
}

// applyOutcome 落库终态并发布事件
// 终态只允许重放同一结果(幂等); 不同结果的迁移被拒绝, 不产生变更
// 本地快照的检查只是快速失败, 真正的守卫在存储层条件更新里,
// 并发回调各自读到旧快照时由 ErrStateConflict 兜底
func (s *VerifyService) applyOutcome(order *ordermodel.ShopOrder, outcome dto.PaymentOutcomeVo, topic string) (*dto.OrderVO, error) {
	if order.Terminal() && order.OrderStatus != outcome.OrderStatus {
		log.Printf("[VERIFY] 拒绝终态迁移, order=%d, %s -> %s", order.ID, order.OrderStatus, outcome.OrderStatus)
		return nil, constant.NewError(constant.CodeOrderStateInvalid)
	}
	// paid_at 只写一次, 重放不刷新时间 (存储层 COALESCE 二次兜底)
	if order.PaidAt == nil {
		now := time.Now()
		outcome.PaidAt = &now
	}

	updated, err := s.store.ApplyOutcome(order.ID, outcome)
	if errors.Is(err, dao.ErrStateConflict) {
		log.Printf("[VERIFY] 拒绝终态迁移(并发落库), order=%d, -> %s", order.ID, outcome.OrderStatus)
		return nil, constant.NewError(constant.CodeOrderStateInvalid)
	}
	if err != nil || updated == nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}

	cacheOrder(updated)
	s.publishOutcome(topic, updated)

	var vo dto.OrderVO
	if err := copier.Copy(&vo, updated); err != nil {
		return nil, constant.NewError(constant.CodeSystemError)
	}
	log.Printf("[VERIFY] 订单状态已落库, order=%d, orderStatus=%s, status=%s", updated.ID, updated.OrderStatus, updated.Status)
	return &vo, nil
}

func (s *VerifyService) publishOutcome(topic string, m *ordermodel.ShopOrder) {
	if s.pub == nil {
		return
	}
	evt := mq.PaymentOutcomeEvent{
		OrderID:     strconv.FormatUint(m.ID, 10),
		OrderStatus: m.OrderStatus,
		Status:      m.Status,
		AppliedAt:   time.Now().Unix(),
	}
	if m.OrderCode != nil {
		evt.OrderCode = *m.OrderCode
	}
	if m.PaymentID != nil {
		evt.PaymentID = *m.PaymentID
	}
	if err := s.pub.Publish(topic, evt); err != nil {
		log.Printf("[VERIFY] 事件发布失败: topic=%s, err=%v", topic, err)
	}
}
