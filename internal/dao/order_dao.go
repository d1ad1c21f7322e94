package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"ssc-pay-api/internal/dal"
	"ssc-pay-api/internal/dto"
	ordermodel "ssc-pay-api/internal/model/order"
)

// 身份写入的竞态信号, 由调用方决定换号重试还是回读已有值
var (
	ErrOrderCodeTaken  = errors.New("order code taken")        // 唯一索引撞号, 换号重试
	ErrIdentityClaimed = errors.New("identity claimed")        // 并发写入已抢先, 回读即可
	ErrStateConflict   = errors.New("terminal state conflict") // 终态不可被不同结果覆盖
)

type OrderDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.OrderDB
func NewOrderDao() *OrderDao {
	if dal.OrderDB == nil {
		log.Panic("[FATAL] dal.OrderDB is nil - database not initialized")
	}
	return &OrderDao{DB: dal.OrderDB}
}

// 安全检查方法
func (r *OrderDao) checkDB() error {
	if r == nil {
		return errors.New("OrderDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetByID 根据主键获取订单
func (r *OrderDao) GetByID(id uint64) (*ordermodel.ShopOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by id failed: %w", err)
	}

	var m ordermodel.ShopOrder
	err := r.DB.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetByOrderCode 根据支付单号获取订单
func (r *OrderDao) GetByOrderCode(code int64) (*ordermodel.ShopOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by order code failed: %w", err)
	}

	var m ordermodel.ShopOrder
	err := r.DB.Where("order_code = ?", code).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ClaimIdentity 一次性写入 order_code/payment_id
// 条件更新保证只有首个写入者生效; 唯一索引撞号返回 ErrOrderCodeTaken
func (r *OrderDao) ClaimIdentity(id uint64, code int64, paymentID string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("claim identity failed: %w", err)
	}

	tx := r.DB.Model(&ordermodel.ShopOrder{}).
		Where("id = ? AND order_code IS NULL", id).
		Updates(map[string]interface{}{
			"order_code": code,
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		if isDuplicateKey(tx.Error) {
			return ErrOrderCodeTaken
		}
		return fmt.Errorf("claim identity failed: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrIdentityClaimed
	}
	return nil
}

// ApplyOutcome 落库支付终态并返回更新后的订单
// 终态守卫放在 UPDATE 条件里, 与 ClaimIdentity 同款: 并发回调各自读到旧快照时,
// 只有与既有终态一致的结果能写入, 不同结果返回 ErrStateConflict
func (r *OrderDao) ApplyOutcome(id uint64, outcome dto.PaymentOutcomeVo) (*ordermodel.ShopOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("apply outcome failed: %w", err)
	}

	updates := map[string]interface{}{
		"order_status":     outcome.OrderStatus,
		"payos_payment_id": outcome.PayosPaymentID,
		"updated_at":       time.Now(),
	}
	if outcome.Status != "" {
		updates["status"] = outcome.Status
	}
	if outcome.PaidAt != nil {
		// paid_at 只写一次, 重放不刷新时间
		updates["paid_at"] = gorm.Expr("COALESCE(paid_at, ?)", *outcome.PaidAt)
	}

	terminal := []string{ordermodel.OrderStatusPaid, ordermodel.OrderStatusFailed, ordermodel.OrderStatusCOD}
	tx := r.DB.Model(&ordermodel.ShopOrder{}).
		Where("id = ? AND (order_status NOT IN ? OR order_status = ?)", id, terminal, outcome.OrderStatus).
		Updates(updates)
	if tx.Error != nil {
		return nil, fmt.Errorf("apply outcome failed: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		existing, gErr := r.GetByID(id)
		if gErr != nil {
			return nil, gErr
		}
		if existing == nil {
			return nil, nil
		}
		return nil, ErrStateConflict
	}
	return r.GetByID(id)
}

// InsertPaymentLog 写入支付审计日志（调用方负责分表路由）
func (r *OrderDao) InsertPaymentLog(table string, m *ordermodel.PaymentLog) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert payment log failed: %w", err)
	}
	return r.DB.Table(table).Create(m).Error
}

// isDuplicateKey 识别唯一索引冲突 (MySQL 1062)
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
