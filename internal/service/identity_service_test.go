package service

import (
	"strconv"
	"testing"

	"ssc-pay-api/internal/constant"
)

func TestEnsureIdentityMintsOnce(t *testing.T) {
	st := newMemStore(newTestOrder(101, 50000))
	svc := NewOrderIdentityService(st, 5)

	order, _ := st.GetByID(101)
	code, pid, err := svc.EnsureIdentity(order)
	if err != nil {
		t.Fatalf("铸造失败: %v", err)
	}
	if code < orderCodeMin || code > orderCodeMax {
		t.Fatalf("orderCode 超出区间: %d", code)
	}
	if pid != strconv.FormatInt(code, 10) {
		t.Fatalf("paymentId 应为 orderCode 十进制串, got %q", pid)
	}
	if order.OrderCode == nil || *order.OrderCode != code {
		t.Fatal("铸造结果未回写到订单")
	}

	persisted, _ := st.GetByID(101)
	if persisted.OrderCode == nil || *persisted.OrderCode != code {
		t.Fatal("铸造结果未落库")
	}
}

func TestEnsureIdentityIdempotent(t *testing.T) {
	st := newMemStore(withIdentity(newTestOrder(102, 50000), 123456789, "123456789"))
	svc := NewOrderIdentityService(st, 5)

	order, _ := st.GetByID(102)
	code, pid, err := svc.EnsureIdentity(order)
	if err != nil {
		t.Fatalf("幂等路径不应失败: %v", err)
	}
	if code != 123456789 || pid != "123456789" {
		t.Fatalf("应返回既有身份, got code=%d pid=%q", code, pid)
	}
	if st.claims != 0 {
		t.Fatalf("已有身份不应触发第二次写, claims=%d", st.claims)
	}
}

func TestEnsureIdentityRetriesOnCollision(t *testing.T) {
	st := newMemStore(newTestOrder(103, 50000))
	st.claimFails = 2
	svc := NewOrderIdentityService(st, 5)

	order, _ := st.GetByID(103)
	if _, _, err := svc.EnsureIdentity(order); err != nil {
		t.Fatalf("撞号后应换号重试成功: %v", err)
	}
	if st.claims != 3 {
		t.Fatalf("期望 3 次 claim(2 次撞号+1 次成功), 实际 %d", st.claims)
	}
}

func TestEnsureIdentityRetriesExhausted(t *testing.T) {
	st := newMemStore(newTestOrder(104, 50000))
	st.claimFails = 10
	svc := NewOrderIdentityService(st, 3)

	order, _ := st.GetByID(104)
	_, _, err := svc.EnsureIdentity(order)
	if errCode(t, err) != constant.CodeDatabaseError {
		t.Fatalf("重试耗尽应报 CodeDatabaseError, got %v", err)
	}
}

func TestEnsureIdentityReadsBackConcurrentWinner(t *testing.T) {
	// 存储里已有并发请求写入的身份, 本地副本还没看到
	st := newMemStore(withIdentity(newTestOrder(105, 50000), 555666777, "555666777"))
	svc := NewOrderIdentityService(st, 5)

	stale := newTestOrder(105, 50000)
	code, pid, err := svc.EnsureIdentity(stale)
	if err != nil {
		t.Fatalf("并发抢先写入后应回读既有值: %v", err)
	}
	if code != 555666777 || pid != "555666777" {
		t.Fatalf("应返回既有身份, got code=%d pid=%q", code, pid)
	}
	if stale.OrderCode == nil || *stale.OrderCode != 555666777 {
		t.Fatal("本地副本应刷新为既有身份")
	}
}

func TestEnsureIdentityRejectsHalfWrittenIdentity(t *testing.T) {
	// orderCode 有值而 paymentId 缺失: 不在内存里推导补齐, 直接失败
	o := newTestOrder(108, 50000)
	code := int64(123987456)
	o.OrderCode = &code
	st := newMemStore(o)
	svc := NewOrderIdentityService(st, 5)

	stale, _ := st.GetByID(108)
	_, _, err := svc.EnsureIdentity(stale)
	if errCode(t, err) != constant.CodeOrderStateInvalid {
		t.Fatalf("半写入身份应报 CodeOrderStateInvalid, got %v", err)
	}
	if st.claims != 0 {
		t.Fatal("半写入身份不应触发重新铸造")
	}
}

func TestEnsureIdentityDistinctCodes(t *testing.T) {
	st := newMemStore(newTestOrder(106, 50000), newTestOrder(107, 60000))
	svc := NewOrderIdentityService(st, 5)

	o1, _ := st.GetByID(106)
	o2, _ := st.GetByID(107)
	c1, _, err1 := svc.EnsureIdentity(o1)
	c2, _, err2 := svc.EnsureIdentity(o2)
	if err1 != nil || err2 != nil {
		t.Fatalf("铸造失败: %v / %v", err1, err2)
	}
	if c1 == c2 {
		t.Fatalf("两个订单拿到同一 orderCode: %d", c1)
	}
}
