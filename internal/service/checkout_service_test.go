package service

import (
	"context"
	"testing"

	"ssc-pay-api/internal/constant"
	"ssc-pay-api/internal/dto"
	"ssc-pay-api/internal/utils"
)

type stubGateway struct {
	url    string
	err    error
	intent *dto.PaymentIntent
}

func (g *stubGateway) CreatePaymentLink(_ context.Context, intent *dto.PaymentIntent) (string, error) {
	g.intent = intent
	return g.url, g.err
}

func testCheckoutService(st OrderStore, gw GatewayClient) *CheckoutService {
	return &CheckoutService{
		store:    st,
		identity: NewOrderIdentityService(st, 5),
		builder:  testBuilder(),
		gw:       gw,
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	st := newMemStore(newTestOrder(31, 120000))
	gw := &stubGateway{url: "https://pay.example.com/web/abc"}
	svc := testCheckoutService(st, gw)

	resp, err := svc.Checkout(context.Background(), dto.CheckoutReq{OrderID: "31"})
	if err != nil {
		t.Fatalf("发起支付失败: %v", err)
	}
	if !resp.Success || resp.PaymentURL != gw.url {
		t.Fatalf("响应不符: %+v", resp)
	}
	if gw.intent == nil {
		t.Fatal("应把签名负载提交网关")
	}
	if gw.intent.Amount != 120000 {
		t.Fatalf("负载金额不符: %d", gw.intent.Amount)
	}
	if !utils.VerifySign(gw.intent.SignParams(), testChecksumKey, gw.intent.Signature) {
		t.Fatal("提交网关的负载签名应可验证")
	}

	persisted, _ := st.GetByID(31)
	if persisted.OrderCode == nil {
		t.Fatal("首次 checkout 应铸造支付身份")
	}
}

func TestCheckoutReusesIdentity(t *testing.T) {
	st := newMemStore(withIdentity(newTestOrder(32, 120000), 246813579, "246813579"))
	gw := &stubGateway{url: "https://pay.example.com/web/abc"}
	svc := testCheckoutService(st, gw)

	if _, err := svc.Checkout(context.Background(), dto.CheckoutReq{OrderID: "32"}); err != nil {
		t.Fatalf("发起支付失败: %v", err)
	}
	if gw.intent.OrderCode != 246813579 {
		t.Fatalf("重复 checkout 应复用既有 orderCode, got %d", gw.intent.OrderCode)
	}
	if st.claims != 0 {
		t.Fatal("既有身份不应触发第二次写")
	}
}

func TestCheckoutUnknownOrder(t *testing.T) {
	svc := testCheckoutService(newMemStore(), &stubGateway{})

	cases := []string{"31", "not-a-number", "0", ""}
	for _, raw := range cases {
		_, err := svc.Checkout(context.Background(), dto.CheckoutReq{OrderID: raw})
		if errCode(t, err) != constant.CodeOrderNotFound {
			t.Fatalf("orderId=%q 应报 CodeOrderNotFound, got %v", raw, err)
		}
	}
}

func TestCheckoutGatewayFailurePropagates(t *testing.T) {
	st := newMemStore(newTestOrder(33, 120000))
	gw := &stubGateway{err: constant.NewError(constant.CodeGatewayUnavailable)}
	svc := testCheckoutService(st, gw)

	_, err := svc.Checkout(context.Background(), dto.CheckoutReq{OrderID: "33"})
	if errCode(t, err) != constant.CodeGatewayUnavailable {
		t.Fatalf("网关失败应透传 CodeGatewayUnavailable, got %v", err)
	}
	// 身份在网关失败前已铸造, 重试时复用
	persisted, _ := st.GetByID(33)
	if persisted.OrderCode == nil {
		t.Fatal("网关失败不应回滚已铸造的身份")
	}
}
