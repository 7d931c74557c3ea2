package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"redolic_back_end/internal/models"
	"redolic_back_end/internal/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// ---------- STUBS ----------
//

// stubStore implémente OrderStore en mémoire, triée récentes d'abord.
type stubStore struct {
	orders  []models.Order
	failing bool
}

func (s *stubStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	if s.failing {
		return models.Order{}, fmt.Errorf("mongo injoignable")
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	s.orders = append([]models.Order{order}, s.orders...)
	return order, nil
}

func (s *stubStore) ListByRecency(ctx context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), s.orders...), nil
}

type stubGateway struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
	failing      bool
}

func (g *stubGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*payment.Intent, error) {
	if g.failing {
		return nil, fmt.Errorf("gateway indisponible")
	}
	g.lastAmount = amountMinor
	g.lastCurrency = currency
	g.lastReceipt = receipt
	return &payment.Intent{ID: "order_stub", Amount: amountMinor, Currency: currency, KeyID: "key_stub"}, nil
}

type countingNotifier struct {
	notified []models.Order
}

func (n *countingNotifier) OrderCreated(order models.Order) {
	n.notified = append(n.notified, order)
}

func newTestService(store *stubStore, gw *stubGateway, n *countingNotifier) *Service {
	return NewService(gw, store, n, "s3cret")
}

func draft(method, email string) OrderDraft {
	return OrderDraft{
		Items: []models.OrderItem{
			{ProductID: "1", Name: "Oversized Tee", Price: 799, Size: "L", Quantity: 1, Image: "/img/tee.jpg"},
		},
		Total:         799,
		PaymentMethod: method,
		CustomerEmail: email,
		Shipping:      models.ShippingInfo{FirstName: "A", LastName: "B", Address: "12 rue", Phone: "99", City: "Kochi", Pincode: "682001"},
	}
}

//
// ---------- TESTS ----------
//

func TestCreateIntent_MinorUnits(t *testing.T) {
	gw := &stubGateway{}
	svc := newTestService(&stubStore{}, gw, &countingNotifier{})

	intent, err := svc.CreateIntent(context.Background(), 799, "INR")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gw.lastAmount != 79900 {
		t.Errorf("Expected gateway amount 79900, got %d", gw.lastAmount)
	}
	if gw.lastCurrency != "INR" {
		t.Errorf("Expected currency INR, got %s", gw.lastCurrency)
	}
	if gw.lastReceipt == "" {
		t.Error("Expected a generated receipt ref")
	}
	if intent.ID == "" {
		t.Error("Expected intent id")
	}
}

func TestCreateIntent_DefaultCurrency(t *testing.T) {
	gw := &stubGateway{}
	svc := newTestService(&stubStore{}, gw, &countingNotifier{})

	if _, err := svc.CreateIntent(context.Background(), 100, ""); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gw.lastCurrency != "INR" {
		t.Errorf("Expected default currency INR, got %s", gw.lastCurrency)
	}
}

func TestCreateIntent_GatewayFailure(t *testing.T) {
	svc := newTestService(&stubStore{}, &stubGateway{failing: true}, &countingNotifier{})

	if _, err := svc.CreateIntent(context.Background(), 100, "INR"); err == nil {
		t.Fatal("Expected gateway error")
	}
}

func TestCreateIntent_InvalidAmount(t *testing.T) {
	svc := newTestService(&stubStore{}, &stubGateway{}, &countingNotifier{})

	if _, err := svc.CreateIntent(context.Background(), 0, "INR"); err == nil {
		t.Fatal("Expected error for zero amount")
	}
}

func TestPlaceOrder_StatusByPaymentMethod(t *testing.T) {
	cases := []struct {
		method string
		want   string
	}{
		{models.PaymentMethodCOD, models.OrderStatusPending},
		{models.PaymentMethodRazorpay, models.OrderStatusPaid},
		{"card", models.OrderStatusPaid},
	}

	for _, tc := range cases {
		st := &stubStore{}
		svc := newTestService(st, &stubGateway{}, &countingNotifier{})

		if _, err := svc.PlaceOrder(context.Background(), draft(tc.method, "")); err != nil {
			t.Fatalf("%s: expected no error, got: %v", tc.method, err)
		}
		if got := st.orders[0].Status; got != tc.want {
			t.Errorf("%s: expected status %s, got %s", tc.method, tc.want, got)
		}
	}
}

func TestPlaceOrder_NotifiesAfterPersist(t *testing.T) {
	st := &stubStore{}
	n := &countingNotifier{}
	svc := newTestService(st, &stubGateway{}, n)

	orderID, err := svc.PlaceOrder(context.Background(), draft(models.PaymentMethodRazorpay, "client@example.com"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(n.notified) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(n.notified))
	}
	// La notification porte la commande persistée, pas le brouillon
	if n.notified[0].ID.Hex() != orderID {
		t.Error("Expected notification to carry the stored order id")
	}
	if n.notified[0].CreatedAt.IsZero() {
		t.Error("Expected notification to carry the stored creation time")
	}
}

func TestPlaceOrder_PersistenceFailure(t *testing.T) {
	n := &countingNotifier{}
	svc := newTestService(&stubStore{failing: true}, &stubGateway{}, n)

	if _, err := svc.PlaceOrder(context.Background(), draft(models.PaymentMethodCOD, "")); err == nil {
		t.Fatal("Expected persistence error")
	}
	// Jamais de notification pour une commande non persistée
	if len(n.notified) != 0 {
		t.Errorf("Expected 0 notifications, got %d", len(n.notified))
	}
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	svc := newTestService(&stubStore{}, &stubGateway{}, &countingNotifier{})

	_, err := svc.PlaceOrder(context.Background(), OrderDraft{PaymentMethod: models.PaymentMethodCOD})
	if err != ErrEmptyOrder {
		t.Fatalf("Expected ErrEmptyOrder, got: %v", err)
	}
}

func TestPlaceOrder_ItemSnapshotPreserved(t *testing.T) {
	st := &stubStore{}
	svc := newTestService(st, &stubGateway{}, &countingNotifier{})

	d := draft(models.PaymentMethodCOD, "")
	if _, err := svc.PlaceOrder(context.Background(), d); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got := st.orders[0]
	if len(got.Items) != 1 || got.Items[0] != d.Items[0] {
		t.Errorf("Expected stored items to equal submitted snapshot, got %+v", got.Items)
	}
	if got.Total != d.Total {
		t.Errorf("Expected total %.2f stored as submitted, got %.2f", d.Total, got.Total)
	}
}

func TestListOrders_NewestFirstAndIdempotent(t *testing.T) {
	st := &stubStore{}
	svc := newTestService(st, &stubGateway{}, &countingNotifier{})

	first, _ := svc.PlaceOrder(context.Background(), draft(models.PaymentMethodCOD, ""))
	second, _ := svc.PlaceOrder(context.Background(), draft(models.PaymentMethodRazorpay, ""))

	orders, err := svc.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID.Hex() != second || orders[1].ID.Hex() != first {
		t.Error("Expected newest order first")
	}

	again, err := svc.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(again) != len(orders) {
		t.Fatalf("Expected identical sequences, got %d vs %d", len(again), len(orders))
	}
	for i := range again {
		if again[i].ID != orders[i].ID {
			t.Errorf("Position %d: expected same order on repeated read", i)
		}
	}
}

func TestVerifyCallback_Delegates(t *testing.T) {
	svc := newTestService(&stubStore{}, &stubGateway{}, &countingNotifier{})

	ok, err := svc.VerifyCallback("order_abc", "pay_123", "0000")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Error("Expected bad signature to be rejected")
	}

	if _, err := svc.VerifyCallback("", "pay_123", "0000"); err == nil {
		t.Error("Expected error on missing order id")
	}
}
