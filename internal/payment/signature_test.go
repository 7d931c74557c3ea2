package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signFor(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	sig := signFor("s3cret", "order_abc", "pay_123")

	ok, err := VerifySignature("s3cret", "order_abc", "pay_123", sig)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !ok {
		t.Error("Expected valid signature to verify")
	}
}

func TestVerifySignature_Deterministic(t *testing.T) {
	sig := signFor("s3cret", "order_abc", "pay_123")

	for i := 0; i < 3; i++ {
		ok, err := VerifySignature("s3cret", "order_abc", "pay_123", sig)
		if err != nil || !ok {
			t.Fatalf("Run %d: expected (true, nil), got (%v, %v)", i, ok, err)
		}
	}
}

// Chaque caractère hex muté doit invalider la signature (avalanche HMAC).
func TestVerifySignature_SingleCharFlip(t *testing.T) {
	sig := signFor("s3cret", "order_abc", "pay_123")

	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		if flipped[i] == 'a' {
			flipped[i] = 'b'
		} else {
			flipped[i] = 'a'
		}

		ok, err := VerifySignature("s3cret", "order_abc", "pay_123", string(flipped))
		if err != nil {
			t.Fatalf("Position %d: unexpected error: %v", i, err)
		}
		if ok {
			t.Errorf("Position %d: mutated signature accepted", i)
		}
	}
}

func TestVerifySignature_ArbitraryHexRejected(t *testing.T) {
	other := strings.Repeat("ab", 32) // 64 hex chars, pas la bonne signature

	ok, err := VerifySignature("s3cret", "order_abc", "pay_123", other)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Error("Expected arbitrary signature to be rejected")
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := signFor("s3cret", "order_abc", "pay_123")

	ok, err := VerifySignature("autre", "order_abc", "pay_123", sig)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Error("Expected signature under another secret to be rejected")
	}
}

func TestVerifySignature_MissingInputs(t *testing.T) {
	cases := []struct {
		name                                  string
		secret, orderID, paymentID, signature string
	}{
		{"no secret", "", "order_abc", "pay_123", "deadbeef"},
		{"no order id", "s3cret", "", "pay_123", "deadbeef"},
		{"no payment id", "s3cret", "order_abc", "", "deadbeef"},
		{"no signature", "s3cret", "order_abc", "pay_123", ""},
	}

	for _, tc := range cases {
		ok, err := VerifySignature(tc.secret, tc.orderID, tc.paymentID, tc.signature)
		if ok {
			t.Errorf("%s: expected false", tc.name)
		}
		if err == nil {
			t.Errorf("%s: expected explicit error, got nil", tc.name)
		}
	}
}
