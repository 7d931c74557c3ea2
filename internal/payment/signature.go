package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrMissingSecret = errors.New("payment: secret de signature absent")
	ErrMissingField  = errors.New("payment: champ de callback manquant")
)

// VerifySignature recalcule la signature HMAC-SHA256 du callback Razorpay
// (hex sur "orderID|paymentID", clé = key secret) et la compare en temps
// constant à celle fournie par le client.
//
// Une entrée vide retourne (false, err) : jamais de validation silencieuse.
func VerifySignature(secret, orderID, paymentID, supplied string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}
	if orderID == "" || paymentID == "" || supplied == "" {
		return false, ErrMissingField
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(supplied)), nil
}
