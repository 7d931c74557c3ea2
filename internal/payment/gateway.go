package payment

import (
	"context"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"
)

// Intent est la commande créée côté passerelle, en attente du paiement client.
type Intent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // en paise (unité mineure)
	Currency string `json:"currency"`
	KeyID    string `json:"key"`
}

// Gateway est injecté dans le workflow de checkout (pas de singleton global).
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*Intent, error)
}

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *RazorpayGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*Intent, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		log.Println("❌ Erreur Razorpay:", err)
		return nil, fmt.Errorf("création commande razorpay: %w", err)
	}

	intent := &Intent{
		ID:       asString(body["id"]),
		Amount:   amountMinor,
		Currency: currency,
		KeyID:    g.keyID,
	}

	// Razorpay renvoie les montants en json number, on reprend sa valeur
	// quand elle est présente plutôt que la nôtre.
	if amt, ok := body["amount"].(float64); ok {
		intent.Amount = int64(amt)
	}
	if cur := asString(body["currency"]); cur != "" {
		intent.Currency = cur
	}

	if intent.ID == "" {
		return nil, fmt.Errorf("réponse razorpay sans id de commande")
	}

	log.Printf("💳 Commande Razorpay créée : %s (%d %s)", intent.ID, intent.Amount, intent.Currency)
	return intent, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
