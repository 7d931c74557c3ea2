// Package checkout orchestre le workflow de commande : création de la
// commande passerelle, vérification du callback de paiement, persistance
// puis notifications.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"redolic_back_end/internal/models"
	"redolic_back_end/internal/payment"

	"github.com/google/uuid"
)

var ErrEmptyOrder = errors.New("checkout: commande sans articles")

// OrderStore et Notifier sont satisfaits par store.OrderStore et
// notify.Dispatcher ; les tests injectent des stubs en mémoire.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	ListByRecency(ctx context.Context) ([]models.Order, error)
}

type Notifier interface {
	OrderCreated(order models.Order)
}

type Service struct {
	gateway   payment.Gateway
	store     OrderStore
	notifier  Notifier
	keySecret string
}

func NewService(gateway payment.Gateway, store OrderStore, notifier Notifier, keySecret string) *Service {
	return &Service{
		gateway:   gateway,
		store:     store,
		notifier:  notifier,
		keySecret: keySecret,
	}
}

// OrderDraft est la commande telle que soumise par le client. Le total et
// les prix unitaires sont repris tels quels, sans recalcul serveur : c'est
// le comportement historique de la boutique, voir DESIGN.md.
type OrderDraft struct {
	Items         []models.OrderItem
	Total         float64
	PaymentMethod string
	PaymentID     string
	CustomerEmail string
	Shipping      models.ShippingInfo
}

// CreateIntent demande à la passerelle une commande de paiement pour le
// montant donné. Le montant arrive en roupies et part en paise (×100).
func (s *Service) CreateIntent(ctx context.Context, amount float64, currency string) (*payment.Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("montant invalide: %v", amount)
	}
	if currency == "" {
		currency = "INR"
	}

	receipt := newReceiptRef()
	return s.gateway.CreateIntent(ctx, int64(amount*100), currency, receipt)
}

// VerifyCallback vérifie la signature du callback passerelle. Une signature
// qui ne correspond pas est un résultat (false, nil), pas une erreur.
func (s *Service) VerifyCallback(orderID, paymentID, signature string) (bool, error) {
	return payment.VerifySignature(s.keySecret, orderID, paymentID, signature)
}

// PlaceOrder persiste la commande puis déclenche les notifications.
//
// Le statut est dérivé du seul moyen de paiement ("cod" → pending, sinon
// paid) sans exiger qu'une vérification de signature ait réellement eu lieu :
// comportement historique conservé, signalé comme question ouverte dans
// DESIGN.md. Les notifications ne partent qu'après l'écriture durable et
// leur échec n'est jamais remonté à l'appelant.
func (s *Service) PlaceOrder(ctx context.Context, draft OrderDraft) (string, error) {
	if len(draft.Items) == 0 {
		return "", ErrEmptyOrder
	}

	status := models.OrderStatusPaid
	if draft.PaymentMethod == models.PaymentMethodCOD {
		status = models.OrderStatusPending
	}

	order := models.Order{
		Items:         draft.Items,
		Total:         draft.Total,
		PaymentMethod: draft.PaymentMethod,
		PaymentID:     draft.PaymentID,
		Status:        status,
		CustomerEmail: draft.CustomerEmail,
		Shipping:      draft.Shipping,
	}

	stored, err := s.store.Insert(ctx, order)
	if err != nil {
		return "", err
	}

	s.notifier.OrderCreated(stored)

	return stored.ID.Hex(), nil
}

// ListOrders renvoie les commandes pour la revue admin, récentes d'abord.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListByRecency(ctx)
}

func newReceiptRef() string {
	return "rcpt_" + uuid.NewString()
}
