// Package notify envoie les emails de commande en fire-and-forget : le
// workflow de checkout répond au client dès que la commande est persistée,
// un échec d'envoi n'est visible que dans les logs.
package notify

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"redolic_back_end/internal/models"
)

// Sender est le transport mail sous-jacent (SMTP en prod, fake en test).
type Sender interface {
	Send(to, subject, body string) error
}

type Dispatcher struct {
	sender   Sender
	operator string // adresse fixe qui reçoit chaque commande

	wg sync.WaitGroup
}

func NewDispatcher(sender Sender, operator string) *Dispatcher {
	return &Dispatcher{sender: sender, operator: operator}
}

// OrderCreated envoie le récapitulatif à l'opérateur et, si l'email client
// est renseigné, une confirmation plus courte au client. À n'appeler
// qu'après confirmation de l'écriture en base.
func (d *Dispatcher) OrderCreated(order models.Order) {
	d.dispatch(d.operator,
		fmt.Sprintf("New Order Received - Order ID: %s", order.ID.Hex()),
		operatorSummary(order))

	if order.CustomerEmail != "" {
		d.dispatch(order.CustomerEmail,
			fmt.Sprintf("Order Confirmation - Redolic - Order ID: %s", order.ID.Hex()),
			customerConfirmation(order))
	}
}

func (d *Dispatcher) dispatch(to, subject, body string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sender.Send(to, subject, body); err != nil {
			log.Printf("❌ Erreur envoi e-mail à %s : %v", to, err)
			return
		}
		log.Println("📧 E-mail envoyé à", to)
	}()
}

// Wait bloque jusqu'à la fin des envois en cours (arrêt propre, tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func itemLines(order models.Order) string {
	var b strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s (Size: %s, Qty: %d) - ₹%.2f\n",
			item.Name, item.Size, item.Quantity, item.Price*float64(item.Quantity))
	}
	return b.String()
}

func operatorSummary(order models.Order) string {
	paymentID := order.PaymentID
	if paymentID == "" {
		paymentID = "N/A"
	}
	customer := order.CustomerEmail
	if customer == "" {
		customer = "Not provided"
	}

	return fmt.Sprintf(`New Order Details:

Order ID: %s
Payment Method: %s
Payment ID: %s
Total Amount: ₹%.2f
Status: %s
Customer Email: %s

Shipping Information:
Name: %s %s
Address: %s
City: %s
Pincode: %s
Phone: %s

Items:
%s
Date: %s
`,
		order.ID.Hex(), order.PaymentMethod, paymentID, order.Total,
		order.Status, customer,
		order.Shipping.FirstName, order.Shipping.LastName,
		order.Shipping.Address, order.Shipping.City,
		order.Shipping.Pincode, order.Shipping.Phone,
		itemLines(order),
		order.CreatedAt.Format("02 Jan 2006 15:04:05 MST"))
}

func customerConfirmation(order models.Order) string {
	return fmt.Sprintf(`Thank you for your order!

Order ID: %s
Total Amount: ₹%.2f

Items:
%s
We will notify you when your order is shipped.
`, order.ID.Hex(), order.Total, itemLines(order))
}
