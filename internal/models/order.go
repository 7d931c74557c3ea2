package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"

	PaymentMethodCOD      = "cod"
	PaymentMethodRazorpay = "razorpay"
)

// OrderItem est un instantané du produit au moment de l'achat.
// Une modification ultérieure du catalogue ne change jamais une commande passée.
type OrderItem struct {
	// ProductID peut être un ObjectID hex ou un ancien ID numérique du
	// catalogue legacy, on le garde donc en string opaque.
	ProductID string  `bson:"product_id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image" json:"image"`
}

type ShippingInfo struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Address   string `bson:"address" json:"address"`
	Phone     string `bson:"phone" json:"phone"`
	City      string `bson:"city" json:"city"`
	Pincode   string `bson:"pincode" json:"pincode"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	PaymentID     string             `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CustomerEmail string             `bson:"customer_email,omitempty" json:"userEmail,omitempty"`
	Shipping      ShippingInfo       `bson:"shipping" json:"shippingInfo"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
