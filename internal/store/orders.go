package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"redolic_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderStore est le seul propriétaire des documents de la collection orders :
// insertion et lecture, aucune mutation après création.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{col: db.Collection("orders")}
}

// Insert assigne l'ID et la date de création puis persiste la commande.
// Si l'insertion échoue, la commande doit être considérée comme non passée.
func (s *OrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.col.InsertOne(ctx, order); err != nil {
		log.Println("❌ Erreur insertion Mongo :", err)
		return models.Order{}, fmt.Errorf("insertion commande: %w", err)
	}

	return order, nil
}

// ListByRecency renvoie toutes les commandes, la plus récente en premier.
func (s *OrderStore) ListByRecency(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		return nil, fmt.Errorf("lecture commandes: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("❌ Erreur décodage commandes:", err)
		return nil, fmt.Errorf("décodage commandes: %w", err)
	}

	return orders, nil
}
