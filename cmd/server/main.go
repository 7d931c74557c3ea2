package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"strings"

	"redolic_back_end/internal/checkout"
	"redolic_back_end/internal/config"
	"redolic_back_end/internal/database"
	"redolic_back_end/internal/handlers"
	"redolic_back_end/internal/notify"
	"redolic_back_end/internal/payment"
	"redolic_back_end/internal/routes"
	"redolic_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Fatal("❌ Impossible d'initialiser Razorpay : clés manquantes")
	}
	gateway := payment.NewRazorpayGateway(keyID, keySecret)
	log.Println("✅ Razorpay initialisé")

	database.ConnectDatabases()
	defer database.CloseMongo()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	sender, err := notify.NewSMTPSenderFromEnv()
	if err != nil {
		log.Fatal("❌ Transport mail non configuré :", err)
	}

	operator := os.Getenv("ORDER_NOTIFY_EMAIL")
	if operator == "" {
		operator = "admin@redolic.in"
	}
	dispatcher := notify.NewDispatcher(sender, operator)
	defer dispatcher.Wait()

	orders := store.NewOrderStore(database.MongoStoreDB)
	svc := checkout.NewService(gateway, orders, dispatcher, keySecret)

	r := gin.Default()
	r.Use(cors.New(corsConfig()))
	routes.RegisterRoutes(r, handlers.NewCheckoutHandler(svc))

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("🚀 Serveur Redolic lancé sur le port", port)
	r.Run(":" + port)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowOriginFunc = allowOrigin
	return cfg
}

// allowOrigin accepte le front en prod, le dev local, et les IP du réseau
// local sur le port Vite (tests mobiles).
func allowOrigin(origin string) bool {
	switch origin {
	case "http://localhost:5173", "https://redolic.in":
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "http" || u.Port() != "5173" {
		log.Println("🚫 Origine refusée par CORS:", origin)
		return false
	}

	host := u.Hostname()
	if strings.HasPrefix(host, "192.168.") || strings.HasPrefix(host, "10.") || strings.HasPrefix(host, "172.") {
		return true
	}

	log.Println("🚫 Origine refusée par CORS:", origin)
	return false
}

// warmupRedisCache établit la connexion Redis avant le premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
