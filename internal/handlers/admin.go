package handlers

import (
	"log"
	"net/http"
	"os"

	"redolic_back_end/internal/middleware"
	"redolic_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminLogin authentifie l'administrateur contre les identifiants configurés
// (ADMIN_EMAIL + ADMIN_PASSWORD_HASH au format Argon2id) et émet un JWT.
func AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || passwordHash == "" {
		log.Println("❌ ADMIN_EMAIL / ADMIN_PASSWORD_HASH non configurés")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login unavailable"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil {
		log.Println("❌ Hash admin illisible:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login unavailable"})
		return
	}

	if req.Email != adminEmail || !ok {
		middleware.RecordFailedLogin(req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	middleware.ClearLoginAttempts(req.Email)

	token, err := utils.GenerateAdminJWT(req.Email)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
