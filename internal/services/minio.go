package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"redolic_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadProductImage pousse une image produit vers MinIO et renvoie son URL
// publique. Le nom d'objet est unique, le nom de fichier client n'est jamais
// réutilisé tel quel.
func UploadProductImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("products/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err = database.MinioClient.PutObject(ctx, bucket, objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	publicBase := os.Getenv("MINIO_PUBLIC_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("http://%s", os.Getenv("MINIO_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, bucket, objectName), nil
}

// RemoveProductImage supprime l'objet MinIO correspondant à une URL stockée.
// Best effort : une image orpheline ne bloque jamais la suppression produit.
func RemoveProductImage(ctx context.Context, imageURL string) {
	if database.MinioClient == nil {
		return
	}

	bucket := os.Getenv("MINIO_BUCKET")
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return
	}

	objectName := strings.TrimPrefix(parsed.Path, "/"+bucket+"/")
	if objectName == "" || objectName == parsed.Path {
		return
	}

	if err := database.MinioClient.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("⚠️ Suppression MinIO échouée pour %s : %v", objectName, err)
	}
}
