package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/storeops/bigcommerce-exporter/models"
	"github.com/storeops/bigcommerce-exporter/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveCredsRequest represents the payload for saving store credentials
type SaveCredsRequest struct {
	StoreHash   string `json:"store_hash"`
	ClientID    string `json:"client_id"`
	AccessToken string `json:"access_token"`
}

// SaveCredsHandler stores a user's BigCommerce credentials
func SaveCredsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Save Creds API]")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !utils.MongoAvailable() {
		utils.RespondError(w, &logMessageBuilder, "Credential store not available", http.StatusServiceUnavailable)
		return
	}

	userID, err := bearerUserID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	var req SaveCredsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.StoreHash == "" || req.ClientID == "" || req.AccessToken == "" {
		utils.RespondError(w, &logMessageBuilder, "Missing credentials", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	creds := utils.GetCollection(dbName, "user_credentials")

	doc := models.StoreCredentials{
		UserID:      userID,
		StoreHash:   req.StoreHash,
		ClientID:    req.ClientID,
		AccessToken: req.AccessToken,
		UpdatedAt:   time.Now(),
	}
	_, err = creds.ReplaceOne(ctx, bson.M{"user_id": userID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to save credentials", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Credentials saved for user %s", userID))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// LoadCredsHandler returns a user's saved BigCommerce credentials
func LoadCredsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Load Creds API]")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !utils.MongoAvailable() {
		utils.RespondError(w, &logMessageBuilder, "Credential store not available", http.StatusServiceUnavailable)
		return
	}

	userID, err := bearerUserID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	creds := utils.GetCollection(dbName, "user_credentials")

	var doc models.StoreCredentials
	err = creds.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "not_found"})
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to load credentials", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":       "found",
		"store_hash":   doc.StoreHash,
		"client_id":    doc.ClientID,
		"access_token": doc.AccessToken,
	})
}

// bearerUserID extracts and validates the Authorization bearer token and
// returns the user id it was issued for.
func bearerUserID(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", fmt.Errorf("missing bearer token")
	}
	return utils.ValidateToken(strings.TrimPrefix(auth, "Bearer "))
}
