package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	Port     string
	MongoURI string

	// BigCommerce API access. Store hash, client id and access token can be
	// left empty here and supplied per request through the export form.
	APIBase     string
	StoreHash   string
	ClientID    string
	AccessToken string

	// Export limits. MaxProducts caps one export; PageSize is the per-page
	// limit sent to the catalog endpoint (BigCommerce allows at most 250).
	MaxProducts int
	PageSize    int

	SendGridFromName  string
	SendGridFromEmail string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	APIBase = os.Getenv("BIGCOMMERCE_API_BASE")
	if APIBase == "" {
		APIBase = "https://api.bigcommerce.com"
	}

	StoreHash = os.Getenv("BIGCOMMERCE_STORE_HASH")
	ClientID = os.Getenv("BIGCOMMERCE_CLIENT_ID")
	AccessToken = os.Getenv("BIGCOMMERCE_ACCESS_TOKEN")

	MaxProducts = intEnv("MAX_PRODUCTS", 2000)
	if MaxProducts < 1 {
		MaxProducts = 2000
	}
	PageSize = intEnv("PAGE_SIZE", 250)
	if PageSize < 1 || PageSize > 250 {
		PageSize = 250
	}

	SendGridFromName = os.Getenv("SENDGRID_FROM_NAME")
	if SendGridFromName == "" {
		SendGridFromName = "Catalog Exporter"
	}
	SendGridFromEmail = os.Getenv("SENDGRID_FROM_EMAIL")
	if SendGridFromEmail == "" {
		SendGridFromEmail = "no-reply@localhost"
	}
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, raw, def)
		return def
	}
	return n
}
