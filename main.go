package main

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/storeops/bigcommerce-exporter/api"
	"github.com/storeops/bigcommerce-exporter/config"
	"github.com/storeops/bigcommerce-exporter/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

func main() {
	config.LoadConfig()

	// Initialize MongoDB. The export pipeline works without it; only saved
	// credentials and accounts need the database.
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Printf("MongoDB unavailable, credential saving disabled: %v", err)
	}

	api.Templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/", api.IndexHandler)
	http.HandleFunc("/export", api.ExportHandler)
	http.HandleFunc("/download", api.DownloadHandler)
	http.HandleFunc("/logout", api.LogoutHandler)

	http.HandleFunc("/auth/signup", corsMiddleware(api.SignupHandler))
	http.HandleFunc("/auth/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/api/save_creds", corsMiddleware(api.SaveCredsHandler))
	http.HandleFunc("/api/load_creds", corsMiddleware(api.LoadCredsHandler))
	http.HandleFunc("/api/email_export", corsMiddleware(api.EmailExportHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
