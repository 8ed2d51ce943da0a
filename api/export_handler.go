package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/storeops/bigcommerce-exporter/bigcommerce"
	"github.com/storeops/bigcommerce-exporter/config"
	"github.com/storeops/bigcommerce-exporter/export"
	"github.com/storeops/bigcommerce-exporter/utils"
)

// Templates is set from main after parsing the embedded template files.
var Templates *template.Template

const credsCookieName = "bc_creds"

// exportRequest is one parsed export/download submission.
type exportRequest struct {
	fields             []export.Field
	includeVariants    bool
	includeUnavailable bool
	includeHidden      bool
	customDomain       string
	creds              bigcommerce.Credentials
	credsFromForm      bool
}

// IndexHandler renders the field-selection form
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	saved := savedCookieCreds(r)
	data := map[string]interface{}{
		"FieldOptions": export.FieldOptions(),
		"SavedCreds":   saved,
	}
	if err := Templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// ExportHandler runs the fetch-flatten-render pipeline and shows the preview page
func ExportHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Export API]")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	req, err := parseExportRequest(r, r.FormValue("ordered_fields"), formBool(r, "include_variants"), formBool(r, "include_unavailable"), formBool(r, "include_hidden"), r.FormValue("custom_domain"), r.FormValue("store_hash"), r.FormValue("client_id"), r.FormValue("access_token"))
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Invalid selection: %v", err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.fields) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Carry form-supplied credentials to the download view in a signed cookie.
	if req.credsFromForm {
		setCredsCookie(w, req.creds)
	}

	csvContent, err := runExport(r, req)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Export failed: %v", err))
		http.Error(w, fmt.Sprintf("Export failed: %v", err), http.StatusBadGateway)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Export rendered, %d bytes", len(csvContent)))

	previewRows, err := export.ParsePreview(csvContent)
	if err != nil {
		http.Error(w, fmt.Sprintf("Export failed: %v", err), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"CSVContent":         csvContent,
		"PreviewRows":        previewRows,
		"FieldsQuery":        joinFields(req.fields),
		"IncludeVariants":    boolParam(req.includeVariants),
		"IncludeUnavailable": boolParam(req.includeUnavailable),
		"IncludeHidden":      boolParam(req.includeHidden),
		"CustomDomain":       req.customDomain,
	}
	if err := Templates.ExecuteTemplate(w, "export.html", data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// DownloadHandler re-runs the same export and returns it as a CSV attachment
func DownloadHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Download API]")

	q := r.URL.Query()
	req, err := parseExportRequest(r, q.Get("fields"), q.Get("include_variants") == "1", q.Get("include_unavailable") == "1", q.Get("include_hidden") == "1", q.Get("custom_domain"), "", "", "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.fields) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	csvContent, err := runExport(r, req)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Export failed: %v", err))
		http.Error(w, fmt.Sprintf("Export failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=products.csv")
	w.Write([]byte(csvContent))
}

// EmailExportRequest is the payload for emailing an export
type EmailExportRequest struct {
	Email              string `json:"email"`
	Fields             string `json:"fields"`
	IncludeVariants    bool   `json:"include_variants"`
	IncludeUnavailable bool   `json:"include_unavailable"`
	IncludeHidden      bool   `json:"include_hidden"`
	CustomDomain       string `json:"custom_domain"`
}

// EmailExportHandler runs the export and sends the CSV as an email attachment
func EmailExportHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Email Export API]")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload EmailExportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Email == "" {
		utils.RespondError(w, &logMessageBuilder, "Email is required", http.StatusBadRequest)
		return
	}

	req, err := parseExportRequest(r, payload.Fields, payload.IncludeVariants, payload.IncludeUnavailable, payload.IncludeHidden, payload.CustomDomain, "", "", "")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.fields) == 0 {
		utils.RespondError(w, &logMessageBuilder, "No fields selected", http.StatusBadRequest)
		return
	}

	csvContent, err := runExport(r, req)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Export failed: %v", err), http.StatusBadGateway)
		return
	}

	err = utils.SendCSVEmail(
		config.SendGridFromName, config.SendGridFromEmail,
		payload.Email, "Your product export",
		"Attached is your product catalog export.",
		"products.csv", csvContent,
	)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to send email", http.StatusBadGateway)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// LogoutHandler clears the stored credential cookie
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     credsCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// parseExportRequest validates the field selection and resolves credentials
// from (in increasing precedence) the environment config, the credential
// cookie and the submitted form values.
func parseExportRequest(r *http.Request, rawFields string, includeVariants, includeUnavailable, includeHidden bool, customDomain, storeHash, clientID, accessToken string) (*exportRequest, error) {
	fields, err := export.ParseSelection(rawFields)
	if err != nil {
		return nil, err
	}

	creds := bigcommerce.Credentials{
		StoreHash:   config.StoreHash,
		ClientID:    config.ClientID,
		AccessToken: config.AccessToken,
	}
	if cookie, err := r.Cookie(credsCookieName); err == nil {
		if sh, ci, at, err := utils.ParseCredsToken(cookie.Value); err == nil {
			applyCredOverride(&creds, sh, ci, at)
		}
	}
	fromForm := storeHash != "" || clientID != "" || accessToken != ""
	applyCredOverride(&creds, storeHash, clientID, accessToken)

	return &exportRequest{
		fields:             fields,
		includeVariants:    includeVariants,
		includeUnavailable: includeUnavailable,
		includeHidden:      includeHidden,
		customDomain:       strings.TrimSpace(customDomain),
		creds:              creds,
		credsFromForm:      fromForm,
	}, nil
}

// runExport is the fetch-flatten-render pipeline shared by the preview,
// download and email routes. Any failure discards all work for the request.
func runExport(r *http.Request, req *exportRequest) (string, error) {
	client := bigcommerce.NewClient(req.creds, config.APIBase, nil)

	products, err := client.FetchProducts(r.Context(), bigcommerce.FetchOptions{
		IncludeVariants: req.includeVariants,
		MaxProducts:     config.MaxProducts,
		PageSize:        config.PageSize,
	})
	if err != nil {
		return "", err
	}
	products = export.FilterProducts(products, req.includeUnavailable, req.includeHidden)

	resolver := &export.Resolver{CustomDomain: req.customDomain}
	if fieldsContain(req.fields, export.FieldBrandName) {
		brands, err := client.FetchBrandNames(r.Context())
		if err != nil {
			return "", err
		}
		resolver.BrandNames = brands
	}

	rows := resolver.FlattenAll(products, req.fields, req.includeVariants)
	return export.RenderCSV(export.Header(req.fields), rows), nil
}

func setCredsCookie(w http.ResponseWriter, creds bigcommerce.Credentials) {
	token, err := utils.GenerateCredsToken(creds.StoreHash, creds.ClientID, creds.AccessToken)
	if err != nil {
		fmt.Printf("Could not sign credential cookie: %v\n", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     credsCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
	})
}

func savedCookieCreds(r *http.Request) map[string]string {
	cookie, err := r.Cookie(credsCookieName)
	if err != nil {
		return nil
	}
	sh, ci, _, err := utils.ParseCredsToken(cookie.Value)
	if err != nil {
		return nil
	}
	// The access token deliberately never goes back into the page.
	return map[string]string{"store_hash": sh, "client_id": ci}
}

func applyCredOverride(creds *bigcommerce.Credentials, storeHash, clientID, accessToken string) {
	if storeHash != "" {
		creds.StoreHash = storeHash
	}
	if clientID != "" {
		creds.ClientID = clientID
	}
	if accessToken != "" {
		creds.AccessToken = accessToken
	}
}

func fieldsContain(fields []export.Field, want export.Field) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}

func joinFields(fields []export.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func formBool(r *http.Request, key string) bool {
	v := r.FormValue(key)
	return v == "on" || v == "1" || v == "true"
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
