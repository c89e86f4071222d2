package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"boutique-backoffice/models"
	"boutique-backoffice/repository"
	"boutique-backoffice/service"
)

// DocumentController handles HTTP requests for printable order documents
type DocumentController struct {
	repository repository.OrderRepositoryInterface
	documents  *service.DocumentService
	pdf        service.PDFServiceInterface
	baseURL    string // Base URL Chrome loads documents from (e.g., "http://localhost:8080")
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(
	repo repository.OrderRepositoryInterface,
	documents *service.DocumentService,
	pdf service.PDFServiceInterface,
	baseURL string,
) *DocumentController {
	return &DocumentController{
		repository: repo,
		documents:  documents,
		pdf:        pdf,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// HandleDocuments dispatches /documents/{id} and /documents/{id}/pdf
func (c *DocumentController) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/documents/"), "/")
	id, action, _ := strings.Cut(rest, "/")

	switch action {
	case "":
		c.GetDocument(w, r, id)
	case "pdf":
		c.GetDocumentPDF(w, r, id)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// GetDocument handles GET /documents/{id}?type=ticket_caisse&print=1&embedded=1
// type selects the layout (bon_commande when absent or unknown),
// print=1 opens the print dialog once loaded, embedded=1 hides the print button.
func (c *DocumentController) GetDocument(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GetDocument: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	variant := models.ParseDocumentVariant(query.Get("type"))
	opts := models.RenderOptions{
		AutoPrint:       isTruthy(query.Get("print")),
		HidePrintButton: isTruthy(query.Get("embedded")),
	}

	order, ok := c.loadOrder(w, r, id, variant)
	if !ok {
		return
	}

	view := c.documents.BuildView(order, variant, opts)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.documents.Render(w, view); err != nil {
		log.Printf("❌ GetDocument: Error rendering %s for order %s: %v", variant.Key(), id, err)
		http.Error(w, "Failed to render document", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetDocument: Rendered %s for order %s (%d items)", variant.Key(), id, len(view.Items))
}

// GetDocumentPDF handles GET /documents/{id}/pdf?type=facture_client
// The HTML view is printed by headless Chrome in pure-print mode.
func (c *DocumentController) GetDocumentPDF(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GetDocumentPDF: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	variant := models.ParseDocumentVariant(r.URL.Query().Get("type"))
	order, ok := c.loadOrder(w, r, id, variant)
	if !ok {
		return
	}

	pdfBytes, err := c.pdf.GeneratePDF(r.Context(), service.DocumentRenderURL(c.baseURL, id, variant), variant)
	if err != nil {
		log.Printf("❌ GetDocumentPDF: Error generating %s for order %s: %v", variant.Key(), id, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	name := order.Numero()
	if name == "" {
		name = id
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", variant.Key()+"-"+name+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)

	log.Printf("✅ GetDocumentPDF: Sent %s for order %s (%d bytes)", variant.Key(), id, len(pdfBytes))
}

// loadOrder fetches the order or writes the not-found page. Load failures are terminal.
func (c *DocumentController) loadOrder(w http.ResponseWriter, r *http.Request, id string, variant models.DocumentVariant) (models.Order, bool) {
	if id == "" {
		log.Printf("❌ loadOrder: Missing order id in %s", r.URL.Path)
		writeNotFoundPage(w, c.documents, variant, http.StatusNotFound)
		return nil, false
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, repository.ErrOrderNotFound) {
			status = http.StatusNotFound
		}
		log.Printf("❌ loadOrder: Error fetching order %s: %v", id, err)
		writeNotFoundPage(w, c.documents, variant, status)
		return nil, false
	}
	return order, true
}

// writeNotFoundPage renders the "Commande introuvable" page with status
func writeNotFoundPage(w http.ResponseWriter, documents *service.DocumentService, variant models.DocumentVariant, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := documents.RenderNotFound(w, variant); err != nil {
		log.Printf("❌ writeNotFoundPage: Error rendering not found page: %v", err)
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
