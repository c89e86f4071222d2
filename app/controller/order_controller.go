package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"boutique-backoffice/models"
	"boutique-backoffice/repository"
	"boutique-backoffice/service"
)

// OrderController handles the order document editor
type OrderController struct {
	repository repository.OrderRepositoryInterface
	documents  *service.DocumentService
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, documents *service.DocumentService) *OrderController {
	return &OrderController{
		repository: repo,
		documents:  documents,
	}
}

// HandleOrders dispatches GET /orders/{id}/edit and POST /orders/{id}
func (c *OrderController) HandleOrders(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/orders/"), "/")
	id, action, _ := strings.Cut(rest, "/")

	switch {
	case action == "edit" && r.Method == http.MethodGet:
		c.EditOrder(w, r, id)
	case action == "" && r.Method == http.MethodPost:
		c.SubmitOrder(w, r, id)
	case action == "edit" || action == "":
		log.Printf("❌ HandleOrders: Method not allowed: %s %s", r.Method, r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// EditOrder handles GET /orders/{id}/edit
// One input per editable field; currency fields carry 3 decimals.
func (c *OrderController) EditOrder(w http.ResponseWriter, r *http.Request, id string) {
	log.Printf("📥 EditOrder: Received request for order %s", id)

	if id == "" {
		writeNotFoundPage(w, c.documents, models.DefaultDocumentVariant, http.StatusNotFound)
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, repository.ErrOrderNotFound) {
			status = http.StatusNotFound
		}
		log.Printf("❌ EditOrder: Error fetching order %s: %v", id, err)
		writeNotFoundPage(w, c.documents, models.DefaultDocumentVariant, status)
		return
	}

	form := c.documents.BuildEditForm(order)
	if form.OrderID == "" {
		form.OrderID = id
	}
	form.Saved = isTruthy(r.URL.Query().Get("saved"))
	c.writeForm(w, form, http.StatusOK)
}

// SubmitOrder handles POST /orders/{id} (application/x-www-form-urlencoded)
// Redirects to the purchase order view on success.
func (c *OrderController) SubmitOrder(w http.ResponseWriter, r *http.Request, id string) {
	log.Printf("📥 SubmitOrder: Received request for order %s", id)

	if id == "" {
		log.Printf("❌ SubmitOrder: Missing order id")
		http.Error(w, "order id is required", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("❌ SubmitOrder: Failed to parse form: %v", err)
		http.Error(w, fmt.Sprintf("Invalid form: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			log.Printf("❌ SubmitOrder: Order %s not found", id)
			writeNotFoundPage(w, c.documents, models.DefaultDocumentVariant, http.StatusNotFound)
			return
		}
		log.Printf("❌ SubmitOrder: Error fetching order %s: %v", id, err)
		c.writeForm(w, submittedForm(id, r.PostForm, "Échec de l'enregistrement, veuillez réessayer"), http.StatusBadGateway)
		return
	}

	fields, err := parseEditForm(r.PostForm, c.documents.BuildEditForm(order))
	if err != nil {
		log.Printf("❌ SubmitOrder: Invalid value for order %s: %v", id, err)
		c.writeForm(w, submittedForm(id, r.PostForm, err.Error()), http.StatusBadRequest)
		return
	}

	redirect := "/documents/" + url.PathEscape(id) + "?type=" + models.BonCommande.Key()
	if len(fields) == 0 {
		log.Printf("✓ SubmitOrder: No changes for order %s", id)
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	if err := c.repository.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			log.Printf("❌ SubmitOrder: Order %s not found", id)
			writeNotFoundPage(w, c.documents, models.DefaultDocumentVariant, http.StatusNotFound)
			return
		}
		log.Printf("❌ SubmitOrder: Error updating order %s: %v", id, err)
		c.writeForm(w, submittedForm(id, r.PostForm, "Échec de l'enregistrement, veuillez réessayer"), http.StatusBadGateway)
		return
	}

	log.Printf("✅ SubmitOrder: Updated order %s (%d fields)", id, len(fields))
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// UpdateOrder handles PUT /api/orders/{id}
// Example request:
// PUT /api/orders/42
// {
//   "client_phone": "+216 20 000 000",
//   "remise": 2.5,
//   "prix_ttc": 97.5
// }
// Example response:
// {
//   "success": true,
//   "id": "42"
// }
func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		log.Printf("❌ UpdateOrder: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/orders/"), "/")
	if id == "" || strings.Contains(id, "/") {
		log.Printf("❌ UpdateOrder: Invalid order id in %s", r.URL.Path)
		http.Error(w, "order id is required", http.StatusBadRequest)
		return
	}

	var fields map[string]any
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil {
		log.Printf("❌ UpdateOrder: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(fields) == 0 {
		log.Printf("❌ UpdateOrder: No fields to update for order %s", id)
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	if err := c.repository.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			log.Printf("❌ UpdateOrder: Order %s not found", id)
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ UpdateOrder: Error updating order %s: %v", id, err)
		http.Error(w, "Failed to update order", http.StatusBadGateway)
		return
	}

	log.Printf("✅ UpdateOrder: Updated order %s (%d fields)", id, len(fields))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"success": true, "id": id}); err != nil {
		log.Printf("❌ UpdateOrder: Error encoding response: %v", err)
	}
}

func (c *OrderController) writeForm(w http.ResponseWriter, form models.EditForm, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.documents.RenderEditor(w, form); err != nil {
		log.Printf("❌ writeForm: Error rendering editor for order %s: %v", form.OrderID, err)
	}
}

// parseEditForm keeps the editable fields whose submitted value differs from the one displayed.
// Untouched inputs are never written back, so aliased or absent amounts stay as stored.
func parseEditForm(values url.Values, displayed models.EditForm) (map[string]any, error) {
	fields := make(map[string]any, len(displayed.Fields))
	for _, current := range displayed.Fields {
		raw, ok := values[current.Name]
		if !ok || len(raw) == 0 {
			continue
		}
		value, err := current.ParseValue(raw[0])
		if err != nil {
			return nil, err
		}
		if before, err := current.ParseValue(current.Value); err == nil && before == value {
			continue
		}
		fields[current.Name] = value
	}
	return fields, nil
}

// submittedForm re-renders what the user typed alongside an error message
func submittedForm(id string, values url.Values, message string) models.EditForm {
	form := models.EditForm{OrderID: id, Numero: values.Get("numero"), Error: message}
	for _, field := range models.OrderEditFields {
		form.Fields = append(form.Fields, models.FieldValue{FieldDescriptor: field, Value: values.Get(field.Name)})
	}
	return form
}
