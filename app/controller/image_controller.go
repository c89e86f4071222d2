package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"boutique-backoffice/models"
	"boutique-backoffice/service"
)

// ImageController handles image materialization and fallback resolution
type ImageController struct {
	images   service.ImageServiceInterface
	resolver *service.ImageResolver
}

// NewImageController creates a new ImageController
func NewImageController(images service.ImageServiceInterface, resolver *service.ImageResolver) *ImageController {
	return &ImageController{
		images:   images,
		resolver: resolver,
	}
}

// SyncImage handles POST /api/images/sync
// Example request:
// POST /api/images/sync
// {
//   "imagePath": "/uploads/2021/05/logo.png",
//   "backendUrl": "https://api.example.tn"
// }
// Example response (always 200 once the body is readable):
// {
//   "success": false,
//   "url": "/images/placeholder.png"
// }
func (c *ImageController) SyncImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncImage: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ SyncImage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.MaterializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ SyncImage: Failed to decode request body: %v", err)
		writeJSON(w, http.StatusBadRequest, models.MaterializeResult{Success: false, URL: c.images.PlaceholderURL()})
		return
	}

	result := c.images.Materialize(r.Context(), req.ImagePath, req.BackendURL)
	writeJSON(w, http.StatusOK, result)
}

// ResolveImage handles GET /api/images/resolve?entity=brands&value=logo.png
// With field=<name>, the record is read from the remaining query parameters so the
// entity's alternate field takes part: ?entity=brands&field=logo&logo=a.png&image=b.png
func (c *ImageController) ResolveImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ ResolveImage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	entity := strings.TrimSpace(query.Get("entity"))
	field := strings.TrimSpace(query.Get("field"))

	var candidates models.ImageCandidates
	if field == "" {
		candidates = c.resolver.ResolveValue(entity, query.Get("value"))
	} else {
		record := make(map[string]any, len(query))
		for key := range query {
			if key != "entity" && key != "field" {
				record[key] = query.Get(key)
			}
		}
		if query.Has("value") {
			record[field] = query.Get("value")
		}
		candidates = c.resolver.Resolve(entity, record, field)
	}

	writeJSON(w, http.StatusOK, candidates)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}
