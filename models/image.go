package models

// MaterializeRequest represents the request body for POST /api/images/sync
// Example: {"imagePath": "/uploads/2021/05/logo.png", "backendUrl": "https://api.example.tn"}
type MaterializeRequest struct {
	ImagePath  string `json:"imagePath"`
	BackendURL string `json:"backendUrl"`
}

// MaterializeResult is returned for every materialization attempt.
// URL is the local path on success and the placeholder otherwise.
// Example: {"success": true, "url": "/uploads/2021/05/logo.png"}
type MaterializeResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// ImageCandidates is the ordered chain an <img> walks on load errors.
// Candidates always ends with Placeholder, exactly once.
// Example response for GET /api/images/resolve?entity=brands&value=logo.png:
// {
//   "primary": "/images/brands/logo.png",
//   "fallback": "/uploads/logo.png",
//   "placeholder": "/images/placeholder.png",
//   "candidates": ["/images/brands/logo.png", "/uploads/logo.png", "/images/placeholder.png"]
// }
type ImageCandidates struct {
	Primary     string   `json:"primary"`
	Fallback    string   `json:"fallback"`
	Placeholder string   `json:"placeholder"`
	Candidates  []string `json:"candidates"`
}
