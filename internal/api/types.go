package api

import "encoding/json"

// Request and response shapes for the DIY Visual Finder backend.
// All exchange is JSON over HTTP; field names match the wire format.

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body. Only username, password and
// email are required; the rest are optional profile fields.
type Registration struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Success bool   `json:"success"`
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

// InventoryItem is one stored item as the backend reports it.
type InventoryItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	StorageBox  string `json:"storage_box"`
	Brand       string `json:"brand"`
	Size        string `json:"size"`
	Condition   string `json:"condition"`
	ImageData   string `json:"image_data"` // data URI
	CreatedAt   string `json:"created_at"`
}

// AddItemRequest carries a new item. The client sends default-empty
// descriptive fields; classification is entirely the backend's job.
type AddItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	StorageBox  string `json:"storage_box"`
	Brand       string `json:"brand"`
	Size        string `json:"size"`
	Condition   string `json:"condition"`
	Image       string `json:"image"` // data URI
	Username    string `json:"username"`
}

// AddItemResponse reports the stored item id and whatever analysis the
// backend ran. The analysis shape is backend-defined; keep it raw.
type AddItemResponse struct {
	Success    bool            `json:"success"`
	ItemID     int             `json:"item_id"`
	AIAnalysis json.RawMessage `json:"ai_analysis,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ItemsResponse is the full inventory listing for one user.
type ItemsResponse struct {
	Success bool            `json:"success"`
	Items   []InventoryItem `json:"items"`
	Error   string          `json:"error,omitempty"`
}

// SearchRequest asks for items visually similar to the given image.
type SearchRequest struct {
	Image    string `json:"image"` // data URI
	Username string `json:"username"`
}

// SearchResult is one similarity hit. Score is in [0,1].
type SearchResult struct {
	Name        string  `json:"name,omitempty"`
	Category    string  `json:"category,omitempty"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Size        string  `json:"size,omitempty"`
	ImageData   string  `json:"image_data,omitempty"`
	Location    string  `json:"location,omitempty"`
	StorageBox  string  `json:"storage_box,omitempty"`
}

// SearchResponse is the search result list.
type SearchResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Error   string         `json:"error,omitempty"`
}

// ChatRequest carries the username and the latest message text only;
// any multi-turn memory lives server-side.
type ChatRequest struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// ChatResponse is the assistant's reply. On failure the backend may put
// the explanation in either Error or Response.
type ChatResponse struct {
	Success     bool   `json:"success"`
	Response    string `json:"response"`
	SQLExecuted string `json:"sql_executed,omitempty"`
	Error       string `json:"error,omitempty"`
}

// HealthResponse is the GET / liveness banner.
type HealthResponse struct {
	Message string `json:"message"`
}
