package api

import "time"

// User is the service's user record.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// RegisterRequest is the POST /register payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer credential issued on login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Field is a registered agricultural area. Identity is assigned by the
// service on creation; the client never mutates a field after submission.
type Field struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	CropType        string    `json:"crop_type"`
	PolygonGeometry string    `json:"polygon_geometry"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// CreateFieldRequest is the POST /fields payload. PolygonGeometry is the
// serialized geometry string produced by the geometry builder.
type CreateFieldRequest struct {
	Name            string `json:"name"`
	CropType        string `json:"crop_type"`
	PolygonGeometry string `json:"polygon_geometry"`
}

// AnalysisResult is returned by POST /upload once the service has analyzed
// an image.
type AnalysisResult struct {
	ID          int       `json:"id"`
	FieldID     int       `json:"field_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	StressLevel string    `json:"stress_level"`
	Confidence  float64   `json:"confidence,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// FieldStats is the per-field statistics payload from GET /field/{id}/stats.
type FieldStats struct {
	FieldID            int            `json:"field_id"`
	Days               int            `json:"days"`
	TotalImages        int            `json:"total_images"`
	StressDistribution map[string]int `json:"stress_distribution"`
}

// OverallStats is the aggregate summary from GET /stats.
type OverallStats struct {
	TotalFields        int            `json:"total_fields"`
	TotalImages        int            `json:"total_images"`
	StressDistribution map[string]int `json:"stress_distribution"`
}
