package dto

// RateVideoDTO is the body of POST /api/videos/:id/rate. Rating is a pointer
// so a missing value can be told apart from zero.
type RateVideoDTO struct {
	Rating *int `json:"rating"`
}

type RateVideoResponse struct {
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

type MyRatingResponse struct {
	VideoID int64 `json:"video_id"`
	Rating  int   `json:"rating"`
}

// MessageResponse carries the outcome of toggle endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
