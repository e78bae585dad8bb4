package fiber

// RecordListeningRequest represents a single playback report
// @Description Listening DTO; timestamp is unix seconds and defaults to now
type RecordListeningRequest struct {
	ExcursionPointID int64 `json:"excursion_point_id" example:"31"`
	Timestamp        int64 `json:"timestamp" example:"1710071940"`
}

type RecordListeningResponse struct {
	Status string `json:"status" example:"created"`
}

type BulkRecordListeningRequest struct {
	Listenings []RecordListeningRequest `json:"listenings"`
}

type BulkRecordListeningResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_listening"`
	Message string `json:"message,omitempty" example:"invalid listening"`
}
