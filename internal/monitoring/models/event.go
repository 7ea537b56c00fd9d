package models

import "time"

// ProsesRequest adalah bentuk request kedua endpoint monitoring.
type ProsesRequest struct {
	TglAwal     string `json:"TglAwal"`
	TglAkhir    string `json:"TglAkhir"`
	KdInstalasi string `json:"KdInstalasi"`
}

// Event adalah satu kejadian progres pipeline. Pipeline menghasilkan urutan
// Event lewat channel; adapter transport (SSE, fallback sinkron, websocket)
// yang menentukan cara menyampaikannya.
type Event interface {
	EventType() string
}

type ProgressEvent struct {
	Type             string `json:"type"`
	Progress         int    `json:"progress"`
	CurrentBatch     int    `json:"currentBatch"`
	TotalBatches     int    `json:"totalBatches"`
	CurrentStep      string `json:"currentStep"`
	ProcessedRecords int    `json:"processedRecords"`
	TotalRecords     int    `json:"totalRecords"`
	Timestamp        string `json:"timestamp"`
}

type CompleteEvent struct {
	Type         string                    `json:"type"`
	Data         []DataVerifikasiPelayanan `json:"data"`
	TotalRecords int                       `json:"totalRecords"`
	Timestamp    string                    `json:"timestamp"`
}

type ErrorEvent struct {
	Type      string `json:"type"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

func (e ProgressEvent) EventType() string { return e.Type }
func (e CompleteEvent) EventType() string { return e.Type }
func (e ErrorEvent) EventType() string    { return e.Type }

func NewProgressEvent(progress, currentBatch, totalBatches int, currentStep string, processedRecords, totalRecords int) ProgressEvent {
	return ProgressEvent{
		Type:             "progress",
		Progress:         progress,
		CurrentBatch:     currentBatch,
		TotalBatches:     totalBatches,
		CurrentStep:      currentStep,
		ProcessedRecords: processedRecords,
		TotalRecords:     totalRecords,
		Timestamp:        time.Now().Format(time.RFC3339),
	}
}

func NewCompleteEvent(data []DataVerifikasiPelayanan) CompleteEvent {
	if data == nil {
		data = []DataVerifikasiPelayanan{}
	}
	return CompleteEvent{
		Type:         "complete",
		Data:         data,
		TotalRecords: len(data),
		Timestamp:    time.Now().Format(time.RFC3339),
	}
}

func NewErrorEvent(pesan string) ErrorEvent {
	return ErrorEvent{
		Type:      "error",
		Error:     pesan,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
