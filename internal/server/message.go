package server

import (
	"encoding/json"
	"time"

	"github.com/lox/golfforbots/internal/env"
	"github.com/lox/golfforbots/internal/shot"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{
		Type:      messageType,
		Timestamp: time.Now(),
	}
	if data != nil {
		dataBytes, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = dataBytes
	}
	return msg, nil
}

// Client → Server Messages

// StepData is a discrete action: club index and direction in radians.
type StepData = env.Action

// StepBoxData is a continuous action in [-1, 1]².
type StepBoxData struct {
	A0 float64 `json:"a0"`
	A1 float64 `json:"a1"`
}

// DispersionData asks for the landing distribution of a discrete action.
type DispersionData = env.Action

// Server → Client Messages

// SpreadData answers a dispersion request with the mean landing point and
// its covariance.
type SpreadData = shot.Dispersion

// ObservationData answers a reset.
type ObservationData struct {
	Hole        int             `json:"hole"`
	Observation env.Observation `json:"observation"`
}

// StepResultData answers a step.
type StepResultData = env.StepResult

// CourseInfoData is sent on connect and in answer to info.
type CourseInfoData struct {
	SessionID  string      `json:"sessionId"`
	Seed       int64       `json:"seed"`
	Clubs      []string    `json:"clubs"`
	Lies       []string    `json:"lies"`
	Par        int         `json:"par"`
	Difficulty int         `json:"difficulty"`
	Rewards    env.Rewards `json:"rewards"`
	RasterCell int         `json:"rasterCell"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
