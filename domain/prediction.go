package domain

import "time"

const (
	PartyDemocrat   = "Democrat"
	PartyRepublican = "Republican"
)

// ComparisonMatrix is the precomputed reference data shipped next to each
// model artifact.
type ComparisonMatrix map[string]any

// ResultPacket is one element of the /predict response array.
type ResultPacket map[string]any

// Prediction is what the pipeline hands back to the HTTP layer.
type Prediction struct {
	Handle         string
	Algorithm      Algorithm
	PredictedClass int
	Predicted      string
	PostCount      int
	Packet         ResultPacket
}

// PredictionEvent is the persisted history row of one prediction.
type PredictionEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TraceID        string    `gorm:"column:trace_id;index" json:"trace_id"`
	Handle         string    `gorm:"column:handle;not null;index" json:"handle"`
	AlgoName       string    `gorm:"column:algo_name;not null" json:"algoname"`
	ArtifactName   string    `gorm:"column:artifact_name;not null" json:"artifact_name"`
	PredictedClass int       `gorm:"column:predicted_class;not null" json:"predicted_class"`
	Predicted      string    `gorm:"column:predicted;not null" json:"predicted"`
	PostCount      int       `gorm:"column:post_count;not null" json:"post_count"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PredictionEvent) TableName() string {
	return "prediction_events"
}
