// Package jobs holds the background task definitions and the Asynq worker
// runtime that processes them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan is the task type for the nightly low stock sweep.
	TaskLowStockScan = "catalog:low_stock_scan"
	// TaskReportWarmup is the task type for pre-populating report caches.
	TaskReportWarmup = "reporting:warmup"
)

// LowStockScanPayload parameterises a low stock sweep. An empty payload uses
// the configured threshold.
type LowStockScanPayload struct {
	Threshold int `json:"threshold,omitempty"`
}

// NewLowStockScanTask constructs an Asynq task for the low stock sweep.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// ReportWarmupPayload names the calendar day to warm; empty means yesterday.
type ReportWarmupPayload struct {
	Date string `json:"date,omitempty"`
}

// NewReportWarmupTask constructs an Asynq task for report warmup.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}
