package domain

import (
	"errors"
	"time"
)

var (
	ErrReportStartRequired = errors.New("start date is required")
	ErrReportRangeInvalid  = errors.New("start date must not be after end date")
)

// ReportKind names what a transaction report is grouped by
type ReportKind string

const (
	ReportByAgent        ReportKind = "agent"
	ReportByProvider     ReportKind = "insurance-provider"
	ReportByVehicleClass ReportKind = "vehicle-class"
)

// ReportRange is the start-date window of a transaction report
type ReportRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionReport lists the policies of one agent, provider or vehicle class with their totals
type TransactionReport struct {
	Kind         ReportKind    `json:"kind"`
	SubjectID    int32         `json:"subjectId"`
	SubjectName  string        `json:"subjectName"`
	StartDate    *time.Time    `json:"startDate,omitempty"`
	EndDate      *time.Time    `json:"endDate,omitempty"`
	Agent        *Agent        `json:"agent,omitempty"`
	Provider     *Provider     `json:"insuranceProvider,omitempty"`
	VehicleClass *VehicleClass `json:"vehicleClass,omitempty"`
	Policies     []*Policy     `json:"transactions"`
	Totals       SummaryTotals `json:"totalSum"`
}
