package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// IssueType tags a rider report
type IssueType string

// One vocabulary shared by the rider form and the admin panel
const (
	IssueBusNotArrived IssueType = "bus_not_arrived"
	IssueWrongTime     IssueType = "wrong_time"
	IssueDelay         IssueType = "delay"
	IssueTimeIssue     IssueType = "time_issue"
	IssueCanceled      IssueType = "canceled"
	IssueCrowded       IssueType = "crowded"
	IssueOther         IssueType = "other"
)

var issueTypeLabels = map[IssueType]string{
	IssueBusNotArrived: "Otobüs Gelmedi",
	IssueWrongTime:     "Saat Yanlış",
	IssueDelay:         "Gecikme Var",
	IssueTimeIssue:     "Saat Sorunu",
	IssueCanceled:      "İptal Edildi",
	IssueCrowded:       "Kalabalık",
	IssueOther:         "Diğer",
}

// IssueTypeOption is one entry of the issue vocabulary
type IssueTypeOption struct {
	Value IssueType `json:"value"`
	Label string    `json:"label"`
}

// IssueTypes returns the vocabulary in display order
func IssueTypes() []IssueTypeOption {
	order := []IssueType{
		IssueBusNotArrived, IssueWrongTime, IssueDelay,
		IssueTimeIssue, IssueCanceled, IssueCrowded, IssueOther,
	}
	options := make([]IssueTypeOption, 0, len(order))
	for _, t := range order {
		options = append(options, IssueTypeOption{Value: t, Label: issueTypeLabels[t]})
	}
	return options
}

// Known reports whether t belongs to the vocabulary
func (t IssueType) Known() bool {
	_, ok := issueTypeLabels[t]
	return ok
}

// Label returns the display label, or the raw tag for unknown values
func (t IssueType) Label() string {
	if label, ok := issueTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Report is a rider complaint about one departure
type Report struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ScheduleID  uuid.UUID `json:"schedule_id" db:"schedule_id"`
	IssueType   IssueType `json:"issue_type" db:"issue_type"`
	Description string    `json:"description" db:"description"`
	IsResolved  bool      `json:"is_resolved" db:"is_resolved"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReportRow is a report left-joined with schedule, route and company
type ReportRow struct {
	Report
	DepartureTime *string `db:"departure_time"`
	Origin        *string `db:"origin"`
	Destination   *string `db:"destination"`
	CompanyName   *string `db:"company_name"`
}

// Complete reports whether the joined schedule, route and company are present
func (r ReportRow) Complete() bool {
	return r.DepartureTime != nil && r.Origin != nil && r.Destination != nil && r.CompanyName != nil
}

// ReportView is a displayable report with its departure context
type ReportView struct {
	Report
	IssueLabel    string `json:"issue_label"`
	DepartureTime string `json:"departure_time"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	CompanyName   string `json:"company_name"`
}

// View flattens a complete row; callers must check Complete first
func (r ReportRow) View() ReportView {
	company := UnknownCompanyName
	if r.CompanyName != nil && strings.TrimSpace(*r.CompanyName) != "" {
		company = *r.CompanyName
	}
	return ReportView{
		Report:        r.Report,
		IssueLabel:    r.IssueType.Label(),
		DepartureTime: *r.DepartureTime,
		Origin:        *r.Origin,
		Destination:   *r.Destination,
		CompanyName:   company,
	}
}

// SubmitReportRequest is the payload of POST /api/reports
type SubmitReportRequest struct {
	ScheduleID  string `json:"scheduleId"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

// Validate checks required fields
func (r *SubmitReportRequest) Validate() error {
	if strings.TrimSpace(r.ScheduleID) == "" {
		return ErrInvalidInput("Schedule ID is required")
	}
	if strings.TrimSpace(r.IssueType) == "" {
		return ErrInvalidInput("Issue type is required")
	}
	return nil
}

// ResolveReportRequest is the payload of POST /api/admin/reports/resolve
type ResolveReportRequest struct {
	ReportID string `json:"reportId"`
}
