package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shenikar/resqalert/internal/models"
)

const (
	margin       = 20.0
	contentWidth = 170.0
	lineHeight   = 8.0
	labelWidth   = 50.0
	timeLayout   = "2006-01-02 15:04 MST"
	notAvailable = "N/A"
)

// document - обертка над fpdf с разметкой печатных форм консоли
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title, subtitle string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, d.tr(subtitle), "", 1, "L", false, 0, "")
	d.divider()
	return d
}

func (d *document) field(label, value string) {
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(labelWidth, lineHeight, d.tr(label+":"), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.MultiCell(contentWidth-labelWidth, lineHeight, d.tr(orNA(value)), "", "L", false)
}

func (d *document) heading(text string) {
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(0, 7, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) paragraph(text, fallback string) {
	if strings.TrimSpace(text) == "" {
		text = fallback
	}
	d.pdf.SetFont("Helvetica", "", 11)
	d.pdf.MultiCell(contentWidth, 6, d.tr(text), "", "L", false)
}

func (d *document) divider() {
	d.pdf.SetDrawColor(150, 150, 150)
	y := d.pdf.GetY() + 2
	d.pdf.Line(margin, y, margin+contentWidth, y)
	d.pdf.SetY(y + 4)
}

func (d *document) write(w io.Writer) error {
	d.pdf.Ln(6)
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.CellFormat(0, 6, "This report was system generated.", "", 1, "L", false, 0, "")
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("export: could not render pdf: %w", err)
	}
	return nil
}

// Report печатает сообщение об инциденте от имени ведомства role
func Report(w io.Writer, report *models.Report, role models.Role) error {
	d := newDocument("Incident / Accident Report", "Generated Report")

	d.field("Date/Time", formatTime(report.Timestamp, report.CreatedAt))
	d.field("Issuing Department", role.Department())
	d.field("Place Name", report.Place)
	d.field("Latitude", formatCoordinate(report.Latitude))
	d.field("Longitude", formatCoordinate(report.Longitude))
	d.field("Status", string(report.Status))
	d.field("Accident Type", strings.Join(report.AccidentType, ", "))
	d.divider()

	d.heading("People Involved")
	who := report.WhoInvolved
	if who == "" {
		who = report.PhoneNumber
	}
	d.field("Who's Involved", who)
	d.field("No. of People", strconv.Itoa(report.PeopleCount))
	d.divider()

	d.heading("Additional Notes")
	d.paragraph(report.Notes, "No notes provided.")
	d.divider()

	d.heading("Incident Details")
	d.paragraph(report.Details, "No additional details provided.")
	d.divider()

	if len(report.Media) > 0 {
		d.heading("Attached Media")
		for _, m := range report.Media {
			d.paragraph(m, notAvailable)
		}
		d.divider()
	}

	return d.write(w)
}

// Request печатает одобренный запрос на передачу инцидента с подробностями
func Request(w io.Writer, request *models.HandoffRequest, role models.Role) error {
	d := newDocument("Incident Hand-off Report", "Issued by "+role.Department())

	d.field("Request ID", request.ID.String())
	d.field("Incident ID", request.IncidentID.String())
	d.field("Requested By", request.FromRole.Department())
	d.field("Requested To", request.ToRole.Department())
	d.field("Status", string(request.Status))
	d.field("Requested At", formatTime(&request.Timestamp, time.Time{}))
	d.divider()

	detail := request.Approval
	if detail == nil {
		detail = &models.RequestDetail{}
	}
	d.heading("People Involved")
	d.field("Who's Involved", detail.WhoInvolved)
	d.field("No. of People", strconv.Itoa(detail.PeopleCount))
	d.divider()

	d.heading("Additional Notes")
	d.paragraph(detail.Notes, "No notes provided.")
	d.divider()

	d.heading("Incident Details")
	d.paragraph(detail.Details, "No additional details provided.")
	d.divider()

	if request.Approval != nil {
		d.field("Approved At", formatTime(&detail.Timestamp, time.Time{}))
	}

	return d.write(w)
}

// Dashboard печатает сводные показатели панели мониторинга
func Dashboard(w io.Writer, stats *models.DashboardStats, role models.Role) error {
	d := newDocument("Incident Summary", "Prepared for "+role.Department())

	d.field("Generated At", formatTime(&stats.GeneratedAt, time.Time{}))
	d.field("Total Reports", strconv.Itoa(stats.TotalReports))
	d.field("Blocked Numbers", strconv.Itoa(stats.BlockedNumbers))
	d.divider()

	d.heading("Reports by Agency")
	for _, a := range models.AgencyRoles {
		d.field(string(a), strconv.Itoa(stats.ByAgency[a]))
	}
	d.divider()

	d.heading("Reports by Status")
	for _, st := range models.ReportStatuses {
		d.field(string(st), strconv.Itoa(stats.ByStatus[st]))
	}
	d.divider()

	d.heading("Monthly Reports")
	if len(stats.Monthly) == 0 {
		d.paragraph("", "No dated reports.")
	}
	for _, m := range stats.Monthly {
		d.field(m.Label, strconv.Itoa(m.Count))
	}

	return d.write(w)
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}

func formatTime(ts *time.Time, fallback time.Time) string {
	switch {
	case ts != nil && !ts.IsZero():
		return ts.UTC().Format(timeLayout)
	case !fallback.IsZero():
		return fallback.UTC().Format(timeLayout)
	}
	return notAvailable
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
