package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"trip-log-service/internal/domain"

	"github.com/phpdave11/gofpdf"
)

// graphRows is the order of the duty graph rows on a paper log.
var graphRows = []domain.DutyStatus{
	domain.StatusOffDuty,
	domain.StatusSleeperBerth,
	domain.StatusDriving,
	domain.StatusOnDuty,
}

// LogFilename is the download name of a daily log PDF.
func LogFilename(l *domain.DailyLog) string {
	driver := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, l.DriverName)
	return fmt.Sprintf("eld_log_%s_%s.pdf", l.LogDate.Format("2006-01-02"), driver)
}

// DailyLogPDF renders one daily log as a US Letter page: header, 24-hour
// duty graph, duty table, hour totals and the compliance verdict.
func DailyLogPDF(t *domain.Trip, l *domain.DailyLog) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("ELD Daily Log "+l.LogDate.Format("2006-01-02"), false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Electronic Logging Device - Daily Log", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := [][2]string{
		{"Driver:", l.DriverName},
		{"Date:", l.LogDate.Format("01/02/2006")},
		{"Vehicle:", l.VehicleNumber},
		{"Carrier:", l.CarrierName},
	}
	if t != nil {
		header = append(header,
			[2]string{"From:", t.CurrentLocation},
			[2]string{"Pickup:", t.PickupLocation},
			[2]string{"Dropoff:", t.DropoffLocation},
		)
	}
	for _, row := range header {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	drawGraph(pdf, l.Segments)
	pdf.Ln(6)

	drawDutyTable(pdf, l.Segments)
	pdf.Ln(6)

	a := l.Allocation
	summary := [][2]string{
		{"Off Duty Hours:", fmt.Sprintf("%.2f", a.OffDutyHours)},
		{"Sleeper Berth Hours:", fmt.Sprintf("%.2f", a.SleeperBerthHours)},
		{"Driving Hours:", fmt.Sprintf("%.2f", a.DrivingHours)},
		{"On Duty Hours:", fmt.Sprintf("%.2f", a.OnDutyHours)},
		{"Total Hours:", fmt.Sprintf("%.2f", a.Total())},
		{"Cycle Hours Used:", fmt.Sprintf("%.2f", l.CycleHoursUsed)},
		{"Available (70hr/8day):", fmt.Sprintf("%.2f", l.RollingCycle.HoursAvailable70hr)},
	}
	for _, row := range summary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(25, 6, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	c := l.Compliance
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Compliance: %s (%d violations, severity %s)",
		c.Status, c.ViolationCount, c.OverallSeverity), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, v := range c.Violations {
		pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s: %s (%s)", v.Severity, v.Type, v.Description, v.Rule), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render daily log pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawGraph(pdf *gofpdf.Fpdf, segs []domain.DutySegment) {
	const (
		labelW = 30.0
		gridW  = 160.0
		rowH   = 7.0
	)
	hourW := gridW / 24

	x0, y0 := pdf.GetX()+labelW, pdf.GetY()+5

	var start time.Time
	if len(segs) > 0 {
		start = segs[0].StartTime
	}

	pdf.SetFont("Helvetica", "", 6)
	for h := 0; h <= 24; h++ {
		x := x0 + float64(h)*hourW
		if h < 24 {
			pdf.Text(x+0.5, y0-1, start.Add(time.Duration(h)*time.Hour).Format("15"))
		}
		pdf.SetDrawColor(160, 160, 160)
		pdf.Line(x, y0, x, y0+rowH*float64(len(graphRows)))
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetDrawColor(0, 0, 0)
	for i, s := range graphRows {
		y := y0 + float64(i)*rowH
		pdf.Text(x0-labelW, y+rowH/2+1, s.Title())
		pdf.Rect(x0, y, gridW, rowH, "D")
	}

	pdf.SetLineWidth(0.8)
	pdf.SetDrawColor(20, 60, 160)
	prevY := -1.0
	for _, seg := range segs {
		row := rowOf(seg.Status)
		if row < 0 {
			continue
		}
		y := y0 + float64(row)*rowH + rowH/2
		x1 := x0 + seg.StartTime.Sub(start).Hours()*hourW
		x2 := x0 + seg.EndTime.Sub(start).Hours()*hourW
		if prevY >= 0 && prevY != y {
			pdf.Line(x1, prevY, x1, y)
		}
		pdf.Line(x1, y, x2, y)
		prevY = y
	}
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)

	pdf.SetY(y0 + rowH*float64(len(graphRows)))
}

func rowOf(s domain.DutyStatus) int {
	for i, r := range graphRows {
		if r == s {
			return i
		}
	}
	return -1
}

func drawDutyTable(pdf *gofpdf.Fpdf, segs []domain.DutySegment) {
	widths := []float64{22, 22, 28, 45, 73}
	headers := []string{"Start Time", "End Time", "Status", "Location", "Remarks"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, s := range segs {
		cells := []string{
			s.StartTime.Format("15:04"),
			s.EndTime.Format("15:04"),
			s.Status.Title(),
			s.Location,
			s.Remarks,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}
