package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// reportTemplate is the printable job report; the mobile client feeds this
// HTML to its print-to-PDF surface.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>TechTimes Job Report</title>
<style>
body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 24px; color: #111; }
h1 { font-size: 20px; }
.meta { color: #666; font-size: 12px; margin-bottom: 16px; }
table { border-collapse: collapse; width: 100%; font-size: 13px; }
th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
th { background: #f2f2f2; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Job Report{{if .TechnicianName}} - {{.TechnicianName}}{{end}}</h1>
<div class="meta">Generated {{.GeneratedAt}} · {{.TotalJobs}} jobs</div>
<table>
<thead>
<tr><th>Date</th><th>WIP</th><th>Registration</th><th>AW</th><th>Time</th><th>VHC</th><th>Notes</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.WIP}}</td><td>{{.Reg}}</td><td>{{.AW}}</td><td>{{.Time}}</td><td>{{.VHC}}</td><td>{{.Notes}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="3">Total</td><td>{{.TotalAW}}</td><td>{{.TotalTime}}</td><td colspan="2"></td></tr>
</tfoot>
</table>
</body>
</html>
`))

type reportRow struct {
	Date  string
	WIP   string
	Reg   string
	AW    int
	Time  string
	VHC   string
	Notes string
}

type reportData struct {
	TechnicianName string
	GeneratedAt    string
	TotalJobs      int
	TotalAW        int
	TotalTime      string
	Rows           []reportRow
}

// HTML renders the printable report for the given jobs.
func HTML(jobs []models.Job, profile models.TechnicianProfile, now time.Time) ([]byte, error) {
	data := reportData{
		TechnicianName: profile.Name,
		GeneratedAt:    now.Format("2006-01-02 15:04"),
		TotalJobs:      len(jobs),
	}
	for _, j := range jobs {
		data.TotalAW += j.AW
		data.Rows = append(data.Rows, reportRow{
			Date:  calc.DayKey(j.CreatedAt),
			WIP:   j.WIPNumber,
			Reg:   j.VehicleReg,
			AW:    j.AW,
			Time:  calc.FormatTime(calc.AWToMinutes(j.AW)),
			VHC:   string(j.VHCStatus),
			Notes: j.Notes,
		})
	}
	data.TotalTime = calc.FormatTime(calc.AWToMinutes(data.TotalAW))

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
