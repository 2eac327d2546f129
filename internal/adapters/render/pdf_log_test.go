package render

import (
	"bytes"
	"testing"
	"time"

	"trip-log-service/internal/hos"
)

func TestDailyLogPDF(t *testing.T) {
	today := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	logs, err := hos.GenerateTripLogs(20, 30, today)
	if err != nil {
		t.Fatalf("generate logs: %v", err)
	}

	for i := range logs {
		out, err := DailyLogPDF(nil, &logs[i])
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", i, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("day %d: output is not a PDF", i)
		}
	}
}

func TestLogFilename(t *testing.T) {
	logs, err := hos.GenerateTripLogs(0, 5, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate logs: %v", err)
	}
	l := logs[0]
	l.DriverName = `Jane "JD" Doe`

	if got, want := LogFilename(&l), "eld_log_2026-10-17_Jane__JD__Doe.pdf"; got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}
