package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/service/report"
	"famigliapp/internal/storage"
)

type ReportGenerator interface {
	PointsExcel(ctx context.Context) ([]byte, error)
	ShiftsExcel(ctx context.Context, from, to storage.Date) ([]byte, error)
}

// PointsReport отдаёт рейтинг A/O/U файлом xlsx.
func PointsReport(log *slog.Logger, gen ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.PointsReport"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.PointsExcel(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		writeExcel(w, fmt.Sprintf("Punti_%s.xlsx", time.Now().Format("2006-01-02_150405")), excelBytes)
	}
}

// ShiftsReport: расписание за ?from&to; без параметров берётся текущий месяц.
func ShiftsReport(log *slog.Logger, gen ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.ShiftsReport"

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		from, ok := dateParam(r, "from", storage.DateOf(startOfMonth))
		if !ok {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		to, ok := dateParam(r, "to", storage.DateOf(startOfMonth.AddDate(0, 1, -1)))
		if !ok {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.ShiftsExcel(ctx, from, to)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		writeExcel(w, fmt.Sprintf("Turni_%s_%s.xlsx", from, to), excelBytes)
	}
}

func dateParam(r *http.Request, name string, def storage.Date) (storage.Date, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	d, err := storage.ParseDate(v)
	if err != nil {
		return "", false
	}
	return d, true
}

func writeExcel(w http.ResponseWriter, fileName string, data []byte) {
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	_, _ = w.Write(data)
}
