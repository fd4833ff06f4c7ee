package report

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"famigliapp/internal/service/calendario"
	"famigliapp/internal/storage"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetRanking    = "Classifica"
	sheetShifts     = "Turni"
	sheetViolations = "Violazioni"
)

type PointsStorage interface {
	Ranking(ctx context.Context) ([]storage.RankedPoints, error)
}

type RosterSource interface {
	Roster(ctx context.Context, from, to storage.Date) (calendario.Roster, error)
}

type Service struct {
	points PointsStorage
	roster RosterSource
}

func NewService(points PointsStorage, roster RosterSource) *Service {
	return &Service{points: points, roster: roster}
}

// PointsExcel: классификация A/O/U одним листом.
func (s *Service) PointsExcel(ctx context.Context) ([]byte, error) {
	const op = "service.report.PointsExcel"

	ranking, err := s.points.Ranking(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRanking); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headers := []string{"Posizione", "Utente", "A", "O", "U", "Totale"}
	if err := writeHeader(f, sheetRanking, headers, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, p := range ranking {
		row := i + 2
		values := []any{p.Rank, p.Username, p.A, p.O, p.U, p.Total}
		for col, v := range values {
			if err := f.SetCellValue(sheetRanking, cellName(col+1, row), v); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	freezeHeader(f, sheetRanking)
	_ = f.SetColWidth(sheetRanking, "B", "B", 20)

	return write(f, op)
}

// ShiftsExcel: лист "Turni" (строки: даты, колонки: сотрудники, "X": смена)
// и лист "Violazioni" с результатом проверки правил.
func (s *Service) ShiftsExcel(ctx context.Context, from, to storage.Date) ([]byte, error) {
	const op = "service.report.ShiftsExcel"

	roster, err := s.roster.Roster(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetShifts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := f.NewSheet(sheetViolations); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// колонки сотрудников: сначала состав, затем неизвестные имена из смен
	names := make([]string, 0, len(roster.Employees))
	for _, e := range roster.Employees {
		names = append(names, e.Name)
	}
	for _, sh := range roster.Shifts {
		if !slices.Contains(names, sh.Employee) {
			names = append(names, sh.Employee)
		}
	}

	headers := append([]string{"Data", "Giorno"}, names...)
	if err := writeHeader(f, sheetShifts, headers, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	empCol := make(map[string]int, len(names))
	for i, n := range names {
		empCol[n] = i + 3
	}

	rowOf := make(map[storage.Date]int)
	row := 2
	for d := roster.From; !d.After(roster.To); d = d.AddDays(1) {
		rowOf[d] = row
		_ = f.SetCellValue(sheetShifts, cellName(1, row), string(d))
		_ = f.SetCellValue(sheetShifts, cellName(2, row), weekdayNames[d.Time().Weekday()])
		row++
	}

	for _, sh := range roster.Shifts {
		r, ok := rowOf[sh.Date]
		if !ok {
			continue
		}
		if err := f.SetCellValue(sheetShifts, cellName(empCol[sh.Employee], r), "X"); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	freezeHeader(f, sheetShifts)

	if err := writeHeader(f, sheetViolations, []string{"Data", "Regola", "Persone", "Descrizione"}, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, v := range roster.Violations {
		r := i + 2
		_ = f.SetCellValue(sheetViolations, cellName(1, r), string(v.Date))
		_ = f.SetCellValue(sheetViolations, cellName(2, r), v.Rule)
		_ = f.SetCellValue(sheetViolations, cellName(3, r), strings.Join(v.Employees, ", "))
		_ = f.SetCellValue(sheetViolations, cellName(4, r), v.Message)
	}
	freezeHeader(f, sheetViolations)
	_ = f.SetColWidth(sheetViolations, "D", "D", 60)

	return write(f, op)
}

var weekdayNames = [...]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"}

func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style)
}

func freezeHeader(f *excelize.File, sheet string) {
	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func write(f *excelize.File, op string) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
