package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"innkeep/internal/domain"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ScheduleExporter renders the room schedule grid to an .xlsx file:
// rooms down the rows, dates across the columns, one cell per room-night.
type ScheduleExporter struct {
	store  domain.Store
	path   string
	logger *zerolog.Logger
}

func NewScheduleExporter(store domain.Store, path string, logger *zerolog.Logger) *ScheduleExporter {
	return &ScheduleExporter{store: store, path: path, logger: logger}
}

// ExportSchedule создает Excel файл с сеткой занятости номеров
func (e *ScheduleExporter) ExportSchedule(ctx context.Context, hotelID int64, startDate, endDate time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	startDate = models.Day(startDate)
	endDate = models.Day(endDate)

	rooms, err := e.store.ListActiveRooms(ctx, hotelID)
	if err != nil {
		return "", fmt.Errorf("error getting rooms: %v", err)
	}

	// Half-open stays: a booking touching the range holds nights in
	// [check_in, check_out), so the range query uses end+1 as the exclusive bound.
	bookings, err := e.store.GetStaysInRange(ctx, hotelID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Расписание"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Период: %s - %s",
		startDate.Format("02.01.2006"), endDate.Format("02.01.2006")))

	dateCols := e.writeDateHeaders(f, sheetName, startDate, endDate)
	e.writeRoomHeaders(f, sheetName, rooms)
	e.writeStayCells(f, sheetName, rooms, bookings, startDate, endDate, dateCols)

	_ = f.SetColWidth(sheetName, "A", "A", 25)
	for i := 'B'; i <= 'Z'; i++ {
		_ = f.SetColWidth(sheetName, string(i), string(i), 20)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(dateCols) + 1)
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("schedule_%d_%s_to_%s.xlsx",
		hotelID,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}

func (e *ScheduleExporter) writeDateHeaders(f *excelize.File, sheetName string, startDate, endDate time.Time) map[string]int {
	col := 2
	currentDate := startDate
	dateCols := make(map[string]int)

	for !currentDate.After(endDate) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(sheetName, cell, currentDate.Format("02.01"))
		dateCols[currentDate.Format(models.DateLayout)] = col

		style, _ := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		_ = f.SetCellStyle(sheetName, cell, cell, style)

		col++
		currentDate = currentDate.AddDate(0, 0, 1)
	}
	return dateCols
}

func (e *ScheduleExporter) writeRoomHeaders(f *excelize.File, sheetName string, rooms []models.Room) {
	row := 3
	for _, room := range rooms {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("%s (%s)", room.RoomNumber, room.RoomType))

		style, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
			Font: &excelize.Font{Bold: true},
		})
		_ = f.SetCellStyle(sheetName, cell, cell, style)

		row++
	}
}

func (e *ScheduleExporter) writeStayCells(
	f *excelize.File, sheetName string,
	rooms []models.Room,
	bookings []models.Booking,
	startDate, endDate time.Time,
	dateCols map[string]int,
) {
	bookingsByRoom := make(map[int64][]*models.Booking)
	for i := range bookings {
		b := &bookings[i]
		bookingsByRoom[b.RoomID] = append(bookingsByRoom[b.RoomID], b)
	}

	row := 3
	for _, room := range rooms {
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
			col := dateCols[day.Format(models.DateLayout)]
			cell, _ := excelize.CoordinatesToCellName(col, row)

			var occupant *models.Booking
			for _, booking := range bookingsByRoom[room.ID] {
				if booking.Stay.ContainsDay(day) {
					occupant = booking
					break
				}
			}

			if occupant == nil {
				_ = f.SetCellValue(sheetName, cell, "Свободно")
				if styleID, err := e.cellStyle(f, "#FFFFFF"); err == nil {
					_ = f.SetCellStyle(sheetName, cell, cell, styleID)
				}
				continue
			}

			_ = f.SetCellValue(sheetName, cell,
				fmt.Sprintf("%s\n%s", occupant.GuestName, occupant.Reference))

			color := "#FFEB9C" // не оплачено
			if occupant.PaymentStatus == models.PaymentPaid {
				color = "#C6EFCE"
			}
			if styleID, err := e.cellStyle(f, color); err == nil {
				_ = f.SetCellStyle(sheetName, cell, cell, styleID)
			}
		}
		row++
	}
}

func (e *ScheduleExporter) cellStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	})
}

// ExportBookings создает Excel файл со списком бронирований
func (e *ScheduleExporter) ExportBookings(ctx context.Context, hotelID int64, limit int) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings, err := e.store.ListBookings(ctx, hotelID, limit)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Бронирования"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Номер брони", "Комната", "Гость", "Телефон",
		"Заезд", "Выезд", "Гостей", "Сумма", "Оплата", "Статус", "Создано",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for i, b := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.Reference)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), b.RoomNumber)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.GuestName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.GuestPhone)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), b.Stay.CheckIn.Format("02.01.2006"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), b.Stay.CheckOut.Format("02.01.2006"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), b.GuestCount)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), b.TotalAmount.StringFixed(2))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), b.PaymentStatus)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), b.BookingStatus)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), b.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "B", 38)
	_ = f.SetColWidth(sheetName, "C", "E", 18)
	_ = f.SetColWidth(sheetName, "F", "H", 12)
	_ = f.SetColWidth(sheetName, "I", "L", 16)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%d_%s.xlsx", hotelID, time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("Bookings Excel file created")
	return filePath, nil
}
