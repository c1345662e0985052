package controllers

import (
	"fmt"
	"io"

	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"Booking ID", "Customer", "Email", "Turf", "Ground", "Date", "Slot",
	"Amount (Rs)", "Status", "Vendor Status", "Booked At",
}

// AdminExportBookings downloads the booking ledger as an Excel sheet.
func AdminExportBookings(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	bookings, err := svc.ListBookings(c.Request.Context(), admin, services.AdminView)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	day := svc.Now().In(svc.Loc).Format(utils.DateLayout)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bookings_%s.xlsx", day))
	if err := writeBookingSheet(c.Writer, bookings); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("Exported %d bookings for admin %d", len(bookings), admin.ID)
}

func writeBookingSheet(w io.Writer, bookings []services.BookingView) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Bookings")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	for _, h := range exportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}

	var total int64
	for _, b := range bookings {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(b.ID))
		row.AddCell().SetString(b.User.Username)
		row.AddCell().SetString(b.User.Email)
		row.AddCell().SetString(b.Turf.Name)
		row.AddCell().SetString(b.Ground.Name)
		row.AddCell().SetString(b.Date)
		row.AddCell().SetString(b.Slot.StartTime + "-" + b.Slot.EndTime)
		row.AddCell().SetFloat(utils.PaiseToRupees(b.AmountPaise))
		row.AddCell().SetString(b.Status)
		row.AddCell().SetString(b.VendorStatus)
		row.AddCell().SetString(b.CreatedAt)
		total += b.AmountPaise
	}

	sheet.AddRow()
	summary := sheet.AddRow()
	label := summary.AddCell()
	label.SetString("Total bookings")
	label.SetStyle(style)
	summary.AddCell().SetInt(len(bookings))
	summary = sheet.AddRow()
	label = summary.AddCell()
	label.SetString("Gross value (Rs)")
	label.SetStyle(style)
	summary.AddCell().SetFloat(utils.PaiseToRupees(total))

	return file.Write(w)
}
