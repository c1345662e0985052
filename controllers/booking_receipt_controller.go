package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadReceipt renders a PDF receipt for one of the caller's bookings.
func DownloadReceipt(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	booking, err := svc.GetBooking(c.Request.Context(), user, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := renderReceipt(&buf, booking); err != nil {
		utils.LogError("Failed to render receipt for booking %d: %v", booking.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}
	utils.LogInfo("Receipt generated for booking %d", booking.ID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=booking_%d.pdf", booking.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func renderReceipt(buf *bytes.Buffer, b *models.Booking) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "TurfSphere")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "BOOKING RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, fmt.Sprintf("Booking ID: #BK%d", b.ID))
	pdf.Cell(80, 8, "Booked On: "+b.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Status: "+b.Status)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Booked By:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	name := b.User.FirstName + " " + b.User.LastName
	if b.User.FirstName == "" && b.User.LastName == "" {
		name = b.User.Username
	}
	pdf.Cell(100, 8, name)
	pdf.Ln(6)
	if b.User.Email != "" {
		pdf.Cell(100, 8, b.User.Email)
		pdf.Ln(6)
	}
	pdf.Cell(100, 8, "Phone: "+b.User.Mobile)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(55, 8, "Turf", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Ground", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Slot", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(55, 8, b.Cart.Turf.Name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, b.Cart.Ground.Name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, b.Cart.Date, "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, b.Cart.Slot.StartTime+"-"+b.Cart.Slot.EndTime, "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", utils.PaiseToRupees(b.Cart.Turf.PricePerHour)), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for booking with TurfSphere!")

	return pdf.Output(buf)
}
