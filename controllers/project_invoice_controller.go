package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Akshay-214/WorkNest/config"
	"github.com/Akshay-214/WorkNest/models"
	"github.com/Akshay-214/WorkNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadProjectInvoice generates a PDF invoice for a completed project.
// Available to both parties.
func DownloadProjectInvoice(c *gin.Context) {
	utils.LogInfo("DownloadProjectInvoice called")
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID", nil)
		return
	}

	var project models.Project
	if err := config.DB.Preload("Job").First(&project, projectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return
	}
	if project.ClientID != user.ID && project.FreelancerID != user.ID {
		utils.Forbidden(c, "You are not a party to this project")
		return
	}
	if project.Status != models.ProjectStatusCompleted {
		utils.Conflict(c, "Invoices are only available for completed projects", nil)
		return
	}

	var client, freelancer models.User
	if err := config.DB.First(&client, project.ClientID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load client", err.Error())
		return
	}
	if err := config.DB.First(&freelancer, project.FreelancerID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load freelancer", err.Error())
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "WorkNest")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Freelance Marketplace")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@worknest.io")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Project ID: "+strconv.Itoa(int(project.ID)))
	if project.CompletedAt != nil {
		pdf.Cell(80, 8, "Completed: "+project.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, client.FirstName+" "+client.LastName+" ("+client.Username+")")
	pdf.Ln(6)
	pdf.Cell(100, 8, client.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Payable To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, freelancer.FirstName+" "+freelancer.LastName+" ("+freelancer.Username+")")
	pdf.Ln(6)
	pdf.Cell(100, 8, freelancer.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(120, 8, project.Job.Title, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, formatAmount(project.AgreedAmount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 10, formatAmount(project.AgreedAmount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for working with WorkNest!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate invoice PDF for project %d: %v", project.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", err.Error())
		return
	}
	utils.LogInfo("Invoice generated for project %d", project.ID)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=invoice.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
