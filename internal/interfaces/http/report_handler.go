package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/agrofiscal/mapa-api/internal/application/dto"
	"github.com/agrofiscal/mapa-api/internal/application/report"
	"github.com/agrofiscal/mapa-api/internal/domain"
)

// ReportHandler trata o processamento trimestral e a exportação (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Process godoc
// @Summary      Processar o trimestre
// @Description  Agrega as NF-es enviadas do período contra o catálogo. A resposta
// @Description  é terminal: ok=true com as linhas agregadas, ou ok=false com a
// @Description  lista completa de pendências de cadastro.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessRequest  true  "period (ex: Q1-2025)"
// @Success      200   {object}  dto.ProcessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/process [post]
func (h *ReportHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Process(GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REQUEST", Message: err.Error()})
		case errors.Is(err, domain.ErrMalformedInvoice):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_NFE", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Histórico de relatórios gerados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "limite (padrão 20)"
// @Param        offset  query  int  false  "offset"
// @Success      200  {array}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	out, err := h.uc.ListReports(GetUserID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover relatório do histórico
// @Tags         reports
// @Security     Bearer
// @Param        id   path  string  true  "ID do relatório"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteReport(GetUserID(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "relatório não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Baixar o relatório do trimestre em PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  path  string  true  "trimestre (ex: Q1-2025)"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/{period}/pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	period := c.Params("period")
	data, err := h.uc.GeneratePDF(GetUserID(c), period)
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="relatorio-mapa-%s.pdf"`, period))
	return c.Send(data)
}

// DownloadXLSX godoc
// @Summary      Baixar a planilha de declaração do trimestre
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        period  path  string  true  "trimestre (ex: Q1-2025)"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/{period}/xlsx [get]
func (h *ReportHandler) DownloadXLSX(c *fiber.Ctx) error {
	period := c.Params("period")
	data, err := h.uc.GenerateXLSX(GetUserID(c), period)
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="relatorio-mapa-%s.xlsx"`, period))
	return c.Send(data)
}

// exportError mapeia as falhas de exportação para HTTP.
func (h *ReportHandler) exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REQUEST", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNRESOLVED_ENTRIES", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
