package http

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/dto"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// AdminHandler operaciones administrativas: historial de cambios y carga masiva.
type AdminHandler struct {
	movements *stock.GetStockMovementsUseCase
	adjust    *stock.AdjustStockUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(movements *stock.GetStockMovementsUseCase, adjust *stock.AdjustStockUseCase) *AdminHandler {
	return &AdminHandler{movements: movements, adjust: adjust}
}

// GetChangeLogs godoc
// @Summary      Historial de cambios de stock
// @Tags         admin
// @Produce      json
// @Param        sku_id  query  string  false  "Filtrar por SKU"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Máximo de filas (por defecto 50)"
// @Param        offset  query  int     false  "Desplazamiento de paginación"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/admin/change-logs [get]
func (h *AdminHandler) GetChangeLogs(c *fiber.Ctx) error {
	f := repository.StockMovementFilter{
		SkuID:  c.Query("sku_id"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "parámetro from inválido, se espera RFC3339"})
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "parámetro to inválido, se espera RFC3339"})
		}
		f.To = t
	}

	out, err := h.movements.GetByFilter(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(out),
		"change_logs": out,
	})
}

// UploadCSV godoc
// @Summary      Carga masiva de stock por CSV
// @Description  Archivo con cabecera sku_id,quantity; cada fila fija el total
//
//	del SKU en el valor indicado. La carga es todo o nada.
//
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV sku_id,quantity"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/admin/upload-csv [post]
func (h *AdminHandler) UploadCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo CSV en el campo file"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()

	cmds, err := parseStockCSV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CSV", Message: err.Error()})
	}

	if err := h.adjust.AdjustBulk(c.Context(), cmds); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "carga aplicada", "total": len(cmds)})
}

// parseStockCSV lee filas sku_id,quantity. La primera fila puede ser cabecera.
func parseStockCSV(r io.Reader) ([]command.AdjustStockCommand, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var cmds []command.AdjustStockCommand
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fila %d ilegible: %w", line+1, err)
		}
		line++
		skuID := strings.TrimSpace(record[0])
		rawQty := strings.TrimSpace(record[1])
		if line == 1 && strings.EqualFold(skuID, "sku_id") {
			continue
		}
		if skuID == "" {
			return nil, fmt.Errorf("fila %d: sku_id vacío", line)
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil {
			return nil, fmt.Errorf("fila %d: cantidad inválida %q", line, rawQty)
		}
		cmds = append(cmds, command.AdjustStockCommand{SkuID: skuID, Quantity: qty})
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("el archivo no contiene filas de datos")
	}
	return cmds, nil
}
