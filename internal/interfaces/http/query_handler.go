package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/dto"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
)

// QueryHandler maneja las consultas de solo lectura de inventario.
type QueryHandler struct {
	query *stock.GetInventoryUseCase
}

// NewQueryHandler construye el handler.
func NewQueryHandler(query *stock.GetInventoryUseCase) *QueryHandler {
	return &QueryHandler{query: query}
}

// GetBySkuID godoc
// @Summary      Consultar stock de un SKU
// @Tags         inventory
// @Produce      json
// @Param        skuId  path  string  true  "Identificador del SKU"
// @Success      200  {object}  dto.InventoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{skuId} [get]
func (h *QueryHandler) GetBySkuID(c *fiber.Ctx) error {
	skuID := c.Params("skuId")
	out, err := h.query.GetBySkuID(c.Context(), command.GetInventoryCommand{SkuID: skuID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySkuIDs godoc
// @Summary      Consultar stock de varios SKUs
// @Description  Los SKUs desconocidos se omiten de la respuesta sin fallar la consulta.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GetInventoriesRequest  true  "sku_ids"
// @Success      200  {array}   dto.InventoryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk [post]
func (h *QueryHandler) GetBySkuIDs(c *fiber.Ctx) error {
	var in dto.GetInventoriesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.query.GetBySkuIDs(c.Context(), command.GetInventoriesCommand{SkuIDs: in.SkuIDs})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(out),
		"inventories": out,
	})
}
