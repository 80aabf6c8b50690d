package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/dto"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
)

// StockHandler maneja las operaciones administrativas de stock
// (ajustes absolutos, adiciones y reducciones, individuales y masivas).
type StockHandler struct {
	adjust *stock.AdjustStockUseCase
	add    *stock.AddStockUseCase
	reduce *stock.ReduceStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjust *stock.AdjustStockUseCase, add *stock.AddStockUseCase, reduce *stock.ReduceStockUseCase) *StockHandler {
	return &StockHandler{adjust: adjust, add: add, reduce: reduce}
}

// Adjust godoc
// @Summary      Fijar el total de un SKU en un valor absoluto
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        skuId  path  string  true  "Identificador del SKU"
// @Param        body   body  dto.AdjustStockRequest  true  "quantity"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust/{skuId} [patch]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd := command.AdjustStockCommand{SkuID: c.Params("skuId"), Quantity: in.Quantity}
	if err := h.adjust.AdjustSingle(c.Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock ajustado"})
}

// AdjustBulk godoc
// @Summary      Ajuste masivo de stock (todo o nada)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustStockRequest  true  "adjustments"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [patch]
func (h *StockHandler) AdjustBulk(c *fiber.Ctx) error {
	var in dto.BulkAdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmds := make([]command.AdjustStockCommand, len(in.Adjustments))
	for i, a := range in.Adjustments {
		cmds[i] = command.AdjustStockCommand{SkuID: a.SkuID, Quantity: a.Quantity}
	}
	if err := h.adjust.AdjustBulk(c.Context(), cmds); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock ajustado", "total": len(cmds)})
}

// Add godoc
// @Summary      Sumar stock a un SKU
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        skuId  path  string  true  "Identificador del SKU"
// @Param        body   body  dto.AddStockRequest  true  "adding_quantity"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/add/{skuId} [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd := command.AddStockCommand{SkuID: c.Params("skuId"), AddingQuantity: in.AddingQuantity}
	if err := h.add.AddSingle(c.Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock añadido"})
}

// AddBulk godoc
// @Summary      Adición masiva de stock (todo o nada)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAddStockRequest  true  "items"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/add [post]
func (h *StockHandler) AddBulk(c *fiber.Ctx) error {
	var in dto.BulkAddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmds := make([]command.AddStockCommand, len(in.Items))
	for i, it := range in.Items {
		cmds[i] = command.AddStockCommand{SkuID: it.SkuID, AddingQuantity: it.Quantity}
	}
	if err := h.add.AddBulk(c.Context(), cmds); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock añadido", "total": len(cmds)})
}

// Reduce godoc
// @Summary      Restar stock de un SKU
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        skuId  path  string  true  "Identificador del SKU"
// @Param        body   body  dto.ReduceStockRequest  true  "reducing_quantity"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/remove/{skuId} [post]
func (h *StockHandler) Reduce(c *fiber.Ctx) error {
	var in dto.ReduceStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmd := command.ReduceStockCommand{SkuID: c.Params("skuId"), ReducingQuantity: in.ReducingQuantity}
	if err := h.reduce.ReduceSingle(c.Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock reducido"})
}

// ReduceBulk godoc
// @Summary      Reducción masiva de stock (todo o nada)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkReduceStockRequest  true  "items"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/remove [post]
func (h *StockHandler) ReduceBulk(c *fiber.Ctx) error {
	var in dto.BulkReduceStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cmds := make([]command.ReduceStockCommand, len(in.Items))
	for i, it := range in.Items {
		cmds[i] = command.ReduceStockCommand{SkuID: it.SkuID, ReducingQuantity: it.Quantity}
	}
	if err := h.reduce.ReduceBulk(c.Context(), cmds); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock reducido", "total": len(cmds)})
}
