package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koosco-commerce/inventory-service/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QueryUC     *stock.GetInventoryUseCase
	MovementsUC *stock.GetStockMovementsUseCase
	AdjustUC    *stock.AdjustStockUseCase
	AddUC       *stock.AddStockUseCase
	ReduceUC    *stock.ReduceStockUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	inventory := api.Group("/inventory")

	queryHandler := NewQueryHandler(deps.QueryUC)
	inventory.Post("/bulk", queryHandler.GetBySkuIDs)

	// Operaciones administrativas por SKU y masivas
	stockHandler := NewStockHandler(deps.AdjustUC, deps.AddUC, deps.ReduceUC)
	inventory.Patch("/adjust", stockHandler.AdjustBulk)
	inventory.Patch("/adjust/:skuId", stockHandler.Adjust)
	inventory.Post("/add", stockHandler.AddBulk)
	inventory.Post("/add/:skuId", stockHandler.Add)
	inventory.Post("/remove", stockHandler.ReduceBulk)
	inventory.Post("/remove/:skuId", stockHandler.Reduce)

	// Administración: historial y carga masiva
	admin := inventory.Group("/admin")
	adminHandler := NewAdminHandler(deps.MovementsUC, deps.AdjustUC)
	admin.Get("/change-logs", adminHandler.GetChangeLogs)
	admin.Post("/upload-csv", adminHandler.UploadCSV)

	// Al final para no capturar las rutas estáticas
	inventory.Get("/:skuId", queryHandler.GetBySkuID)
}
