package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/shelving"
)

// ShelfHandler estantes, ubicaciones y traslados.
type ShelfHandler struct {
	shelves  *shelving.ShelfUseCase
	transfer *shelving.TransferUseCase
}

// NewShelfHandler construye el handler.
func NewShelfHandler(shelves *shelving.ShelfUseCase, transfer *shelving.TransferUseCase) *ShelfHandler {
	return &ShelfHandler{shelves: shelves, transfer: transfer}
}

// Create godoc
// @Summary      Crear estante
// @Tags         shelves
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelfRequest  true  "Nombre, ubicación y capacidad"
// @Success      201   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shelves [post]
func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShelfRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.shelves.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener estante
// @Tags         shelves
// @Produce      json
// @Param        id   path  string  true  "ID del estante"
// @Success      200  {object}  dto.ShelfResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [get]
func (h *ShelfHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.shelves.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "estante no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar estantes
// @Tags         shelves
// @Produce      json
// @Success      200  {array}  dto.ShelfResponse
// @Router       /api/shelves [get]
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	out, err := h.shelves.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estante
// @Description  Bajar la capacidad por debajo de la carga actual está permitido.
// @Tags         shelves
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del estante"
// @Param        body  body  dto.UpdateShelfRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [put]
func (h *ShelfHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShelfRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.shelves.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estante
// @Description  Devuelve todas sus unidades al stock central antes de borrarlo.
// @Tags         shelves
// @Produce      json
// @Param        id   path  string  true  "ID del estante"
// @Success      200  {object}  dto.ShelfDeletionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [delete]
func (h *ShelfHandler) Delete(c *fiber.Ctx) error {
	out, err := h.shelves.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Medicamentos ubicados en un estante
// @Tags         shelves
// @Produce      json
// @Param        id   path  string  true  "ID del estante"
// @Success      200  {array}  dto.PlacementView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id}/items [get]
func (h *ShelfHandler) Items(c *fiber.Ctx) error {
	out, err := h.shelves.ItemsOnShelf(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de un estante
// @Tags         shelves
// @Produce      json
// @Param        id   path  string  true  "ID del estante"
// @Success      200  {object}  dto.ShelfSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id}/summary [get]
func (h *ShelfHandler) Summary(c *fiber.Ctx) error {
	out, err := h.shelves.Summary(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Registrar traslado
// @Description  kind: stock_to_shelf | shelf_to_stock | shelf_to_shelf (requiere destination_shelf_id).
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      201   {object}  entity.Transfer
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *ShelfHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.transfer.Transfer(c.Context(), shelving.TransferInput{
		ItemID:             in.ItemID,
		ShelfID:            in.ShelfID,
		DestinationShelfID: in.DestinationShelfID,
		Quantity:           in.Quantity,
		Kind:               in.Kind,
		User:               in.User,
		Comment:            in.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfers godoc
// @Summary      Log de traslados (más reciente primero)
// @Tags         transfers
// @Produce      json
// @Success      200  {array}  dto.TransferView
// @Router       /api/transfers [get]
func (h *ShelfHandler) Transfers(c *fiber.Ctx) error {
	out, err := h.shelves.ListTransfers()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Placements godoc
// @Summary      Ubicaciones de todos los estantes
// @Tags         placements
// @Produce      json
// @Success      200  {array}  dto.PlacementView
// @Router       /api/placements [get]
func (h *ShelfHandler) Placements(c *fiber.Ctx) error {
	out, err := h.shelves.ListPlacements()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetPlacementStatus godoc
// @Summary      Cambiar estado de una ubicación
// @Tags         placements
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ubicación"
// @Param        body  body  dto.PlacementStatusRequest  true  "for_sale | reserved | expired"
// @Success      200   {object}  dto.PlacementView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/placements/{id}/status [patch]
func (h *ShelfHandler) SetPlacementStatus(c *fiber.Ctx) error {
	var in dto.PlacementStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.shelves.SetPlacementStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
