package http

import (
	"github.com/gofiber/fiber/v2"
)

// CollectionReader lectura del valor persistido de una colección (storage.Database).
type CollectionReader interface {
	Raw(key string) (any, error)
}

// StoreHandler volcado de las colecciones tal como están guardadas.
type StoreHandler struct {
	store CollectionReader
}

// NewStoreHandler construye el handler.
func NewStoreHandler(store CollectionReader) *StoreHandler {
	return &StoreHandler{store: store}
}

// Collection godoc
// @Summary      Volcado de una colección persistida
// @Description  items | sales | clients | shelves | placements | transfers. Las fechas se devuelven en ISO-8601 UTC.
// @Tags         store
// @Produce      json
// @Param        key  path  string  true  "Clave de la colección"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/store/{key} [get]
func (h *StoreHandler) Collection(c *fiber.Ctx) error {
	out, err := h.store.Raw(c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
