package handlers

import (
	"errors"

	"github.com/flowershop/cart"
	"github.com/flowershop/models"
	"github.com/flowershop/store"
	"github.com/gofiber/fiber/v2"
)

type cartRequest struct {
	ItemID   uint `form:"item_id" json:"item_id"`
	Quantity int  `form:"quantity" json:"quantity"`
}

// CartDetail returns the visitor's cart of one kind with prices
func (h *Handler) CartDetail(c *fiber.Ctx) error {
	kind, cs, err := h.cartFromRequest(c)
	if err != nil {
		return err
	}
	return h.cartResponse(c, cs.of(kind))
}

// CartAdd puts an item into the cart, increasing its quantity when present
func (h *Handler) CartAdd(c *fiber.Ctx) error {
	kind, cs, err := h.cartFromRequest(c)
	if err != nil {
		return err
	}

	var req cartRequest
	if err := c.BodyParser(&req); err != nil || req.ItemID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "item_id is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := store.ItemByID(h.DB.WithContext(c.UserContext()), kind, req.ItemID); err != nil {
		return httpError(err)
	}

	cc := cs.of(kind)
	if err := cc.Add(req.ItemID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	if err := h.saveCart(cs, cc); err != nil {
		return err
	}
	return h.cartResponse(c, cc)
}

// CartRemove drops an item from the cart
func (h *Handler) CartRemove(c *fiber.Ctx) error {
	kind, cs, err := h.cartFromRequest(c)
	if err != nil {
		return err
	}

	var req cartRequest
	if err := c.BodyParser(&req); err != nil || req.ItemID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "item_id is required")
	}

	cc := cs.of(kind)
	cc.Remove(req.ItemID)
	if err := h.saveCart(cs, cc); err != nil {
		return err
	}
	return h.cartResponse(c, cc)
}

// CartClear empties the cart
func (h *Handler) CartClear(c *fiber.Ctx) error {
	kind, cs, err := h.cartFromRequest(c)
	if err != nil {
		return err
	}

	cc := cs.of(kind)
	cc.Clear()
	if err := h.saveCart(cs, cc); err != nil {
		return err
	}
	return h.cartResponse(c, cc)
}

func (h *Handler) cartFromRequest(c *fiber.Ctx) (models.Kind, *carts, error) {
	kind, ok := models.ParseKind(c.Params("kind"))
	if !ok {
		return "", nil, fiber.ErrNotFound
	}
	cs, err := h.loadCarts(c)
	if err != nil {
		return "", nil, err
	}
	return kind, cs, nil
}

func (h *Handler) saveCart(cs *carts, cc *cart.Cart) error {
	if err := cc.Save(); err != nil {
		return err
	}
	return cs.sess.Save()
}

func (h *Handler) cartResponse(c *fiber.Ctx, cc *cart.Cart) error {
	items, err := store.ItemsByIDs(h.DB.WithContext(c.UserContext()), cc.Kind(), cc.IDs())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"cart":   cc.Priced(items),
	})
}
