package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	"github.com/sofialeaf/quillfeed/pkg/internal/http/exts"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

// Groups are created out of band; this is the out-of-band surface.

func listGroup(c *fiber.Ctx) error {
	if err := auth.EnsureAdmin(c); err != nil {
		return err
	}

	groups, err := services.ListGroup()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(groups)
}

func createGroup(c *fiber.Ctx) error {
	if err := auth.EnsureAdmin(c); err != nil {
		return err
	}

	var data struct {
		Slug        string `json:"slug" validate:"required,lowercase"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	group, err := services.NewGroup(data.Slug, data.Title, data.Description)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(group)
}

func editGroup(c *fiber.Ctx) error {
	if err := auth.EnsureAdmin(c); err != nil {
		return err
	}

	id, _ := c.ParamsInt("groupId", 0)

	var data struct {
		Slug        string `json:"slug" validate:"required,lowercase"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	group, err := services.GetGroupWithID(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	group, err = services.EditGroup(group, data.Slug, data.Title, data.Description)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(group)
}

func deleteGroup(c *fiber.Ctx) error {
	if err := auth.EnsureAdmin(c); err != nil {
		return err
	}

	id, _ := c.ParamsInt("groupId", 0)

	group, err := services.GetGroupWithID(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteGroup(group); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
