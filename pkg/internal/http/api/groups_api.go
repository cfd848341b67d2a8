package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/pagination"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

func getGroupFeed(c *fiber.Ctx) error {
	slug := c.Params("slug")
	page := c.QueryInt("page", 1)

	group, err := services.GetGroup(slug)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	tx := services.FilterPostWithGroup(database.C, group.ID)
	items, err := services.ListPost(tx, services.FeedOrder)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"group":    group,
		"page_obj": pagination.Paginate(items, pagination.PageSize(), page),
	})
}
