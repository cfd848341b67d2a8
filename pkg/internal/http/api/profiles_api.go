package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/pagination"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

func getProfile(c *fiber.Ctx) error {
	name := c.Params("name")
	page := c.QueryInt("page", 1)

	author, err := services.GetAccount(name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	tx := services.FilterPostWithAuthor(database.C, author.ID)
	items, err := services.ListPost(tx, services.FeedOrder)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	following := false
	if viewer, ok := auth.GetUser(c); ok {
		follow, err := services.GetFollow(viewer, author)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		following = follow != nil
	}

	return c.JSON(fiber.Map{
		"author":    author,
		"page_obj":  pagination.Paginate(items, pagination.PageSize(), page),
		"following": following,
	})
}

func doFollow(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	author, err := services.GetAccount(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	// Following yourself is guarded here, not in the follow service.
	if author.ID == user.ID {
		return c.Redirect("/", fiber.StatusFound)
	}

	if _, err := services.FollowAuthor(user, author); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/profile/%s", author.Name), fiber.StatusFound)
}

func doUnfollow(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	author, err := services.GetAccount(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.UnfollowAuthor(user, author); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "follow does not exist")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/profile/%s", author.Name), fiber.StatusFound)
}
