package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	localCache "github.com/sofialeaf/quillfeed/pkg/internal/cache"
	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/pagination"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

// FeedCache holds the rendered global feed; assigned during server setup.
var FeedCache *localCache.FeedCache

func getIndexFeed(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	key := fmt.Sprintf("feed-index#page=%d", page)
	payload, err := FeedCache.GetOrCompute(c.UserContext(), key, func() ([]byte, error) {
		items, err := services.ListPost(database.C, services.FeedOrder)
		if err != nil {
			return nil, err
		}

		return jsoniter.Marshal(fiber.Map{
			"page_obj": pagination.Paginate(items, pagination.PageSize(), page),
		})
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

func getFollowFeed(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	page := c.QueryInt("page", 1)

	tx := services.FilterPostWithFollower(database.C, user.ID)
	items, err := services.ListPost(tx, services.FeedOrder)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"page_obj": pagination.Paginate(items, pagination.PageSize(), page),
	})
}
