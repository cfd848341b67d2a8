package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

// removePost takes a post off the platform. Authors cannot delete their own
// posts through the public surface, removal is an operator action.
func removePost(c *fiber.Ctx) error {
	if err := auth.EnsureAdmin(c); err != nil {
		return err
	}

	id, _ := c.ParamsInt("postId", 0)

	post, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeletePost(post); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	operator, _ := auth.GetUser(c)
	log.Info().Uint("id", post.ID).Str("operator", operator.Name).Msg("A post was removed by an operator.")

	return c.SendStatus(fiber.StatusOK)
}
