package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

type commentForm struct {
	Text string `json:"text" form:"text"`
}

// doCreateComment backs both the detail page submission and the dedicated
// comment route; the post detail doubles as the submission endpoint.
func doCreateComment(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	id, _ := c.ParamsInt("postId", 0)

	var form commentForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := services.NewComment(user, uint(id), form.Text); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrEmptyComment) {
			post, err := services.GetPost(database.C, uint(id))
			if err != nil {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			comments, err := services.ListComments(post.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.JSON(fiber.Map{
				"post":     post,
				"comments": comments,
				"form":     form,
				"errors":   map[string]string{"text": "this field is required"},
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", id), fiber.StatusFound)
}
