package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	"github.com/sofialeaf/quillfeed/pkg/internal/database"
	"github.com/sofialeaf/quillfeed/pkg/internal/models"
	"github.com/sofialeaf/quillfeed/pkg/internal/services"
)

const (
	createPostTitle = "Create a new post"
	editPostTitle   = "Edit post"
)

type postForm struct {
	Text        string   `json:"text" form:"text"`
	Group       *uint    `json:"group" form:"group"`
	Image       *string  `json:"image" form:"image"`
	Attachments []string `json:"attachments" form:"attachments"`
}

func getPostDetail(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

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
		"form":     commentForm{},
	})
}

func getCreatePost(c *fiber.Ctx) error {
	if _, ok := auth.GetUser(c); !ok {
		return auth.RedirectLogin(c)
	}

	return c.JSON(fiber.Map{
		"form":    postForm{},
		"is_edit": false,
		"title":   createPostTitle,
	})
}

func doCreatePost(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if errs := validatePostForm(form); len(errs) > 0 {
		return c.JSON(fiber.Map{
			"form":    form,
			"errors":  errs,
			"is_edit": false,
			"title":   createPostTitle,
		})
	}

	item := models.Post{
		Text:        form.Text,
		GroupID:     form.Group,
		Image:       form.Image,
		Attachments: form.Attachments,
	}

	if _, err := services.NewPost(user, item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/profile/%s", user.Name), fiber.StatusFound)
}

func getEditPost(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	id, _ := c.ParamsInt("postId", 0)

	post, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if services.AuthorizePostEdit(post, user) != services.EditAllowed {
		return c.Redirect(fmt.Sprintf("/posts/%d", post.ID), fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"post": post,
		"form": postForm{
			Text:        post.Text,
			Group:       post.GroupID,
			Image:       post.Image,
			Attachments: post.Attachments,
		},
		"is_edit": true,
		"title":   editPostTitle,
	})
}

func doEditPost(c *fiber.Ctx) error {
	user, ok := auth.GetUser(c)
	if !ok {
		return auth.RedirectLogin(c)
	}

	id, _ := c.ParamsInt("postId", 0)

	current, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	// The ownership check comes before anything else; non-owners never see
	// form errors, just the detail page.
	if services.AuthorizePostEdit(current, user) != services.EditAllowed {
		return c.Redirect(fmt.Sprintf("/posts/%d", current.ID), fiber.StatusFound)
	}

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if errs := validatePostForm(form); len(errs) > 0 {
		return c.JSON(fiber.Map{
			"form":    form,
			"errors":  errs,
			"is_edit": true,
			"title":   editPostTitle,
		})
	}

	item, _, err := services.EditPost(uint(id), user, func(post *models.Post) {
		post.Text = form.Text
		post.GroupID = form.Group
		post.Image = form.Image
		post.Attachments = form.Attachments
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Non-owners are silently sent back to the post, no error surfaced.
	return c.Redirect(fmt.Sprintf("/posts/%d", item.ID), fiber.StatusFound)
}

func validatePostForm(form postForm) map[string]string {
	errs := map[string]string{}
	// The same trim the services apply; whitespace-only text is a form
	// error, not a service failure.
	if len(strings.TrimSpace(form.Text)) == 0 {
		errs["text"] = "this field is required"
	}
	if form.Group != nil {
		if _, err := services.GetGroupWithID(*form.Group); err != nil {
			errs["group"] = "unknown group"
		}
	}
	return errs
}
