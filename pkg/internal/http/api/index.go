package api

import "github.com/gofiber/fiber/v2"

func MapControllers(app *fiber.App, baseURL string) {
	base := app.Group(baseURL)
	{
		base.Get("/", getIndexFeed)
		base.Get("/follow", getFollowFeed)

		base.Get("/group/:slug", getGroupFeed)

		base.Get("/profile/:name", getProfile)
		base.Get("/profile/:name/follow", doFollow)
		base.Get("/profile/:name/unfollow", doUnfollow)

		base.Get("/create", getCreatePost)
		base.Post("/create", doCreatePost)

		base.Get("/posts/:postId", getPostDetail)
		base.Post("/posts/:postId", doCreateComment)
		base.Post("/posts/:postId/comment", doCreateComment)
		base.Get("/posts/:postId/edit", getEditPost)
		base.Post("/posts/:postId/edit", doEditPost)
	}
}
