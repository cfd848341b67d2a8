package admin

import "github.com/gofiber/fiber/v2"

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL)
	{
		admin.Get("/groups", listGroup)
		admin.Post("/groups", createGroup)
		admin.Put("/groups/:groupId", editGroup)
		admin.Delete("/groups/:groupId", deleteGroup)

		admin.Delete("/posts/:postId", removePost)
	}
}
