package routes

import (
	"pokerclub/controllers/admin"
	"pokerclub/controllers/auth"
	"pokerclub/controllers/spin"
	"pokerclub/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Post("/auth/login", auth.Login)

	spinroutes := app.Group("/spin", middlewares.UserAuthMiddleware)
	spinroutes.Post("/", spin.PostSpin)
	spinroutes.Get("/status", spin.GetStatus)
	spinroutes.Get("/history", spin.GetHistory)
	spinroutes.Get("/wheel", spin.GetWheel)

	adminroutes := app.Group("/admin", middlewares.AdminAuth())
	adminroutes.Get("/prizes", admin.ListPrizes)
	adminroutes.Post("/prizes", admin.CreatePrize)
	adminroutes.Put("/prizes/:id", admin.UpdatePrize)
	adminroutes.Delete("/prizes/:id", admin.DeactivatePrize)
	adminroutes.Post("/prizes/reconfigure", admin.Reconfigure)
	adminroutes.Get("/prizes/check", admin.CheckCatalog)

	adminroutes.Get("/validations", admin.ListValidations)
	adminroutes.Post("/validations/:id/approve", admin.ApproveSpin)
	adminroutes.Post("/validations/:id/reject", admin.RejectSpin)
}
