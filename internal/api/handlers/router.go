package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/dreamwall/configs"
	"github.com/maheshrc27/dreamwall/internal/api/middleware"
	"github.com/maheshrc27/dreamwall/internal/service"
)

type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Posts     service.PostService
	Likes     service.LikeService
	Comments  service.CommentService
	Home      service.HomeService
	Admin     service.AdminService
	Reports   service.ReportService
	Keywords  service.KeywordService
	Lotteries service.LotteryService
	Media     service.MediaService
	Settings  service.SettingsService
}

func RegisterRoutes(app *fiber.App, cfg config.Config, s Services) {
	authMiddleware := middleware.NewAuthMiddleware(s.Auth)
	requireUser := authMiddleware.AuthMiddleware()
	requireAdmin := middleware.AdminOnly()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Server is running"})
	})

	api := app.Group("/api")

	auth := NewAuthHandler(s.Auth)
	api.Post("/auth/register", auth.Register)
	api.Post("/auth/login", auth.Login)
	api.Get("/auth/me", requireUser, auth.Me)

	post := NewPostHandler(s.Posts, s.Likes, s.Comments)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/my-posts", requireUser, post.MyPosts)
	api.Get("/posts/featured/featured", post.Featured)
	api.Get("/posts/trending/likes", post.TrendingByLikes)
	api.Get("/posts/trending/shares", post.TrendingByShares)
	api.Post("/posts/create-with-account", post.CreateWithAccount)
	api.Post("/posts", requireUser, post.CreatePost)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", requireUser, post.UpdatePost)
	api.Delete("/posts/:id", requireUser, post.RemovePost)
	api.Get("/posts/:id/like-status", requireUser, post.LikeStatus)
	api.Post("/posts/:id/like", requireUser, post.ToggleLike)
	api.Post("/posts/:id/share", requireUser, post.Share)
	api.Get("/posts/:id/comments", post.ListComments)
	api.Post("/posts/:id/comments", authMiddleware.OptionalAuth(), post.AddComment)

	home := NewHomeHandler(s.Home, s.Lotteries)
	api.Get("/home", home.Feed)
	api.Get("/home/featured", home.Featured)
	api.Get("/home/recent", home.Recent)
	api.Get("/home/keywords", home.Keywords)
	api.Get("/home/lottery/winners", home.Winners)
	api.Get("/home/lottery/current", home.CurrentLottery)

	user := NewUserHandler(s.Users)
	api.Get("/users/stats", requireUser, user.Stats)
	api.Put("/users/profile", requireUser, user.UpdateProfile)
	api.Get("/users/:userId", user.GetUserInfo)
	api.Get("/users/:userId/posts", user.ListPosts)

	report := NewReportHandler(s.Reports)
	api.Post("/reports", requireUser, report.Submit)
	api.Get("/reports", requireUser, requireAdmin, report.List)
	api.Get("/reports/stats", requireUser, requireAdmin, report.Stats)
	api.Put("/reports/:id/status", requireUser, requireAdmin, report.UpdateStatus)

	upload := NewUploadHandler(s.Media)
	api.Post("/upload/image", requireUser, upload.UploadImage)
	api.Post("/upload/images", requireUser, upload.UploadImages)
	api.Delete("/upload/image/*", requireUser, upload.DeleteImage)
	api.Get("/upload/status", requireUser, upload.Status)

	settings := NewSettingsHandler(s.Settings)
	api.Get("/settings", settings.GetSettingsInfo)
	api.Get("/settings/admin", requireUser, requireAdmin, settings.GetAdminSettings)
	api.Put("/settings/admin", requireUser, requireAdmin, settings.UpdateSettings)

	admin := NewAdminHandler(s.Admin, s.Posts, s.Home, s.Keywords, s.Lotteries)
	// Registered ahead of the admin group so they skip its guard.
	api.Get("/admin/lottery/winners", admin.Winners)
	if cfg.EnableDevRoutes {
		api.Post("/admin/create-admin", auth.CreateAdmin)
	}

	adm := api.Group("/admin", requireUser, requireAdmin)
	adm.Get("/stats", admin.Stats)
	adm.Get("/settings", settings.GetAdminSettings)
	adm.Put("/settings", settings.UpdateSettings)

	adm.Get("/posts", admin.ListPosts)
	adm.Put("/posts/:id", admin.UpdatePost)
	adm.Delete("/posts/:id", admin.RemovePost)

	adm.Get("/users", admin.ListUsers)
	adm.Put("/users/:id", admin.UpdateUser)
	adm.Delete("/users/:id", admin.RemoveUser)

	adm.Get("/comments", admin.ListComments)
	adm.Put("/comments/:id", admin.UpdateComment)
	adm.Delete("/comments/:id", admin.RemoveComment)

	adm.Get("/reports", report.List)
	adm.Put("/reports/:id", report.UpdateStatus)
	adm.Delete("/reports/:id", report.Remove)

	adm.Get("/keywords", admin.ListKeywords)
	adm.Post("/keywords", admin.CreateKeyword)
	adm.Put("/keywords/:id", admin.UpdateKeyword)
	adm.Delete("/keywords/:id", admin.RemoveKeyword)

	adm.Get("/lottery", admin.ListLotteries)
	adm.Post("/lottery", admin.CreateLottery)
	adm.Put("/lottery/:id", admin.UpdateLottery)
	adm.Delete("/lottery/:id", admin.RemoveLottery)
	adm.Post("/lottery/:id/draw", admin.DrawLottery)
}
