// Package productmanagement предоставляет маршруты для основного приложения.
package productmanagement

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/product-management/internal/config"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/auth/register"
	cartadd "github.com/magabrotheeeer/product-management/internal/http/handlers/cart/add"
	cartview "github.com/magabrotheeeer/product-management/internal/http/handlers/cart/view"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/product/create"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/product/read"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/product/update"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/superadmin/accountcreate"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/superadmin/accountedit"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/superadmin/accountlist"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/superadmin/accountread"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/superadmin/accountremove"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/superadmin/rolelist"
	"github.com/magabrotheeeer/product-management/internal/http/handlers/user/dashboard"
	"github.com/magabrotheeeer/product-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/product-management/internal/models"
	accountservice "github.com/magabrotheeeer/product-management/internal/services/account"
	cartservice "github.com/magabrotheeeer/product-management/internal/services/cart"
	productservice "github.com/magabrotheeeer/product-management/internal/services/product"
	superadminservice "github.com/magabrotheeeer/product-management/internal/services/superadmin"
	"github.com/magabrotheeeer/product-management/internal/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Доступ по ролям: каталог товаров — Admin, корзина и кабинет — User,
// управление учётными записями — SuperAdmin. Сессия берётся из куки.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	sessions *session.Store,
	accountService *accountservice.AccountService,
	productService *productservice.ProductService,
	superAdminService *superadminservice.SuperAdminService,
	cartService *cartservice.CartService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	cookieName := cfg.Session.CookieName
	cookieTTL := cfg.Session.SessionTTL

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, accountService, sessions, cookieName, cookieTTL).ServeHTTP)
		r.Post("/login", login.New(logger, accountService, sessions, cookieName, cookieTTL).ServeHTTP)

		// Группа с cookie-сессией: доступна любой аутентифицированной записи
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessions, cookieName, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(logger, sessions, cookieName).ServeHTTP)

			// Каталог доступен на чтение любой аутентифицированной записи
			r.Get("/products", list.New(logger, productService).ServeHTTP)

			// Кабинет и корзина: роль User
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleUser))
				r.Get("/user/dashboard", dashboard.New(logger).ServeHTTP)
				r.Post("/cart", cartadd.New(logger, cartService).ServeHTTP)
				r.Get("/cart", cartview.New(logger, cartService).ServeHTTP)
			})

			// Управление каталогом: роль Admin
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/admin/products", list.New(logger, productService).ServeHTTP)
				r.Post("/admin/products", create.New(logger, productService).ServeHTTP)
				r.Get("/admin/products/{id}", read.New(logger, productService).ServeHTTP)
				r.Put("/admin/products/{id}", update.New(logger, productService).ServeHTTP)
				r.Delete("/admin/products/{id}", remove.New(logger, productService).ServeHTTP)
			})

			// Управление учётными записями: роль SuperAdmin.
			// Пути admins/users различаются только ролью списка:
			// редактирование и удаление работают с записью по ID.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleSuperAdmin))
				r.Get("/superadmin/dashboard", accountlist.New(logger, superAdminService, models.RoleAdmin).ServeHTTP)
				r.Get("/superadmin/admins", accountlist.New(logger, superAdminService, models.RoleAdmin).ServeHTTP)
				r.Post("/superadmin/admins", accountcreate.New(logger, superAdminService).ServeHTTP)
				r.Get("/superadmin/admins/{id}", accountread.New(logger, superAdminService).ServeHTTP)
				r.Put("/superadmin/admins/{id}", accountedit.New(logger, superAdminService).ServeHTTP)
				r.Delete("/superadmin/admins/{id}", accountremove.New(logger, superAdminService).ServeHTTP)
				r.Get("/superadmin/users", accountlist.New(logger, superAdminService, models.RoleUser).ServeHTTP)
				r.Get("/superadmin/users/{id}", accountread.New(logger, superAdminService).ServeHTTP)
				r.Put("/superadmin/users/{id}", accountedit.New(logger, superAdminService).ServeHTTP)
				r.Delete("/superadmin/users/{id}", accountremove.New(logger, superAdminService).ServeHTTP)
				r.Get("/superadmin/roles", rolelist.New(logger, superAdminService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
