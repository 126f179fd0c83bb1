// Package router đăng ký các route thuộc domain Integration.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	integrationhdl "meta_content/internal/api/integration/handler"
	"meta_content/internal/api/middleware"
	apirouter "meta_content/internal/api/router"
)

// Register đăng ký các route quản lý integration lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	integrationHandler, err := integrationhdl.NewIntegrationHandler()
	if err != nil {
		return fmt.Errorf("create integration handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/manage/integrations", integrationHandler, apirouter.ReadWriteConfig)

	disconnectMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/manage/integrations", "POST", "/disconnect/:externalUserId", []fiber.Handler{disconnectMiddleware}, integrationHandler.Disconnect)

	return nil
}
