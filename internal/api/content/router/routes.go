// Package router đăng ký các route thuộc domain Content: Posts, Schedules.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	contenthdl "meta_content/internal/api/content/handler"
	apirouter "meta_content/internal/api/router"
)

// Register đăng ký các route quản lý content lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	postHandler, err := contenthdl.NewPostHandler()
	if err != nil {
		return fmt.Errorf("create post handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/manage/posts", postHandler, apirouter.ReadWriteConfig)

	scheduleHandler, err := contenthdl.NewScheduleHandler()
	if err != nil {
		return fmt.Errorf("create schedule handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/manage/schedules", scheduleHandler, apirouter.ReadWriteConfig)

	return nil
}
