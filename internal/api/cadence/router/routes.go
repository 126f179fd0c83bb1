// Package router đăng ký các route thuộc domain Cadence.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cadencehdl "meta_content/internal/api/cadence/handler"
	apirouter "meta_content/internal/api/router"
)

// Register đăng ký các route quản lý cadence lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	cadenceHandler, err := cadencehdl.NewCadenceHandler()
	if err != nil {
		return fmt.Errorf("create cadence handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/manage/cadences", cadenceHandler, apirouter.ReadWriteConfig)

	return nil
}
