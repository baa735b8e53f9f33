package server

import "github.com/gofiber/fiber/v2"

const livenessMessage = "Parcel Server is running"

type ServerController struct {
	serviceName string
}

func NewServerController(serviceName string) *ServerController {
	return &ServerController{serviceName: serviceName}
}

// Liveness answers the root route with a plain-text banner.
func (sc *ServerController) Liveness(c *fiber.Ctx) error {
	c.Set("X-Service-Name", sc.serviceName)
	return c.Status(fiber.StatusOK).SendString(livenessMessage)
}
