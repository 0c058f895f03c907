package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"uploadapi/docs"
)

// RegisterDocs serves the Swagger UI under /swagger. The advertised host is
// fixed here at startup; requests never modify the shared document. Schemes
// stay empty so the UI calls back on whatever scheme it was loaded over.
func RegisterDocs(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = nil
	app.Get("/swagger/*", swagger.HandlerDefault)
}
