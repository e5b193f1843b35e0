package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/TontonYahya/tonton-stories/app/repository"
	"github.com/TontonYahya/tonton-stories/internal/pkg/cache"
	"github.com/TontonYahya/tonton-stories/internal/pkg/config"
	"github.com/TontonYahya/tonton-stories/internal/pkg/database"
	"github.com/TontonYahya/tonton-stories/internal/pkg/env"
	"github.com/TontonYahya/tonton-stories/internal/pkg/metrics/counter"
	"github.com/TontonYahya/tonton-stories/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	cfg := config.Load()

	counter.StartFlusher(5 * time.Minute)

	app := newFiberApp(findBasePath())

	// ROUTER
	router.InstallRouter(app, cfg)

	return app
}

// findBasePath locates the project root whether we run from the repo root
// or from cmd/.
func findBasePath() string {
	basePaths := []string{
		"./",
		"../../",
		"../../../",
	}

	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			return path
		}
	}

	panic("Could not find project root directory")
}

// newFiberApp builds the fiber app with the template engine and the
// middleware that needs no database or session state.
func newFiberApp(basePath string) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:     html.New(basePath+"views", ".html"),
		BodyLimit: 52428800, // 50 MiB, audio uploads included
	})

	// no icon ships; answer browser favicon probes with an empty response
	app.Use(favicon.New())

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// static files, uploaded audio included
	app.Static("/static", basePath+"public/static", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	return app
}
