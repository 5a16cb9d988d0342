/* Chemical Tank Management Server (CTMS)
Water-treatment chemical inventory, dosing parameters and anomaly review. */

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg/ctank"
)

func main() {

	cleanDB := flag.Bool("clean", false, "Drop and recreate the CTMS database")
	flag.Parse()

	conf, err := pkg.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	/* CREATE OR MIGRATE CTMS DATABASE & CONNECT */
	pkg.MigrateModels = ctank.Models()
	if err := pkg.CreateCTMSDatabase(conf, *cleanDB); err != nil {
		log.Fatal(err)
	}
	defer pkg.CTMS.Disconnect()

	/* MQTT - SUBSCRIBE TO LEVEL-SENSOR SIGNALS */
	if conf.MQTTBroker != "" {
		fmt.Println("\nConnecting CTMS MQTT level ingest client...")
		if err := ctank.MQTTLevelIngest_Connect(); err != nil {
			log.Fatal(err)
		}
		defer ctank.MQTTLevelIngest_Disconnect()
	}

	/* AI NARRATIVE REPORTS; DISABLED WHEN NO API KEY IS CONFIGURED */
	if conf.OpenAIKey != "" {
		summarizer, err := ctank.NewOpenAISummarizer(conf.OpenAIKey, conf.OpenAIModel)
		if err != nil {
			log.Fatal(err)
		}
		ctank.ReportSummarizer = summarizer
	}

	/* MAIN SERVER */
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     conf.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Cache-Control",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))

	/* API ROUTES */
	api := fiber.New()
	app.Mount("/api", api)

	pkg.InitializeUserRoutes(app, api)
	ctank.InitializeRoutes(app, api)

	api.All("*", func(c *fiber.Ctx) error {
		path := c.Path()
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("Path: %v does not exists on this server", path),
		})
	})

	log.Fatal(app.Listen(conf.HTTPAddr))
}
