package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/JainamDedhia/Eduthon-backend/internal/localstore"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "localstore",
		Usage: "Filesystem-backed S3 stand-in for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Listen address",
				Value:   ":9000",
				EnvVars: []string{"LOCALSTORE_ADDR"},
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Directory objects are stored under",
				Value:   "./data/objects",
				EnvVars: []string{"LOCALSTORE_DIR"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	store, err := localstore.NewDiskStore(c.String("dir"))
	if err != nil {
		return fmt.Errorf("failed to prepare data directory: %w", err)
	}

	r := mux.NewRouter()
	localstore.NewHandler(store).RegisterRoutes(r)

	log.Printf("localstore listening on %s (dir=%s)\n", c.String("addr"), c.String("dir"))
	return http.ListenAndServe(c.String("addr"), r)
}
