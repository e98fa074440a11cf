package main

import (
	"log"
	"net/http"

	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/container"
	"github.com/examflow/examflow/internal/router"
)

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		QuizHandler:     c.QuizContainer.Handler,
		AttemptHandler:  c.AttemptContainer.Handler,
		UserHandler:     c.UserContainer.Handler,
		ImporterHandler: c.ImporterContainer.Handler,
		SessionHandler:  c.SessionContainer.Handler,
		ShareHandler:    c.ShareContainer.Handler,
		GoogleHandler:   c.GoogleHandler,
	})

	addr := ":" + config.Getenv("PORT", "8080")
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
