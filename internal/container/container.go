package container

import (
	"context"
	"log"

	"github.com/examflow/examflow/internal/attempt"
	"github.com/examflow/examflow/internal/auth"
	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/importer"
	"github.com/examflow/examflow/internal/localstore"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/examflow/examflow/internal/session"
	"github.com/examflow/examflow/internal/share"
	"github.com/examflow/examflow/internal/user"
)

type Container struct {
	QuizContainer     *quiz.QuizContainer
	AttemptContainer  *attempt.AttemptContainer
	UserContainer     *user.UserContainer
	ImporterContainer *importer.ImporterContainer
	SessionContainer  *session.SessionContainer
	ShareContainer    *share.ShareContainer
	GoogleHandler     *auth.GoogleHandler
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	ctx := context.Background()

	uri := config.Getenv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := config.Getenv("MONGODB_DB", "examflow")
	if err := config.ConnectMongo(ctx, uri, dbName); err != nil {
		log.Fatalf("failed to connect to document store: %v", err)
	}

	local, err := localstore.Open(config.Getenv("LOCALSTORE_PATH", "examflow.db"))
	if err != nil {
		log.Fatalf("failed to open local mirror: %v", err)
	}

	baseURL := config.Getenv("PUBLIC_BASE_URL", "http://localhost:"+config.Getenv("PORT", "8080"))

	quizContainer := quiz.NewQuizContainer(config.Mongo, local, baseURL)
	attemptContainer := attempt.NewAttemptContainer(config.Mongo, local)
	userContainer := user.NewUserContainer(config.Mongo)
	importerContainer := importer.NewImporterContainer(userContainer.Service)
	sessionContainer := session.NewSessionContainer(
		quizContainer.Service,
		attemptContainer.Service,
		importerContainer.Service,
		userContainer.Service,
	)
	shareContainer := share.NewShareContainer(quizContainer.Service, local)

	if err := quiz.EnsureDemo(ctx, quizContainer.Repo); err != nil {
		config.WithContext(ctx).WithError(err).Warn("failed to seed demo quiz")
	}

	return &Container{
		QuizContainer:     quizContainer,
		AttemptContainer:  attemptContainer,
		UserContainer:     userContainer,
		ImporterContainer: importerContainer,
		SessionContainer:  sessionContainer,
		ShareContainer:    shareContainer,
		GoogleHandler:     auth.NewGoogleHandler(userContainer.Service),
	}
}
