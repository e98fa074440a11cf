package importer

import "github.com/examflow/examflow/internal/user"

type ImporterContainer struct {
	Handler *Handler
	Service Service
}

func NewImporterContainer(users user.Service) *ImporterContainer {
	provider := NewGeminiProvider()
	service := NewService(provider)
	handler := NewHandler(service, users)

	return &ImporterContainer{
		Handler: handler,
		Service: service,
	}
}
