package handlers

import (
	"github.com/alisever/join-the-siege/internal/service/classifier"
	"github.com/alisever/join-the-siege/internal/utils/validator"
	"github.com/alisever/join-the-siege/pkg/converters"
	"github.com/alisever/join-the-siege/pkg/logger"
)

type Handlers struct {
	Classify *ClassifyHandler
	Health   *HealthHandler
}

func NewHandlers(
	service classifier.DocumentClassifier,
	converter converters.ReportConverter,
	v *validator.DocumentValidator,
	classNames []string,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		Classify: NewClassifyHandler(service, converter, v, logger),
		Health:   NewHealthHandler(classNames),
	}
}
