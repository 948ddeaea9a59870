package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/label/domain"
	lotdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

var (
	ErrUnknownTemplate = errors.New("unknown label template")
	ErrUnknownLot      = errors.New("lot not found for label")
	ErrTooManyCopies   = errors.New("copy count out of range")
)

const maxCopies = 100

// ActivityRecorder mirrors the recorder the other services use; nil is a
// valid value and disables auditing.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int, action, detail string)
}

type LotGetter interface {
	GetLotByID(ctx context.Context, id int) (*lotdomain.Lot, error)
}

type LabelService interface {
	ListTemplates() []domain.Template
	QueuePrint(ctx context.Context, actorID int, req domain.PrintRequest) (*domain.PrintJob, error)
}

type labelServiceImpl struct {
	lots     LotGetter
	activity ActivityRecorder
}

func NewLabelService(lots LotGetter, activity ActivityRecorder) LabelService {
	return &labelServiceImpl{lots: lots, activity: activity}
}

func (s *labelServiceImpl) ListTemplates() []domain.Template {
	return domain.Templates()
}

func (s *labelServiceImpl) QueuePrint(ctx context.Context, actorID int, req domain.PrintRequest) (*domain.PrintJob, error) {
	if !templateExists(req.TemplateID) {
		return nil, ErrUnknownTemplate
	}
	copies := req.Copies
	if copies <= 0 {
		copies = 1
	}
	if copies > maxCopies {
		return nil, ErrTooManyCopies
	}

	lot, err := s.lots.GetLotByID(ctx, req.LotID)
	if err != nil {
		if errors.Is(err, repository.ErrLotNotFound) {
			return nil, ErrUnknownLot
		}
		logger.Error("Svc.QueuePrint: lot lookup failed", err, nil)
		return nil, err
	}

	job := &domain.PrintJob{
		JobID:      uuid.NewString(),
		LotCode:    lot.Code,
		TemplateID: req.TemplateID,
		Copies:     copies,
		Status:     domain.JobStatusQueued,
	}
	s.record(ctx, actorID, "etiqueta.imprimir", "Etiquetas encoladas para lote "+lot.Code)
	return job, nil
}

func (s *labelServiceImpl) record(ctx context.Context, userID int, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, userID, action, detail)
}

func templateExists(id string) bool {
	for _, tpl := range domain.Templates() {
		if tpl.ID == id {
			return true
		}
	}
	return false
}
