package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/label/domain"
	lotdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository/mocks"
)

func TestListTemplatesCatalogue(t *testing.T) {
	svc := NewLabelService(new(mocks.MockLotRepository), nil)

	templates := svc.ListTemplates()

	assert.Len(t, templates, 4)
	ids := make([]string, 0, len(templates))
	for _, tpl := range templates {
		ids = append(ids, tpl.ID)
		assert.NotEmpty(t, tpl.Fields)
	}
	assert.Equal(t, []string{"estandar", "premium", "compacta", "promocional"}, ids)
}

func TestQueuePrintHappyPath(t *testing.T) {
	mockLots := new(mocks.MockLotRepository)
	mockLots.On("GetLotByID", mock.Anything, 12).
		Return(&lotdomain.Lot{ID: 12, Code: "L-2025-012"}, nil)
	svc := NewLabelService(mockLots, nil)

	job, err := svc.QueuePrint(context.Background(), 3, domain.PrintRequest{
		LotID:      12,
		TemplateID: "premium",
		Copies:     5,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, "L-2025-012", job.LotCode)
	assert.Equal(t, "premium", job.TemplateID)
	assert.Equal(t, 5, job.Copies)
	assert.Equal(t, domain.JobStatusQueued, job.Status)
	mockLots.AssertExpectations(t)
}

func TestQueuePrintDefaultsToOneCopy(t *testing.T) {
	mockLots := new(mocks.MockLotRepository)
	mockLots.On("GetLotByID", mock.Anything, 12).
		Return(&lotdomain.Lot{ID: 12, Code: "L-2025-012"}, nil)
	svc := NewLabelService(mockLots, nil)

	job, err := svc.QueuePrint(context.Background(), 3, domain.PrintRequest{
		LotID:      12,
		TemplateID: "compacta",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, job.Copies)
}

func TestQueuePrintValidation(t *testing.T) {
	mockLots := new(mocks.MockLotRepository)
	mockLots.On("GetLotByID", mock.Anything, 99).Return(nil, repository.ErrLotNotFound)
	svc := NewLabelService(mockLots, nil)

	_, err := svc.QueuePrint(context.Background(), 3, domain.PrintRequest{LotID: 12, TemplateID: "gigante"})
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	_, err = svc.QueuePrint(context.Background(), 3, domain.PrintRequest{LotID: 12, TemplateID: "estandar", Copies: 500})
	assert.ErrorIs(t, err, ErrTooManyCopies)

	_, err = svc.QueuePrint(context.Background(), 3, domain.PrintRequest{LotID: 99, TemplateID: "estandar"})
	assert.ErrorIs(t, err, ErrUnknownLot)
}
