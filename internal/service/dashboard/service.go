package dashboard

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/analytics"
	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Analytics loads the admin summary. A failed load is logged and reported
// as all zeros.
func (s *Service) Analytics(ctx context.Context, backend crud.Backend) analytics.Analytics {
	var a analytics.Analytics
	if err := backend.Get(ctx, "/admin/analytics", nil, &a); err != nil {
		slog.ErrorContext(ctx, "failed to load analytics", "error", err)
		return analytics.Analytics{}
	}
	return a
}

// AssignedEquipment loads the signed-in employee's equipment.
func (s *Service) AssignedEquipment(ctx context.Context, backend crud.Backend) ([]equipment.Assigned, error) {
	var items []equipment.Assigned
	if err := backend.Get(ctx, "/equipment/assigned", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
