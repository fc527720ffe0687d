package service

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"go.uber.org/zap"
)

type CustomSegmentMatcher interface {
	Matches(phone *model.PhoneNumber, segment *model.CustomSegment) bool
	FindMatchingSegments(ctx context.Context, phone *model.PhoneNumber) ([]model.CustomSegment, error)
	AutoAssignSegments(ctx context.Context, phone *model.PhoneNumber) (int, error)
	BatchAutoAssignSegments(ctx context.Context, phones []*model.PhoneNumber) (map[int64]int, error)
}

type customSegmentMatcher struct {
	segmentRepo repository.CustomSegmentRepository
	tester      segmentation.RegexTester
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewCustomSegmentMatcher(segmentRepo repository.CustomSegmentRepository, tester segmentation.RegexTester,
	metrics *metrics.Metrics, logger *zap.Logger) CustomSegmentMatcher {
	return &customSegmentMatcher{segmentRepo: segmentRepo, tester: tester, metrics: metrics, logger: logger}
}

// Matches tests the segment pattern against the stored number. A segment without
// a pattern matches nothing.
func (m *customSegmentMatcher) Matches(phone *model.PhoneNumber, segment *model.CustomSegment) bool {
	if phone == nil || segment == nil || !segment.HasPattern() {
		return false
	}

	return m.tester.Test(*segment.Pattern, phone.Number)
}

func (m *customSegmentMatcher) FindMatchingSegments(ctx context.Context, phone *model.PhoneNumber) ([]model.CustomSegment, error) {
	catalog, err := m.segmentRepo.FindAll(ctx)
	if err != nil {
		m.logger.Error("Failed to load custom segments", zap.Error(err))
		return nil, ErrDatabase
	}

	return m.filter(phone, catalog), nil
}

// AutoAssignSegments adds phone to every matching segment it is not yet a member
// of and returns how many memberships were created. Existing memberships are
// never removed.
func (m *customSegmentMatcher) AutoAssignSegments(ctx context.Context, phone *model.PhoneNumber) (int, error) {
	matching, err := m.FindMatchingSegments(ctx, phone)
	if err != nil {
		return 0, err
	}

	return m.assign(ctx, phone, matching)
}

// BatchAutoAssignSegments loads the segment catalog once and assigns every phone
// against it. On error the counts gathered so far are returned with it.
func (m *customSegmentMatcher) BatchAutoAssignSegments(ctx context.Context, phones []*model.PhoneNumber) (map[int64]int, error) {
	counts := make(map[int64]int, len(phones))
	if len(phones) == 0 {
		return counts, nil
	}

	catalog, err := m.segmentRepo.FindAll(ctx)
	if err != nil {
		m.logger.Error("Failed to load custom segments", zap.Error(err))
		return counts, ErrDatabase
	}

	for _, phone := range phones {
		if phone == nil {
			continue
		}

		count, err := m.assign(ctx, phone, m.filter(phone, catalog))
		if err != nil {
			return counts, err
		}
		counts[phone.ID] = count
	}

	return counts, nil
}

func (m *customSegmentMatcher) filter(phone *model.PhoneNumber, catalog []model.CustomSegment) []model.CustomSegment {
	matching := make([]model.CustomSegment, 0)
	for i := range catalog {
		if m.Matches(phone, &catalog[i]) {
			matching = append(matching, catalog[i])
		}
	}

	return matching
}

func (m *customSegmentMatcher) assign(ctx context.Context, phone *model.PhoneNumber, matching []model.CustomSegment) (int, error) {
	if len(matching) == 0 {
		return 0, nil
	}

	current, err := m.segmentRepo.FindByPhoneNumberID(ctx, phone.ID)
	if err != nil {
		m.logger.Error("Failed to load custom segment memberships",
			zap.Int64("phoneNumberID", phone.ID),
			zap.Error(err))
		return 0, ErrDatabase
	}

	member := make(map[int64]struct{}, len(current))
	for _, segment := range current {
		member[segment.ID] = struct{}{}
	}

	assigned := 0
	for _, segment := range matching {
		if _, ok := member[segment.ID]; ok {
			continue
		}

		inserted, err := m.segmentRepo.AddPhoneNumberToSegment(ctx, phone.ID, segment.ID)
		if err != nil {
			m.logger.Error("Failed to add phone number to custom segment",
				zap.Int64("phoneNumberID", phone.ID),
				zap.Int64("customSegmentID", segment.ID),
				zap.Error(err))
			m.metrics.RecordCustomSegmentsAssigned(assigned)
			return assigned, ErrDatabase
		}
		if inserted {
			assigned++
		}
	}

	m.metrics.RecordCustomSegmentsAssigned(assigned)

	if assigned > 0 {
		m.logger.Debug("Custom segments assigned",
			zap.Int64("phoneNumberID", phone.ID),
			zap.Int("assigned", assigned))
	}

	return assigned, nil
}
