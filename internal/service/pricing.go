package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc"

	"github.com/chairflow/chairflow/internal/api/dto"
	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/catalog"
	"github.com/chairflow/chairflow/internal/domain/pricing"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// PricingService prices prospective jobs. Rule snapshots are read fresh on
// every call so rule-table edits take effect on the next calculation.
type PricingService interface {
	// CalculatePrice prices the request against current rules.
	CalculatePrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.PriceCalculationResponse, error)
	// PreviewPrice is CalculatePrice for the client portal quote screen;
	// identical semantics, nothing is persisted either way.
	PreviewPrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.PriceCalculationResponse, error)
}

type pricingService struct {
	ServiceParams
}

// NewPricingService creates a new pricing service
func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

func (s *pricingService) CalculatePrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.PriceCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	services, parts, snapshot, err := s.loadInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	calculation, err := s.Engine.Aggregate(req.ToPricingContext(), services, parts, snapshot)
	if err != nil {
		return nil, err
	}

	return &dto.PriceCalculationResponse{
		Calculation:        calculation,
		DegradedRuleTables: snapshot.Degraded,
	}, nil
}

func (s *pricingService) PreviewPrice(ctx context.Context, req *dto.CalculatePriceRequest) (*dto.PriceCalculationResponse, error) {
	return s.CalculatePrice(ctx, req)
}

// loadInputs fetches the price catalog entries and the three rule tables
// concurrently. A catalog failure is fatal (nothing can be priced without
// prices); a rule-table failure degrades that table to empty and is logged.
func (s *pricingService) loadInputs(
	ctx context.Context,
	req *dto.CalculatePriceRequest,
) ([]pricing.ServiceLine, []pricing.PartLine, *pricing.RuleSnapshot, error) {
	serviceIDs := lo.Uniq(lo.Map(req.Services, func(sel dto.ServiceSelectionRequest, _ int) string {
		return sel.ServiceID
	}))
	partIDs := lo.Uniq(lo.Map(req.Parts, func(sel dto.PartSelectionRequest, _ int) string {
		return sel.PartID
	}))

	var (
		serviceEntries []*catalog.ServicePriceEntry
		partEntries    []*catalog.PartPriceEntry
		bulkRules      []*bulkdiscount.Rule
		clientTier     *tier.PricingTier
		windows        []*seasonal.Window

		servicesErr, partsErr, bulkErr, tierErr, seasonalErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		serviceEntries, servicesErr = s.CatalogRepo.GetServicesByIDs(ctx, serviceIDs)
	})
	wg.Go(func() {
		if len(partIDs) > 0 {
			partEntries, partsErr = s.CatalogRepo.GetPartsByIDs(ctx, partIDs)
		}
	})
	wg.Go(func() {
		bulkRules, bulkErr = s.BulkDiscountRepo.ListActive(ctx)
	})
	wg.Go(func() {
		clientTier, tierErr = s.loadClientTier(ctx, req.ClientID)
	})
	wg.Go(func() {
		windows, seasonalErr = s.SeasonalRepo.ListActive(ctx)
	})
	wg.Wait()

	if servicesErr != nil {
		return nil, nil, nil, ierr.WithError(servicesErr).
			WithHint("Could not load the selected services").
			Mark(ierr.ErrDatabase)
	}
	if partsErr != nil {
		return nil, nil, nil, ierr.WithError(partsErr).
			WithHint("Could not load the selected parts").
			Mark(ierr.ErrDatabase)
	}

	services, err := s.resolveServiceLines(req, serviceEntries)
	if err != nil {
		return nil, nil, nil, err
	}
	parts, err := s.resolvePartLines(req, partEntries)
	if err != nil {
		return nil, nil, nil, err
	}

	snapshot := &pricing.RuleSnapshot{}
	if bulkErr != nil {
		s.Logger.Warnw("bulk discount rules unavailable, pricing without them",
			"client_id", req.ClientID, "error", bulkErr)
		snapshot.MarkDegraded(pricing.RuleTableBulkDiscounts)
	} else {
		snapshot.BulkRules = bulkRules
	}
	if tierErr != nil {
		s.Logger.Warnw("client tier unavailable, pricing without it",
			"client_id", req.ClientID, "error", tierErr)
		snapshot.MarkDegraded(pricing.RuleTableClientTier)
	} else {
		snapshot.Tier = clientTier
	}
	if seasonalErr != nil {
		s.Logger.Warnw("seasonal windows unavailable, pricing without them",
			"client_id", req.ClientID, "error", seasonalErr)
		snapshot.MarkDegraded(pricing.RuleTableSeasonal)
	} else {
		snapshot.SeasonalWindows = windows
	}

	return services, parts, snapshot, nil
}

// loadClientTier resolves the client's tier. No assignment is not an error,
// it simply means no tier discount.
func (s *pricingService) loadClientTier(ctx context.Context, clientID string) (*tier.PricingTier, error) {
	assignment, err := s.TierRepo.GetAssignmentByClient(ctx, clientID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s.TierRepo.GetTier(ctx, assignment.TierID)
}

func (s *pricingService) resolveServiceLines(
	req *dto.CalculatePriceRequest,
	entries []*catalog.ServicePriceEntry,
) ([]pricing.ServiceLine, error) {
	byID := lo.KeyBy(entries, func(e *catalog.ServicePriceEntry) string { return e.ID })

	lines := make([]pricing.ServiceLine, 0, len(req.Services))
	for _, sel := range req.Services {
		entry, ok := byID[sel.ServiceID]
		if !ok || !entry.IsActive {
			return nil, ierr.NewError("unknown or inactive service").
				WithHintf("Service %s is not available", sel.ServiceID).
				WithReportableDetails(map[string]any{"service_id": sel.ServiceID}).
				Mark(ierr.ErrNotFound)
		}
		quantity := sel.Quantity
		if quantity == 0 {
			quantity = req.ChairCount
		}
		lines = append(lines, pricing.ServiceLine{Service: entry, Quantity: quantity})
	}
	return lines, nil
}

func (s *pricingService) resolvePartLines(
	req *dto.CalculatePriceRequest,
	entries []*catalog.PartPriceEntry,
) ([]pricing.PartLine, error) {
	byID := lo.KeyBy(entries, func(e *catalog.PartPriceEntry) string { return e.ID })

	lines := make([]pricing.PartLine, 0, len(req.Parts))
	for _, sel := range req.Parts {
		entry, ok := byID[sel.PartID]
		if !ok || !entry.IsActive {
			return nil, ierr.NewError("unknown or inactive part").
				WithHintf("Part %s is not available", sel.PartID).
				WithReportableDetails(map[string]any{"part_id": sel.PartID}).
				Mark(ierr.ErrNotFound)
		}
		lines = append(lines, pricing.PartLine{Part: entry, Quantity: sel.Quantity})
	}
	return lines, nil
}
