package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/database/memstore"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// MockIntegrator simula uma plataforma de veiculação completa sem nenhuma
// chamada remota. As ordens vivem no Arena compartilhado e a entrega é
// derivada do tempo decorrido da janela de veiculação.
type MockIntegrator struct {
	cfg   config.Mock
	store *memstore.Arena
	now   func() time.Time
}

// platformOrder é o registro nativo da plataforma simulada.
type platformOrder struct {
	BuyID        string
	NativeStatus string
	StartTime    time.Time
	EndTime      time.Time
	Lines        []platformLine
	Creatives    map[string]domain.CreativeStatus
	Indexes      map[string]float64
}

type platformLine struct {
	LineID         string
	PackageID      string
	Model          string
	Rate           float64
	ImpressionGoal int64
	Budget         float64
	Active         bool
}

// clone copia a ordem com linhas e mapas próprios. Os registros publicados
// no Arena são imutáveis; toda mutação acontece na cópia.
func (o *platformOrder) clone() *platformOrder {
	next := *o
	next.Lines = make([]platformLine, len(o.Lines))
	copy(next.Lines, o.Lines)
	next.Creatives = make(map[string]domain.CreativeStatus, len(o.Creatives))
	for id, status := range o.Creatives {
		next.Creatives[id] = status
	}
	next.Indexes = make(map[string]float64, len(o.Indexes))
	for id, index := range o.Indexes {
		next.Indexes[id] = index
	}
	return &next
}

func New(cfg config.Mock, store *memstore.Arena) *MockIntegrator {
	return &MockIntegrator{
		cfg:   cfg,
		store: store,
		now:   time.Now,
	}
}

func (s *MockIntegrator) Platform() string {
	return domain.AdapterTypeMock
}

func (s *MockIntegrator) Capabilities() domain.TargetingCapabilities {
	return domain.TargetingCapabilities{
		SupportedDeviceTypes: map[string]bool{
			"mobile":  true,
			"desktop": true,
			"tablet":  true,
			"ctv":     true,
		},
		SupportedMediaTypes: map[string]bool{
			"video":   true,
			"display": true,
			"native":  true,
			"audio":   true,
		},
		SupportsOSTargeting: true,
		SupportsBrowser:     true,
	}
}

func (s *MockIntegrator) CreateMediaBuy(_ context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, request *domain.MediaBuyRequest) error {
	order := &platformOrder{
		BuyID:     utils.GenerateIDWithPrefix("mkbuy"),
		StartTime: record.StartTime,
		EndTime:   record.EndTime,
		Creatives: make(map[string]domain.CreativeStatus),
		Indexes:   make(map[string]float64),
	}

	target := domain.MediaBuyStatusScheduled
	if !s.now().Before(record.StartTime) {
		target = domain.MediaBuyStatusDelivering
	}
	order.NativeStatus = FromCanonical(target)

	for i := range record.Packages {
		pkg := &record.Packages[i]
		line := platformLine{
			LineID:         utils.GenerateIDWithPrefix("mkline"),
			PackageID:      pkg.ID,
			Model:          pkg.Pricing.Model,
			Rate:           pkg.Pricing.Rate,
			ImpressionGoal: impressionGoal(pkg),
			Budget:         pkg.Budget,
			Active:         true,
		}
		pkg.PlatformLineID = line.LineID
		order.Lines = append(order.Lines, line)
	}

	s.store.Put(order.BuyID, order)

	record.PlatformBuyID = order.BuyID
	record.NativeStatus = order.NativeStatus
	record.Status = ToCanonical(order.NativeStatus)

	logrus.WithFields(logrus.Fields{
		"platform_buy_id": order.BuyID,
		"principal_id":    principal.PrincipalID,
		"lines":           len(order.Lines),
	}).Info("mock: order created in simulated platform")
	logrus.Debug("mock: native order payload\n", utils.PrettyJson(order))

	return nil
}

func (s *MockIntegrator) UpdateMediaBuy(_ context.Context, _ *domain.Principal, record *domain.MediaBuyRecord, update *domain.UpdateMediaBuyRequest) ([]domain.PackageUpdateResult, error) {
	var results []domain.PackageUpdateResult

	order, err := s.mutateOrder(record.PlatformBuyID, "update_media_buy", func(order *platformOrder) error {
		if update.Active != nil {
			target := domain.MediaBuyStatusPaused
			if *update.Active {
				target = domain.MediaBuyStatusDelivering
				if s.now().Before(order.StartTime) {
					target = domain.MediaBuyStatusScheduled
				}
			}
			order.NativeStatus = FromCanonical(target)
		}

		if update.EndTime != nil {
			order.EndTime = *update.EndTime
			record.EndTime = *update.EndTime
		}

		if update.TotalBudget != nil {
			record.TotalBudget = *update.TotalBudget
		}

		results = make([]domain.PackageUpdateResult, 0, len(update.Packages))
		for _, pkgUpdate := range update.Packages {
			results = append(results, s.applyPackageUpdate(order, record, pkgUpdate))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record.NativeStatus = order.NativeStatus
	record.Status = ToCanonical(order.NativeStatus)

	return results, nil
}

// applyPackageUpdate aplica uma alteração de pacote na ordem nativa e no
// registro. Pacotes desconhecidos geram falha itemizada sem interromper o
// restante do lote.
func (s *MockIntegrator) applyPackageUpdate(order *platformOrder, record *domain.MediaBuyRecord, update domain.PackageUpdate) domain.PackageUpdateResult {
	var line *platformLine
	for i := range order.Lines {
		if order.Lines[i].PackageID == update.PackageID {
			line = &order.Lines[i]
			break
		}
	}
	if line == nil {
		return domain.PackageUpdateResult{
			PackageID: update.PackageID,
			Applied:   false,
			Detail:    "package not found in this media buy",
		}
	}

	if update.Active != nil {
		line.Active = *update.Active
	}
	if update.Budget != nil {
		line.Budget = *update.Budget
	}
	if update.Impressions != nil {
		line.ImpressionGoal = *update.Impressions
	}

	for i := range record.Packages {
		if record.Packages[i].ID == update.PackageID {
			if update.Active != nil {
				record.Packages[i].Active = *update.Active
			}
			if update.Budget != nil {
				record.Packages[i].Budget = *update.Budget
			}
			if update.Impressions != nil {
				record.Packages[i].Impressions = update.Impressions
			}
			break
		}
	}

	return domain.PackageUpdateResult{PackageID: update.PackageID, Applied: true}
}

func (s *MockIntegrator) AddCreativeAssets(_ context.Context, _ *domain.Principal, record *domain.MediaBuyRecord, assets []domain.CreativeAsset) ([]domain.CreativeResult, error) {
	var results []domain.CreativeResult

	_, err := s.mutateOrder(record.PlatformBuyID, "add_creative_assets", func(order *platformOrder) error {
		results = make([]domain.CreativeResult, 0, len(assets))
		for _, asset := range assets {
			if asset.ID == "" {
				asset.ID = utils.GenerateIDWithPrefix("cr")
			}

			if asset.MediaURL == "" {
				reason := "media_url is required"
				asset.Status = domain.CreativeStatusRejected
				asset.RejectionReason = &reason
				results = append(results, domain.CreativeResult{
					CreativeID: asset.ID,
					Status:     domain.CreativeStatusRejected,
					Detail:     reason,
				})
				record.Creatives = append(record.Creatives, asset)
				continue
			}

			asset.Status = domain.CreativeStatusPendingReview
			if s.cfg.CreativeAutoApprove {
				asset.Status = domain.CreativeStatusApproved
			}
			asset.CreatedAt = s.now()

			order.Creatives[asset.ID] = asset.Status
			record.Creatives = append(record.Creatives, asset)
			results = append(results, domain.CreativeResult{
				CreativeID: asset.ID,
				Status:     asset.Status,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (s *MockIntegrator) CheckStatus(_ context.Context, _ *domain.Principal, record *domain.MediaBuyRecord) error {
	order, err := s.mutateOrder(record.PlatformBuyID, "check_status", func(order *platformOrder) error {
		// pausa e cancelamento são estados explícitos; os demais avançam
		// com o relógio da janela de veiculação
		switch order.NativeStatus {
		case nativePaused, nativeCancelled, nativeFinished:
			return nil
		}

		now := s.now()
		switch {
		case now.Before(order.StartTime):
			order.NativeStatus = nativeScheduled
		case now.After(order.EndTime):
			order.NativeStatus = nativeFinished
		default:
			order.NativeStatus = nativeLive
		}
		return nil
	})
	if err != nil {
		return err
	}

	record.NativeStatus = order.NativeStatus
	record.Status = ToCanonical(order.NativeStatus)

	return nil
}

func (s *MockIntegrator) GetDelivery(_ context.Context, _ *domain.Principal, record *domain.MediaBuyRecord, periodStart, periodEnd time.Time) (*domain.DeliveryReport, error) {
	order, err := s.loadOrder(record.PlatformBuyID, "get_delivery")
	if err != nil {
		return nil, err
	}

	start, end := utils.ClampPeriod(periodStart, periodEnd, order.StartTime, order.EndTime)

	// fração da janela coberta pelo período consultado, respeitando o agora
	now := s.now()
	fracStart := utils.ElapsedFraction(order.StartTime, order.EndTime, start)
	fracEnd := utils.ElapsedFraction(order.StartTime, order.EndTime, minTime(end, now))
	if fracEnd < fracStart {
		fracEnd = fracStart
	}

	report := &domain.DeliveryReport{
		MediaBuyID:  record.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Currency:    record.Currency,
		Pacing:      utils.RoundWithTwoDecimalPlace(utils.ElapsedFraction(order.StartTime, order.EndTime, now)),
	}

	for _, line := range order.Lines {
		if !line.Active {
			continue
		}

		delivered := int64(float64(line.ImpressionGoal) * (fracEnd - fracStart))
		spend := lineSpend(line.Model, line.Rate, delivered)

		report.Impressions += delivered
		report.Spend += spend
		report.ByPackage = append(report.ByPackage, domain.PackageDelivery{
			PackageID:   line.PackageID,
			Impressions: delivered,
			Spend:       spend,
		})
	}

	report.Spend = utils.RoundWithTwoDecimalPlace(report.Spend)

	return report, nil
}

func (s *MockIntegrator) UpdatePerformanceIndex(_ context.Context, _ *domain.Principal, record *domain.MediaBuyRecord, indexes []domain.PerformanceIndex) (bool, error) {
	order, err := s.mutateOrder(record.PlatformBuyID, "update_performance_index", func(order *platformOrder) error {
		for _, index := range indexes {
			order.Indexes[index.ProductID] = index.Index
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logrus.WithFields(logrus.Fields{
		"platform_buy_id": order.BuyID,
		"indexes":         len(indexes),
	}).Debug("mock: performance indexes stored")

	return true, nil
}

// loadOrder recupera a ordem nativa publicada no Arena, só para leitura.
// Uma ordem ausente significa que a plataforma simulada perdeu o estado,
// uma falha de plataforma e não de validação.
func (s *MockIntegrator) loadOrder(platformBuyID, op string) (*platformOrder, error) {
	value, ok := s.store.Get(platformBuyID)
	if !ok {
		return nil, domain.NewPlatformError(domain.AdapterTypeMock, op,
			fmt.Errorf("platform order %q not found", platformBuyID))
	}

	order, ok := value.(*platformOrder)
	if !ok {
		return nil, domain.NewPlatformError(domain.AdapterTypeMock, op,
			fmt.Errorf("platform order %q has unexpected shape", platformBuyID))
	}

	return order, nil
}

// mutateOrder roda fn sobre uma cópia da ordem nativa, sob o lock da chave
// no Arena, e publica a cópia ao final. Leitores seguem na versão anterior
// até a publicação; a ordem publicada nunca é mutada no lugar.
func (s *MockIntegrator) mutateOrder(platformBuyID, op string, fn func(order *platformOrder) error) (*platformOrder, error) {
	var mutated *platformOrder

	err := s.store.Update(platformBuyID, func(current any, ok bool) (any, error) {
		if !ok {
			return nil, domain.NewPlatformError(domain.AdapterTypeMock, op,
				fmt.Errorf("platform order %q not found", platformBuyID))
		}

		order, ok := current.(*platformOrder)
		if !ok {
			return nil, domain.NewPlatformError(domain.AdapterTypeMock, op,
				fmt.Errorf("platform order %q has unexpected shape", platformBuyID))
		}

		mutated = order.clone()
		if err := fn(mutated); err != nil {
			return nil, err
		}
		return mutated, nil
	})
	if err != nil {
		return nil, err
	}

	return mutated, nil
}

// impressionGoal deriva a meta de impressões da linha: a meta explícita do
// pacote ou, só com orçamento, a meta implícita pelo CPM.
func impressionGoal(pkg *domain.PackageRecord) int64 {
	if pkg.Impressions != nil {
		return *pkg.Impressions
	}
	if pkg.Pricing.Model == domain.PricingModelCPM && pkg.Pricing.Rate > 0 {
		return int64(pkg.Budget / pkg.Pricing.Rate * 1000)
	}
	return 0
}

func lineSpend(model string, rate float64, impressions int64) float64 {
	switch model {
	case domain.PricingModelCPCV:
		return rate * float64(impressions)
	default:
		return rate * float64(impressions) / 1000
	}
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
