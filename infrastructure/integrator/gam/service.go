package gam

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	gamdomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/domain"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/gam/gamclient"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/targeting"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// GAMIntegrator despacha compras para o Google Ad Manager. Pacotes
// garantidos passam por previsão de disponibilidade antes de qualquer ordem
// ser criada na plataforma.
type GAMIntegrator struct {
	cfg    config.GAM
	Client gamclient.Client

	now func() time.Time
}

func New(cfg config.GAM, client gamclient.Client) *GAMIntegrator {
	return &GAMIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *GAMIntegrator) Platform() string {
	return domain.AdapterTypeGAM
}

func (s *GAMIntegrator) Capabilities() domain.TargetingCapabilities {
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
		},
		SupportsOSTargeting: true,
		SupportsBrowser:     true,
	}
}

// CreateMediaBuy cria a ordem e seus line items na rede do Ad Manager e
// preenche o registro com os identificadores da plataforma.
//
// A previsão de disponibilidade roda antes da ordem existir: basta um pacote
// garantido sem unidades suficientes para a compra inteira ser recusada sem
// deixar rastro na plataforma.
func (s *GAMIntegrator) CreateMediaBuy(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, request *domain.MediaBuyRequest) error {
	advertiserID := principal.PlatformConfig["gam_advertiser_id"]
	if advertiserID == "" {
		return domain.NewPlatformError(domain.AdapterTypeGAM, "create_media_buy",
			fmt.Errorf("principal %s has no gam_advertiser_id configured", principal.PrincipalID))
	}

	overlays := packageOverlays(request)

	items := make([]gamdomain.LineItem, 0, len(record.Packages))
	for i := range record.Packages {
		pkg := &record.Packages[i]
		items = append(items, buildLineItem(record, pkg, overlays[pkg.BuyerRef]))
	}

	for i := range items {
		pkg := &record.Packages[i]
		if pkg.DeliveryType != domain.DeliveryTypeGuaranteed {
			continue
		}
		goal := items[i].Goal
		if goal == nil || goal.Units <= 0 {
			continue
		}

		forecast, err := s.Client.CheckAvailability(&items[i])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"package_id":   pkg.ID,
				"error":        err.Error(),
			}).Error("gam: availability forecast failed")
			return domain.NewPlatformError(domain.AdapterTypeGAM, "create_media_buy", err)
		}

		if forecast.AvailableUnits < goal.Units {
			logrus.WithFields(logrus.Fields{
				"media_buy_id":    record.ID,
				"package_id":      pkg.ID,
				"requested_units": goal.Units,
				"available_units": forecast.AvailableUnits,
			}).Warn("gam: insufficient inventory for guaranteed package")
			return domain.NewUnavailableError(domain.AdapterTypeGAM, "create_media_buy",
				fmt.Errorf("package %q: requested %d units, forecast offers %d",
					pkg.BuyerRef, goal.Units, forecast.AvailableUnits))
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	order := &gamdomain.Order{
		Name:         orderName(record),
		AdvertiserID: advertiserID,
		StartTime:    record.StartTime.Format(time.RFC3339),
		EndTime:      record.EndTime.Format(time.RFC3339),
		TotalBudget:  gamdomain.NewMoney(record.Currency, record.TotalBudget),
		ExternalRef:  record.ID,
	}

	created, err := s.Client.CreateOrder(order)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"error":        err.Error(),
		}).Error("gam: failed to create order")
		return domain.NewPlatformError(domain.AdapterTypeGAM, "create_media_buy", err)
	}

	// o id da ordem entra no registro assim que ela existe: uma falha nos
	// passos seguintes deixa a ordem órfã rastreável
	record.PlatformBuyID = created.ID

	createdItems, err := s.Client.CreateLineItems(created.ID, items)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"order_id":     created.ID,
			"error":        err.Error(),
		}).Error("gam: order created but line items failed")
		return domain.NewPlatformError(domain.AdapterTypeGAM, "create_media_buy", err)
	}

	for i := range createdItems {
		// a API preserva a ordem de criação, que é a ordem dos pacotes
		if i < len(record.Packages) {
			record.Packages[i].PlatformLineID = createdItems[i].ID
		}
	}

	submitted, err := s.Client.PerformOrderAction(created.ID, gamdomain.OrderActionSubmit)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"order_id":     created.ID,
			"error":        err.Error(),
		}).Error("gam: failed to submit order for approval")
		return domain.NewPlatformError(domain.AdapterTypeGAM, "create_media_buy", err)
	}

	record.NativeStatus = submitted.Status
	record.Status = ToCanonical(submitted.Status)

	logrus.WithFields(logrus.Fields{
		"media_buy_id": record.ID,
		"order_id":     created.ID,
		"line_items":   len(createdItems),
		"status":       record.Status,
	}).Info("gam: order created and submitted for approval")

	return nil
}

// UpdateMediaBuy aplica alterações parciais na ordem e em seus line items.
// Alterações de pacote são itemizadas: a falha de um line item não desfaz as
// demais nem as alterações de ordem já aplicadas.
func (s *GAMIntegrator) UpdateMediaBuy(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, update *domain.UpdateMediaBuyRequest) ([]domain.PackageUpdateResult, error) {
	if record.PlatformBuyID == "" {
		return nil, domain.NewPlatformError(domain.AdapterTypeGAM, "update_media_buy",
			fmt.Errorf("media buy %s was never dispatched to the platform", record.ID))
	}

	if update.Active != nil {
		action := activationAction(*update.Active)

		updated, err := s.Client.PerformOrderAction(record.PlatformBuyID, action)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"order_id":     record.PlatformBuyID,
				"action":       action,
				"error":        err.Error(),
			}).Error("gam: failed to perform order action")
			return nil, domain.NewPlatformError(domain.AdapterTypeGAM, "update_media_buy", err)
		}

		record.NativeStatus = updated.Status
		record.Status = ToCanonical(updated.Status)
	}

	if update.EndTime != nil || update.TotalBudget != nil {
		patch := &gamdomain.Order{ID: record.PlatformBuyID}
		if update.EndTime != nil {
			patch.EndTime = update.EndTime.Format(time.RFC3339)
		}
		if update.TotalBudget != nil {
			patch.TotalBudget = gamdomain.NewMoney(record.Currency, *update.TotalBudget)
		}

		if _, err := s.Client.UpdateOrder(patch); err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"order_id":     record.PlatformBuyID,
				"error":        err.Error(),
			}).Error("gam: failed to update order")
			return nil, domain.NewPlatformError(domain.AdapterTypeGAM, "update_media_buy", err)
		}

		if update.EndTime != nil {
			record.EndTime = *update.EndTime
		}
		if update.TotalBudget != nil {
			record.TotalBudget = *update.TotalBudget
		}
	}

	results := make([]domain.PackageUpdateResult, 0, len(update.Packages))
	for _, change := range update.Packages {
		results = append(results, s.applyPackageUpdate(record, change))
	}

	return results, nil
}

// applyPackageUpdate altera um único line item e registra o desfecho.
func (s *GAMIntegrator) applyPackageUpdate(record *domain.MediaBuyRecord, change domain.PackageUpdate) domain.PackageUpdateResult {
	result := domain.PackageUpdateResult{PackageID: change.PackageID}

	var pkg *domain.PackageRecord
	for i := range record.Packages {
		if record.Packages[i].ID == change.PackageID {
			pkg = &record.Packages[i]
			break
		}
	}
	if pkg == nil {
		result.Detail = "package not found in this media buy"
		return result
	}

	patch := &gamdomain.LineItem{ID: pkg.PlatformLineID}
	if change.Active != nil {
		patch.Status = gamdomain.LineItemStatusActive
		if !*change.Active {
			patch.Status = gamdomain.LineItemStatusPaused
		}
	}
	if change.Impressions != nil {
		patch.Goal = &gamdomain.Goal{UnitType: goalUnitFor(pkg.Pricing.Model), Units: *change.Impressions}
	}
	if change.Budget != nil && change.Impressions == nil {
		// sem meta explícita, o orçamento novo vira meta de unidades pela
		// taxa resolvida do pacote
		if units := unitsForBudget(pkg.Pricing, *change.Budget); units > 0 {
			patch.Goal = &gamdomain.Goal{UnitType: goalUnitFor(pkg.Pricing.Model), Units: units}
		}
	}

	if _, err := s.Client.UpdateLineItem(patch); err != nil {
		logrus.WithFields(logrus.Fields{
			"package_id":   change.PackageID,
			"line_item_id": pkg.PlatformLineID,
			"error":        err.Error(),
		}).Error("gam: failed to update line item")
		result.Detail = err.Error()
		return result
	}

	if change.Active != nil {
		pkg.Active = *change.Active
	}
	if change.Budget != nil {
		pkg.Budget = *change.Budget
	}
	if change.Impressions != nil {
		pkg.Impressions = change.Impressions
	}

	result.Applied = true
	return result
}

// AddCreativeAssets envia os criativos para revisão da plataforma e os
// associa aos line items dos pacotes indicados. Rejeições e falhas de envio
// são itemizadas por criativo, sem interromper o restante do lote.
func (s *GAMIntegrator) AddCreativeAssets(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, assets []domain.CreativeAsset) ([]domain.CreativeResult, error) {
	advertiserID := principal.PlatformConfig["gam_advertiser_id"]

	results := make([]domain.CreativeResult, 0, len(assets))
	for i := range assets {
		asset := &assets[i]
		if asset.ID == "" {
			asset.ID = utils.GenerateIDWithPrefix("cr")
		}

		if asset.MediaURL == "" {
			asset.Status = domain.CreativeStatusRejected
			results = append(results, domain.CreativeResult{
				CreativeID: asset.ID,
				Status:     domain.CreativeStatusRejected,
				Detail:     "media_url is required",
			})
			continue
		}

		created, err := s.Client.CreateCreative(buildCreative(record, asset, advertiserID))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"creative_id":  asset.ID,
				"error":        err.Error(),
			}).Error("gam: failed to upload creative")
			asset.Status = domain.CreativeStatusRejected
			results = append(results, domain.CreativeResult{
				CreativeID: asset.ID,
				Status:     domain.CreativeStatusRejected,
				Detail:     fmt.Sprintf("upload failed: %v", err),
			})
			continue
		}

		status := creativeStatusToCanonical(created.Status)
		asset.Status = status

		result := domain.CreativeResult{CreativeID: asset.ID, Status: status}
		if status == domain.CreativeStatusRejected && len(created.PolicyViolations) > 0 {
			detail := strings.Join(created.PolicyViolations, "; ")
			result.Detail = detail
			asset.RejectionReason = &detail
		}
		results = append(results, result)

		logrus.WithFields(logrus.Fields{
			"media_buy_id":         record.ID,
			"creative_id":          asset.ID,
			"platform_creative_id": created.ID,
			"status":               status,
		}).Debug("gam: creative uploaded for review")
	}

	return results, nil
}

// CheckStatus consulta o status nativo da ordem e atualiza o registro.
func (s *GAMIntegrator) CheckStatus(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord) error {
	order, err := s.Client.GetOrder(record.PlatformBuyID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"order_id":     record.PlatformBuyID,
			"error":        err.Error(),
		}).Error("gam: failed to get order")
		return domain.NewPlatformError(domain.AdapterTypeGAM, "check_status", err)
	}

	record.NativeStatus = order.Status
	record.Status = ToCanonical(order.Status)

	return nil
}

// GetDelivery consulta o relatório de entrega do período e agrega impressões
// e gasto por pacote. O período é recortado para dentro do voo da compra.
func (s *GAMIntegrator) GetDelivery(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, periodStart, periodEnd time.Time) (*domain.DeliveryReport, error) {
	start, end := utils.ClampPeriod(periodStart, periodEnd, record.StartTime, record.EndTime)

	rows, err := s.Client.GetDeliveryReport(record.PlatformBuyID, start, end)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"order_id":     record.PlatformBuyID,
			"error":        err.Error(),
		}).Error("gam: failed to get delivery report")
		return nil, domain.NewPlatformError(domain.AdapterTypeGAM, "get_delivery", err)
	}

	report := &domain.DeliveryReport{
		MediaBuyID:  record.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Currency:    record.Currency,
	}

	packageByLine := make(map[string]string, len(record.Packages))
	for _, pkg := range record.Packages {
		if pkg.PlatformLineID != "" {
			packageByLine[pkg.PlatformLineID] = pkg.ID
		}
	}

	perPackage := make(map[string]*domain.PackageDelivery)
	for _, row := range rows {
		packageID, ok := packageByLine[row.LineItemID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"line_item_id": row.LineItemID,
			}).Warn("gam: report row references unknown line item")
			continue
		}

		entry := perPackage[packageID]
		if entry == nil {
			entry = &domain.PackageDelivery{PackageID: packageID}
			perPackage[packageID] = entry
		}
		entry.Impressions += row.Impressions
		entry.Spend += gamdomain.FromMicros(row.RevenueMicros)
	}

	// a ordem dos pacotes do registro dita a ordem do relatório
	for _, pkg := range record.Packages {
		entry := perPackage[pkg.ID]
		if entry == nil {
			continue
		}
		entry.Spend = utils.RoundWithTwoDecimalPlace(entry.Spend)
		report.Impressions += entry.Impressions
		report.Spend += entry.Spend
		report.ByPackage = append(report.ByPackage, *entry)
	}
	report.Spend = utils.RoundWithTwoDecimalPlace(report.Spend)
	report.Pacing = utils.RoundWithTwoDecimalPlace(utils.ElapsedFraction(record.StartTime, record.EndTime, s.now()))

	return report, nil
}

// UpdatePerformanceIndex registra que o Ad Manager não consome índices de
// performance: a chamada é aceita e ignorada, sem otimização do lado da
// plataforma.
func (s *GAMIntegrator) UpdatePerformanceIndex(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, indexes []domain.PerformanceIndex) (bool, error) {
	logrus.WithFields(logrus.Fields{
		"media_buy_id": record.ID,
		"indexes":      len(indexes),
	}).Info("gam: performance indexes are not consumed by this platform")

	return false, nil
}

// packageOverlays indexa a segmentação mesclada de cada pacote pela
// referência do comprador.
func packageOverlays(request *domain.MediaBuyRequest) map[string]*domain.TargetingOverlay {
	overlays := make(map[string]*domain.TargetingOverlay, len(request.Packages))
	for _, pkg := range request.Packages {
		overlays[pkg.BuyerRef] = targeting.Merge(request.Targeting, pkg.Targeting)
	}
	return overlays
}

// buildLineItem monta o line item nativo de um pacote já precificado.
func buildLineItem(record *domain.MediaBuyRecord, pkg *domain.PackageRecord, overlay *domain.TargetingOverlay) gamdomain.LineItem {
	item := gamdomain.LineItem{
		Name:        fmt.Sprintf("%s / %s", record.BuyerRef, pkg.BuyerRef),
		Type:        gamdomain.LineItemTypePricePriority,
		CostType:    gamdomain.CostTypeCPM,
		CostPerUnit: gamdomain.NewMoney(pkg.Pricing.Currency, pkg.Pricing.Rate),
		StartTime:   record.StartTime.Format(time.RFC3339),
		EndTime:     record.EndTime.Format(time.RFC3339),
		Targeting:   buildTargeting(overlay),
		ExternalRef: pkg.ID,
	}

	if pkg.DeliveryType == domain.DeliveryTypeGuaranteed {
		item.Type = gamdomain.LineItemTypeStandard
	}
	if pkg.Pricing.Model == domain.PricingModelCPCV {
		item.CostType = gamdomain.CostTypeCPCV
	}

	if units := packageUnitsGoal(pkg); units > 0 {
		item.Goal = &gamdomain.Goal{UnitType: goalUnitFor(pkg.Pricing.Model), Units: units}
	}

	return item
}

// buildTargeting converte a sobreposição do protocolo para o critério nativo.
func buildTargeting(overlay *domain.TargetingOverlay) *gamdomain.Targeting {
	if overlay.IsEmpty() {
		return nil
	}
	return &gamdomain.Targeting{
		GeoCountries:              overlay.GeoCountryAnyOf,
		ExcludedGeoCountries:      overlay.GeoCountryNoneOf,
		GeoRegions:                overlay.GeoRegionAnyOf,
		DeviceCategories:          overlay.DeviceTypeAnyOf,
		OperatingSystems:          overlay.OSAnyOf,
		Browsers:                  overlay.BrowserAnyOf,
		ContentCategories:         overlay.ContentCategoryAnyOf,
		ExcludedContentCategories: overlay.ContentCategoryNoneOf,
		MediaTypes:                overlay.MediaTypeAnyOf,
		CustomCriteria:            overlay.Custom,
	}
}

// goalUnitFor devolve a unidade de meta correspondente ao modelo de preço.
func goalUnitFor(model string) string {
	if model == domain.PricingModelCPCV {
		return gamdomain.GoalUnitCompletedViews
	}
	return gamdomain.GoalUnitImpressions
}

// unitsForBudget deriva a meta de unidades de um orçamento pela taxa
// resolvida: milheiros para CPM, visualizações completas para CPCV.
func unitsForBudget(pricing domain.ResolvedPricing, budget float64) int64 {
	if pricing.Rate <= 0 {
		return 0
	}
	if pricing.Model == domain.PricingModelCPCV {
		return int64(budget / pricing.Rate)
	}
	return int64(budget / pricing.Rate * 1000)
}

// packageUnitsGoal é a meta de unidades do pacote: meta explícita de
// impressões ou o orçamento convertido pela taxa.
func packageUnitsGoal(pkg *domain.PackageRecord) int64 {
	if pkg.Impressions != nil {
		return *pkg.Impressions
	}
	return unitsForBudget(pkg.Pricing, pkg.Budget)
}

// orderName monta o nome externo da ordem: referência do comprador mais o
// número do pedido quando presente.
func orderName(record *domain.MediaBuyRecord) string {
	if record.PONumber != "" {
		return fmt.Sprintf("%s (%s)", record.BuyerRef, record.PONumber)
	}
	return record.BuyerRef
}

// buildCreative converte o ativo do protocolo para o criativo nativo. Sem
// pacotes indicados, o criativo vale para todos os line items da compra.
func buildCreative(record *domain.MediaBuyRecord, asset *domain.CreativeAsset, advertiserID string) *gamdomain.Creative {
	creative := &gamdomain.Creative{
		AdvertiserID:    advertiserID,
		Name:            asset.Name,
		Format:          asset.Format,
		MediaURL:        asset.MediaURL,
		ClickThroughURL: asset.ClickURL,
	}
	if creative.Name == "" {
		creative.Name = asset.ID
	}
	if asset.Width != nil && asset.Height != nil {
		creative.Size = &gamdomain.Size{Width: *asset.Width, Height: *asset.Height}
	}
	if asset.DurationMs != nil {
		creative.DurationMs = *asset.DurationMs
	}

	packageIDs := asset.PackageIDs
	if len(packageIDs) == 0 {
		for _, pkg := range record.Packages {
			packageIDs = append(packageIDs, pkg.ID)
		}
	}
	for _, packageID := range packageIDs {
		for _, pkg := range record.Packages {
			if pkg.ID == packageID && pkg.PlatformLineID != "" {
				creative.LineItemIDs = append(creative.LineItemIDs, pkg.PlatformLineID)
			}
		}
	}

	return creative
}
