package broadsign

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/broadsignclient"
	broadsigndomain "github.com/vfg2006/adcp-dispatch-api/infrastructure/integrator/broadsign/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/targeting"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// BroadsignIntegrator despacha compras para a rede DOOH do Broadsign. A
// compra vira uma campanha com uma reserva de telas por pacote, e a entrega
// é medida em exibições convertidas para impressões pela audiência estimada
// de cada tela.
type BroadsignIntegrator struct {
	cfg    config.Broadsign
	Client broadsignclient.Client

	now func() time.Time
}

func New(cfg config.Broadsign, client broadsignclient.Client) *BroadsignIntegrator {
	return &BroadsignIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *BroadsignIntegrator) Platform() string {
	return domain.AdapterTypeBroadsign
}

func (s *BroadsignIntegrator) Capabilities() domain.TargetingCapabilities {
	return domain.TargetingCapabilities{
		SupportedDeviceTypes: map[string]bool{
			"billboard":   true,
			"transit":     true,
			"kiosk":       true,
			"urban_panel": true,
		},
		SupportedMediaTypes: map[string]bool{
			"video":   true,
			"display": true,
		},
		SupportsOSTargeting: false,
		SupportsBrowser:     false,
	}
}

// CreateMediaBuy cria a campanha e reserva telas para cada pacote.
//
// A busca de inventário roda antes da campanha existir: basta um pacote sem
// tela compatível para a compra inteira ser recusada sem deixar rastro na
// plataforma.
func (s *BroadsignIntegrator) CreateMediaBuy(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, request *domain.MediaBuyRequest) error {
	overlays := packageOverlays(request)

	screensByPackage := make([][]int64, len(record.Packages))
	for i := range record.Packages {
		pkg := &record.Packages[i]

		screens, err := s.Client.SearchScreens(screenSearch(overlays[pkg.BuyerRef]))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"package_id":   pkg.ID,
				"error":        err.Error(),
			}).Error("broadsign: screen search failed")
			return domain.NewPlatformError(domain.AdapterTypeBroadsign, "create_media_buy", err)
		}

		if len(screens) == 0 {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"package_id":   pkg.ID,
			}).Warn("broadsign: no screens match the package targeting")
			return domain.NewUnavailableError(domain.AdapterTypeBroadsign, "create_media_buy",
				fmt.Errorf("package %q: no screens match the requested targeting", pkg.BuyerRef))
		}

		ids := make([]int64, 0, len(screens))
		for _, screen := range screens {
			ids = append(ids, screen.ID)
		}
		screensByPackage[i] = ids
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	campaign := &broadsigndomain.Campaign{
		DomainID:    s.domainID(principal),
		Name:        campaignName(record),
		StartDate:   record.StartTime.Format(time.DateOnly),
		EndDate:     record.EndTime.Format(time.DateOnly),
		TotalBudget: record.TotalBudget,
		Currency:    record.Currency,
		ExternalRef: record.ID,
	}

	created, err := s.Client.CreateCampaign(campaign)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"error":        err.Error(),
		}).Error("broadsign: failed to create campaign")
		return domain.NewPlatformError(domain.AdapterTypeBroadsign, "create_media_buy", err)
	}

	// o id da campanha entra no registro assim que ela existe: uma falha nas
	// reservas seguintes deixa a campanha órfã rastreável
	record.PlatformBuyID = strconv.FormatInt(created.ID, 10)

	for i := range record.Packages {
		pkg := &record.Packages[i]

		booking := &broadsigndomain.Booking{
			CampaignID:      created.ID,
			ExternalRef:     pkg.ID,
			ScreenIDs:       screensByPackage[i],
			ImpressionsGoal: packageImpressionsGoal(pkg),
		}

		booked, err := s.Client.CreateBooking(booking)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"campaign_id":  created.ID,
				"package_id":   pkg.ID,
				"error":        err.Error(),
			}).Error("broadsign: campaign created but booking failed")
			return domain.NewPlatformError(domain.AdapterTypeBroadsign, "create_media_buy", err)
		}

		pkg.PlatformLineID = strconv.FormatInt(booked.ID, 10)
	}

	record.NativeStatus = NativeName(created.StatusCode())
	record.Status = ToCanonical(created.StatusCode())

	logrus.WithFields(logrus.Fields{
		"media_buy_id": record.ID,
		"campaign_id":  created.ID,
		"bookings":     len(record.Packages),
		"status":       record.Status,
	}).Info("broadsign: campaign created with screen bookings")

	return nil
}

// UpdateMediaBuy aplica alterações parciais na campanha e em suas reservas.
// Alterações de pacote são itemizadas: a falha de uma reserva não desfaz as
// demais nem as alterações de campanha já aplicadas.
func (s *BroadsignIntegrator) UpdateMediaBuy(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, update *domain.UpdateMediaBuyRequest) ([]domain.PackageUpdateResult, error) {
	campaignID, err := campaignIDFrom(record)
	if err != nil {
		return nil, domain.NewPlatformError(domain.AdapterTypeBroadsign, "update_media_buy", err)
	}

	if update.Active != nil {
		status := broadsigndomain.CampaignStatusLive
		if !*update.Active {
			status = broadsigndomain.CampaignStatusPaused
		}

		updated, err := s.Client.UpdateCampaign(&broadsigndomain.Campaign{ID: campaignID, Status: &status})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"campaign_id":  campaignID,
				"error":        err.Error(),
			}).Error("broadsign: failed to change campaign status")
			return nil, domain.NewPlatformError(domain.AdapterTypeBroadsign, "update_media_buy", err)
		}

		record.NativeStatus = NativeName(updated.StatusCode())
		record.Status = ToCanonical(updated.StatusCode())
	}

	if update.EndTime != nil || update.TotalBudget != nil {
		patch := &broadsigndomain.Campaign{ID: campaignID}
		if update.EndTime != nil {
			patch.EndDate = update.EndTime.Format(time.DateOnly)
		}
		if update.TotalBudget != nil {
			patch.TotalBudget = *update.TotalBudget
		}

		if _, err := s.Client.UpdateCampaign(patch); err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"campaign_id":  campaignID,
				"error":        err.Error(),
			}).Error("broadsign: failed to update campaign")
			return nil, domain.NewPlatformError(domain.AdapterTypeBroadsign, "update_media_buy", err)
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

// applyPackageUpdate altera uma única reserva e registra o desfecho.
func (s *BroadsignIntegrator) applyPackageUpdate(record *domain.MediaBuyRecord, change domain.PackageUpdate) domain.PackageUpdateResult {
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

	bookingID, err := strconv.ParseInt(pkg.PlatformLineID, 10, 64)
	if err != nil {
		result.Detail = "package has no booking on the platform"
		return result
	}

	patch := &broadsigndomain.Booking{ID: bookingID}
	if change.Active != nil {
		patch.Active = change.Active
	}
	if change.Impressions != nil {
		patch.ImpressionsGoal = *change.Impressions
	}
	if change.Budget != nil && change.Impressions == nil {
		// sem meta explícita, o orçamento novo vira meta de impressões pela
		// taxa resolvida do pacote
		if goal := impressionsForBudget(pkg.Pricing, *change.Budget); goal > 0 {
			patch.ImpressionsGoal = goal
		}
	}

	if _, err := s.Client.UpdateBooking(patch); err != nil {
		logrus.WithFields(logrus.Fields{
			"package_id": change.PackageID,
			"booking_id": bookingID,
			"error":      err.Error(),
		}).Error("broadsign: failed to update booking")
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

// AddCreativeAssets envia os criativos para a moderação de conteúdo da
// campanha. Rejeições e falhas de envio são itemizadas por criativo, sem
// interromper o restante do lote.
func (s *BroadsignIntegrator) AddCreativeAssets(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, assets []domain.CreativeAsset) ([]domain.CreativeResult, error) {
	campaignID, err := campaignIDFrom(record)
	if err != nil {
		return nil, domain.NewPlatformError(domain.AdapterTypeBroadsign, "add_creative_assets", err)
	}

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

		uploaded, err := s.Client.UploadCreative(buildUpload(campaignID, asset))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"creative_id":  asset.ID,
				"error":        err.Error(),
			}).Error("broadsign: failed to upload creative")
			asset.Status = domain.CreativeStatusRejected
			results = append(results, domain.CreativeResult{
				CreativeID: asset.ID,
				Status:     domain.CreativeStatusRejected,
				Detail:     fmt.Sprintf("upload failed: %v", err),
			})
			continue
		}

		status := moderationToCanonical(uploaded.ModerationStatus)
		asset.Status = status

		result := domain.CreativeResult{CreativeID: asset.ID, Status: status}
		if status == domain.CreativeStatusRejected && uploaded.ModerationNotes != "" {
			notes := uploaded.ModerationNotes
			result.Detail = notes
			asset.RejectionReason = &notes
		}
		results = append(results, result)

		logrus.WithFields(logrus.Fields{
			"media_buy_id":         record.ID,
			"creative_id":          asset.ID,
			"platform_creative_id": uploaded.ID,
			"status":               status,
		}).Debug("broadsign: creative sent to content moderation")
	}

	return results, nil
}

// CheckStatus consulta o status nativo da campanha e atualiza o registro.
func (s *BroadsignIntegrator) CheckStatus(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord) error {
	campaignID, err := campaignIDFrom(record)
	if err != nil {
		return domain.NewPlatformError(domain.AdapterTypeBroadsign, "check_status", err)
	}

	campaign, err := s.Client.GetCampaign(campaignID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"campaign_id":  campaignID,
			"error":        err.Error(),
		}).Error("broadsign: failed to get campaign")
		return domain.NewPlatformError(domain.AdapterTypeBroadsign, "check_status", err)
	}

	record.NativeStatus = NativeName(campaign.StatusCode())
	record.Status = ToCanonical(campaign.StatusCode())

	return nil
}

// GetDelivery consulta a comprovação de exibição do período e agrega
// impressões e gasto por pacote. Cada exibição vale as impressões estimadas
// da tela onde aconteceu. O período é recortado para dentro do voo da
// compra.
func (s *BroadsignIntegrator) GetDelivery(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, periodStart, periodEnd time.Time) (*domain.DeliveryReport, error) {
	start, end := utils.ClampPeriod(periodStart, periodEnd, record.StartTime, record.EndTime)

	campaignID, err := campaignIDFrom(record)
	if err != nil {
		return nil, domain.NewPlatformError(domain.AdapterTypeBroadsign, "get_delivery", err)
	}

	rows, err := s.Client.GetProofOfPlay(campaignID, start, end)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"media_buy_id": record.ID,
			"campaign_id":  campaignID,
			"error":        err.Error(),
		}).Error("broadsign: failed to get proof of play")
		return nil, domain.NewPlatformError(domain.AdapterTypeBroadsign, "get_delivery", err)
	}

	report := &domain.DeliveryReport{
		MediaBuyID:  record.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Currency:    record.Currency,
	}

	packageByBooking := make(map[string]*domain.PackageRecord, len(record.Packages))
	for i := range record.Packages {
		if record.Packages[i].PlatformLineID != "" {
			packageByBooking[record.Packages[i].PlatformLineID] = &record.Packages[i]
		}
	}

	perPackage := make(map[string]*domain.PackageDelivery)
	for _, row := range rows {
		pkg, ok := packageByBooking[strconv.FormatInt(row.BookingID, 10)]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"media_buy_id": record.ID,
				"booking_id":   row.BookingID,
			}).Warn("broadsign: report row references unknown booking")
			continue
		}

		entry := perPackage[pkg.ID]
		if entry == nil {
			entry = &domain.PackageDelivery{PackageID: pkg.ID}
			perPackage[pkg.ID] = entry
		}

		impressions := int64(math.Round(float64(row.Plays) * row.ImpressionsPerPlay))
		entry.Impressions += impressions
		entry.Spend += spendFor(pkg.Pricing, row.Plays, impressions)
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

// UpdatePerformanceIndex registra que o Broadsign não consome índices de
// performance: a chamada é aceita e ignorada, sem otimização do lado da
// plataforma.
func (s *BroadsignIntegrator) UpdatePerformanceIndex(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, indexes []domain.PerformanceIndex) (bool, error) {
	logrus.WithFields(logrus.Fields{
		"media_buy_id": record.ID,
		"indexes":      len(indexes),
	}).Info("broadsign: performance indexes are not consumed by this platform")

	return false, nil
}

// domainID resolve o domínio do anunciante na plataforma: o principal pode
// apontar para um domínio próprio, senão vale o domínio padrão da
// configuração.
func (s *BroadsignIntegrator) domainID(principal *domain.Principal) string {
	if id := principal.PlatformConfig["broadsign_domain_id"]; id != "" {
		return id
	}
	return s.cfg.DomainID
}

// campaignIDFrom extrai o identificador numérico da campanha já despachada.
func campaignIDFrom(record *domain.MediaBuyRecord) (int64, error) {
	if record.PlatformBuyID == "" {
		return 0, fmt.Errorf("media buy %s was never dispatched to the platform", record.ID)
	}
	campaignID, err := strconv.ParseInt(record.PlatformBuyID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("media buy %s has an invalid campaign id %q", record.ID, record.PlatformBuyID)
	}
	return campaignID, nil
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

// screenSearch converte a segmentação mesclada nos filtros de inventário. O
// tipo de dispositivo do protocolo corresponde ao tipo de local da tela.
// Compra sem segmentação busca sem filtros: toda tela do domínio serve.
func screenSearch(overlay *domain.TargetingOverlay) broadsignclient.ScreenSearchParams {
	if overlay == nil {
		return broadsignclient.ScreenSearchParams{}
	}
	return broadsignclient.ScreenSearchParams{
		VenueTypes: overlay.DeviceTypeAnyOf,
		Countries:  overlay.GeoCountryAnyOf,
		Regions:    overlay.GeoRegionAnyOf,
	}
}

// buildUpload converte o ativo do protocolo para o criativo nativo da
// campanha. Sem nome, o id do ativo identifica o criativo na moderação.
func buildUpload(campaignID int64, asset *domain.CreativeAsset) *broadsigndomain.CreativeUpload {
	upload := &broadsigndomain.CreativeUpload{
		CampaignID: campaignID,
		Name:       asset.Name,
		Format:     asset.Format,
		MediaURL:   asset.MediaURL,
	}
	if upload.Name == "" {
		upload.Name = asset.ID
	}
	if asset.DurationMs != nil {
		upload.DurationMs = *asset.DurationMs
	}
	return upload
}

// campaignName monta o nome externo da campanha: referência do comprador
// mais o número do pedido quando presente.
func campaignName(record *domain.MediaBuyRecord) string {
	if record.PONumber != "" {
		return fmt.Sprintf("%s (%s)", record.BuyerRef, record.PONumber)
	}
	return record.BuyerRef
}

// impressionsForBudget deriva a meta de impressões de um orçamento pela taxa
// resolvida: milheiros para CPM, exibições para CPCV.
func impressionsForBudget(pricing domain.ResolvedPricing, budget float64) int64 {
	if pricing.Rate <= 0 {
		return 0
	}
	if pricing.Model == domain.PricingModelCPCV {
		return int64(budget / pricing.Rate)
	}
	return int64(budget / pricing.Rate * 1000)
}

// packageImpressionsGoal é a meta de impressões do pacote: meta explícita ou
// o orçamento convertido pela taxa.
func packageImpressionsGoal(pkg *domain.PackageRecord) int64 {
	if pkg.Impressions != nil {
		return *pkg.Impressions
	}
	return impressionsForBudget(pkg.Pricing, pkg.Budget)
}

// spendFor converte a entrega medida em gasto: exibições valem o preço por
// visualização completa no CPCV, impressões estimadas valem o preço por
// milheiro no CPM.
func spendFor(pricing domain.ResolvedPricing, plays, impressions int64) float64 {
	if pricing.Model == domain.PricingModelCPCV {
		return float64(plays) * pricing.Rate
	}
	return float64(impressions) / 1000 * pricing.Rate
}
