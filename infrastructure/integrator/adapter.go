package integrator

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/pricing"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/targeting"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// AdServerAdapter é o contrato único entre o orquestrador de despacho e as
// plataformas de veiculação. Todos os integradores implementam as seis
// operações; diferenças de capacidade vivem na tabela de segmentação e nas
// opções de preço do catálogo, nunca em métodos extras.
//
// CreateMediaBuy e CheckStatus preenchem o registro recebido no lugar: ids de
// plataforma, status nativo e status canônico. A persistência é sempre do
// chamador.
type AdServerAdapter interface {
	Platform() string
	Capabilities() domain.TargetingCapabilities
	CreateMediaBuy(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, request *domain.MediaBuyRequest) error
	UpdateMediaBuy(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, update *domain.UpdateMediaBuyRequest) ([]domain.PackageUpdateResult, error)
	AddCreativeAssets(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, assets []domain.CreativeAsset) ([]domain.CreativeResult, error)
	CheckStatus(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord) error
	GetDelivery(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, periodStart, periodEnd time.Time) (*domain.DeliveryReport, error)
	UpdatePerformanceIndex(ctx context.Context, principal *domain.Principal, record *domain.MediaBuyRecord, indexes []domain.PerformanceIndex) (bool, error)
}

// PreparedBuy é uma requisição de compra que passou pela validação de
// segmentação e pela resolução de preço de todos os pacotes. Só compras
// preparadas chegam a um integrador.
type PreparedBuy struct {
	Packages   []domain.PackageRecord
	TotalSpend float64
}

// PrepareMediaBuy valida a requisição contra as capacidades do integrador e
// resolve o preço de cada pacote.
//
// A validação de segmentação acumula as violações de todos os pacotes em um
// único erro, nomeando cada valor ofensivo: o comprador corrige tudo em uma
// rodada. A resolução de preço para na primeira falha para preservar o tipo
// preciso do erro (corrupção de catálogo nunca é rebaixada a erro de
// requisição).
func PrepareMediaBuy(request *domain.MediaBuyRequest, products map[string]*domain.Product, caps domain.TargetingCapabilities) (*PreparedBuy, error) {
	violations := targeting.Violations(request.Targeting, caps)

	for _, pkg := range request.Packages {
		if len(pkg.ProductIDs) == 0 {
			violations = append(violations, fmt.Sprintf("package %q references no products", pkg.BuyerRef))
			continue
		}
		for _, productID := range pkg.ProductIDs {
			if products[productID] == nil {
				violations = append(violations, fmt.Sprintf("package %q: product %q not found in catalog", pkg.BuyerRef, productID))
			}
		}

		// a sobreposição da campanha já foi validada acima; aqui entram só
		// os valores que o pacote acrescenta
		violations = append(violations, targeting.Violations(pkg.Targeting, caps)...)
	}

	if len(violations) > 0 {
		return nil, domain.NewValidationError(domain.ErrUnsupportedTargeting, violations...)
	}

	prepared := &PreparedBuy{
		Packages: make([]domain.PackageRecord, 0, len(request.Packages)),
	}

	for _, pkg := range request.Packages {
		// o primeiro produto do pacote é o produto de precificação
		product := products[pkg.ProductIDs[0]]

		resolved, err := pricing.Resolve(pkg, product, request.Currency)
		if err != nil {
			return nil, err
		}

		prepared.Packages = append(prepared.Packages, domain.PackageRecord{
			ID:           utils.GenerateIDWithPrefix("pkg"),
			BuyerRef:     pkg.BuyerRef,
			ProductID:    product.ID,
			DeliveryType: product.DeliveryType,
			Pricing:      *resolved,
			Impressions:  pkg.Impressions,
			Budget:       resolved.TotalSpend,
			Active:       true,
		})
		prepared.TotalSpend += resolved.TotalSpend
	}

	return prepared, nil
}
