package pricing

import (
	"fmt"

	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/pkg/utils"
)

// Resolve determina a opção de preço efetiva de um pacote contra as opções
// oferecidas pelo produto e valida lance, moeda e gasto mínimo. Um produto
// sem opções de preço nunca deveria chegar ao despacho: isso é corrupção de
// catálogo, não erro do comprador.
func Resolve(pkg domain.Package, product *domain.Product, campaignCurrency string) (*domain.ResolvedPricing, error) {
	if product == nil || len(product.PricingOptions) == 0 {
		productID := ""
		if product != nil {
			productID = product.ID
		}
		return nil, domain.NewDataIntegrityError(
			domain.ErrNoPricingOptions,
			fmt.Sprintf("product %q reached dispatch without priced offerings", productID),
		)
	}

	option, err := selectOption(pkg, product)
	if err != nil {
		return nil, err
	}

	if option.Currency != campaignCurrency {
		return nil, domain.NewValidationError(
			domain.ErrCurrencyMismatch,
			fmt.Sprintf("package %q: option %q is priced in %s, campaign currency is %s",
				pkg.BuyerRef, option.ID, option.Currency, campaignCurrency),
		)
	}

	rate, err := effectiveRate(pkg, option)
	if err != nil {
		return nil, err
	}

	spend, err := totalSpend(pkg, option.Model, rate)
	if err != nil {
		return nil, err
	}

	if option.MinSpendPerPackage != nil && spend < *option.MinSpendPerPackage {
		return nil, domain.NewValidationError(
			domain.ErrBelowMinimumSpend,
			fmt.Sprintf("package %q: resolved spend %.2f below minimum %.2f",
				pkg.BuyerRef, spend, *option.MinSpendPerPackage),
		)
	}

	return &domain.ResolvedPricing{
		PricingOptionID: option.ID,
		Model:           option.Model,
		Rate:            rate,
		Currency:        option.Currency,
		IsFixed:         option.IsFixed,
		TotalSpend:      spend,
	}, nil
}

// selectOption aplica a regra de seleção: escolha explícita pelo id, ou
// seleção implícita quando existe exatamente uma opção.
func selectOption(pkg domain.Package, product *domain.Product) (*domain.PricingOption, error) {
	if pkg.PricingOptionID == nil {
		if len(product.PricingOptions) == 1 {
			return &product.PricingOptions[0], nil
		}
		return nil, domain.NewValidationError(
			domain.ErrNoPricingSelection,
			fmt.Sprintf("package %q: product %q offers %d pricing options, pricing_option_id is required",
				pkg.BuyerRef, product.ID, len(product.PricingOptions)),
		)
	}

	for i := range product.PricingOptions {
		if product.PricingOptions[i].ID == *pkg.PricingOptionID {
			return &product.PricingOptions[i], nil
		}
	}

	return nil, domain.NewValidationError(
		domain.ErrPricingOptionNotFound,
		fmt.Sprintf("package %q: product %q has no pricing option %q",
			pkg.BuyerRef, product.ID, *pkg.PricingOptionID),
	)
}

// effectiveRate decide a taxa: opções fixas exigem taxa não nula; leilões
// exigem lance maior ou igual ao piso.
func effectiveRate(pkg domain.Package, option *domain.PricingOption) (float64, error) {
	if option.IsFixed {
		if option.Rate == nil {
			return 0, domain.NewValidationError(
				domain.ErrNoRateSpecified,
				fmt.Sprintf("package %q: option %q is fixed but carries no rate", pkg.BuyerRef, option.ID),
			)
		}
		return *option.Rate, nil
	}

	if pkg.BidPrice == nil {
		return 0, domain.NewValidationError(
			domain.ErrNoBidPrice,
			fmt.Sprintf("package %q: option %q is auction priced, bid_price is required", pkg.BuyerRef, option.ID),
		)
	}

	floor := 0.0
	if option.Guidance != nil {
		floor = option.Guidance.Floor
	}

	if *pkg.BidPrice < floor {
		return 0, domain.NewValidationError(
			domain.ErrBidBelowFloor,
			fmt.Sprintf("package %q: bid price %.2f below floor %.2f", pkg.BuyerRef, *pkg.BidPrice, floor),
		)
	}

	return *pkg.BidPrice, nil
}

// totalSpend normaliza a taxa pela unidade do modelo e calcula o gasto do
// pacote. Com meta de impressões o gasto é derivado; só com orçamento, o
// próprio orçamento é o compromisso de gasto.
func totalSpend(pkg domain.Package, model string, rate float64) (float64, error) {
	if pkg.Impressions != nil {
		volume := float64(*pkg.Impressions)
		switch model {
		case domain.PricingModelCPM:
			return utils.RoundWithTwoDecimalPlace(rate * volume / 1000), nil
		case domain.PricingModelCPCV:
			return utils.RoundWithTwoDecimalPlace(rate * volume), nil
		default:
			return utils.RoundWithTwoDecimalPlace(rate * volume / 1000), nil
		}
	}

	if pkg.Budget != nil {
		return utils.RoundWithTwoDecimalPlace(*pkg.Budget), nil
	}

	return 0, domain.NewValidationError(
		domain.ErrNoVolume,
		fmt.Sprintf("package %q: either budget or impressions is required", pkg.BuyerRef),
	)
}
