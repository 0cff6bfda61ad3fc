package record

import (
	"fmt"
	"math"
	"time"

	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultConstructionTermMonths is used when a record lacks either date.
const DefaultConstructionTermMonths = 36

// Defaults applied to fields a persisted simulation omits.
var (
	DefaultCorrectionIndex      = domain.CorrectionIPCA
	DefaultCorrectionRate       = decimal.NewFromFloat(4.5)
	DefaultPostDeliveryIndex    = "IPCA"
	DefaultTransferTaxPercent   = decimal.NewFromInt(2)
	DefaultRegistrationCost     = decimal.NewFromInt(3000)
	DefaultCommissionPercent    = decimal.NewFromInt(6)
	DefaultAppreciationRate     = decimal.NewFromInt(5)
	DefaultTaxExemptRate        = decimal.NewFromInt(12)
	DefaultPostDeliveryInterest = decimal.Zero
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Simulation is a persisted simulation record as stored by the surrounding
// application: snake_case keys with loosely typed values.
type Simulation struct {
	f fields
}

// ParseSimulation decodes a persisted simulation record.
func ParseSimulation(raw []byte) (*Simulation, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode simulation record: %w", err)
	}
	return &Simulation{f: f}, nil
}

// Number returns the typed status of a numeric field.
func (s *Simulation) Number(key string) Number {
	return s.f.number(key)
}

// Name is the project name, if any.
func (s *Simulation) Name() string {
	name, _ := s.f.text("empreendimento_nome")
	return name
}

// Plan converts the record into an InvestmentPlan. Absent fields take the
// documented defaults; any present but unusable field is reported, together
// with every other such field, in a *FieldError.
func (s *Simulation) Plan() (domain.InvestmentPlan, error) {
	errs := &FieldError{}
	r := &reader{f: s.f, errs: errs}
	zero := ptr(decimal.Zero)

	plan := domain.InvestmentPlan{
		LaunchPrice:  r.amount(nil, "valor_lancamento"),
		EntryPayment: r.amount(zero, "entrada"),

		MonthlyInstallments:        r.count("parcelas_mensais"),
		MonthlyInstallmentValue:    r.amount(zero, "valor_parcela_mensal"),
		SemiannualInstallments:     r.count("parcelas_semestrais"),
		SemiannualInstallmentValue: r.amount(zero, "valor_parcela_semestral"),
		AnnualInstallments:         r.count("parcelas_anuais"),
		AnnualInstallmentValue:     r.amount(zero, "valor_parcela_anual"),
		KeyDeliveryBalance:         r.amount(zero, "saldo_chaves"),

		AnnualCorrectionRate: r.amount(ptr(DefaultCorrectionRate), "taxa_correcao_anual"),
		PostDeliveryIndex:    r.text(DefaultPostDeliveryIndex, "pos_chaves_indice"),
		PostDeliveryInterest: r.amount(ptr(DefaultPostDeliveryInterest), "pos_chaves_juros"),

		TransferTaxPercent:     r.amount(ptr(DefaultTransferTaxPercent), "itbi_percentual"),
		RegistrationCost:       r.amount(ptr(DefaultRegistrationCost), "registro_cartorio"),
		SaleCommissionPercent:  r.amount(ptr(DefaultCommissionPercent), "comissao_venda_percentual"),
		AnnualAppreciationRate: r.signed(ptr(DefaultAppreciationRate), "valorizacao_anual_estimada"),

		PolicyRate:    r.amount(ptr(domain.DefaultPolicyRate), "taxa_selic"),
		InterbankRate: r.amount(ptr(domain.DefaultInterbankRate), "taxa_cdb"),
		TaxExemptRate: r.amount(ptr(DefaultTaxExemptRate), "taxa_lci"),
	}

	if plan.LaunchPrice.IsZero() && s.f.number("valor_lancamento").Status == Zero {
		errs.add("valor_lancamento", "must be positive")
	}

	plan.CorrectionIndex = DefaultCorrectionIndex
	if name := r.text("", "tipo_correcao"); name != "" {
		idx, err := domain.ParseCorrectionIndex(name)
		if err != nil {
			errs.add("tipo_correcao", "%v", err)
		} else {
			plan.CorrectionIndex = idx
		}
	}

	launch := r.date("data_lancamento")
	delivery := r.date("data_entrega_estimada")
	plan.ConstructionTermMonths = ConstructionTermMonths(launch, delivery)

	if err := errs.errOrNil(); err != nil {
		return domain.InvestmentPlan{}, err
	}
	return plan, nil
}

// ConstructionTermMonths derives the construction term from the launch and
// estimated delivery dates: whole 30-day months, rounded, never below one.
// Either date missing yields DefaultConstructionTermMonths.
func ConstructionTermMonths(launch, delivery *time.Time) int {
	if launch == nil || delivery == nil {
		return DefaultConstructionTermMonths
	}
	days := delivery.Sub(*launch).Hours() / 24
	return max(1, int(math.Round(days/30)))
}

// date reads an optional date field.
func (r *reader) date(key string) *time.Time {
	s := r.text("", key)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	r.errs.add(r.name(key), "not a date: %s", s)
	return nil
}
