package dre

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CostBucket is one of the fixed analytical labels used by the cost
// distribution views. Distinct from the nine statement categories: buckets
// slice costs by what the money was spent on, not by statement line.
type CostBucket string

const (
	BucketExtras               CostBucket = "Extras"
	BucketBandsOrArtists       CostBucket = "Bandas/Artistas"
	BucketMerchandise          CostBucket = "Mercadorias"
	BucketEquipment            CostBucket = "Equipamentos"
	BucketMarketing            CostBucket = "Marketing"
	BucketRentOrInfrastructure CostBucket = "Aluguel/Infraestrutura"
	BucketServices             CostBucket = "Serviços"
	BucketTaxesAndFees         CostBucket = "Impostos e Taxas"
	BucketFinancial            CostBucket = "Financeiro"
	BucketOther                CostBucket = "Outros"
)

// classifyRule is one row of the embedded cascade. See rules.yaml for the
// matching semantics.
type classifyRule struct {
	Bucket      CostBucket `yaml:"bucket"`
	Name        []string   `yaml:"name"`
	CategoryAll []string   `yaml:"category_all"`
	CategoryAny []string   `yaml:"category_any"`
}

//go:embed rules.yaml
var rulesYAML []byte

var classifyRules = mustLoadRules(rulesYAML)

func mustLoadRules(raw []byte) []classifyRule {
	var rules []classifyRule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		panic(fmt.Sprintf("dre: invalid classification rules: %v", err))
	}
	if len(rules) == 0 {
		panic("dre: empty classification rule table")
	}
	return rules
}

// Classify maps a free-text account name and its declared category to an
// analytical cost bucket using the ordered rule cascade. It is total:
// any input that matches no rule degrades to BucketOther.
func Classify(accountName, declaredCategory string) CostBucket {
	name := strings.ToUpper(accountName)
	category := strings.ToUpper(declaredCategory)

	for _, rule := range classifyRules {
		if rule.matches(name, category) {
			return rule.Bucket
		}
	}
	return BucketOther
}

func (r classifyRule) matches(name, category string) bool {
	if r.matchesCategory(category) {
		return true
	}
	return containsAny(name, r.Name)
}

func (r classifyRule) matchesCategory(category string) bool {
	if len(r.CategoryAll) == 0 && len(r.CategoryAny) == 0 {
		return false
	}
	for _, keyword := range r.CategoryAll {
		if !strings.Contains(category, keyword) {
			return false
		}
	}
	if len(r.CategoryAny) == 0 {
		return true
	}
	return containsAny(category, r.CategoryAny)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
