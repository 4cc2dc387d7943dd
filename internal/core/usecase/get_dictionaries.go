package usecase

import (
	"context"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GetDictionariesUseCase returns the enum values clients render in forms.
type GetDictionariesUseCase struct {
	lang language.Tag
}

func NewGetDictionariesUseCase() *GetDictionariesUseCase {
	return &GetDictionariesUseCase{lang: language.BritishEnglish}
}

// Execute returns every dictionary when names is empty.
func (uc *GetDictionariesUseCase) Execute(ctx context.Context, names []string) (map[string][]domain.DictionaryItem, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetDictionaries"})
	ucLogger.Info("Use case started", port.Fields{"names": names})

	namesMap := make(map[string]bool)
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			namesMap[name] = true
		}
	}
	all := len(namesMap) == 0
	// Casers are stateful and must not be shared between requests
	caser := cases.Title(uc.lang)

	result := make(map[string][]domain.DictionaryItem)
	if all || namesMap["property_types"] {
		items := make([]domain.DictionaryItem, 0, len(domain.PropertyTypes))
		for _, t := range domain.PropertyTypes {
			items = append(items, dictionaryItem(caser, string(t)))
		}
		result["property_types"] = items
	}
	if all || namesMap["tenures"] {
		items := make([]domain.DictionaryItem, 0, len(domain.Tenures))
		for _, t := range domain.Tenures {
			items = append(items, dictionaryItem(caser, string(t)))
		}
		result["tenures"] = items
	}
	if all || namesMap["council_tax_bands"] {
		items := make([]domain.DictionaryItem, 0, len(domain.CouncilTaxBands))
		for _, b := range domain.CouncilTaxBands {
			entry := dictionaryItem(caser, string(b))
			if b != "" {
				entry.DisplayName = strings.ToUpper(string(b))
			}
			items = append(items, entry)
		}
		result["council_tax_bands"] = items
	}

	return result, nil
}

func dictionaryItem(caser cases.Caser, value string) domain.DictionaryItem {
	if value == "" {
		return domain.DictionaryItem{SystemName: "", DisplayName: "Unknown"}
	}
	return domain.DictionaryItem{SystemName: value, DisplayName: caser.String(value)}
}
